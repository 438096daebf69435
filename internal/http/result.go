package httpapi

// Result response envelope the dashboard frontend unwraps.
// - code: 2000 success
// - type: 'success' | 'error' | 'warning'
// - message: string
// - result: any
type Result[T any] struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Result  T      `json:"result"`
}

const (
	ResultSuccess = 2000
	ResultError   = -1
	// ResultTokenExpired pairs with HTTP 401; the frontend axios
	// interceptor routes it to the login view
	ResultTokenExpired = 60401
)

func Ok[T any](result T) Result[T] {
	return Result[T]{Code: ResultSuccess, Type: "success", Message: "ok", Result: result}
}

func Fail(message string) Result[any] {
	return Result[any]{Code: ResultError, Type: "error", Message: message, Result: nil}
}

// FailRedirect error envelope carrying the path the client should
// navigate to, plus the path it came from so login can resume there.
func FailRedirect(code int, message, redirect, from string) Result[map[string]string] {
	r := map[string]string{"redirect": redirect}
	if from != "" {
		r["from"] = from
	}
	return Result[map[string]string]{Code: code, Type: "error", Message: message, Result: r}
}
