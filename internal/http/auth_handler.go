package httpapi

import (
	"net/http"
	"strings"

	"travia-admin/internal/service"

	"go.uber.org/zap"
)

// AuthHandler login, logout and session introspection.
type AuthHandler struct {
	authService *service.AuthService
	guard       *Guard
	logger      *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, guard *Guard, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		guard:       guard,
		logger:      logger,
	}
}

// Login authenticates and hands back the access token. Failures answer
// HTTP 200 with an error envelope; the frontend surfaces the message
// verbatim on the form.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var reqBody struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		// path the guard bounced the client from, echoed back so the
		// frontend can resume navigation after login
		From string `json:"from"`
	}
	if err := readBodyJSON(r, 1<<20, &reqBody); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}

	res, err := h.authService.Login(ctx, reqBody.Email, reqBody.Password, getClientIP(r))
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}

	homePath := "/"
	if strings.HasPrefix(reqBody.From, "/") {
		homePath = reqBody.From
	}

	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"accessToken": res.Token,
		"role":        string(res.Principal.Role),
		"email":       res.Principal.Email,
		"agencyId":    res.Principal.AgencyID,
		"agencyName":  res.Principal.AgencyName,
		"homePath":    homePath,
	}))
}

// Logout deletes the session record. Works on already-dead sessions.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sid := h.guard.SessionID(r)
	if err := h.authService.Logout(r.Context(), sid); err != nil {
		h.logger.Error("Logout failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("Error del servidor"))
		return
	}
	writeJSON(w, http.StatusOK, Ok[any](nil))
}

// Session returns the authenticated Principal; guard-protected, so
// reaching here means the session is live.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	p := PrincipalFrom(r.Context())
	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"id":         p.ID,
		"email":      p.Email,
		"role":       string(p.Role),
		"agencyId":   p.AgencyID,
		"agencyName": p.AgencyName,
	}))
}
