package httpapi

import (
	"context"
	"net/http"
	"strings"
	"sync/atomic"

	"travia-admin/internal/domain"
	"travia-admin/internal/guard"
	"travia-admin/internal/session"

	"go.uber.org/zap"
)

type contextKey int

const principalKey contextKey = 0

// PrincipalFrom returns the authenticated Principal the guard stored on
// the request context. Nil only on routes outside the guard.
func PrincipalFrom(ctx context.Context) *domain.Principal {
	p, _ := ctx.Value(principalKey).(*domain.Principal)
	return p
}

// Guard enforces access decisions in front of protected handlers.
// Ready starts false and is flipped once the stores are reachable;
// until then every protected request gets a retry answer instead of a
// misleading login redirect.
type Guard struct {
	sessions *session.Store
	ready    atomic.Bool
	logger   *zap.Logger
}

func NewGuard(sessions *session.Store, logger *zap.Logger) *Guard {
	return &Guard{
		sessions: sessions,
		logger:   logger,
	}
}

// SetReady marks initialization finished.
func (g *Guard) SetReady() { g.ready.Store(true) }

// Protect wraps a handler with the access rule. An empty allowed set
// admits any authenticated role.
func (g *Guard) Protect(allowed []domain.Role, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, storeErr := g.resolve(r)
		if storeErr != nil {
			g.logger.Error("Session lookup failed", zap.Error(storeErr))
			writeJSON(w, http.StatusInternalServerError, Fail("Error del servidor"))
			return
		}

		switch guard.Decide(!g.ready.Load(), p, allowed) {
		case guard.Wait:
			w.Header().Set("Retry-After", "1")
			writeJSON(w, http.StatusServiceUnavailable, Fail("initializing"))

		case guard.ToLogin:
			writeJSON(w, http.StatusUnauthorized,
				FailRedirect(ResultTokenExpired, "unauthorized", "/login", r.URL.RequestURI()))

		case guard.ToHome:
			// silent: no hint about which role was required
			writeJSON(w, http.StatusForbidden,
				FailRedirect(ResultError, "forbidden", "/", ""))

		case guard.Render:
			next(w, r.WithContext(context.WithValue(r.Context(), principalKey, p)))
		}
	}
}

// resolve rehydrates the Principal for the request's bearer token.
// Missing or unverifiable tokens are simply unauthenticated; only
// storage failures surface as errors.
func (g *Guard) resolve(r *http.Request) (*domain.Principal, error) {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return nil, nil
	}
	sid, err := g.sessions.VerifyToken(strings.TrimPrefix(auth, "Bearer "))
	if err != nil {
		return nil, nil
	}
	return g.sessions.Initialize(r.Context(), sid)
}

// SessionID extracts the verified session id from the request, empty
// when absent. Used by logout, which must work even for dead sessions.
func (g *Guard) SessionID(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	sid, err := g.sessions.VerifyToken(strings.TrimPrefix(auth, "Bearer "))
	if err != nil {
		return ""
	}
	return sid
}
