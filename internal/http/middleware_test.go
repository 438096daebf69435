package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"travia-admin/internal/domain"
	"travia-admin/internal/session"
	"travia-admin/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestGuard(t *testing.T) (*Guard, *session.Store) {
	t.Helper()
	sessions := session.NewStore(store.NewMemoryKV(), 0, "test-secret", zap.NewNop())
	g := NewGuard(sessions, zap.NewNop())
	g.SetReady()
	return g, sessions
}

func loginAs(t *testing.T, sessions *session.Store, p *domain.Principal) string {
	t.Helper()
	sid, err := sessions.Persist(context.Background(), p)
	require.NoError(t, err)
	token, err := sessions.IssueToken(sid, p)
	require.NoError(t, err)
	return token
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Result[map[string]any] {
	t.Helper()
	var res Result[map[string]any]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Ok("reached"))
}

func TestProtectNotReady(t *testing.T) {
	waiting := NewGuard(session.NewStore(store.NewMemoryKV(), 0, "s", zap.NewNop()), zap.NewNop())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/api/v1/agencies", nil)
	waiting.Protect(nil, okHandler)(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestProtectUnauthenticated(t *testing.T) {
	g, _ := newTestGuard(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/api/v1/agencies", nil)
	g.Protect(nil, okHandler)(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	res := decodeEnvelope(t, rec)
	assert.Equal(t, ResultTokenExpired, res.Code)
	assert.Equal(t, "/login", res.Result["redirect"])
	assert.Equal(t, "/admin/api/v1/agencies", res.Result["from"])
}

func TestProtectUnauthenticatedKeepsQueryInFrom(t *testing.T) {
	g, _ := newTestGuard(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/api/v1/trips?page=2&size=10", nil)
	g.Protect(nil, okHandler)(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	res := decodeEnvelope(t, rec)
	// the resume-after-login location keeps the query string
	assert.Equal(t, "/admin/api/v1/trips?page=2&size=10", res.Result["from"])
}

func TestProtectGarbageToken(t *testing.T) {
	g, _ := newTestGuard(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/api/v1/users", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	g.Protect(nil, okHandler)(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectRoleMismatch(t *testing.T) {
	g, sessions := newTestGuard(t)
	token := loginAs(t, sessions, &domain.Principal{
		ID: "a1", Email: "v@e.com", Role: domain.RoleAgency, AgencyID: "a1", AgencyName: "V",
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/api/v1/agencies", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	g.Protect([]domain.Role{domain.RoleAdmin}, okHandler)(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	res := decodeEnvelope(t, rec)
	assert.Equal(t, "/", res.Result["redirect"])
	// no hint about the required role
	assert.Equal(t, "forbidden", res.Message)
}

func TestProtectRenderPutsPrincipalInContext(t *testing.T) {
	g, sessions := newTestGuard(t)
	token := loginAs(t, sessions, &domain.Principal{
		ID: "admin", Email: "admin@admin.com", Role: domain.RoleAdmin,
	})

	var seen *domain.Principal
	handler := func(w http.ResponseWriter, r *http.Request) {
		seen = PrincipalFrom(r.Context())
		writeJSON(w, http.StatusOK, Ok[any](nil))
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/api/v1/agencies", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	g.Protect([]domain.Role{domain.RoleAdmin}, handler)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "admin", seen.ID)
}

func TestProtectAfterLogout(t *testing.T) {
	g, sessions := newTestGuard(t)
	p := &domain.Principal{ID: "admin", Email: "admin@admin.com", Role: domain.RoleAdmin}
	sid, err := sessions.Persist(context.Background(), p)
	require.NoError(t, err)
	token, err := sessions.IssueToken(sid, p)
	require.NoError(t, err)

	require.NoError(t, sessions.Logout(context.Background(), sid))

	// the token still verifies but the record is gone, so the session
	// is dead immediately
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/api/v1/agencies", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	g.Protect(nil, okHandler)(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
