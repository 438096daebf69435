package service

import (
	"context"
	"testing"

	"travia-admin/internal/config"
	"travia-admin/internal/domain"
	"travia-admin/internal/repository"
	"travia-admin/internal/session"
	"travia-admin/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		AdminEmail:    "admin@admin.com",
		AdminPassword: "admin",
		JWTSecret:     "test-secret",
	}
}

func newTestAuthService(t *testing.T) (*AuthService, *repository.MemoryAgenciesRepository, *session.Store, *store.MemoryKV) {
	t.Helper()
	kv := store.NewMemoryKV()
	sessions := session.NewStore(kv, 0, "test-secret", zap.NewNop())
	agencies := repository.NewMemoryAgenciesRepository()
	svc := NewAuthService(sessions, agencies, testAuthConfig(), zap.NewNop())
	return svc, agencies, sessions, kv
}

func seedAgency(t *testing.T, agencies *repository.MemoryAgenciesRepository, email, password, status string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	id, err := agencies.CreateAgency(context.Background(), &domain.Agency{
		Name:         "Viajes Norte",
		Email:        email,
		PasswordHash: hash,
		Status:       status,
	})
	require.NoError(t, err)
	return id
}

func TestLoginAdminLiteral(t *testing.T) {
	svc, _, sessions, _ := newTestAuthService(t)
	ctx := context.Background()

	res, err := svc.Login(ctx, "admin@admin.com", "admin", "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, res.Principal.Role)
	assert.Empty(t, res.Principal.AgencyID)
	assert.NotEmpty(t, res.Token)

	// the token resolves back to the persisted record
	sid, err := sessions.VerifyToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.SessionID, sid)
	p, err := sessions.Initialize(ctx, sid)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, domain.RoleAdmin, p.Role)
}

func TestLoginAdminLiteralWrongPassword(t *testing.T) {
	svc, _, _, kv := newTestAuthService(t)

	_, err := svc.Login(context.Background(), "admin@admin.com", "nope", "127.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assertNoSessions(t, kv)
}

func TestLoginAdminLiteralIsExact(t *testing.T) {
	svc, _, _, kv := newTestAuthService(t)

	// only the exact literal names the admin; a case variant is just an
	// unknown email
	_, err := svc.Login(context.Background(), "Admin@Admin.com", "admin", "127.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assertNoSessions(t, kv)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _, kv := newTestAuthService(t)

	_, err := svc.Login(context.Background(), "nadie@example.com", "whatever", "127.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, "Credenciales incorrectas", err.Error())
	assertNoSessions(t, kv)
}

func TestLoginAgencyWrongPassword(t *testing.T) {
	svc, agencies, _, kv := newTestAuthService(t)
	seedAgency(t, agencies, "viajes@example.com", "secreta", domain.AgencyStatusActive)

	_, err := svc.Login(context.Background(), "viajes@example.com", "incorrecta", "127.0.0.1")
	// same message as an unknown email so the form cannot probe emails
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assertNoSessions(t, kv)
}

func TestLoginInactiveAgency(t *testing.T) {
	svc, agencies, _, kv := newTestAuthService(t)
	seedAgency(t, agencies, "viajes@example.com", "secreta", domain.AgencyStatusInactive)

	_, err := svc.Login(context.Background(), "viajes@example.com", "secreta", "127.0.0.1")
	assert.ErrorIs(t, err, ErrAgencyInactive)
	assert.Equal(t, "La agencia no está activa", err.Error())
	assertNoSessions(t, kv)
}

func TestLoginActiveAgency(t *testing.T) {
	svc, agencies, sessions, _ := newTestAuthService(t)
	id := seedAgency(t, agencies, "Viajes@Example.com", "secreta", domain.AgencyStatusActive)
	ctx := context.Background()

	// email match is case-insensitive
	res, err := svc.Login(ctx, "viajes@EXAMPLE.com", "secreta", "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAgency, res.Principal.Role)
	assert.Equal(t, id, res.Principal.AgencyID)
	assert.Equal(t, "Viajes Norte", res.Principal.AgencyName)

	p, err := sessions.Initialize(ctx, res.SessionID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, *res.Principal, *p)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	svc, agencies, sessions, _ := newTestAuthService(t)
	seedAgency(t, agencies, "viajes@example.com", "secreta", domain.AgencyStatusActive)
	ctx := context.Background()

	res, err := svc.Login(ctx, "viajes@example.com", "secreta", "127.0.0.1")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, res.SessionID))
	p, err := sessions.Initialize(ctx, res.SessionID)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func assertNoSessions(t *testing.T, kv *store.MemoryKV) {
	t.Helper()
	keys, err := kv.ScanKeys(context.Background(), "user:*")
	require.NoError(t, err)
	assert.Empty(t, keys, "failed login must not persist a session record")
}
