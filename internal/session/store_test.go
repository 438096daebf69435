package session

import (
	"context"
	"testing"

	"travia-admin/internal/domain"
	"travia-admin/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore() (*Store, *store.MemoryKV) {
	kv := store.NewMemoryKV()
	return NewStore(kv, 0, "test-secret", zap.NewNop()), kv
}

func agencyPrincipal() *domain.Principal {
	return &domain.Principal{
		ID:         "a1",
		Email:      "viajes@example.com",
		Role:       domain.RoleAgency,
		AgencyID:   "a1",
		AgencyName: "Viajes Norte",
	}
}

func TestPersistInitializeRoundTrip(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	want := agencyPrincipal()
	sid, err := s.Persist(ctx, want)
	require.NoError(t, err)
	require.NotEmpty(t, sid)

	got, err := s.Initialize(ctx, sid)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *want, *got)
	assert.True(t, s.IsAuthenticated(ctx, sid))
}

func TestInitializeAbsentRecord(t *testing.T) {
	s, _ := newTestStore()

	p, err := s.Initialize(context.Background(), "no-such-session")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestInitializeDiscardsCorruptRecord(t *testing.T) {
	s, kv := newTestStore()
	ctx := context.Background()

	// not JSON at all
	require.NoError(t, kv.Set(ctx, "user:bad", "{{{", 0))
	p, err := s.Initialize(ctx, "bad")
	require.NoError(t, err)
	assert.Nil(t, p)
	_, err = kv.Get(ctx, "user:bad")
	assert.Equal(t, store.ErrMiss, err, "corrupt record must be cleared")

	// valid JSON, malformed principal (agency role without agency id)
	require.NoError(t, kv.Set(ctx, "user:halfbad", `{"id":"x","email":"x@y.z","role":"agencia"}`, 0))
	p, err = s.Initialize(ctx, "halfbad")
	require.NoError(t, err)
	assert.Nil(t, p)
	_, err = kv.Get(ctx, "user:halfbad")
	assert.Equal(t, store.ErrMiss, err)
}

func TestLogoutThenInitialize(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	sid, err := s.Persist(ctx, agencyPrincipal())
	require.NoError(t, err)

	require.NoError(t, s.Logout(ctx, sid))
	p, err := s.Initialize(ctx, sid)
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.False(t, s.IsAuthenticated(ctx, sid))

	// logout is idempotent
	require.NoError(t, s.Logout(ctx, sid))
}

func TestTokenRoundTrip(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	p := agencyPrincipal()
	sid, err := s.Persist(ctx, p)
	require.NoError(t, err)

	token, err := s.IssueToken(sid, p)
	require.NoError(t, err)

	got, err := s.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, sid, got)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	a, _ := newTestStore()
	other := NewStore(store.NewMemoryKV(), 0, "other-secret", zap.NewNop())

	p := agencyPrincipal()
	sid, err := a.Persist(context.Background(), p)
	require.NoError(t, err)
	token, err := a.IssueToken(sid, p)
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.Error(t, err)
}
