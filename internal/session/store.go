package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"travia-admin/internal/domain"
	"travia-admin/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// recordKey is the durable-storage key of a Session Record.
// The value is the serialized Principal; it is the sole persistence
// mechanism for "staying logged in".
func recordKey(sid string) string { return "user:" + sid }

// Store owns the persisted session state: one Session Record per live
// session, written on login, deleted on logout or on failed rehydration.
type Store struct {
	kv     store.KV
	ttl    time.Duration
	secret []byte
	logger *zap.Logger
}

func NewStore(kv store.KV, ttl time.Duration, jwtSecret string, logger *zap.Logger) *Store {
	return &Store{
		kv:     kv,
		ttl:    ttl,
		secret: []byte(jwtSecret),
		logger: logger,
	}
}

// Initialize rehydrates the Principal for a session id.
// Absent record: (nil, nil) — unauthenticated. A record that does not
// deserialize to a well-formed Principal is discarded and its key cleared
// (fail-safe to logged-out), also (nil, nil). Storage errors propagate.
func (s *Store) Initialize(ctx context.Context, sid string) (*domain.Principal, error) {
	if sid == "" {
		return nil, nil
	}

	raw, err := s.kv.Get(ctx, recordKey(sid))
	if err != nil {
		if err == store.ErrMiss {
			return nil, nil
		}
		return nil, fmt.Errorf("session: read record: %w", err)
	}

	var p domain.Principal
	if err := json.Unmarshal([]byte(raw), &p); err != nil || !p.Valid() {
		s.logger.Warn("Discarding corrupt session record",
			zap.String("session_id", sid),
			zap.Error(err),
		)
		_ = s.kv.Del(ctx, recordKey(sid))
		return nil, nil
	}

	return &p, nil
}

// Persist writes the Session Record and returns the new session id.
// Called by the login flow after all credential checks pass; last write
// wins when logins race.
func (s *Store) Persist(ctx context.Context, p *domain.Principal) (string, error) {
	if p == nil || !p.Valid() {
		return "", fmt.Errorf("session: refusing to persist malformed principal")
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("session: encode record: %w", err)
	}

	sid := uuid.NewString()
	if err := s.kv.Set(ctx, recordKey(sid), string(raw), s.ttl); err != nil {
		return "", fmt.Errorf("session: write record: %w", err)
	}
	return sid, nil
}

// Logout deletes the Session Record unconditionally; idempotent.
func (s *Store) Logout(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	return s.kv.Del(ctx, recordKey(sid))
}

// IsAuthenticated reports whether a live record exists for the session id.
func (s *Store) IsAuthenticated(ctx context.Context, sid string) bool {
	p, err := s.Initialize(ctx, sid)
	return err == nil && p != nil
}
