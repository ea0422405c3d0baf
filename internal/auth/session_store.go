package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/domain"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/kvstore"
)

const (
	sessionNamespace = "auth"
	sessionKey       = "current_session"
)

// SessionStore persists the device's single session. Only the auth service
// writes through it; every other component receives the user id as read-only
// input.
type SessionStore struct {
	store kvstore.Store
}

// NewSessionStore creates a session store over the device key-value store
func NewSessionStore(store kvstore.Store) *SessionStore {
	return &SessionStore{store: store}
}

// Load reads the persisted session. ok=false covers both a missing key and a
// corrupt payload; corrupt persisted state is never an error here because
// restore must degrade to signed-out.
func (s *SessionStore) Load(ctx context.Context) (domain.Session, bool) {
	raw, ok, err := s.store.Get(ctx, sessionNamespace, sessionKey)
	if err != nil || !ok {
		return domain.Session{}, false
	}

	var sess domain.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return domain.Session{}, false
	}
	if sess.UserID == "" || sess.Token == "" {
		return domain.Session{}, false
	}
	return sess, true
}

// Save persists the session. Called before a sign-in/sign-up is reported
// complete so in-memory and persisted state cannot silently diverge.
func (s *SessionStore) Save(ctx context.Context, sess domain.Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("%w: marshal session: %v", domain.ErrStorage, err)
	}
	if err := s.store.Set(ctx, sessionNamespace, sessionKey, string(payload)); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// Clear removes the persisted session
func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, sessionNamespace, sessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
