package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/domain"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/logger"
)

const (
	// MinPasswordLength is the minimum accepted password length
	MinPasswordLength = 6

	// sessionLifetime bounds how long a persisted session stays valid
	sessionLifetime = 30 * 24 * time.Hour

	userCacheSize = 8
	userCacheTTL  = 30 * time.Second
)

// Service owns the authentication state machine and is the single source of
// truth for who is signed in on this device.
type Service interface {
	SignUp(ctx context.Context, input SignUpInput) (*domain.User, error)
	SignIn(ctx context.Context, email, password string) (*domain.User, error)
	SignOut(ctx context.Context) error
	RestoreSession(ctx context.Context) (*domain.User, error)
	ResendVerificationEmail(ctx context.Context) error

	// State returns the current lifecycle state
	State() State
	// Session returns the live session, ok=false when signed out
	Session() (domain.Session, bool)
	// CurrentUserID returns the signed-in user's id, or "" when signed out
	CurrentUserID() string
	// CurrentUser fetches the signed-in user's record from the provider,
	// through a short-lived cache
	CurrentUser(ctx context.Context) (*domain.User, error)
}

// SignUpInput carries the fields of a registration request
type SignUpInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Name     string `validate:"required"`
	FarmName string
}

type service struct {
	provider IdentityProvider
	sessions *SessionStore
	validate *validator.Validate
	cache    *userCache

	mu      sync.RWMutex
	state   State
	session domain.Session
}

// NewService creates the auth service. The initial state is Restoring;
// callers invoke RestoreSession once at startup to settle into SignedOut or
// SignedIn.
func NewService(provider IdentityProvider, sessions *SessionStore) Service {
	return &service{
		provider: provider,
		sessions: sessions,
		validate: validator.New(),
		cache:    newUserCache(userCacheSize, userCacheTTL),
		state:    StateRestoring,
	}
}

func (s *service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *service) Session() (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session, s.state.SignedIn()
}

func (s *service) CurrentUserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.state.SignedIn() {
		return ""
	}
	return s.session.UserID
}

// SignUp validates input before any I/O, registers the account with the
// provider, persists the new session, then reports completion.
func (s *service) SignUp(ctx context.Context, input SignUpInput) (*domain.User, error) {
	log := logger.FromContext(ctx)

	if err := s.validate.Struct(input); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			switch fieldErrs[0].Field() {
			case "Password":
				return nil, fmt.Errorf("%w: %s", domain.ErrValidation, domain.ErrMsgPasswordTooWeak)
			case "Email":
				return nil, fmt.Errorf("%w: %s", domain.ErrValidation, domain.ErrMsgInvalidEmail)
			default:
				return nil, fmt.Errorf("%w: %s is required", domain.ErrValidation, fieldErrs[0].Field())
			}
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	s.setState(StateAuthenticating)

	user, err := s.provider.CreateUser(ctx, input.Email, input.Password, input.Name, input.FarmName)
	if err != nil {
		s.setState(StateSignedOut)
		return nil, fmt.Errorf("sign up: %w", err)
	}

	if err := s.establishSession(ctx, user); err != nil {
		return nil, err
	}

	log.Info("User signed up", "user_id", user.ID, "email_verified", user.EmailVerified)
	return user, nil
}

// SignIn authenticates against the provider and persists the session before
// the operation is reported complete.
func (s *service) SignIn(ctx context.Context, email, password string) (*domain.User, error) {
	log := logger.FromContext(ctx)

	s.setState(StateAuthenticating)

	user, err := s.provider.Authenticate(ctx, email, password)
	if err != nil {
		s.setState(StateSignedOut)
		return nil, fmt.Errorf("sign in: %w", err)
	}

	if err := s.establishSession(ctx, user); err != nil {
		return nil, err
	}

	log.Info("User signed in", "user_id", user.ID)
	return user, nil
}

// SignOut clears the session from persistence and memory. Idempotent: signing
// out while already signed out is a no-op, not an error. A failed clear is an
// error, not a warning: reporting success while the persisted session survives
// would let the next restore resurrect a session the user explicitly ended.
func (s *service) SignOut(ctx context.Context) error {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	if !s.state.SignedIn() {
		s.state = StateSignedOut
		s.mu.Unlock()
		return nil
	}
	userID := s.session.UserID
	prior := s.state
	s.state = StateSigningOut
	s.mu.Unlock()

	// Persisted state is cleared before the in-memory transition completes,
	// so a crash in between restores as signed-out.
	if err := s.sessions.Clear(ctx); err != nil {
		log.Error("Failed to clear persisted session", "error", err)
		s.mu.Lock()
		s.state = prior
		s.mu.Unlock()
		return fmt.Errorf("%w: clear persisted session: %v", domain.ErrStorage, err)
	}

	s.mu.Lock()
	s.session = domain.Session{}
	s.state = StateSignedOut
	s.mu.Unlock()

	s.cache.Purge()
	log.Info("User signed out", "user_id", userID)
	return nil
}

// RestoreSession loads the persisted session at startup and validates it
// against the provider. It never fails on missing or corrupt persisted data;
// every failure path settles into SignedOut with a nil user.
func (s *service) RestoreSession(ctx context.Context) (*domain.User, error) {
	log := logger.FromContext(ctx)

	sess, ok := s.sessions.Load(ctx)
	if !ok {
		s.setState(StateSignedOut)
		return nil, nil
	}

	if sess.Expired(time.Now()) {
		log.Debug("Persisted session expired, discarding", "user_id", sess.UserID)
		_ = s.sessions.Clear(ctx)
		s.setState(StateSignedOut)
		return nil, nil
	}

	user, err := s.provider.GetUserByID(ctx, sess.UserID)
	if err != nil {
		log.Warn("Persisted session failed validation, discarding",
			"user_id", sess.UserID, "error", err)
		_ = s.sessions.Clear(ctx)
		s.setState(StateSignedOut)
		return nil, nil
	}

	s.mu.Lock()
	s.session = sess
	s.state = signedInState(user)
	s.mu.Unlock()

	s.cache.Set(user)
	log.Info("Session restored", "user_id", user.ID)
	return user, nil
}

// ResendVerificationEmail asks the provider to resend the verification mail.
// Requires a session; does not change state.
func (s *service) ResendVerificationEmail(ctx context.Context) error {
	userID := s.CurrentUserID()
	if userID == "" {
		return domain.ErrNotAuthenticated
	}

	if err := s.provider.SendVerificationEmail(ctx, userID); err != nil {
		return fmt.Errorf("resend verification email: %w", err)
	}
	return nil
}

func (s *service) CurrentUser(ctx context.Context) (*domain.User, error) {
	userID := s.CurrentUserID()
	if userID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	if user, ok := s.cache.Get(userID); ok {
		return user, nil
	}

	user, err := s.provider.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch current user: %w", err)
	}
	s.cache.Set(user)

	// Email verification may have happened elsewhere; reflect it in state
	s.mu.Lock()
	if s.state.SignedIn() && s.session.UserID == user.ID {
		s.state = signedInState(user)
	}
	s.mu.Unlock()

	return user, nil
}

// establishSession mints and persists a session for user, then transitions to
// the signed-in state. Persistence happens first: the operation is only
// reported complete once the session is durable.
func (s *service) establishSession(ctx context.Context, user *domain.User) error {
	expires := time.Now().Add(sessionLifetime)
	sess := domain.Session{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: &expires,
	}

	if err := s.sessions.Save(ctx, sess); err != nil {
		s.setState(StateSignedOut)
		return fmt.Errorf("establish session: %w", err)
	}

	s.mu.Lock()
	s.session = sess
	s.state = signedInState(user)
	s.mu.Unlock()

	s.cache.Set(user)
	return nil
}

func (s *service) setState(state State) {
	s.mu.Lock()
	s.state = state
	if !state.SignedIn() {
		s.session = domain.Session{}
	}
	s.mu.Unlock()
}

func signedInState(user *domain.User) State {
	if !user.EmailVerified {
		return StateVerificationPending
	}
	return StateSignedIn
}
