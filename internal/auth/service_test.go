package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/domain"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/kvstore"
)

func newTestService(t *testing.T) (Service, *FakeProvider, *kvstore.Memory) {
	t.Helper()
	provider := NewFakeProvider()
	store := kvstore.NewMemory()
	svc := NewService(provider, NewSessionStore(store))
	return svc, provider, store
}

func validSignUp() SignUpInput {
	return SignUpInput{
		Email:    "alice@example.com",
		Password: "secret1",
		Name:     "Alice",
		FarmName: "Green Acres",
	}
}

func TestSignUpThenSignInYieldsSameUserID(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.SignUp(ctx, validSignUp())
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(ctx))

	signedIn, err := svc.SignIn(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, signedIn.ID)
}

func TestSignUpShortPasswordFailsBeforeAnyIO(t *testing.T) {
	svc, provider, store := newTestService(t)

	input := validSignUp()
	input.Password = "abc"

	_, err := svc.SignUp(context.Background(), input)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Contains(t, err.Error(), domain.ErrMsgPasswordTooWeak)

	// No provider call and no persistence write happened
	assert.Empty(t, provider.usersByEmail)
	if _, ok, _ := store.Get(context.Background(), sessionNamespace, sessionKey); ok {
		t.Error("validation failure must not persist a session")
	}
	assert.Equal(t, StateRestoring, svc.State(), "state untouched by pre-I/O validation failure")
}

func TestSignUpInvalidEmailFails(t *testing.T) {
	svc, _, _ := newTestService(t)

	input := validSignUp()
	input.Email = "not-an-email"

	_, err := svc.SignUp(context.Background(), input)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestSignUpDuplicateEmailConflicts(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, validSignUp())
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, validSignUp())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Equal(t, StateSignedOut, svc.State())
}

func TestSignInBadCredentials(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, validSignUp())
	require.NoError(t, err)
	require.NoError(t, svc.SignOut(ctx))

	_, err = svc.SignIn(ctx, "alice@example.com", "wrong-password")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAuthentication))
	assert.Equal(t, StateSignedOut, svc.State())
}

func TestSignUpEntersVerificationPendingAndResendWorks(t *testing.T) {
	svc, provider, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.SignUp(ctx, SignUpInput{
		Email:    "alice@example.com",
		Password: "secret1",
		Name:     "Alice",
		FarmName: "Green Acres",
	})
	require.NoError(t, err)
	assert.False(t, user.EmailVerified)
	assert.Equal(t, StateVerificationPending, svc.State())
	assert.True(t, svc.State().SignedIn())

	require.NoError(t, svc.ResendVerificationEmail(ctx))
	assert.Equal(t, 1, provider.VerificationSends[user.ID])
}

func TestResendVerificationWithoutSession(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.ResendVerificationEmail(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotAuthenticated))
}

func TestSignOutIsIdempotent(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, validSignUp())
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(ctx))
	assert.Equal(t, StateSignedOut, svc.State())

	require.NoError(t, svc.SignOut(ctx), "second sign-out must not error")
	assert.Equal(t, StateSignedOut, svc.State())
	assert.Empty(t, svc.CurrentUserID())
}

func TestSignOutFailedClearReportsStorageError(t *testing.T) {
	provider := NewFakeProvider()
	store := kvstore.NewMemory()
	ctx := context.Background()

	svc := NewService(provider, NewSessionStore(store))
	user, err := svc.SignUp(ctx, validSignUp())
	require.NoError(t, err)

	store.FailDeletes = errors.New("disk full")

	err = svc.SignOut(ctx)
	require.Error(t, err, "sign-out must not report complete with the session still persisted")
	assert.True(t, errors.Is(err, domain.ErrStorage))
	assert.True(t, svc.State().SignedIn(), "failed sign-out keeps the session live")
	assert.Equal(t, user.ID, svc.CurrentUserID())

	// Once the store recovers, sign-out completes and a restart stays out
	store.FailDeletes = nil
	require.NoError(t, svc.SignOut(ctx))
	assert.Equal(t, StateSignedOut, svc.State())

	second := NewService(provider, NewSessionStore(store))
	restored, err := second.RestoreSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, restored, "a signed-out user must not be signed back in on restart")
	assert.Equal(t, StateSignedOut, second.State())
}

func TestSignInPersistsSessionBeforeReturning(t *testing.T) {
	svc, _, store := newTestService(t)
	ctx := context.Background()

	user, err := svc.SignUp(ctx, validSignUp())
	require.NoError(t, err)

	raw, ok, err := store.Get(ctx, sessionNamespace, sessionKey)
	require.NoError(t, err)
	require.True(t, ok, "session must be durable once SignUp returns")
	assert.Contains(t, raw, user.ID)

	sess, signedIn := svc.Session()
	assert.True(t, signedIn)
	assert.Equal(t, user.ID, sess.UserID)
	assert.NotEmpty(t, sess.Token)
}

func TestRestoreSessionHappyPath(t *testing.T) {
	provider := NewFakeProvider()
	store := kvstore.NewMemory()
	ctx := context.Background()

	first := NewService(provider, NewSessionStore(store))
	user, err := first.SignUp(ctx, validSignUp())
	require.NoError(t, err)

	// Simulate a process restart: a fresh service over the same device store
	second := NewService(provider, NewSessionStore(store))
	assert.Equal(t, StateRestoring, second.State())

	restored, err := second.RestoreSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, user.ID, restored.ID)
	assert.True(t, second.State().SignedIn())
}

func TestRestoreSessionMissingPersistedState(t *testing.T) {
	svc, _, _ := newTestService(t)

	user, err := svc.RestoreSession(context.Background())
	require.NoError(t, err, "missing persisted session must not error")
	assert.Nil(t, user)
	assert.Equal(t, StateSignedOut, svc.State())
}

func TestRestoreSessionCorruptPersistedState(t *testing.T) {
	provider := NewFakeProvider()
	store := kvstore.NewMemory()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, sessionNamespace, sessionKey, "{corrupt"))

	svc := NewService(provider, NewSessionStore(store))
	user, err := svc.RestoreSession(ctx)
	require.NoError(t, err, "corrupt persisted session must not error")
	assert.Nil(t, user)
	assert.Equal(t, StateSignedOut, svc.State())
}

func TestRestoreSessionUnknownUserFallsBackToSignedOut(t *testing.T) {
	provider := NewFakeProvider()
	store := kvstore.NewMemory()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, sessionNamespace, sessionKey,
		`{"user_id":"ghost","token":"tok"}`))

	svc := NewService(provider, NewSessionStore(store))
	user, err := svc.RestoreSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.Equal(t, StateSignedOut, svc.State())

	// The invalid session was also cleared from persistence
	_, ok, _ := store.Get(ctx, sessionNamespace, sessionKey)
	assert.False(t, ok)
}

func TestCurrentUserReflectsVerification(t *testing.T) {
	svc, provider, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.SignUp(ctx, validSignUp())
	require.NoError(t, err)
	assert.Equal(t, StateVerificationPending, svc.State())

	provider.MarkVerified(user.ID)

	// Cache still holds the unverified copy inside the TTL window; purge by
	// signing out and restoring to force a provider round trip.
	require.NoError(t, svc.SignOut(ctx))
	_, err = svc.SignIn(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, StateSignedIn, svc.State())

	current, err := svc.CurrentUser(ctx)
	require.NoError(t, err)
	assert.True(t, current.EmailVerified)
}

func TestCurrentUserWithoutSession(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CurrentUser(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotAuthenticated))
}
