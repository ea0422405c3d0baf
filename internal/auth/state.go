package auth

// State is the session lifecycle state
type State string

const (
	// StateRestoring is the initial state while a persisted session is being
	// loaded and validated at process start.
	StateRestoring State = "restoring"

	StateSignedOut      State = "signed_out"
	StateAuthenticating State = "authenticating"
	StateSignedIn       State = "signed_in"
	StateSigningOut     State = "signing_out"

	// StateVerificationPending is the SignedIn sub-state entered when the
	// signed-in user's email is not yet verified.
	StateVerificationPending State = "verification_pending"
)

// SignedIn reports whether the state represents an authenticated session,
// verification pending included.
func (s State) SignedIn() bool {
	return s == StateSignedIn || s == StateVerificationPending
}
