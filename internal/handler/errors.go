package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed = "Method not allowed"
	ErrMsgInvalidRequest   = "Invalid request body"
	ErrMsgUnknownError     = "Unknown error"

	// Generic messages
	ErrMsgGenericServerError = "Something went wrong"

	// Auth messages
	ErrMsgEmailTakenError     = "An account with that email already exists"
	ErrMsgBadCredentialsError = "Invalid email or password"
	ErrMsgSignInRequiredError = "Sign in to continue"
	ErrMsgUserNotFoundError   = "User not found"
	ErrMsgSessionChangedError = "Session changed, please retry"

	// Assistant messages
	ErrMsgAssistantNotConfigured = "Assistant is not configured"
	ErrMsgAssistantUnavailable   = "Assistant is temporarily unavailable"
	ErrMsgPromptRequired         = "A prompt is required"
	ErrMsgImageRequired          = "An image file is required"

	// Collection messages
	ErrMsgUnknownCollection = "Unknown collection"
	ErrMsgSaveFailed        = "Failed to save changes"

	// Notification messages
	ErrMsgTitleRequired   = "A title is required"
	ErrMsgTriggerTimePast = "Trigger time must be in the future"
)

// Success messages for API responses
const (
	MsgSignedOutSuccess        = "Signed out"
	MsgVerificationEmailResent = "Verification email sent"
	MsgNotificationCancelled   = "Notification cancelled"
	MsgNotificationsCleared    = "Pending notifications cleared"
)
