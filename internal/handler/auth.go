package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/auth"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/domain"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/logger"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/metrics"
)

// SignUpRequest represents the request to create an account
type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	FarmName string `json:"farm_name"`
}

// SignInRequest represents the request to authenticate with credentials
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse describes the signed-in user and session state
type SessionResponse struct {
	State         string `json:"state"`
	UserID        string `json:"user_id,omitempty"`
	Email         string `json:"email,omitempty"`
	Name          string `json:"name,omitempty"`
	FarmName      string `json:"farm_name,omitempty"`
	EmailVerified bool   `json:"email_verified"`
}

// HandleSignUp registers a new account and starts a session for it
func HandleSignUp(authService auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SignUpRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode sign-up request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		user, err := authService.SignUp(r.Context(), auth.SignUpInput{
			Email:    req.Email,
			Password: req.Password,
			Name:     req.Name,
			FarmName: req.FarmName,
		})
		if err != nil {
			log.Warn("Sign-up failed", "email", req.Email, "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		log.Info("User signed up", "user_id", user.ID)
		metrics.SignUps.Inc()
		respondJSON(w, http.StatusCreated, sessionResponse(authService, user))
	}
}

// HandleSignIn authenticates credentials and starts a session
func HandleSignIn(authService auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SignInRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode sign-in request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		user, err := authService.SignIn(r.Context(), req.Email, req.Password)
		if err != nil {
			log.Warn("Sign-in failed", "email", req.Email, "error", err)
			metrics.SignInFailures.Inc()
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		log.Info("User signed in", "user_id", user.ID)
		metrics.SignIns.Inc()
		respondJSON(w, http.StatusOK, sessionResponse(authService, user))
	}
}

// HandleSignOut ends the current session. Signing out while already signed
// out succeeds.
func HandleSignOut(authService auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		if err := authService.SignOut(r.Context()); err != nil {
			log.Error("Sign-out failed", "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSignedOutSuccess})
	}
}

// HandleSession reports the current auth state and, when signed in, the user
func HandleSession(authService auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		if authService.CurrentUserID() == "" {
			respondJSON(w, http.StatusOK, SessionResponse{State: string(authService.State())})
			return
		}

		user, err := authService.CurrentUser(r.Context())
		if err != nil {
			log.Warn("Failed to load current user", "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, sessionResponse(authService, user))
	}
}

// HandleResendVerification re-sends the verification email for the signed-in
// user
func HandleResendVerification(authService auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		if err := authService.ResendVerificationEmail(r.Context()); err != nil {
			log.Warn("Failed to resend verification email", "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgVerificationEmailResent})
	}
}

func sessionResponse(authService auth.Service, user *domain.User) SessionResponse {
	return SessionResponse{
		State:         string(authService.State()),
		UserID:        user.ID,
		Email:         user.Email,
		Name:          user.Name,
		FarmName:      user.FarmName,
		EmailVerified: user.EmailVerified,
	}
}
