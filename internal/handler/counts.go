package handler

import (
	"net/http"

	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/aggregate"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/auth"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/logger"
)

// HandleCounts reports the per-family record counts for the signed-in user.
// A result computed for a session that ended while the queries ran is
// discarded rather than served.
func HandleCounts(authService auth.Service, aggService aggregate.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID := authService.CurrentUserID()
		counts, err := aggService.GetCounts(r.Context(), userID)
		if err != nil {
			log.Warn("Failed to get counts", "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		if counts.ForUser != authService.CurrentUserID() {
			log.Warn("Discarding stale counts", "for_user", counts.ForUser)
			respondError(w, http.StatusConflict, ErrMsgSessionChangedError)
			return
		}

		respondJSON(w, http.StatusOK, counts)
	}
}
