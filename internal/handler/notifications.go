package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/logger"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/notify"
)

// ScheduleNotificationRequest asks for a reminder at a point in time
type ScheduleNotificationRequest struct {
	Title       string            `json:"title"`
	Body        string            `json:"body"`
	TriggerTime time.Time         `json:"trigger_time"`
	Data        map[string]string `json:"data"`
}

// ScheduleNotificationResponse carries the id of the scheduled reminder
type ScheduleNotificationResponse struct {
	ID string `json:"id"`
}

// HandleScheduleNotification arms a reminder. A trigger time that is not
// strictly in the future is rejected rather than fired immediately.
func HandleScheduleNotification(scheduler *notify.Scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req ScheduleNotificationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode notification request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}
		if req.Title == "" {
			respondError(w, http.StatusBadRequest, ErrMsgTitleRequired)
			return
		}

		id := scheduler.ScheduleAt(req.Title, req.Body, req.TriggerTime, req.Data)
		if id == nil {
			respondError(w, http.StatusBadRequest, ErrMsgTriggerTimePast)
			return
		}

		respondJSON(w, http.StatusCreated, ScheduleNotificationResponse{ID: *id})
	}
}

// HandleCancelNotification cancels a pending reminder. Cancelling an unknown
// or already-fired id succeeds.
func HandleCancelNotification(scheduler *notify.Scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scheduler.Cancel(chi.URLParam(r, "id"))
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgNotificationCancelled})
	}
}

// HandleCancelAllNotifications clears every pending reminder
func HandleCancelAllNotifications(scheduler *notify.Scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scheduler.CancelAll()
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgNotificationsCleared})
	}
}
