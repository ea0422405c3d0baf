package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/auth"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/kvstore"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/logger"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/repository"
)

// CollectionResponse wraps a whole-collection read
type CollectionResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

// CollectionRequest wraps a whole-collection replace
type CollectionRequest[T any] struct {
	Items []T `json:"items"`
}

// currentStores resolves the signed-in user's collections, or nil when no one
// is signed in
func currentStores(authService auth.Service, store kvstore.Store) *repository.Stores {
	userID := authService.CurrentUserID()
	if userID == "" {
		return nil
	}
	return repository.NewStores(store, userID)
}

// HandleGetCollection returns the full persisted collection selected by pick.
// A session is required; the collection itself may be empty.
func HandleGetCollection[T any](authService auth.Service, store kvstore.Store,
	pick func(*repository.Stores) *repository.Collection[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stores := currentStores(authService, store)
		if stores == nil {
			respondError(w, http.StatusUnauthorized, ErrMsgSignInRequiredError)
			return
		}

		items := pick(stores).GetAll(r.Context())
		respondJSON(w, http.StatusOK, CollectionResponse[T]{Items: items, Count: len(items)})
	}
}

// SyncFunc mirrors a successful save to the remote per-record store. previous
// is the collection as it stood before the save; the return value reports
// whether the sync job was accepted and is advisory only.
type SyncFunc[T any] func(userID string, previous, current []T) bool

// validatable is implemented by records that carry numeric invariants
type validatable interface {
	Validate() error
}

// HandleSaveCollection replaces the full persisted collection selected by
// pick. The request body supersedes whatever was stored; there is no merge.
// When sync is non-nil the save is mirrored to the remote store in the
// background so summary counts reflect what the user saved.
func HandleSaveCollection[T any](authService auth.Service, store kvstore.Store,
	pick func(*repository.Stores) *repository.Collection[T], sync SyncFunc[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		stores := currentStores(authService, store)
		if stores == nil {
			respondError(w, http.StatusUnauthorized, ErrMsgSignInRequiredError)
			return
		}

		var req CollectionRequest[T]
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode collection request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if req.Items == nil {
			req.Items = []T{}
		}

		for _, item := range req.Items {
			if v, ok := any(item).(validatable); ok {
				if err := v.Validate(); err != nil {
					status, msg := mapServiceErrorToUserMessage(err)
					respondError(w, status, msg)
					return
				}
			}
		}

		col := pick(stores)

		var previous []T
		if sync != nil {
			previous = col.GetAll(r.Context())
		}

		if err := col.SaveAll(r.Context(), req.Items); err != nil {
			log.Error("Failed to save collection", "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgSaveFailed)
			return
		}

		if sync != nil {
			sync(authService.CurrentUserID(), previous, req.Items)
		}

		respondJSON(w, http.StatusOK, CollectionResponse[T]{Items: req.Items, Count: len(req.Items)})
	}
}
