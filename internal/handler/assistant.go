package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/chat"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/logger"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/metrics"
)

const maxUploadBytes = 8 << 20 // 8 MiB image cap

// AssistantChatRequest carries the full conversation; the client keeps no
// per-conversation state server side
type AssistantChatRequest struct {
	Messages []chat.Message `json:"messages"`
}

// AssistantResponse is the assistant's reply
type AssistantResponse struct {
	Reply string `json:"reply"`
}

// HandleAssistantChat forwards a conversation to the chat provider
func HandleAssistantChat(client *chat.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req AssistantChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode assistant request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}
		if len(req.Messages) == 0 {
			respondError(w, http.StatusBadRequest, ErrMsgPromptRequired)
			return
		}

		reply, err := client.ChatCompletion(r.Context(), chat.ChatRequest{Messages: req.Messages})
		if err != nil {
			log.Warn("Assistant request failed", "error", err)
			metrics.AssistantRequests.WithLabelValues("error").Inc()
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		metrics.AssistantRequests.WithLabelValues("ok").Inc()
		respondJSON(w, http.StatusOK, AssistantResponse{Reply: reply})
	}
}

// HandleAssistantImage accepts a multipart image upload plus a prompt and asks
// the provider to describe the image. The upload is spooled to a temp file for
// the duration of the call.
func HandleAssistantImage(client *chat.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			log.Warn("Failed to parse multipart form", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		prompt := strings.TrimSpace(r.FormValue("prompt"))
		if prompt == "" {
			respondError(w, http.StatusBadRequest, ErrMsgPromptRequired)
			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgImageRequired)
			return
		}
		defer file.Close()

		tmp, err := os.CreateTemp("", "assistant-image-*"+filepath.Ext(header.Filename))
		if err != nil {
			log.Error("Failed to create temp file", "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgGenericServerError)
			return
		}
		defer os.Remove(tmp.Name())

		if _, err := io.Copy(tmp, file); err != nil {
			tmp.Close()
			log.Error("Failed to spool upload", "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgGenericServerError)
			return
		}
		tmp.Close()

		reply, err := client.AnalyzeImage(r.Context(), chat.ImageRequest{
			ImagePath: tmp.Name(),
			Prompt:    prompt,
		})
		if err != nil {
			log.Warn("Assistant image request failed", "error", err)
			metrics.AssistantRequests.WithLabelValues("error").Inc()
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		metrics.AssistantRequests.WithLabelValues("ok").Inc()
		respondJSON(w, http.StatusOK, AssistantResponse{Reply: reply})
	}
}
