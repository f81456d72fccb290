package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/basak2005/Google-workspace-Integration/internal/application"
	"github.com/basak2005/Google-workspace-Integration/internal/application/services"
)

// GmailHandler serves the /gmail routes.
type GmailHandler struct {
	gmail   *services.GmailService
	manager *application.CredentialManager
	logger  zerolog.Logger
}

// NewGmailHandler creates the gmail routes handler.
func NewGmailHandler(gmail *services.GmailService, manager *application.CredentialManager, logger zerolog.Logger) *GmailHandler {
	return &GmailHandler{gmail: gmail, manager: manager, logger: logger}
}

// ListMessages handles GET /gmail/messages.
func (h *GmailHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	rec, ok := credential(r.Context(), w, h.manager, h.logger)
	if !ok {
		return
	}
	messages, err := h.gmail.ListMessages(r.Context(), rec, queryInt64(r, "max_results", 10), r.URL.Query().Get("query"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

// GetMessage handles GET /gmail/messages/{messageID}.
func (h *GmailHandler) GetMessage(w http.ResponseWriter, r *http.Request) {
	rec, ok := credential(r.Context(), w, h.manager, h.logger)
	if !ok {
		return
	}
	message, err := h.gmail.GetMessage(r.Context(), rec, chi.URLParam(r, "messageID"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, message)
}

// Send handles POST /gmail/send.
func (h *GmailHandler) Send(w http.ResponseWriter, r *http.Request) {
	rec, ok := credential(r.Context(), w, h.manager, h.logger)
	if !ok {
		return
	}

	var input services.SendMessageInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if input.To == "" || input.Subject == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "to and subject are required"})
		return
	}

	id, err := h.gmail.Send(r.Context(), rec, input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "email sent", "id": id})
}

// Labels handles GET /gmail/labels.
func (h *GmailHandler) Labels(w http.ResponseWriter, r *http.Request) {
	rec, ok := credential(r.Context(), w, h.manager, h.logger)
	if !ok {
		return
	}
	labels, err := h.gmail.Labels(r.Context(), rec)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"labels": labels})
}
