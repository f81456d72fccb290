package api

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/basak2005/Google-workspace-Integration/internal/application"
	"github.com/basak2005/Google-workspace-Integration/internal/application/assistant"
)

// AssistantHandler serves the /assistant routes.
type AssistantHandler struct {
	assistant *assistant.Assistant
	manager   *application.CredentialManager
	logger    zerolog.Logger
}

// NewAssistantHandler creates the assistant routes handler.
func NewAssistantHandler(a *assistant.Assistant, manager *application.CredentialManager, logger zerolog.Logger) *AssistantHandler {
	return &AssistantHandler{assistant: a, manager: manager, logger: logger}
}

// DailySummary handles GET /assistant/daily-summary. The optional context
// query parameter is passed through to the model prompt.
func (h *AssistantHandler) DailySummary(w http.ResponseWriter, r *http.Request) {
	rec, ok := credential(r.Context(), w, h.manager, h.logger)
	if !ok {
		return
	}

	summary, err := h.assistant.DailySummary(r.Context(), rec, r.URL.Query().Get("context"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
