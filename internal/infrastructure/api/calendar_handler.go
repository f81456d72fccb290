package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/basak2005/Google-workspace-Integration/internal/application"
	"github.com/basak2005/Google-workspace-Integration/internal/application/services"
)

// CalendarHandler serves the /calendar routes.
type CalendarHandler struct {
	calendar *services.CalendarService
	manager  *application.CredentialManager
	logger   zerolog.Logger
}

// NewCalendarHandler creates the calendar routes handler.
func NewCalendarHandler(calendar *services.CalendarService, manager *application.CredentialManager, logger zerolog.Logger) *CalendarHandler {
	return &CalendarHandler{calendar: calendar, manager: manager, logger: logger}
}

// ListEvents handles GET /calendar/events.
func (h *CalendarHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	rec, ok := credential(r.Context(), w, h.manager, h.logger)
	if !ok {
		return
	}

	events, err := h.calendar.ListEvents(r.Context(), rec, queryInt64(r, "max_results", 10), 0)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

// CreateEvent handles POST /calendar/events.
func (h *CalendarHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	rec, ok := credential(r.Context(), w, h.manager, h.logger)
	if !ok {
		return
	}

	var input services.CreateEventInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if input.Summary == "" || input.Start == "" || input.End == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "summary, start, and end are required"})
		return
	}

	event, err := h.calendar.CreateEvent(r.Context(), rec, input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

// DeleteEvent handles DELETE /calendar/events/{eventID}.
func (h *CalendarHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	rec, ok := credential(r.Context(), w, h.manager, h.logger)
	if !ok {
		return
	}

	if err := h.calendar.DeleteEvent(r.Context(), rec, chi.URLParam(r, "eventID")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "event deleted"})
}

func queryInt64(r *http.Request, key string, def int64) int64 {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return def
}
