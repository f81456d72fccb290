package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/basak2005/Google-workspace-Integration/internal/application"
	"github.com/basak2005/Google-workspace-Integration/internal/application/services"
)

// ContactsHandler serves the /contacts routes.
type ContactsHandler struct {
	contacts *services.ContactsService
	manager  *application.CredentialManager
	logger   zerolog.Logger
}

// NewContactsHandler creates the contacts routes handler.
func NewContactsHandler(contacts *services.ContactsService, manager *application.CredentialManager, logger zerolog.Logger) *ContactsHandler {
	return &ContactsHandler{contacts: contacts, manager: manager, logger: logger}
}

// ListContacts handles GET /contacts.
func (h *ContactsHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	rec, ok := credential(r.Context(), w, h.manager, h.logger)
	if !ok {
		return
	}
	contacts, err := h.contacts.ListContacts(r.Context(), rec, queryInt64(r, "max_results", 50))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"contacts": contacts})
}

// SearchContacts handles GET /contacts/search.
func (h *ContactsHandler) SearchContacts(w http.ResponseWriter, r *http.Request) {
	rec, ok := credential(r.Context(), w, h.manager, h.logger)
	if !ok {
		return
	}

	query := r.URL.Query().Get("query")
	if query == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "query is required"})
		return
	}

	contacts, err := h.contacts.SearchContacts(r.Context(), rec, query)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"contacts": contacts})
}

// CreateContact handles POST /contacts.
func (h *ContactsHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	rec, ok := credential(r.Context(), w, h.manager, h.logger)
	if !ok {
		return
	}

	var input services.ContactInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if input.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "name is required"})
		return
	}

	contact, err := h.contacts.CreateContact(r.Context(), rec, input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, contact)
}

// DeleteContact handles DELETE /contacts/{resourceID}.
func (h *ContactsHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	rec, ok := credential(r.Context(), w, h.manager, h.logger)
	if !ok {
		return
	}
	resourceName := "people/" + chi.URLParam(r, "resourceID")
	if err := h.contacts.DeleteContact(r.Context(), rec, resourceName); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "contact deleted"})
}
