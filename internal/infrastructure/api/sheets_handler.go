package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/basak2005/Google-workspace-Integration/internal/application"
	"github.com/basak2005/Google-workspace-Integration/internal/application/services"
)

// SheetsHandler serves the /sheets routes.
type SheetsHandler struct {
	sheets  *services.SheetsService
	manager *application.CredentialManager
	logger  zerolog.Logger
}

// NewSheetsHandler creates the sheets routes handler.
func NewSheetsHandler(sheets *services.SheetsService, manager *application.CredentialManager, logger zerolog.Logger) *SheetsHandler {
	return &SheetsHandler{sheets: sheets, manager: manager, logger: logger}
}

// CreateSpreadsheet handles POST /sheets.
func (h *SheetsHandler) CreateSpreadsheet(w http.ResponseWriter, r *http.Request) {
	rec, ok := credential(r.Context(), w, h.manager, h.logger)
	if !ok {
		return
	}

	var input struct {
		Title  string   `json:"title"`
		Sheets []string `json:"sheets"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Title == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "title is required"})
		return
	}

	spreadsheet, err := h.sheets.CreateSpreadsheet(r.Context(), rec, input.Title, input.Sheets)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, spreadsheet)
}

// GetSpreadsheet handles GET /sheets/{spreadsheetID}.
func (h *SheetsHandler) GetSpreadsheet(w http.ResponseWriter, r *http.Request) {
	rec, ok := credential(r.Context(), w, h.manager, h.logger)
	if !ok {
		return
	}
	spreadsheet, err := h.sheets.GetSpreadsheet(r.Context(), rec, chi.URLParam(r, "spreadsheetID"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, spreadsheet)
}

// ReadRange handles GET /sheets/{spreadsheetID}/values.
func (h *SheetsHandler) ReadRange(w http.ResponseWriter, r *http.Request) {
	rec, ok := credential(r.Context(), w, h.manager, h.logger)
	if !ok {
		return
	}

	readRange := r.URL.Query().Get("range")
	if readRange == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "range is required"})
		return
	}

	values, err := h.sheets.ReadRange(r.Context(), rec, chi.URLParam(r, "spreadsheetID"), readRange)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"values": values})
}

// WriteRange handles PUT /sheets/{spreadsheetID}/values.
func (h *SheetsHandler) WriteRange(w http.ResponseWriter, r *http.Request) {
	rec, ok := credential(r.Context(), w, h.manager, h.logger)
	if !ok {
		return
	}

	var input services.ValueRangeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Range == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "range and values are required"})
		return
	}

	updated, err := h.sheets.WriteRange(r.Context(), rec, chi.URLParam(r, "spreadsheetID"), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"updated_cells": updated})
}

// AppendRows handles POST /sheets/{spreadsheetID}/values.
func (h *SheetsHandler) AppendRows(w http.ResponseWriter, r *http.Request) {
	rec, ok := credential(r.Context(), w, h.manager, h.logger)
	if !ok {
		return
	}

	var input services.ValueRangeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Range == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "range and values are required"})
		return
	}

	updated, err := h.sheets.AppendRows(r.Context(), rec, chi.URLParam(r, "spreadsheetID"), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"updated_cells": updated})
}
