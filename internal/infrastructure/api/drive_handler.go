package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/basak2005/Google-workspace-Integration/internal/application"
	"github.com/basak2005/Google-workspace-Integration/internal/application/services"
)

// DriveHandler serves the /drive routes.
type DriveHandler struct {
	drive   *services.DriveService
	manager *application.CredentialManager
	logger  zerolog.Logger
}

// NewDriveHandler creates the drive routes handler.
func NewDriveHandler(drive *services.DriveService, manager *application.CredentialManager, logger zerolog.Logger) *DriveHandler {
	return &DriveHandler{drive: drive, manager: manager, logger: logger}
}

// ListFiles handles GET /drive/files.
func (h *DriveHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	rec, ok := credential(r.Context(), w, h.manager, h.logger)
	if !ok {
		return
	}
	files, err := h.drive.ListFiles(r.Context(), rec, queryInt64(r, "max_results", 10), r.URL.Query().Get("query"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"files": files})
}

// GetFile handles GET /drive/files/{fileID}.
func (h *DriveHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	rec, ok := credential(r.Context(), w, h.manager, h.logger)
	if !ok {
		return
	}
	file, err := h.drive.GetFile(r.Context(), rec, chi.URLParam(r, "fileID"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, file)
}

// DeleteFile handles DELETE /drive/files/{fileID}.
func (h *DriveHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	rec, ok := credential(r.Context(), w, h.manager, h.logger)
	if !ok {
		return
	}
	if err := h.drive.DeleteFile(r.Context(), rec, chi.URLParam(r, "fileID")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "file deleted"})
}

// CreateFolder handles POST /drive/folders.
func (h *DriveHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	rec, ok := credential(r.Context(), w, h.manager, h.logger)
	if !ok {
		return
	}

	var input struct {
		Name     string `json:"name"`
		ParentID string `json:"parent_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "name is required"})
		return
	}

	folder, err := h.drive.CreateFolder(r.Context(), rec, input.Name, input.ParentID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, folder)
}

// GetQuota handles GET /drive/quota.
func (h *DriveHandler) GetQuota(w http.ResponseWriter, r *http.Request) {
	rec, ok := credential(r.Context(), w, h.manager, h.logger)
	if !ok {
		return
	}
	quota, err := h.drive.GetQuota(r.Context(), rec)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, quota)
}
