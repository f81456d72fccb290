package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/basak2005/Google-workspace-Integration/internal/application"
	"github.com/basak2005/Google-workspace-Integration/internal/application/services"
)

// PhotosHandler serves the /photos routes.
type PhotosHandler struct {
	photos  *services.PhotosService
	manager *application.CredentialManager
	logger  zerolog.Logger
}

// NewPhotosHandler creates the photos routes handler.
func NewPhotosHandler(photos *services.PhotosService, manager *application.CredentialManager, logger zerolog.Logger) *PhotosHandler {
	return &PhotosHandler{photos: photos, manager: manager, logger: logger}
}

// ListAlbums handles GET /photos/albums.
func (h *PhotosHandler) ListAlbums(w http.ResponseWriter, r *http.Request) {
	rec, ok := credential(r.Context(), w, h.manager, h.logger)
	if !ok {
		return
	}
	albums, err := h.photos.ListAlbums(r.Context(), rec, int(queryInt64(r, "page_size", 20)))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"albums": albums})
}

// CreateAlbum handles POST /photos/albums.
func (h *PhotosHandler) CreateAlbum(w http.ResponseWriter, r *http.Request) {
	rec, ok := credential(r.Context(), w, h.manager, h.logger)
	if !ok {
		return
	}

	var input struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Title == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "title is required"})
		return
	}

	album, err := h.photos.CreateAlbum(r.Context(), rec, input.Title)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, album)
}

// ListMediaItems handles GET /photos/media.
func (h *PhotosHandler) ListMediaItems(w http.ResponseWriter, r *http.Request) {
	rec, ok := credential(r.Context(), w, h.manager, h.logger)
	if !ok {
		return
	}
	items, err := h.photos.ListMediaItems(r.Context(), rec, int(queryInt64(r, "page_size", 25)))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"mediaItems": items})
}
