package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/basak2005/Google-workspace-Integration/internal/application"
	"github.com/basak2005/Google-workspace-Integration/internal/application/services"
)

// YouTubeHandler serves the /youtube routes.
type YouTubeHandler struct {
	youtube *services.YouTubeService
	manager *application.CredentialManager
	logger  zerolog.Logger
}

// NewYouTubeHandler creates the youtube routes handler.
func NewYouTubeHandler(youtube *services.YouTubeService, manager *application.CredentialManager, logger zerolog.Logger) *YouTubeHandler {
	return &YouTubeHandler{youtube: youtube, manager: manager, logger: logger}
}

// Search handles GET /youtube/search.
func (h *YouTubeHandler) Search(w http.ResponseWriter, r *http.Request) {
	rec, ok := credential(r.Context(), w, h.manager, h.logger)
	if !ok {
		return
	}

	query := r.URL.Query().Get("query")
	if query == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "query is required"})
		return
	}

	videos, err := h.youtube.Search(r.Context(), rec, query, queryInt64(r, "max_results", 10), r.URL.Query().Get("order"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"videos": videos})
}

// GetVideo handles GET /youtube/videos/{videoID}.
func (h *YouTubeHandler) GetVideo(w http.ResponseWriter, r *http.Request) {
	rec, ok := credential(r.Context(), w, h.manager, h.logger)
	if !ok {
		return
	}
	video, err := h.youtube.GetVideo(r.Context(), rec, chi.URLParam(r, "videoID"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, video)
}

// ListPlaylists handles GET /youtube/playlists.
func (h *YouTubeHandler) ListPlaylists(w http.ResponseWriter, r *http.Request) {
	rec, ok := credential(r.Context(), w, h.manager, h.logger)
	if !ok {
		return
	}
	playlists, err := h.youtube.ListPlaylists(r.Context(), rec, queryInt64(r, "max_results", 25))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"playlists": playlists})
}
