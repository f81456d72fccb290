package api

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/basak2005/Google-workspace-Integration/internal/application"
	"github.com/basak2005/Google-workspace-Integration/internal/application/services"
)

// UserHandler serves the /user and /maps routes.
type UserHandler struct {
	user    *services.UserService
	maps    *services.MapsService
	manager *application.CredentialManager
	logger  zerolog.Logger
}

// NewUserHandler creates the user profile and maps routes handler.
func NewUserHandler(user *services.UserService, maps *services.MapsService, manager *application.CredentialManager, logger zerolog.Logger) *UserHandler {
	return &UserHandler{user: user, maps: maps, manager: manager, logger: logger}
}

// Me handles GET /user/me.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	rec, ok := credential(r.Context(), w, h.manager, h.logger)
	if !ok {
		return
	}
	info, err := h.user.GetUserInfo(r.Context(), rec)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// Geocode handles GET /maps/geocode. The Geocoding API is keyed by the
// application's API key, so the session only gates access.
func (h *UserHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	if _, ok := credential(r.Context(), w, h.manager, h.logger); !ok {
		return
	}

	if !h.maps.Configured() {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "maps API key not configured"})
		return
	}

	address := r.URL.Query().Get("address")
	if address == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "address is required"})
		return
	}

	res, err := h.maps.Geocode(r.Context(), address)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
