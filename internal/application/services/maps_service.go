package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"
)

const geocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

// GeocodeResult is one geocoding match.
type GeocodeResult struct {
	FormattedAddress string `json:"formatted_address"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	PlaceID string `json:"place_id"`
}

// GeocodeResponse mirrors the Geocoding API response envelope.
type GeocodeResponse struct {
	Results []GeocodeResult `json:"results"`
	Status  string          `json:"status"`
}

// MapsService calls the Geocoding API with the application's API key.
// Unlike the other adapters it needs no user credential.
type MapsService struct {
	apiKey string
	logger zerolog.Logger
}

// NewMapsService creates a geocoding adapter.
func NewMapsService(apiKey string, logger zerolog.Logger) *MapsService {
	return &MapsService{apiKey: apiKey, logger: logger}
}

// Configured reports whether an API key is present.
func (s *MapsService) Configured() bool {
	return s.apiKey != ""
}

// Geocode resolves an address to coordinates.
func (s *MapsService) Geocode(ctx context.Context, address string) (*GeocodeResponse, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("GOOGLE_MAPS_API_KEY not configured")
	}

	u := fmt.Sprintf("%s?address=%s&key=%s", geocodeURL, url.QueryEscape(address), url.QueryEscape(s.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call geocoding API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding request failed with status %d", resp.StatusCode)
	}

	var out GeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode geocoding response: %w", err)
	}
	return &out, nil
}
