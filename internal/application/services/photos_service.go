package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/basak2005/Google-workspace-Integration/internal/domain"
	googleinfra "github.com/basak2005/Google-workspace-Integration/internal/infrastructure/google"
)

// The Photos Library API has no discovery-generated client in
// google.golang.org/api, so this adapter calls its REST surface with an
// oauth2-authenticated HTTP client.
const photosBaseURL = "https://photoslibrary.googleapis.com/v1"

// Album is a reshaped Photos album.
type Album struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	ItemsCount string `json:"mediaItemsCount,omitempty"`
	URL        string `json:"productUrl,omitempty"`
}

// MediaItem is a reshaped Photos media item.
type MediaItem struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	MimeType string `json:"mimeType"`
	BaseURL  string `json:"baseUrl,omitempty"`
	URL      string `json:"productUrl,omitempty"`
}

// PhotosService adapts requests to the Google Photos Library API.
type PhotosService struct {
	limiter *googleinfra.RateLimiter
	logger  zerolog.Logger
}

// NewPhotosService creates a photos adapter.
func NewPhotosService(logger zerolog.Logger) *PhotosService {
	return &PhotosService{
		limiter: googleinfra.NewRateLimiter(googleinfra.ServicePhotos),
		logger:  logger,
	}
}

// ListAlbums lists the user's albums.
func (s *PhotosService) ListAlbums(ctx context.Context, rec *domain.CredentialRecord, pageSize int) ([]Album, error) {
	var out struct {
		Albums []Album `json:"albums"`
	}
	url := fmt.Sprintf("%s/albums?pageSize=%d", photosBaseURL, pageSize)
	if err := s.do(ctx, rec, http.MethodGet, url, nil, &out); err != nil {
		return nil, err
	}
	return out.Albums, nil
}

// CreateAlbum creates a new album.
func (s *PhotosService) CreateAlbum(ctx context.Context, rec *domain.CredentialRecord, title string) (*Album, error) {
	body := map[string]any{"album": map[string]string{"title": title}}
	var album Album
	if err := s.do(ctx, rec, http.MethodPost, photosBaseURL+"/albums", body, &album); err != nil {
		return nil, err
	}
	return &album, nil
}

// ListMediaItems lists the user's media items.
func (s *PhotosService) ListMediaItems(ctx context.Context, rec *domain.CredentialRecord, pageSize int) ([]MediaItem, error) {
	var out struct {
		MediaItems []MediaItem `json:"mediaItems"`
	}
	url := fmt.Sprintf("%s/mediaItems?pageSize=%d", photosBaseURL, pageSize)
	if err := s.do(ctx, rec, http.MethodGet, url, nil, &out); err != nil {
		return nil, err
	}
	return out.MediaItems, nil
}

func (s *PhotosService) do(ctx context.Context, rec *domain.CredentialRecord, method, url string, body, out any) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := googleinfra.AuthenticatedClient(ctx, rec).Do(req)
	if err != nil {
		return fmt.Errorf("failed to call photos API: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return googleinfra.ErrUnauthorized
	case http.StatusForbidden:
		return googleinfra.ErrForbidden
	case http.StatusNotFound:
		return googleinfra.ErrNotFound
	case http.StatusTooManyRequests:
		return googleinfra.ErrRateLimited
	default:
		return fmt.Errorf("photos API request failed with status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode photos response: %w", err)
	}
	return nil
}
