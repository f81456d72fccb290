package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"google.golang.org/api/youtube/v3"

	"github.com/basak2005/Google-workspace-Integration/internal/domain"
	googleinfra "github.com/basak2005/Google-workspace-Integration/internal/infrastructure/google"
)

// Video is a reshaped YouTube video.
type Video struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	ChannelTitle string `json:"channelTitle,omitempty"`
	PublishedAt  string `json:"publishedAt,omitempty"`
	ViewCount    uint64 `json:"viewCount,omitempty"`
}

// Playlist is a reshaped YouTube playlist.
type Playlist struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	ItemCount int64  `json:"itemCount"`
}

// YouTubeService adapts requests to the YouTube Data API.
type YouTubeService struct {
	limiter *googleinfra.RateLimiter
	logger  zerolog.Logger
}

// NewYouTubeService creates a youtube adapter.
func NewYouTubeService(logger zerolog.Logger) *YouTubeService {
	return &YouTubeService{
		limiter: googleinfra.NewRateLimiter(googleinfra.ServiceYouTube),
		logger:  logger,
	}
}

// Search searches videos by query.
func (s *YouTubeService) Search(ctx context.Context, rec *domain.CredentialRecord, query string, maxResults int64, order string) ([]Video, error) {
	svc, err := s.service(ctx, rec)
	if err != nil {
		return nil, err
	}
	call := svc.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(maxResults).
		Context(ctx)
	if order != "" {
		call = call.Order(order)
	}
	res, err := call.Do()
	if err != nil {
		return nil, googleinfra.WrapError(err)
	}
	videos := make([]Video, 0, len(res.Items))
	for _, item := range res.Items {
		v := Video{}
		if item.Id != nil {
			v.ID = item.Id.VideoId
		}
		if item.Snippet != nil {
			v.Title = item.Snippet.Title
			v.Description = item.Snippet.Description
			v.ChannelTitle = item.Snippet.ChannelTitle
			v.PublishedAt = item.Snippet.PublishedAt
		}
		videos = append(videos, v)
	}
	return videos, nil
}

// GetVideo returns one video with statistics.
func (s *YouTubeService) GetVideo(ctx context.Context, rec *domain.CredentialRecord, videoID string) (*Video, error) {
	svc, err := s.service(ctx, rec)
	if err != nil {
		return nil, err
	}
	res, err := svc.Videos.List([]string{"snippet", "statistics"}).Id(videoID).Context(ctx).Do()
	if err != nil {
		return nil, googleinfra.WrapError(err)
	}
	if len(res.Items) == 0 {
		return nil, googleinfra.ErrNotFound
	}
	item := res.Items[0]
	v := Video{ID: item.Id}
	if item.Snippet != nil {
		v.Title = item.Snippet.Title
		v.Description = item.Snippet.Description
		v.ChannelTitle = item.Snippet.ChannelTitle
		v.PublishedAt = item.Snippet.PublishedAt
	}
	if item.Statistics != nil {
		v.ViewCount = item.Statistics.ViewCount
	}
	return &v, nil
}

// ListPlaylists lists the authenticated user's playlists.
func (s *YouTubeService) ListPlaylists(ctx context.Context, rec *domain.CredentialRecord, maxResults int64) ([]Playlist, error) {
	svc, err := s.service(ctx, rec)
	if err != nil {
		return nil, err
	}
	res, err := svc.Playlists.List([]string{"snippet", "contentDetails"}).
		Mine(true).
		MaxResults(maxResults).
		Context(ctx).Do()
	if err != nil {
		return nil, googleinfra.WrapError(err)
	}
	playlists := make([]Playlist, 0, len(res.Items))
	for _, item := range res.Items {
		p := Playlist{ID: item.Id}
		if item.Snippet != nil {
			p.Title = item.Snippet.Title
		}
		if item.ContentDetails != nil {
			p.ItemCount = item.ContentDetails.ItemCount
		}
		playlists = append(playlists, p)
	}
	return playlists, nil
}

func (s *YouTubeService) service(ctx context.Context, rec *domain.CredentialRecord) (*youtube.Service, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	svc, err := googleinfra.NewYouTubeService(ctx, googleinfra.StaticTokenSource(rec))
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}
	return svc, nil
}
