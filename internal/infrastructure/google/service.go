// Package google provides shared infrastructure for the Google product
// adapters: service factories bound to a per-request token source, error
// classification for googleapi errors, and client-side rate limiting.
package google

import (
	"context"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
	"google.golang.org/api/people/v1"
	"google.golang.org/api/sheets/v4"
	"google.golang.org/api/tasks/v1"
	"google.golang.org/api/youtube/v3"
)

// NewCalendarService creates a Google Calendar API service.
func NewCalendarService(ctx context.Context, ts oauth2.TokenSource) (*calendar.Service, error) {
	return calendar.NewService(ctx, option.WithTokenSource(ts))
}

// NewTasksService creates a Google Tasks API service.
func NewTasksService(ctx context.Context, ts oauth2.TokenSource) (*tasks.Service, error) {
	return tasks.NewService(ctx, option.WithTokenSource(ts))
}

// NewGmailService creates a Gmail API service.
func NewGmailService(ctx context.Context, ts oauth2.TokenSource) (*gmail.Service, error) {
	return gmail.NewService(ctx, option.WithTokenSource(ts))
}

// NewDriveService creates a Google Drive API service.
func NewDriveService(ctx context.Context, ts oauth2.TokenSource) (*drive.Service, error) {
	return drive.NewService(ctx, option.WithTokenSource(ts))
}

// NewPeopleService creates a People (Contacts) API service.
func NewPeopleService(ctx context.Context, ts oauth2.TokenSource) (*people.Service, error) {
	return people.NewService(ctx, option.WithTokenSource(ts))
}

// NewSheetsService creates a Google Sheets API service.
func NewSheetsService(ctx context.Context, ts oauth2.TokenSource) (*sheets.Service, error) {
	return sheets.NewService(ctx, option.WithTokenSource(ts))
}

// NewYouTubeService creates a YouTube Data API service.
func NewYouTubeService(ctx context.Context, ts oauth2.TokenSource) (*youtube.Service, error) {
	return youtube.NewService(ctx, option.WithTokenSource(ts))
}
