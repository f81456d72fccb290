// Package services contains the per-product Google service adapters. Each
// adapter is a thin, stateless translation layer: it receives a resolved
// credential record from the CredentialManager, calls the vendor API with
// a static token source, and reshapes the response. Adapters never
// refresh tokens themselves.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/api/calendar/v3"

	"github.com/basak2005/Google-workspace-Integration/internal/domain"
	googleinfra "github.com/basak2005/Google-workspace-Integration/internal/infrastructure/google"
)

// Event is the reshaped calendar event returned to clients.
type Event struct {
	ID          string `json:"id"`
	Summary     string `json:"summary"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	Start       string `json:"start"`
	End         string `json:"end"`
	HTMLLink    string `json:"htmlLink,omitempty"`
	MeetLink    string `json:"meetLink,omitempty"`
}

// CreateEventInput describes a calendar event to create.
type CreateEventInput struct {
	Summary     string   `json:"summary"`
	Description string   `json:"description,omitempty"`
	Location    string   `json:"location,omitempty"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	TimeZone    string   `json:"timezone,omitempty"`
	Attendees   []string `json:"attendees,omitempty"`
	WithMeet    bool     `json:"with_meet,omitempty"`
}

// CalendarService adapts requests to the Google Calendar API.
type CalendarService struct {
	limiter *googleinfra.RateLimiter
	logger  zerolog.Logger
}

// NewCalendarService creates a calendar adapter.
func NewCalendarService(logger zerolog.Logger) *CalendarService {
	return &CalendarService{
		limiter: googleinfra.NewRateLimiter(googleinfra.ServiceCalendar),
		logger:  logger,
	}
}

// ListEvents returns upcoming events on the primary calendar.
func (s *CalendarService) ListEvents(ctx context.Context, rec *domain.CredentialRecord, maxResults int64, daysAhead int) ([]Event, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	svc, err := googleinfra.NewCalendarService(ctx, googleinfra.StaticTokenSource(rec))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	now := time.Now().UTC()
	call := svc.Events.List("primary").
		TimeMin(now.Format(time.RFC3339)).
		MaxResults(maxResults).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx)
	if daysAhead > 0 {
		call = call.TimeMax(now.AddDate(0, 0, daysAhead).Format(time.RFC3339))
	}

	res, err := call.Do()
	if err != nil {
		return nil, googleinfra.WrapError(err)
	}

	events := make([]Event, 0, len(res.Items))
	for _, item := range res.Items {
		events = append(events, reshapeEvent(item))
	}
	return events, nil
}

// CreateEvent creates an event, optionally with a Google Meet link.
func (s *CalendarService) CreateEvent(ctx context.Context, rec *domain.CredentialRecord, input CreateEventInput) (*Event, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	svc, err := googleinfra.NewCalendarService(ctx, googleinfra.StaticTokenSource(rec))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	tz := input.TimeZone
	if tz == "" {
		tz = "UTC"
	}
	event := &calendar.Event{
		Summary:     input.Summary,
		Description: input.Description,
		Location:    input.Location,
		Start:       &calendar.EventDateTime{DateTime: input.Start, TimeZone: tz},
		End:         &calendar.EventDateTime{DateTime: input.End, TimeZone: tz},
	}
	for _, email := range input.Attendees {
		event.Attendees = append(event.Attendees, &calendar.EventAttendee{Email: email})
	}

	call := svc.Events.Insert("primary", event).Context(ctx)
	if len(input.Attendees) > 0 {
		call = call.SendUpdates("all")
	}
	if input.WithMeet {
		event.ConferenceData = &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{RequestId: uuid.NewString()},
		}
		call = call.ConferenceDataVersion(1)
	}

	created, err := call.Do()
	if err != nil {
		return nil, googleinfra.WrapError(err)
	}
	reshaped := reshapeEvent(created)
	return &reshaped, nil
}

// DeleteEvent removes an event from the primary calendar.
func (s *CalendarService) DeleteEvent(ctx context.Context, rec *domain.CredentialRecord, eventID string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	svc, err := googleinfra.NewCalendarService(ctx, googleinfra.StaticTokenSource(rec))
	if err != nil {
		return fmt.Errorf("failed to create calendar service: %w", err)
	}
	if err := svc.Events.Delete("primary", eventID).Context(ctx).Do(); err != nil {
		return googleinfra.WrapError(err)
	}
	return nil
}

func reshapeEvent(item *calendar.Event) Event {
	e := Event{
		ID:          item.Id,
		Summary:     item.Summary,
		Description: item.Description,
		Location:    item.Location,
		HTMLLink:    item.HtmlLink,
		MeetLink:    item.HangoutLink,
	}
	if item.Start != nil {
		e.Start = item.Start.DateTime
		if e.Start == "" {
			e.Start = item.Start.Date
		}
	}
	if item.End != nil {
		e.End = item.End.DateTime
		if e.End == "" {
			e.End = item.End.Date
		}
	}
	return e
}
