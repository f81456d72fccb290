package services

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/rs/zerolog"
	"google.golang.org/api/gmail/v1"

	"github.com/basak2005/Google-workspace-Integration/internal/domain"
	googleinfra "github.com/basak2005/Google-workspace-Integration/internal/infrastructure/google"
)

// Message is a reshaped Gmail message summary.
type Message struct {
	ID       string `json:"id"`
	ThreadID string `json:"threadId"`
	Snippet  string `json:"snippet"`
	From     string `json:"from"`
	To       string `json:"to"`
	Subject  string `json:"subject"`
	Date     string `json:"date"`
	Body     string `json:"body,omitempty"`
}

// SendMessageInput describes an outgoing email.
type SendMessageInput struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Label is a reshaped Gmail label.
type Label struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// GmailService adapts requests to the Gmail API.
type GmailService struct {
	limiter *googleinfra.RateLimiter
	logger  zerolog.Logger
}

// NewGmailService creates a gmail adapter.
func NewGmailService(logger zerolog.Logger) *GmailService {
	return &GmailService{
		limiter: googleinfra.NewRateLimiter(googleinfra.ServiceGmail),
		logger:  logger,
	}
}

// ListMessages lists messages matching a Gmail search query, fetching
// metadata headers for each.
func (s *GmailService) ListMessages(ctx context.Context, rec *domain.CredentialRecord, maxResults int64, query string) ([]Message, error) {
	svc, err := s.service(ctx, rec)
	if err != nil {
		return nil, err
	}

	res, err := svc.Users.Messages.List("me").MaxResults(maxResults).Q(query).Context(ctx).Do()
	if err != nil {
		return nil, googleinfra.WrapError(err)
	}

	out := make([]Message, 0, len(res.Messages))
	for _, m := range res.Messages {
		detail, err := svc.Users.Messages.Get("me", m.Id).
			Format("metadata").
			MetadataHeaders("From", "To", "Subject", "Date").
			Context(ctx).Do()
		if err != nil {
			return nil, googleinfra.WrapError(err)
		}
		out = append(out, reshapeMessage(detail, false))
	}
	return out, nil
}

// GetMessage returns the full content of one message, decoding the first
// text/plain body part.
func (s *GmailService) GetMessage(ctx context.Context, rec *domain.CredentialRecord, messageID string) (*Message, error) {
	svc, err := s.service(ctx, rec)
	if err != nil {
		return nil, err
	}
	detail, err := svc.Users.Messages.Get("me", messageID).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, googleinfra.WrapError(err)
	}
	msg := reshapeMessage(detail, true)
	return &msg, nil
}

// Send sends a plain-text email from the authenticated account.
func (s *GmailService) Send(ctx context.Context, rec *domain.CredentialRecord, input SendMessageInput) (string, error) {
	svc, err := s.service(ctx, rec)
	if err != nil {
		return "", err
	}

	raw := fmt.Sprintf("To: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s",
		input.To, input.Subject, input.Body)
	sent, err := svc.Users.Messages.Send("me", &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw)),
	}).Context(ctx).Do()
	if err != nil {
		return "", googleinfra.WrapError(err)
	}
	return sent.Id, nil
}

// Labels lists the account's labels.
func (s *GmailService) Labels(ctx context.Context, rec *domain.CredentialRecord) ([]Label, error) {
	svc, err := s.service(ctx, rec)
	if err != nil {
		return nil, err
	}
	res, err := svc.Users.Labels.List("me").Context(ctx).Do()
	if err != nil {
		return nil, googleinfra.WrapError(err)
	}
	labels := make([]Label, 0, len(res.Labels))
	for _, l := range res.Labels {
		labels = append(labels, Label{ID: l.Id, Name: l.Name, Type: l.Type})
	}
	return labels, nil
}

func (s *GmailService) service(ctx context.Context, rec *domain.CredentialRecord) (*gmail.Service, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	svc, err := googleinfra.NewGmailService(ctx, googleinfra.StaticTokenSource(rec))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}
	return svc, nil
}

func reshapeMessage(detail *gmail.Message, withBody bool) Message {
	msg := Message{
		ID:       detail.Id,
		ThreadID: detail.ThreadId,
		Snippet:  detail.Snippet,
	}
	if detail.Payload == nil {
		return msg
	}
	for _, h := range detail.Payload.Headers {
		switch h.Name {
		case "From":
			msg.From = h.Value
		case "To":
			msg.To = h.Value
		case "Subject":
			msg.Subject = h.Value
		case "Date":
			msg.Date = h.Value
		}
	}
	if withBody {
		msg.Body = extractBody(detail.Payload)
	}
	return msg
}

func extractBody(payload *gmail.MessagePart) string {
	if len(payload.Parts) > 0 {
		for _, part := range payload.Parts {
			if part.MimeType == "text/plain" && part.Body != nil && part.Body.Data != "" {
				return decodeBody(part.Body.Data)
			}
		}
		return ""
	}
	if payload.Body != nil && payload.Body.Data != "" {
		return decodeBody(payload.Body.Data)
	}
	return ""
}

// decodeBody decodes Gmail's base64url body data, which may arrive with
// or without padding.
func decodeBody(data string) string {
	if decoded, err := base64.URLEncoding.DecodeString(data); err == nil {
		return string(decoded)
	}
	if decoded, err := base64.RawURLEncoding.DecodeString(data); err == nil {
		return string(decoded)
	}
	return ""
}
