// Package assistant aggregates calendar, tasks, and gmail data into a
// prompt for a generative model and returns a daily-priorities summary.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/basak2005/Google-workspace-Integration/internal/application/services"
	"github.com/basak2005/Google-workspace-Integration/internal/domain"
	"github.com/basak2005/Google-workspace-Integration/internal/ports"
)

// Unread emails are pre-filtered to ones likely to contain actionable
// work before they reach the model.
var taskKeywords = []string{
	"action required", "pending", "deadline", "urgent", "please review",
	"waiting for", "follow up", "task", "request", "asap", "due date",
	"by tomorrow", "needs your", "reminder", "priority", "important",
}

// Summary is the aggregation result returned to the client.
type Summary struct {
	GeneratedAt string   `json:"generated_at"`
	Analysis    string   `json:"ai_analysis"`
	EventCount  int      `json:"event_count"`
	TaskCount   int      `json:"task_count"`
	EmailCount  int      `json:"email_count"`
	Overlaps    []string `json:"overlapping_events,omitempty"`
}

// Assistant gathers data from three service adapters and feeds it to the
// summarizer. It holds no token state; credentials arrive pre-resolved.
type Assistant struct {
	calendar   *services.CalendarService
	tasks      *services.TasksService
	gmail      *services.GmailService
	summarizer ports.Summarizer
	logger     zerolog.Logger
}

// New creates an assistant.
func New(calendar *services.CalendarService, tasks *services.TasksService, gmail *services.GmailService, summarizer ports.Summarizer, logger zerolog.Logger) *Assistant {
	return &Assistant{
		calendar:   calendar,
		tasks:      tasks,
		gmail:      gmail,
		summarizer: summarizer,
		logger:     logger,
	}
}

// DailySummary fetches upcoming events, pending tasks, and unread
// actionable email, and asks the model for a prioritized plan. Partial
// source failures degrade the summary instead of failing it, except when
// every source fails.
func (a *Assistant) DailySummary(ctx context.Context, rec *domain.CredentialRecord, userContext string) (*Summary, error) {
	events, eventsErr := a.calendar.ListEvents(ctx, rec, 50, 15)
	if eventsErr != nil {
		a.logger.Warn().Err(eventsErr).Msg("Assistant: failed to fetch calendar events")
	}

	tasks, tasksErr := a.allTasks(ctx, rec)
	if tasksErr != nil {
		a.logger.Warn().Err(tasksErr).Msg("Assistant: failed to fetch tasks")
	}

	emails, emailsErr := a.gmail.ListMessages(ctx, rec, 10, unreadQuery())
	if emailsErr != nil {
		a.logger.Warn().Err(emailsErr).Msg("Assistant: failed to fetch unread emails")
	}

	if eventsErr != nil && tasksErr != nil && emailsErr != nil {
		return nil, fmt.Errorf("failed to gather any schedule data: %w", eventsErr)
	}

	prompt := buildPrompt(events, tasks, emails, userContext)
	analysis, err := a.summarizer.Summarize(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate summary: %w", err)
	}

	overlaps := findOverlaps(events)
	if len(overlaps) > 0 {
		analysis += "\n\nOverlapping events: " + strings.Join(overlaps, ", ")
	}

	return &Summary{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Analysis:    analysis,
		EventCount:  len(events),
		TaskCount:   len(tasks),
		EmailCount:  len(emails),
		Overlaps:    overlaps,
	}, nil
}

func (a *Assistant) allTasks(ctx context.Context, rec *domain.CredentialRecord) ([]services.Task, error) {
	lists, err := a.tasks.ListTaskLists(ctx, rec)
	if err != nil {
		return nil, err
	}
	var all []services.Task
	for _, list := range lists {
		tasks, err := a.tasks.ListTasks(ctx, rec, list.ID, false)
		if err != nil {
			return nil, err
		}
		for i := range tasks {
			tasks[i].ListName = list.Title
		}
		all = append(all, tasks...)
	}
	return all, nil
}

func unreadQuery() string {
	quoted := make([]string, 0, len(taskKeywords))
	for _, kw := range taskKeywords {
		quoted = append(quoted, fmt.Sprintf("%q", kw))
	}
	return fmt.Sprintf("is:unread (%s)", strings.Join(quoted, " OR "))
}

func buildPrompt(events []services.Event, tasks []services.Task, emails []services.Message, userContext string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a productivity assistant. Be very concise.\n")
	fmt.Fprintf(&b, "Summarize the schedule below into: actionable emails, meetings, tasks, top 3 priorities, and a day plan. Max 180 words.\n\n")
	fmt.Fprintf(&b, "Date: %s\n\n", time.Now().Format("2006-01-02 15:04"))

	b.WriteString("EVENTS:\n")
	if len(events) == 0 {
		b.WriteString("None\n")
	}
	for i, e := range events {
		if i >= 10 {
			break
		}
		fmt.Fprintf(&b, "- %s | %s\n", e.Summary, e.Start)
	}

	b.WriteString("\nTASKS:\n")
	if len(tasks) == 0 {
		b.WriteString("None\n")
	}
	for i, t := range tasks {
		if i >= 10 {
			break
		}
		due := t.Due
		if due == "" {
			due = "No due date"
		}
		fmt.Fprintf(&b, "- %s | Due: %s\n", t.Title, due)
	}

	b.WriteString("\nEMAILS:\n")
	if len(emails) == 0 {
		b.WriteString("None\n")
	}
	for i, m := range emails {
		if i >= 10 {
			break
		}
		fmt.Fprintf(&b, "- %s: %s\n", truncate(m.From, 30), truncate(m.Subject, 50))
	}

	if userContext != "" {
		fmt.Fprintf(&b, "\nContext: %s\n", userContext)
	}

	return b.String()
}

func findOverlaps(events []services.Event) []string {
	var overlaps []string
	for i, e1 := range events {
		s1, err1 := time.Parse(time.RFC3339, e1.Start)
		t1, err2 := time.Parse(time.RFC3339, e1.End)
		if err1 != nil || err2 != nil {
			continue
		}
		for _, e2 := range events[i+1:] {
			s2, err3 := time.Parse(time.RFC3339, e2.Start)
			t2, err4 := time.Parse(time.RFC3339, e2.End)
			if err3 != nil || err4 != nil {
				continue
			}
			if s1.Before(t2) && s2.Before(t1) {
				overlaps = append(overlaps, fmt.Sprintf("'%s' & '%s'", e1.Summary, e2.Summary))
			}
		}
	}
	return overlaps
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
