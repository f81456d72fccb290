package assistant

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/basak2005/Google-workspace-Integration/internal/application/services"
)

func TestUnreadQueryCoversKeywords(t *testing.T) {
	q := unreadQuery()

	require.True(t, strings.HasPrefix(q, "is:unread ("))
	require.Contains(t, q, `"action required"`)
	require.Contains(t, q, `"deadline"`)
	require.Contains(t, q, " OR ")
}

func TestBuildPromptIncludesSections(t *testing.T) {
	events := []services.Event{{Summary: "Standup", Start: "2026-09-01T09:00:00Z"}}
	tasks := []services.Task{{Title: "Ship release"}}
	emails := []services.Message{{From: "boss@example.com", Subject: "Please review the report"}}

	prompt := buildPrompt(events, tasks, emails, "focus on the release")

	require.Contains(t, prompt, "EVENTS:")
	require.Contains(t, prompt, "Standup")
	require.Contains(t, prompt, "TASKS:")
	require.Contains(t, prompt, "Ship release | Due: No due date")
	require.Contains(t, prompt, "EMAILS:")
	require.Contains(t, prompt, "boss@example.com")
	require.Contains(t, prompt, "Context: focus on the release")
	require.Contains(t, prompt, "Max 180 words")
}

func TestBuildPromptEmptySources(t *testing.T) {
	prompt := buildPrompt(nil, nil, nil, "")

	require.Contains(t, prompt, "EVENTS:\nNone")
	require.NotContains(t, prompt, "Context:")
}

func TestBuildPromptCapsItems(t *testing.T) {
	var events []services.Event
	for i := 0; i < 25; i++ {
		events = append(events, services.Event{Summary: "evt", Start: time.Now().Format(time.RFC3339)})
	}

	prompt := buildPrompt(events, nil, nil, "")
	require.Equal(t, 10, strings.Count(prompt, "- evt"))
}

func TestFindOverlaps(t *testing.T) {
	events := []services.Event{
		{Summary: "A", Start: "2026-09-01T09:00:00Z", End: "2026-09-01T10:00:00Z"},
		{Summary: "B", Start: "2026-09-01T09:30:00Z", End: "2026-09-01T10:30:00Z"},
		{Summary: "C", Start: "2026-09-01T11:00:00Z", End: "2026-09-01T12:00:00Z"},
	}

	overlaps := findOverlaps(events)
	require.Equal(t, []string{"'A' & 'B'"}, overlaps)
}

func TestFindOverlapsSkipsAllDayEvents(t *testing.T) {
	// Date-only values do not parse as RFC3339 and must be ignored.
	events := []services.Event{
		{Summary: "A", Start: "2026-09-01", End: "2026-09-02"},
		{Summary: "B", Start: "2026-09-01T09:00:00Z", End: "2026-09-01T10:00:00Z"},
	}

	require.Empty(t, findOverlaps(events))
}
