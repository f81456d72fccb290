package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"google.golang.org/api/tasks/v1"

	"github.com/basak2005/Google-workspace-Integration/internal/domain"
	googleinfra "github.com/basak2005/Google-workspace-Integration/internal/infrastructure/google"
)

// TaskList is a reshaped Google Tasks list.
type TaskList struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Task is a reshaped task.
type Task struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Notes    string `json:"notes,omitempty"`
	Due      string `json:"due,omitempty"`
	Status   string `json:"status"`
	ListName string `json:"listName,omitempty"`
}

// TaskInput describes a task to create or update.
type TaskInput struct {
	Title  string `json:"title"`
	Notes  string `json:"notes,omitempty"`
	Due    string `json:"due,omitempty"`
	Status string `json:"status,omitempty"`
}

// TasksService adapts requests to the Google Tasks API.
type TasksService struct {
	limiter *googleinfra.RateLimiter
	logger  zerolog.Logger
}

// NewTasksService creates a tasks adapter.
func NewTasksService(logger zerolog.Logger) *TasksService {
	return &TasksService{
		limiter: googleinfra.NewRateLimiter(googleinfra.ServiceTasks),
		logger:  logger,
	}
}

// ListTaskLists returns every task list of the user.
func (s *TasksService) ListTaskLists(ctx context.Context, rec *domain.CredentialRecord) ([]TaskList, error) {
	svc, err := s.service(ctx, rec)
	if err != nil {
		return nil, err
	}
	res, err := svc.Tasklists.List().MaxResults(50).Context(ctx).Do()
	if err != nil {
		return nil, googleinfra.WrapError(err)
	}
	lists := make([]TaskList, 0, len(res.Items))
	for _, item := range res.Items {
		lists = append(lists, TaskList{ID: item.Id, Title: item.Title})
	}
	return lists, nil
}

// ListTasks returns pending tasks in one list.
func (s *TasksService) ListTasks(ctx context.Context, rec *domain.CredentialRecord, listID string, showCompleted bool) ([]Task, error) {
	svc, err := s.service(ctx, rec)
	if err != nil {
		return nil, err
	}
	res, err := svc.Tasks.List(listID).ShowCompleted(showCompleted).MaxResults(100).Context(ctx).Do()
	if err != nil {
		return nil, googleinfra.WrapError(err)
	}
	out := make([]Task, 0, len(res.Items))
	for _, item := range res.Items {
		out = append(out, reshapeTask(item))
	}
	return out, nil
}

// CreateTask adds a task to a list.
func (s *TasksService) CreateTask(ctx context.Context, rec *domain.CredentialRecord, listID string, input TaskInput) (*Task, error) {
	svc, err := s.service(ctx, rec)
	if err != nil {
		return nil, err
	}
	created, err := svc.Tasks.Insert(listID, &tasks.Task{
		Title: input.Title,
		Notes: input.Notes,
		Due:   input.Due,
	}).Context(ctx).Do()
	if err != nil {
		return nil, googleinfra.WrapError(err)
	}
	t := reshapeTask(created)
	return &t, nil
}

// UpdateTask patches an existing task.
func (s *TasksService) UpdateTask(ctx context.Context, rec *domain.CredentialRecord, listID, taskID string, input TaskInput) (*Task, error) {
	svc, err := s.service(ctx, rec)
	if err != nil {
		return nil, err
	}
	updated, err := svc.Tasks.Patch(listID, taskID, &tasks.Task{
		Title:  input.Title,
		Notes:  input.Notes,
		Due:    input.Due,
		Status: input.Status,
	}).Context(ctx).Do()
	if err != nil {
		return nil, googleinfra.WrapError(err)
	}
	t := reshapeTask(updated)
	return &t, nil
}

// DeleteTask removes a task from a list.
func (s *TasksService) DeleteTask(ctx context.Context, rec *domain.CredentialRecord, listID, taskID string) error {
	svc, err := s.service(ctx, rec)
	if err != nil {
		return err
	}
	if err := svc.Tasks.Delete(listID, taskID).Context(ctx).Do(); err != nil {
		return googleinfra.WrapError(err)
	}
	return nil
}

func (s *TasksService) service(ctx context.Context, rec *domain.CredentialRecord) (*tasks.Service, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	svc, err := googleinfra.NewTasksService(ctx, googleinfra.StaticTokenSource(rec))
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return svc, nil
}

func reshapeTask(item *tasks.Task) Task {
	return Task{
		ID:     item.Id,
		Title:  item.Title,
		Notes:  item.Notes,
		Due:    item.Due,
		Status: item.Status,
	}
}
