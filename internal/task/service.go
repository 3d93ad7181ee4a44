// ABOUTME: Task CRUD orchestration scoped to the authenticated owner
// ABOUTME: Every operation takes the owner id from the caller, never from input

package task

import (
	"context"
	"log/slog"

	"github.com/taskvault/taskvault/internal/store"
)

// Fields carries client-supplied task fields for create and update.
// Status is the raw string from the request; unrecognized values are
// silently coerced rather than rejected. Create defaults to PENDING and
// update keeps the prior status.
type Fields struct {
	Title       string
	Description string
	Status      string
}

// Service implements owner-scoped task operations over a TaskStore.
// The owner id always comes from the authenticated request context; there
// is no way to create or touch a task on behalf of another user.
type Service struct {
	tasks  store.TaskStore
	logger *slog.Logger
}

// NewService creates a task service backed by the given store.
func NewService(tasks store.TaskStore) *Service {
	return &Service{
		tasks:  tasks,
		logger: slog.Default().With("component", "task"),
	}
}

// Create stores a new task for the owner. An absent or unrecognized status
// defaults to PENDING.
func (s *Service) Create(ctx context.Context, ownerID string, fields Fields) (*store.Task, error) {
	status := store.StatusPending
	if parsed, ok := store.ParseStatus(fields.Status); ok {
		status = parsed
	}

	t := &store.Task{
		UserID:      ownerID,
		Title:       fields.Title,
		Description: fields.Description,
		Status:      status,
	}
	if err := s.tasks.CreateTask(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// List returns the owner's tasks in insertion order.
func (s *Service) List(ctx context.Context, ownerID string) ([]*store.Task, error) {
	return s.tasks.ListTasks(ctx, ownerID)
}

// Get returns a single task, or store.ErrNotFound if it doesn't exist or
// belongs to another user.
func (s *Service) Get(ctx context.Context, ownerID, taskID string) (*store.Task, error) {
	return s.tasks.GetTask(ctx, ownerID, taskID)
}

// Update overwrites title and description and, when the supplied status
// string parses, the status. An invalid status string leaves the prior
// status in place without failing the update.
func (s *Service) Update(ctx context.Context, ownerID, taskID string, fields Fields) (*store.Task, error) {
	t, err := s.tasks.GetTask(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	t.Title = fields.Title
	t.Description = fields.Description
	if parsed, ok := store.ParseStatus(fields.Status); ok {
		t.Status = parsed
	}

	if err := s.tasks.UpdateTask(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes a task. Returns false, not an error, when the task is
// missing or owned by another user.
func (s *Service) Delete(ctx context.Context, ownerID, taskID string) (bool, error) {
	deleted, err := s.tasks.DeleteTask(ctx, ownerID, taskID)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logger.Debug("task deleted", "task_id", taskID)
	}
	return deleted, nil
}
