// ABOUTME: Store interface and data types for taskvault persistence
// ABOUTME: Defines User, Task structs and the Store interface for database operations

package store

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist.
// For tasks it also covers rows owned by another user, so callers
// cannot tell the two cases apart.
var ErrNotFound = errors.New("not found")

// ErrUsernameTaken is returned when trying to create a user with an existing username.
var ErrUsernameTaken = errors.New("username already taken")

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

// Task status values. Any state is reachable from any state via update;
// there is no enforced transition graph.
const (
	StatusPending    TaskStatus = "PENDING"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusCompleted  TaskStatus = "COMPLETED"
)

// ParseStatus converts a client-supplied string into a TaskStatus.
// Matching is case-insensitive. Returns false for unrecognized values;
// callers decide what to do with an invalid status (default it or keep
// the previous one), so this never errors.
func ParseStatus(s string) (TaskStatus, bool) {
	switch TaskStatus(strings.ToUpper(s)) {
	case StatusPending:
		return StatusPending, true
	case StatusInProgress:
		return StatusInProgress, true
	case StatusCompleted:
		return StatusCompleted, true
	default:
		return "", false
	}
}

// User represents a registered account.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, never the plaintext
	CreatedAt    time.Time
}

// Task represents a single task owned by a user.
type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Status      TaskStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UserStore defines user persistence operations.
type UserStore interface {
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	CountUsers(ctx context.Context) (int, error)
}

// TaskStore defines task persistence operations. Every read and write is
// scoped by the owning user id in the same query, never checked afterwards.
type TaskStore interface {
	CreateTask(ctx context.Context, task *Task) error
	GetTask(ctx context.Context, userID, taskID string) (*Task, error)
	ListTasks(ctx context.Context, userID string) ([]*Task, error)
	UpdateTask(ctx context.Context, task *Task) error
	DeleteTask(ctx context.Context, userID, taskID string) (bool, error)
}

// Store combines user and task persistence.
type Store interface {
	UserStore
	TaskStore

	// Close releases any resources held by the store
	Close() error
}
