// Package todo implements the todo lifecycle. Every create and title edit
// recomputes the predicted completion time.
package todo

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shouta256/todo-next-spring/internal/estimate"
	"github.com/shouta256/todo-next-spring/internal/model"
)

// Store is the todo persistence the service needs.
type Store interface {
	GetTodos(ctx context.Context, q model.TodoQuery) ([]model.Todo, error)
	GetTodo(ctx context.Context, id int64) (*model.Todo, error)
	CreateTodo(ctx context.Context, t *model.Todo) error
	UpdateTodo(ctx context.Context, t *model.Todo) error
	DeleteTodo(ctx context.Context, id int64) error
}

// FolderLookup resolves the folder a new todo is filed under.
type FolderLookup interface {
	GetFolder(ctx context.Context, id int64) (*model.Folder, error)
}

// Service implements todo operations.
type Service struct {
	store   Store
	folders FolderLookup
	logger  *log.Logger
	now     func() time.Time
}

// NewService creates a todo service.
func NewService(store Store, folders FolderLookup, logger *log.Logger) *Service {
	return &Service{
		store:   store,
		folders: folders,
		logger:  logger,
		now:     time.Now,
	}
}

// NewTodo holds the fields a todo is created from. Frequency and Context
// may be empty.
type NewTodo struct {
	Title     string
	OwnerID   int64
	TaskType  string
	Priority  string
	StartTime time.Time
	Frequency string
	Context   string
	FolderID  *int64
}

// Create computes the prediction and persists a new, incomplete todo.
//
// When FolderID is set the folder must exist, otherwise the call fails with
// a *model.NotFoundError and nothing is written. The todo and its folder
// assignment are stored in one write.
func (s *Service) Create(ctx context.Context, in NewTodo) (*model.Todo, error) {
	if in.FolderID != nil {
		folder, err := s.folders.GetFolder(ctx, *in.FolderID)
		if err != nil {
			return nil, fmt.Errorf("failed to get folder: %w", err)
		}
		if folder == nil {
			return nil, &model.NotFoundError{Entity: "folder", ID: *in.FolderID}
		}
		// Ownership is not enforced here; mismatches are only reported.
		if !folder.OwnedBy(in.OwnerID) {
			s.logger.Warn("Todo filed under a folder of another user",
				"owner", in.OwnerID, "folder", folder.ID, "folderOwner", folder.UserID)
		}
	}

	start := in.StartTime
	t := &model.Todo{
		Title:     in.Title,
		CreatedAt: model.WallClock(s.now()),
		UserID:    in.OwnerID,
		TaskType:  in.TaskType,
		Priority:  in.Priority,
		StartTime: &start,
		Frequency: optional(in.Frequency),
		Context:   optional(in.Context),
		FolderID:  in.FolderID,
	}
	t.PredictedCompletionTime = estimate.Minutes(inputOf(t))

	if err := s.store.CreateTodo(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}
	s.logger.Debug("Created todo", "id", t.ID, "owner", t.UserID, "predicted", t.PredictedCompletionTime)
	return t, nil
}

// Get returns a todo or a *model.NotFoundError.
func (s *Service) Get(ctx context.Context, id int64) (*model.Todo, error) {
	t, err := s.store.GetTodo(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}
	if t == nil {
		return nil, &model.NotFoundError{Entity: "todo", ID: id}
	}
	return t, nil
}

// UpdateTitle sets a new title and recomputes the prediction from the new
// title and the todo's stored classification.
func (s *Service) UpdateTitle(ctx context.Context, id int64, title string) (*model.Todo, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	t.Title = title
	t.PredictedCompletionTime = estimate.Minutes(inputOf(t))

	if err := s.store.UpdateTodo(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}
	return t, nil
}

// SetCompletion marks a todo complete or incomplete. The prediction is left
// untouched.
func (s *Service) SetCompletion(ctx context.Context, id int64, completed bool) (*model.Todo, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	t.Completed = completed
	if err := s.store.UpdateTodo(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}
	return t, nil
}

// Delete removes a todo. Deleting an unknown id is a no-op.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteTodo(ctx, id); err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}

// List returns the owner's todos in the given scope.
func (s *Service) List(ctx context.Context, ownerID int64, scope Scope) ([]model.Todo, error) {
	todos, err := s.store.GetTodos(ctx, scope.query(ownerID))
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

func inputOf(t *model.Todo) estimate.Input {
	in := estimate.Input{
		Title:     t.Title,
		TaskType:  t.TaskType,
		Priority:  t.Priority,
		StartTime: t.StartTime,
	}
	if t.Frequency != nil {
		in.Frequency = *t.Frequency
	}
	if t.Context != nil {
		in.Context = *t.Context
	}
	return in
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
