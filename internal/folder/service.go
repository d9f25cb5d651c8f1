// Package folder manages a user's folders. Deleting a folder deletes the
// todos filed under it.
package folder

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/shouta256/todo-next-spring/internal/model"
)

// Store is the persistence the service needs.
type Store interface {
	GetFolders(ctx context.Context, ownerID *int64) ([]model.Folder, error)
	GetFolder(ctx context.Context, id int64) (*model.Folder, error)
	CreateFolder(ctx context.Context, name string, ownerID int64) (*model.Folder, error)
	RenameFolder(ctx context.Context, id int64, name string) error
	DeleteFolder(ctx context.Context, id int64) error
}

// Service implements folder operations.
type Service struct {
	store  Store
	logger *log.Logger
}

// NewService creates a folder service.
func NewService(store Store, logger *log.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Create persists a new folder. Names need not be unique.
func (s *Service) Create(ctx context.Context, name string, ownerID int64) (*model.Folder, error) {
	f, err := s.store.CreateFolder(ctx, name, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}
	s.logger.Debug("Created folder", "id", f.ID, "owner", ownerID)
	return f, nil
}

// ListByOwner returns the owner's folders. A nil owner lists folders that
// have no owner.
func (s *Service) ListByOwner(ctx context.Context, ownerID *int64) ([]model.Folder, error) {
	folders, err := s.store.GetFolders(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	return folders, nil
}

// Get returns a folder or a *model.NotFoundError.
func (s *Service) Get(ctx context.Context, id int64) (*model.Folder, error) {
	f, err := s.store.GetFolder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get folder: %w", err)
	}
	if f == nil {
		return nil, &model.NotFoundError{Entity: "folder", ID: id}
	}
	return f, nil
}

// Rename changes a folder's name.
func (s *Service) Rename(ctx context.Context, id int64, name string) (*model.Folder, error) {
	f, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.RenameFolder(ctx, id, name); err != nil {
		return nil, fmt.Errorf("failed to rename folder: %w", err)
	}
	f.Name = name
	return f, nil
}

// Delete removes a folder and every todo assigned to it. Deleting an
// unknown id is a no-op.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteFolder(ctx, id); err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}
	s.logger.Debug("Deleted folder", "id", id)
	return nil
}
