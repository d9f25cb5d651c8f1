package folder

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shouta256/todo-next-spring/internal/db"
	"github.com/shouta256/todo-next-spring/internal/model"
)

func openTestDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.Open(db.DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestCreateAndList(t *testing.T) {
	svc := NewService(openTestDB(t), log.New(io.Discard))
	ctx := context.Background()

	for _, name := range []string{"Work", "Work", "Home"} {
		if _, err := svc.Create(ctx, name, 1); err != nil {
			t.Fatalf("Create(%q): %v", name, err)
		}
	}
	if _, err := svc.Create(ctx, "Other", 2); err != nil {
		t.Fatalf("Create: %v", err)
	}

	owner := int64(1)
	folders, err := svc.ListByOwner(ctx, &owner)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(folders) != 3 {
		t.Fatalf("got %d folders, want 3", len(folders))
	}
	for _, f := range folders {
		if !f.OwnedBy(1) {
			t.Errorf("folder %d owned by %v", f.ID, f.UserID)
		}
	}

	unowned, err := svc.ListByOwner(ctx, nil)
	if err != nil {
		t.Fatalf("ListByOwner(nil): %v", err)
	}
	if len(unowned) != 0 {
		t.Errorf("expected no unowned folders, got %d", len(unowned))
	}
}

func TestRename(t *testing.T) {
	svc := NewService(openTestDB(t), log.New(io.Discard))
	ctx := context.Background()

	f, err := svc.Create(ctx, "Wrok", 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	renamed, err := svc.Rename(ctx, f.ID, "Work")
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if renamed.Name != "Work" || !renamed.OwnedBy(1) {
		t.Errorf("renamed = %+v", renamed)
	}

	got, err := svc.Get(ctx, f.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Work" {
		t.Errorf("stored name = %q, want Work", got.Name)
	}
}

func TestMissingFolder(t *testing.T) {
	svc := NewService(openTestDB(t), log.New(io.Discard))
	ctx := context.Background()

	_, err := svc.Get(ctx, 99)
	var notFound *model.NotFoundError
	if !errors.As(err, &notFound) || notFound.Entity != "folder" || notFound.ID != 99 {
		t.Fatalf("Get(99) = %v, want folder NotFoundError", err)
	}

	if _, err := svc.Rename(ctx, 99, "x"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Rename(99) = %v, want ErrNotFound", err)
	}

	if err := svc.Delete(ctx, 99); err != nil {
		t.Fatalf("Delete(99) = %v, want nil", err)
	}
}

func TestDeleteRemovesFiledTodos(t *testing.T) {
	database := openTestDB(t)
	svc := NewService(database, log.New(io.Discard))
	ctx := context.Background()

	f, err := svc.Create(ctx, "Errands", 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	todo := &model.Todo{
		Title:     "buy milk",
		CreatedAt: model.WallClock(time.Now()),
		UserID:    1,
		TaskType:  "shopping",
		Priority:  "low",
		FolderID:  &f.ID,
	}
	if err := database.CreateTodo(ctx, todo); err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}

	if err := svc.Delete(ctx, f.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	got, err := database.GetTodo(ctx, todo.ID)
	if err != nil {
		t.Fatalf("GetTodo: %v", err)
	}
	if got != nil {
		t.Errorf("todo in deleted folder survived: %+v", got)
	}
}

func TestStoreErrorsAreWrapped(t *testing.T) {
	database := openTestDB(t)
	svc := NewService(database, log.New(io.Discard))
	database.Close()

	_, err := svc.ListByOwner(context.Background(), nil)
	if err == nil || !strings.HasPrefix(err.Error(), "failed to list folders: ") {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	if errors.Is(err, model.ErrNotFound) {
		t.Error("store failures must not look like a missing folder")
	}
}
