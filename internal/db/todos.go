package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/shouta256/todo-next-spring/internal/model"
)

const todoColumns = `
	id, title, completed, created_at, user_id, task_type, priority,
	start_time, end_time, frequency, context,
	actual_completion_time, predicted_completion_time, folder_id`

// GetTodos returns one owner's todos in the scope the query selects
func (db *DB) GetTodos(ctx context.Context, q model.TodoQuery) ([]model.Todo, error) {
	var (
		rows *sql.Rows
		err  error
	)
	switch q.Scope {
	case model.ScopeAll:
		rows, err = db.QueryContext(ctx, `
			SELECT `+todoColumns+`
			FROM todos WHERE user_id = ? ORDER BY id
		`, q.OwnerID)
	case model.ScopeFolder:
		rows, err = db.QueryContext(ctx, `
			SELECT `+todoColumns+`
			FROM todos WHERE user_id = ? AND folder_id = ? ORDER BY id
		`, q.OwnerID, q.FolderID)
	default:
		rows, err = db.QueryContext(ctx, `
			SELECT `+todoColumns+`
			FROM todos WHERE user_id = ? AND folder_id IS NULL ORDER BY id
		`, q.OwnerID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTodos(rows)
}

// GetTodo returns a single todo by ID
func (db *DB) GetTodo(ctx context.Context, id int64) (*model.Todo, error) {
	row := db.QueryRowContext(ctx, `SELECT `+todoColumns+` FROM todos WHERE id = ?`, id)

	t, err := scanTodo(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return t, err
}

// CreateTodo inserts t, folder assignment included, in a single statement
// and sets t.ID.
func (db *DB) CreateTodo(ctx context.Context, t *model.Todo) error {
	res, err := db.ExecContext(ctx, `
		INSERT INTO todos (title, completed, created_at, user_id, task_type, priority,
		                   start_time, end_time, frequency, context,
		                   actual_completion_time, predicted_completion_time, folder_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.Title, t.Completed, t.CreatedAt, t.UserID, t.TaskType, t.Priority,
		nullTime(t.StartTime), nullTime(t.EndTime), t.Frequency, t.Context,
		t.ActualCompletionTime, t.PredictedCompletionTime, t.FolderID)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = id
	return nil
}

// UpdateTodo saves the mutable fields of t: title, completion and the two
// completion-time figures.
func (db *DB) UpdateTodo(ctx context.Context, t *model.Todo) error {
	_, err := db.ExecContext(ctx, `
		UPDATE todos
		SET title = ?, completed = ?, end_time = ?,
		    actual_completion_time = ?, predicted_completion_time = ?
		WHERE id = ?
	`, t.Title, t.Completed, nullTime(t.EndTime),
		t.ActualCompletionTime, t.PredictedCompletionTime, t.ID)
	return err
}

// DeleteTodo deletes a todo
func (db *DB) DeleteTodo(ctx context.Context, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	return err
}

// Helper functions

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func scanTodos(rows *sql.Rows) ([]model.Todo, error) {
	todos := []model.Todo{}
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, *t)
	}
	return todos, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTodo(s scanner) (*model.Todo, error) {
	var t model.Todo
	var startTime, endTime sql.NullTime
	var frequency, todoContext sql.NullString
	var actual sql.NullInt64
	var folderID sql.NullInt64

	err := s.Scan(
		&t.ID, &t.Title, &t.Completed, &t.CreatedAt, &t.UserID,
		&t.TaskType, &t.Priority, &startTime, &endTime,
		&frequency, &todoContext, &actual, &t.PredictedCompletionTime, &folderID,
	)
	if err != nil {
		return nil, err
	}

	if startTime.Valid {
		t.StartTime = &startTime.Time
	}
	if endTime.Valid {
		t.EndTime = &endTime.Time
	}
	if frequency.Valid {
		t.Frequency = &frequency.String
	}
	if todoContext.Valid {
		t.Context = &todoContext.String
	}
	if actual.Valid {
		minutes := int(actual.Int64)
		t.ActualCompletionTime = &minutes
	}
	if folderID.Valid {
		t.FolderID = &folderID.Int64
	}

	return &t, nil
}
