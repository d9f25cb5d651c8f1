package model

import (
	"encoding/json"
	"time"
)

// Todo represents a task owned by a user
type Todo struct {
	ID        int64
	Title     string
	Completed bool
	CreatedAt time.Time
	UserID    int64

	TaskType  string
	Priority  string
	StartTime *time.Time
	EndTime   *time.Time
	Frequency *string
	Context   *string

	// ActualCompletionTime is reserved; nothing sets it yet.
	ActualCompletionTime    *int
	PredictedCompletionTime int

	// FolderID is nil for unassigned todos.
	FolderID *int64
}

// InFolder reports whether the todo is filed under folderID.
func (t *Todo) InFolder(folderID int64) bool {
	return t.FolderID != nil && *t.FolderID == folderID
}

type todoJSON struct {
	ID                      int64      `json:"id"`
	Title                   string     `json:"title"`
	Completed               bool       `json:"completed"`
	CreatedAt               *LocalTime `json:"createdAt"`
	UserID                  int64      `json:"userId"`
	TaskType                string     `json:"taskType"`
	Priority                string     `json:"priority"`
	StartTime               *LocalTime `json:"startTime"`
	EndTime                 *LocalTime `json:"endTime"`
	Frequency               *string    `json:"frequency"`
	Context                 *string    `json:"context"`
	ActualCompletionTime    *int       `json:"actualCompletionTime"`
	PredictedCompletionTime int        `json:"predictedCompletionTime"`
	FolderID                *int64     `json:"folderId,omitempty"`
}

// MarshalJSON renders the todo with local date-times and camelCase keys.
func (t Todo) MarshalJSON() ([]byte, error) {
	return json.Marshal(todoJSON{
		ID:                      t.ID,
		Title:                   t.Title,
		Completed:               t.Completed,
		CreatedAt:               localTimeOf(&t.CreatedAt),
		UserID:                  t.UserID,
		TaskType:                t.TaskType,
		Priority:                t.Priority,
		StartTime:               localTimeOf(t.StartTime),
		EndTime:                 localTimeOf(t.EndTime),
		Frequency:               t.Frequency,
		Context:                 t.Context,
		ActualCompletionTime:    t.ActualCompletionTime,
		PredictedCompletionTime: t.PredictedCompletionTime,
		FolderID:                t.FolderID,
	})
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (t *Todo) UnmarshalJSON(data []byte) error {
	var raw todoJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = Todo{
		ID:                      raw.ID,
		Title:                   raw.Title,
		Completed:               raw.Completed,
		UserID:                  raw.UserID,
		TaskType:                raw.TaskType,
		Priority:                raw.Priority,
		StartTime:               raw.StartTime.timePtr(),
		EndTime:                 raw.EndTime.timePtr(),
		Frequency:               raw.Frequency,
		Context:                 raw.Context,
		ActualCompletionTime:    raw.ActualCompletionTime,
		PredictedCompletionTime: raw.PredictedCompletionTime,
		FolderID:                raw.FolderID,
	}
	if raw.CreatedAt != nil {
		t.CreatedAt = raw.CreatedAt.Time
	}
	return nil
}

// TodoScope selects which of an owner's todos a listing returns.
type TodoScope int

const (
	// ScopeUnassigned returns todos with no folder.
	ScopeUnassigned TodoScope = iota
	// ScopeAll returns every todo regardless of folder.
	ScopeAll
	// ScopeFolder returns todos filed under TodoQuery.FolderID.
	ScopeFolder
)

// TodoQuery scopes a todo listing to one owner.
type TodoQuery struct {
	OwnerID  int64
	Scope    TodoScope
	FolderID int64
}
