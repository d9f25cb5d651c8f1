package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shouta256/todo-next-spring/internal/todo"
	"github.com/shouta256/todo-next-spring/internal/validate"
)

type todoRequest struct {
	Title     string `json:"title"`
	UserID    *int64 `json:"userId"`
	TaskType  string `json:"taskType"`
	Priority  string `json:"priority"`
	StartTime string `json:"startTime"`
	Frequency string `json:"frequency"`
	Context   string `json:"context"`
	FolderID  *int64 `json:"folderId"`
}

type titleRequest struct {
	Title string `json:"title"`
}

func (h *handler) listTodos(c echo.Context) error {
	var (
		ownerID int64
		all     bool
	)
	b := echo.QueryParamsBinder(c).
		MustInt64("userId", &ownerID).
		Bool("all", &all)

	var folderID *int64
	if c.QueryParam("folderId") != "" {
		var id int64
		b = b.Int64("folderId", &id)
		folderID = &id
	}
	if err := b.BindError(); err != nil {
		return err
	}

	todos, err := h.todos.List(c.Request().Context(), ownerID, todo.ScopeFor(all, folderID))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, todos)
}

func (h *handler) createTodo(c echo.Context) error {
	var req todoRequest
	if err := h.bindBody(c, validate.TodoCreate, &req); err != nil {
		return err
	}

	start, err := todo.ParseStartTime(req.StartTime)
	if err != nil {
		return err
	}

	t, err := h.todos.Create(c.Request().Context(), todo.NewTodo{
		Title:     req.Title,
		OwnerID:   *req.UserID,
		TaskType:  req.TaskType,
		Priority:  req.Priority,
		StartTime: start,
		Frequency: req.Frequency,
		Context:   req.Context,
		FolderID:  req.FolderID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

func (h *handler) updateTodo(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req titleRequest
	if err := h.bindBody(c, validate.TodoUpdate, &req); err != nil {
		return err
	}

	t, err := h.todos.UpdateTitle(c.Request().Context(), id, req.Title)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

func (h *handler) deleteTodo(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.todos.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *handler) completeTodo(c echo.Context) error {
	return h.setCompletion(c, true)
}

func (h *handler) incompleteTodo(c echo.Context) error {
	return h.setCompletion(c, false)
}

func (h *handler) setCompletion(c echo.Context, completed bool) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	t, err := h.todos.SetCompletion(c.Request().Context(), id, completed)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}
