package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shouta256/todo-next-spring/internal/validate"
)

type folderRequest struct {
	Name   string `json:"name"`
	UserID *int64 `json:"userId"`
}

type renameRequest struct {
	Name string `json:"name"`
}

func (h *handler) listFolders(c echo.Context) error {
	var ownerID *int64
	if c.QueryParam("userId") != "" {
		var id int64
		if err := echo.QueryParamsBinder(c).Int64("userId", &id).BindError(); err != nil {
			return err
		}
		ownerID = &id
	}

	folders, err := h.folders.ListByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, folders)
}

func (h *handler) createFolder(c echo.Context) error {
	var req folderRequest
	if err := h.bindBody(c, validate.FolderCreate, &req); err != nil {
		return err
	}

	f, err := h.folders.Create(c.Request().Context(), req.Name, *req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, f)
}

func (h *handler) renameFolder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req renameRequest
	if err := h.bindBody(c, validate.FolderRename, &req); err != nil {
		return err
	}

	f, err := h.folders.Rename(c.Request().Context(), id, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, f)
}

func (h *handler) deleteFolder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.folders.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
