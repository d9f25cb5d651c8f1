package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shouta256/todo-next-spring/internal/model"
	"github.com/shouta256/todo-next-spring/internal/validate"
)

type authRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

func (h *handler) register(c echo.Context) error {
	var req authRequest
	if err := h.bindBody(c, validate.Auth, &req); err != nil {
		return err
	}

	user, err := h.auth.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return h.respondWithToken(c, user)
}

func (h *handler) login(c echo.Context) error {
	var req authRequest
	if err := h.bindBody(c, validate.Auth, &req); err != nil {
		return err
	}

	user, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return h.respondWithToken(c, user)
}

func (h *handler) respondWithToken(c echo.Context, user *model.User) error {
	token, err := h.auth.IssueToken(user.Username, user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{
		ID:       user.ID,
		Username: user.Username,
		Token:    token,
	})
}
