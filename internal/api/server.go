// Package api exposes the auth, folder and todo services over HTTP.
package api

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shouta256/todo-next-spring/internal/auth"
	"github.com/shouta256/todo-next-spring/internal/folder"
	"github.com/shouta256/todo-next-spring/internal/todo"
	"github.com/shouta256/todo-next-spring/internal/validate"
)

// Services are the handlers' collaborators.
type Services struct {
	Auth      *auth.Service
	Folders   *folder.Service
	Todos     *todo.Service
	Validator *validate.Validator
}

// Options tune the HTTP surface.
type Options struct {
	AllowedOrigins []string
	RequireToken   bool
	DistinctErrors bool
}

type handler struct {
	auth      *auth.Service
	folders   *folder.Service
	todos     *todo.Service
	validator *validate.Validator
}

// New builds the echo instance serving every route.
func New(svc Services, opts Options, logger *log.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(logger, opts.DistinctErrors)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(logger))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: opts.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	h := &handler{
		auth:      svc.Auth,
		folders:   svc.Folders,
		todos:     svc.Todos,
		validator: svc.Validator,
	}
	routes(e, h, opts.RequireToken)
	return e
}

// routes registers all available routes.
func routes(e *echo.Echo, h *handler, requireToken bool) {
	// Public routes
	authGroup := e.Group("/api/auth")
	authGroup.POST("/register", h.register)
	authGroup.POST("/login", h.login)

	// Folder and todo routes, guarded only when tokens are required
	api := e.Group("/api")
	if requireToken {
		api.Use(bearerToken(h.auth))
	}

	folders := api.Group("/folders")
	folders.GET("", h.listFolders)
	folders.POST("", h.createFolder)
	folders.PUT("/:id", h.renameFolder)
	folders.DELETE("/:id", h.deleteFolder)

	todos := api.Group("/todos")
	todos.GET("", h.listTodos)
	todos.POST("", h.createTodo)
	todos.PUT("/:id", h.updateTodo)
	todos.DELETE("/:id", h.deleteTodo)
	todos.PUT("/:id/complete", h.completeTodo)
	todos.PUT("/:id/incomplete", h.incompleteTodo)
}

// bindBody decodes the JSON body into req and checks it against schema.
func (h *handler) bindBody(c echo.Context, schema string, req interface{}) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, req); err != nil {
		return err
	}
	return h.validator.Validate(schema, req)
}

func pathID(c echo.Context) (int64, error) {
	var id int64
	err := echo.PathParamsBinder(c).MustInt64("id", &id).BindError()
	return id, err
}
