package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/shouta256/todo-next-spring/internal/auth"
	"github.com/shouta256/todo-next-spring/internal/model"
)

// errorHandler writes failures as plain text bodies.
//
// Validation failures are 400 "Validation error: <field: message, ...>".
// Every other domain failure is 500 "An error occurred: <message>" unless
// distinct is set, in which case not-found, conflict, bad credentials and
// bad start times get 404, 409, 401 and 400.
func errorHandler(logger *log.Logger, distinct bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := statusOf(err, distinct)
		if status >= http.StatusInternalServerError {
			logger.Error("An error occurred", "err", err)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.String(status, body)
		}
		if err != nil {
			logger.Error("Failed to write error response", "err", err)
		}
	}
}

func statusOf(err error, distinct bool) (int, string) {
	var (
		validation *model.ValidationError
		binding    *echo.BindingError
		httpErr    *echo.HTTPError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, "Validation error: " + validation.Error()
	case errors.As(err, &binding):
		return binding.Code, fmt.Sprintf("%s: %v", binding.Field, binding.Message)
	case errors.As(err, &httpErr):
		return httpErr.Code, fmt.Sprint(httpErr.Message)
	case errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized, auth.ErrInvalidToken.Error()
	}

	status := http.StatusInternalServerError
	if distinct {
		switch {
		case errors.Is(err, model.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, model.ErrConflict):
			status = http.StatusConflict
		case errors.Is(err, model.ErrInvalidCredentials):
			status = http.StatusUnauthorized
		case errors.Is(err, model.ErrInvalidFormat):
			status = http.StatusBadRequest
		}
	}
	return status, "An error occurred: " + messageOf(err)
}

// messageOf strips wrapping context down to the domain error's message.
func messageOf(err error) string {
	var (
		notFound  *model.NotFoundError
		startTime *model.StartTimeError
	)
	switch {
	case errors.As(err, &notFound):
		return notFound.Error()
	case errors.As(err, &startTime):
		return startTime.Error()
	case errors.Is(err, model.ErrConflict):
		return model.ErrConflict.Error()
	case errors.Is(err, model.ErrInvalidCredentials):
		return model.ErrInvalidCredentials.Error()
	}
	return err.Error()
}
