package api

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shouta256/todo-next-spring/internal/auth"
)

const claimsKey = "claims"

// bearerToken rejects requests without a valid "Authorization: Bearer"
// token and stores the verified claims on the context.
func bearerToken(svc *auth.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				return auth.ErrInvalidToken
			}

			claims, err := svc.VerifyToken(strings.TrimSpace(token))
			if err != nil {
				return err
			}
			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// claimsOf returns the verified token claims of the request, if any.
func claimsOf(c echo.Context) (*auth.Claims, bool) {
	claims, ok := c.Get(claimsKey).(*auth.Claims)
	return claims, ok
}

func requestLogger(logger *log.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			keyvals := []interface{}{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if claims, ok := claimsOf(c); ok {
				keyvals = append(keyvals, "user", claims.Subject)
			}
			if v.Error != nil {
				keyvals = append(keyvals, "err", v.Error)
				logger.Warn("Request failed", keyvals...)
				return nil
			}
			logger.Info("Request", keyvals...)
			return nil
		},
	})
}
