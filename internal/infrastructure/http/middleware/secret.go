package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// SecretHeader carries the pre-shared secret for internally triggered
// operations (the reminder sweep and meeting retirement).
const SecretHeader = "X-Sweep-Secret"

// RequireSharedSecret gates a route group behind a pre-shared secret. A
// missing or mismatched secret yields 401 and no processing occurs.
func RequireSharedSecret(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			provided := c.Request().Header.Get(SecretHeader)
			if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"error":   "unauthorized",
					"message": "missing or invalid sweep secret",
				})
			}
			return next(c)
		}
	}
}
