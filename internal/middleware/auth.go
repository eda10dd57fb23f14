package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/pkg/logger"
	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/pkg/token"
	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/prometheus"
)

// TokenAuth returns a middleware that guards admin-scoped routes. It extracts
// the bearer token from the Authorization header and checks it against the
// store. Missing, malformed, unknown and expired tokens all collapse into
// 401; the client reacts the same way to each.
func TokenAuth(store *token.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				log.Warn("Missing Authorization header")
				prometheus.RecordAuthError("missing_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				log.Warn("Invalid Authorization header format")
				prometheus.RecordAuthError("invalid_auth_format")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
			}

			tok := parts[1]
			if !store.Validate(tok) {
				log.Warn("Invalid or expired token")
				prometheus.RecordAuthError("invalid_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}

			// Keep the token around so logout can revoke it.
			c.Set("admin_token", tok)
			return next(c)
		}
	}
}
