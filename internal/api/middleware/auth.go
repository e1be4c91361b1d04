package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/task-manager/internal/core/ports"
)

// Auth validates the bearer token, rejects revoked tokens and injects the
// caller's identity into the request context. revocations may be nil.
// A failing revocation store is logged and the request proceeds.
func Auth(verifier ports.TokenVerifier, revocations ports.TokenRevocations, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			identity, err := verifier.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token").SetInternal(err)
			}

			if revocations != nil {
				revoked, err := revocations.IsRevoked(c.Request().Context(), identity)
				switch {
				case err != nil:
					log.Warn().Err(err).Str("user_id", identity.UserID).Msg("revocation check failed, accepting token")
				case revoked:
					return echo.NewHTTPError(http.StatusUnauthorized, "token has been revoked")
				}
			}

			req := c.Request()
			c.SetRequest(req.WithContext(WithIdentity(req.Context(), identity)))
			return next(c)
		}
	}
}
