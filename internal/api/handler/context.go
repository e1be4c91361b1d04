package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/task-manager/internal/api/middleware"
	"github.com/99minutos/task-manager/internal/core/domain"
)

// identityFrom returns the caller injected by the Auth middleware. Its
// absence means the route was mounted without Auth, which is reported as 401
// rather than served anonymously.
func identityFrom(c echo.Context) (domain.Identity, error) {
	identity, ok := middleware.IdentityFrom(c.Request().Context())
	if !ok {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return identity, nil
}
