package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/protolab/portal-api/internal/api/middleware"
	"github.com/protolab/portal-api/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware. A
// protected route reached without an identity means the Gate middleware was
// bypassed; reject with 401.
func ctxIdentity(c echo.Context) (*domain.User, error) {
	s := middleware.SessionFrom(c)
	if s.Identity == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return s.Identity, nil
}
