package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/protolab/portal-api/internal/api/metrics"
	"github.com/protolab/portal-api/internal/core/authz"
	"github.com/protolab/portal-api/internal/core/domain"
)

// gateResponse carries the denial and where the client should navigate.
// A wrong-role denial never redirects to login: the caller is authenticated.
type gateResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect"`
}

// Gate enforces the access decision for a protected route. An empty
// required role admits any authenticated identity. The decision is
// re-evaluated on every request.
func Gate(required domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := authz.Evaluate(SessionFrom(c), required)
			switch decision {
			case authz.Allowed:
				return next(c)
			case authz.DeniedUnauthenticated:
				metrics.GateDenialsTotal.WithLabelValues("unauthenticated").Inc()
				return c.JSON(http.StatusUnauthorized, gateResponse{
					Error:    "authentication required",
					Redirect: authz.RedirectFor(decision),
				})
			case authz.DeniedWrongRole:
				metrics.GateDenialsTotal.WithLabelValues("wrong_role").Inc()
				return c.JSON(http.StatusForbidden, gateResponse{
					Error:    "access forbidden",
					Redirect: authz.RedirectFor(decision),
				})
			}
			// Loading never occurs here: Auth resolves synchronously.
			return echo.NewHTTPError(http.StatusServiceUnavailable, "session not resolved")
		}
	}
}
