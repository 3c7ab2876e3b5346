package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/protolab/portal-api/internal/core/domain"
)

// SessionKey is the context key under which Auth stores the resolved
// domain.Session for downstream middleware and handlers.
const SessionKey = "session"

// Auth validates the bearer JWT and injects the resolved session into the
// request context. Requests without a token still pass through, carrying an
// unauthenticated session; the Gate middleware decides access per route.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				c.Set(SessionKey, domain.Session{})
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			sub, _ := claims["sub"].(string)
			email, _ := claims["email"].(string)
			role, _ := claims["role"].(string)
			if sub == "" || !domain.Role(role).Valid() {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing identity claims")
			}

			c.Set(SessionKey, domain.Session{Identity: &domain.User{
				ID:    sub,
				Email: email,
				Role:  domain.Role(role),
			}})

			return next(c)
		}
	}
}

// SessionFrom extracts the session injected by Auth. A missing value reads
// as a settled, unauthenticated session.
func SessionFrom(c echo.Context) domain.Session {
	s, _ := c.Get(SessionKey).(domain.Session)
	return s
}
