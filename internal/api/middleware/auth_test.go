package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/protolab/portal-api/internal/core/domain"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func validClaims(role domain.Role) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   "user_1",
		"email": "u@example.com",
		"role":  string(role),
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
}

func runAuth(t *testing.T, authHeader string) (domain.Session, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var captured domain.Session
	handler := Auth(testSecret)(func(c echo.Context) error {
		captured = SessionFrom(c)
		return c.NoContent(http.StatusOK)
	})
	return captured, handler(c)
}

func TestAuth_NoHeaderPassesThrough(t *testing.T) {
	s, err := runAuth(t, "")
	if err != nil {
		t.Fatalf("missing header must not error, got %v", err)
	}
	if s.IsLoading || s.IsAuthenticated() {
		t.Fatalf("expected settled unauthenticated session, got %+v", s)
	}
}

func TestAuth_ValidToken(t *testing.T) {
	token := signToken(t, testSecret, validClaims(domain.RoleAdmin))
	s, err := runAuth(t, "Bearer "+token)
	if err != nil {
		t.Fatalf("valid token rejected: %v", err)
	}
	if !s.IsAuthenticated() {
		t.Fatalf("expected authenticated session")
	}
	if s.Identity.ID != "user_1" || s.Identity.Role != domain.RoleAdmin {
		t.Fatalf("unexpected identity: %+v", s.Identity)
	}
}

func TestAuth_Rejections(t *testing.T) {
	expired := validClaims(domain.RoleCustomer)
	expired["exp"] = time.Now().Add(-time.Hour).Unix()

	noSub := validClaims(domain.RoleCustomer)
	delete(noSub, "sub")

	badRole := validClaims("superuser")

	tests := []struct {
		name   string
		header string
	}{
		{"malformed header", "Token abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong secret", "Bearer " + signToken(t, "other-secret", validClaims(domain.RoleCustomer))},
		{"expired", "Bearer " + signToken(t, testSecret, expired)},
		{"missing sub", "Bearer " + signToken(t, testSecret, noSub)},
		{"unknown role", "Bearer " + signToken(t, testSecret, badRole)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runAuth(t, tt.header)
			var httpErr *echo.HTTPError
			if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %v", err)
			}
		})
	}
}

func TestSessionFrom_MissingValue(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	s := SessionFrom(c)
	if s.IsLoading || s.Identity != nil {
		t.Fatalf("missing session must read as settled unauthenticated, got %+v", s)
	}
}
