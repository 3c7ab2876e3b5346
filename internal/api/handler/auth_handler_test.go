package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/protolab/portal-api/internal/core/domain"
)

type stubAuthService struct {
	signUpFn func(ctx context.Context, email, secret, name, companyName string) (string, *domain.User, error)
	loginFn  func(ctx context.Context, email, secret string) (string, *domain.User, error)
}

func (s *stubAuthService) SignUp(ctx context.Context, email, secret, name, companyName string) (string, *domain.User, error) {
	return s.signUpFn(ctx, email, secret, name, companyName)
}

func (s *stubAuthService) Login(ctx context.Context, email, secret string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, secret)
}

func (s *stubAuthService) ResolveIdentity(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubAuthService) UpdateProfile(context.Context, string, domain.ProfileUpdate) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func newAuthTestContext(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register(t *testing.T) {
	svc := &stubAuthService{
		signUpFn: func(_ context.Context, email, secret, name, companyName string) (string, *domain.User, error) {
			if email != "new@example.com" || name != "New User" {
				t.Fatalf("unexpected signup input: %s %s", email, name)
			}
			return "tok", &domain.User{ID: "u1", Email: email, Name: name, Role: domain.RoleCustomer}, nil
		},
	}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(`{"email":"new@example.com","password":"longenough","name":"New User"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp struct {
		Token string       `json:"token"`
		User  *domain.User `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Token != "tok" || resp.User.Role != domain.RoleCustomer {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	tests := []struct {
		name string
		body string
	}{
		{"bad email", `{"email":"nope","password":"longenough","name":"x"}`},
		{"short password", `{"email":"a@b.com","password":"short","name":"x"}`},
		{"missing name", `{"email":"a@b.com","password":"longenough"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newAuthTestContext(tt.body)
			err := h.Register(c)
			var httpErr *echo.HTTPError
			if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %v", err)
			}
		})
	}
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	svc := &stubAuthService{
		signUpFn: func(context.Context, string, string, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrUserExists
		},
	}
	h := NewAuthHandler(svc)

	c, _ := newAuthTestContext(`{"email":"a@b.com","password":"longenough","name":"x"}`)
	// The duplicate error passes through untouched for the central error
	// handler to map to 409.
	if err := h.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(_ context.Context, email, secret string) (string, *domain.User, error) {
			if email != "a@b.com" || secret != "pw" {
				return "", nil, domain.ErrInvalidCredentials
			}
			return "tok", &domain.User{ID: "u1", Email: email, Role: domain.RoleAdmin}, nil
		},
	}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(`{"email":"a@b.com","password":"pw"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(svc)

	c, _ := newAuthTestContext(`{"email":"a@b.com","password":"pw"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
