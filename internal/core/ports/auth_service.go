package ports

import (
	"context"

	"github.com/protolab/portal-api/internal/core/domain"
)

type AuthService interface {
	SignUp(ctx context.Context, email, secret, name, companyName string) (string, *domain.User, error)
	Login(ctx context.Context, email, secret string) (string, *domain.User, error)
	ResolveIdentity(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error)
}
