package ports

import (
	"context"

	"github.com/protolab/portal-api/internal/core/domain"
)

// PostRepository defines the interface for CMS post persistence.
type PostRepository interface {
	Insert(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Post, error)
	ListPublished(ctx context.Context) ([]domain.Post, error)
	Update(ctx context.Context, post *domain.Post) (*domain.Post, error)
	Delete(ctx context.Context, id string) error
}
