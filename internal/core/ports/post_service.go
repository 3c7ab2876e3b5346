package ports

import (
	"context"

	"github.com/protolab/portal-api/internal/core/domain"
)

// PostInput carries the editable CMS fields for create and update.
type PostInput struct {
	Slug      string
	Title     string
	Body      string
	CoverURL  string
	Published bool
}

// PostService exposes the blog/page CMS operations. Public reads only ever
// see published posts; the admin operations see everything.
type PostService interface {
	Publish(ctx context.Context, input PostInput) (*domain.Post, error)
	Update(ctx context.Context, id string, input PostInput) (*domain.Post, error)
	Delete(ctx context.Context, id string) error
	GetPublished(ctx context.Context, slug string) (*domain.Post, error)
	ListPublished(ctx context.Context) ([]domain.Post, error)
}
