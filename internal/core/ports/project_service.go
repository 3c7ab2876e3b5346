package ports

import (
	"context"

	"github.com/protolab/portal-api/internal/core/domain"
)

// CreateProjectInput carries everything needed to open a new project.
type CreateProjectInput struct {
	OwnerID     string
	Name        string
	Description string
}

// ProjectService exposes project tracking operations. Actor identity and
// role flow in explicitly so ownership checks stay inside the service.
type ProjectService interface {
	Create(ctx context.Context, input CreateProjectInput) (*domain.Project, error)
	Get(ctx context.Context, id string, actor *domain.User) (*domain.Project, error)
	List(ctx context.Context, actor *domain.User) ([]domain.Project, error)
	AdvanceStatus(ctx context.Context, id string, next domain.ProjectStatus) (*domain.Project, error)
}
