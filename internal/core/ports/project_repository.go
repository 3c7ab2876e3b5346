package ports

import (
	"context"

	"github.com/protolab/portal-api/internal/core/domain"
)

// ProjectRepository defines the interface for project persistence.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Project, error)
	ListAll(ctx context.Context) ([]domain.Project, error)
	UpdateStatus(ctx context.Context, id string, status domain.ProjectStatus) (*domain.Project, error)
}
