package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/protolab/portal-api/internal/core/domain"
	"github.com/protolab/portal-api/internal/core/ports"
)

// ProjectService implements project tracking. Customers see only their own
// projects; admins see and advance everything.
type ProjectService struct {
	repo   ports.ProjectRepository
	logger zerolog.Logger
}

func NewProjectService(repo ports.ProjectRepository, logger zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, logger: logger}
}

// Create opens a new project in draft.
func (s *ProjectService) Create(ctx context.Context, input ports.CreateProjectInput) (*domain.Project, error) {
	now := time.Now().UTC()
	project := &domain.Project{
		OwnerID:     input.OwnerID,
		Name:        input.Name,
		Description: input.Description,
		Status:      domain.ProjectDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, project)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", input.OwnerID).Msg("failed to create project")
		return nil, err
	}

	s.logger.Info().Str("project_id", created.ID).Str("owner_id", created.OwnerID).Msg("project created")
	return created, nil
}

// Get returns a project if the actor owns it or is an admin.
func (s *ProjectService) Get(ctx context.Context, id string, actor *domain.User) (*domain.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && project.OwnerID != actor.ID {
		return nil, domain.ErrForbidden
	}
	return project, nil
}

// List returns the actor's projects, or all projects for an admin.
func (s *ProjectService) List(ctx context.Context, actor *domain.User) ([]domain.Project, error) {
	if actor.Role == domain.RoleAdmin {
		return s.repo.ListAll(ctx)
	}
	return s.repo.ListByOwner(ctx, actor.ID)
}

// AdvanceStatus moves a project to the next stage, enforcing the stage
// state machine. Admin-only; the route guard enforces the role.
func (s *ProjectService) AdvanceStatus(ctx context.Context, id string, next domain.ProjectStatus) (*domain.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !project.Status.CanAdvanceTo(next) {
		return nil, domain.ErrInvalidStage
	}

	updated, err := s.repo.UpdateStatus(ctx, id, next)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("project_id", id).
		Str("from", string(project.Status)).
		Str("to", string(next)).
		Msg("project advanced")
	return updated, nil
}
