package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/protolab/portal-api/internal/core/domain"
	"github.com/protolab/portal-api/internal/core/ports"
)

type stubProjectRepo struct {
	projects map[string]*domain.Project
	nextID   int
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{projects: make(map[string]*domain.Project)}
}

func (r *stubProjectRepo) Create(_ context.Context, project *domain.Project) (*domain.Project, error) {
	r.nextID++
	created := *project
	created.ID = fmt.Sprintf("prj_%d", r.nextID)
	r.projects[created.ID] = &created
	clone := created
	return &clone, nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	if p, ok := r.projects[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, domain.ErrProjectNotFound
}

func (r *stubProjectRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Project, error) {
	var out []domain.Project
	for _, p := range r.projects {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProjectRepo) ListAll(_ context.Context) ([]domain.Project, error) {
	var out []domain.Project
	for _, p := range r.projects {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProjectRepo) UpdateStatus(_ context.Context, id string, status domain.ProjectStatus) (*domain.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	p.Status = status
	clone := *p
	return &clone, nil
}

func actor(id string, role domain.Role) *domain.User {
	return &domain.User{ID: id, Role: role}
}

func TestProjectService_CreateStartsInDraft(t *testing.T) {
	svc := NewProjectService(newStubProjectRepo(), zerolog.Nop())

	p, err := svc.Create(context.Background(), ports.CreateProjectInput{OwnerID: "cust_1", Name: "Site redesign"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if p.Status != domain.ProjectDraft {
		t.Fatalf("new project must start in draft, got %s", p.Status)
	}
	if p.ID == "" {
		t.Fatalf("expected assigned id")
	}
}

func TestProjectService_GetOwnership(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, zerolog.Nop())
	p, _ := svc.Create(context.Background(), ports.CreateProjectInput{OwnerID: "cust_1", Name: "x"})

	if _, err := svc.Get(context.Background(), p.ID, actor("cust_1", domain.RoleCustomer)); err != nil {
		t.Fatalf("owner must read own project: %v", err)
	}
	if _, err := svc.Get(context.Background(), p.ID, actor("cust_2", domain.RoleCustomer)); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for foreign project, got %v", err)
	}
	if _, err := svc.Get(context.Background(), p.ID, actor("admin_1", domain.RoleAdmin)); err != nil {
		t.Fatalf("admin must read any project: %v", err)
	}
	if _, err := svc.Get(context.Background(), "missing", actor("admin_1", domain.RoleAdmin)); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestProjectService_ListScopedByRole(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, zerolog.Nop())
	_, _ = svc.Create(context.Background(), ports.CreateProjectInput{OwnerID: "cust_1", Name: "a"})
	_, _ = svc.Create(context.Background(), ports.CreateProjectInput{OwnerID: "cust_2", Name: "b"})

	mine, err := svc.List(context.Background(), actor("cust_1", domain.RoleCustomer))
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(mine) != 1 || mine[0].OwnerID != "cust_1" {
		t.Fatalf("customer list must only contain own projects: %+v", mine)
	}

	all, err := svc.List(context.Background(), actor("admin_1", domain.RoleAdmin))
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin list must contain all projects, got %d", len(all))
	}
}

func TestProjectService_AdvanceStatus(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, zerolog.Nop())
	p, _ := svc.Create(context.Background(), ports.CreateProjectInput{OwnerID: "cust_1", Name: "x"})

	steps := []domain.ProjectStatus{domain.ProjectInProgress, domain.ProjectInReview, domain.ProjectCompleted}
	for _, next := range steps {
		updated, err := svc.AdvanceStatus(context.Background(), p.ID, next)
		if err != nil {
			t.Fatalf("advance to %s failed: %v", next, err)
		}
		if updated.Status != next {
			t.Fatalf("status = %s, want %s", updated.Status, next)
		}
	}

	// Completed is terminal.
	if _, err := svc.AdvanceStatus(context.Background(), p.ID, domain.ProjectInProgress); !errors.Is(err, domain.ErrInvalidStage) {
		t.Fatalf("expected ErrInvalidStage from completed, got %v", err)
	}
}

func TestProjectService_AdvanceStatus_SkippingStages(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, zerolog.Nop())
	p, _ := svc.Create(context.Background(), ports.CreateProjectInput{OwnerID: "cust_1", Name: "x"})

	if _, err := svc.AdvanceStatus(context.Background(), p.ID, domain.ProjectCompleted); !errors.Is(err, domain.ErrInvalidStage) {
		t.Fatalf("draft must not jump to completed, got %v", err)
	}
	if got, _ := repo.FindByID(context.Background(), p.ID); got.Status != domain.ProjectDraft {
		t.Fatalf("rejected transition must not mutate the project, got %s", got.Status)
	}
}
