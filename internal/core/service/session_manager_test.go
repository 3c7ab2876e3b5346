package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/protolab/portal-api/internal/core/domain"
)

type memoryIdentifierStore struct {
	id      string
	loadErr error
	saveErr error
}

func (s *memoryIdentifierStore) Load(_ context.Context) (string, error) {
	return s.id, s.loadErr
}

func (s *memoryIdentifierStore) Save(_ context.Context, id string) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.id = id
	return nil
}

func (s *memoryIdentifierStore) Clear(_ context.Context) error {
	s.id = ""
	return nil
}

func newManager(t *testing.T) (*SessionManager, *stubUserRepo, *memoryIdentifierStore) {
	t.Helper()
	repo := newStubUserRepo()
	store := &memoryIdentifierStore{}
	return NewSessionManager(repo, store, zerolog.Nop()), repo, store
}

func TestSessionManager_InitialStateIsLoading(t *testing.T) {
	m, _, _ := newManager(t)

	s := m.Session()
	if !s.IsLoading {
		t.Fatalf("expected loading session before Initialize")
	}
	if s.IsAuthenticated() {
		t.Fatalf("loading session must not report authenticated")
	}
}

func TestSessionManager_Initialize_NoIdentifier(t *testing.T) {
	m, _, _ := newManager(t)

	if err := m.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	s := m.Session()
	if s.IsLoading || s.Identity != nil {
		t.Fatalf("expected settled unauthenticated session, got %+v", s)
	}
}

func TestSessionManager_Initialize_ResolvesIdentity(t *testing.T) {
	m, repo, store := newManager(t)
	user := repo.seed("ann@example.com", "pw", domain.RoleCustomer)
	store.id = user.ID

	if err := m.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	s := m.Session()
	if !s.IsAuthenticated() {
		t.Fatalf("expected authenticated session")
	}
	if s.Identity.Email != "ann@example.com" {
		t.Fatalf("unexpected identity: %+v", s.Identity)
	}
}

func TestSessionManager_Initialize_StaleIdentifierCleared(t *testing.T) {
	m, _, store := newManager(t)
	store.id = "gone-user"

	if err := m.Initialize(context.Background()); err != nil {
		t.Fatalf("stale identifier must not surface an error, got %v", err)
	}

	if store.id != "" {
		t.Fatalf("stale identifier not cleared")
	}
	if m.Session().IsAuthenticated() {
		t.Fatalf("expected unauthenticated session")
	}
}

func TestSessionManager_Login_Success(t *testing.T) {
	m, repo, store := newManager(t)
	seeded := repo.seed("bob@example.com", "s3cret", domain.RoleCustomer)
	_ = m.Initialize(context.Background())

	user, err := m.Login(context.Background(), "bob@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != seeded.ID {
		t.Fatalf("unexpected user: %+v", user)
	}

	s := m.Session()
	if !s.IsAuthenticated() || s.Identity.ID != seeded.ID {
		t.Fatalf("session not populated: %+v", s)
	}
	if store.id != seeded.ID {
		t.Fatalf("identifier not persisted, got %q", store.id)
	}
}

func TestSessionManager_Login_WrongSecret(t *testing.T) {
	m, repo, store := newManager(t)
	repo.seed("carol@example.com", "goodpass", domain.RoleCustomer)
	_ = m.Initialize(context.Background())

	if _, err := m.Login(context.Background(), "carol@example.com", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	if m.Session().IsAuthenticated() {
		t.Fatalf("failed login must leave session unchanged")
	}
	if store.id != "" {
		t.Fatalf("failed login must not persist an identifier")
	}
}

func TestSessionManager_Login_UnknownEmail(t *testing.T) {
	m, _, _ := newManager(t)
	_ = m.Initialize(context.Background())

	// Unknown email collapses to the same error as a wrong secret.
	if _, err := m.Login(context.Background(), "ghost@example.com", "pw"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSessionManager_LogoutThenReinitialize(t *testing.T) {
	m, repo, store := newManager(t)
	repo.seed("dave@example.com", "pw123456", domain.RoleCustomer)
	_ = m.Initialize(context.Background())
	if _, err := m.Login(context.Background(), "dave@example.com", "pw123456"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	m.Logout(context.Background())
	m.Logout(context.Background()) // idempotent

	if m.Session().IsAuthenticated() {
		t.Fatalf("session not cleared")
	}

	// Simulate a reload: a fresh manager against the same store must not
	// re-resolve the previous identity.
	fresh := NewSessionManager(repo, store, zerolog.Nop())
	if err := fresh.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}
	if fresh.Session().IsAuthenticated() {
		t.Fatalf("logout must survive re-initialization")
	}
}

func TestSessionManager_SignUpThenLogin(t *testing.T) {
	m, _, _ := newManager(t)
	_ = m.Initialize(context.Background())

	created, err := m.SignUp(context.Background(), "a@b.com", "pw", "Ann", "")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if created.Role != domain.RoleCustomer {
		t.Fatalf("signup must fix role to customer, got %s", created.Role)
	}
	if !m.Session().IsAuthenticated() {
		t.Fatalf("signup must behave as a successful login")
	}

	m.Logout(context.Background())

	user, err := m.Login(context.Background(), "a@b.com", "pw")
	if err != nil {
		t.Fatalf("login after signup failed: %v", err)
	}
	if user.Role != domain.RoleCustomer {
		t.Fatalf("unexpected role: %s", user.Role)
	}
}

func TestSessionManager_SignUp_DuplicateEmail(t *testing.T) {
	m, repo, _ := newManager(t)
	repo.seed("taken@example.com", "pw", domain.RoleCustomer)
	_ = m.Initialize(context.Background())

	if _, err := m.SignUp(context.Background(), "taken@example.com", "pw2", "Other", ""); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if m.Session().IsAuthenticated() {
		t.Fatalf("failed signup must leave session unchanged")
	}
}

func TestSessionManager_UpdateProfile(t *testing.T) {
	m, repo, _ := newManager(t)
	repo.seed("eve@example.com", "pw", domain.RoleCustomer)
	_ = m.Initialize(context.Background())
	if _, err := m.Login(context.Background(), "eve@example.com", "pw"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	name := "Eve Updated"
	company := "Acme"
	user, err := m.UpdateProfile(context.Background(), domain.ProfileUpdate{Name: &name, CompanyName: &company})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if user.Name != "Eve Updated" || user.CompanyName != "Acme" {
		t.Fatalf("update not applied: %+v", user)
	}
	if user.Role != domain.RoleCustomer {
		t.Fatalf("role must never change on profile update")
	}
	if m.Session().Identity.Name != "Eve Updated" {
		t.Fatalf("session not refreshed after update")
	}
}

func TestSessionManager_UpdateProfile_NoIdentity(t *testing.T) {
	m, _, _ := newManager(t)
	_ = m.Initialize(context.Background())

	name := "Nobody"
	user, err := m.UpdateProfile(context.Background(), domain.ProfileUpdate{Name: &name})
	if err != nil {
		t.Fatalf("no-op update must not error, got %v", err)
	}
	if user != nil {
		t.Fatalf("no-op update must return nil identity")
	}
}

func TestSessionManager_UpdateProfile_StoreFailure(t *testing.T) {
	m, repo, _ := newManager(t)
	repo.seed("frank@example.com", "pw", domain.RoleCustomer)
	_ = m.Initialize(context.Background())
	if _, err := m.Login(context.Background(), "frank@example.com", "pw"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	repo.updateErr = errors.New("write failed")
	name := "Frank II"
	if _, err := m.UpdateProfile(context.Background(), domain.ProfileUpdate{Name: &name}); err == nil {
		t.Fatalf("store failure must propagate")
	}
	if m.Session().Identity.Name == "Frank II" {
		t.Fatalf("failed update must not mutate the session")
	}
}
