package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/protolab/portal-api/internal/core/domain"
	"github.com/protolab/portal-api/internal/core/ports"
)

// SessionManager owns the current identity for the lifetime of a process.
// It is the only component that mutates the session; everything else reads
// snapshots via Session(). The identity identifier is mirrored to a durable
// store so a restart can re-resolve it.
type SessionManager struct {
	users ports.UserRepository
	store ports.IdentifierStore
	log   zerolog.Logger

	mu      sync.Mutex
	session domain.Session
}

func NewSessionManager(users ports.UserRepository, store ports.IdentifierStore, log zerolog.Logger) *SessionManager {
	return &SessionManager{
		users:   users,
		store:   store,
		log:     log,
		session: domain.Session{IsLoading: true},
	}
}

// Session returns a snapshot of the current session.
func (m *SessionManager) Session() domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// Initialize resolves the persisted identifier into an identity. A stale
// identifier (user no longer exists) is cleared and the session settles
// unauthenticated; that path is a recovery, not an error. The session
// reports IsLoading until this returns.
func (m *SessionManager) Initialize(ctx context.Context) error {
	id, err := m.store.Load(ctx)
	if err != nil {
		m.settle(nil)
		return err
	}
	if id == "" {
		m.settle(nil)
		return nil
	}

	user, err := m.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			m.log.Info().Str("user_id", id).Msg("stale persisted identifier, clearing")
			_ = m.store.Clear(ctx)
			m.settle(nil)
			return nil
		}
		m.settle(nil)
		return err
	}

	m.settle(user)
	if err := m.store.Save(ctx, user.ID); err != nil {
		m.log.Warn().Err(err).Msg("failed to refresh persisted identifier")
	}
	return nil
}

// Login authenticates by email and secret. Unknown email and wrong secret
// are indistinguishable to the caller; the session is untouched on failure.
func (m *SessionManager) Login(ctx context.Context, email, secret string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || secret == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := m.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(secret)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	m.settle(user)
	if err := m.store.Save(ctx, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

// Logout clears the session and the persisted identifier. Idempotent.
func (m *SessionManager) Logout(ctx context.Context) {
	m.settle(nil)
	if err := m.store.Clear(ctx); err != nil {
		m.log.Warn().Err(err).Msg("failed to clear persisted identifier")
	}
}

// SignUp creates a customer identity and behaves as a successful login.
func (m *SessionManager) SignUp(ctx context.Context, email, secret, name, companyName string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || secret == "" || name == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := m.users.Create(ctx, &domain.User{
		Email:        email,
		Name:         name,
		CompanyName:  companyName,
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	m.settle(created)
	if err := m.store.Save(ctx, created.ID); err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateProfile mutates only name, company name, and email on the current
// identity. A no-op when no identity is present. Store errors propagate and
// leave the in-memory identity unchanged.
func (m *SessionManager) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.User, error) {
	m.mu.Lock()
	current := m.session.Identity
	m.mu.Unlock()
	if current == nil {
		return nil, nil
	}

	next := *current
	if update.Name != nil {
		next.Name = *update.Name
	}
	if update.CompanyName != nil {
		next.CompanyName = *update.CompanyName
	}
	if update.Email != nil {
		next.Email = strings.TrimSpace(strings.ToLower(*update.Email))
	}
	next.UpdatedAt = time.Now().UTC()

	saved, err := m.users.Update(ctx, &next)
	if err != nil {
		return nil, err
	}

	m.settle(saved)
	return saved, nil
}

func (m *SessionManager) settle(user *domain.User) {
	m.mu.Lock()
	m.session = domain.Session{Identity: user, IsLoading: false}
	m.mu.Unlock()
}
