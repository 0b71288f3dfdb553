package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/vetician/vetician-api/internal/domain"
	"github.com/vetician/vetician-api/internal/store"
)

// MockUserStore implements store.UserStore for testing.
type MockUserStore struct {
	CreateFn            func(ctx context.Context, user *domain.User) error
	GetByEmailAndRoleFn func(ctx context.Context, email string, role domain.Role) (*domain.User, error)
	GetByIDFn           func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByPhoneFn        func(ctx context.Context, phone string) (*domain.User, error)
	UpdateFn            func(ctx context.Context, user *domain.User) error
	UpdateRoleFn        func(ctx context.Context, id uuid.UUID, role domain.Role) error
	TouchLastLoginFn    func(ctx context.Context, id uuid.UUID) error
	SoftDeleteFn        func(ctx context.Context, id uuid.UUID) error

	// Users indexes the default in-memory data set by ID.
	Users map[uuid.UUID]*domain.User
}

var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates a mock user store with an empty data set.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{Users: make(map[uuid.UUID]*domain.User)}
}

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	for _, existing := range m.Users {
		if existing.Email == user.Email && existing.Role == user.Role {
			return store.ErrEmailExists
		}
	}
	m.Users[user.ID] = user
	return nil
}

func (m *MockUserStore) GetByEmailAndRole(ctx context.Context, email string, role domain.Role) (*domain.User, error) {
	if m.GetByEmailAndRoleFn != nil {
		return m.GetByEmailAndRoleFn(ctx, email, role)
	}
	for _, user := range m.Users {
		if user.Email == email && user.Role == role {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	user, ok := m.Users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

func (m *MockUserStore) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	if m.GetByPhoneFn != nil {
		return m.GetByPhoneFn(ctx, phone)
	}
	for _, user := range m.Users {
		if user.Phone == phone {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}
	if _, ok := m.Users[user.ID]; !ok {
		return store.ErrUserNotFound
	}
	m.Users[user.ID] = user
	return nil
}

func (m *MockUserStore) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error {
	if m.UpdateRoleFn != nil {
		return m.UpdateRoleFn(ctx, id, role)
	}
	user, ok := m.Users[id]
	if !ok {
		return store.ErrUserNotFound
	}
	user.Role = role
	return nil
}

func (m *MockUserStore) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	if m.TouchLastLoginFn != nil {
		return m.TouchLastLoginFn(ctx, id)
	}
	return nil
}

func (m *MockUserStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if m.SoftDeleteFn != nil {
		return m.SoftDeleteFn(ctx, id)
	}
	if _, ok := m.Users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(m.Users, id)
	return nil
}

func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore { return m }

// MockRefreshTokenStore implements store.RefreshTokenStore for testing.
type MockRefreshTokenStore struct {
	SaveFn             func(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	ConsumeFn          func(ctx context.Context, tokenHash string) (uuid.UUID, error)
	DeleteAllForUserFn func(ctx context.Context, userID uuid.UUID) error

	// Tokens maps token hash to the owning user.
	Tokens map[string]uuid.UUID
}

var _ store.RefreshTokenStore = (*MockRefreshTokenStore)(nil)

// NewMockRefreshTokenStore creates a mock token store with an empty data
// set.
func NewMockRefreshTokenStore() *MockRefreshTokenStore {
	return &MockRefreshTokenStore{Tokens: make(map[string]uuid.UUID)}
}

func (m *MockRefreshTokenStore) Save(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, userID, tokenHash, expiresAt)
	}
	m.Tokens[tokenHash] = userID
	return nil
}

func (m *MockRefreshTokenStore) Consume(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	if m.ConsumeFn != nil {
		return m.ConsumeFn(ctx, tokenHash)
	}
	userID, ok := m.Tokens[tokenHash]
	if !ok {
		return uuid.Nil, store.ErrTokenNotFound
	}
	delete(m.Tokens, tokenHash)
	return userID, nil
}

func (m *MockRefreshTokenStore) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	if m.DeleteAllForUserFn != nil {
		return m.DeleteAllForUserFn(ctx, userID)
	}
	for hash, owner := range m.Tokens {
		if owner == userID {
			delete(m.Tokens, hash)
		}
	}
	return nil
}

func (m *MockRefreshTokenStore) WithTx(tx *sql.Tx) store.RefreshTokenStore { return m }
