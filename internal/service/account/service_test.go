package account

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vetician/vetician-api/internal/domain"
	"github.com/vetician/vetician-api/internal/mocks"
	"github.com/vetician/vetician-api/internal/service/auth"
)

type serviceFixture struct {
	users    *mocks.MockUserStore
	tokens   *mocks.MockRefreshTokenStore
	parents  *mocks.MockParentStore
	paravets *mocks.MockParavetStore
	jwt      *mocks.MockJWTService
	verifier *mocks.MockPasswordVerifier
	service  *Service
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	f := &serviceFixture{
		users:    mocks.NewMockUserStore(),
		tokens:   mocks.NewMockRefreshTokenStore(),
		parents:  mocks.NewMockParentStore(),
		paravets: mocks.NewMockParavetStore(),
		jwt:      &mocks.MockJWTService{},
		verifier: &mocks.MockPasswordVerifier{},
	}
	f.service = NewService(
		nil,
		f.users,
		f.tokens,
		f.parents,
		mocks.NewMockPetStore(),
		mocks.NewMockVeterinarianStore(),
		mocks.NewMockClinicStore(),
		mocks.NewMockPetResortStore(),
		f.paravets,
		f.jwt,
		f.verifier,
		nil,
	)
	return f
}

func (f *serviceFixture) seedUser(t *testing.T, role domain.Role) *domain.User {
	t.Helper()
	user, err := domain.NewUser("Asha Kumar", "asha@example.com", "9876543210", "supersecret", role)
	require.NoError(t, err)
	user.HashedPassword = "hashed"
	user.Password = ""
	f.users.Users[user.ID] = user
	return user
}

func registerInput(role domain.Role) RegisterInput {
	return RegisterInput{
		Name:     "Asha Kumar",
		Email:    "asha@example.com",
		Phone:    "9876543210",
		Password: "supersecret",
		Role:     role,
	}
}

func TestRegisterCreatesParentStub(t *testing.T) {
	f := newServiceFixture(t)

	user, err := f.service.Register(context.Background(), registerInput(domain.RolePetParent))
	require.NoError(t, err)

	require.Contains(t, f.parents.Parents, user.ID)
	parent := f.parents.Parents[user.ID]
	assert.Equal(t, "Asha Kumar", parent.Name)
	assert.Equal(t, "asha@example.com", parent.Email)
	assert.Empty(t, f.paravets.Profiles)
}

func TestRegisterCreatesParavetProfileStub(t *testing.T) {
	f := newServiceFixture(t)

	user, err := f.service.Register(context.Background(), registerInput(domain.RoleParavet))
	require.NoError(t, err)

	require.Contains(t, f.paravets.Profiles, user.ID)
	profile := f.paravets.Profiles[user.ID]
	assert.Equal(t, domain.ApprovalApproved, profile.ApprovalStatus)
	assert.Equal(t, "9876543210", profile.PersonalInfo.MobileNumber.Value)
	assert.Empty(t, f.parents.Parents)
}

func TestRegisterDuplicateEmailAndRoleConflicts(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.service.Register(context.Background(), registerInput(domain.RolePetParent))
	require.NoError(t, err)

	_, err = f.service.Register(context.Background(), registerInput(domain.RolePetParent))
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, f.users.Users, 1)
}

func TestRegisterSameEmailDifferentRole(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.service.Register(context.Background(), registerInput(domain.RolePetParent))
	require.NoError(t, err)

	_, err = f.service.Register(context.Background(), registerInput(domain.RoleVeterinarian))
	require.NoError(t, err)

	assert.Len(t, f.users.Users, 2)
}

func TestLoginIssuesTokenPair(t *testing.T) {
	f := newServiceFixture(t)
	user := f.seedUser(t, domain.RolePetParent)

	pair, err := f.service.Login(context.Background(), user.Email, domain.RolePetParent, "supersecret")
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, user.ID, pair.User.ID)
	assert.Len(t, f.tokens.Tokens, 1, "refresh token hash should be persisted")
}

func TestLoginUnknownEmail(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.service.Login(context.Background(), "nobody@example.com", domain.RolePetParent, "supersecret")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginWrongRole(t *testing.T) {
	f := newServiceFixture(t)
	user := f.seedUser(t, domain.RolePetParent)

	// Same email, different role account does not exist.
	_, err := f.service.Login(context.Background(), user.Email, domain.RoleVeterinarian, "supersecret")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newServiceFixture(t)
	user := f.seedUser(t, domain.RolePetParent)
	f.verifier.CompareFn = func(ctx context.Context, hashed, plain string) error {
		return auth.ErrInvalidCredentials
	}

	_, err := f.service.Login(context.Background(), user.Email, domain.RolePetParent, "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	assert.Empty(t, f.tokens.Tokens)
}

func TestLoginInactiveAccount(t *testing.T) {
	f := newServiceFixture(t)
	user := f.seedUser(t, domain.RolePetParent)
	user.IsActive = false

	_, err := f.service.Login(context.Background(), user.Email, domain.RolePetParent, "supersecret")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRefreshRotatesToken(t *testing.T) {
	f := newServiceFixture(t)
	user := f.seedUser(t, domain.RolePetParent)

	pair, err := f.service.Login(context.Background(), user.Email, domain.RolePetParent, "supersecret")
	require.NoError(t, err)

	f.jwt.ValidateRefreshTokenFn = func(ctx context.Context, tokenString string) (*auth.Claims, error) {
		return &auth.Claims{UserID: user.ID, TokenType: "refresh"}, nil
	}

	rotated, err := f.service.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, rotated.AccessToken)

	// The consumed token must not work a second time.
	_, err = f.service.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestRefreshRejectsUnknownToken(t *testing.T) {
	f := newServiceFixture(t)
	user := f.seedUser(t, domain.RolePetParent)
	f.jwt.ValidateRefreshTokenFn = func(ctx context.Context, tokenString string) (*auth.Claims, error) {
		return &auth.Claims{UserID: user.ID, TokenType: "refresh"}, nil
	}

	_, err := f.service.Refresh(context.Background(), "never-issued")
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestRefreshRejectsClaimMismatch(t *testing.T) {
	f := newServiceFixture(t)
	user := f.seedUser(t, domain.RolePetParent)

	pair, err := f.service.Login(context.Background(), user.Email, domain.RolePetParent, "supersecret")
	require.NoError(t, err)

	// Signed claims name a different user than the stored row.
	f.jwt.ValidateRefreshTokenFn = func(ctx context.Context, tokenString string) (*auth.Claims, error) {
		return &auth.Claims{UserID: uuid.New(), TokenType: "refresh"}, nil
	}

	_, err = f.service.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestLogoutIsIdempotent(t *testing.T) {
	f := newServiceFixture(t)
	user := f.seedUser(t, domain.RolePetParent)

	pair, err := f.service.Login(context.Background(), user.Email, domain.RolePetParent, "supersecret")
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(context.Background(), pair.RefreshToken))
	assert.Empty(t, f.tokens.Tokens)

	// A second logout with the same token is not an error.
	require.NoError(t, f.service.Logout(context.Background(), pair.RefreshToken))
}

func TestLogoutAllRevokesEverySession(t *testing.T) {
	f := newServiceFixture(t)
	user := f.seedUser(t, domain.RolePetParent)

	for i := 0; i < 3; i++ {
		f.jwt.GenerateRefreshTokenFn = func(ctx context.Context, userID uuid.UUID) (string, error) {
			return uuid.NewString(), nil
		}
		_, err := f.service.Login(context.Background(), user.Email, domain.RolePetParent, "supersecret")
		require.NoError(t, err)
	}
	require.Len(t, f.tokens.Tokens, 3)

	require.NoError(t, f.service.LogoutAll(context.Background(), user.ID))
	assert.Empty(t, f.tokens.Tokens)
}

func TestGetUserMapsNotFound(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.service.GetUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
