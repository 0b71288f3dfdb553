// Package account implements registration, login and session lifecycle for
// marketplace accounts.
package account

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vetician/vetician-api/internal/domain"
	"github.com/vetician/vetician-api/internal/platform/logger"
	"github.com/vetician/vetician-api/internal/service/auth"
	"github.com/vetician/vetician-api/internal/store"
)

// TokenPair carries the issued tokens and the authenticated account.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	User         *domain.User
}

// RegisterInput is the data required to open a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     domain.Role
}

// Service coordinates the account stores and the token service.
type Service struct {
	db        *sql.DB
	users     store.UserStore
	tokens    store.RefreshTokenStore
	parents   store.ParentStore
	pets      store.PetStore
	vets      store.VeterinarianStore
	clinics   store.ClinicStore
	resorts   store.PetResortStore
	paravets  store.ParavetStore
	jwt       auth.JWTService
	passwords auth.PasswordVerifier
	logger    *slog.Logger
}

// NewService wires an account service.
func NewService(
	db *sql.DB,
	users store.UserStore,
	tokens store.RefreshTokenStore,
	parents store.ParentStore,
	pets store.PetStore,
	vets store.VeterinarianStore,
	clinics store.ClinicStore,
	resorts store.PetResortStore,
	paravets store.ParavetStore,
	jwtService auth.JWTService,
	passwords auth.PasswordVerifier,
	log *slog.Logger,
) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		db:        db,
		users:     users,
		tokens:    tokens,
		parents:   parents,
		pets:      pets,
		vets:      vets,
		clinics:   clinics,
		resorts:   resorts,
		paravets:  paravets,
		jwt:       jwtService,
		passwords: passwords,
		logger:    log.With(slog.String("component", "account_service")),
	}
}

// hashRefreshToken produces the storage key for a refresh token. The raw
// JWT never touches the database.
func hashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Register creates a user and, in the same transaction, the empty profile
// stub for its role. Pet parents get a parent profile; paravets get an
// onboarding profile that starts in the approved state so registration
// alone never blocks on review.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(in.Name, in.Email, in.Phone, in.Password, in.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.users.WithTx(tx).Create(ctx, user); err != nil {
			return err
		}

		switch user.Role {
		case domain.RolePetParent:
			parent := domain.NewParent(user.ID, user.Name, user.Email, user.Phone)
			if err := s.parents.WithTx(tx).Create(ctx, parent); err != nil {
				return err
			}
		case domain.RoleParavet:
			profile := domain.NewParavetProfile(user.ID, domain.ApprovalApproved)
			if user.Phone != "" {
				profile.PersonalInfo.MobileNumber.Value = user.Phone
			}
			if err := s.paravets.WithTx(tx).Create(ctx, profile); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			return nil, fmt.Errorf("%w: an account with this email already exists for role %s",
				domain.ErrConflict, user.Role)
		}
		log.Error("registration failed",
			slog.String("error", err.Error()),
			slog.String("role", string(user.Role)))
		return nil, err
	}

	log.Info("account registered",
		slog.String("user_id", user.ID.String()),
		slog.String("role", string(user.Role)))
	return user, nil
}

// Login authenticates an (email, role, password) triple and issues a token
// pair. The refresh token is persisted by hash so it can be rotated.
func (s *Service) Login(ctx context.Context, email string, role domain.Role, password string) (*TokenPair, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByEmailAndRole(ctx, email, role)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Hide which part of the triple was wrong.
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, auth.ErrInvalidCredentials
	}

	if err := s.passwords.Compare(ctx, user.HashedPassword, password); err != nil {
		return nil, err
	}

	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		// A login should not fail because the bookkeeping write did.
		log.Warn("failed to record login time",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Info("login succeeded",
		slog.String("user_id", user.ID.String()),
		slog.String("role", string(user.Role)))
	return pair, nil
}

// IssueTokens generates an access/refresh pair for an already
// authenticated account. Used by the OTP login path after a successful
// phone verification.
func (s *Service) IssueTokens(ctx context.Context, user *domain.User) (*TokenPair, error) {
	return s.issueTokens(ctx, user)
}

// issueTokens generates an access/refresh pair and persists the refresh
// token hash with an expiry matching the token's own.
func (s *Service) issueTokens(ctx context.Context, user *domain.User) (*TokenPair, error) {
	accessToken, err := s.jwt.GenerateToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwt.GenerateRefreshToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().UTC().Add(s.jwt.RefreshTokenLifetime())
	if err := s.tokens.Save(ctx, user.ID, hashRefreshToken(refreshToken), expiresAt); err != nil {
		return nil, fmt.Errorf("saving refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// Refresh rotates a refresh token. The presented token is validated, then
// consumed from the store in a single atomic step so each token works
// exactly once; replays get ErrRefreshTokenRevoked.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	claims, err := s.jwt.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	userID, err := s.tokens.Consume(ctx, hashRefreshToken(refreshToken))
	if err != nil {
		if errors.Is(err, store.ErrTokenNotFound) {
			log.Warn("refresh token replay or revoked token presented",
				slog.String("user_id", claims.UserID.String()))
			return nil, auth.ErrRefreshTokenRevoked
		}
		return nil, err
	}
	if userID != claims.UserID {
		// Stored row and signed claims disagree; treat as revoked.
		return nil, auth.ErrRefreshTokenRevoked
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, auth.ErrRefreshTokenRevoked
		}
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes a single refresh token. Unknown tokens are ignored so
// logout is idempotent.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	_, err := s.tokens.Consume(ctx, hashRefreshToken(refreshToken))
	if err != nil && !errors.Is(err, store.ErrTokenNotFound) {
		return err
	}
	return nil
}

// LogoutAll revokes every refresh token the user holds.
func (s *Service) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	return s.tokens.DeleteAllForUser(ctx, userID)
}

// GetUser returns the account for the given ID.
func (s *Service) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: user not found", domain.ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

// DeleteAccount verifies the password, then removes the account's profile
// data and sessions and soft-deletes the user, all in one transaction.
func (s *Service) DeleteAccount(ctx context.Context, userID uuid.UUID, password string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return fmt.Errorf("%w: user not found", domain.ErrNotFound)
		}
		return err
	}
	if err := s.passwords.Compare(ctx, user.HashedPassword, password); err != nil {
		return err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.pets.WithTx(tx).DeleteByUserID(ctx, userID); err != nil {
			return err
		}
		if err := s.parents.WithTx(tx).DeleteByUserID(ctx, userID); err != nil {
			return err
		}
		if err := s.paravets.WithTx(tx).DeleteByUserID(ctx, userID); err != nil {
			return err
		}
		if err := s.vets.WithTx(tx).DeleteByUserID(ctx, userID); err != nil {
			return err
		}
		if err := s.clinics.WithTx(tx).DeleteByUserID(ctx, userID); err != nil {
			return err
		}
		if err := s.resorts.WithTx(tx).DeleteByUserID(ctx, userID); err != nil {
			return err
		}
		if err := s.tokens.WithTx(tx).DeleteAllForUser(ctx, userID); err != nil {
			return err
		}
		return s.users.WithTx(tx).SoftDelete(ctx, userID)
	})
	if err != nil {
		log.Error("account deletion failed",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return err
	}

	log.Info("account deleted", slog.String("user_id", userID.String()))
	return nil
}
