// Package otp implements one-time-password generation, delivery and
// verification for phone-based login and onboarding confirmation.
package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vetician/vetician-api/internal/domain"
	"github.com/vetician/vetician-api/internal/events"
	"github.com/vetician/vetician-api/internal/platform/logger"
	"github.com/vetician/vetician-api/internal/store"
	"github.com/vetician/vetician-api/internal/task"
)

// codeLength is the number of digits in a generated code.
const codeLength = 6

// Verification errors.
var (
	ErrChallengeNotFound = fmt.Errorf("%w: verification not found", domain.ErrNotFound)
	ErrCodeExpired       = fmt.Errorf("%w: code expired", domain.ErrAuthentication)
	ErrCodeAlreadyUsed   = fmt.Errorf("%w: code already used", domain.ErrAuthentication)
	ErrCodeMismatch      = fmt.Errorf("%w: incorrect code", domain.ErrAuthentication)
)

// TaskSubmitter enqueues background work. Satisfied by *task.Runner.
type TaskSubmitter interface {
	Submit(ctx context.Context, t task.Task) error
}

// SendResult is returned after a challenge is created.
type SendResult struct {
	VerificationID uuid.UUID
	ExpiresAt      time.Time
}

// VerifyResult reports a successful verification and, when the target
// matched an account, the account it belongs to.
type VerifyResult struct {
	Target string
	User   *domain.User
}

// Service issues and verifies one-time passwords.
type Service struct {
	otps     store.OTPStore
	users    store.UserStore
	paravets store.ParavetStore
	sender   task.OTPSender
	tasks    TaskSubmitter
	emitter  events.EventEmitter
	ttl      time.Duration
	logger   *slog.Logger
}

// NewService wires an OTP service. ttl is how long issued codes stay
// redeemable.
func NewService(
	otps store.OTPStore,
	users store.UserStore,
	paravets store.ParavetStore,
	sender task.OTPSender,
	tasks TaskSubmitter,
	emitter events.EventEmitter,
	ttl time.Duration,
	log *slog.Logger,
) *Service {
	if log == nil {
		log = slog.Default()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Service{
		otps:     otps,
		users:    users,
		paravets: paravets,
		sender:   sender,
		tasks:    tasks,
		emitter:  emitter,
		ttl:      ttl,
		logger:   log.With(slog.String("component", "otp_service")),
	}
}

// otpRequestedPayload carries no contact details; the target stays out of
// the event stream.
type otpRequestedPayload struct {
	VerificationID uuid.UUID `json:"verification_id"`
	Linked         bool      `json:"linked"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// generateCode produces a random numeric code with leading zeros kept.
func generateCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < codeLength; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("generating otp: %w", err)
	}
	return fmt.Sprintf("%0*d", codeLength, n), nil
}

// Send creates a challenge for the target and dispatches the code for
// delivery in the background. Returns the verification ID the client must
// present together with the code.
func (s *Service) Send(ctx context.Context, target string) (*SendResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if target == "" {
		return nil, fmt.Errorf("%w: target is required", domain.ErrValidation)
	}

	code, err := generateCode()
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing otp: %w", err)
	}

	// The challenge is linked to an account when the target matches one;
	// verification then doubles as a login.
	var userID uuid.UUID
	if user, err := s.users.GetByPhone(ctx, target); err == nil {
		userID = user.ID
	} else if !errors.Is(err, store.ErrUserNotFound) {
		return nil, err
	}

	challenge := domain.NewOTPChallenge(userID, target, string(hash), s.ttl)
	if err := s.otps.Create(ctx, challenge); err != nil {
		return nil, err
	}

	deliver := task.NewOTPDeliveryTask(target, code, s.sender)
	if err := s.tasks.Submit(ctx, deliver); err != nil {
		// Delivery could not be queued; the challenge is useless, so
		// surface the failure instead of leaving the caller waiting for a
		// code that never arrives.
		log.Error("failed to queue otp delivery",
			slog.String("error", err.Error()),
			slog.String("verification_id", challenge.ID.String()))
		return nil, fmt.Errorf("queueing otp delivery: %w", err)
	}

	s.emit(ctx, events.EventOTPRequested, otpRequestedPayload{
		VerificationID: challenge.ID,
		Linked:         userID != uuid.Nil,
		ExpiresAt:      challenge.ExpiresAt,
	})

	log.Info("otp challenge created",
		slog.String("verification_id", challenge.ID.String()))
	return &SendResult{VerificationID: challenge.ID, ExpiresAt: challenge.ExpiresAt}, nil
}

// emit publishes an event; delivery of the code never depends on
// subscribers, so failures are logged and swallowed.
func (s *Service) emit(ctx context.Context, eventType string, payload interface{}) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.NewApplicationEvent(eventType, payload)
	if err != nil {
		log.Warn("failed to build application event",
			slog.String("error", err.Error()),
			slog.String("event_type", eventType))
		return
	}
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("failed to emit application event",
			slog.String("error", err.Error()),
			slog.String("event_type", eventType))
	}
}

// Verify redeems a challenge. On success the challenge is consumed, the
// matching paravet profile (if any) gets its mobile number flagged as
// OTP-confirmed, and the linked account is returned for token issuance.
func (s *Service) Verify(ctx context.Context, verificationID uuid.UUID, code string) (*VerifyResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	challenge, err := s.otps.Get(ctx, verificationID)
	if err != nil {
		if errors.Is(err, store.ErrOTPNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, err
	}
	if challenge.Consumed() {
		return nil, ErrCodeAlreadyUsed
	}
	if challenge.Expired(time.Now().UTC()) {
		return nil, ErrCodeExpired
	}

	if err := bcrypt.CompareHashAndPassword([]byte(challenge.OTPHash), []byte(code)); err != nil {
		return nil, ErrCodeMismatch
	}

	// First successful verify wins; a concurrent attempt sees not-found.
	if err := s.otps.Consume(ctx, challenge.ID); err != nil {
		if errors.Is(err, store.ErrOTPNotFound) {
			return nil, ErrCodeAlreadyUsed
		}
		return nil, err
	}

	s.confirmParavetMobile(ctx, challenge.Target)

	result := &VerifyResult{Target: challenge.Target}
	if challenge.UserID != uuid.Nil {
		user, err := s.users.GetByID(ctx, challenge.UserID)
		if err == nil {
			result.User = user
		} else if !errors.Is(err, store.ErrUserNotFound) {
			return nil, err
		}
	}

	log.Info("otp verified",
		slog.String("verification_id", challenge.ID.String()))
	return result, nil
}

// confirmParavetMobile flips OTP confirmation on the onboarding profile
// whose mobile number matches the verified target. A missing profile is
// normal; any other failure is logged, never surfaced, because the
// verification itself already succeeded.
func (s *Service) confirmParavetMobile(ctx context.Context, target string) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	profile, err := s.paravets.GetByPhone(ctx, target)
	if err != nil {
		if !errors.Is(err, store.ErrParavetNotFound) {
			log.Warn("failed to look up paravet profile for otp confirmation",
				slog.String("error", err.Error()))
		}
		return
	}
	if profile.PersonalInfo.MobileNumber.OTPVerified {
		return
	}

	profile.PersonalInfo.MobileNumber.OTPVerified = true
	profile.UpdatedAt = time.Now().UTC()
	profile.RecomputeCompletion()
	if err := s.paravets.Update(ctx, profile); err != nil {
		log.Warn("failed to record otp confirmation on paravet profile",
			slog.String("error", err.Error()),
			slog.String("user_id", profile.UserID.String()))
	}
}
