package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/vetician/vetician-api/internal/store"
)

// OTPSender delivers a one-time password to its target. The production
// binary plugs in an SMS or email gateway; the default implementation
// only logs.
type OTPSender interface {
	Send(ctx context.Context, target, code string) error
}

// LogOTPSender writes the delivery to the structured log instead of a
// gateway. Used in development and as the fallback wiring.
type LogOTPSender struct {
	Logger *slog.Logger
}

var _ OTPSender = (*LogOTPSender)(nil)

// Send implements OTPSender.
func (s *LogOTPSender) Send(_ context.Context, target, code string) error {
	log := s.Logger
	if log == nil {
		log = slog.Default()
	}
	// The code itself stays out of the log line.
	log.Info("otp delivery (log sender)",
		"target", target,
		"code_length", len(code))
	return nil
}

// OTPDeliveryTask sends one generated code to one target.
type OTPDeliveryTask struct {
	id     uuid.UUID
	target string
	code   string
	sender OTPSender
}

var _ Task = (*OTPDeliveryTask)(nil)

// NewOTPDeliveryTask creates a delivery task for the given challenge.
func NewOTPDeliveryTask(target, code string, sender OTPSender) *OTPDeliveryTask {
	return &OTPDeliveryTask{
		id:     uuid.New(),
		target: target,
		code:   code,
		sender: sender,
	}
}

func (t *OTPDeliveryTask) ID() uuid.UUID { return t.id }

func (t *OTPDeliveryTask) Type() string { return TaskTypeOTPDelivery }

// Execute implements Task.
func (t *OTPDeliveryTask) Execute(ctx context.Context) error {
	if err := t.sender.Send(ctx, t.target, t.code); err != nil {
		return fmt.Errorf("delivering otp to %s: %w", t.target, err)
	}
	return nil
}

// OTPSweepTask deletes expired challenges from the store.
type OTPSweepTask struct {
	id     uuid.UUID
	otps   store.OTPStore
	logger *slog.Logger
}

var _ Task = (*OTPSweepTask)(nil)

// NewOTPSweepTask creates a sweep task.
func NewOTPSweepTask(otps store.OTPStore, logger *slog.Logger) *OTPSweepTask {
	if logger == nil {
		logger = slog.Default()
	}
	return &OTPSweepTask{
		id:     uuid.New(),
		otps:   otps,
		logger: logger,
	}
}

func (t *OTPSweepTask) ID() uuid.UUID { return t.id }

func (t *OTPSweepTask) Type() string { return TaskTypeOTPSweep }

// Execute implements Task.
func (t *OTPSweepTask) Execute(ctx context.Context) error {
	dropped, err := t.otps.DeleteExpired(ctx)
	if err != nil {
		return fmt.Errorf("sweeping expired otp challenges: %w", err)
	}
	if dropped > 0 {
		t.logger.Debug("swept expired otp challenges", "count", dropped)
	}
	return nil
}
