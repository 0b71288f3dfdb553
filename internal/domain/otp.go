package domain

import (
	"time"

	"github.com/google/uuid"
)

// OTPChallenge is a pending one-time-password verification. Only a hash of
// the code is stored; the plaintext exists solely in the delivery message.
type OTPChallenge struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id,omitempty"`
	Target     string    `json:"target"`
	OTPHash    string    `json:"-"`
	ExpiresAt  time.Time `json:"expires_at"`
	ConsumedAt time.Time `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewOTPChallenge creates a challenge for the given delivery target with
// the supplied code hash and time-to-live.
func NewOTPChallenge(userID uuid.UUID, target, otpHash string, ttl time.Duration) *OTPChallenge {
	now := time.Now().UTC()
	return &OTPChallenge{
		ID:        uuid.New(),
		UserID:    userID,
		Target:    target,
		OTPHash:   otpHash,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}

// Expired reports whether the challenge is past its TTL at the given time.
func (c *OTPChallenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// Consumed reports whether the challenge has already been used.
func (c *OTPChallenge) Consumed() bool {
	return !c.ConsumedAt.IsZero()
}
