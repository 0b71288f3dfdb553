package otp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vetician/vetician-api/internal/domain"
	"github.com/vetician/vetician-api/internal/events"
	"github.com/vetician/vetician-api/internal/mocks"
	"github.com/vetician/vetician-api/internal/task"
)

// capturingSender records the codes handed to it.
type capturingSender struct {
	target string
	code   string
}

func (s *capturingSender) Send(ctx context.Context, target, code string) error {
	s.target = target
	s.code = code
	return nil
}

// inlineSubmitter executes submitted tasks synchronously so tests can see
// the delivered code right away.
type inlineSubmitter struct {
	err error
}

func (s *inlineSubmitter) Submit(ctx context.Context, t task.Task) error {
	if s.err != nil {
		return s.err
	}
	return t.Execute(ctx)
}

// capturingHandler keeps every event delivered to it.
type capturingHandler struct {
	events []*events.ApplicationEvent
}

func (h *capturingHandler) HandleEvent(_ context.Context, e *events.ApplicationEvent) error {
	h.events = append(h.events, e)
	return nil
}

type otpFixture struct {
	otps      *mocks.MockOTPStore
	users     *mocks.MockUserStore
	paravets  *mocks.MockParavetStore
	sender    *capturingSender
	submitter *inlineSubmitter
	handler   *capturingHandler
	service   *Service
}

func newOTPFixture(t *testing.T, ttl time.Duration) *otpFixture {
	t.Helper()
	f := &otpFixture{
		otps:      mocks.NewMockOTPStore(),
		users:     mocks.NewMockUserStore(),
		paravets:  mocks.NewMockParavetStore(),
		sender:    &capturingSender{},
		submitter: &inlineSubmitter{},
		handler:   &capturingHandler{},
	}
	emitter := events.NewInMemoryEventEmitter(nil)
	emitter.RegisterHandler(f.handler)
	f.service = NewService(f.otps, f.users, f.paravets, f.sender, f.submitter,
		emitter, ttl, nil)
	return f
}

func TestSendCreatesChallengeAndDeliversCode(t *testing.T) {
	f := newOTPFixture(t, 5*time.Minute)

	result, err := f.service.Send(context.Background(), "9876543210")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, result.VerificationID)
	assert.True(t, result.ExpiresAt.After(time.Now()))
	assert.Equal(t, "9876543210", f.sender.target)
	assert.Len(t, f.sender.code, 6)

	challenge := f.otps.Challenges[result.VerificationID]
	require.NotNil(t, challenge)
	assert.NotEqual(t, f.sender.code, challenge.OTPHash, "plaintext code must not be stored")
}

func TestSendEmitsRequestedEvent(t *testing.T) {
	f := newOTPFixture(t, 5*time.Minute)

	result, err := f.service.Send(context.Background(), "9876543210")
	require.NoError(t, err)

	require.Len(t, f.handler.events, 1)
	evt := f.handler.events[0]
	assert.Equal(t, events.EventOTPRequested, evt.Type)

	var payload struct {
		VerificationID uuid.UUID `json:"verification_id"`
		Linked         bool      `json:"linked"`
	}
	require.NoError(t, evt.UnmarshalPayload(&payload))
	assert.Equal(t, result.VerificationID, payload.VerificationID)
	assert.False(t, payload.Linked, "no account matches the target")
	assert.NotContains(t, string(evt.Payload), "9876543210",
		"contact details must stay out of the event stream")
}

func TestSendRequiresTarget(t *testing.T) {
	f := newOTPFixture(t, 5*time.Minute)

	_, err := f.service.Send(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSendLinksChallengeToAccount(t *testing.T) {
	f := newOTPFixture(t, 5*time.Minute)
	user, err := domain.NewUser("Asha", "asha@example.com", "9876543210", "supersecret", domain.RolePetParent)
	require.NoError(t, err)
	f.users.Users[user.ID] = user

	result, err := f.service.Send(context.Background(), "9876543210")
	require.NoError(t, err)

	assert.Equal(t, user.ID, f.otps.Challenges[result.VerificationID].UserID)
}

func TestSendFailsWhenQueueRejects(t *testing.T) {
	f := newOTPFixture(t, 5*time.Minute)
	f.submitter.err = task.ErrQueueFull

	_, err := f.service.Send(context.Background(), "9876543210")
	assert.Error(t, err)
}

func TestVerifyHappyPath(t *testing.T) {
	f := newOTPFixture(t, 5*time.Minute)
	user, err := domain.NewUser("Asha", "asha@example.com", "9876543210", "supersecret", domain.RolePetParent)
	require.NoError(t, err)
	f.users.Users[user.ID] = user

	sent, err := f.service.Send(context.Background(), "9876543210")
	require.NoError(t, err)

	result, err := f.service.Verify(context.Background(), sent.VerificationID, f.sender.code)
	require.NoError(t, err)

	assert.Equal(t, "9876543210", result.Target)
	require.NotNil(t, result.User)
	assert.Equal(t, user.ID, result.User.ID)
}

func TestVerifyWithoutLinkedAccount(t *testing.T) {
	f := newOTPFixture(t, 5*time.Minute)

	sent, err := f.service.Send(context.Background(), "9876543210")
	require.NoError(t, err)

	result, err := f.service.Verify(context.Background(), sent.VerificationID, f.sender.code)
	require.NoError(t, err)
	assert.Nil(t, result.User)
}

func TestVerifyWrongCode(t *testing.T) {
	f := newOTPFixture(t, 5*time.Minute)

	sent, err := f.service.Send(context.Background(), "9876543210")
	require.NoError(t, err)

	_, err = f.service.Verify(context.Background(), sent.VerificationID, "000000")
	if f.sender.code == "000000" {
		t.Skip("generated code collided with the test's wrong guess")
	}
	assert.ErrorIs(t, err, ErrCodeMismatch)
	assert.ErrorIs(t, err, domain.ErrAuthentication)
}

func TestVerifyUnknownChallenge(t *testing.T) {
	f := newOTPFixture(t, 5*time.Minute)

	_, err := f.service.Verify(context.Background(), uuid.New(), "123456")
	assert.ErrorIs(t, err, ErrChallengeNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVerifyExpiredChallenge(t *testing.T) {
	f := newOTPFixture(t, time.Minute)

	sent, err := f.service.Send(context.Background(), "9876543210")
	require.NoError(t, err)
	f.otps.Challenges[sent.VerificationID].ExpiresAt = time.Now().UTC().Add(-time.Second)

	_, err = f.service.Verify(context.Background(), sent.VerificationID, f.sender.code)
	assert.ErrorIs(t, err, ErrCodeExpired)
}

func TestVerifyIsSingleUse(t *testing.T) {
	f := newOTPFixture(t, 5*time.Minute)

	sent, err := f.service.Send(context.Background(), "9876543210")
	require.NoError(t, err)

	_, err = f.service.Verify(context.Background(), sent.VerificationID, f.sender.code)
	require.NoError(t, err)

	_, err = f.service.Verify(context.Background(), sent.VerificationID, f.sender.code)
	assert.ErrorIs(t, err, ErrCodeAlreadyUsed)
}

func TestVerifyConfirmsParavetMobile(t *testing.T) {
	f := newOTPFixture(t, 5*time.Minute)
	profile := domain.NewParavetProfile(uuid.New(), domain.ApprovalPending)
	profile.PersonalInfo.MobileNumber.Value = "9876543210"
	f.paravets.Profiles[profile.UserID] = profile

	sent, err := f.service.Send(context.Background(), "9876543210")
	require.NoError(t, err)

	_, err = f.service.Verify(context.Background(), sent.VerificationID, f.sender.code)
	require.NoError(t, err)

	assert.True(t, f.paravets.Profiles[profile.UserID].PersonalInfo.MobileNumber.OTPVerified)
}

func TestVerifySurvivesParavetUpdateFailure(t *testing.T) {
	f := newOTPFixture(t, 5*time.Minute)
	profile := domain.NewParavetProfile(uuid.New(), domain.ApprovalPending)
	profile.PersonalInfo.MobileNumber.Value = "9876543210"
	f.paravets.Profiles[profile.UserID] = profile
	f.paravets.UpdateFn = func(ctx context.Context, p *domain.ParavetProfile) error {
		return errors.New("connection reset")
	}

	sent, err := f.service.Send(context.Background(), "9876543210")
	require.NoError(t, err)

	// The verification itself still succeeds.
	_, err = f.service.Verify(context.Background(), sent.VerificationID, f.sender.code)
	assert.NoError(t, err)
}
