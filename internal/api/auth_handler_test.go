package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vetician/vetician-api/internal/domain"
	"github.com/vetician/vetician-api/internal/events"
	"github.com/vetician/vetician-api/internal/mocks"
	"github.com/vetician/vetician-api/internal/service/account"
	"github.com/vetician/vetician-api/internal/service/auth"
	"github.com/vetician/vetician-api/internal/service/otp"
	"github.com/vetician/vetician-api/internal/task"
)

// testEnvelope mirrors the response wrapper for assertions.
type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	TraceID string          `json:"trace_id"`
}

// recordingSender keeps the last delivered OTP code.
type recordingSender struct {
	code string
}

func (s *recordingSender) Send(ctx context.Context, target, code string) error {
	s.code = code
	return nil
}

// syncSubmitter runs tasks inline instead of queueing them.
type syncSubmitter struct{}

func (syncSubmitter) Submit(ctx context.Context, t task.Task) error {
	return t.Execute(ctx)
}

type authHandlerFixture struct {
	users    *mocks.MockUserStore
	tokens   *mocks.MockRefreshTokenStore
	verifier *mocks.MockPasswordVerifier
	sender   *recordingSender
	handler  *AuthHandler
}

func newAuthHandlerFixture(t *testing.T) *authHandlerFixture {
	t.Helper()
	f := &authHandlerFixture{
		users:    mocks.NewMockUserStore(),
		tokens:   mocks.NewMockRefreshTokenStore(),
		verifier: &mocks.MockPasswordVerifier{},
		sender:   &recordingSender{},
	}
	accounts := account.NewService(
		nil,
		f.users,
		f.tokens,
		mocks.NewMockParentStore(),
		mocks.NewMockPetStore(),
		mocks.NewMockVeterinarianStore(),
		mocks.NewMockClinicStore(),
		mocks.NewMockPetResortStore(),
		mocks.NewMockParavetStore(),
		&mocks.MockJWTService{},
		f.verifier,
		nil,
	)
	otps := otp.NewService(
		mocks.NewMockOTPStore(),
		f.users,
		mocks.NewMockParavetStore(),
		f.sender,
		syncSubmitter{},
		events.NewInMemoryEventEmitter(nil),
		5*time.Minute,
		nil,
	)
	f.handler = NewAuthHandler(accounts, otps)
	return f
}

func (f *authHandlerFixture) seedUser(t *testing.T) *domain.User {
	t.Helper()
	user, err := domain.NewUser("Asha Kumar", "asha@example.com", "9876543210", "supersecret", domain.RolePetParent)
	require.NoError(t, err)
	user.HashedPassword = "hashed"
	user.Password = ""
	f.users.Users[user.ID] = user
	return user
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) (*httptest.ResponseRecorder, testEnvelope) {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)

	var env testEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestLoginReturnsTokenEnvelope(t *testing.T) {
	f := newAuthHandlerFixture(t)
	user := f.seedUser(t)

	rec, env := postJSON(t, f.handler.Login, "/api/auth/login", LoginRequest{
		Email:    user.Email,
		Password: "supersecret",
		Role:     string(domain.RolePetParent),
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	var data AuthResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, user.ID, data.UserID)
	assert.Equal(t, user.Email, data.Email)
	assert.NotEmpty(t, data.AccessToken)
	assert.NotEmpty(t, data.RefreshToken)
}

func TestLoginRejectsMalformedBody(t *testing.T) {
	f := newAuthHandlerFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	f.handler.Login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var env testEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, "Invalid request format", env.Message)
}

func TestLoginRejectsMissingFields(t *testing.T) {
	f := newAuthHandlerFixture(t)

	rec, env := postJSON(t, f.handler.Login, "/api/auth/login", LoginRequest{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Invalid Email: required field", env.Message)
}

func TestLoginWrongPasswordHidesDetail(t *testing.T) {
	f := newAuthHandlerFixture(t)
	user := f.seedUser(t)
	f.verifier.CompareFn = func(ctx context.Context, hashed, plain string) error {
		return auth.ErrInvalidCredentials
	}

	rec, env := postJSON(t, f.handler.Login, "/api/auth/login", LoginRequest{
		Email:    user.Email,
		Password: "wrong",
		Role:     string(domain.RolePetParent),
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Invalid email or password", env.Message)
}

func TestRefreshRejectsUnknownToken(t *testing.T) {
	f := newAuthHandlerFixture(t)

	rec, env := postJSON(t, f.handler.Refresh, "/api/auth/refresh", RefreshTokenRequest{
		RefreshToken: "never-issued",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Invalid refresh token", env.Message)
}

func TestSendOTPReturnsVerificationHandle(t *testing.T) {
	f := newAuthHandlerFixture(t)

	rec, env := postJSON(t, f.handler.SendOTP, "/api/auth/send-otp", SendOTPRequest{
		Phone: "9876543210",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	var data SendOTPResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.VerificationID)
	assert.True(t, data.ExpiresAt.After(time.Now()))
	assert.Len(t, f.sender.code, 6)
}

func TestVerifyOTPLogsInLinkedAccount(t *testing.T) {
	f := newAuthHandlerFixture(t)
	user := f.seedUser(t)

	_, sendEnv := postJSON(t, f.handler.SendOTP, "/api/auth/send-otp", SendOTPRequest{
		Phone: user.Phone,
	})
	var sent SendOTPResponse
	require.NoError(t, json.Unmarshal(sendEnv.Data, &sent))

	rec, env := postJSON(t, f.handler.VerifyOTP, "/api/auth/verify-otp", VerifyOTPRequest{
		VerificationID: sent.VerificationID,
		Code:           f.sender.code,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	var data AuthResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, user.ID, data.UserID)
	assert.NotEmpty(t, data.AccessToken)
}

func TestVerifyOTPWithoutAccountConfirmsPhone(t *testing.T) {
	f := newAuthHandlerFixture(t)

	_, sendEnv := postJSON(t, f.handler.SendOTP, "/api/auth/send-otp", SendOTPRequest{
		Phone: "9123456780",
	})
	var sent SendOTPResponse
	require.NoError(t, json.Unmarshal(sendEnv.Data, &sent))

	rec, env := postJSON(t, f.handler.VerifyOTP, "/api/auth/verify-otp", VerifyOTPRequest{
		VerificationID: sent.VerificationID,
		Code:           f.sender.code,
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Empty(t, env.Data)
	assert.Equal(t, "Phone number verified", env.Message)
}

func TestVerifyOTPUnknownChallenge(t *testing.T) {
	f := newAuthHandlerFixture(t)

	rec, env := postJSON(t, f.handler.VerifyOTP, "/api/auth/verify-otp", VerifyOTPRequest{
		VerificationID: uuid.New(),
		Code:           "123456",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
}
