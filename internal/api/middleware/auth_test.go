package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vetician/vetician-api/internal/mocks"
	"github.com/vetician/vetician-api/internal/service/auth"
)

type errorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var env errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func authHarness(jwt *mocks.MockJWTService) (http.Handler, *uuid.UUID) {
	var seen uuid.UUID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := GetUserID(r); ok {
			seen = id
		}
		w.WriteHeader(http.StatusNoContent)
	})
	return NewAuthMiddleware(jwt).Authenticate(next), &seen
}

func TestAuthenticateRequiresHeader(t *testing.T) {
	handler, _ := authHarness(&mocks.MockJWTService{})

	req := httptest.NewRequest(http.MethodGet, "/api/parents/self", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Authorization header required", decodeError(t, rec).Message)
}

func TestAuthenticateRejectsBadScheme(t *testing.T) {
	handler, _ := authHarness(&mocks.MockJWTService{})

	for _, header := range []string{"Basic abc123", "Bearer", "Bearer a b"} {
		req := httptest.NewRequest(http.MethodGet, "/api/parents/self", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		assert.Equal(t, "Invalid authorization format", decodeError(t, rec).Message, "header %q", header)
	}
}

func TestAuthenticateRejectsExpiredToken(t *testing.T) {
	jwt := &mocks.MockJWTService{
		ValidateTokenFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
			return nil, auth.ErrExpiredToken
		},
	}
	handler, _ := authHarness(jwt)

	req := httptest.NewRequest(http.MethodGet, "/api/parents/self", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token expired", decodeError(t, rec).Message)
}

func TestAuthenticateRejectsInvalidToken(t *testing.T) {
	// The mock's default validation failure stands in for a bad signature.
	handler, _ := authHarness(&mocks.MockJWTService{})

	req := httptest.NewRequest(http.MethodGet, "/api/parents/self", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", decodeError(t, rec).Message)
}

func TestAuthenticatePutsUserIDInContext(t *testing.T) {
	userID := uuid.New()
	jwt := &mocks.MockJWTService{
		ValidateTokenFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
			assert.Equal(t, "good-token", tokenString)
			return &auth.Claims{UserID: userID, TokenType: "access"}, nil
		},
	}
	handler, seen := authHarness(jwt)

	req := httptest.NewRequest(http.MethodGet, "/api/parents/self", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, userID, *seen)
}
