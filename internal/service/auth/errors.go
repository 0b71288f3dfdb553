package auth

import (
	"fmt"

	"github.com/vetician/vetician-api/internal/domain"
)

// Authentication errors. All wrap domain.ErrAuthentication so the API
// layer maps them to 401 without knowing each case.
var (
	ErrInvalidCredentials  = fmt.Errorf("%w: invalid email or password", domain.ErrAuthentication)
	ErrInvalidToken        = fmt.Errorf("%w: invalid token", domain.ErrAuthentication)
	ErrExpiredToken        = fmt.Errorf("%w: token expired", domain.ErrAuthentication)
	ErrTokenNotYetValid    = fmt.Errorf("%w: token not yet valid", domain.ErrAuthentication)
	ErrWrongTokenType      = fmt.Errorf("%w: wrong token type", domain.ErrAuthentication)
	ErrMissingToken        = fmt.Errorf("%w: missing or malformed authorization header", domain.ErrAuthentication)
	ErrInvalidRefreshToken = fmt.Errorf("%w: invalid refresh token", domain.ErrAuthentication)
	ErrExpiredRefreshToken = fmt.Errorf("%w: refresh token expired", domain.ErrAuthentication)
	ErrRefreshTokenRevoked = fmt.Errorf("%w: refresh token already used or revoked", domain.ErrAuthentication)
)
