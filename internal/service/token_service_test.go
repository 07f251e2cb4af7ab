package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-wizard-api/internal/models"
	appErrors "github.com/noah-isme/timetable-wizard-api/pkg/errors"
)

func TestTokenServiceIssueAndValidate(t *testing.T) {
	svc := NewTokenService(TokenConfig{AccessTokenSecret: "secret", Issuer: "okul", AccessTokenExpiry: time.Hour})

	token, err := svc.Issue("user-1", models.RoleAdmin, time.Now())
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "okul", claims.Issuer)
}

func TestTokenServiceRejectsBadTokens(t *testing.T) {
	svc := NewTokenService(TokenConfig{AccessTokenSecret: "secret", Issuer: "okul"})

	other := NewTokenService(TokenConfig{AccessTokenSecret: "other", Issuer: "okul"})
	foreign, err := other.Issue("user-1", models.RoleAdmin, time.Now())
	require.NoError(t, err)

	expired, err := svc.Issue("user-1", models.RoleAdmin, time.Now().Add(-48*time.Hour))
	require.NoError(t, err)

	wrongIssuer, err := NewTokenService(TokenConfig{AccessTokenSecret: "secret", Issuer: "baska"}).Issue("user-1", models.RoleAdmin, time.Now())
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, models.JWTClaims{UserID: "user-1"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"foreign secret": foreign,
		"expired":        expired,
		"wrong issuer":   wrongIssuer,
		"alg none":       unsigned,
		"garbage":        "not-a-token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ValidateToken(token)
			require.Error(t, err)
			assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))
		})
	}
}
