package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack-be/internal/models"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)
	id := uuid.New()

	token, err := svc.GenerateToken(id, "u@example.com", models.RoleAdmin)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id.String(), claims.UserID)
	assert.Equal(t, "u@example.com", claims.Email)

	caller, err := claims.Caller()
	require.NoError(t, err)
	assert.Equal(t, id, caller.UserID)
	assert.True(t, caller.IsAdmin())
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTService("one", time.Hour).GenerateToken(uuid.New(), "", models.RoleUser)
	require.NoError(t, err)

	_, err = NewJWTService("two", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpired(t *testing.T) {
	svc := NewJWTService("secret", time.Minute)
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, err := svc.GenerateToken(uuid.New(), "", models.RoleUser)
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateRejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{
		UserID: uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewJWTService("secret", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMissingSecret(t *testing.T) {
	svc := NewJWTService("", 0)
	_, err := svc.GenerateToken(uuid.New(), "", models.RoleUser)
	assert.ErrorIs(t, err, ErrMissingSecret)
	_, err = svc.ValidateToken("x")
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestCallerNormalizesRole(t *testing.T) {
	c := &Claims{UserID: uuid.NewString(), Role: "superuser"}
	caller, err := c.Caller()
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, caller.Role)

	_, err = (&Claims{UserID: "nope"}).Caller()
	assert.ErrorIs(t, err, ErrInvalidToken)
}
