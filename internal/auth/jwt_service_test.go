package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	svc := NewJWTService("secret", 0).WithClock(fixedClock(now))
	assert.Equal(t, DefaultSessionTTL, svc.TTL())

	id := uuid.New()
	token, expiresAt, err := svc.Issue(id)
	require.NoError(t, err)
	assert.Equal(t, now.Add(DefaultSessionTTL), expiresAt)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	got, err := claims.AccountID()
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, time.Hour, claims.RemainingTTL(expiresAt.Add(-time.Hour)))
	assert.Zero(t, claims.RemainingTTL(expiresAt.Add(time.Minute)))
}

func TestJWTService_UniqueTokenIDs(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)
	id := uuid.New()

	first, _, err := svc.Issue(id)
	require.NoError(t, err)
	second, _, err := svc.Issue(id)
	require.NoError(t, err)

	a, err := svc.ValidateToken(first)
	require.NoError(t, err)
	b, err := svc.ValidateToken(second)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestJWTService_Expired(t *testing.T) {
	issued := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	svc := NewJWTService("secret", time.Hour).WithClock(fixedClock(issued))
	token, _, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	svc.WithClock(fixedClock(issued.Add(2 * time.Hour)))
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)

	claims, err := svc.ParseIgnoringExpiry(token)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.Subject)
}

func TestJWTService_Rejects(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)
	other := NewJWTService("other", time.Hour)
	foreign, _, err := other.Issue(uuid.New())
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "not-a-uuid",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: uuid.NewString()},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.token"},
		{"wrong secret", foreign},
		{"bad subject", noSubject},
		{"missing expiry", noExpiry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tt.token)
			assert.ErrorIs(t, err, ErrTokenInvalid)
		})
	}
}
