package auth

import (
	"testing"
	"time"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestJWTIssuer_RoundTrip(t *testing.T) {
	issuer, err := NewJWTIssuer("s3cret", time.Hour)
	require.NoError(t, err)

	userID := uuid.New()
	token, err := issuer.Issue(userID)
	require.NoError(t, err)

	got, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestJWTIssuer_Rejects(t *testing.T) {
	issuer, err := NewJWTIssuer("s3cret", time.Hour)
	require.NoError(t, err)
	token, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	other, err := NewJWTIssuer("another", time.Hour)
	require.NoError(t, err)

	expired, err := NewJWTIssuer("s3cret", time.Minute)
	require.NoError(t, err)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	stale, err := expired.Issue(uuid.New())
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": uuid.NewString(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		issuer *JWTIssuer
		token  string
	}{
		{"garbage", issuer, "not-a-token"},
		{"wrong secret", other, token},
		{"expired", issuer, stale},
		{"unsigned", issuer, none},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.issuer.Parse(tt.token)
			assert.ErrorIs(t, err, domain.ErrInvalidToken)
		})
	}
}

func TestNewJWTIssuer_Validation(t *testing.T) {
	_, err := NewJWTIssuer("", time.Hour)
	assert.Error(t, err)
	_, err = NewJWTIssuer("x", 0)
	assert.Error(t, err)
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.NoError(t, h.Compare(hash, "correct horse"))
	assert.ErrorIs(t, h.Compare(hash, "battery staple"), domain.ErrInvalidCredentials)
	assert.ErrorIs(t, h.Compare("not-a-hash", "x"), domain.ErrInvalidCredentials)
}
