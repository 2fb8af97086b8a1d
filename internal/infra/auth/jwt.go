package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// JWTIssuer signs HS256 tokens carrying the user ID.
type JWTIssuer struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewJWTIssuer(secret string, expiry time.Duration) (*JWTIssuer, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	if expiry <= 0 {
		return nil, fmt.Errorf("jwt expiry must be positive, got %s", expiry)
	}
	return &JWTIssuer{secret: []byte(secret), expiry: expiry, now: time.Now}, nil
}

func (j *JWTIssuer) Issue(userID uuid.UUID) (string, error) {
	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.expiry)),
		},
	})
	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (j *JWTIssuer) Parse(raw string) (uuid.UUID, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(*jwt.Token) (interface{}, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", domain.ErrInvalidToken, err)
	}

	id, err := uuid.Parse(c.UserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad user_id claim", domain.ErrInvalidToken)
	}
	return id, nil
}
