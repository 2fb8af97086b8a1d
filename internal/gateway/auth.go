package gateway

import "github.com/google/uuid"

type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns domain.ErrInvalidCredentials on mismatch.
	Compare(hash, password string) error
}

type TokenIssuer interface {
	Issue(userID uuid.UUID) (string, error)
	// Parse validates the token and returns its subject.
	// Any failure returns domain.ErrInvalidToken.
	Parse(token string) (uuid.UUID, error)
}
