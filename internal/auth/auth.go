package auth

import (
	"errors"

	"bazaar/internal/domain/rolegate"
)

var ErrInvalidToken = errors.New("invalid token")

// Subject is what a verified token says about its bearer. The role is a
// claim only: the API re-checks the user's standing on every request.
type Subject struct {
	UserID int64
	Role   rolegate.Role
}

type Authenticator interface {
	GenerateTokens(userID int64, role rolegate.Role) (string, string, error)
	ParseAccessToken(token string) (Subject, error)
	ParseRefreshToken(token string) (Subject, error)
}
