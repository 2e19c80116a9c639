package auth

import (
	"fmt"
	"time"

	"bazaar/internal/domain/rolegate"

	"github.com/golang-jwt/jwt/v5"
)

const (
	accessTTL  = time.Hour * 24 * 3
	refreshTTL = time.Hour * 24 * 9
)

type claims struct {
	Role rolegate.Role `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type JWTAuthenticator struct {
	secret        string
	refreshSecret string
	aud           string
	iss           string
	now           func() time.Time
}

func NewJWTAuthenticator(secret, refreshSecret, aud, iss string) *JWTAuthenticator {
	return &JWTAuthenticator{secret: secret, refreshSecret: refreshSecret, aud: aud, iss: iss, now: time.Now}
}

// GenerateTokens generates both access and refresh tokens. Only the access
// token carries the role.
func (a *JWTAuthenticator) GenerateTokens(userID int64, role rolegate.Role) (string, string, error) {
	now := a.now()
	sub := fmt.Sprint(userID)

	access := claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			Issuer:    a.iss,
			Audience:  jwt.ClaimStrings{a.aud},
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	refresh := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			Issuer:    a.iss,
			ExpiresAt: jwt.NewNumericDate(now.Add(refreshTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, access).SignedString([]byte(a.secret))
	if err != nil {
		return "", "", err
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refresh).SignedString([]byte(a.refreshSecret))
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (a *JWTAuthenticator) ParseAccessToken(token string) (Subject, error) {
	sub, err := a.parse(token, a.secret, jwt.WithAudience(a.aud))
	if err != nil {
		return Subject{}, err
	}
	if !sub.Role.Valid() {
		return Subject{}, fmt.Errorf("%w: role claim %q", ErrInvalidToken, sub.Role)
	}
	return sub, nil
}

func (a *JWTAuthenticator) ParseRefreshToken(token string) (Subject, error) {
	return a.parse(token, a.refreshSecret)
}

func (a *JWTAuthenticator) parse(token, secret string, opts ...jwt.ParserOption) (Subject, error) {
	opts = append(opts,
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(a.iss),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(a.now),
	)

	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return Subject{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	var id int64
	if _, err := fmt.Sscan(c.Subject, &id); err != nil || id <= 0 {
		return Subject{}, fmt.Errorf("%w: subject %q", ErrInvalidToken, c.Subject)
	}
	return Subject{UserID: id, Role: c.Role}, nil
}
