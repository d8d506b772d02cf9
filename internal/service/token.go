package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pitchdeck/internal/models"
)

var ErrInvalidToken = errors.New("invalid session token")

type sessionClaims struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Picture  string `json:"picture,omitempty"`
	AuthorID string `json:"id,omitempty"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies the session token kept in the session cookie.
type TokenCodec struct {
	secret []byte
	maxAge time.Duration
	now    func() time.Time
}

func NewTokenCodec(secret string, maxAge time.Duration) *TokenCodec {
	return &TokenCodec{
		secret: []byte(secret),
		maxAge: maxAge,
		now:    time.Now,
	}
}

func (c *TokenCodec) MaxAge() time.Duration {
	return c.maxAge
}

// Encode signs the token with a fresh expiry and returns the token as stored.
func (c *TokenCodec) Encode(token models.Token) (string, models.Token, error) {
	now := c.now().Truncate(time.Second)
	token.IssuedAt = now
	token.ExpiresAt = now.Add(c.maxAge)

	claims := sessionClaims{
		Name:     token.Name,
		Email:    token.Email,
		Picture:  token.Picture,
		AuthorID: token.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   token.Subject,
			IssuedAt:  jwt.NewNumericDate(token.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(token.ExpiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", models.Token{}, fmt.Errorf("sign session token: %w", err)
	}

	return signed, token, nil
}

func (c *TokenCodec) Decode(raw string) (models.Token, error) {
	var claims sessionClaims

	_, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	token := models.Token{
		Subject: claims.Subject,
		Name:    claims.Name,
		Email:   claims.Email,
		Picture: claims.Picture,
		ID:      claims.AuthorID,
	}
	if claims.IssuedAt != nil {
		token.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		token.ExpiresAt = claims.ExpiresAt.Time
	}

	return token, nil
}
