package config

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tokens signs and checks the bearer tokens that tie a client to the game
// session it created.
type Tokens struct {
	secret        []byte
	signingMethod jwt.SigningMethod
	tokenLifetime time.Duration
}

type SessionClaims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

func NewTokens(secret string, lifetime time.Duration) (*Tokens, error) {
	if secret == "" {
		return nil, fmt.Errorf("empty token secret")
	}
	t := &Tokens{
		secret:        []byte(secret),
		signingMethod: jwt.SigningMethodHS256,
		tokenLifetime: lifetime,
	}
	return t, nil
}

func (t *Tokens) Sign(sessionID string, now time.Time) (string, error) {
	claims := &SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  sessionID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if t.tokenLifetime > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(t.tokenLifetime))
	}
	return jwt.NewWithClaims(t.signingMethod, claims).SignedString(t.secret)
}

func (t *Tokens) Parse(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&SessionClaims{},
		func(*jwt.Token) (interface{}, error) {
			return t.secret, nil
		},
		jwt.WithValidMethods([]string{t.signingMethod.Alg()}),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || claims.SessionID == "" {
		return nil, fmt.Errorf("malformed claims")
	}
	return claims, nil
}
