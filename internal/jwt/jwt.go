// Package jwt issues and validates seat tokens
// A seat token lets a player reconnect to the seat they joined with
package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Issuer issues the JWT
const Issuer = "cheat-server"

// Audience is the intended JWT audience
const Audience = "cheat-client"

// SeatClaims are the claims carried in a seat token
// The subject is the player ID
type SeatClaims struct {
	Code string `json:"code"`
	jwtgo.RegisteredClaims
}

// Signer signs and validates seat tokens with a shared secret
type Signer struct {
	secret []byte
	ttl    time.Duration
}

// NewSigner returns a signer
// A zero ttl issues tokens that never expire
func NewSigner(secret string, ttl time.Duration) (*Signer, error) {
	if secret == "" {
		return nil, errors.New("secret cannot be empty")
	}

	return &Signer{
		secret: []byte(secret),
		ttl:    ttl,
	}, nil
}

// Sign will sign a seat token for the player in the session
func (s *Signer) Sign(playerID, code string) (string, error) {
	now := time.Now()
	claims := SeatClaims{
		Code: code,
		RegisteredClaims: jwtgo.RegisteredClaims{
			Audience: jwtgo.ClaimStrings{Audience},
			ID:       uuid.New().String(),
			IssuedAt: jwtgo.NewNumericDate(now),
			Issuer:   Issuer,
			Subject:  playerID,
		},
	}

	if s.ttl > 0 {
		claims.ExpiresAt = jwtgo.NewNumericDate(now.Add(s.ttl))
	}

	return jwtgo.NewWithClaims(jwtgo.SigningMethodHS256, claims).SignedString(s.secret)
}

// Validate will validate a signed seat token and return the player ID and session code
func (s *Signer) Validate(signedString string) (playerID, code string, err error) {
	token, err := jwtgo.ParseWithClaims(signedString, &SeatClaims{}, func(token *jwtgo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtgo.SigningMethodHMAC); !ok {
			return nil, errors.New("expected HS256 signing method")
		}

		return s.secret, nil
	})

	if err != nil {
		return "", "", err
	}

	if token.Valid {
		if claims, ok := token.Claims.(*SeatClaims); ok {
			if !containsAudience(claims.Audience, Audience) {
				return "", "", errors.New("invalid audience")
			}

			if claims.Issuer != Issuer {
				return "", "", errors.New("invalid issuer")
			}

			if claims.Subject == "" || claims.Code == "" {
				return "", "", errors.New("missing seat")
			}

			return claims.Subject, claims.Code, nil
		}

		return "", "", fmt.Errorf("expected SeatClaims, got %T", token.Claims)
	}

	logrus.Warn("token claims were not valid. did not expect to reach this code")
	return "", "", errors.New("claims were not valid")
}

func containsAudience(audiences jwtgo.ClaimStrings, target string) bool {
	for _, aud := range audiences {
		if aud == target {
			return true
		}
	}
	return false
}
