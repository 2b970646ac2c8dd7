package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aetheria-gallery/aetheria/internal/adapter"
	"github.com/aetheria-gallery/aetheria/internal/domain"
)

const tokenIssuer = "aetheria-auth"

// TokenIssuer mints and validates wallet session tokens
//
//go:generate mockgen -source=token.go -destination=../mocks/token.go -package=mocks -mock_names=TokenIssuer=MockTokenIssuer
type TokenIssuer interface {
	// IssueToken mints a session token whose subject is the lowercased wallet
	IssueToken(wallet domain.Wallet) (string, error)
	// ParseToken validates a session token and returns the wallet it was issued to
	ParseToken(token string) (domain.Wallet, error)
}

type jwtIssuer struct {
	secret []byte
	ttl    time.Duration
	clock  adapter.Clock
}

// NewJWTIssuer creates a TokenIssuer signing HS256 tokens with the given secret
func NewJWTIssuer(secret string, ttl time.Duration, clock adapter.Clock) TokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &jwtIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		clock:  clock,
	}
}

func (i *jwtIssuer) IssueToken(wallet domain.Wallet) (string, error) {
	now := i.clock.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   wallet.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (i *jwtIssuer) ParseToken(tokenString string) (domain.Wallet, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return i.secret, nil
		},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(i.clock.Now),
	)
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", errors.New("token has no subject")
	}

	wallet := domain.NewWallet(claims.Subject)
	if !wallet.Valid() {
		return "", fmt.Errorf("token subject is not a wallet address: %s", claims.Subject)
	}
	return wallet, nil
}
