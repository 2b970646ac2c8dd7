package auth

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aetheria-gallery/aetheria/internal/domain"
	"github.com/aetheria-gallery/aetheria/internal/logger"
	"github.com/aetheria-gallery/aetheria/internal/store"
	"github.com/aetheria-gallery/aetheria/internal/store/schema"
)

// Service implements the wallet login flow: nonce challenge, signature
// verification, session token issuance.
type Service struct {
	nonces NonceStore
	tokens TokenIssuer
	store  store.Store
}

// NewService creates a new auth service
func NewService(nonces NonceStore, tokens TokenIssuer, st store.Store) *Service {
	return &Service{
		nonces: nonces,
		tokens: tokens,
		store:  st,
	}
}

// Challenge holds a nonce challenge for a wallet
type Challenge struct {
	Nonce   string
	Message string
}

// RequestChallenge issues a fresh nonce for a wallet and returns the exact
// message the wallet must sign. Re-requesting replaces the previous nonce.
func (s *Service) RequestChallenge(ctx context.Context, wallet domain.Wallet) (*Challenge, error) {
	nonce, err := s.nonces.Issue(ctx, wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to issue nonce: %w", err)
	}

	logger.DebugCtx(ctx, "issued auth nonce", zap.String("wallet", wallet.String()))

	return &Challenge{
		Nonce:   nonce,
		Message: NonceMessage(nonce),
	}, nil
}

// Session holds the outcome of a successful login
type Session struct {
	User  *schema.User
	Token string
}

// VerifyLogin consumes the outstanding nonce for a wallet, checks the
// personal-sign signature over the challenge message, ensures a user row
// exists, and mints a session token.
func (s *Service) VerifyLogin(ctx context.Context, wallet domain.Wallet, signature string) (*Session, error) {
	nonce, err := s.nonces.Consume(ctx, wallet)
	if err != nil {
		return nil, err
	}

	if err := VerifySignature(NonceMessage(nonce), signature, wallet); err != nil {
		return nil, err
	}

	user, err := s.store.UpsertUser(ctx, wallet.String())
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	token, err := s.tokens.IssueToken(wallet)
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "wallet authenticated", zap.String("wallet", wallet.String()))
	return &Session{User: user, Token: token}, nil
}
