package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/aetheria-gallery/aetheria/internal/adapter"
	"github.com/aetheria-gallery/aetheria/internal/domain"
)

// NonceStore issues and consumes single-use authentication nonces
//
//go:generate mockgen -source=nonce.go -destination=../mocks/nonce.go -package=mocks -mock_names=NonceStore=MockNonceStore
type NonceStore interface {
	// Issue creates a fresh nonce for a wallet, replacing any outstanding one
	Issue(ctx context.Context, wallet domain.Wallet) (string, error)
	// Consume atomically retrieves and deletes the outstanding nonce for a
	// wallet. Returns domain.ErrNonceNotFound when none exists or it expired.
	Consume(ctx context.Context, wallet domain.Wallet) (string, error)
}

type redisNonceStore struct {
	redis adapter.RedisClient
	ttl   time.Duration
}

// NewRedisNonceStore creates a nonce store backed by Redis with the given TTL.
// TTL expiry is what bounds the signing window; there is no sweeper.
func NewRedisNonceStore(client adapter.RedisClient, ttl time.Duration) NonceStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &redisNonceStore{redis: client, ttl: ttl}
}

func nonceKey(wallet domain.Wallet) string {
	return fmt.Sprintf("auth:nonce:%s", wallet)
}

func (s *redisNonceStore) Issue(ctx context.Context, wallet domain.Wallet) (string, error) {
	nonce := uuid.NewString()
	if err := s.redis.SetEx(ctx, nonceKey(wallet), nonce, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store nonce: %w", err)
	}
	return nonce, nil
}

func (s *redisNonceStore) Consume(ctx context.Context, wallet domain.Wallet) (string, error) {
	// GETDEL makes the nonce single use even under concurrent verify attempts
	stored, err := s.redis.GetDel(ctx, nonceKey(wallet)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrNonceNotFound
		}
		return "", fmt.Errorf("failed to consume nonce: %w", err)
	}
	return stored, nil
}
