package voting

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/aetheria-gallery/aetheria/internal/adapter"
	"github.com/aetheria-gallery/aetheria/internal/domain"
	"github.com/aetheria-gallery/aetheria/internal/logger"
	"github.com/aetheria-gallery/aetheria/internal/store"
	"github.com/aetheria-gallery/aetheria/internal/store/schema"
)

const (
	// DefaultFeaturedLimit is used when a featured query gives no size
	DefaultFeaturedLimit = 3
	// MaxFeaturedLimit caps the featured query size
	MaxFeaturedLimit = 100
)

// ToggleResult is the outcome of a vote toggle
type ToggleResult struct {
	Action   domain.VoteAction
	NewCount int64
}

// Service implements community voting over artworks
type Service struct {
	store         store.Store
	eth           adapter.EthClient
	minBalance    *big.Int
	featuredLimit int
}

// NewService creates a voting service. eth may be nil when the balance gate
// is disabled; minBalance nil or zero also disables it.
func NewService(st store.Store, eth adapter.EthClient, minBalance *big.Int, featuredLimit int) *Service {
	if featuredLimit <= 0 {
		featuredLimit = DefaultFeaturedLimit
	}
	return &Service{
		store:         st,
		eth:           eth,
		minBalance:    minBalance,
		featuredLimit: featuredLimit,
	}
}

// Toggle flips the caller's vote on an artwork. A wallet that has not voted
// gains a vote; one that has, loses it. The returned count reflects the toggle.
func (s *Service) Toggle(ctx context.Context, artworkID int64, voter domain.Wallet) (*ToggleResult, error) {
	if !voter.Valid() {
		return nil, fmt.Errorf("%w: invalid wallet address", domain.ErrValidation)
	}

	if err := s.checkBalance(ctx, voter); err != nil {
		return nil, err
	}

	action, count, err := s.store.ToggleVote(ctx, artworkID, voter.String())
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "vote toggled",
		zap.Int64("artworkID", artworkID),
		zap.String("wallet", voter.String()),
		zap.String("action", string(action)),
		zap.Int64("count", count),
	)

	return &ToggleResult{Action: action, NewCount: count}, nil
}

// checkBalance enforces the optional minimum native balance gate. An RPC
// failure lets the vote through: losing a spam filter beats losing votes.
func (s *Service) checkBalance(ctx context.Context, voter domain.Wallet) error {
	if s.minBalance == nil || s.minBalance.Sign() <= 0 || s.eth == nil {
		return nil
	}

	balance, err := s.eth.BalanceAt(ctx, common.HexToAddress(voter.String()), nil)
	if err != nil {
		logger.WarnCtx(ctx, "balance check unavailable, allowing vote",
			zap.String("wallet", voter.String()),
			zap.Error(err),
		)
		return nil
	}

	if balance.Cmp(s.minBalance) < 0 {
		return domain.ErrInsufficientBalance
	}
	return nil
}

// Featured returns the top n artworks by vote count. n at or below zero
// falls back to the configured default; n above the cap is clamped.
func (s *Service) Featured(ctx context.Context, n int) ([]schema.Artwork, error) {
	if n <= 0 {
		n = s.featuredLimit
	}
	if n > MaxFeaturedLimit {
		n = MaxFeaturedLimit
	}
	return s.store.ListFeatured(ctx, n)
}

// Status reports the vote count for an artwork and, when a wallet is given,
// whether that wallet has a live vote on it.
func (s *Service) Status(ctx context.Context, artworkID int64, voter domain.Wallet) (int64, bool, error) {
	count, err := s.store.GetVoteCount(ctx, artworkID)
	if err != nil {
		return 0, false, err
	}

	var hasVoted bool
	if voter != "" {
		hasVoted, err = s.store.HasVoted(ctx, artworkID, voter.String())
		if err != nil {
			return 0, false, err
		}
	}

	return count, hasVoted, nil
}

// GetArtwork fetches a single artwork. Returns nil when it does not exist.
func (s *Service) GetArtwork(ctx context.Context, artworkID int64) (*schema.Artwork, error) {
	return s.store.GetArtworkByID(ctx, artworkID)
}
