package minting

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aetheria-gallery/aetheria/internal/domain"
	"github.com/aetheria-gallery/aetheria/internal/logger"
	ethprovider "github.com/aetheria-gallery/aetheria/internal/providers/ethereum"
	"github.com/aetheria-gallery/aetheria/internal/store"
)

const (
	// DefaultVoteThreshold is the community vote count required before minting
	DefaultVoteThreshold int64 = 10

	// DefaultReceiptTimeout bounds how long a mint waits for the transaction
	// to be mined
	DefaultReceiptTimeout = 2 * time.Minute
)

// AlreadyMintedError reports a mint attempt against an artwork that has a
// token on-chain. It carries the existing mint details for the response body.
type AlreadyMintedError struct {
	TokenID int64
	TxHash  string
}

func (e *AlreadyMintedError) Error() string {
	return fmt.Sprintf("artwork already minted as token %d in tx %s", e.TokenID, e.TxHash)
}

func (e *AlreadyMintedError) Unwrap() error {
	return domain.ErrAlreadyMinted
}

// MintResult describes a completed mint
type MintResult struct {
	ArtworkID int64
	TokenID   int64
	TxHash    string
}

// Eligibility describes whether an artwork can currently be minted
type Eligibility struct {
	ArtworkID     int64
	VoteCount     int64
	VoteThreshold int64
	Minted        bool
	Eligible      bool
}

// Service orchestrates minting artworks as ERC-721 tokens
type Service struct {
	store          store.Store
	contract       ethprovider.ContractClient
	voteThreshold  int64
	receiptTimeout time.Duration
}

// NewService creates a minting service. A non-positive threshold or timeout
// falls back to the defaults.
func NewService(s store.Store, contract ethprovider.ContractClient, voteThreshold int64, receiptTimeout time.Duration) *Service {
	if voteThreshold <= 0 {
		voteThreshold = DefaultVoteThreshold
	}
	if receiptTimeout <= 0 {
		receiptTimeout = DefaultReceiptTimeout
	}
	return &Service{
		store:          s,
		contract:       contract,
		voteThreshold:  voteThreshold,
		receiptTimeout: receiptTimeout,
	}
}

// Mint sends the mint transaction for an eligible artwork, waits for the
// receipt and records the token on the artwork row
func (s *Service) Mint(ctx context.Context, artworkID int64) (*MintResult, error) {
	artwork, err := s.store.GetArtworkByID(ctx, artworkID)
	if err != nil {
		return nil, fmt.Errorf("failed to get artwork: %w", err)
	}
	if artwork == nil {
		return nil, domain.ErrArtworkNotFound
	}

	if artwork.Minted {
		existing := &AlreadyMintedError{}
		if artwork.TokenID != nil {
			existing.TokenID = *artwork.TokenID
		}
		if artwork.TxHash != nil {
			existing.TxHash = *artwork.TxHash
		}
		return nil, existing
	}

	if artwork.MetadataURI == nil || *artwork.MetadataURI == "" {
		return nil, domain.ErrMetadataMissing
	}

	if !domain.MintEligible(artwork.VoteCount, artwork.Minted, s.voteThreshold) {
		return nil, domain.ErrNotEligible
	}

	txHash, err := s.contract.MintArtwork(ctx, artwork.CreatorWallet, *artwork.MetadataURI)
	if err != nil {
		return nil, fmt.Errorf("failed to send mint transaction: %w", err)
	}

	receipt, err := s.contract.WaitForReceipt(ctx, txHash, s.receiptTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to wait for mint receipt: %w", err)
	}

	tokenID, err := s.contract.ParseMintedTokenID(receipt)
	if err != nil {
		return nil, fmt.Errorf("failed to extract token ID: %w", err)
	}

	if err := s.store.MarkMinted(ctx, artworkID, tokenID, txHash); err != nil {
		// The token exists on-chain at this point. Surface the error so the
		// operator can reconcile the row manually.
		logger.ErrorCtx(ctx, fmt.Errorf("minted on-chain but failed to record: %w", err),
			zap.Int64("artworkID", artworkID),
			zap.Int64("tokenID", tokenID),
			zap.String("txHash", txHash))
		return nil, fmt.Errorf("failed to record mint: %w", err)
	}

	logger.InfoCtx(ctx, "artwork minted",
		zap.Int64("artworkID", artworkID),
		zap.Int64("tokenID", tokenID),
		zap.String("txHash", txHash))

	return &MintResult{
		ArtworkID: artworkID,
		TokenID:   tokenID,
		TxHash:    txHash,
	}, nil
}

// CheckEligibility reports the current mint eligibility of an artwork
func (s *Service) CheckEligibility(ctx context.Context, artworkID int64) (*Eligibility, error) {
	artwork, err := s.store.GetArtworkByID(ctx, artworkID)
	if err != nil {
		return nil, fmt.Errorf("failed to get artwork: %w", err)
	}
	if artwork == nil {
		return nil, domain.ErrArtworkNotFound
	}

	return &Eligibility{
		ArtworkID:     artworkID,
		VoteCount:     artwork.VoteCount,
		VoteThreshold: s.voteThreshold,
		Minted:        artwork.Minted,
		Eligible:      domain.MintEligible(artwork.VoteCount, artwork.Minted, s.voteThreshold),
	}, nil
}

// Remove deletes an artwork and its dependent rows. Minted artworks stay.
func (s *Service) Remove(ctx context.Context, artworkID int64) error {
	artwork, err := s.store.GetArtworkByID(ctx, artworkID)
	if err != nil {
		return fmt.Errorf("failed to get artwork: %w", err)
	}
	if artwork == nil {
		return domain.ErrArtworkNotFound
	}
	if artwork.Minted {
		return domain.ErrAlreadyMinted
	}

	if err := s.store.DeleteArtwork(ctx, artworkID); err != nil {
		return fmt.Errorf("failed to delete artwork: %w", err)
	}

	logger.InfoCtx(ctx, "artwork removed", zap.Int64("artworkID", artworkID))
	return nil
}
