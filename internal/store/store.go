package store

import (
	"context"

	"github.com/aetheria-gallery/aetheria/internal/domain"
	"github.com/aetheria-gallery/aetheria/internal/store/schema"
)

// CreateArtworkInput carries the fields for a new artwork row
type CreateArtworkInput struct {
	Title         string
	Description   string
	ImageURL      string
	CreatorWallet string
	ContentHash   string
	Prompt        *string
	AIModel       *string
	PromptHash    *string
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// CreateArtwork inserts a new artwork row, plus its prompt fingerprint when present
	CreateArtwork(ctx context.Context, input CreateArtworkInput) (*schema.Artwork, error)
	// GetArtworkByID retrieves an artwork by its primary key
	GetArtworkByID(ctx context.Context, id int64) (*schema.Artwork, error)
	// GetArtworkByContentHash retrieves an artwork by its content hash (duplicate gate)
	GetArtworkByContentHash(ctx context.Context, hash string) (*schema.Artwork, error)
	// ListFeatured retrieves the top-N artworks ordered by vote count descending
	ListFeatured(ctx context.Context, limit int) ([]schema.Artwork, error)
	// DeleteArtwork hard deletes an artwork and its dependent rows (admin path)
	DeleteArtwork(ctx context.Context, id int64) error

	// SetMetadataURI stores the pinned metadata URI for an artwork
	SetMetadataURI(ctx context.Context, id int64, uri string) error
	// MarkMinted records a successful mint. It guards on minted = false so a
	// concurrent double mint loses the race; returns domain.ErrAlreadyMinted then.
	MarkMinted(ctx context.Context, id int64, tokenID int64, txHash string) error

	// ToggleVote adds a vote for (artworkID, wallet) if absent, removes it if
	// present, and atomically adjusts the artwork's vote counter in the same
	// transaction. Returns the action taken and the new vote count.
	ToggleVote(ctx context.Context, artworkID int64, wallet string) (domain.VoteAction, int64, error)
	// HasVoted reports whether a live vote row exists for (artworkID, wallet)
	HasVoted(ctx context.Context, artworkID int64, wallet string) (bool, error)
	// GetVoteCount retrieves the denormalized vote count for an artwork
	GetVoteCount(ctx context.Context, artworkID int64) (int64, error)

	// UpsertUser creates or returns the user row for a wallet
	UpsertUser(ctx context.Context, wallet string) (*schema.User, error)

	// AssociateTags case-folds, creates missing tags and links them to an artwork
	AssociateTags(ctx context.Context, artworkID int64, names []string) error
	// GetArtworkTags retrieves the tags linked to an artwork
	GetArtworkTags(ctx context.Context, artworkID int64) ([]schema.Tag, error)

	// FindPromptHash retrieves the first fingerprint row matching a prompt hash
	FindPromptHash(ctx context.Context, hash string) (*schema.PromptHash, error)
}
