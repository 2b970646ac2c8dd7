package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aetheria-gallery/aetheria/internal/domain"
	"github.com/aetheria-gallery/aetheria/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	// Set defaults if not provided
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// CreateArtwork inserts a new artwork row plus its prompt fingerprint in a single transaction
func (s *pgStore) CreateArtwork(ctx context.Context, input CreateArtworkInput) (*schema.Artwork, error) {
	artwork := schema.Artwork{
		Title:         input.Title,
		Description:   input.Description,
		ImageURL:      input.ImageURL,
		CreatorWallet: input.CreatorWallet,
		ContentHash:   input.ContentHash,
		Prompt:        input.Prompt,
		AIModel:       input.AIModel,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The content_hash unique index is the duplicate gate. A concurrent
		// upload of the same bytes loses the race here instead of creating
		// a second row.
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "content_hash"}},
			DoNothing: true,
		}).Clauses(clause.Returning{Columns: []clause.Column{}}).
			Create(&artwork).Error; err != nil {
			return fmt.Errorf("failed to create artwork: %w", err)
		}

		if artwork.ID == 0 {
			return domain.ErrDuplicateArtwork
		}

		if input.PromptHash != nil {
			promptHash := schema.PromptHash{
				ArtworkID: artwork.ID,
				Hash:      *input.PromptHash,
			}
			if err := tx.Create(&promptHash).Error; err != nil {
				return fmt.Errorf("failed to create prompt hash: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &artwork, nil
}

// GetArtworkByID retrieves an artwork by its primary key
func (s *pgStore) GetArtworkByID(ctx context.Context, id int64) (*schema.Artwork, error) {
	var artwork schema.Artwork
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&artwork).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get artwork: %w", err)
	}
	return &artwork, nil
}

// GetArtworkByContentHash retrieves an artwork by its content hash
func (s *pgStore) GetArtworkByContentHash(ctx context.Context, hash string) (*schema.Artwork, error) {
	var artwork schema.Artwork
	err := s.db.WithContext(ctx).Where("content_hash = ?", hash).First(&artwork).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get artwork by content hash: %w", err)
	}
	return &artwork, nil
}

// ListFeatured retrieves the top-N artworks ordered by vote count descending.
// Ties break on newest first so fresh work surfaces.
func (s *pgStore) ListFeatured(ctx context.Context, limit int) ([]schema.Artwork, error) {
	var artworks []schema.Artwork
	err := s.db.WithContext(ctx).
		Order("vote_count DESC").
		Order("created_at DESC").
		Limit(limit).
		Find(&artworks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list featured artworks: %w", err)
	}
	return artworks, nil
}

// DeleteArtwork hard deletes an artwork and its dependent rows in a single transaction
func (s *pgStore) DeleteArtwork(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var artwork schema.Artwork
		err := tx.Where("id = ?", id).First(&artwork).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrArtworkNotFound
			}
			return fmt.Errorf("failed to get artwork: %w", err)
		}

		if err := tx.Where("artwork_id = ?", id).Delete(&schema.Vote{}).Error; err != nil {
			return fmt.Errorf("failed to delete votes: %w", err)
		}
		if err := tx.Where("artwork_id = ?", id).Delete(&schema.PromptHash{}).Error; err != nil {
			return fmt.Errorf("failed to delete prompt hashes: %w", err)
		}
		if err := tx.Where("artwork_id = ?", id).Delete(&schema.ArtworkTag{}).Error; err != nil {
			return fmt.Errorf("failed to delete artwork tags: %w", err)
		}
		if err := tx.Delete(&artwork).Error; err != nil {
			return fmt.Errorf("failed to delete artwork: %w", err)
		}

		return nil
	})
}

// SetMetadataURI stores the pinned metadata URI for an artwork
func (s *pgStore) SetMetadataURI(ctx context.Context, id int64, uri string) error {
	result := s.db.WithContext(ctx).
		Model(&schema.Artwork{}).
		Where("id = ?", id).
		Update("metadata_uri", uri)
	if result.Error != nil {
		return fmt.Errorf("failed to set metadata URI: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrArtworkNotFound
	}
	return nil
}

// MarkMinted records a successful mint. The minted = false guard makes the
// update a compare-and-set, so only one of two racing mints can succeed.
func (s *pgStore) MarkMinted(ctx context.Context, id int64, tokenID int64, txHash string) error {
	result := s.db.WithContext(ctx).
		Model(&schema.Artwork{}).
		Where("id = ? AND minted = ?", id, false).
		Updates(map[string]interface{}{
			"minted":   true,
			"token_id": tokenID,
			"tx_hash":  txHash,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to mark artwork minted: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// Distinguish missing from already minted
		artwork, err := s.GetArtworkByID(ctx, id)
		if err != nil {
			return err
		}
		if artwork == nil {
			return domain.ErrArtworkNotFound
		}
		return domain.ErrAlreadyMinted
	}
	return nil
}

// ToggleVote adds or removes the (artworkID, wallet) vote and adjusts the
// artwork's denormalized counter in the same transaction. The counter update
// uses an SQL expression so concurrent toggles on the same artwork serialize
// at the row instead of clobbering each other.
func (s *pgStore) ToggleVote(ctx context.Context, artworkID int64, wallet string) (domain.VoteAction, int64, error) {
	var action domain.VoteAction
	var newCount int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var artwork schema.Artwork
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", artworkID).
			First(&artwork).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrArtworkNotFound
			}
			return fmt.Errorf("failed to lock artwork: %w", err)
		}

		var vote schema.Vote
		err = tx.Where("artwork_id = ? AND user_wallet = ?", artworkID, wallet).
			First(&vote).Error
		switch {
		case err == nil:
			if err := tx.Delete(&vote).Error; err != nil {
				return fmt.Errorf("failed to delete vote: %w", err)
			}
			if err := tx.Model(&schema.Artwork{}).
				Where("id = ?", artworkID).
				Update("vote_count", gorm.Expr("GREATEST(vote_count - 1, 0)")).Error; err != nil {
				return fmt.Errorf("failed to decrement vote count: %w", err)
			}
			action = domain.VoteActionRemoved
		case errors.Is(err, gorm.ErrRecordNotFound):
			vote = schema.Vote{
				ArtworkID:  artworkID,
				UserWallet: wallet,
			}
			if err := tx.Create(&vote).Error; err != nil {
				return fmt.Errorf("failed to create vote: %w", err)
			}
			if err := tx.Model(&schema.Artwork{}).
				Where("id = ?", artworkID).
				Update("vote_count", gorm.Expr("vote_count + 1")).Error; err != nil {
				return fmt.Errorf("failed to increment vote count: %w", err)
			}
			action = domain.VoteActionAdded
		default:
			return fmt.Errorf("failed to get vote: %w", err)
		}

		var updated schema.Artwork
		if err := tx.Select("vote_count").Where("id = ?", artworkID).First(&updated).Error; err != nil {
			return fmt.Errorf("failed to read vote count: %w", err)
		}
		newCount = updated.VoteCount

		return nil
	})
	if err != nil {
		return "", 0, err
	}

	return action, newCount, nil
}

// HasVoted reports whether a live vote row exists for (artworkID, wallet)
func (s *pgStore) HasVoted(ctx context.Context, artworkID int64, wallet string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&schema.Vote{}).
		Where("artwork_id = ? AND user_wallet = ?", artworkID, wallet).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check vote: %w", err)
	}
	return count > 0, nil
}

// GetVoteCount retrieves the denormalized vote count for an artwork
func (s *pgStore) GetVoteCount(ctx context.Context, artworkID int64) (int64, error) {
	var artwork schema.Artwork
	err := s.db.WithContext(ctx).
		Select("vote_count").
		Where("id = ?", artworkID).
		First(&artwork).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.ErrArtworkNotFound
		}
		return 0, fmt.Errorf("failed to get vote count: %w", err)
	}
	return artwork.VoteCount, nil
}

// UpsertUser creates or returns the user row for a wallet
func (s *pgStore) UpsertUser(ctx context.Context, wallet string) (*schema.User, error) {
	user := schema.User{
		WalletAddress: wallet,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "wallet_address"}},
		DoNothing: true,
	}).Clauses(clause.Returning{Columns: []clause.Column{}}).
		Create(&user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	// ID stays 0 when the row already existed, fetch it
	if user.ID == 0 {
		if err := s.db.WithContext(ctx).Where("wallet_address = ?", wallet).First(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to get existing user: %w", err)
		}
	}

	return &user, nil
}

// AssociateTags case-folds, creates missing tags and links them to an artwork
func (s *pgStore) AssociateTags(ctx context.Context, artworkID int64, names []string) error {
	if len(names) == 0 {
		return nil
	}

	// Deduplicate after case folding so "Surreal" and "surreal" collapse
	seen := make(map[string]struct{}, len(names))
	folded := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		folded = append(folded, name)
	}
	if len(folded) == 0 {
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range folded {
			tag := schema.Tag{Name: name}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoNothing: true,
			}).Clauses(clause.Returning{Columns: []clause.Column{}}).
				Create(&tag).Error; err != nil {
				return fmt.Errorf("failed to create tag: %w", err)
			}

			if tag.ID == 0 {
				if err := tx.Where("name = ?", name).First(&tag).Error; err != nil {
					return fmt.Errorf("failed to get existing tag: %w", err)
				}
			}

			link := schema.ArtworkTag{
				ArtworkID: artworkID,
				TagID:     tag.ID,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "artwork_id"}, {Name: "tag_id"}},
				DoNothing: true,
			}).Create(&link).Error; err != nil {
				return fmt.Errorf("failed to link tag: %w", err)
			}
		}
		return nil
	})
}

// GetArtworkTags retrieves the tags linked to an artwork
func (s *pgStore) GetArtworkTags(ctx context.Context, artworkID int64) ([]schema.Tag, error) {
	var tags []schema.Tag
	err := s.db.WithContext(ctx).
		Joins("JOIN artwork_tags ON artwork_tags.tag_id = tags.id").
		Where("artwork_tags.artwork_id = ?", artworkID).
		Order("tags.name ASC").
		Find(&tags).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get artwork tags: %w", err)
	}
	return tags, nil
}

// FindPromptHash retrieves the oldest fingerprint row matching a prompt hash
func (s *pgStore) FindPromptHash(ctx context.Context, hash string) (*schema.PromptHash, error) {
	var promptHash schema.PromptHash
	err := s.db.WithContext(ctx).
		Where("prompt_hash = ?", hash).
		Order("created_at ASC").
		First(&promptHash).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find prompt hash: %w", err)
	}
	return &promptHash, nil
}
