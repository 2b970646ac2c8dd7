package artwork

import (
	"context"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aetheria-gallery/aetheria/internal/domain"
	"github.com/aetheria-gallery/aetheria/internal/logger"
	"github.com/aetheria-gallery/aetheria/internal/storage"
	"github.com/aetheria-gallery/aetheria/internal/store"
	"github.com/aetheria-gallery/aetheria/internal/store/schema"
)

// DefaultMaxImageSize caps uploads when no limit is configured
const DefaultMaxImageSize = 10 * 1024 * 1024

// DuplicateError reports a content-hash collision with an existing artwork
type DuplicateError struct {
	ExistingArtworkID int64
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("artwork already exists with id %d", e.ExistingArtworkID)
}

func (e *DuplicateError) Unwrap() error {
	return domain.ErrDuplicateArtwork
}

// UploadInput carries a new artwork submission
type UploadInput struct {
	Title         string
	Description   string
	Prompt        string
	AIModel       string
	Tags          []string
	CreatorWallet domain.Wallet
	Image         []byte
}

// UploadResult is the outcome of a successful upload
type UploadResult struct {
	Artwork *schema.Artwork
	// PromptReused is set when another artwork already carries the same
	// normalized prompt. The upload still succeeds; the flag is advisory.
	PromptReused      bool
	OriginalArtworkID int64
}

// Uploader validates, stores and records artwork submissions
type Uploader struct {
	store        store.Store
	blobs        storage.ObjectStorage
	maxImageSize int64
}

// NewUploader creates a new artwork uploader
func NewUploader(st store.Store, blobs storage.ObjectStorage, maxImageSize int64) *Uploader {
	if maxImageSize <= 0 {
		maxImageSize = DefaultMaxImageSize
	}
	return &Uploader{
		store:        st,
		blobs:        blobs,
		maxImageSize: maxImageSize,
	}
}

// Upload runs the full submission pipeline: validate the image, reject
// duplicate bytes, store the blob, insert the row, attach tags.
func (u *Uploader) Upload(ctx context.Context, input UploadInput) (*UploadResult, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if len(input.Image) == 0 {
		return nil, fmt.Errorf("%w: image is required", domain.ErrValidation)
	}
	if int64(len(input.Image)) > u.maxImageSize {
		return nil, fmt.Errorf("%w: image exceeds %d bytes", domain.ErrValidation, u.maxImageSize)
	}

	// Sniff the actual content, the client-supplied content type is not trusted
	mtype := mimetype.Detect(input.Image)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, fmt.Errorf("%w: unsupported content type %s", domain.ErrValidation, mtype.String())
	}

	contentHash := ContentHash(input.Image)

	// Fast-path duplicate check before paying for the blob upload. The unique
	// index in CreateArtwork still catches the concurrent race.
	existing, err := u.store.GetArtworkByContentHash(ctx, contentHash)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &DuplicateError{ExistingArtworkID: existing.ID}
	}

	var promptHash *string
	var prompt *string
	var promptReused bool
	var originalID int64
	if trimmed := strings.TrimSpace(input.Prompt); trimmed != "" {
		prompt = &trimmed
		fp := PromptFingerprint(trimmed)
		promptHash = &fp

		prior, err := u.store.FindPromptHash(ctx, fp)
		if err != nil {
			return nil, err
		}
		if prior != nil {
			promptReused = true
			originalID = prior.ArtworkID
		}
	}

	name := fmt.Sprintf("artwork-%s%s", uuid.NewString(), mtype.Extension())
	imageURL, err := u.blobs.UploadImage(ctx, name, input.Image, map[string]interface{}{
		"creator":      input.CreatorWallet.String(),
		"content_hash": contentHash,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	var model *string
	if trimmed := strings.TrimSpace(input.AIModel); trimmed != "" {
		model = &trimmed
	}

	created, err := u.store.CreateArtwork(ctx, store.CreateArtworkInput{
		Title:         strings.TrimSpace(input.Title),
		Description:   strings.TrimSpace(input.Description),
		ImageURL:      imageURL,
		CreatorWallet: input.CreatorWallet.String(),
		ContentHash:   contentHash,
		Prompt:        prompt,
		AIModel:       model,
		PromptHash:    promptHash,
	})
	if err != nil {
		if existing, lookupErr := u.store.GetArtworkByContentHash(ctx, contentHash); lookupErr == nil && existing != nil {
			return nil, &DuplicateError{ExistingArtworkID: existing.ID}
		}
		return nil, err
	}

	// Tag failures never fail the upload, the artwork row already exists
	if len(input.Tags) > 0 {
		if err := u.store.AssociateTags(ctx, created.ID, input.Tags); err != nil {
			logger.WarnCtx(ctx, "failed to attach tags",
				zap.Int64("artworkID", created.ID),
				zap.Error(err),
			)
		}
	}

	logger.InfoCtx(ctx, "artwork uploaded",
		zap.Int64("artworkID", created.ID),
		zap.String("creator", input.CreatorWallet.String()),
		zap.Bool("promptReused", promptReused),
	)

	return &UploadResult{
		Artwork:           created,
		PromptReused:      promptReused,
		OriginalArtworkID: originalID,
	}, nil
}
