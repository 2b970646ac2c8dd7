package metadata

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aetheria-gallery/aetheria/internal/artwork"
	"github.com/aetheria-gallery/aetheria/internal/domain"
	"github.com/aetheria-gallery/aetheria/internal/logger"
	"github.com/aetheria-gallery/aetheria/internal/store"
	"github.com/aetheria-gallery/aetheria/internal/store/schema"
)

// Attribute is a single trait entry in an ERC-721 metadata document
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// Document is the ERC-721 token metadata for an artwork
type Document struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	ContentHash string      `json:"content_hash"`
	Creator     string      `json:"creator"`
	CreatedAt   string      `json:"created_at"`
	Attributes  []Attribute `json:"attributes"`
}

// Result is the outcome of a metadata request
type Result struct {
	ArtworkID int64
	URI       string
	Document  *Document
	// Created is false when the URI already existed
	Created bool
}

// Pinner publishes a metadata document and returns its URI
//
//go:generate mockgen -source=service.go -destination=../mocks/pinner.go -package=mocks -mock_names=Pinner=MockPinner
type Pinner interface {
	Pin(ctx context.Context, payload []byte) (string, error)
}

// HashPinner derives a deterministic ipfs-style URI from the document digest.
// Real IPFS pinning can replace it without touching the service.
type HashPinner struct{}

func NewHashPinner() *HashPinner {
	return &HashPinner{}
}

func (p *HashPinner) Pin(_ context.Context, payload []byte) (string, error) {
	return fmt.Sprintf("ipfs://%x", sha256.Sum256(payload)), nil
}

// Service builds and records token metadata for artworks
type Service struct {
	store  store.Store
	pinner Pinner
}

func NewService(s store.Store, pinner Pinner) *Service {
	return &Service{store: s, pinner: pinner}
}

// EnsureMetadata builds, pins and records the metadata document for an
// artwork. Idempotent: an existing URI is returned unchanged.
func (s *Service) EnsureMetadata(ctx context.Context, artworkID int64) (*Result, error) {
	art, err := s.store.GetArtworkByID(ctx, artworkID)
	if err != nil {
		return nil, fmt.Errorf("failed to get artwork: %w", err)
	}
	if art == nil {
		return nil, domain.ErrArtworkNotFound
	}

	doc, err := s.buildDocument(ctx, art)
	if err != nil {
		return nil, err
	}

	if art.MetadataURI != nil && *art.MetadataURI != "" {
		return &Result{ArtworkID: artworkID, URI: *art.MetadataURI, Document: doc, Created: false}, nil
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}

	uri, err := s.pinner.Pin(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to pin metadata: %w", err)
	}

	if err := s.store.SetMetadataURI(ctx, artworkID, uri); err != nil {
		return nil, fmt.Errorf("failed to record metadata URI: %w", err)
	}

	logger.InfoCtx(ctx, "metadata created",
		zap.Int64("artworkID", artworkID),
		zap.String("uri", uri))

	return &Result{ArtworkID: artworkID, URI: uri, Document: doc, Created: true}, nil
}

// GetMetadata returns the metadata document and recorded URI for an artwork.
// The URI is empty when metadata has not been created yet.
func (s *Service) GetMetadata(ctx context.Context, artworkID int64) (*Result, error) {
	art, err := s.store.GetArtworkByID(ctx, artworkID)
	if err != nil {
		return nil, fmt.Errorf("failed to get artwork: %w", err)
	}
	if art == nil {
		return nil, domain.ErrArtworkNotFound
	}

	doc, err := s.buildDocument(ctx, art)
	if err != nil {
		return nil, err
	}

	result := &Result{ArtworkID: artworkID, Document: doc}
	if art.MetadataURI != nil {
		result.URI = *art.MetadataURI
	}
	return result, nil
}

func (s *Service) buildDocument(ctx context.Context, art *schema.Artwork) (*Document, error) {
	tags, err := s.store.GetArtworkTags(ctx, art.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get artwork tags: %w", err)
	}

	attributes := make([]Attribute, 0, len(tags)+2)
	if art.AIModel != nil && *art.AIModel != "" {
		attributes = append(attributes, Attribute{TraitType: "ai_model", Value: *art.AIModel})
	}
	if art.Prompt != nil && *art.Prompt != "" {
		attributes = append(attributes, Attribute{TraitType: "prompt_fingerprint", Value: artwork.PromptFingerprint(*art.Prompt)})
	}
	for _, tag := range tags {
		attributes = append(attributes, Attribute{TraitType: "tag", Value: tag.Name})
	}

	return &Document{
		Name:        art.Title,
		Description: art.Description,
		Image:       art.ImageURL,
		ContentHash: art.ContentHash,
		Creator:     art.CreatorWallet,
		CreatedAt:   art.CreatedAt.UTC().Format(time.RFC3339),
		Attributes:  attributes,
	}, nil
}
