package dto

import (
	"time"

	"github.com/aetheria-gallery/aetheria/internal/store/schema"
)

// ArtworkDTO is the wire representation of an artwork
type ArtworkDTO struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	ImageURL      string    `json:"image_url"`
	CreatorWallet string    `json:"creator_wallet"`
	ContentHash   string    `json:"content_hash"`
	Prompt        *string   `json:"prompt,omitempty"`
	AIModel       *string   `json:"ai_model,omitempty"`
	MetadataURI   *string   `json:"metadata_uri,omitempty"`
	VoteCount     int64     `json:"vote_count"`
	Minted        bool      `json:"minted"`
	TokenID       *int64    `json:"token_id,omitempty"`
	TxHash        *string   `json:"tx_hash,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	Tags          []string  `json:"tags,omitempty"`
}

// FromArtwork maps a stored artwork to its wire representation
func FromArtwork(artwork *schema.Artwork) *ArtworkDTO {
	if artwork == nil {
		return nil
	}
	return &ArtworkDTO{
		ID:            artwork.ID,
		Title:         artwork.Title,
		Description:   artwork.Description,
		ImageURL:      artwork.ImageURL,
		CreatorWallet: artwork.CreatorWallet,
		ContentHash:   artwork.ContentHash,
		Prompt:        artwork.Prompt,
		AIModel:       artwork.AIModel,
		MetadataURI:   artwork.MetadataURI,
		VoteCount:     artwork.VoteCount,
		Minted:        artwork.Minted,
		TokenID:       artwork.TokenID,
		TxHash:        artwork.TxHash,
		CreatedAt:     artwork.CreatedAt,
	}
}

// FromArtworks maps a slice of stored artworks
func FromArtworks(artworks []schema.Artwork) []*ArtworkDTO {
	result := make([]*ArtworkDTO, 0, len(artworks))
	for i := range artworks {
		result = append(result, FromArtwork(&artworks[i]))
	}
	return result
}
