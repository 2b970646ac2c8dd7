package schema

import (
	"time"
)

// Artwork represents the artworks table - the primary entity for uploaded pieces
type Artwork struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Title is the display title supplied at upload
	Title string `gorm:"column:title;not null;type:text"`
	// Description is the free-text description supplied at upload
	Description string `gorm:"column:description;not null;type:text"`
	// ImageURL is the public URL of the stored image blob
	ImageURL string `gorm:"column:image_url;not null;type:text"`
	// CreatorWallet is the lowercased address of the uploading wallet
	CreatorWallet string `gorm:"column:creator_wallet;not null;type:text;index"`
	// ContentHash is the hex SHA-256 digest of the image bytes (duplicate gate)
	ContentHash string `gorm:"column:content_hash;not null;uniqueIndex;type:text"`
	// Prompt is the AI prompt used to generate the piece, if disclosed
	Prompt *string `gorm:"column:prompt;type:text"`
	// AIModel names the generator model, if disclosed
	AIModel *string `gorm:"column:ai_model;type:text"`
	// MetadataURI is the pinned token-metadata URI, set by the metadata service
	MetadataURI *string `gorm:"column:metadata_uri;type:text"`
	// VoteCount is a denormalized count of live vote rows for this artwork
	VoteCount int64 `gorm:"column:vote_count;not null;default:0;index"`
	// Minted indicates whether the artwork has been minted on-chain
	Minted bool `gorm:"column:minted;not null;default:false"`
	// TokenID is the on-chain token id, set once minted
	TokenID *int64 `gorm:"column:token_id"`
	// TxHash is the mint transaction hash, set once minted
	TxHash *string `gorm:"column:tx_hash;type:text"`
	// CreatedAt is the timestamp when the artwork was uploaded
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	Votes        []Vote       `gorm:"foreignKey:ArtworkID;constraint:OnDelete:CASCADE"`
	PromptHashes []PromptHash `gorm:"foreignKey:ArtworkID;constraint:OnDelete:CASCADE"`
	Tags         []Tag        `gorm:"many2many:artwork_tags;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Artwork model
func (Artwork) TableName() string {
	return "artworks"
}
