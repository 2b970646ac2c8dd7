package schema

import (
	"time"
)

// PromptHash represents the prompt_hashes table - normalized-prompt fingerprints
// used to detect re-used AI prompts across uploads. Checked opportunistically
// before insert; not uniqueness-enforced at the store level.
type PromptHash struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ArtworkID references the artwork the prompt produced
	ArtworkID int64 `gorm:"column:artwork_id;not null;index"`
	// Hash is the hex SHA-256 digest of the normalized prompt
	Hash string `gorm:"column:prompt_hash;not null;index;type:text"`
	// CreatedAt is the timestamp when the fingerprint was recorded
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	Artwork Artwork `gorm:"foreignKey:ArtworkID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the PromptHash model
func (PromptHash) TableName() string {
	return "prompt_hashes"
}
