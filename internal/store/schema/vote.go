package schema

import (
	"time"
)

// Vote represents the votes table - "wallet W currently endorses artwork A".
// Created on toggle-on, hard deleted on toggle-off; no history is retained.
type Vote struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ArtworkID references the endorsed artwork
	ArtworkID int64 `gorm:"column:artwork_id;not null;uniqueIndex:idx_votes_artwork_wallet,priority:1"`
	// UserWallet is the lowercased address of the voting wallet
	UserWallet string `gorm:"column:user_wallet;not null;type:text;uniqueIndex:idx_votes_artwork_wallet,priority:2"`
	// CreatedAt is the timestamp when the vote was cast
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	Artwork Artwork `gorm:"foreignKey:ArtworkID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Vote model
func (Vote) TableName() string {
	return "votes"
}
