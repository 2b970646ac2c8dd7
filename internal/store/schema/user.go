package schema

import (
	"time"
)

// User represents the users table - wallet identities upserted at login
type User struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// WalletAddress is the lowercased address proving ownership via signature
	WalletAddress string `gorm:"column:wallet_address;not null;uniqueIndex;type:text"`
	// Username is an optional display name
	Username *string `gorm:"column:username;type:text"`
	// JoinedAt is the timestamp of the first successful login
	JoinedAt time.Time `gorm:"column:joined_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
