package schema

// Tag represents the tags table - free-text labels, case-folded on creation
type Tag struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Name is the case-folded tag label
	Name string `gorm:"column:name;not null;uniqueIndex;type:text"`
}

// TableName specifies the table name for the Tag model
func (Tag) TableName() string {
	return "tags"
}

// ArtworkTag represents the artwork_tags join table between artworks and tags
type ArtworkTag struct {
	// ArtworkID references the tagged artwork
	ArtworkID int64 `gorm:"column:artwork_id;primaryKey"`
	// TagID references the tag
	TagID int64 `gorm:"column:tag_id;primaryKey"`
}

// TableName specifies the table name for the ArtworkTag model
func (ArtworkTag) TableName() string {
	return "artwork_tags"
}
