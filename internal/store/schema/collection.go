package schema

import (
	"time"
)

// Collection represents the collections table - read-only input to the
// classifier, which tests the collection name against membership signals.
type Collection struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Name is the display name of the collection
	Name string `gorm:"column:name;not null;uniqueIndex;type:text"`
	// Description is the collection description
	Description string `gorm:"column:description;not null;default:'';type:text"`
	// CreatorID references the user that created the collection
	CreatorID int64 `gorm:"column:creator_id;not null"`
	// CreatedAt is the timestamp when the collection was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
}

// TableName specifies the table name for the Collection model
func (Collection) TableName() string {
	return "collections"
}
