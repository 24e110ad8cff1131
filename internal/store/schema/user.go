package schema

import (
	"time"
)

// User represents the users table. Account and balance mechanics live in the
// marketplace service; the curator only needs the rows as FK targets.
type User struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Username is the unique account name
	Username string `gorm:"column:username;not null;uniqueIndex;type:text"`
	// CreatedAt is the account creation timestamp
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
