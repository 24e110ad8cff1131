package schema

import (
	"time"
)

// NFTTransfer represents the nft_transfers table - the ownership history of a
// token. nft_id must always reference a live nfts row; the maintenance
// pipeline rewrites it before any referenced row is deleted.
type NFTTransfer struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// NFTID references the token this transfer belongs to
	NFTID int64 `gorm:"column:nft_id;not null;index"`
	// FromUserID is the sending owner (nil for mints and gifts from the treasury)
	FromUserID *int64 `gorm:"column:from_user_id"`
	// ToUserID is the receiving owner
	ToUserID int64 `gorm:"column:to_user_id;not null"`
	// Price is the sale price at transfer time (empty for gifts)
	Price string `gorm:"column:price;not null;default:'';type:text"`
	// TransferredAt is the time of the ownership change
	TransferredAt time.Time `gorm:"column:transferred_at;not null;default:now()"`
}

// TableName specifies the table name for the NFTTransfer model
func (NFTTransfer) TableName() string {
	return "nft_transfers"
}
