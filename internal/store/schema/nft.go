package schema

import (
	"time"

	"gorm.io/datatypes"
)

// NFT represents the nfts table - one row per collectible token held by the
// marketplace. token_id is intended to be unique per logical token but the
// schema does not enforce it; duplicates are an expected runtime condition
// resolved by the maintenance pipeline.
type NFT struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// TokenID is the collection-prefixed business identifier (e.g. "BAYC-512")
	TokenID string `gorm:"column:token_id;not null;index;type:text"`
	// Name is the display name of the token
	Name string `gorm:"column:name;not null;type:text"`
	// Description is flavor text chosen from a fixed pool keyed by rarity
	Description string `gorm:"column:description;not null;default:'';type:text"`
	// ImagePath is the relative or absolute path/URL of the artwork
	ImagePath string `gorm:"column:image_path;not null;default:'';index;type:text"`
	// CollectionID references the collection the token claims to belong to
	CollectionID int64 `gorm:"column:collection_id;not null;index"`
	// Rarity is one of common/uncommon/rare/epic/legendary
	Rarity string `gorm:"column:rarity;not null;type:text"`
	// Attributes holds the power/agility/wisdom/luck scores as JSONB
	Attributes datatypes.JSON `gorm:"column:attributes;type:jsonb"`
	// Price is the decimal-as-string listing price
	Price string `gorm:"column:price;not null;default:'0';type:text"`
	// ForSale is the marketplace visibility flag
	ForSale bool `gorm:"column:for_sale;not null;default:false"`
	// OwnerID references the owning user
	OwnerID int64 `gorm:"column:owner_id;not null;index"`
	// MintedAt is the creation timestamp
	MintedAt time.Time `gorm:"column:minted_at;not null;default:now()"`

	// Associations. No delete cascade on Transfers: transfer history is
	// reassigned or deleted explicitly before a referenced row goes away.
	Collection *Collection   `gorm:"foreignKey:CollectionID"`
	Transfers  []NFTTransfer `gorm:"foreignKey:NFTID"`
}

// TableName specifies the table name for the NFT model
func (NFT) TableName() string {
	return "nfts"
}
