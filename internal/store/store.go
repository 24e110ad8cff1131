package store

import (
	"context"

	"gorm.io/datatypes"

	"github.com/apevault/nft-curator/internal/domain"
	"github.com/apevault/nft-curator/internal/store/schema"
)

// Removal describes one row flagged for deletion by a maintenance pass.
// SurvivorID is nil for classifier-driven removals, which have no
// reassignment target; their transfer history is deleted alongside the row.
type Removal struct {
	RemovedID  int64
	SurvivorID *int64
	TokenID    string
	Reason     domain.RemovalReason
}

// MetadataUpdate carries the renormalized metadata for one surviving row
type MetadataUpdate struct {
	ID          int64
	Rarity      string
	Price       string
	Description string
	Attributes  datatypes.JSON
}

// RarityCount is one row of the survivors-by-rarity breakdown
type RarityCount struct {
	Rarity string
	Count  int64
}

// CollectionCount is one row of the survivors-by-collection breakdown
type CollectionCount struct {
	Collection string
	Count      int64
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// ListNFTs retrieves every token row with its collection preloaded
	ListNFTs(ctx context.Context) ([]*schema.NFT, error)
	// CountNFTs returns the number of token rows
	CountNFTs(ctx context.Context) (int64, error)
	// CountTransfers returns the number of transfer rows
	CountTransfers(ctx context.Context) (int64, error)
	// PurgeNFTs deletes the given token rows and their transfer history in one
	// transaction; returns deleted token and transfer counts
	PurgeNFTs(ctx context.Context, ids []int64) (int64, int64, error)
	// ReassignAndPurge rewrites transfer references from removed rows to their
	// survivors, then deletes the removed rows, all in one transaction;
	// returns reassigned transfer and deleted token counts
	ReassignAndPurge(ctx context.Context, removals []Removal) (int64, int64, error)
	// UpdateNFTMetadata applies renormalized metadata to surviving rows in one
	// transaction; returns the number of rows updated
	UpdateNFTMetadata(ctx context.Context, updates []MetadataUpdate) (int64, error)
	// CreateNFTs inserts new token rows in batches
	CreateNFTs(ctx context.Context, nfts []*schema.NFT) error
	// GetOrCreateCollection finds a collection by name or creates it
	GetOrCreateCollection(ctx context.Context, name, description string, creatorID int64) (*schema.Collection, error)
	// GetOrCreateUser finds a user by username or creates it
	GetOrCreateUser(ctx context.Context, username string) (*schema.User, error)
	// RarityBreakdown returns surviving-row counts grouped by rarity
	RarityBreakdown(ctx context.Context) ([]RarityCount, error)
	// CollectionBreakdown returns surviving-row counts grouped by collection name
	CollectionBreakdown(ctx context.Context) ([]CollectionCount, error)
	// AcquireMaintenanceLock takes the advisory lock guarding maintenance runs;
	// returns false when another run holds it
	AcquireMaintenanceLock(ctx context.Context) (bool, error)
	// ReleaseMaintenanceLock releases the advisory lock
	ReleaseMaintenanceLock(ctx context.Context) error
}
