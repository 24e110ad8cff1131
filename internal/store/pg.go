package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/apevault/nft-curator/internal/store/schema"
)

// maintenanceLockKey is the advisory lock key guarding a whole maintenance
// run. Any two jobs using the same key are mutually exclusive.
const maintenanceLockKey int64 = 0x6e66745f6375

// idBatchSize caps the size of IN-lists in bulk deletes and updates so a
// single statement never exceeds transport parameter limits.
const idBatchSize = 500

type pgStore struct {
	db        *gorm.DB
	batchSize int

	// lockMu guards lockConn. The advisory lock is session-scoped, so it must
	// be taken and released on the same pinned connection.
	lockMu   sync.Mutex
	lockConn *sql.Conn
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db, batchSize: idBatchSize}
}

// NewPGStoreWithBatchSize creates a store with a custom bulk-statement batch
// size
func NewPGStoreWithBatchSize(db *gorm.DB, batchSize int) Store {
	if batchSize <= 0 {
		batchSize = idBatchSize
	}
	return &pgStore{db: db, batchSize: batchSize}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to conservative defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 5
	}
	if maxIdleConns == 0 {
		maxIdleConns = 2
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = time.Hour
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// chunkIDs splits an id set into fixed-size batches
func chunkIDs(ids []int64, size int) [][]int64 {
	if size <= 0 {
		size = idBatchSize
	}
	var chunks [][]int64
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}

// ListNFTs retrieves every token row with its collection preloaded
func (s *pgStore) ListNFTs(ctx context.Context) ([]*schema.NFT, error) {
	var nfts []*schema.NFT
	err := s.db.WithContext(ctx).
		Preload("Collection").
		Order("id ASC").
		Find(&nfts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list nfts: %w", err)
	}
	return nfts, nil
}

// CountNFTs returns the number of token rows
func (s *pgStore) CountNFTs(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&schema.NFT{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count nfts: %w", err)
	}
	return count, nil
}

// CountTransfers returns the number of transfer rows
func (s *pgStore) CountTransfers(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&schema.NFTTransfer{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count transfers: %w", err)
	}
	return count, nil
}

// PurgeNFTs deletes the given token rows and their transfer history in one
// transaction. Used for classifier-driven removals, which have no
// reassignment target.
func (s *pgStore) PurgeNFTs(ctx context.Context, ids []int64) (int64, int64, error) {
	if len(ids) == 0 {
		return 0, 0, nil
	}

	var deletedNFTs, deletedTransfers int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, chunk := range chunkIDs(ids, s.batchSize) {
			res := tx.Where("nft_id IN ?", chunk).Delete(&schema.NFTTransfer{})
			if res.Error != nil {
				return fmt.Errorf("failed to delete transfers: %w", res.Error)
			}
			deletedTransfers += res.RowsAffected
		}
		for _, chunk := range chunkIDs(ids, s.batchSize) {
			res := tx.Where("id IN ?", chunk).Delete(&schema.NFT{})
			if res.Error != nil {
				return fmt.Errorf("failed to delete nfts: %w", res.Error)
			}
			deletedNFTs += res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	return deletedNFTs, deletedTransfers, nil
}

// ReassignAndPurge rewrites transfer references from removed rows to their
// survivors, then deletes the removed rows. Reassignment always happens
// before deletion inside the same transaction so a failure leaves the store
// untouched and a success never leaves a dangling nft_id.
func (s *pgStore) ReassignAndPurge(ctx context.Context, removals []Removal) (int64, int64, error) {
	if len(removals) == 0 {
		return 0, 0, nil
	}

	// Group removed ids per survivor, keeping first-seen order so statement
	// order is deterministic.
	var survivors []int64
	bySurvivor := make(map[int64][]int64)
	var orphaned []int64
	var removedIDs []int64
	for _, r := range removals {
		removedIDs = append(removedIDs, r.RemovedID)
		if r.SurvivorID == nil {
			orphaned = append(orphaned, r.RemovedID)
			continue
		}
		if _, seen := bySurvivor[*r.SurvivorID]; !seen {
			survivors = append(survivors, *r.SurvivorID)
		}
		bySurvivor[*r.SurvivorID] = append(bySurvivor[*r.SurvivorID], r.RemovedID)
	}

	var reassigned, deleted int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, survivorID := range survivors {
			for _, chunk := range chunkIDs(bySurvivor[survivorID], s.batchSize) {
				res := tx.Model(&schema.NFTTransfer{}).
					Where("nft_id IN ?", chunk).
					Update("nft_id", survivorID)
				if res.Error != nil {
					return fmt.Errorf("failed to reassign transfers to nft %d: %w", survivorID, res.Error)
				}
				reassigned += res.RowsAffected
			}
		}

		for _, chunk := range chunkIDs(orphaned, s.batchSize) {
			if res := tx.Where("nft_id IN ?", chunk).Delete(&schema.NFTTransfer{}); res.Error != nil {
				return fmt.Errorf("failed to delete orphaned transfers: %w", res.Error)
			}
		}

		for _, chunk := range chunkIDs(removedIDs, s.batchSize) {
			res := tx.Where("id IN ?", chunk).Delete(&schema.NFT{})
			if res.Error != nil {
				return fmt.Errorf("failed to delete nfts: %w", res.Error)
			}
			deleted += res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	return reassigned, deleted, nil
}

// UpdateNFTMetadata applies renormalized metadata to surviving rows in one
// transaction
func (s *pgStore) UpdateNFTMetadata(ctx context.Context, updates []MetadataUpdate) (int64, error) {
	if len(updates) == 0 {
		return 0, nil
	}

	var updated int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			res := tx.Model(&schema.NFT{}).
				Where("id = ?", u.ID).
				Updates(map[string]interface{}{
					"rarity":      u.Rarity,
					"price":       u.Price,
					"description": u.Description,
					"attributes":  u.Attributes,
				})
			if res.Error != nil {
				return fmt.Errorf("failed to update nft %d: %w", u.ID, res.Error)
			}
			updated += res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return updated, nil
}

// CreateNFTs inserts new token rows in batches
func (s *pgStore) CreateNFTs(ctx context.Context, nfts []*schema.NFT) error {
	if len(nfts) == 0 {
		return nil
	}

	if err := s.db.WithContext(ctx).CreateInBatches(nfts, s.batchSize).Error; err != nil {
		return fmt.Errorf("failed to create nfts: %w", err)
	}
	return nil
}

// GetOrCreateCollection finds a collection by name or creates it
func (s *pgStore) GetOrCreateCollection(ctx context.Context, name, description string, creatorID int64) (*schema.Collection, error) {
	var collection schema.Collection
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&collection).Error
	if err == nil {
		return &collection, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}

	collection = schema.Collection{
		Name:        name,
		Description: description,
		CreatorID:   creatorID,
	}
	if err := s.db.WithContext(ctx).Create(&collection).Error; err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}
	return &collection, nil
}

// GetOrCreateUser finds a user by username or creates it
func (s *pgStore) GetOrCreateUser(ctx context.Context, username string) (*schema.User, error) {
	var user schema.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user = schema.User{Username: username}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// RarityBreakdown returns surviving-row counts grouped by rarity
func (s *pgStore) RarityBreakdown(ctx context.Context) ([]RarityCount, error) {
	var counts []RarityCount
	err := s.db.WithContext(ctx).
		Model(&schema.NFT{}).
		Select("rarity, COUNT(*) AS count").
		Group("rarity").
		Order("count DESC, rarity ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get rarity breakdown: %w", err)
	}
	return counts, nil
}

// CollectionBreakdown returns surviving-row counts grouped by collection name
func (s *pgStore) CollectionBreakdown(ctx context.Context) ([]CollectionCount, error) {
	var counts []CollectionCount
	err := s.db.WithContext(ctx).
		Model(&schema.NFT{}).
		Select("collections.name AS collection, COUNT(*) AS count").
		Joins("JOIN collections ON collections.id = nfts.collection_id").
		Group("collections.name").
		Order("count DESC, collection ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get collection breakdown: %w", err)
	}
	return counts, nil
}

// AcquireMaintenanceLock takes the advisory lock guarding maintenance runs.
// The lock is session-scoped, so it is taken on a pinned connection held
// until release.
func (s *pgStore) AcquireMaintenanceLock(ctx context.Context) (bool, error) {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()

	if s.lockConn != nil {
		return false, errors.New("maintenance lock already held by this store")
	}

	sqlDB, err := s.db.DB()
	if err != nil {
		return false, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to pin connection for advisory lock: %w", err)
	}

	var acquired bool
	if err := conn.QueryRowContext(ctx, "SELECT pg_try_advisory_lock($1)", maintenanceLockKey).Scan(&acquired); err != nil {
		_ = conn.Close()
		return false, fmt.Errorf("failed to acquire advisory lock: %w", err)
	}

	if !acquired {
		_ = conn.Close()
		return false, nil
	}

	s.lockConn = conn
	return true, nil
}

// ReleaseMaintenanceLock releases the advisory lock and the pinned connection
func (s *pgStore) ReleaseMaintenanceLock(ctx context.Context) error {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()

	if s.lockConn == nil {
		return nil
	}

	_, err := s.lockConn.ExecContext(ctx, "SELECT pg_advisory_unlock($1)", maintenanceLockKey)
	closeErr := s.lockConn.Close()
	s.lockConn = nil

	if err != nil {
		return fmt.Errorf("failed to release advisory lock: %w", err)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close lock connection: %w", closeErr)
	}
	return nil
}
