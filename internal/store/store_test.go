package store

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/apevault/nft-curator/internal/domain"
	"github.com/apevault/nft-curator/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

// seedUser inserts a user row directly through the test transaction
func seedUser(t *testing.T, db *gorm.DB, username string) *schema.User {
	user := &schema.User{Username: username}
	require.NoError(t, db.Create(user).Error)
	return user
}

// seedCollection inserts a collection row
func seedCollection(t *testing.T, db *gorm.DB, name string, creatorID int64) *schema.Collection {
	collection := &schema.Collection{Name: name, CreatorID: creatorID}
	require.NoError(t, db.Create(collection).Error)
	return collection
}

// seedNFT inserts a token row with reasonable defaults
func seedNFT(t *testing.T, db *gorm.DB, tokenID string, collectionID, ownerID int64) *schema.NFT {
	attrs, err := json.Marshal(domain.Attributes{Power: 50, Agility: 50, Wisdom: 50, Luck: 50})
	require.NoError(t, err)

	nft := &schema.NFT{
		TokenID:      tokenID,
		Name:         "Bored Ape " + tokenID,
		ImagePath:    fmt.Sprintf("/images/bored_ape_%s.png", tokenID),
		CollectionID: collectionID,
		Rarity:       string(domain.RarityCommon),
		Attributes:   datatypes.JSON(attrs),
		Price:        "20",
		OwnerID:      ownerID,
		MintedAt:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(nft).Error)
	return nft
}

// seedTransfer inserts a transfer row for a token
func seedTransfer(t *testing.T, db *gorm.DB, nftID, toUserID int64) *schema.NFTTransfer {
	transfer := &schema.NFTTransfer{
		NFTID:    nftID,
		ToUserID: toUserID,
		Price:    "20",
	}
	require.NoError(t, db.Create(transfer).Error)
	return transfer
}

// seedMarketplace creates the user/collection scaffolding every test needs
func seedMarketplace(t *testing.T, db *gorm.DB) (*schema.User, *schema.Collection) {
	user := seedUser(t, db, fmt.Sprintf("collector-%s", t.Name()))
	collection := seedCollection(t, db, fmt.Sprintf("Bored Ape Vault Club %s", t.Name()), user.ID)
	return user, collection
}

// RunStoreTests runs the full store suite against one implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) (Store, *gorm.DB)) {
	t.Run("ListNFTs", func(t *testing.T) { testListNFTs(t, initDB) })
	t.Run("Counts", func(t *testing.T) { testCounts(t, initDB) })
	t.Run("PurgeNFTs", func(t *testing.T) { testPurgeNFTs(t, initDB) })
	t.Run("ReassignAndPurge", func(t *testing.T) { testReassignAndPurge(t, initDB) })
	t.Run("ReassignAndPurgeChained", func(t *testing.T) { testReassignAndPurgeChained(t, initDB) })
	t.Run("UpdateNFTMetadata", func(t *testing.T) { testUpdateNFTMetadata(t, initDB) })
	t.Run("CreateNFTs", func(t *testing.T) { testCreateNFTs(t, initDB) })
	t.Run("GetOrCreateCollection", func(t *testing.T) { testGetOrCreateCollection(t, initDB) })
	t.Run("GetOrCreateUser", func(t *testing.T) { testGetOrCreateUser(t, initDB) })
	t.Run("Breakdowns", func(t *testing.T) { testBreakdowns(t, initDB) })
}

func testListNFTs(t *testing.T, initDB func(t *testing.T) (Store, *gorm.DB)) {
	store, db := initDB(t)
	ctx := context.Background()

	user, collection := seedMarketplace(t, db)
	second := seedNFT(t, db, "BAYC-2", collection.ID, user.ID)
	first := seedNFT(t, db, "BAYC-1", collection.ID, user.ID)

	nfts, err := store.ListNFTs(ctx)
	require.NoError(t, err)
	require.Len(t, nfts, 2)

	// Ordered by id regardless of token_id
	assert.Equal(t, second.ID, nfts[0].ID)
	assert.Equal(t, first.ID, nfts[1].ID)

	// Collection association is preloaded for the classifier
	require.NotNil(t, nfts[0].Collection)
	assert.Equal(t, collection.Name, nfts[0].Collection.Name)
}

func testCounts(t *testing.T, initDB func(t *testing.T) (Store, *gorm.DB)) {
	store, db := initDB(t)
	ctx := context.Background()

	user, collection := seedMarketplace(t, db)
	nft := seedNFT(t, db, "BAYC-1", collection.ID, user.ID)
	seedTransfer(t, db, nft.ID, user.ID)
	seedTransfer(t, db, nft.ID, user.ID)

	nfts, err := store.CountNFTs(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), nfts)

	transfers, err := store.CountTransfers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), transfers)
}

func testPurgeNFTs(t *testing.T, initDB func(t *testing.T) (Store, *gorm.DB)) {
	store, db := initDB(t)
	ctx := context.Background()

	user, collection := seedMarketplace(t, db)
	doomed := seedNFT(t, db, "MYSTERY-9", collection.ID, user.ID)
	kept := seedNFT(t, db, "BAYC-1", collection.ID, user.ID)
	seedTransfer(t, db, doomed.ID, user.ID)
	seedTransfer(t, db, doomed.ID, user.ID)
	keptTransfer := seedTransfer(t, db, kept.ID, user.ID)

	deletedNFTs, deletedTransfers, err := store.PurgeNFTs(ctx, []int64{doomed.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deletedNFTs)
	assert.Equal(t, int64(2), deletedTransfers)

	// The kept row and its history are untouched
	var nftCount int64
	require.NoError(t, db.Model(&schema.NFT{}).Count(&nftCount).Error)
	assert.Equal(t, int64(1), nftCount)

	var remaining []schema.NFTTransfer
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, keptTransfer.ID, remaining[0].ID)

	// Empty id set is a no-op
	deletedNFTs, deletedTransfers, err = store.PurgeNFTs(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, deletedNFTs)
	assert.Zero(t, deletedTransfers)
}

func testReassignAndPurge(t *testing.T, initDB func(t *testing.T) (Store, *gorm.DB)) {
	store, db := initDB(t)
	ctx := context.Background()

	user, collection := seedMarketplace(t, db)
	survivor := seedNFT(t, db, "BAYC-5", collection.ID, user.ID)
	loser := seedNFT(t, db, "BAYC-5", collection.ID, user.ID)
	orphan := seedNFT(t, db, "BAYC-5", collection.ID, user.ID)
	seedTransfer(t, db, survivor.ID, user.ID)
	seedTransfer(t, db, loser.ID, user.ID)
	seedTransfer(t, db, loser.ID, user.ID)
	seedTransfer(t, db, orphan.ID, user.ID)

	removals := []Removal{
		{RemovedID: loser.ID, SurvivorID: &survivor.ID, TokenID: "BAYC-5", Reason: domain.RemovalReasonDuplicateTokenID},
		{RemovedID: orphan.ID, TokenID: "BAYC-5", Reason: domain.RemovalReasonDuplicateTokenID},
	}

	reassigned, deleted, err := store.ReassignAndPurge(ctx, removals)
	require.NoError(t, err)
	assert.Equal(t, int64(2), reassigned)
	assert.Equal(t, int64(2), deleted)

	// The survivor now owns its own transfer plus the loser's two; the
	// orphan's history is gone.
	var transfers []schema.NFTTransfer
	require.NoError(t, db.Find(&transfers).Error)
	require.Len(t, transfers, 3)
	for _, transfer := range transfers {
		assert.Equal(t, survivor.ID, transfer.NFTID)
	}

	var nfts []schema.NFT
	require.NoError(t, db.Find(&nfts).Error)
	require.Len(t, nfts, 1)
	assert.Equal(t, survivor.ID, nfts[0].ID)

	// Empty removal set is a no-op
	reassigned, deleted, err = store.ReassignAndPurge(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, reassigned)
	assert.Zero(t, deleted)
}

func testReassignAndPurgeChained(t *testing.T, initDB func(t *testing.T) (Store, *gorm.DB)) {
	store, db := initDB(t)
	ctx := context.Background()

	// A row can lose twice in one run: first removed for a survivor that is
	// itself removed in the later pass. Survivors are processed in first-seen
	// order, so first's transfers move to middle and then travel on to final
	// when middle's transfers are rewritten.
	user, collection := seedMarketplace(t, db)
	first := seedNFT(t, db, "BAYC-5", collection.ID, user.ID)
	middle := seedNFT(t, db, "BAYC-5", collection.ID, user.ID)
	final := seedNFT(t, db, "BAYC-6", collection.ID, user.ID)
	seedTransfer(t, db, first.ID, user.ID)
	seedTransfer(t, db, middle.ID, user.ID)
	seedTransfer(t, db, final.ID, user.ID)

	removals := []Removal{
		{RemovedID: first.ID, SurvivorID: &middle.ID, TokenID: "BAYC-5", Reason: domain.RemovalReasonDuplicateTokenID},
		{RemovedID: middle.ID, SurvivorID: &final.ID, TokenID: "BAYC-5", Reason: domain.RemovalReasonDuplicateImagePath},
	}

	reassigned, deleted, err := store.ReassignAndPurge(ctx, removals)
	require.NoError(t, err)
	// first's transfer is rewritten twice: once onto middle, then on to final
	assert.Equal(t, int64(3), reassigned)
	assert.Equal(t, int64(2), deleted)

	var transfers []schema.NFTTransfer
	require.NoError(t, db.Find(&transfers).Error)
	require.Len(t, transfers, 3)
	for _, transfer := range transfers {
		assert.Equal(t, final.ID, transfer.NFTID)
	}

	var nfts []schema.NFT
	require.NoError(t, db.Find(&nfts).Error)
	require.Len(t, nfts, 1)
	assert.Equal(t, final.ID, nfts[0].ID)
}

func testUpdateNFTMetadata(t *testing.T, initDB func(t *testing.T) (Store, *gorm.DB)) {
	store, db := initDB(t)
	ctx := context.Background()

	user, collection := seedMarketplace(t, db)
	nft := seedNFT(t, db, "BAYC-1", collection.ID, user.ID)

	attrs, err := json.Marshal(domain.Attributes{Power: 90, Agility: 80, Wisdom: 70, Luck: 60})
	require.NoError(t, err)

	updated, err := store.UpdateNFTMetadata(ctx, []MetadataUpdate{
		{
			ID:          nft.ID,
			Rarity:      string(domain.RarityLegendary),
			Price:       "201234",
			Description: "The stuff of campfire legends.",
			Attributes:  datatypes.JSON(attrs),
		},
		// Unknown id affects no rows but is not an error
		{ID: nft.ID + 9999, Rarity: string(domain.RarityCommon), Price: "20"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	var reloaded schema.NFT
	require.NoError(t, db.First(&reloaded, nft.ID).Error)
	assert.Equal(t, string(domain.RarityLegendary), reloaded.Rarity)
	assert.Equal(t, "201234", reloaded.Price)
	assert.Equal(t, "The stuff of campfire legends.", reloaded.Description)

	var reloadedAttrs domain.Attributes
	require.NoError(t, json.Unmarshal(reloaded.Attributes, &reloadedAttrs))
	assert.Equal(t, domain.Attributes{Power: 90, Agility: 80, Wisdom: 70, Luck: 60}, reloadedAttrs)

	// Empty update set is a no-op
	updated, err = store.UpdateNFTMetadata(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, updated)
}

func testCreateNFTs(t *testing.T, initDB func(t *testing.T) (Store, *gorm.DB)) {
	store, db := initDB(t)
	ctx := context.Background()

	user, collection := seedMarketplace(t, db)

	nfts := make([]*schema.NFT, 0, 3)
	for n := 1; n <= 3; n++ {
		nfts = append(nfts, &schema.NFT{
			TokenID:      fmt.Sprintf("BAYC-%d", n),
			Name:         fmt.Sprintf("Bored Ape #%d", n),
			ImagePath:    fmt.Sprintf("/images/bored_ape_%d.png", n),
			CollectionID: collection.ID,
			Rarity:       string(domain.RarityCommon),
			Price:        "20",
			OwnerID:      user.ID,
			MintedAt:     time.Now().UTC(),
		})
	}

	require.NoError(t, store.CreateNFTs(ctx, nfts))
	for _, nft := range nfts {
		assert.NotZero(t, nft.ID)
	}

	var count int64
	require.NoError(t, db.Model(&schema.NFT{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)

	// Empty input is a no-op
	assert.NoError(t, store.CreateNFTs(ctx, nil))
}

func testGetOrCreateCollection(t *testing.T, initDB func(t *testing.T) (Store, *gorm.DB)) {
	store, db := initDB(t)
	ctx := context.Background()

	user := seedUser(t, db, "creator")

	created, err := store.GetOrCreateCollection(ctx, "Bored Ape Vault Club", "The canonical collection", user.ID)
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.Equal(t, "Bored Ape Vault Club", created.Name)

	found, err := store.GetOrCreateCollection(ctx, "Bored Ape Vault Club", "ignored on lookup", user.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "The canonical collection", found.Description)
}

func testGetOrCreateUser(t *testing.T, initDB func(t *testing.T) (Store, *gorm.DB)) {
	store, _ := initDB(t)
	ctx := context.Background()

	created, err := store.GetOrCreateUser(ctx, "treasury")
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.Equal(t, "treasury", created.Username)

	found, err := store.GetOrCreateUser(ctx, "treasury")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func testBreakdowns(t *testing.T, initDB func(t *testing.T) (Store, *gorm.DB)) {
	store, db := initDB(t)
	ctx := context.Background()

	user := seedUser(t, db, "collector")
	apes := seedCollection(t, db, "Bored Ape Vault Club", user.ID)
	misc := seedCollection(t, db, "Miscellaneous", user.ID)

	for n := 1; n <= 3; n++ {
		seedNFT(t, db, fmt.Sprintf("BAYC-%d", n), apes.ID, user.ID)
	}
	rare := seedNFT(t, db, "MISC-1", misc.ID, user.ID)
	require.NoError(t, db.Model(&schema.NFT{}).Where("id = ?", rare.ID).Update("rarity", string(domain.RarityRare)).Error)

	byRarity, err := store.RarityBreakdown(ctx)
	require.NoError(t, err)
	require.Len(t, byRarity, 2)
	assert.Equal(t, RarityCount{Rarity: string(domain.RarityCommon), Count: 3}, byRarity[0])
	assert.Equal(t, RarityCount{Rarity: string(domain.RarityRare), Count: 1}, byRarity[1])

	byCollection, err := store.CollectionBreakdown(ctx)
	require.NoError(t, err)
	require.Len(t, byCollection, 2)
	assert.Equal(t, CollectionCount{Collection: "Bored Ape Vault Club", Count: 3}, byCollection[0])
	assert.Equal(t, CollectionCount{Collection: "Miscellaneous", Count: 1}, byCollection[1])
}
