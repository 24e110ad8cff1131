package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/apevault/nft-curator/internal/adapter"
	"github.com/apevault/nft-curator/internal/logger"
	"github.com/apevault/nft-curator/internal/metadata"
	"github.com/apevault/nft-curator/internal/store"
	"github.com/apevault/nft-curator/internal/store/schema"
)

// Config holds the parameters of one batch mint
type Config struct {
	Collection     string
	TokenPrefix    string
	StartNumber    int64
	Count          int64
	ImageDir       string
	OwnerUsername  string
	ForSale        bool
	WorkerPoolSize int
}

// Importer mints a range of canonical-collection tokens into the store with
// deterministically derived metadata. The import is additive: it never
// touches existing rows, and duplicate token identifiers it may introduce
// are resolved by the next curator run.
type Importer struct {
	config  *Config
	store   store.Store
	deriver *metadata.Deriver
	fs      adapter.Filesystem
	clock   adapter.Clock
}

// New creates a batch importer
func New(config *Config, st store.Store, deriver *metadata.Deriver, fs adapter.Filesystem, clock adapter.Clock) *Importer {
	return &Importer{
		config:  config,
		store:   st,
		deriver: deriver,
		fs:      fs,
		clock:   clock,
	}
}

// Run verifies the artwork set and inserts the token rows. A missing artwork
// directory or file is a fatal configuration error reported before anything
// is written.
func (im *Importer) Run(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx).With(
		zap.String("collection", im.config.Collection),
		zap.Int64("start_number", im.config.StartNumber),
		zap.Int64("count", im.config.Count),
	)

	if err := im.verifyArtwork(ctx); err != nil {
		return 0, err
	}

	owner, err := im.store.GetOrCreateUser(ctx, im.config.OwnerUsername)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve treasury user: %w", err)
	}

	collection, err := im.store.GetOrCreateCollection(ctx, im.config.Collection,
		fmt.Sprintf("The %s collection", im.config.Collection), owner.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve collection: %w", err)
	}

	nfts := make([]*schema.NFT, 0, im.config.Count)
	for n := im.config.StartNumber; n < im.config.StartNumber+im.config.Count; n++ {
		derived := im.deriver.Derive(n)

		attrJSON, err := json.Marshal(derived.Attributes)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal attributes for token %d: %w", n, err)
		}

		nfts = append(nfts, &schema.NFT{
			TokenID:      fmt.Sprintf("%s-%d", im.config.TokenPrefix, n),
			Name:         fmt.Sprintf("%s #%d", im.config.Collection, n),
			Description:  derived.Description,
			ImagePath:    im.imagePath(n),
			CollectionID: collection.ID,
			Rarity:       string(derived.Rarity),
			Attributes:   datatypes.JSON(attrJSON),
			Price:        derived.Price,
			ForSale:      im.config.ForSale,
			OwnerID:      owner.ID,
			MintedAt:     im.clock.Now(),
		})
	}

	if err := im.store.CreateNFTs(ctx, nfts); err != nil {
		return 0, fmt.Errorf("failed to insert minted tokens: %w", err)
	}

	log.Info("batch mint completed", zap.Int("minted", len(nfts)))
	return int64(len(nfts)), nil
}

// verifyArtwork checks the artwork directory and every expected artwork file
// before any row is written
func (im *Importer) verifyArtwork(ctx context.Context) error {
	info, err := im.fs.Stat(im.config.ImageDir)
	if err != nil {
		return fmt.Errorf("artwork directory %q is not available: %w", im.config.ImageDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("artwork path %q is not a directory", im.config.ImageDir)
	}

	pool := pond.NewPool(im.config.WorkerPoolSize, pond.WithContext(ctx))
	defer pool.StopAndWait()

	group := pool.NewGroup()
	for n := im.config.StartNumber; n < im.config.StartNumber+im.config.Count; n++ {
		group.SubmitErr(func() error {
			path := im.imagePath(n)
			if _, err := im.fs.Stat(path); err != nil {
				return fmt.Errorf("artwork file %q is missing: %w", path, err)
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}
	return nil
}

// imagePath returns the artwork path of a token number
func (im *Importer) imagePath(n int64) string {
	return filepath.Join(im.config.ImageDir, fmt.Sprintf("ape_%d.png", n))
}
