package curator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/apevault/nft-curator/internal/adapter"
	"github.com/apevault/nft-curator/internal/domain"
	"github.com/apevault/nft-curator/internal/logger"
	"github.com/apevault/nft-curator/internal/metadata"
	"github.com/apevault/nft-curator/internal/store"
	"github.com/apevault/nft-curator/internal/store/schema"
)

// Pipeline runs one full maintenance pass over the token store: classify,
// deduplicate, repair references, delete, renormalize metadata, report.
// Each logical pass executes as one store transaction, so a failed run
// leaves the store exactly as it was.
type Pipeline struct {
	store      store.Store
	classifier *Classifier
	deriver    *metadata.Deriver
	clock      adapter.Clock
	dryRun     bool
}

// NewPipeline creates a maintenance pipeline. With dryRun set, every
// decision is made and logged but no mutation reaches the store.
func NewPipeline(st store.Store, classifier *Classifier, deriver *metadata.Deriver, clock adapter.Clock, dryRun bool) *Pipeline {
	return &Pipeline{
		store:      st,
		classifier: classifier,
		deriver:    deriver,
		clock:      clock,
		dryRun:     dryRun,
	}
}

// Run executes the full pipeline and returns the run summary. Re-running on
// an already-curated store removes and reassigns nothing.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	start := p.clock.Now()
	runID := ulid.MustNewDefault(start).String()
	log := logger.FromContext(ctx).With(
		zap.String("run_id", runID),
		zap.Bool("dry_run", p.dryRun),
	)

	log.Info("starting maintenance run", zap.String("derivation_profile", string(p.deriver.Profile())))

	summary := &Summary{
		RunID:  runID,
		DryRun: p.dryRun,
	}

	var err error
	if summary.NFTsBefore, err = p.store.CountNFTs(ctx); err != nil {
		return nil, fmt.Errorf("failed to count nfts before run: %w", err)
	}
	if summary.TransfersBefore, err = p.store.CountTransfers(ctx); err != nil {
		return nil, fmt.Errorf("failed to count transfers before run: %w", err)
	}

	rows, err := p.store.ListNFTs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load token set: %w", err)
	}

	legitimate, err := p.classifyPass(ctx, log, rows, summary)
	if err != nil {
		return nil, err
	}

	removed, err := p.dedupPass(ctx, log, legitimate, summary)
	if err != nil {
		return nil, err
	}

	if err := p.renormalizePass(ctx, log, legitimate, removed, summary); err != nil {
		return nil, err
	}

	if summary.NFTsAfter, err = p.store.CountNFTs(ctx); err != nil {
		return nil, fmt.Errorf("failed to count nfts after run: %w", err)
	}
	if summary.TransfersAfter, err = p.store.CountTransfers(ctx); err != nil {
		return nil, fmt.Errorf("failed to count transfers after run: %w", err)
	}
	if summary.ByRarity, err = p.store.RarityBreakdown(ctx); err != nil {
		return nil, fmt.Errorf("failed to get rarity breakdown: %w", err)
	}
	if summary.ByCollection, err = p.store.CollectionBreakdown(ctx); err != nil {
		return nil, fmt.Errorf("failed to get collection breakdown: %w", err)
	}

	summary.Duration = p.clock.Since(start)
	log.Info("maintenance run completed",
		zap.Duration("duration", summary.Duration),
		zap.Int64("nfts_before", summary.NFTsBefore),
		zap.Int64("nfts_after", summary.NFTsAfter),
		zap.Int64("illegitimate_removed", summary.IllegitimateRemoved),
		zap.Int64("duplicates_removed", summary.DuplicatesRemoved),
		zap.Int64("transfers_reassigned", summary.TransfersReassigned),
		zap.Int64("metadata_updated", summary.MetadataUpdated),
	)

	return summary, nil
}

// classifyPass flags and deletes rows that fail the collection-membership
// predicate, together with their transfer history, in one transaction.
// Returns the remaining legitimate rows.
func (p *Pipeline) classifyPass(ctx context.Context, log *zap.Logger, rows []*schema.NFT, summary *Summary) ([]*schema.NFT, error) {
	var illegitimate []int64
	legitimate := make([]*schema.NFT, 0, len(rows))

	for _, row := range rows {
		collectionName := ""
		if row.Collection != nil {
			collectionName = row.Collection.Name
		}

		if p.classifier.IsLegitimate(row.Name, row.ImagePath, collectionName) {
			legitimate = append(legitimate, row)
			continue
		}

		illegitimate = append(illegitimate, row.ID)
		log.Info("flagged row for removal",
			zap.Int64("id", row.ID),
			zap.String("token_id", row.TokenID),
			zap.String("image_path", row.ImagePath),
			zap.String("reason", string(domain.RemovalReasonIllegitimate)),
		)
	}

	summary.IllegitimateRemoved = int64(len(illegitimate))

	if p.dryRun || len(illegitimate) == 0 {
		return legitimate, nil
	}

	deletedNFTs, deletedTransfers, err := p.store.PurgeNFTs(ctx, illegitimate)
	if err != nil {
		return nil, fmt.Errorf("classification pass failed: %w", err)
	}
	summary.TransfersDeleted += deletedTransfers
	log.Info("classification pass committed",
		zap.Int64("nfts_deleted", deletedNFTs),
		zap.Int64("transfers_deleted", deletedTransfers),
	)

	return legitimate, nil
}

// dedupPass resolves duplicate groups by token_id and then by image_path,
// reassigns transfer history to the survivors, and deletes the losers, all
// in one transaction. Returns the set of removed ids.
func (p *Pipeline) dedupPass(ctx context.Context, log *zap.Logger, legitimate []*schema.NFT, summary *Summary) (map[int64]bool, error) {
	candidates := make([]Candidate, 0, len(legitimate))
	for _, row := range legitimate {
		candidates = append(candidates, Candidate{
			ID:        row.ID,
			TokenID:   row.TokenID,
			ImagePath: row.ImagePath,
			Rarity:    domain.Rarity(row.Rarity),
			Price:     row.Price,
			MintedAt:  row.MintedAt,
		})
	}

	removed := make(map[int64]bool)
	var removals []store.Removal

	record := func(dup Duplicate, reason domain.RemovalReason) {
		removed[dup.RemovedID] = true
		survivorID := dup.SurvivorID
		removals = append(removals, store.Removal{
			RemovedID:  dup.RemovedID,
			SurvivorID: &survivorID,
			TokenID:    dup.TokenID,
			Reason:     reason,
		})
		log.Info("flagged duplicate for removal",
			zap.Int64("id", dup.RemovedID),
			zap.Int64("survivor_id", dup.SurvivorID),
			zap.String("token_id", dup.TokenID),
			zap.String("dedup_key", string(dup.Key)),
			zap.String("group_value", dup.GroupValue),
			zap.String("reason", string(reason)),
		)
	}

	for _, dup := range Deduplicate(candidates, DedupKeyTokenID) {
		record(dup, domain.RemovalReasonDuplicateTokenID)
	}

	// The image_path pass only sees rows that survived the token_id pass, so
	// the two passes never flag the same row twice.
	remaining := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if !removed[c.ID] {
			remaining = append(remaining, c)
		}
	}
	for _, dup := range Deduplicate(remaining, DedupKeyImagePath) {
		record(dup, domain.RemovalReasonDuplicateImagePath)
	}

	summary.DuplicatesRemoved = int64(len(removals))

	if p.dryRun || len(removals) == 0 {
		return removed, nil
	}

	reassigned, deleted, err := p.store.ReassignAndPurge(ctx, removals)
	if err != nil {
		return nil, fmt.Errorf("dedup pass failed: %w", err)
	}
	summary.TransfersReassigned = reassigned
	log.Info("dedup pass committed",
		zap.Int64("nfts_deleted", deleted),
		zap.Int64("transfers_reassigned", reassigned),
	)

	return removed, nil
}

// renormalizePass re-derives metadata for every surviving row and writes back
// the rows that drifted. It runs in its own transaction: it only updates
// survivors and is independently idempotent.
func (p *Pipeline) renormalizePass(ctx context.Context, log *zap.Logger, legitimate []*schema.NFT, removed map[int64]bool, summary *Summary) error {
	var updates []store.MetadataUpdate

	for _, row := range legitimate {
		if removed[row.ID] {
			continue
		}

		tokenNumber, ok := domain.TokenNumber(row.TokenID)
		if !ok {
			log.Warn("token_id has no numeric component, skipping renormalization",
				zap.Int64("id", row.ID),
				zap.String("token_id", row.TokenID),
			)
			continue
		}

		derived := p.deriver.Derive(tokenNumber)
		if metadataMatches(row, derived) {
			continue
		}

		attrJSON, err := json.Marshal(derived.Attributes)
		if err != nil {
			return fmt.Errorf("failed to marshal attributes for nft %d: %w", row.ID, err)
		}

		updates = append(updates, store.MetadataUpdate{
			ID:          row.ID,
			Rarity:      string(derived.Rarity),
			Price:       derived.Price,
			Description: derived.Description,
			Attributes:  datatypes.JSON(attrJSON),
		})
		log.Debug("renormalizing metadata",
			zap.Int64("id", row.ID),
			zap.String("token_id", row.TokenID),
			zap.String("rarity", string(derived.Rarity)),
			zap.String("price", derived.Price),
		)
	}

	summary.MetadataUpdated = int64(len(updates))

	if p.dryRun || len(updates) == 0 {
		return nil
	}

	updated, err := p.store.UpdateNFTMetadata(ctx, updates)
	if err != nil {
		return fmt.Errorf("renormalization pass failed: %w", err)
	}
	log.Info("renormalization pass committed", zap.Int64("rows_updated", updated))

	return nil
}

// metadataMatches reports whether a row already carries exactly the derived
// metadata. Prices compare numerically so "100" and "100.00" do not churn.
func metadataMatches(row *schema.NFT, derived metadata.Metadata) bool {
	if domain.Rarity(row.Rarity) != derived.Rarity {
		return false
	}
	if !domain.ParsePrice(row.Price).Equal(domain.ParsePrice(derived.Price)) {
		return false
	}
	if row.Description != derived.Description {
		return false
	}

	var attrs domain.Attributes
	if err := json.Unmarshal(row.Attributes, &attrs); err != nil {
		return false
	}
	return attrs == derived.Attributes
}
