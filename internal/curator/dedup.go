package curator

import (
	"sort"
	"time"

	"github.com/apevault/nft-curator/internal/domain"
)

// DedupKey selects which field groups records into logical-identity groups.
// The two key modes run as distinguishable passes and are audited separately.
type DedupKey string

const (
	// DedupKeyTokenID groups by the business token identifier
	DedupKeyTokenID DedupKey = "token_id"
	// DedupKeyImagePath groups by artwork path, catching distinct token_ids
	// that erroneously share art
	DedupKeyImagePath DedupKey = "image_path"
)

// Candidate is the projection of a token row the deduplicator needs
type Candidate struct {
	ID        int64
	TokenID   string
	ImagePath string
	Rarity    domain.Rarity
	Price     string
	MintedAt  time.Time
}

// Duplicate records one losing member of a duplicate group together with the
// group's survivor
type Duplicate struct {
	RemovedID  int64
	SurvivorID int64
	Key        DedupKey
	GroupValue string
	TokenID    string
}

// Deduplicate partitions records into survivors and duplicates so that
// survivors have pairwise-distinct values of the grouping key. Exactly one
// member of each group survives, selected by the tie-break chain:
//
//  1. higher rarity rank
//  2. higher numeric price
//  3. more recent minted_at (token_id mode only)
//  4. lowest id
//
// The final rule is total, so the result is deterministic for any input and
// re-running on the survivor set removes nothing.
func Deduplicate(records []Candidate, key DedupKey) []Duplicate {
	// Group in first-seen order so the output order is stable.
	var order []string
	groups := make(map[string][]Candidate)
	for _, record := range records {
		value := groupValue(record, key)
		if value == "" {
			// Rows without the grouping key have no logical identity to
			// collide on; they always survive.
			continue
		}
		if _, seen := groups[value]; !seen {
			order = append(order, value)
		}
		groups[value] = append(groups[value], record)
	}

	var duplicates []Duplicate
	for _, value := range order {
		group := groups[value]
		if len(group) < 2 {
			continue
		}

		sorted := make([]Candidate, len(group))
		copy(sorted, group)
		sort.Slice(sorted, func(i, j int) bool {
			return beats(sorted[i], sorted[j], key)
		})

		survivor := sorted[0]
		for _, loser := range sorted[1:] {
			duplicates = append(duplicates, Duplicate{
				RemovedID:  loser.ID,
				SurvivorID: survivor.ID,
				Key:        key,
				GroupValue: value,
				TokenID:    loser.TokenID,
			})
		}
	}

	return duplicates
}

// beats reports whether a wins the tie-break against b
func beats(a, b Candidate, key DedupKey) bool {
	if a.Rarity.Rank() != b.Rarity.Rank() {
		return a.Rarity.Rank() > b.Rarity.Rank()
	}

	priceA, priceB := domain.ParsePrice(a.Price), domain.ParsePrice(b.Price)
	if !priceA.Equal(priceB) {
		return priceA.GreaterThan(priceB)
	}

	if key == DedupKeyTokenID && !a.MintedAt.Equal(b.MintedAt) {
		return a.MintedAt.After(b.MintedAt)
	}

	return a.ID < b.ID
}

func groupValue(record Candidate, key DedupKey) string {
	if key == DedupKeyImagePath {
		return record.ImagePath
	}
	return record.TokenID
}
