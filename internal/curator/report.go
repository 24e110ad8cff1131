package curator

import (
	"fmt"
	"strings"
	"time"

	"github.com/apevault/nft-curator/internal/store"
)

// Summary holds the final statistics of one maintenance run
type Summary struct {
	RunID    string
	DryRun   bool
	Duration time.Duration

	NFTsBefore      int64
	TransfersBefore int64
	NFTsAfter       int64
	TransfersAfter  int64

	IllegitimateRemoved int64
	DuplicatesRemoved   int64
	TransfersReassigned int64
	TransfersDeleted    int64
	MetadataUpdated     int64

	ByCollection []store.CollectionCount
	ByRarity     []store.RarityCount
}

// Render formats the summary as the human-readable report printed to stdout
// at the end of a run
func (s *Summary) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Maintenance run %s", s.RunID)
	if s.DryRun {
		b.WriteString(" (dry run)")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "  duration: %s\n", s.Duration)
	fmt.Fprintf(&b, "  nfts:      %d -> %d (removed %d)\n", s.NFTsBefore, s.NFTsAfter, s.NFTsBefore-s.NFTsAfter)
	fmt.Fprintf(&b, "  transfers: %d -> %d (reassigned %d, deleted %d)\n",
		s.TransfersBefore, s.TransfersAfter, s.TransfersReassigned, s.TransfersDeleted)
	fmt.Fprintf(&b, "  removals:  %d illegitimate, %d duplicates\n", s.IllegitimateRemoved, s.DuplicatesRemoved)
	fmt.Fprintf(&b, "  metadata:  %d rows renormalized\n", s.MetadataUpdated)

	b.WriteString("  survivors by collection:\n")
	if len(s.ByCollection) == 0 {
		b.WriteString("    (none)\n")
	}
	for _, c := range s.ByCollection {
		fmt.Fprintf(&b, "    %-32s %d\n", c.Collection, c.Count)
	}

	b.WriteString("  survivors by rarity:\n")
	if len(s.ByRarity) == 0 {
		b.WriteString("    (none)\n")
	}
	for _, r := range s.ByRarity {
		fmt.Fprintf(&b, "    %-12s %d\n", r.Rarity, r.Count)
	}

	return b.String()
}
