package domain

import (
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"
)

// Rarity represents the scarcity tier of a token
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// rarityRanks maps each rarity to its ordinal rank, ascending by scarcity
var rarityRanks = map[Rarity]int{
	RarityCommon:    0,
	RarityUncommon:  1,
	RarityRare:      2,
	RarityEpic:      3,
	RarityLegendary: 4,
}

// Rank returns the ordinal rank of the rarity (legendary > epic > rare > uncommon > common).
// Unknown rarities rank below common so malformed rows always lose tie-breaks.
func (r Rarity) Rank() int {
	if rank, ok := rarityRanks[r]; ok {
		return rank
	}
	return -1
}

// IsValidRarity checks if a rarity belongs to the fixed enumeration
func IsValidRarity(r Rarity) bool {
	_, ok := rarityRanks[r]
	return ok
}

// Rarities returns all rarities in ascending rank order
func Rarities() []Rarity {
	return []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary}
}

// Attributes holds the fixed-shape attribute scores of a token.
// Every score is clamped to [1, 100].
type Attributes struct {
	Power   int `json:"power"`
	Agility int `json:"agility"`
	Wisdom  int `json:"wisdom"`
	Luck    int `json:"luck"`
}

// Valid checks that every attribute score lies in [1, 100]
func (a Attributes) Valid() bool {
	for _, score := range []int{a.Power, a.Agility, a.Wisdom, a.Luck} {
		if score < 1 || score > 100 {
			return false
		}
	}
	return true
}

// ClampScore clamps an attribute score into [1, 100]
func ClampScore(score int) int {
	if score < 1 {
		return 1
	}
	if score > 100 {
		return 100
	}
	return score
}

// RemovalReason identifies which pass flagged a row for removal
type RemovalReason string

const (
	// RemovalReasonIllegitimate marks rows that failed the collection classifier
	RemovalReasonIllegitimate RemovalReason = "illegitimate"
	// RemovalReasonDuplicateTokenID marks rows that lost a token_id dedup tie-break
	RemovalReasonDuplicateTokenID RemovalReason = "duplicate_token_id"
	// RemovalReasonDuplicateImagePath marks rows that lost an image_path dedup tie-break
	RemovalReasonDuplicateImagePath RemovalReason = "duplicate_image_path"
)

var tokenNumberPattern = regexp.MustCompile(`(\d+)\s*$`)

// TokenNumber extracts the trailing numeric component of a collection-prefixed
// token identifier (e.g. "BAYC-512" -> 512). The boolean is false when the
// identifier carries no trailing digits.
func TokenNumber(tokenID string) (int64, bool) {
	match := tokenNumberPattern.FindStringSubmatch(tokenID)
	if match == nil {
		return 0, false
	}
	n, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParsePrice parses a decimal-as-string price. Malformed or empty prices
// parse as zero so they always lose price tie-breaks.
func ParsePrice(price string) decimal.Decimal {
	d, err := decimal.NewFromString(price)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// IsValidPrice checks that a price string parses as a positive decimal
func IsValidPrice(price string) bool {
	d, err := decimal.NewFromString(price)
	if err != nil {
		return false
	}
	return d.IsPositive()
}
