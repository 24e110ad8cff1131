package metadata

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/apevault/nft-curator/internal/domain"
)

// Profile selects the rarity-seed constant of the derivation. The two
// profiles produce different but equally valid assignments; a deployment
// must pick one and apply it uniformly so renormalization stays idempotent.
type Profile string

const (
	// ProfileBatch is the canonical batch-import profile (rarity seed 13)
	ProfileBatch Profile = "batch"
	// ProfileMint is the mint-time profile (rarity seed 1)
	ProfileMint Profile = "mint"
)

// raritySeed returns the multiplier applied to the token number when
// deriving the rarity roll
func (p Profile) raritySeed() float64 {
	if p == ProfileMint {
		return 1
	}
	return 13
}

// Fixed seeds for the jitter and per-attribute rolls. These are shared by
// both profiles so price, attributes and description depend only on the
// token number.
const (
	priceJitterSeed = 13
	descriptionSeed = 7

	powerSeed   = 11
	agilitySeed = 23
	wisdomSeed  = 37
	luckSeed    = 59
)

// priceBases are the per-rarity base prices before jitter
var priceBases = map[domain.Rarity]int64{
	domain.RarityLegendary: 200000,
	domain.RarityEpic:      40000,
	domain.RarityRare:      5000,
	domain.RarityUncommon:  500,
	domain.RarityCommon:    20,
}

// fallbackPriceBase applies when the rarity is outside the enumeration
const fallbackPriceBase int64 = 10

// attributeBases are the per-rarity base attribute scores
var attributeBases = map[domain.Rarity]int{
	domain.RarityLegendary: 85,
	domain.RarityEpic:      75,
	domain.RarityRare:      65,
	domain.RarityUncommon:  55,
	domain.RarityCommon:    45,
}

// fallbackAttributeBase applies when the rarity is outside the enumeration
const fallbackAttributeBase = 40

// descriptionPools holds the fixed 3-string flavor-text pool per rarity
var descriptionPools = map[domain.Rarity][3]string{
	domain.RarityLegendary: {
		"A one-of-a-kind alpha of the troop, spoken of in hushed tones across the swamp.",
		"Forged in the oldest corner of the jungle, this ape answers to no one.",
		"The stuff of campfire legends; few collectors have ever seen one up close.",
	},
	domain.RarityEpic: {
		"A battle-scarred veteran whose glare alone clears the watering hole.",
		"Carries the scent of thunderstorms and expensive bananas.",
		"Its portrait hangs in the grand hall of the troop, slightly crooked.",
	},
	domain.RarityRare: {
		"A sharp-eyed forager with a taste for shiny things and sharper deals.",
		"Known across three territories for winning staring contests.",
		"Keeps a private stash nobody has ever found.",
	},
	domain.RarityUncommon: {
		"A dependable member of the troop with a few tricks up its fur.",
		"Climbs faster than most and brags about it constantly.",
		"Has a knack for showing up right before the good fruit drops.",
	},
	domain.RarityCommon: {
		"A cheerful everyday ape, happy to swing along with the crowd.",
		"Nothing fancy, but loyal to the last banana.",
		"Blends into the canopy; occasionally waves at passing collectors.",
	},
}

// Metadata is the deterministically derived metadata of a token
type Metadata struct {
	Rarity      domain.Rarity
	Price       string
	Description string
	Attributes  domain.Attributes
}

// Deriver computes rarity, price, description and attribute scores as a pure
// function of the numeric token identifier
type Deriver struct {
	profile Profile
}

// NewDeriver creates a deriver for the given profile
func NewDeriver(profile Profile) *Deriver {
	return &Deriver{profile: profile}
}

// Profile returns the deriver's profile
func (d *Deriver) Profile() Profile {
	return d.profile
}

// Derive computes the full metadata of a token number. Identical inputs
// always yield identical outputs, which is what makes renormalization
// idempotent.
func (d *Deriver) Derive(tokenNumber int64) Metadata {
	rarity := d.rarity(tokenNumber)
	return Metadata{
		Rarity:      rarity,
		Price:       derivePrice(tokenNumber, rarity),
		Description: deriveDescription(tokenNumber, rarity),
		Attributes:  deriveAttributes(tokenNumber, rarity),
	}
}

// rarity maps a pseudo-uniform roll in [0,100) onto the cumulative rarity
// thresholds: 5% legendary, 10% epic, 20% rare, 30% uncommon, 35% common.
func (d *Deriver) rarity(tokenNumber int64) domain.Rarity {
	x := math.Sin(float64(tokenNumber)*d.profile.raritySeed()) * 10000
	roll := math.Mod(math.Abs(x), 100)

	switch {
	case roll < 5:
		return domain.RarityLegendary
	case roll < 15:
		return domain.RarityEpic
	case roll < 35:
		return domain.RarityRare
	case roll < 65:
		return domain.RarityUncommon
	default:
		return domain.RarityCommon
	}
}

// derivePrice applies the jitter factor in [0.8, 1.2] to the rarity base
// price and rounds to the nearest integer
func derivePrice(tokenNumber int64, rarity domain.Rarity) string {
	base, ok := priceBases[rarity]
	if !ok {
		base = fallbackPriceBase
	}

	jitter := 0.8 + math.Abs(math.Sin(float64(tokenNumber)*priceJitterSeed))*0.4
	price := int64(math.Round(float64(base) * jitter))
	return decimal.NewFromInt(price).String()
}

// deriveAttributes rolls each attribute from the rarity base with its own
// seed and clamps to [1, 100]
func deriveAttributes(tokenNumber int64, rarity domain.Rarity) domain.Attributes {
	base, ok := attributeBases[rarity]
	if !ok {
		base = fallbackAttributeBase
	}

	roll := func(seed float64) int {
		offset := int(math.Floor(math.Sin(float64(tokenNumber)*seed) * 15))
		return domain.ClampScore(base + offset)
	}

	return domain.Attributes{
		Power:   roll(powerSeed),
		Agility: roll(agilitySeed),
		Wisdom:  roll(wisdomSeed),
		Luck:    roll(luckSeed),
	}
}

// deriveDescription selects deterministically from the rarity's fixed pool
func deriveDescription(tokenNumber int64, rarity domain.Rarity) string {
	pool, ok := descriptionPools[rarity]
	if !ok {
		pool = descriptionPools[domain.RarityCommon]
	}

	poolSize := float64(len(pool))
	idx := int(math.Abs(math.Floor(math.Sin(float64(tokenNumber)*descriptionSeed)*poolSize))) % len(pool)
	return pool[idx]
}
