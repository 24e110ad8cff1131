package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRarityRank(t *testing.T) {
	tests := []struct {
		name     string
		rarity   Rarity
		expected int
	}{
		{
			name:     "common ranks lowest of the enumeration",
			rarity:   RarityCommon,
			expected: 0,
		},
		{
			name:     "uncommon",
			rarity:   RarityUncommon,
			expected: 1,
		},
		{
			name:     "rare",
			rarity:   RarityRare,
			expected: 2,
		},
		{
			name:     "epic",
			rarity:   RarityEpic,
			expected: 3,
		},
		{
			name:     "legendary ranks highest",
			rarity:   RarityLegendary,
			expected: 4,
		},
		{
			name:     "empty rarity ranks below common",
			rarity:   Rarity(""),
			expected: -1,
		},
		{
			name:     "unknown rarity ranks below common",
			rarity:   Rarity("mythic"),
			expected: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.rarity.Rank())
		})
	}
}

func TestIsValidRarity(t *testing.T) {
	for _, r := range Rarities() {
		assert.True(t, IsValidRarity(r), "expected %q to be valid", r)
	}
	assert.False(t, IsValidRarity(Rarity("")))
	assert.False(t, IsValidRarity(Rarity("Legendary")))
	assert.False(t, IsValidRarity(Rarity("mythic")))
}

func TestRaritiesAscendingRank(t *testing.T) {
	rarities := Rarities()
	for i := 1; i < len(rarities); i++ {
		assert.Greater(t, rarities[i].Rank(), rarities[i-1].Rank())
	}
}

func TestAttributesValid(t *testing.T) {
	tests := []struct {
		name       string
		attributes Attributes
		expected   bool
	}{
		{
			name:       "all scores in range",
			attributes: Attributes{Power: 1, Agility: 50, Wisdom: 100, Luck: 73},
			expected:   true,
		},
		{
			name:       "zero score is invalid",
			attributes: Attributes{Power: 0, Agility: 50, Wisdom: 50, Luck: 50},
			expected:   false,
		},
		{
			name:       "score above 100 is invalid",
			attributes: Attributes{Power: 50, Agility: 101, Wisdom: 50, Luck: 50},
			expected:   false,
		},
		{
			name:       "negative score is invalid",
			attributes: Attributes{Power: 50, Agility: 50, Wisdom: -3, Luck: 50},
			expected:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.attributes.Valid())
		})
	}
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 1, ClampScore(-10))
	assert.Equal(t, 1, ClampScore(0))
	assert.Equal(t, 1, ClampScore(1))
	assert.Equal(t, 55, ClampScore(55))
	assert.Equal(t, 100, ClampScore(100))
	assert.Equal(t, 100, ClampScore(140))
}

func TestTokenNumber(t *testing.T) {
	tests := []struct {
		name     string
		tokenID  string
		expected int64
		ok       bool
	}{
		{
			name:     "collection-prefixed identifier",
			tokenID:  "BAYC-512",
			expected: 512,
			ok:       true,
		},
		{
			name:     "bare number",
			tokenID:  "42",
			expected: 42,
			ok:       true,
		},
		{
			name:     "trailing whitespace",
			tokenID:  "BAYC-7  ",
			expected: 7,
			ok:       true,
		},
		{
			name:     "digits only counted from the tail",
			tokenID:  "GEN2-APE-100",
			expected: 100,
			ok:       true,
		},
		{
			name:    "no digits at all",
			tokenID: "BAYC-",
			ok:      false,
		},
		{
			name:    "digits not at the tail",
			tokenID: "512-BAYC",
			ok:      false,
		},
		{
			name:    "empty identifier",
			tokenID: "",
			ok:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := TokenNumber(tt.tokenID)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, n)
			}
		})
	}
}

func TestParsePrice(t *testing.T) {
	assert.True(t, ParsePrice("100").Equal(ParsePrice("100.00")))
	assert.True(t, ParsePrice("0.5").GreaterThan(ParsePrice("0.25")))
	// Malformed and empty prices parse as zero so they lose tie-breaks.
	assert.True(t, ParsePrice("").IsZero())
	assert.True(t, ParsePrice("not-a-price").IsZero())
	assert.True(t, ParsePrice("1,000").IsZero())
}

func TestIsValidPrice(t *testing.T) {
	assert.True(t, IsValidPrice("100"))
	assert.True(t, IsValidPrice("0.01"))
	assert.False(t, IsValidPrice("0"))
	assert.False(t, IsValidPrice("-5"))
	assert.False(t, IsValidPrice(""))
	assert.False(t, IsValidPrice("banana"))
}
