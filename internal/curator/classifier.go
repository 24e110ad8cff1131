package curator

import (
	"strings"
)

// ClassifierPatterns parameterizes the classifier with explicit pattern sets
// so all cleanup entry points share one decision policy.
type ClassifierPatterns struct {
	// AllowPatterns are case-insensitive image-path substrings marking
	// canonical-collection artwork
	AllowPatterns []string
	// DenyPatterns are generic-content markers; a deny match always overrides
	// an allow match
	DenyPatterns []string
	// NameSignals qualify a row by name or collection name when no image path
	// is available
	NameSignals []string
}

// Classifier decides whether a token row is an authentic member of the
// canonical collection. It is a pure predicate: absent data means "not
// legitimate", never an error.
type Classifier struct {
	allow       []string
	deny        []string
	nameSignals []string
}

// NewClassifier creates a classifier from the given pattern sets
func NewClassifier(patterns ClassifierPatterns) *Classifier {
	return &Classifier{
		allow:       lowerAll(patterns.AllowPatterns),
		deny:        lowerAll(patterns.DenyPatterns),
		nameSignals: lowerAll(patterns.NameSignals),
	}
}

// IsLegitimate reports whether a row belongs to the canonical collection.
//
// Path evidence is authoritative: when image_path is present, the row
// qualifies only through an allow-pattern match on the path, and a
// deny-pattern match on the path disqualifies it regardless of anything
// else. Name and collection-name signals are a fallback used only when the
// path is empty.
func (c *Classifier) IsLegitimate(name, imagePath, collectionName string) bool {
	if imagePath != "" {
		if matchesAny(imagePath, c.deny) {
			return false
		}
		return matchesAny(imagePath, c.allow)
	}

	return matchesAny(name, c.nameSignals) || matchesAny(collectionName, c.nameSignals)
}

// matchesAny reports whether value contains any of the given lowercased
// patterns, case-insensitively. Empty values never match.
func matchesAny(value string, patterns []string) bool {
	if value == "" {
		return false
	}
	lowered := strings.ToLower(value)
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		if strings.Contains(lowered, pattern) {
			return true
		}
	}
	return false
}

func lowerAll(patterns []string) []string {
	lowered := make([]string, 0, len(patterns))
	for _, p := range patterns {
		lowered = append(lowered, strings.ToLower(p))
	}
	return lowered
}
