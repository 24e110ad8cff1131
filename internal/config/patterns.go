package config

// Default pattern sets for the canonical primate collection. These merge the
// pattern lists that previously drifted across several one-off cleanup
// scripts; overriding any list via config replaces it wholesale.
var (
	// DefaultAllowPatterns are case-insensitive substrings of image paths that
	// mark a row as canonical-collection artwork. The ape fragment is anchored
	// on a path separator; a bare "ape_" would also match "landscape_".
	DefaultAllowPatterns = []string{
		"bored_ape",
		"boredape",
		"bayc",
		"/apes/",
		"/ape_",
		"primate",
	}

	// DefaultDenyPatterns are generic-content markers. A deny match always
	// overrides an allow match.
	DefaultDenyPatterns = []string{
		"core",
		"human",
		"person",
		"generated",
		"placeholder",
		"test",
		"random",
		"svg",
		"face",
	}

	// DefaultNameSignals qualify a row by name or collection name when no
	// image path is available.
	DefaultNameSignals = []string{
		"bored ape",
		"bayc",
		"ape",
	}
)
