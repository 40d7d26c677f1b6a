// Package match fuzzy-matches boss and raid names across the raider.io and
// Warcraft Logs naming conventions. The two APIs disagree on punctuation and
// on how much of a boss title they keep ("Sikran" vs "Sikran, Captain of the
// Sureki"), so matching happens on normalized names with a directional
// preference order.
package match

import (
	"strings"
)

var punctuationReplacer = strings.NewReplacer(
	",", "",
	"'", "",
	"’", "",
	"‘", "",
	"\"", "",
	"-", "",
)

// Normalize lowercases a name, strips commas, apostrophes, quotes and
// hyphens, and collapses runs of whitespace.
func Normalize(name string) string {
	s := punctuationReplacer.Replace(strings.ToLower(name))
	return strings.Join(strings.Fields(s), " ")
}

// Encounter finds the candidate whose name best matches name. Tiers, in
// order: exact equality, candidate starts with name, name starts with
// candidate, either contains the other. The starts-with direction matters:
// it resolves abbreviations ("Sikran" -> "Sikran, Captain of the Sureki")
// before the weaker contains checks can pair bosses that merely share a
// substring. Returns -1 when nothing matches.
func Encounter(name string, candidates []string) int {
	normalized := Normalize(name)
	if normalized == "" {
		return -1
	}

	for i, c := range candidates {
		if Normalize(c) == normalized {
			return i
		}
	}
	for i, c := range candidates {
		if strings.HasPrefix(Normalize(c), normalized) {
			return i
		}
	}
	for i, c := range candidates {
		if strings.HasPrefix(normalized, Normalize(c)) {
			return i
		}
	}
	for i, c := range candidates {
		nc := Normalize(c)
		if strings.Contains(nc, normalized) || strings.Contains(normalized, nc) {
			return i
		}
	}
	return -1
}

// Zone finds the candidate zone name matching a raid name. Zone names vary
// less between the APIs, so only the exact and contains tiers apply.
func Zone(name string, candidates []string) int {
	normalized := Normalize(name)
	if normalized == "" {
		return -1
	}

	for i, c := range candidates {
		if Normalize(c) == normalized {
			return i
		}
	}
	for i, c := range candidates {
		nc := Normalize(c)
		if strings.Contains(nc, normalized) || strings.Contains(normalized, nc) {
			return i
		}
	}
	return -1
}
