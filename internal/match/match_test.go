package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "Nerub-ar Palace", "nerubar palace"},
		{"strips commas", "Sikran, Captain of the Sureki", "sikran captain of the sureki"},
		{"strips ascii apostrophe", "Queen Ansurek's Court", "queen ansureks court"},
		{"strips unicode apostrophe", "Mug’Zee", "mugzee"},
		{"collapses whitespace", "  The   Silken  Court ", "the silken court"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestEncounter(t *testing.T) {
	candidates := []string{
		"Ulgrax the Devourer",
		"The Bloodbound Horror",
		"Sikran, Captain of the Sureki",
		"Rasha'nan",
		"Broodtwister Ovi'nax",
		"Nexus-Princess Ky'veza",
		"The Silken Court",
		"Queen Ansurek",
	}

	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"exact", "Queen Ansurek", 7},
		{"exact ignoring punctuation", "Rashanan", 3},
		{"abbreviated prefix", "Sikran", 2},
		{"longer than candidate", "Queen Ansurek the Ascended", 7},
		{"contains", "Silken Court", 6},
		{"no match", "Chrome King Gallywix", -1},
		{"empty", "", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Encounter(tt.input, candidates))
		})
	}
}

func TestEncounterPrefersExactOverPrefix(t *testing.T) {
	// the exact tier runs over all candidates before any prefix match, so a
	// later exact candidate beats an earlier prefix one
	candidates := []string{"Silken Courtyard", "Silken"}
	assert.Equal(t, 1, Encounter("Silken", candidates))
}

func TestZone(t *testing.T) {
	candidates := []string{
		"Nerub-ar Palace",
		"Blackrock Depths",
		"Liberation of Undermine",
	}

	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"exact", "Liberation of Undermine", 2},
		{"punctuation differences", "Nerubar Palace", 0},
		{"contains", "Undermine", 2},
		{"no prefix tier", "Blackrock", 1}, // contains still finds it
		{"no match", "Manaforge Omega", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Zone(tt.input, candidates))
		})
	}
}
