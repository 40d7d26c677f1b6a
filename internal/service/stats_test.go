package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raid-progress/internal/domain"
)

func eightBosses(defeated map[int]domain.Difficulty) []domain.GuildRaidEncounter {
	encounters := make([]domain.GuildRaidEncounter, 8)
	for i := range encounters {
		encounters[i].Slug = "boss"
		encounters[i].MaxDifficultyDefeated = defeated[i]
	}
	return encounters
}

func TestBuildStatistics(t *testing.T) {
	// three bosses topping out at normal, one at heroic
	encounters := eightBosses(map[int]domain.Difficulty{
		0: domain.DifficultyHeroic,
		1: domain.DifficultyNormal,
		2: domain.DifficultyNormal,
		3: domain.DifficultyNormal,
	})

	stats := BuildStatistics(encounters)
	require.Len(t, stats, 3)

	assert.Equal(t, domain.Statistic{Level: domain.DifficultyNormal, BossesKilled: 3, Summary: "3/8 N"}, stats[0])
	assert.Equal(t, domain.Statistic{Level: domain.DifficultyHeroic, BossesKilled: 1, Summary: "1/8 H"}, stats[1])
	assert.Equal(t, domain.Statistic{Level: domain.DifficultyMythic, BossesKilled: 0, Summary: "-"}, stats[2])
}

func TestOverallSummary(t *testing.T) {
	t.Run("highest difficulty with kills", func(t *testing.T) {
		stats := BuildStatistics(eightBosses(map[int]domain.Difficulty{
			0: domain.DifficultyHeroic,
			1: domain.DifficultyNormal,
		}))
		overall := OverallSummary(stats)
		assert.Equal(t, domain.DifficultyHeroic, overall.Level)
		assert.Equal(t, "1/8 H", overall.Summary)
	})

	t.Run("nothing down", func(t *testing.T) {
		stats := BuildStatistics(eightBosses(nil))
		overall := OverallSummary(stats)
		assert.Equal(t, domain.DifficultyNormal, overall.Level)
		assert.Equal(t, "-", overall.Summary)
	})
}

func TestCurrentProgression(t *testing.T) {
	pct := func(p float64) *float64 { return &p }

	t.Run("live heroic attempt", func(t *testing.T) {
		encounters := []domain.GuildRaidEncounter{
			{Name: "Vexie and the Geargrinders", MaxDifficultyDefeated: domain.DifficultyHeroic},
			{
				Name:                   "Mug'Zee, Heads of Security",
				MaxDifficultyDefeated:  domain.DifficultyNormal,
				MaxDifficultyAttempted: domain.DifficultyHeroic,
				LowestBossPercentage:   pct(34.5),
			},
		}
		assert.Equal(t, "H Mug'Zee=34.5%", CurrentProgression(encounters))
	})

	t.Run("lowest unfinished tier wins", func(t *testing.T) {
		encounters := []domain.GuildRaidEncounter{
			{
				Name:                   "The One-Armed Bandit",
				MaxDifficultyAttempted: domain.DifficultyNormal,
				LowestBossPercentage:   pct(12),
			},
			{
				Name:                   "Chrome King Gallywix",
				MaxDifficultyAttempted: domain.DifficultyHeroic,
				LowestBossPercentage:   pct(80),
			},
		}
		assert.Equal(t, "N One-Armed=12%", CurrentProgression(encounters))
	})

	t.Run("no live attempt", func(t *testing.T) {
		encounters := []domain.GuildRaidEncounter{
			{Name: "Vexie and the Geargrinders", MaxDifficultyDefeated: domain.DifficultyMythic},
		}
		assert.Empty(t, CurrentProgression(encounters))
	})
}

func TestShortenBossName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Vexie and the Geargrinders", "Vexie"},
		{"The Silken Court", "Silken"},
		{"Awakened Amalgam", "Amalgam"},
		{"Sikran, Captain of the Sureki", "Sikran"},
		{"Mug'Zee, Heads of Security", "Mug'Zee"},
		{"The", "The"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ShortenBossName(tt.input), "input %q", tt.input)
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "34.5", formatPercent(34.5))
	assert.Equal(t, "12", formatPercent(12))
	assert.Equal(t, "0.25", formatPercent(0.25))
}
