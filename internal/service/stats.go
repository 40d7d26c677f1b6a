package service

import (
	"fmt"
	"strconv"
	"strings"

	"raid-progress/internal/domain"
)

// BuildStatistics condenses reconciled encounters into per-difficulty kill
// counts. Each boss counts once, at the highest difficulty it went down on.
func BuildStatistics(encounters []domain.GuildRaidEncounter) []domain.Statistic {
	total := len(encounters)

	stats := make([]domain.Statistic, 0, len(domain.Difficulties))
	for _, d := range domain.Difficulties {
		killed := 0
		for _, enc := range encounters {
			if enc.MaxDifficultyDefeated == d {
				killed++
			}
		}
		stats = append(stats, domain.Statistic{
			Level:        d,
			BossesKilled: killed,
			Summary:      summaryString(killed, total, d),
		})
	}
	return stats
}

// OverallSummary picks the statistic shown next to the guild name: the
// highest difficulty with at least one kill. A guild with nothing down
// shows the dash.
func OverallSummary(stats []domain.Statistic) domain.Statistic {
	overall := stats[0]
	for _, s := range stats {
		if s.BossesKilled > 0 {
			overall = s
		}
	}
	return overall
}

func summaryString(killed, total int, d domain.Difficulty) string {
	if killed == 0 {
		return "-"
	}
	return fmt.Sprintf("%d/%d %s", killed, total, d.ShortCode())
}

// CurrentProgression formats the boss a guild is actively working on, e.g.
// "H Mug'Zee=34.5%". Scans difficulties bottom-up so the next unfinished
// tier is the one reported; empty when the guild has no live attempt.
func CurrentProgression(encounters []domain.GuildRaidEncounter) string {
	for _, d := range domain.Difficulties {
		for _, enc := range encounters {
			if enc.MaxDifficultyAttempted != d || enc.LowestBossPercentage == nil {
				continue
			}
			if enc.MaxDifficultyDefeated != "" && enc.MaxDifficultyDefeated.Rank() >= d.Rank() {
				continue
			}
			return fmt.Sprintf("%s %s=%s%%",
				d.ShortCode(),
				ShortenBossName(enc.Name),
				formatPercent(*enc.LowestBossPercentage))
		}
	}
	return ""
}

// ShortenBossName reduces a full boss title to the name raiders use in
// chat: commas dropped, leading articles dropped, first remaining word.
// "The Silken Court" becomes "Silken", "Vexie and the Geargrinders"
// becomes "Vexie".
func ShortenBossName(name string) string {
	name = strings.ReplaceAll(name, ",", "")
	words := strings.Fields(name)
	if len(words) == 0 {
		return name
	}
	if len(words) > 1 && (words[0] == "The" || words[0] == "Awakened") {
		words = words[1:]
	}
	return words[0]
}

// formatPercent renders a boss percentage without trailing zeros, the way
// the upstream APIs report it.
func formatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
