package service

import (
	"sort"
	"time"

	"raid-progress/internal/constants"
	"raid-progress/internal/domain"
)

// EventsForGuild derives feed events from one guild's reconciled
// encounters: a kill event per defeated boss, a best-pull event per boss
// still unkilled but attempted. Attempts without a known start time fall
// back to now so they still surface at the top of the feed.
func EventsForGuild(guild domain.GuildInfo, raid *domain.RaidInfo, encounters []domain.GuildRaidEncounter, now time.Time) []domain.RaidProgressEvent {
	var events []domain.RaidProgressEvent

	for _, enc := range encounters {
		if enc.DefeatedAt != nil {
			events = append(events, domain.KillEvent{
				GuildName:    guild.FeedName(),
				RaidName:     raid.Name,
				BossName:     enc.Name,
				DateOccurred: *enc.DefeatedAt,
			})
			continue
		}

		if enc.LowestBossPercentage != nil {
			date := now
			if enc.AttemptedAt != nil {
				date = *enc.AttemptedAt
			}
			events = append(events, domain.BestEvent{
				GuildName:        guild.FeedName(),
				RaidName:         raid.Name,
				BossName:         enc.Name,
				LowestPercentage: *enc.LowestBossPercentage,
				DateOccurred:     date,
			})
		}
	}

	return events
}

// RecentEvents sorts the merged feed newest-first and caps it at the feed
// size. Stable so events sharing a timestamp keep roster order.
func RecentEvents(events []domain.RaidProgressEvent) []domain.RaidProgressEvent {
	sorted := make([]domain.RaidProgressEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date().After(sorted[j].Date())
	})

	if len(sorted) > constants.RecentEventLimit {
		sorted = sorted[:constants.RecentEventLimit]
	}
	return sorted
}
