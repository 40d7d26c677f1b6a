package domain

import (
	"time"
)

// Encounter is one raid boss, identified by the raider.io slug (stable
// across both APIs) and the Warcraft Logs numeric ID. ID is 0 when
// Warcraft Logs has no data for the boss yet; consumers must degrade
// rather than fail.
type Encounter struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	RSlug string `json:"rSlug"`
}

// RaidInfo is one raid tier's boss lineup. Built once per season by the
// season resolver and read-only afterwards.
type RaidInfo struct {
	Name       string      `json:"name"`
	Slug       string      `json:"slug"`
	Encounters []Encounter `json:"encounters"`
}

// SeasonData is the resolved current season: the active raids plus the
// query window for combat-log fetches.
type SeasonData struct {
	Raids     []RaidInfo
	StartDate time.Time

	// EndDate is nil for an ongoing season.
	EndDate *time.Time
}

// RaidBySlug returns the raid with the given slug, or nil.
func (s *SeasonData) RaidBySlug(slug string) *RaidInfo {
	for i := range s.Raids {
		if s.Raids[i].Slug == slug {
			return &s.Raids[i]
		}
	}
	return nil
}

// SyntheticGuildRID marks a guild that only exists on Warcraft Logs and
// cannot be resolved through raider.io. Such guilds are reconciled from
// combat-log fights alone.
const SyntheticGuildRID = 0

// GuildInfo identifies one raiding guild. RID is the raider.io guild ID,
// SyntheticGuildRID for logs-only teams.
type GuildInfo struct {
	RID         int    `json:"rId"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Slug        string `json:"slug"`
	Realm       string `json:"realm"`
	Region      string `json:"region"`
	Faction     string `json:"faction"`
	ProfileURL  string `json:"profileUrl,omitempty"`
}

// IsSynthetic reports whether the guild has no raider.io presence.
func (g GuildInfo) IsSynthetic() bool {
	return g.RID == SyntheticGuildRID
}

// FeedName is the name shown in the event feed.
func (g GuildInfo) FeedName() string {
	if g.DisplayName != "" {
		return g.DisplayName
	}
	return g.Name
}

// GuildRaidEncounter is the reconciled result for one boss and one guild:
// the highest difficulty defeated, the best unresolved attempt, and the
// correlated Warcraft Logs links when the guild's uploads line up.
//
// Invariant: when MaxDifficultyAttempted is set, its rank is >= the rank
// of MaxDifficultyDefeated. Records that would violate this are discarded
// during reconciliation, not emitted.
type GuildRaidEncounter struct {
	EncounterID            int        `json:"encounterID"`
	Slug                   string     `json:"slug"`
	Name                   string     `json:"name"`
	MaxDifficultyDefeated  Difficulty `json:"maxDifficultyDefeated,omitempty"`
	DefeatedAt             *time.Time `json:"defeatedAt,omitempty"`
	MaxDifficultyAttempted Difficulty `json:"maxDifficultyAttempted,omitempty"`
	LowestBossPercentage   *float64   `json:"lowestBossPercentage,omitempty"`
	AttemptedAt            *time.Time `json:"attemptedAt,omitempty"`
	WlogKillURL            string     `json:"wlogKillUrl,omitempty"`
	WlogBestPullURL        string     `json:"wlogBestPullUrl,omitempty"`
}

// Statistic is the kill count for one difficulty, with its display summary
// ("3/8 N", or "-" when nothing is down).
type Statistic struct {
	Level        Difficulty `json:"level"`
	BossesKilled int        `json:"bossesKilled"`
	Summary      string     `json:"summary"`
}

// GuildRaidProgress is one guild's full reconciled progress for a raid.
type GuildRaidProgress struct {
	Guild          GuildInfo            `json:"guild"`
	RaidEncounters []GuildRaidEncounter `json:"raidEncounters"`
	OverallSummary Statistic            `json:"overallSummary"`
}

// GuildRaidStatistics is the lean per-guild shape used by the summary report.
type GuildRaidStatistics struct {
	Guild              GuildInfo   `json:"guild"`
	OverallSummary     Statistic   `json:"overallSummary"`
	TotalBosses        int         `json:"totalBosses"`
	Summaries          []Statistic `json:"summaries"`
	CurrentProgression string      `json:"currentProgression,omitempty"`
}

// ProgressReport is the full guild-by-encounter report for one raid.
type ProgressReport struct {
	ID              string              `json:"id"`
	Raid            RaidInfo            `json:"raid"`
	RaidProgression []GuildRaidProgress `json:"raidProgression"`
	RecentEvents    []RaidProgressEvent `json:"recentEvents"`
	CreatedOn       time.Time           `json:"createdOn"`
}

// SummaryReport is the lightweight statistics report for one raid.
type SummaryReport struct {
	ID           string                `json:"id"`
	Raid         RaidInfo              `json:"raid"`
	Summaries    []GuildRaidStatistics `json:"summaries"`
	RecentEvents []RaidProgressEvent   `json:"recentEvents"`
	CreatedOn    time.Time             `json:"createdOn"`
}
