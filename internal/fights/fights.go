// Package fights flattens raw Warcraft Logs report data into uniform
// per-attempt records and defines the canonical best-pull ordering every
// "best attempt" selection in the engine derives from.
package fights

import (
	"fmt"
	"sort"
	"time"

	"raid-progress/internal/api"
)

// FlattenedFight is one combat-log attempt with absolute timestamps and a
// deep link into the report. Derived and ephemeral: recomputed on every
// reconciliation pass.
type FlattenedFight struct {
	Code            string
	URL             string
	EncounterID     int
	Name            string
	StartTime       time.Time
	EndTime         time.Time
	ReportStartTime time.Time
	ReportEndTime   time.Time
	Difficulty      int
	Kill            bool
	BossPercentage  float64
	FightPercentage float64
}

// FightMap groups fights by Warcraft Logs encounter ID.
type FightMap map[int][]FlattenedFight

// BestPullMap holds the single best fight per encounter ID.
type BestPullMap map[int]FlattenedFight

// FightURL builds the deep link to one fight inside a report.
func FightURL(reportCode string, fightID int) string {
	return fmt.Sprintf("https://www.warcraftlogs.com/reports/%s#fight=%d", reportCode, fightID)
}

// Flatten converts raw reports into a flat fight list. Fight times in a
// report are millisecond offsets from the report start; absolute times come
// from adding them to the report base. Reports without fights are dropped.
func Flatten(reports []api.WlogReport) []FlattenedFight {
	var fights []FlattenedFight

	for _, report := range reports {
		if len(report.Fights) == 0 {
			continue
		}

		reportStart := time.UnixMilli(report.StartTime).UTC()
		reportEnd := time.UnixMilli(report.EndTime).UTC()

		for _, f := range report.Fights {
			fights = append(fights, FlattenedFight{
				Code:            report.Code,
				URL:             FightURL(report.Code, f.ID),
				EncounterID:     f.EncounterID,
				Name:            f.Name,
				StartTime:       time.UnixMilli(report.StartTime + f.StartTime).UTC(),
				EndTime:         time.UnixMilli(report.StartTime + f.EndTime).UTC(),
				ReportStartTime: reportStart,
				ReportEndTime:   reportEnd,
				Difficulty:      f.Difficulty,
				Kill:            f.Kill,
				BossPercentage:  f.BossPercentage,
				FightPercentage: f.FightPercentage,
			})
		}
	}

	return fights
}

// Less is the canonical best-pull ordering: difficulty descending, kills
// before non-kills, boss percentage ascending (less HP remaining is a
// better attempt), then report start time ascending as the deterministic
// tiebreak. Sorting with Less and taking the head yields the best attempt.
func Less(a, b FlattenedFight) bool {
	if a.Difficulty != b.Difficulty {
		return a.Difficulty > b.Difficulty
	}
	if a.Kill != b.Kill {
		return a.Kill
	}
	if a.BossPercentage != b.BossPercentage {
		return a.BossPercentage < b.BossPercentage
	}
	return a.ReportStartTime.Before(b.ReportStartTime)
}

// SortByBestPulls sorts fights in place by the canonical ordering.
func SortByBestPulls(fights []FlattenedFight) {
	sort.SliceStable(fights, func(i, j int) bool {
		return Less(fights[i], fights[j])
	})
}

// GroupByEncounter builds the encounter-ID lookup used during
// reconciliation.
func GroupByEncounter(fights []FlattenedFight) FightMap {
	m := make(FightMap)
	for _, f := range fights {
		m[f.EncounterID] = append(m[f.EncounterID], f)
	}
	return m
}

// BestPulls reduces a fight map to the single best fight per encounter.
func BestPulls(m FightMap) BestPullMap {
	best := make(BestPullMap, len(m))
	for encounterID, group := range m {
		if len(group) == 0 {
			continue
		}
		sorted := make([]FlattenedFight, len(group))
		copy(sorted, group)
		SortByBestPulls(sorted)
		best[encounterID] = sorted[0]
	}
	return best
}

// BestForDifficulty returns the best fight at one Warcraft Logs difficulty
// from an already-sorted fight list, or false when the difficulty was never
// pulled.
func BestForDifficulty(sorted []FlattenedFight, difficulty int) (FlattenedFight, bool) {
	for _, f := range sorted {
		if f.Difficulty == difficulty {
			return f, true
		}
	}
	return FlattenedFight{}, false
}
