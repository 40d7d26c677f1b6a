package service

import (
	"time"

	"raid-progress/internal/api"
	"raid-progress/internal/domain"
	"raid-progress/internal/fights"
)

// encounterRecords holds one guild's raider.io records per difficulty,
// aligned index-for-index with the raid's encounter lineup. A missing
// difficulty (guild never appeared in that ranking document) is an empty
// slice.
type encounterRecords map[domain.Difficulty][]domain.EncounterRecord

// flattenRanking aligns one ranking document with the raid lineup: for
// every boss the guild either has a kill, a pull, or nothing.
func flattenRanking(raid *domain.RaidInfo, ranking api.GuildRaidRanking) []domain.EncounterRecord {
	records := make([]domain.EncounterRecord, 0, len(raid.Encounters))

	for _, enc := range raid.Encounters {
		record := domain.EncounterRecord(domain.NoRecord{Slug: enc.RSlug})

		for _, d := range ranking.EncountersDefeated {
			if d.Slug == enc.RSlug {
				record = domain.DefeatedRecord{
					Slug:          d.Slug,
					FirstDefeated: d.FirstDefeated,
					LastDefeated:  d.LastDefeated,
				}
				break
			}
		}
		if _, none := record.(domain.NoRecord); none {
			for _, p := range ranking.EncountersPulled {
				if p.Slug == enc.RSlug {
					record = domain.PulledRecord{
						Slug:          p.Slug,
						EncounterID:   p.ID,
						NumPulls:      p.NumPulls,
						PullStartedAt: p.PullStartedAt,
						BestPercent:   p.BestPercent,
						IsDefeated:    p.IsDefeated,
					}
					break
				}
			}
		}

		records = append(records, record)
	}

	return records
}

func (r encounterRecords) at(difficulty domain.Difficulty, i int) domain.EncounterRecord {
	records := r[difficulty]
	if i >= len(records) {
		return domain.NoRecord{}
	}
	return records[i]
}

// reconcileEncounters merges one guild's raider.io records with its
// combat-log fights into the authoritative per-encounter results.
//
// raider.io is the source of truth for kill state; combat logs refine the
// picture with exact percentages and replay links. A combat-log best pull
// at a lower difficulty than an already-defeated one contradicts raider.io
// (the guild isn't uploading consistently) and is dropped without comment.
func reconcileEncounters(raid *domain.RaidInfo, records encounterRecords, fightMap fights.FightMap) []domain.GuildRaidEncounter {
	bestPulls := fights.BestPulls(fightMap)

	out := make([]domain.GuildRaidEncounter, 0, len(raid.Encounters))
	for i, enc := range raid.Encounters {
		result := domain.GuildRaidEncounter{
			EncounterID: enc.ID,
			Slug:        enc.RSlug,
			Name:        enc.Name,
		}

		// highest difficulty with a kill
		for _, d := range domain.DifficultiesDesc {
			if defeated, ok := records.at(d, i).(domain.DefeatedRecord); ok {
				result.MaxDifficultyDefeated = d
				at := defeated.FirstDefeated
				result.DefeatedAt = &at
				break
			}
		}

		// highest difficulty with an unresolved attempt
		for _, d := range domain.DifficultiesDesc {
			if pulled, ok := records.at(d, i).(domain.PulledRecord); ok && !pulled.IsDefeated {
				result.MaxDifficultyAttempted = d
				pct := pulled.BestPercent
				result.LowestBossPercentage = &pct
				result.AttemptedAt = pulled.PullStartedAt
				break
			}
		}

		// progression cannot regress: an attempt below the defeated
		// difficulty is stale data, not progress
		clearAttemptIfRegressed(&result)

		applyBestPull(&result, bestPulls)
		attachKillURL(&result, fightMap[enc.ID])

		out = append(out, result)
	}

	return out
}

// reconcileLogsOnly derives a guild's results purely from combat logs.
// Used for the synthetic community team, which has no raider.io page:
// kills and attempts both come from scanning its fights.
func reconcileLogsOnly(raid *domain.RaidInfo, all []fights.FlattenedFight) []domain.GuildRaidEncounter {
	sorted := make([]fights.FlattenedFight, len(all))
	copy(sorted, all)
	fights.SortByBestPulls(sorted)

	fightMap := fights.GroupByEncounter(sorted)
	bestPulls := fights.BestPulls(fightMap)

	out := make([]domain.GuildRaidEncounter, 0, len(raid.Encounters))
	for _, enc := range raid.Encounters {
		result := domain.GuildRaidEncounter{
			EncounterID: enc.ID,
			Slug:        enc.RSlug,
			Name:        enc.Name,
		}

		group := fightMap[enc.ID]
		for _, d := range domain.DifficultiesDesc {
			best, ok := fights.BestForDifficulty(group, d.WlogsID())
			if !ok || !best.Kill {
				continue
			}
			result.MaxDifficultyDefeated = d
			at := best.EndTime
			result.DefeatedAt = &at
			result.WlogKillURL = best.URL
			break
		}

		applyBestPull(&result, bestPulls)

		out = append(out, result)
	}

	return out
}

// applyBestPull attaches the combat-log best pull when it's trustworthy:
// a non-kill attempt at a difficulty no lower than the defeated one. It
// refines the attempt when the logs know a better (or higher-difficulty)
// pull than raider.io does.
func applyBestPull(result *domain.GuildRaidEncounter, bestPulls fights.BestPullMap) {
	best, ok := bestPulls[result.EncounterID]
	if !ok || best.Kill {
		return
	}

	difficulty, isRaid := domain.FromWlogsDifficulty(best.Difficulty)
	if !isRaid {
		return
	}

	if result.MaxDifficultyDefeated != "" && difficulty.Rank() < result.MaxDifficultyDefeated.Rank() {
		// wlogs has an inconsistency -- guild is likely not uploading reports
		return
	}

	result.WlogBestPullURL = best.URL

	refine := result.MaxDifficultyAttempted == "" ||
		difficulty.Rank() > result.MaxDifficultyAttempted.Rank() ||
		(difficulty.Rank() == result.MaxDifficultyAttempted.Rank() &&
			result.LowestBossPercentage != nil && best.BossPercentage < *result.LowestBossPercentage)
	if refine {
		result.MaxDifficultyAttempted = difficulty
		pct := best.BossPercentage
		result.LowestBossPercentage = &pct
		at := best.StartTime
		result.AttemptedAt = &at
	}
}

// attachKillURL links the combat-log kill matching the raider.io kill.
// The two APIs disagree on exact timestamps, so a kill on the same UTC
// calendar day at the right difficulty counts as the same kill.
func attachKillURL(result *domain.GuildRaidEncounter, group []fights.FlattenedFight) {
	if result.MaxDifficultyDefeated == "" || result.DefeatedAt == nil {
		return
	}

	wlogsID := result.MaxDifficultyDefeated.WlogsID()
	for _, f := range group {
		if f.Kill && f.Difficulty == wlogsID && sameUTCDay(*result.DefeatedAt, f.EndTime) {
			result.WlogKillURL = f.URL
			return
		}
	}
}

func clearAttemptIfRegressed(result *domain.GuildRaidEncounter) {
	if result.MaxDifficultyAttempted == "" || result.MaxDifficultyDefeated == "" {
		return
	}
	if result.MaxDifficultyAttempted.Rank() < result.MaxDifficultyDefeated.Rank() {
		result.MaxDifficultyAttempted = ""
		result.LowestBossPercentage = nil
		result.AttemptedAt = nil
	}
}

func sameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// hasAnyKill reports whether a reconciled encounter set contains at least
// one defeated boss. Guilds without one are left out of the raid's report.
func hasAnyKill(encounters []domain.GuildRaidEncounter) bool {
	for _, e := range encounters {
		if e.MaxDifficultyDefeated != "" {
			return true
		}
	}
	return false
}
