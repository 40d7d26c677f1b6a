package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raid-progress/internal/api"
	"raid-progress/internal/domain"
)

var testNow = time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

func testRoster() []domain.GuildInfo {
	return []domain.GuildInfo{
		{RID: domain.SyntheticGuildRID, Name: "CWG", DisplayName: "CWG Community", Slug: "cwg", Realm: "Eldre'Thalas", Region: "us"},
		{RID: 101, Name: "Narrow Path", Slug: "narrow-path", Realm: "Thunderhorn", Region: "us"},
		{RID: 102, Name: "Renewed Hope", Slug: "renewed-hope", Realm: "Alexstrasza", Region: "us"},
	}
}

func newReportService(rio *fakeRIO, wlogs *fakeWlogs, roster []domain.GuildInfo) *ReportService {
	season := &fakeSeason{season: &domain.SeasonData{
		Raids:     []domain.RaidInfo{*undermineRaid()},
		StartDate: time.Date(2025, 3, 4, 15, 0, 0, 0, time.UTC),
	}}

	svc := NewReportService(rio, wlogs, season, zerolog.Nop())
	svc.guilds = roster
	svc.now = func() time.Time { return testNow }
	svc.newID = func() (string, error) { return "report-1", nil }
	return svc
}

func TestBuildProgressReport(t *testing.T) {
	killedAt := time.Date(2025, 3, 11, 3, 0, 0, 0, time.UTC)

	rio := &fakeRIO{rankings: map[domain.Difficulty][]api.GuildRaidRanking{
		domain.DifficultyHeroic: {
			{
				Guild: api.RankedGuild{ID: 101, Name: "Narrow Path", Path: "/guilds/us/thunderhorn/narrow-path"},
				EncountersDefeated: []api.EncounterDefeated{
					{Slug: "vexie-and-the-geargrinders", FirstDefeated: killedAt, LastDefeated: killedAt},
				},
				EncountersPulled: []api.EncounterPulled{
					{ID: 3010, Slug: "cauldron-of-carnage", NumPulls: 9, BestPercent: 31.4},
				},
			},
		},
	}}

	communityKill := time.Date(2025, 3, 14, 2, 0, 0, 0, time.UTC)
	wlogs := &fakeWlogs{reports: map[string][]api.WlogReport{
		"CWG": {{
			Code:      "cwg01",
			StartTime: communityKill.Add(-time.Hour).UnixMilli(),
			EndTime:   communityKill.UnixMilli(),
			Fights: []api.WlogReportFight{{
				ID:          1,
				EncounterID: 3009,
				Name:        "Vexie and the Geargrinders",
				StartTime:   int64((50 * time.Minute).Milliseconds()),
				EndTime:     int64(time.Hour.Milliseconds()),
				Difficulty:  domain.WlogsNormalDifficultyID,
				Kill:        true,
			}},
		}},
	}}

	report, err := newReportService(rio, wlogs, testRoster()).BuildProgressReport(context.Background(), "liberation-of-undermine")
	require.NoError(t, err)

	assert.Equal(t, "report-1", report.ID)
	assert.Equal(t, testNow, report.CreatedOn)
	assert.Equal(t, "Liberation of Undermine", report.Raid.Name)

	// Renewed Hope has no kills anywhere and stays out; roster order holds
	require.Len(t, report.RaidProgression, 2)
	assert.Equal(t, "CWG", report.RaidProgression[0].Guild.Name)
	assert.Equal(t, "Narrow Path", report.RaidProgression[1].Guild.Name)

	narrowPath := report.RaidProgression[1]
	assert.Equal(t, "https://raider.io/guilds/us/thunderhorn/narrow-path", narrowPath.Guild.ProfileURL)
	assert.Equal(t, "1/2 H", narrowPath.OverallSummary.Summary)
	assert.Equal(t, domain.DifficultyHeroic, narrowPath.RaidEncounters[0].MaxDifficultyDefeated)
	assert.Equal(t, domain.DifficultyHeroic, narrowPath.RaidEncounters[1].MaxDifficultyAttempted)

	community := report.RaidProgression[0]
	assert.Equal(t, domain.DifficultyNormal, community.RaidEncounters[0].MaxDifficultyDefeated)
	assert.Equal(t, "1/2 N", community.OverallSummary.Summary)

	// two kills plus one best pull across the roster
	require.Len(t, report.RecentEvents, 3)
	assert.Equal(t, domain.EventBest, report.RecentEvents[0].Kind()) // dated now via fallback
}

func TestBuildProgressReportUnknownRaid(t *testing.T) {
	svc := newReportService(&fakeRIO{}, &fakeWlogs{}, testRoster())
	_, err := svc.BuildProgressReport(context.Background(), "nerubar-palace")
	assert.ErrorIs(t, err, ErrUnknownRaid)
}

func TestBuildProgressReportToleratesUpstreamFailures(t *testing.T) {
	// both upstreams down: the report still renders, just empty
	rio := &fakeRIO{rankingsErr: assert.AnError}
	wlogs := &fakeWlogs{reportsErr: assert.AnError}

	report, err := newReportService(rio, wlogs, testRoster()).BuildProgressReport(context.Background(), "liberation-of-undermine")
	require.NoError(t, err)
	assert.Empty(t, report.RaidProgression)
	assert.Empty(t, report.RecentEvents)
}

func TestBuildProgressReportBatchesRankingFetches(t *testing.T) {
	roster := []domain.GuildInfo{}
	for rid := 1; rid <= 12; rid++ {
		roster = append(roster, domain.GuildInfo{RID: rid, Name: "guild", Realm: "realm", Region: "us"})
	}

	rio := &fakeRIO{}
	_, err := newReportService(rio, &fakeWlogs{}, roster).BuildProgressReport(context.Background(), "liberation-of-undermine")
	require.NoError(t, err)

	// 12 guilds split 10+2, per difficulty
	require.Len(t, rio.batches, 6)
	sizes := map[int]int{}
	for _, batch := range rio.batches {
		sizes[len(batch)]++
	}
	assert.Equal(t, map[int]int{10: 3, 2: 3}, sizes)
}

func TestBuildSummaryReport(t *testing.T) {
	killedAt := time.Date(2025, 3, 11, 3, 0, 0, 0, time.UTC)
	pullStart := time.Date(2025, 3, 18, 2, 0, 0, 0, time.UTC)

	rio := &fakeRIO{rankings: map[domain.Difficulty][]api.GuildRaidRanking{
		domain.DifficultyNormal: {
			{
				Guild: api.RankedGuild{ID: 101, Name: "Narrow Path"},
				EncountersDefeated: []api.EncounterDefeated{
					{Slug: "vexie-and-the-geargrinders", FirstDefeated: killedAt, LastDefeated: killedAt},
					{Slug: "cauldron-of-carnage", FirstDefeated: killedAt, LastDefeated: killedAt},
				},
			},
		},
		domain.DifficultyHeroic: {
			{
				Guild: api.RankedGuild{ID: 101, Name: "Narrow Path"},
				EncountersPulled: []api.EncounterPulled{
					{ID: 3009, Slug: "vexie-and-the-geargrinders", NumPulls: 11, PullStartedAt: &pullStart, BestPercent: 24.6},
				},
			},
		},
	}}

	report, err := newReportService(rio, &fakeWlogs{}, testRoster()).BuildSummaryReport(context.Background(), "liberation-of-undermine")
	require.NoError(t, err)

	require.Len(t, report.Summaries, 1)
	summary := report.Summaries[0]
	assert.Equal(t, "Narrow Path", summary.Guild.Name)
	assert.Equal(t, 2, summary.TotalBosses)
	assert.Equal(t, "2/2 N", summary.OverallSummary.Summary)
	require.Len(t, summary.Summaries, 3)
	assert.Equal(t, "-", summary.Summaries[2].Summary)
	assert.Equal(t, "H Vexie=24.6%", summary.CurrentProgression)
}
