package service

import (
	"context"
	"sync"

	"raid-progress/internal/api"
	"raid-progress/internal/domain"
)

type fakeRIO struct {
	mu sync.Mutex

	staticRaids []api.StaticRaid
	staticErr   error
	staticCalls int

	rankings    map[domain.Difficulty][]api.GuildRaidRanking
	rankingsErr error
	batches     [][]int
}

func (f *fakeRIO) FetchStaticRaidData(ctx context.Context, expansionID int) ([]api.StaticRaid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.staticCalls++
	return f.staticRaids, f.staticErr
}

func (f *fakeRIO) FetchRaidRankings(ctx context.Context, raidSlug string, guildIDs []int, difficulty domain.Difficulty) ([]api.GuildRaidRanking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches = append(f.batches, guildIDs)
	if f.rankingsErr != nil {
		return nil, f.rankingsErr
	}
	return f.rankings[difficulty], nil
}

type fakeWlogs struct {
	mu sync.Mutex

	zones    []api.ExpansionZone
	zonesErr error

	latestID  int
	latestErr error

	// reports keyed by guild name from the fight query
	reports    map[string][]api.WlogReport
	reportsErr error
}

func (f *fakeWlogs) FetchGuildReports(ctx context.Context, vars api.FightQueryVars) ([]api.WlogReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reportsErr != nil {
		return nil, f.reportsErr
	}
	return f.reports[vars.Name], nil
}

func (f *fakeWlogs) FetchExpansionZones(ctx context.Context, expansionID int) ([]api.ExpansionZone, error) {
	return f.zones, f.zonesErr
}

func (f *fakeWlogs) FetchLatestExpansionID(ctx context.Context) (int, error) {
	return f.latestID, f.latestErr
}

type fakeSeason struct {
	season *domain.SeasonData
	err    error
}

func (f *fakeSeason) Resolve(ctx context.Context) (*domain.SeasonData, error) {
	return f.season, f.err
}
