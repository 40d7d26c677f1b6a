package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"raid-progress/internal/api"
	"raid-progress/internal/constants"
	"raid-progress/internal/data"
	"raid-progress/internal/domain"
	"raid-progress/internal/fights"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrUnknownRaid is returned for a raid slug outside the current season.
var ErrUnknownRaid = errors.New("unknown raid")

// ReportService assembles progress and summary reports by fanning out to
// both upstream APIs and reconciling the results per guild. Reports are
// built fresh on every call; the only cached state is the season.
type ReportService struct {
	rio     RaiderIOAPI
	wlogs   WlogsAPI
	seasons SeasonSource
	guilds  []domain.GuildInfo
	logger  zerolog.Logger
	now     func() time.Time
	newID   func() (string, error)
}

func NewReportService(rio RaiderIOAPI, wlogs WlogsAPI, seasons SeasonSource, logger zerolog.Logger) *ReportService {
	return &ReportService{
		rio:     rio,
		wlogs:   wlogs,
		seasons: seasons,
		guilds:  data.Guilds,
		logger:  logger,
		now:     time.Now,
		newID:   func() (string, error) { return gonanoid.New() },
	}
}

// raidData is everything fetched for one raid before reconciliation:
// rankings keyed by difficulty then raider.io guild ID, flattened fights
// keyed by guild ID. Missing entries mean that fetch degraded.
type raidData struct {
	rankings map[domain.Difficulty]map[int]api.GuildRaidRanking
	fights   map[int][]fights.FlattenedFight
}

// Raids lists the raids of the current season.
func (s *ReportService) Raids(ctx context.Context) ([]domain.RaidInfo, error) {
	season, err := s.seasons.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	return season.Raids, nil
}

// BuildProgressReport builds the full guild-by-encounter report for one raid.
func (s *ReportService) BuildProgressReport(ctx context.Context, raidSlug string) (*domain.ProgressReport, error) {
	season, raid, err := s.resolveRaid(ctx, raidSlug)
	if err != nil {
		return nil, err
	}

	fetched := s.fetchRaidData(ctx, season, raid)

	var (
		progression []domain.GuildRaidProgress
		events      []domain.RaidProgressEvent
	)
	for _, guild := range s.guilds {
		guild, encounters, ok := s.reconcileGuild(raid, guild, fetched)
		if !ok {
			continue
		}

		stats := BuildStatistics(encounters)
		progression = append(progression, domain.GuildRaidProgress{
			Guild:          guild,
			RaidEncounters: encounters,
			OverallSummary: OverallSummary(stats),
		})
		events = append(events, EventsForGuild(guild, raid, encounters, s.now())...)
	}

	id, err := s.newID()
	if err != nil {
		return nil, err
	}

	return &domain.ProgressReport{
		ID:              id,
		Raid:            *raid,
		RaidProgression: progression,
		RecentEvents:    RecentEvents(events),
		CreatedOn:       s.now(),
	}, nil
}

// BuildSummaryReport builds the lean statistics report for one raid.
func (s *ReportService) BuildSummaryReport(ctx context.Context, raidSlug string) (*domain.SummaryReport, error) {
	season, raid, err := s.resolveRaid(ctx, raidSlug)
	if err != nil {
		return nil, err
	}

	fetched := s.fetchRaidData(ctx, season, raid)

	var (
		summaries []domain.GuildRaidStatistics
		events    []domain.RaidProgressEvent
	)
	for _, guild := range s.guilds {
		guild, encounters, ok := s.reconcileGuild(raid, guild, fetched)
		if !ok {
			continue
		}

		stats := BuildStatistics(encounters)
		summaries = append(summaries, domain.GuildRaidStatistics{
			Guild:              guild,
			OverallSummary:     OverallSummary(stats),
			TotalBosses:        len(raid.Encounters),
			Summaries:          stats,
			CurrentProgression: CurrentProgression(encounters),
		})
		events = append(events, EventsForGuild(guild, raid, encounters, s.now())...)
	}

	id, err := s.newID()
	if err != nil {
		return nil, err
	}

	return &domain.SummaryReport{
		ID:           id,
		Raid:         *raid,
		Summaries:    summaries,
		RecentEvents: RecentEvents(events),
		CreatedOn:    s.now(),
	}, nil
}

func (s *ReportService) resolveRaid(ctx context.Context, raidSlug string) (*domain.SeasonData, *domain.RaidInfo, error) {
	season, err := s.seasons.Resolve(ctx)
	if err != nil {
		return nil, nil, err
	}
	raid := season.RaidBySlug(raidSlug)
	if raid == nil {
		return nil, nil, ErrUnknownRaid
	}
	return season, raid, nil
}

// fetchRaidData fans out to both APIs. Each individual fetch degrades to
// absence on failure so one flaky upstream call can't sink the whole
// report.
func (s *ReportService) fetchRaidData(ctx context.Context, season *domain.SeasonData, raid *domain.RaidInfo) *raidData {
	fetched := &raidData{
		rankings: make(map[domain.Difficulty]map[int]api.GuildRaidRanking),
		fights:   make(map[int][]fights.FlattenedFight),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	for _, difficulty := range domain.Difficulties {
		g.Go(func() error {
			rankings := s.fetchRankings(gctx, raid.Slug, difficulty)
			mu.Lock()
			fetched.rankings[difficulty] = rankings
			mu.Unlock()
			return nil
		})
	}

	fightsGroup, fctx := errgroup.WithContext(ctx)
	fightsGroup.SetLimit(constants.FetchWorkers)
	for _, guild := range s.guilds {
		fightsGroup.Go(func() error {
			reports, err := s.wlogs.FetchGuildReports(fctx, fightQueryVars(season, guild))
			if err != nil {
				s.logger.Warn().Err(err).Str("guild", guild.Name).Msg("failed to fetch combat logs, continuing without them")
				return nil
			}
			flattened := fights.Flatten(reports)
			mu.Lock()
			fetched.fights[guild.RID] = flattened
			mu.Unlock()
			return nil
		})
	}

	// workers log and degrade rather than fail, so Wait never errors
	g.Wait()
	fightsGroup.Wait()

	return fetched
}

// fetchRankings pulls one difficulty's rankings for the whole roster,
// batched to the upstream guild-ID limit. A failed batch drops only its
// guilds.
func (s *ReportService) fetchRankings(ctx context.Context, raidSlug string, difficulty domain.Difficulty) map[int]api.GuildRaidRanking {
	byRID := make(map[int]api.GuildRaidRanking)

	var ids []int
	for _, g := range s.guilds {
		if !g.IsSynthetic() {
			ids = append(ids, g.RID)
		}
	}
	for start := 0; start < len(ids); start += constants.RankingsGuildBatchSize {
		end := min(start+constants.RankingsGuildBatchSize, len(ids))

		rankings, err := s.rio.FetchRaidRankings(ctx, raidSlug, ids[start:end], difficulty)
		if err != nil {
			s.logger.Warn().Err(err).
				Str("difficulty", string(difficulty)).
				Msg("failed to fetch raid rankings batch, continuing without it")
			continue
		}
		for _, r := range rankings {
			byRID[r.Guild.ID] = r
		}
	}

	return byRID
}

// reconcileGuild runs one guild through reconciliation. Returns false for
// guilds with nothing defeated, which stay out of the report entirely.
func (s *ReportService) reconcileGuild(raid *domain.RaidInfo, guild domain.GuildInfo, fetched *raidData) (domain.GuildInfo, []domain.GuildRaidEncounter, bool) {
	var encounters []domain.GuildRaidEncounter

	if guild.IsSynthetic() {
		encounters = reconcileLogsOnly(raid, fetched.fights[guild.RID])
	} else {
		records := make(encounterRecords)
		for difficulty, rankings := range fetched.rankings {
			if ranking, ok := rankings[guild.RID]; ok {
				records[difficulty] = flattenRanking(raid, ranking)
				if url := ranking.Guild.ProfileURL(); url != "" {
					guild.ProfileURL = url
				}
			}
		}
		encounters = reconcileEncounters(raid, records, fights.GroupByEncounter(fetched.fights[guild.RID]))
	}

	if !hasAnyKill(encounters) {
		return guild, nil, false
	}
	return guild, encounters, true
}

func fightQueryVars(season *domain.SeasonData, guild domain.GuildInfo) api.FightQueryVars {
	vars := api.FightQueryVars{
		Name:      guild.Name,
		Server:    api.RealmSlug(guild.Realm),
		Region:    guild.Region,
		StartTime: season.StartDate.UnixMilli(),
	}
	if season.EndDate != nil {
		end := season.EndDate.UnixMilli()
		vars.EndTime = &end
	}
	return vars
}
