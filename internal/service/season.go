package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"raid-progress/internal/api"
	"raid-progress/internal/config"
	"raid-progress/internal/constants"
	"raid-progress/internal/domain"
	"raid-progress/internal/match"

	"github.com/rs/zerolog"
)

// RaiderIOAPI is the slice of the raider.io client the pipeline consumes.
type RaiderIOAPI interface {
	FetchRaidRankings(ctx context.Context, raidSlug string, guildIDs []int, difficulty domain.Difficulty) ([]api.GuildRaidRanking, error)
	FetchStaticRaidData(ctx context.Context, expansionID int) ([]api.StaticRaid, error)
}

// WlogsAPI is the slice of the Warcraft Logs client the pipeline consumes.
type WlogsAPI interface {
	FetchGuildReports(ctx context.Context, vars api.FightQueryVars) ([]api.WlogReport, error)
	FetchExpansionZones(ctx context.Context, expansionID int) ([]api.ExpansionZone, error)
	FetchLatestExpansionID(ctx context.Context) (int, error)
}

// SeasonSource resolves the active season. Satisfied by SeasonService;
// tests inject fixtures through it.
type SeasonSource interface {
	Resolve(ctx context.Context) (*domain.SeasonData, error)
}

// SeasonService resolves the currently active raid tiers by
// cross-referencing raider.io static raid data (names, slugs, season
// dates) with Warcraft Logs zone data (numeric encounter IDs). Results are
// cached briefly so one render pass hits the upstream APIs once.
type SeasonService struct {
	rio    RaiderIOAPI
	wlogs  WlogsAPI
	cfg    *config.Config
	logger zerolog.Logger
	now    func() time.Time

	mu        sync.Mutex
	cached    *domain.SeasonData
	fetchedAt time.Time
}

func NewSeasonService(rio RaiderIOAPI, wlogs WlogsAPI, cfg *config.Config, logger zerolog.Logger) *SeasonService {
	return &SeasonService{
		rio:    rio,
		wlogs:  wlogs,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Resolve returns the active season, fetching and cross-referencing both
// APIs when the cache is stale. Warcraft Logs being down degrades to
// encounters with ID 0; raider.io being down is fatal for resolution since
// nothing can be reported without tier definitions.
func (s *SeasonService) Resolve(ctx context.Context) (*domain.SeasonData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && s.now().Sub(s.fetchedAt) < constants.SeasonCacheTTL {
		return s.cached, nil
	}

	season, err := s.resolve(ctx)
	if err != nil {
		return nil, err
	}

	s.cached = season
	s.fetchedAt = s.now()
	return season, nil
}

func (s *SeasonService) resolve(ctx context.Context) (*domain.SeasonData, error) {
	rioExpansionID := s.cfg.RIOExpansionID
	if rioExpansionID == 0 {
		rioExpansionID = constants.DefaultRIOExpansionID
	}

	raids, err := s.rio.FetchStaticRaidData(ctx, rioExpansionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch static raid data: %w", err)
	}
	if len(raids) == 0 {
		return nil, fmt.Errorf("no raids defined for expansion %d", rioExpansionID)
	}

	zones := s.fetchZones(ctx)

	current := currentRaids(raids, s.now())
	if len(current) == 0 {
		s.logger.Warn().Msg("no current raids from raider.io dates, falling back to most recent raid")
		current = []api.StaticRaid{mostRecentRaid(raids)}
	}

	season := &domain.SeasonData{}
	for _, raid := range current {
		season.Raids = append(season.Raids, s.buildRaidInfo(raid, zones))
	}

	first := current[0]
	start, err := parseRaidDate(first.Starts["us"])
	if err != nil {
		return nil, fmt.Errorf("unparseable season start date for %s: %w", first.Slug, err)
	}
	season.StartDate = start

	if end, err := parseRaidDate(first.Ends["us"]); err == nil {
		season.EndDate = &end
	}

	s.logger.Info().
		Int("raids", len(season.Raids)).
		Time("season_start", season.StartDate).
		Msg("season resolved")

	return season, nil
}

func (s *SeasonService) fetchZones(ctx context.Context) []api.ExpansionZone {
	expansionID := s.cfg.WlogsExpansionID
	if expansionID == 0 {
		latest, err := s.wlogs.FetchLatestExpansionID(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("failed to detect wlogs expansion, proceeding without wlogs data")
			return nil
		}
		expansionID = latest
	}

	zones, err := s.wlogs.FetchExpansionZones(ctx, expansionID)
	if err != nil {
		s.logger.Warn().Err(err).Int("expansion_id", expansionID).Msg("failed to fetch wlogs zones, proceeding without wlogs data")
		return nil
	}
	return zones
}

// buildRaidInfo cross-references one raider.io raid against the Warcraft
// Logs zones. Encounters without a zone match keep the raider.io name and
// get ID 0, meaning "combat-log data unavailable for this boss".
func (s *SeasonService) buildRaidInfo(raid api.StaticRaid, zones []api.ExpansionZone) domain.RaidInfo {
	var zone *api.ExpansionZone

	zoneNames := make([]string, len(zones))
	for i, z := range zones {
		zoneNames[i] = z.Name
	}
	if i := match.Zone(raid.Name, zoneNames); i >= 0 {
		zone = &zones[i]
	} else {
		s.logger.Warn().Str("raid", raid.Name).Msg("no wlogs zone match for raid")
	}

	info := domain.RaidInfo{Name: raid.Name, Slug: raid.Slug}

	var encounterNames []string
	if zone != nil {
		encounterNames = make([]string, len(zone.Encounters))
		for i, e := range zone.Encounters {
			encounterNames[i] = e.Name
		}
	}

	for _, enc := range raid.Encounters {
		if zone != nil {
			if i := match.Encounter(enc.Name, encounterNames); i >= 0 {
				// prefer the wlogs name, which keeps the full boss title
				info.Encounters = append(info.Encounters, domain.Encounter{
					ID:    zone.Encounters[i].ID,
					Name:  zone.Encounters[i].Name,
					RSlug: enc.Slug,
				})
				continue
			}
			s.logger.Warn().
				Str("encounter", enc.Name).
				Str("raid", raid.Name).
				Msg("no wlogs match for encounter")
		}

		info.Encounters = append(info.Encounters, domain.Encounter{
			ID:    0,
			Name:  enc.Name,
			RSlug: enc.Slug,
		})
	}

	return info
}

// currentRaids filters to tiers that have started and not yet ended.
func currentRaids(raids []api.StaticRaid, now time.Time) []api.StaticRaid {
	var current []api.StaticRaid
	for _, raid := range raids {
		start, err := parseRaidDate(raid.Starts["us"])
		if err != nil || start.After(now) {
			continue
		}
		if end, err := parseRaidDate(raid.Ends["us"]); err == nil && !end.After(now) {
			continue
		}
		current = append(current, raid)
	}
	return current
}

// mostRecentRaid is the pre-season fallback: show the tier with the latest
// start date rather than an empty site.
func mostRecentRaid(raids []api.StaticRaid) api.StaticRaid {
	sorted := make([]api.StaticRaid, len(raids))
	copy(sorted, raids)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, errA := parseRaidDate(sorted[i].Starts["us"])
		b, errB := parseRaidDate(sorted[j].Starts["us"])
		if errA != nil || errB != nil {
			return errB != nil && errA == nil
		}
		return a.After(b)
	})
	return sorted[0]
}

func parseRaidDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	return time.Parse(time.RFC3339, s)
}
