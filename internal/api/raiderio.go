package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"raid-progress/internal/config"
	"raid-progress/internal/constants"
	"raid-progress/internal/domain"

	"github.com/sethvargo/go-retry"
	"github.com/valyala/fasthttp"
)

const (
	raiderIOGuildURL   = "https://raider.io/api/v1/guilds"
	raiderIORaidingURL = "https://raider.io/api/v1/raiding"
)

// RaiderIOClient talks to the raider.io v1 REST API.
// https://raider.io/api#
type RaiderIOClient struct {
	client *fasthttp.Client
	region string
}

func NewRaiderIOClient(cfg *config.Config) *RaiderIOClient {
	return &RaiderIOClient{
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         constants.ExternalAPITimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		region: cfg.Region,
	}
}

// GuildProfileResponse is the raider.io guild profile with the
// raid_progression and raid_encounters fields expanded for one raid and
// difficulty.
type GuildProfileResponse struct {
	Name            string                     `json:"name"`
	Faction         string                     `json:"faction"`
	Region          string                     `json:"region"`
	Realm           string                     `json:"realm"`
	LastCrawledAt   time.Time                  `json:"last_crawled_at"`
	ProfileURL      string                     `json:"profile_url"`
	RaidProgression map[string]RaidProgression `json:"raid_progression"`
	RaidEncounters  []ProfileRaidEncounter     `json:"raid_encounters"`
}

type RaidProgression struct {
	Summary            string `json:"summary"`
	TotalBosses        int    `json:"total_bosses"`
	NormalBossesKilled int    `json:"normal_bosses_killed"`
	HeroicBossesKilled int    `json:"heroic_bosses_killed"`
	MythicBossesKilled int    `json:"mythic_bosses_killed"`
}

type ProfileRaidEncounter struct {
	Slug       string     `json:"slug"`
	Name       string     `json:"name"`
	DefeatedAt *time.Time `json:"defeatedAt"`
}

// RaidRankingsResponse wraps the raiding/raid-rankings payload.
type RaidRankingsResponse struct {
	RaidRankings []GuildRaidRanking `json:"raidRankings"`
}

// GuildRaidRanking is one guild's kill/pull state for a raid at one
// difficulty.
type GuildRaidRanking struct {
	Rank               int                 `json:"rank"`
	RegionRank         int                 `json:"regionRank"`
	Guild              RankedGuild         `json:"guild"`
	EncountersDefeated []EncounterDefeated `json:"encountersDefeated"`
	EncountersPulled   []EncounterPulled   `json:"encountersPulled"`
}

type RankedGuild struct {
	ID      int         `json:"id"`
	Name    string      `json:"name"`
	Faction string      `json:"faction"`
	Realm   RankedRealm `json:"realm"`
	Path    string      `json:"path"`
}

type RankedRealm struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ProfileURL builds the raider.io profile link for the ranked guild.
func (g RankedGuild) ProfileURL() string {
	if g.Path == "" {
		return ""
	}
	return "https://raider.io" + g.Path
}

type EncounterDefeated struct {
	Slug          string    `json:"slug"`
	FirstDefeated time.Time `json:"firstDefeated"`
	LastDefeated  time.Time `json:"lastDefeated"`
}

type EncounterPulled struct {
	ID            int        `json:"id"`
	Slug          string     `json:"slug"`
	NumPulls      int        `json:"numPulls"`
	PullStartedAt *time.Time `json:"pullStartedAt"`
	BestPercent   float64    `json:"bestPercent"`
	IsDefeated    bool       `json:"isDefeated"`
}

// StaticRaidsResponse wraps raiding/static-data.
type StaticRaidsResponse struct {
	Raids []StaticRaid `json:"raids"`
}

// StaticRaid is raid tier metadata: boss lineup plus per-region start and
// end dates. Date strings are RFC3339 or empty for an open-ended tier.
type StaticRaid struct {
	Slug       string            `json:"slug"`
	Name       string            `json:"name"`
	ShortName  string            `json:"short_name"`
	Encounters []StaticEncounter `json:"encounters"`
	Starts     map[string]string `json:"starts"`
	Ends       map[string]string `json:"ends"`
}

type StaticEncounter struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// RealmSlug converts a display realm name to the slug raider.io expects:
// lowercased, apostrophes removed, spaces hyphenated ("Eldre'Thalas" ->
// "eldrethalas", "Area 52" -> "area-52").
func RealmSlug(realm string) string {
	s := strings.ToLower(realm)
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, "’", "")
	return strings.ReplaceAll(s, " ", "-")
}

// FetchGuildProgression fetches one guild's profile with the raid
// progression and encounter fields expanded for raidSlug at the given
// difficulty. Rankings carry more detail for the roster path; this is the
// single-guild lookup the upstream API offers alongside them.
func (c *RaiderIOClient) FetchGuildProgression(ctx context.Context, raidSlug string, guild domain.GuildInfo, difficulty domain.Difficulty) (*GuildProfileResponse, error) {
	q := url.Values{}
	q.Set("region", guild.Region)
	q.Set("realm", RealmSlug(guild.Realm))
	q.Set("name", strings.ToLower(guild.Name))
	q.Set("fields", fmt.Sprintf("raid_encounters:%s:%s,raid_progression", raidSlug, difficulty))

	reqURL := fmt.Sprintf("%s/profile?%s", raiderIOGuildURL, q.Encode())
	return doRequest[GuildProfileResponse](ctx, c.client, reqURL)
}

// FetchRaidRankings fetches kill/pull rankings for up to ten guilds at one
// difficulty. The upstream API rejects larger guild batches.
func (c *RaiderIOClient) FetchRaidRankings(ctx context.Context, raidSlug string, guildIDs []int, difficulty domain.Difficulty) ([]GuildRaidRanking, error) {
	if len(guildIDs) > constants.RankingsGuildBatchSize {
		return nil, fmt.Errorf("cannot fetch more than %d rankings at a time", constants.RankingsGuildBatchSize)
	}

	ids := make([]string, len(guildIDs))
	for i, id := range guildIDs {
		ids[i] = strconv.Itoa(id)
	}

	q := url.Values{}
	q.Set("region", c.region)
	q.Set("raid", raidSlug)
	q.Set("difficulty", string(difficulty))
	q.Set("guilds", strings.Join(ids, ","))
	q.Set("limit", strconv.Itoa(constants.RankingsPageLimit))
	q.Set("page", "0")

	reqURL := fmt.Sprintf("%s/raid-rankings?%s", raiderIORaidingURL, q.Encode())
	resp, err := doRequest[RaidRankingsResponse](ctx, c.client, reqURL)
	if err != nil {
		return nil, err
	}
	return resp.RaidRankings, nil
}

// FetchStaticRaidData fetches the raid tier definitions for an expansion.
func (c *RaiderIOClient) FetchStaticRaidData(ctx context.Context, expansionID int) ([]StaticRaid, error) {
	q := url.Values{}
	q.Set("expansion_id", strconv.Itoa(expansionID))

	reqURL := fmt.Sprintf("%s/static-data?%s", raiderIORaidingURL, q.Encode())
	resp, err := doRequest[StaticRaidsResponse](ctx, c.client, reqURL)
	if err != nil {
		return nil, err
	}
	return resp.Raids, nil
}

func doRequest[T any](ctx context.Context, client *fasthttp.Client, reqURL string) (*T, error) {
	var result T

	// One retry on transient failure, then the caller degrades (skip policy).
	backoff := retry.WithMaxRetries(constants.FetchMaxRetries, retry.NewConstant(constants.FetchRetryBackoff))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req := fasthttp.AcquireRequest()
		resp := fasthttp.AcquireResponse()
		defer fasthttp.ReleaseRequest(req)
		defer fasthttp.ReleaseResponse(resp)

		req.SetRequestURI(reqURL)
		req.Header.SetMethod(fasthttp.MethodGet)
		req.Header.Set("Content-Type", "application/json")

		if err := execute(ctx, client, req, resp); err != nil {
			return retry.RetryableError(err)
		}

		switch code := resp.StatusCode(); {
		case code == fasthttp.StatusOK:
		case code >= 500 || code == fasthttp.StatusTooManyRequests:
			return retry.RetryableError(fmt.Errorf("API error: %d", code))
		default:
			return fmt.Errorf("API error: %d", code)
		}

		return json.Unmarshal(resp.Body(), &result)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func execute(ctx context.Context, client *fasthttp.Client, req *fasthttp.Request, resp *fasthttp.Response) error {
	if deadline, ok := ctx.Deadline(); ok {
		return client.DoDeadline(req, resp, deadline)
	}
	return client.Do(req, resp)
}
