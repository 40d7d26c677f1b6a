package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"raid-progress/internal/config"
	"raid-progress/internal/constants"

	"github.com/sethvargo/go-retry"
	"github.com/valyala/fasthttp"
)

const wlogsClientURL = "https://www.warcraftlogs.com/api/v2/client"

// fightQuery pulls a guild's raid reports inside a time window, with every
// fight's outcome and percentages.
const fightQuery = `query ($name: String, $server: String, $region: String, $startTime: Float, $endTime: Float, $reportLimit: Int) {
	reportData {
		reports(guildName: $name, guildServerSlug: $server, guildServerRegion: $region, limit: $reportLimit, startTime: $startTime, endTime: $endTime) {
			data {
				code
				startTime
				endTime
				fights {
					id
					encounterID
					name
					startTime
					endTime
					difficulty
					kill
					bossPercentage
					fightPercentage
				}
			}
		}
	}
}`

// zonesQuery fetches the raid zones of one expansion with their encounter IDs.
const zonesQuery = `query ($expansionID: Int) {
	worldData {
		zones(expansion_id: $expansionID) {
			id
			name
			frozen
			encounters {
				id
				name
			}
		}
	}
}`

const expansionsQuery = `query {
	worldData {
		expansions {
			id
			name
		}
	}
}`

// WlogsClient talks to the Warcraft Logs v2 GraphQL API.
type WlogsClient struct {
	accessToken string
	client      *fasthttp.Client
}

func NewWlogsClient(cfg *config.Config) *WlogsClient {
	return &WlogsClient{
		accessToken: cfg.WlogsAccessToken,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         constants.ExternalAPITimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

// WlogReport is one uploaded log: a report code plus its fights. Times are
// epoch milliseconds; fight times are offsets from the report start.
type WlogReport struct {
	Code      string            `json:"code"`
	StartTime int64             `json:"startTime"`
	EndTime   int64             `json:"endTime"`
	Fights    []WlogReportFight `json:"fights"`
}

type WlogReportFight struct {
	ID              int     `json:"id"`
	EncounterID     int     `json:"encounterID"`
	Name            string  `json:"name"`
	StartTime       int64   `json:"startTime"`
	EndTime         int64   `json:"endTime"`
	Difficulty      int     `json:"difficulty"`
	Kill            bool    `json:"kill"`
	BossPercentage  float64 `json:"bossPercentage"`
	FightPercentage float64 `json:"fightPercentage"`
}

// ExpansionZone is one raid zone's metadata: numeric encounter IDs plus the
// frozen flag distinguishing past tiers from the current one.
type ExpansionZone struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	Frozen     bool            `json:"frozen"`
	Encounters []ZoneEncounter `json:"encounters"`
}

type ZoneEncounter struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// FightQueryVars identifies a guild and a season window for a fight query.
type FightQueryVars struct {
	Name      string
	Server    string
	Region    string
	StartTime int64
	EndTime   *int64
}

// FetchGuildReports fetches a guild's raid reports for the season window.
// At most constants.ReportLimit reports come back per guild.
func (c *WlogsClient) FetchGuildReports(ctx context.Context, vars FightQueryVars) ([]WlogReport, error) {
	variables := map[string]any{
		"name":        vars.Name,
		"server":      vars.Server,
		"region":      vars.Region,
		"startTime":   vars.StartTime,
		"reportLimit": constants.ReportLimit,
	}
	if vars.EndTime != nil {
		variables["endTime"] = *vars.EndTime
	}

	var out struct {
		ReportData struct {
			Reports struct {
				Data []WlogReport `json:"data"`
			} `json:"reports"`
		} `json:"reportData"`
	}
	if err := c.PostQuery(ctx, fightQuery, variables, &out); err != nil {
		return nil, err
	}
	return out.ReportData.Reports.Data, nil
}

// FetchExpansionZones fetches the raid zones of one expansion.
func (c *WlogsClient) FetchExpansionZones(ctx context.Context, expansionID int) ([]ExpansionZone, error) {
	var out struct {
		WorldData struct {
			Zones []ExpansionZone `json:"zones"`
		} `json:"worldData"`
	}
	if err := c.PostQuery(ctx, zonesQuery, map[string]any{"expansionID": expansionID}, &out); err != nil {
		return nil, err
	}
	return out.WorldData.Zones, nil
}

// FetchLatestExpansionID returns the highest expansion ID Warcraft Logs
// knows about, which is the current expansion.
func (c *WlogsClient) FetchLatestExpansionID(ctx context.Context) (int, error) {
	var out struct {
		WorldData struct {
			Expansions []struct {
				ID   int    `json:"id"`
				Name string `json:"name"`
			} `json:"expansions"`
		} `json:"worldData"`
	}
	if err := c.PostQuery(ctx, expansionsQuery, nil, &out); err != nil {
		return 0, err
	}
	if len(out.WorldData.Expansions) == 0 {
		return 0, fmt.Errorf("no expansions returned")
	}

	latest := 0
	for _, e := range out.WorldData.Expansions {
		if e.ID > latest {
			latest = e.ID
		}
	}
	return latest, nil
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// PostQuery runs one GraphQL query and decodes the data payload into out.
func (c *WlogsClient) PostQuery(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to marshal query: %w", err)
	}

	backoff := retry.WithMaxRetries(constants.FetchMaxRetries, retry.NewConstant(constants.FetchRetryBackoff))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		req := fasthttp.AcquireRequest()
		resp := fasthttp.AcquireResponse()
		defer fasthttp.ReleaseRequest(req)
		defer fasthttp.ReleaseResponse(resp)

		req.SetRequestURI(wlogsClientURL)
		req.Header.SetMethod(fasthttp.MethodPost)
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
		req.Header.Set("Content-Type", "application/json")
		req.SetBody(body)

		if err := execute(ctx, c.client, req, resp); err != nil {
			return retry.RetryableError(err)
		}

		switch code := resp.StatusCode(); {
		case code == fasthttp.StatusOK:
		case code >= 500 || code == fasthttp.StatusTooManyRequests:
			return retry.RetryableError(fmt.Errorf("API error: %d", code))
		default:
			return fmt.Errorf("API error: %d", code)
		}

		var gqlResp graphQLResponse
		if err := json.Unmarshal(resp.Body(), &gqlResp); err != nil {
			return err
		}
		if len(gqlResp.Errors) > 0 {
			return fmt.Errorf("graphql error: %s", gqlResp.Errors[0].Message)
		}
		if gqlResp.Data == nil {
			return fmt.Errorf("graphql response has no data")
		}

		return json.Unmarshal(gqlResp.Data, out)
	})
}
