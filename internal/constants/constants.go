package constants

import "time"

const (
	ExternalAPITimeout = 10 * time.Second
	RequestTimeout     = 60 * time.Second
	FetchMaxRetries    = 1
	FetchRetryBackoff  = 500 * time.Millisecond
)

const (
	// RankingsGuildBatchSize is the hard raider.io limit on guild IDs per
	// raid-rankings call.
	RankingsGuildBatchSize = 10
	RankingsPageLimit      = 200

	// ReportLimit caps how many Warcraft Logs reports one guild fight
	// query pulls for the season window.
	ReportLimit = 25

	// FetchWorkers bounds concurrent per-guild combat-log fetches so the
	// pipeline stays inside upstream rate limits.
	FetchWorkers = 6
)

const (
	// RecentEventLimit is the size of the recent-updates feed.
	RecentEventLimit = 5
)

const (
	// DefaultRIOExpansionID is the raider.io expansion used when no
	// RIO_EXPANSION_ID override is set. raider.io v1 has no
	// latest-expansion endpoint, so this moves forward once per
	// expansion. 10 = The War Within.
	DefaultRIOExpansionID = 10
)

const (
	// SeasonCacheTTL is how long resolved season and raid definitions are
	// reused before re-resolving against the live APIs.
	SeasonCacheTTL = 4 * time.Hour
)

const (
	ShutdownTimeout = 5 * time.Second
)
