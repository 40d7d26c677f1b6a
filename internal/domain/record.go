package domain

import "time"

// EncounterRecord is what raider.io knows about one guild/encounter at a
// single difficulty. Exactly one of the three concrete types applies:
// DefeatedRecord (boss is down), PulledRecord (attempted, not down), or
// NoRecord (never engaged).
type EncounterRecord interface {
	RecordSlug() string
}

// DefeatedRecord is a raider.io kill record for one encounter.
type DefeatedRecord struct {
	Slug          string
	FirstDefeated time.Time
	LastDefeated  time.Time
}

func (r DefeatedRecord) RecordSlug() string { return r.Slug }

// PulledRecord is a raider.io attempt record: the guild has pulled the boss
// but not defeated it at this difficulty.
type PulledRecord struct {
	Slug          string
	EncounterID   int
	NumPulls      int
	PullStartedAt *time.Time
	BestPercent   float64
	IsDefeated    bool
}

func (r PulledRecord) RecordSlug() string { return r.Slug }

// NoRecord means raider.io has no activity for the encounter at this
// difficulty.
type NoRecord struct {
	Slug string
}

func (r NoRecord) RecordSlug() string { return r.Slug }
