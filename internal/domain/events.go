package domain

import (
	"encoding/json"
	"time"
)

// EventKind discriminates feed events on the wire.
type EventKind string

const (
	EventKill EventKind = "KILL"
	EventBest EventKind = "BEST"
)

// RaidProgressEvent is one entry in the progress feed: either a boss kill
// or a new personal-best pull.
type RaidProgressEvent interface {
	Kind() EventKind
	Date() time.Time
}

// KillEvent records a guild defeating a boss.
type KillEvent struct {
	GuildName    string    `json:"guildName"`
	RaidName     string    `json:"raidName"`
	BossName     string    `json:"bossName"`
	DateOccurred time.Time `json:"dateOccurred"`
}

func (e KillEvent) Kind() EventKind { return EventKill }
func (e KillEvent) Date() time.Time { return e.DateOccurred }

func (e KillEvent) MarshalJSON() ([]byte, error) {
	type alias KillEvent
	return json.Marshal(struct {
		Type EventKind `json:"type"`
		alias
	}{EventKill, alias(e)})
}

// BestEvent records a guild's best attempt so far on an unkilled boss.
type BestEvent struct {
	GuildName        string    `json:"guildName"`
	RaidName         string    `json:"raidName"`
	BossName         string    `json:"bossName"`
	LowestPercentage float64   `json:"lowestPercentage"`
	DateOccurred     time.Time `json:"dateOccurred"`
}

func (e BestEvent) Kind() EventKind { return EventBest }
func (e BestEvent) Date() time.Time { return e.DateOccurred }

func (e BestEvent) MarshalJSON() ([]byte, error) {
	type alias BestEvent
	return json.Marshal(struct {
		Type EventKind `json:"type"`
		alias
	}{EventBest, alias(e)})
}
