package domain

// Difficulty is one of the three raid difficulties, strictly ordered
// by increasing challenge: normal < heroic < mythic.
type Difficulty string

const (
	DifficultyNormal Difficulty = "normal"
	DifficultyHeroic Difficulty = "heroic"
	DifficultyMythic Difficulty = "mythic"
)

// Warcraft Logs numeric difficulty IDs.
const (
	WlogsNormalDifficultyID = 3
	WlogsHeroicDifficultyID = 4
	WlogsMythicDifficultyID = 5
)

// Difficulties lists all difficulties in ascending order.
var Difficulties = []Difficulty{DifficultyNormal, DifficultyHeroic, DifficultyMythic}

// DifficultiesDesc lists all difficulties in descending order. Reconciliation
// scans in this order so the highest difficulty wins.
var DifficultiesDesc = []Difficulty{DifficultyMythic, DifficultyHeroic, DifficultyNormal}

// Rank returns the ordering rank of the difficulty: normal=0, heroic=1,
// mythic=2. Unknown difficulties rank below normal.
func (d Difficulty) Rank() int {
	switch d {
	case DifficultyNormal:
		return 0
	case DifficultyHeroic:
		return 1
	case DifficultyMythic:
		return 2
	}
	return -1
}

// ShortCode returns the single-letter code used in summary strings.
func (d Difficulty) ShortCode() string {
	switch d {
	case DifficultyNormal:
		return "N"
	case DifficultyHeroic:
		return "H"
	case DifficultyMythic:
		return "M"
	}
	return ""
}

// WlogsID returns the Warcraft Logs numeric ID for the difficulty, 0 if unknown.
func (d Difficulty) WlogsID() int {
	switch d {
	case DifficultyNormal:
		return WlogsNormalDifficultyID
	case DifficultyHeroic:
		return WlogsHeroicDifficultyID
	case DifficultyMythic:
		return WlogsMythicDifficultyID
	}
	return 0
}

// FromWlogsDifficulty maps a Warcraft Logs numeric difficulty back to a
// Difficulty. The second return is false for IDs outside raid difficulties
// (e.g. LFR or dungeon fights).
func FromWlogsDifficulty(id int) (Difficulty, bool) {
	switch id {
	case WlogsNormalDifficultyID:
		return DifficultyNormal, true
	case WlogsHeroicDifficultyID:
		return DifficultyHeroic, true
	case WlogsMythicDifficultyID:
		return DifficultyMythic, true
	}
	return "", false
}
