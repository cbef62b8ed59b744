package shot

import "math"

// Difficulty is the presentation bucket for a difficulty score.
type Difficulty string

const (
	DifficultyEasy     Difficulty = "EASY"
	DifficultyMedium   Difficulty = "MEDIUM"
	DifficultyHard     Difficulty = "HARD"
	DifficultyVeryHard Difficulty = "VERY_HARD"
)

// Scoring weights. Changing any of these changes ranking for every client.
const (
	distanceWeight  = 0.5
	cushionPenalty  = 0.25
	easyThreshold   = 0.25
	mediumThreshold = 0.5
	hardThreshold   = 0.75
)

// Score combines travel distance, normalized by twice the table diagonal, with
// a flat penalty per cushion. The result is capped at 1.
func (t Table) Score(cueToAim, objectTravel float64, cushions int) float64 {
	s := distanceWeight*(cueToAim+objectTravel)/(2*t.Diagonal()) + cushionPenalty*float64(cushions)
	return math.Min(1, s)
}

// Categorize buckets a score.
func Categorize(score float64) Difficulty {
	switch {
	case score < easyThreshold:
		return DifficultyEasy
	case score < mediumThreshold:
		return DifficultyMedium
	case score < hardThreshold:
		return DifficultyHard
	}
	return DifficultyVeryHard
}
