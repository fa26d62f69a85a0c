package progression

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned when a calculator receives out-of-range
// arguments. Callers must reject bad external data before any state changes.
var ErrInvalidInput = errors.New("invalid input")

const (
	// BaseXP scales the reward branch.
	BaseXP = 5
	// PenaltyXP scales the penalty branch.
	PenaltyXP = 3
	// ScoreThreshold separates reward from penalty. A score exactly at the
	// threshold is rewarded; anything below it is penalized. This boundary
	// is deliberate and covered by tests.
	ScoreThreshold = 4.0
)

// XPResult is the outcome of scoring one attempt.
type XPResult struct {
	EarnedXP   int     `json:"earned_xp"`
	Rewarded   bool    `json:"rewarded"`
	Score      float64 `json:"score"`
	Difficulty int     `json:"difficulty"`
}

// CalculateXP maps an answer score (0-10) and question difficulty (1-10) to
// a signed XP delta.
//
// Reward branch (score >= 4):  round(BaseXP * difficulty * score/10)
// Penalty branch (score < 4): -round(PenaltyXP * difficulty * (4-score)/4)
//
// Pure function; no side effects.
func CalculateXP(score float64, difficulty int) (XPResult, error) {
	if score < 0 || score > 10 || math.IsNaN(score) {
		return XPResult{}, fmt.Errorf("%w: score %v out of range 0-10", ErrInvalidInput, score)
	}
	if difficulty < 1 || difficulty > 10 {
		return XPResult{}, fmt.Errorf("%w: difficulty %d out of range 1-10", ErrInvalidInput, difficulty)
	}

	result := XPResult{
		Score:      score,
		Difficulty: difficulty,
	}

	if score >= ScoreThreshold {
		result.Rewarded = true
		result.EarnedXP = int(math.Round(BaseXP * float64(difficulty) * score / 10))
	} else {
		shortfall := (ScoreThreshold - score) / ScoreThreshold
		result.EarnedXP = -int(math.Round(PenaltyXP * float64(difficulty) * shortfall))
		if result.EarnedXP == 0 {
			// Any score below the threshold costs XP, even when rounding
			// would land on zero.
			result.EarnedXP = -1
		}
	}

	return result, nil
}
