package scorer

import (
	"context"
	"errors"
	"fmt"

	"github.com/prepwise/backend/internal/domain/catalog"
)

// ErrInvalidResponse marks a scoring response that failed schema
// validation. The attempt is discarded with no XP applied; the caller keeps
// the answer text so the user can retry.
var ErrInvalidResponse = errors.New("invalid scoring response")

// CategoryScore is one entry of the per-category feedback breakdown.
type CategoryScore struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`
	Comment  string  `json:"comment"`
}

// Result is the structured output of scoring one answer.
type Result struct {
	OverallScore float64         `json:"overall_score"`
	Strengths    []string        `json:"strengths"`
	Weaknesses   []string        `json:"weaknesses"`
	Breakdown    []CategoryScore `json:"category_breakdown"`
}

// Validate checks the schema contract before the result may reach the XP
// calculator: overall score numeric and in 0-10, breakdown entries named.
// Out-of-range breakdown scores are tolerated here (the aggregator skips
// them individually) but a bad overall score rejects the whole response.
func (r Result) Validate() error {
	if r.OverallScore < 0 || r.OverallScore > 10 || r.OverallScore != r.OverallScore {
		return fmt.Errorf("%w: overall score %v out of range 0-10", ErrInvalidResponse, r.OverallScore)
	}
	for i, entry := range r.Breakdown {
		if entry.Category == "" {
			return fmt.Errorf("%w: breakdown entry %d has no category", ErrInvalidResponse, i)
		}
	}
	return nil
}

// Scorer scores a user's free-text answer against a catalog question.
// Implementations may call an LLM or return deterministic results (the
// simulator and tests do the latter).
type Scorer interface {
	ScoreAnswer(ctx context.Context, question catalog.Question, answerText string) (Result, error)
}

// ScoreError distinguishes "the model returned a bad score" from "the model
// was unreachable" for callers that care.
type ScoreError struct {
	Reason  string
	Wrapped error
}

func (e *ScoreError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("scoring failed: %s: %v", e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("scoring failed: %s", e.Reason)
}

func (e *ScoreError) Unwrap() error {
	return e.Wrapped
}
