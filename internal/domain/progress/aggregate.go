package progress

import (
	"log/slog"

	"github.com/prepwise/backend/internal/domain/catalog"
)

// CategoryScore is one entry of the AI feedback breakdown, already validated
// for shape by the scorer boundary. Range and name checks happen here so a
// single bad entry skips rather than corrupting the whole attempt.
type CategoryScore struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`
	Comment  string  `json:"comment,omitempty"`
}

// ApplyAttempt folds one attempt into the state and returns the new state.
// The input state is not modified.
//
// Bookkeeping per attempt:
//   - append to Attempts, add EarnedXP to CumulativeXP, extend XPHistory
//   - fold each valid breakdown entry into CategoryStats
//   - credit each of the question's key points, but only when its parent
//     category appears in the accepted breakdown
//   - update the tier progress the attempt was made under
//
// Breakdown entries with out-of-range scores or category names unknown to
// the catalog are logged and skipped; they never abort the aggregation.
func ApplyAttempt(s *State, c *catalog.Catalog, attempt AttemptRecord, breakdown []CategoryScore, logger *slog.Logger) *State {
	ns := s.Clone()

	ns.Attempts = append(ns.Attempts, attempt)
	ns.CumulativeXP += attempt.EarnedXP
	ns.XPHistory = append(ns.XPHistory, ns.CumulativeXP)

	// Accept breakdown entries, remembering each accepted category's score
	// for key-point crediting below.
	accepted := make(map[string]float64, len(breakdown))
	for _, entry := range breakdown {
		if entry.Score < 0 || entry.Score > 10 {
			logger.Warn("skipping breakdown entry with out-of-range score",
				"category", entry.Category, "score", entry.Score)
			continue
		}
		if !c.HasCategory(entry.Category) {
			logger.Warn("skipping breakdown entry with unknown category",
				"category", entry.Category)
			continue
		}

		stats := ns.CategoryStats[entry.Category]
		stats.TotalScore += entry.Score
		stats.Count++
		ns.CategoryStats[entry.Category] = stats
		accepted[entry.Category] = entry.Score
	}

	// A key point is only credited when its parent category was actually
	// scored in this attempt's breakdown.
	if question, ok := c.Question(attempt.QuestionID); ok {
		for _, kp := range question.KeyPoints {
			category, ok := c.CategoryFor(kp)
			if !ok {
				logger.Warn("skipping key point with no category mapping", "key_point", kp)
				continue
			}
			score, scored := accepted[category]
			if !scored {
				continue
			}

			stats := ns.KeyPointStats[kp]
			stats.TotalScore += score
			stats.Count++
			ns.KeyPointStats[kp] = stats
		}
	} else {
		logger.Warn("attempt references question not in catalog", "question_id", attempt.QuestionID)
	}

	if tp, ok := ns.PerTier[attempt.Tier]; ok {
		tp.TotalScore += attempt.Score
		tp.Answered++
	}

	return ns
}

// MarkAsked records that a question was presented to the user, globally and
// within its tier. Presenting is what makes a question ineligible for
// re-selection; submitting an answer is a separate step.
func MarkAsked(s *State, q catalog.Question) *State {
	ns := s.Clone()
	ns.AskedQuestionIDs[q.ID] = true
	if tp, ok := ns.PerTier[q.Tier]; ok {
		tp.AskedIDs[q.ID] = true
	}
	return ns
}
