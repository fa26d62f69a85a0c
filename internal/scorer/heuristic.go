package scorer

import (
	"context"
	"hash/fnv"

	"github.com/prepwise/backend/internal/domain/catalog"
)

// HeuristicScorer produces deterministic scores without any network call.
// The simulator uses it to drive whole practice runs, and tests use it as a
// predictable stand-in for the LLM. Skill models how good the simulated
// candidate is: higher skill scores better, harder questions score worse.
type HeuristicScorer struct {
	catalog *catalog.Catalog
	// Skill in 0-10. A skill-7 candidate averages around 7 on mid
	// difficulty questions.
	Skill float64
}

var _ Scorer = (*HeuristicScorer)(nil)

// NewHeuristicScorer creates a deterministic scorer with the given skill.
func NewHeuristicScorer(c *catalog.Catalog, skill float64) *HeuristicScorer {
	return &HeuristicScorer{catalog: c, Skill: skill}
}

// ScoreAnswer derives a stable score from the question, the answer text,
// and the configured skill. Same inputs, same score.
func (h *HeuristicScorer) ScoreAnswer(_ context.Context, question catalog.Question, answerText string) (Result, error) {
	// Jitter in [-1.5, +1.5) keyed on the answer text so repeated runs are
	// reproducible but not flat.
	hash := fnv.New32a()
	hash.Write([]byte(answerText))
	jitter := float64(hash.Sum32()%300)/100 - 1.5

	// Harder questions pull the score down from the candidate's skill.
	difficultyDrag := float64(question.Difficulty-5) * 0.4

	score := h.Skill - difficultyDrag + jitter
	if score < 0 {
		score = 0
	}
	if score > 10 {
		score = 10
	}

	result := Result{OverallScore: score}
	for _, category := range h.catalog.CategoriesOf(question) {
		result.Breakdown = append(result.Breakdown, CategoryScore{
			Category: category,
			Score:    score,
		})
	}
	if score >= 6 {
		result.Strengths = []string{"covered the main ideas"}
	} else {
		result.Weaknesses = []string{"missed key points"}
	}

	return result, nil
}
