package selection

import (
	"errors"
	"math/rand"
	"time"

	"github.com/prepwise/backend/internal/domain/catalog"
)

var (
	// ErrTierExhausted signals that the current tier has no eligible
	// questions left but later tiers remain. It is control flow, not a
	// failure: the caller advances the tier and retries.
	ErrTierExhausted = errors.New("tier exhausted")

	// ErrAllTiersExhausted is terminal: every tier has been worked through.
	// The caller offers a full reset.
	ErrAllTiersExhausted = errors.New("all tiers exhausted")
)

const (
	// AdaptiveRunLength is how many consecutive high scores on simple
	// questions trigger the difficulty jump.
	AdaptiveRunLength = 3
	// SimpleDifficultyMax is the highest difficulty counted as "simple".
	SimpleDifficultyMax = 4
	// HighScoreMin is the lowest score counted as "high" for the run.
	HighScoreMin = 8.0
)

// Selector picks the next question from an immutable catalog. The RNG is
// injected so tests can fix the sequence.
type Selector struct {
	catalog *catalog.Catalog
	rng     *rand.Rand
}

// New creates a Selector. A nil rng gets a time-seeded one.
func New(c *catalog.Catalog, rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Selector{catalog: c, rng: rng}
}

// Next chooses the next question for the given tier filter and asked set.
//
// An optional module narrows the pool. easyHighRun is the user's current
// run of consecutive scores >= HighScoreMin on questions of difficulty
// <= SimpleDifficultyMax; once it reaches AdaptiveRunLength the selector
// first tries to jump ahead, in catalog order, to an unasked question in
// the same tier with difficulty above SimpleDifficultyMax. The jump is
// independent of tier exhaustion and falls back to normal selection when
// no such question exists.
//
// Normal selection picks uniformly at random from the eligible set. No
// weighting: random order keeps sessions from being memorizable while tier
// and module scoping still hold.
func (s *Selector) Next(tier catalog.Tier, asked map[int]bool, module string, easyHighRun int) (catalog.Question, error) {
	eligible := s.eligible(tier, asked, module)

	if len(eligible) == 0 {
		if tier.IsPartition() {
			if _, ok := tier.Next(); ok {
				return catalog.Question{}, ErrTierExhausted
			}
		}
		return catalog.Question{}, ErrAllTiersExhausted
	}

	if easyHighRun >= AdaptiveRunLength {
		// eligible is in catalog order, so the first match is the next
		// harder question in the catalog.
		for _, q := range eligible {
			if q.Difficulty > SimpleDifficultyMax {
				return q, nil
			}
		}
	}

	return eligible[s.rng.Intn(len(eligible))], nil
}

// eligible filters the catalog to unasked questions visible under the tier
// filter and module, preserving catalog order.
func (s *Selector) eligible(tier catalog.Tier, asked map[int]bool, module string) []catalog.Question {
	var out []catalog.Question
	for _, q := range s.catalog.InTier(tier) {
		if asked[q.ID] {
			continue
		}
		if module != "" && !q.InModule(module) {
			continue
		}
		out = append(out, q)
	}
	return out
}

// Remaining counts the questions still eligible, used for progress display
// and exhaustion checks without consuming randomness.
func (s *Selector) Remaining(tier catalog.Tier, asked map[int]bool, module string) int {
	return len(s.eligible(tier, asked, module))
}
