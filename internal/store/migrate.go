package store

import (
	"encoding/json"
	"fmt"

	"github.com/prepwise/backend/internal/domain/catalog"
	"github.com/prepwise/backend/internal/domain/progress"
)

// Migrate upgrades a persisted progress payload to the current schema
// version in one explicit step, replacing the scattered fill-in-on-read
// checks this design used to need. It returns the fully-populated state and
// whether anything changed.
//
// Version history:
//
//	1: no per-tier progress, no protection items, no claimed quests, and
//	    cumulative XP stored as a bare counter.
//	2: current.
//
// Any XP-affecting upgrade recomputes cumulative XP and the XP history from
// the attempt list. Stored totals are never trusted across versions: the
// attempts are the source of truth.
func Migrate(raw []byte, version int, c *catalog.Catalog) (*progress.State, bool, error) {
	if version > progress.SchemaVersion {
		return nil, false, fmt.Errorf("progress schema version %d is newer than supported %d", version, progress.SchemaVersion)
	}

	var state progress.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, false, fmt.Errorf("unmarshal progress: %w", err)
	}

	if version == progress.SchemaVersion {
		return &state, false, nil
	}

	// v1 → v2: backfill containers that did not exist.
	if state.CategoryStats == nil {
		state.CategoryStats = make(map[string]progress.TagStats)
	}
	if state.KeyPointStats == nil {
		state.KeyPointStats = make(map[string]progress.TagStats)
	}
	if state.AskedQuestionIDs == nil {
		state.AskedQuestionIDs = make(map[int]bool)
	}
	if state.ClaimedQuests == nil {
		state.ClaimedQuests = make(map[string]bool)
	}
	if state.CurrentTier == "" {
		state.CurrentTier = catalog.TierJunior
	}

	if state.PerTier == nil {
		state.PerTier = make(map[catalog.Tier]*progress.TierProgress)
	}
	for _, tier := range catalog.TierOrder() {
		if state.PerTier[tier] == nil {
			state.PerTier[tier] = &progress.TierProgress{
				AskedIDs: make(map[int]bool),
			}
		}
		state.PerTier[tier].TotalQuestions = c.TierSize(tier)
	}

	// Rebuild per-tier asked sets and score sums from the attempts and the
	// global asked set.
	for id := range state.AskedQuestionIDs {
		if q, ok := c.Question(id); ok {
			state.PerTier[q.Tier].AskedIDs[id] = true
		}
	}
	for _, tp := range state.PerTier {
		tp.TotalScore = 0
		tp.Answered = 0
	}
	for _, a := range state.Attempts {
		if tp, ok := state.PerTier[a.Tier]; ok {
			tp.TotalScore += a.Score
			tp.Answered++
		}
	}

	// Recompute XP from attempts, never hand-edit the stored total.
	state.CumulativeXP = 0
	state.XPHistory = make([]int, 0, len(state.Attempts)+1)
	state.XPHistory = append(state.XPHistory, 0)
	for _, a := range state.Attempts {
		state.CumulativeXP += a.EarnedXP
		state.XPHistory = append(state.XPHistory, state.CumulativeXP)
	}

	if state.LongestStreak < state.CurrentStreak {
		state.LongestStreak = state.CurrentStreak
	}

	state.Version = progress.SchemaVersion
	return &state, true, nil
}
