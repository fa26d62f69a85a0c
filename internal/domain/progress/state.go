package progress

import (
	"time"

	"github.com/prepwise/backend/internal/domain/catalog"
)

// SchemaVersion is the current persisted-state version. The store's
// migration step upgrades older payloads to this version at load time.
const SchemaVersion = 2

// AttemptRecord is one submitted answer. The attempt list is append-only:
// records are never edited or deleted.
type AttemptRecord struct {
	ID         string       `json:"id"`
	QuestionID int          `json:"question_id"`
	Timestamp  time.Time    `json:"timestamp"`
	AnswerText string       `json:"answer_text"`
	Score      float64      `json:"score"`     // 0-10, from the AI scorer
	EarnedXP   int          `json:"earned_xp"` // signed, includes any bonus applied at submit time
	Difficulty int          `json:"difficulty_at_attempt"`
	Tier       catalog.Tier `json:"seniority_at_attempt"`
}

// TagStats is a running sum for one category or key-point tag.
type TagStats struct {
	TotalScore float64 `json:"total_score"`
	Count      int     `json:"count"`
}

// Average returns TotalScore/Count, or 0 before any data.
func (t TagStats) Average() float64 {
	if t.Count == 0 {
		return 0
	}
	return t.TotalScore / float64(t.Count)
}

// TierProgress tracks how far a user has got through one seniority tier.
type TierProgress struct {
	AskedIDs       map[int]bool `json:"asked_ids"`
	TotalQuestions int          `json:"total_questions"`
	TotalScore     float64      `json:"total_score"`
	Answered       int          `json:"answered"`
}

// AverageScore returns the mean score across the tier's answered questions.
func (tp *TierProgress) AverageScore() float64 {
	if tp.Answered == 0 {
		return 0
	}
	return tp.TotalScore / float64(tp.Answered)
}

// State is the per-user aggregate root. It is only ever modified by the
// reducer-style functions in this package, each of which returns a new
// value and leaves its input untouched.
type State struct {
	Version int    `json:"version"`
	UserKey string `json:"user_key"`

	CumulativeXP int   `json:"cumulative_xp"` // may go negative
	XPHistory    []int `json:"xp_history"`    // cumulative totals, first entry always 0

	CategoryStats map[string]TagStats `json:"category_stats"`
	KeyPointStats map[string]TagStats `json:"key_point_stats"`

	AskedQuestionIDs map[int]bool                   `json:"asked_question_ids"`
	PerTier          map[catalog.Tier]*TierProgress `json:"per_tier"`
	CurrentTier      catalog.Tier                   `json:"current_tier"`

	CurrentStreak   int    `json:"current_streak"`
	LongestStreak   int    `json:"longest_streak"`
	LastActiveDate  string `json:"last_active_date"`
	TodayCompleted  bool   `json:"today_completed"`
	ProtectionItems int    `json:"protection_items"`

	// EasyHighRun counts consecutive scores >= 8 on difficulty <= 4
	// questions; it feeds the selector's adaptive jump rule.
	EasyHighRun int `json:"easy_high_run"`

	// PendingXPBonus is reward XP (streak milestones, quest rewards)
	// waiting to be folded into the next attempt's earned XP. Folding at
	// attempt time keeps CumulativeXP equal to the sum over attempts.
	PendingXPBonus int `json:"pending_xp_bonus"`

	// ClaimedQuests persists claimed achievement IDs so rewards cannot be
	// collected twice. Quests themselves are derived, never stored.
	ClaimedQuests map[string]bool `json:"claimed_quests"`

	Attempts []AttemptRecord `json:"attempts"`
}

// NewState creates the empty progress state for a first login. Per-tier
// totals come from the catalog so exhaustion detection works from day one.
func NewState(userKey string, c *catalog.Catalog) *State {
	perTier := make(map[catalog.Tier]*TierProgress, len(catalog.TierOrder()))
	for _, tier := range catalog.TierOrder() {
		perTier[tier] = &TierProgress{
			AskedIDs:       make(map[int]bool),
			TotalQuestions: c.TierSize(tier),
		}
	}

	return &State{
		Version:          SchemaVersion,
		UserKey:          userKey,
		XPHistory:        []int{0},
		CategoryStats:    make(map[string]TagStats),
		KeyPointStats:    make(map[string]TagStats),
		AskedQuestionIDs: make(map[int]bool),
		PerTier:          perTier,
		CurrentTier:      catalog.TierJunior,
		ClaimedQuests:    make(map[string]bool),
	}
}

// Clone returns a deep copy. Maps and slices are copied; AttemptRecords are
// value types and share nothing mutable.
func (s *State) Clone() *State {
	ns := *s

	ns.XPHistory = append([]int(nil), s.XPHistory...)
	ns.Attempts = append([]AttemptRecord(nil), s.Attempts...)

	ns.CategoryStats = make(map[string]TagStats, len(s.CategoryStats))
	for k, v := range s.CategoryStats {
		ns.CategoryStats[k] = v
	}
	ns.KeyPointStats = make(map[string]TagStats, len(s.KeyPointStats))
	for k, v := range s.KeyPointStats {
		ns.KeyPointStats[k] = v
	}
	ns.AskedQuestionIDs = make(map[int]bool, len(s.AskedQuestionIDs))
	for k, v := range s.AskedQuestionIDs {
		ns.AskedQuestionIDs[k] = v
	}
	ns.ClaimedQuests = make(map[string]bool, len(s.ClaimedQuests))
	for k, v := range s.ClaimedQuests {
		ns.ClaimedQuests[k] = v
	}
	ns.PerTier = make(map[catalog.Tier]*TierProgress, len(s.PerTier))
	for tier, tp := range s.PerTier {
		copied := *tp
		copied.AskedIDs = make(map[int]bool, len(tp.AskedIDs))
		for id, v := range tp.AskedIDs {
			copied.AskedIDs[id] = v
		}
		ns.PerTier[tier] = &copied
	}

	return &ns
}

// AttemptXPSum returns the sum of EarnedXP across all attempts. The
// invariant CumulativeXP == AttemptXPSum() holds for every state this
// package produces; migrations recompute rather than trust stored totals.
func (s *State) AttemptXPSum() int {
	sum := 0
	for _, a := range s.Attempts {
		sum += a.EarnedXP
	}
	return sum
}
