package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/prepwise/backend/internal/domain/catalog"
	"github.com/prepwise/backend/internal/domain/progress"
	"github.com/prepwise/backend/internal/domain/progression"
	"github.com/prepwise/backend/internal/domain/quest"
	"github.com/prepwise/backend/internal/domain/selection"
	"github.com/prepwise/backend/internal/domain/streak"
	"github.com/prepwise/backend/internal/scorer"
	"github.com/prepwise/backend/internal/store"
)

var (
	// ErrAttemptInFlight rejects a submission while another one for the
	// same user is still being scored. The core assumes at most one
	// outstanding attempt per user.
	ErrAttemptInFlight = errors.New("an attempt is already in flight")

	// ErrUnknownQuestion means the submitted question ID is not in the
	// catalog.
	ErrUnknownQuestion = errors.New("unknown question")

	// ErrQuestNotClaimable means the quest is not completed, already
	// claimed, or does not exist.
	ErrQuestNotClaimable = errors.New("quest not claimable")
)

// SessionService orchestrates the per-action flow: submit answer → score →
// XP → aggregate → persist → select next. Each mutation builds a new state
// and persists it only once everything succeeded, so a failed external call
// leaves the user's progress exactly as it was.
type SessionService struct {
	primary  store.Store
	fallback *store.MemoryStore
	scorer   scorer.Scorer
	catalog  *catalog.Catalog
	selector *selection.Selector
	logger   *slog.Logger

	mu       sync.Mutex
	inflight map[string]bool
	degraded map[string]bool
}

// NewSessionService wires the service. All collaborators are injected.
func NewSessionService(primary store.Store, sc scorer.Scorer, c *catalog.Catalog, sel *selection.Selector, logger *slog.Logger) *SessionService {
	return &SessionService{
		primary:  primary,
		fallback: store.NewMemory(),
		scorer:   sc,
		catalog:  c,
		selector: sel,
		logger:   logger,
		inflight: make(map[string]bool),
		degraded: make(map[string]bool),
	}
}

// ── State load/save with degraded-mode fallback ─────────────────────────────

// loadState fetches the user's progress, creating an empty state on first
// login. When the durable store fails the session degrades to the
// in-memory fallback rather than blocking gameplay.
func (s *SessionService) loadState(ctx context.Context, userKey string) *progress.State {
	if !s.isDegraded(userKey) {
		state, err := s.primary.LoadProgress(ctx, userKey)
		if err == nil {
			return state
		}
		if errors.Is(err, store.ErrNotFound) {
			return progress.NewState(userKey, s.catalog)
		}
		s.logger.Warn("primary store unavailable, degrading to in-memory session",
			"user", userKey, "error", err)
		s.setDegraded(userKey)
	}

	state, err := s.fallback.LoadProgress(ctx, userKey)
	if err != nil {
		return progress.NewState(userKey, s.catalog)
	}
	return state
}

// saveState persists the new state. In degraded mode only the in-memory
// fallback is written; otherwise a primary failure flips the session into
// degraded mode and the write still lands in memory.
func (s *SessionService) saveState(ctx context.Context, state *progress.State) {
	if !s.isDegraded(state.UserKey) {
		err := s.primary.SaveProgress(ctx, state)
		if err == nil {
			return
		}
		s.logger.Warn("failed to persist progress, degrading to in-memory session",
			"user", state.UserKey, "error", err)
		s.setDegraded(state.UserKey)
	}
	if err := s.fallback.SaveProgress(ctx, state); err != nil {
		s.logger.Error("in-memory fallback save failed", "user", state.UserKey, "error", err)
	}
}

func (s *SessionService) isDegraded(userKey string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded[userKey]
}

func (s *SessionService) setDegraded(userKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.degraded[userKey] = true
}

// Degraded reports whether the user's session lost durable persistence.
func (s *SessionService) Degraded(userKey string) bool {
	return s.isDegraded(userKey)
}

// ── Streak check-in ─────────────────────────────────────────────────────────

// CheckInResult reports one streak transition.
type CheckInResult struct {
	Evaluation       streak.Evaluation `json:"evaluation"`
	LongestStreak    int               `json:"longest_streak"`
	MilestoneCrossed *streak.Milestone `json:"milestone_crossed,omitempty"`
	NextMilestone    *streak.Milestone `json:"next_milestone,omitempty"`
}

// CheckIn evaluates the user's daily streak for the given calendar date and
// applies the transition. Same-day calls are idempotent. Invalid dates
// (clock skew) mutate nothing and surface as a warning-level error.
func (s *SessionService) CheckIn(ctx context.Context, userKey, today string) (*CheckInResult, error) {
	state := s.loadState(ctx, userKey)

	ns, eval, err := s.applyStreak(state, today)
	if err != nil {
		s.logger.Warn("invalid streak transition", "user", userKey, "error", err)
		return &CheckInResult{Evaluation: eval, LongestStreak: state.LongestStreak}, err
	}

	result := &CheckInResult{
		Evaluation:    eval,
		LongestStreak: ns.LongestStreak,
	}
	if m, ok := streak.Crossed(state.CurrentStreak, ns.CurrentStreak); ok {
		result.MilestoneCrossed = &m
	}
	if m, ok := streak.NextMilestone(ns.CurrentStreak); ok {
		result.NextMilestone = &m
	}

	s.saveState(ctx, ns)
	return result, nil
}

// applyStreak runs one streak transition and returns the new state. On an
// invalid transition the original state is returned untouched. Crossing a
// milestone queues its XP bonus for the next attempt and grants its
// protection items immediately.
func (s *SessionService) applyStreak(state *progress.State, today string) (*progress.State, streak.Evaluation, error) {
	eval, err := streak.Evaluate(state.LastActiveDate, today, state.CurrentStreak, state.ProtectionItems)
	if err != nil {
		return state, eval, err
	}
	if eval.Status == streak.StatusAlreadyActive {
		return state, eval, nil
	}

	ns := state.Clone()
	ns.CurrentStreak = eval.NewLength
	ns.LastActiveDate = today
	ns.TodayCompleted = false
	if eval.ProtectionUsed {
		ns.ProtectionItems--
	}
	if ns.CurrentStreak > ns.LongestStreak {
		ns.LongestStreak = ns.CurrentStreak
	}
	if m, ok := streak.Crossed(state.CurrentStreak, ns.CurrentStreak); ok {
		ns.PendingXPBonus += m.RewardXPBonus
		ns.ProtectionItems += m.ProtectionItems
	}
	return ns, eval, nil
}

// ── Question flow ───────────────────────────────────────────────────────────

// NextQuestionResult is what the user practices next.
type NextQuestionResult struct {
	Question     catalog.Question `json:"question"`
	TierAdvanced bool             `json:"tier_advanced"`
	CurrentTier  catalog.Tier     `json:"current_tier"`
	Remaining    int              `json:"remaining_in_tier"`
}

// NextQuestion selects and marks the next question under the user's
// current tier and an optional module filter. Tier exhaustion advances the
// tier in fixed order without clearing the global asked set; running out of
// tiers surfaces selection.ErrAllTiersExhausted, which the caller treats as
// run-complete rather than a failure.
//
// With a module filter the advancement is transient: the filter may empty
// a tier that still holds unasked questions in other modules, so the
// stored tier only moves for unfiltered selection.
func (s *SessionService) NextQuestion(ctx context.Context, userKey, module string) (*NextQuestionResult, error) {
	state := s.loadState(ctx, userKey)

	tier := state.CurrentTier
	tierAdvanced := false
	for {
		q, err := s.selector.Next(tier, state.AskedQuestionIDs, module, state.EasyHighRun)
		if errors.Is(err, selection.ErrTierExhausted) {
			next, ok := tier.Next()
			if !ok {
				return nil, selection.ErrAllTiersExhausted
			}
			s.logger.Info("tier exhausted, advancing", "user", userKey, "from", tier, "to", next, "module", module)
			tier = next
			tierAdvanced = true
			continue
		}
		if err != nil {
			return nil, err
		}

		state = progress.MarkAsked(state, q)
		if tierAdvanced && module == "" {
			state.CurrentTier = tier
		}
		if state.EasyHighRun >= selection.AdaptiveRunLength && q.Difficulty > selection.SimpleDifficultyMax {
			// The adaptive jump fired; the run starts over.
			state.EasyHighRun = 0
		}

		s.saveState(ctx, state)
		return &NextQuestionResult{
			Question:     q,
			TierAdvanced: tierAdvanced,
			CurrentTier:  tier,
			Remaining:    s.selector.Remaining(tier, state.AskedQuestionIDs, module),
		}, nil
	}
}

// AttemptOutcome is the result of one scored submission.
type AttemptOutcome struct {
	Attempt      progress.AttemptRecord `json:"attempt"`
	Scoring      scorer.Result          `json:"scoring"`
	BonusXP      int                    `json:"bonus_xp"`
	CumulativeXP int                    `json:"cumulative_xp"`
	Level        progression.Level      `json:"level"`
}

// SubmitAnswer scores a free-text answer and folds the outcome into the
// user's progress. The flow is all-or-nothing: scoring failures, schema
// violations, and XP input errors all leave the stored state unmodified and
// keep the answer text with the caller for retry. At most one submission
// per user may be in flight.
func (s *SessionService) SubmitAnswer(ctx context.Context, userKey string, questionID int, answerText string, now time.Time) (*AttemptOutcome, error) {
	if !s.beginAttempt(userKey) {
		return nil, ErrAttemptInFlight
	}
	defer s.endAttempt(userKey)

	question, ok := s.catalog.Question(questionID)
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrUnknownQuestion, questionID)
	}

	state := s.loadState(ctx, userKey)

	result, err := s.scorer.ScoreAnswer(ctx, question, answerText)
	if err != nil {
		return nil, fmt.Errorf("score answer: %w", err)
	}
	if err := result.Validate(); err != nil {
		return nil, err
	}

	xp, err := progression.CalculateXP(result.OverallScore, question.Difficulty)
	if err != nil {
		// Validate should have caught this; treat it as a bad response
		// rather than corrupting state.
		return nil, fmt.Errorf("%w: %v", scorer.ErrInvalidResponse, err)
	}

	// The streak transition rides on the first activity of the day, so a
	// user who never hits the check-in endpoint still accrues their streak.
	today := now.Format(streak.DateLayout)
	ns, _, streakErr := s.applyStreak(state, today)
	if streakErr != nil {
		s.logger.Warn("streak not updated for attempt", "user", userKey, "error", streakErr)
		ns = state
	}

	// Reward bonuses fold into the attempt's XP: queued milestone rewards
	// plus the recovery boost when the user is deep in the red.
	bonus := ns.PendingXPBonus
	if ns.CumulativeXP < quest.RecoveryThresholdXP && result.OverallScore >= quest.RecoveryMinScore {
		bonus += quest.RecoveryBonusXP
	}

	attempt := progress.AttemptRecord{
		ID:         uuid.NewString(),
		QuestionID: question.ID,
		Timestamp:  now,
		AnswerText: answerText,
		Score:      result.OverallScore,
		EarnedXP:   xp.EarnedXP + bonus,
		Difficulty: question.Difficulty,
		Tier:       question.Tier,
	}

	breakdown := make([]progress.CategoryScore, len(result.Breakdown))
	for i, entry := range result.Breakdown {
		breakdown[i] = progress.CategoryScore{
			Category: entry.Category,
			Score:    entry.Score,
			Comment:  entry.Comment,
		}
	}

	ns = progress.ApplyAttempt(ns, s.catalog, attempt, breakdown, s.logger)
	ns.PendingXPBonus = 0
	ns.TodayCompleted = true
	if result.OverallScore >= selection.HighScoreMin && question.Difficulty <= selection.SimpleDifficultyMax {
		ns.EasyHighRun++
	} else {
		ns.EasyHighRun = 0
	}

	s.saveState(ctx, ns)

	return &AttemptOutcome{
		Attempt:      attempt,
		Scoring:      result,
		BonusXP:      bonus,
		CumulativeXP: ns.CumulativeXP,
		Level:        progression.ClassifyLevel(ns.CumulativeXP),
	}, nil
}

func (s *SessionService) beginAttempt(userKey string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[userKey] {
		return false
	}
	s.inflight[userKey] = true
	return true
}

func (s *SessionService) endAttempt(userKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, userKey)
}

// ── Read views ──────────────────────────────────────────────────────────────

// RatingWindow is the attempt window used for "current form" views.
const RatingWindow = 10

// TierSummary is one tier's progress for the overview.
type TierSummary struct {
	Tier         catalog.Tier `json:"tier"`
	Asked        int          `json:"asked"`
	Total        int          `json:"total"`
	AverageScore float64      `json:"average_score"`
}

// Overview is the stats snapshot for one user.
type Overview struct {
	UserKey         string            `json:"user_key"`
	CumulativeXP    int               `json:"cumulative_xp"`
	XPHistory       []int             `json:"xp_history"`
	Level           progression.Level `json:"level"`
	CurrentTier     catalog.Tier      `json:"current_tier"`
	Attempts        int               `json:"attempts"`
	WeightedAverage float64           `json:"weighted_average"`
	SimpleAverage   float64           `json:"simple_average"`
	RecentAverage   float64           `json:"recent_average"`
	RecentRating    int               `json:"recent_rating"`
	CurrentStreak   int               `json:"current_streak"`
	LongestStreak   int               `json:"longest_streak"`
	TodayCompleted  bool              `json:"today_completed"`
	ProtectionItems int               `json:"protection_items"`
	Tiers           []TierSummary     `json:"tiers"`

	CategoryAverages map[string]float64 `json:"category_averages"`
	KeyPointAverages map[string]float64 `json:"key_point_averages"`
}

// Progress builds the stats overview for a user.
func (s *SessionService) Progress(ctx context.Context, userKey string) (*Overview, error) {
	state := s.loadState(ctx, userKey)

	overview := &Overview{
		UserKey:          state.UserKey,
		CumulativeXP:     state.CumulativeXP,
		XPHistory:        state.XPHistory,
		Level:            progression.ClassifyLevel(state.CumulativeXP),
		CurrentTier:      state.CurrentTier,
		Attempts:         len(state.Attempts),
		WeightedAverage:  state.WeightedAverageScore(),
		SimpleAverage:    state.SimpleAverageScore(),
		RecentAverage:    state.RecentAverageScore(RatingWindow),
		RecentRating:     state.RecentRating(RatingWindow),
		CurrentStreak:    state.CurrentStreak,
		LongestStreak:    state.LongestStreak,
		TodayCompleted:   state.TodayCompleted,
		ProtectionItems:  state.ProtectionItems,
		CategoryAverages: make(map[string]float64, len(state.CategoryStats)),
		KeyPointAverages: make(map[string]float64, len(state.KeyPointStats)),
	}

	for _, tier := range catalog.TierOrder() {
		tp := state.PerTier[tier]
		if tp == nil {
			continue
		}
		overview.Tiers = append(overview.Tiers, TierSummary{
			Tier:         tier,
			Asked:        len(tp.AskedIDs),
			Total:        tp.TotalQuestions,
			AverageScore: tp.AverageScore(),
		})
	}
	for name, stats := range state.CategoryStats {
		overview.CategoryAverages[name] = stats.Average()
	}
	for name, stats := range state.KeyPointStats {
		overview.KeyPointAverages[name] = stats.Average()
	}

	return overview, nil
}

// Quests derives the current quest list for a user.
func (s *SessionService) Quests(ctx context.Context, userKey string, now time.Time) ([]quest.Quest, error) {
	state := s.loadState(ctx, userKey)
	return quest.Generate(state, now), nil
}

// ClaimQuest collects a completed quest's reward. Protection items are
// granted immediately and XP bonuses queue for the next attempt; the claim
// key persists so the reward cannot be collected twice. Daily claim keys
// are scoped to the calendar day, so tomorrow's daily is claimable again.
func (s *SessionService) ClaimQuest(ctx context.Context, userKey, questID string, now time.Time) (*quest.Quest, error) {
	state := s.loadState(ctx, userKey)

	var target *quest.Quest
	for _, q := range quest.Generate(state, now) {
		if q.ID == questID {
			target = &q
			break
		}
	}
	if target == nil || !target.Claimable {
		return nil, ErrQuestNotClaimable
	}

	ns := state.Clone()
	ns.ClaimedQuests[target.ClaimKey] = true
	ns.ProtectionItems += target.Reward.ProtectionItems
	ns.PendingXPBonus += target.Reward.XPBonus
	s.saveState(ctx, ns)

	claimed := *target
	claimed.Claimed = true
	claimed.Claimable = false
	return &claimed, nil
}

// LeaderboardEntry ranks one user.
type LeaderboardEntry struct {
	Rank         int    `json:"rank"`
	UserKey      string `json:"user_key"`
	CumulativeXP int    `json:"cumulative_xp"`
	RecentRating int    `json:"recent_rating"`
	Attempts     int    `json:"attempts"`
}

// Leaderboard ranks all users, by all-time XP or by recent-rating form.
func (s *SessionService) Leaderboard(ctx context.Context, byForm bool) ([]LeaderboardEntry, error) {
	states, err := s.primary.ListProgress(ctx)
	if err != nil {
		s.logger.Warn("leaderboard falling back to in-memory states", "error", err)
		states, err = s.fallback.ListProgress(ctx)
		if err != nil {
			return nil, err
		}
	}

	entries := make([]LeaderboardEntry, 0, len(states))
	for _, state := range states {
		entries = append(entries, LeaderboardEntry{
			UserKey:      state.UserKey,
			CumulativeXP: state.CumulativeXP,
			RecentRating: state.RecentRating(RatingWindow),
			Attempts:     len(state.Attempts),
		})
	}

	sortEntries(entries, byForm)
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

func sortEntries(entries []LeaderboardEntry, byForm bool) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if byForm && a.RecentRating != b.RecentRating {
			return a.RecentRating > b.RecentRating
		}
		if a.CumulativeXP != b.CumulativeXP {
			return a.CumulativeXP > b.CumulativeXP
		}
		return a.UserKey < b.UserKey
	})
}

// Reset destroys the user's progress and starts over from the empty state.
func (s *SessionService) Reset(ctx context.Context, userKey string) error {
	s.saveState(ctx, progress.NewState(userKey, s.catalog))
	return nil
}
