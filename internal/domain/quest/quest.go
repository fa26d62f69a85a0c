package quest

import (
	"time"

	"github.com/prepwise/backend/internal/domain/progress"
	"github.com/prepwise/backend/internal/domain/streak"
)

// Kind groups quests by lifecycle.
type Kind string

const (
	KindDaily       Kind = "daily"
	KindAchievement Kind = "achievement"
	KindMilestone   Kind = "milestone"
	KindRecovery    Kind = "recovery"
)

// Reward describes what completing a quest grants. Protection items are
// granted at claim time; XP rewards queue as a pending bonus and fold into
// the next attempt's earned XP, which keeps cumulative XP equal to the sum
// over attempts.
type Reward struct {
	XPBonus         int `json:"xp_bonus,omitempty"`
	ProtectionItems int `json:"protection_items,omitempty"`
}

// Progress is a quest's completion counter.
type Progress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// Quest is a derived view over progress state. Quests are recomputed on
// demand and never persisted; the only durable piece is the claimed flag
// for achievements, which lives on the progress state.
type Quest struct {
	ID          string     `json:"id"`
	Kind        Kind       `json:"kind"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Progress    Progress   `json:"progress"`
	Reward      Reward     `json:"reward"`
	Completed   bool       `json:"completed"`
	Claimed     bool       `json:"claimed"`
	Claimable   bool       `json:"claimable"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`

	// ClaimKey is what a claim records in ClaimedQuests. For achievements
	// it is the quest ID; for dailies it is scoped to the calendar day so
	// the quest becomes claimable again tomorrow.
	ClaimKey string `json:"-"`
}

// Recovery quest tuning. The quest appears only while cumulative XP is
// below the threshold, a catch-up mechanic so a negative spiral stays
// recoverable. It disappears as soon as the condition resolves.
const (
	RecoveryThresholdXP = -50
	RecoveryMinScore    = 6.0
	RecoveryBonusXP     = 50
)

const (
	dailyAttemptTarget = 3
	dailyAttemptBonus  = 15
)

// Generate derives the quest list for the given state at the given time.
func Generate(s *progress.State, now time.Time) []Quest {
	today := now.Format("2006-01-02")
	expires := EndOfDay(now)

	quests := []Quest{
		dailyAttempts(s, today, expires),
		dailyQuality(s, today, now, expires),
	}

	if s.CumulativeXP < RecoveryThresholdXP {
		quests = append(quests, Quest{
			ID:          "recovery-bounce-back",
			Kind:        KindRecovery,
			Title:       "Bounce Back",
			Description: "Score 6 or higher on your next answer for a big XP boost.",
			Progress:    Progress{Current: 0, Total: 1},
			Reward:      Reward{XPBonus: RecoveryBonusXP},
		})
	}

	quests = append(quests, achievements(s)...)

	if m, ok := streak.NextMilestone(s.CurrentStreak); ok {
		quests = append(quests, Quest{
			ID:          "milestone-streak",
			Kind:        KindMilestone,
			Title:       m.Title,
			Description: "Keep your daily streak alive.",
			Progress:    Progress{Current: s.CurrentStreak, Total: m.Days},
			Reward:      Reward{XPBonus: m.RewardXPBonus, ProtectionItems: m.ProtectionItems},
		})
	}

	return quests
}

func dailyAttempts(s *progress.State, today string, expires time.Time) Quest {
	current := s.AttemptsOn(today)
	if current > dailyAttemptTarget {
		current = dailyAttemptTarget
	}
	q := Quest{
		ID:          "daily-attempts",
		Kind:        KindDaily,
		Title:       "Daily Practice",
		Description: "Answer 3 questions today.",
		Progress:    Progress{Current: current, Total: dailyAttemptTarget},
		Reward:      Reward{XPBonus: dailyAttemptBonus},
		Completed:   current >= dailyAttemptTarget,
		ExpiresAt:   &expires,
	}
	return withDailyClaimState(q, s, today)
}

// withDailyClaimState scopes a daily quest's claim to the calendar day.
// An expired unclaimed daily is simply discarded; nothing rolls over.
func withDailyClaimState(q Quest, s *progress.State, today string) Quest {
	q.ClaimKey = q.ID + ":" + today
	q.Claimed = s.ClaimedQuests[q.ClaimKey]
	q.Claimable = q.Completed && !q.Claimed
	return q
}

func dailyQuality(s *progress.State, today string, now time.Time, expires time.Time) Quest {
	current := 0
	for _, a := range s.Attempts {
		if a.Timestamp.Format("2006-01-02") == today && a.Score >= 6 {
			current = 1
			break
		}
	}
	q := Quest{
		ID:          "daily-quality",
		Kind:        KindDaily,
		Title:       "Quality Answer",
		Description: "Score 6 or higher on an answer today.",
		Progress:    Progress{Current: current, Total: 1},
		Reward:      Reward{XPBonus: 10},
		Completed:   current >= 1,
		ExpiresAt:   &expires,
	}
	return withDailyClaimState(q, s, today)
}

type achievementDef struct {
	id          string
	title       string
	description string
	total       int
	reward      Reward
	current     func(*progress.State) int
}

var achievementDefs = []achievementDef{
	{
		id: "achievement-ten-attempts", title: "Getting Serious",
		description: "Answer 10 questions.", total: 10,
		reward:  Reward{ProtectionItems: 1},
		current: func(s *progress.State) int { return len(s.Attempts) },
	},
	{
		id: "achievement-fifty-attempts", title: "Grinder",
		description: "Answer 50 questions.", total: 50,
		reward:  Reward{ProtectionItems: 2},
		current: func(s *progress.State) int { return len(s.Attempts) },
	},
	{
		id: "achievement-week-streak", title: "Seven Days Running",
		description: "Record a 7-day streak.", total: 7,
		reward:  Reward{ProtectionItems: 1},
		current: func(s *progress.State) int { return s.LongestStreak },
	},
	{
		id: "achievement-category-master", title: "Category Master",
		description: "Average 8+ across 5 scored answers in one category.", total: 5,
		reward: Reward{ProtectionItems: 1},
		current: func(s *progress.State) int {
			best := 0
			for _, stats := range s.CategoryStats {
				if stats.Average() >= 8 && stats.Count > best {
					best = stats.Count
				}
			}
			return best
		},
	},
}

func achievements(s *progress.State) []Quest {
	out := make([]Quest, 0, len(achievementDefs))
	for _, def := range achievementDefs {
		current := def.current(s)
		if current > def.total {
			current = def.total
		}
		completed := current >= def.total
		claimed := s.ClaimedQuests[def.id]
		out = append(out, Quest{
			ID:          def.id,
			Kind:        KindAchievement,
			Title:       def.title,
			Description: def.description,
			Progress:    Progress{Current: current, Total: def.total},
			Reward:      def.reward,
			Completed:   completed,
			Claimed:     claimed,
			Claimable:   completed && !claimed,
			ClaimKey:    def.id,
		})
	}
	return out
}

// EndOfDay returns the last instant of now's calendar day in now's
// location. Expired daily quests are discarded, never rolled over.
func EndOfDay(now time.Time) time.Time {
	year, month, day := now.Date()
	return time.Date(year, month, day, 23, 59, 59, int(time.Second-time.Nanosecond), now.Location())
}
