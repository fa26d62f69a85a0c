package streak

// Milestone is a fixed day-count a streak can reach, with its reward.
type Milestone struct {
	Days            int    `json:"days"`
	Title           string `json:"title"`
	RewardXPBonus   int    `json:"reward_xp_bonus"`   // folded into the day's attempt XP
	ProtectionItems int    `json:"protection_items"` // streak-protection items granted
}

// Milestones in ascending day order.
var Milestones = []Milestone{
	{Days: 3, Title: "Warming Up", RewardXPBonus: 10, ProtectionItems: 0},
	{Days: 7, Title: "One Week Strong", RewardXPBonus: 25, ProtectionItems: 1},
	{Days: 14, Title: "Two Week Habit", RewardXPBonus: 50, ProtectionItems: 1},
	{Days: 30, Title: "Monthly Master", RewardXPBonus: 120, ProtectionItems: 2},
}

// NextMilestone returns the smallest milestone strictly greater than the
// current streak length. ok is false past the last milestone.
func NextMilestone(currentLength int) (Milestone, bool) {
	for _, m := range Milestones {
		if m.Days > currentLength {
			return m, true
		}
	}
	return Milestone{}, false
}

// Crossed returns the milestone reached by moving from oldLength to
// newLength, if any. Transitions only move one day at a time, so at most
// one milestone can be crossed.
func Crossed(oldLength, newLength int) (Milestone, bool) {
	for _, m := range Milestones {
		if oldLength < m.Days && newLength >= m.Days {
			return m, true
		}
	}
	return Milestone{}, false
}
