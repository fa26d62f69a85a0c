package catalog

import "fmt"

// Tier is a seniority level. It partitions the question catalog and drives
// which questions a user is served next.
type Tier string

const (
	TierJunior Tier = "junior"
	TierMid    Tier = "mid"
	TierSenior Tier = "senior"
	TierStaff  Tier = "staff"

	// TierAll is a selection filter, not a catalog partition. No question
	// carries it.
	TierAll Tier = "all"
)

// tierOrder is the fixed progression order.
var tierOrder = []Tier{TierJunior, TierMid, TierSenior, TierStaff}

// TierOrder returns the tiers in progression order.
func TierOrder() []Tier {
	out := make([]Tier, len(tierOrder))
	copy(out, tierOrder)
	return out
}

// ParseTier validates a tier string coming from outside the core.
func ParseTier(s string) (Tier, error) {
	switch Tier(s) {
	case TierJunior, TierMid, TierSenior, TierStaff, TierAll:
		return Tier(s), nil
	}
	return "", fmt.Errorf("unknown tier %q", s)
}

// Next returns the tier that follows t in progression order.
// The second return is false for the last tier and for TierAll.
func (t Tier) Next() (Tier, bool) {
	for i, candidate := range tierOrder {
		if candidate == t && i+1 < len(tierOrder) {
			return tierOrder[i+1], true
		}
	}
	return "", false
}

// IsPartition reports whether t names an actual catalog partition
// (everything except TierAll).
func (t Tier) IsPartition() bool {
	for _, candidate := range tierOrder {
		if candidate == t {
			return true
		}
	}
	return false
}

// Matches reports whether a question in questionTier is visible under the
// selection filter t.
func (t Tier) Matches(questionTier Tier) bool {
	return t == TierAll || t == questionTier
}
