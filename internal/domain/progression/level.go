package progression

// Level describes where cumulative XP places a user on the mastery ladder.
// This is the *mastery* classification; it is independent of the seniority
// tier the user selected for question difficulty, and the two are never
// interchangeable.
type Level struct {
	Tier            int     `json:"tier"`
	Label           string  `json:"label"`
	NextLabel       string  `json:"next_label,omitempty"`
	XPToNext        int     `json:"xp_to_next"`
	ProgressPercent float64 `json:"progress_percent"`
}

type levelBand struct {
	label string
	min   int
}

// Mastery bands with fixed, monotonically increasing XP thresholds.
var levelBands = []levelBand{
	{"Foundation", 0},
	{"Intermediate", 250},
	{"Advanced", 750},
	{"Expert", 1750},
}

// topBandWindow is the cosmetic progress window for the unbounded top band.
// It affects the progress bar only, never classification.
const topBandWindow = 1000

// ClassifyLevel maps cumulative XP to a mastery level. Negative XP
// classifies into the bottom band with progress clamped to 0.
func ClassifyLevel(cumulativeXP int) Level {
	idx := 0
	for i := len(levelBands) - 1; i >= 0; i-- {
		if cumulativeXP >= levelBands[i].min {
			idx = i
			break
		}
	}

	band := levelBands[idx]
	level := Level{
		Tier:  idx,
		Label: band.label,
	}

	var window int
	if idx == len(levelBands)-1 {
		window = topBandWindow
	} else {
		next := levelBands[idx+1]
		level.NextLabel = next.label
		level.XPToNext = next.min - cumulativeXP
		window = next.min - band.min
	}

	pct := float64(cumulativeXP-band.min) / float64(window) * 100
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	level.ProgressPercent = pct

	return level
}
