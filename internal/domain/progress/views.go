package progress

// Derived read-only views over the attempt history. None of these mutate
// state; they are recomputed on demand.

// WeightedAverageScore weights each attempt's score by its difficulty:
// Σ(score*difficulty) / Σ(difficulty).
func (s *State) WeightedAverageScore() float64 {
	var weighted, weights float64
	for _, a := range s.Attempts {
		weighted += a.Score * float64(a.Difficulty)
		weights += float64(a.Difficulty)
	}
	if weights == 0 {
		return 0
	}
	return weighted / weights
}

// SimpleAverageScore is the unweighted mean score across all attempts.
func (s *State) SimpleAverageScore() float64 {
	if len(s.Attempts) == 0 {
		return 0
	}
	var total float64
	for _, a := range s.Attempts {
		total += a.Score
	}
	return total / float64(len(s.Attempts))
}

// RecentAverageScore is the mean score over the last windowSize attempts.
func (s *State) RecentAverageScore(windowSize int) float64 {
	window := s.recentWindow(windowSize)
	if len(window) == 0 {
		return 0
	}
	var total float64
	for _, a := range window {
		total += a.Score
	}
	return total / float64(len(window))
}

// RecentRating sums EarnedXP over the last windowSize attempts. It measures
// current form for leaderboards, as opposed to all-time CumulativeXP.
func (s *State) RecentRating(windowSize int) int {
	rating := 0
	for _, a := range s.recentWindow(windowSize) {
		rating += a.EarnedXP
	}
	return rating
}

func (s *State) recentWindow(windowSize int) []AttemptRecord {
	if windowSize <= 0 || len(s.Attempts) == 0 {
		return nil
	}
	if windowSize > len(s.Attempts) {
		windowSize = len(s.Attempts)
	}
	return s.Attempts[len(s.Attempts)-windowSize:]
}

// AttemptsOn counts attempts made on the given calendar date (local time of
// the stored timestamps).
func (s *State) AttemptsOn(date string) int {
	n := 0
	for _, a := range s.Attempts {
		if a.Timestamp.Format("2006-01-02") == date {
			n++
		}
	}
	return n
}
