package domain

// GradeThreshold maps a letter label to the minimum percent that earns it.
type GradeThreshold struct {
	Label      string  `json:"label"`
	MinPercent float64 `json:"min_percent"`
}

// GradingScale is an ordered list of thresholds. Order on disk is not
// significant; lookups sort descending by MinPercent.
type GradingScale []GradeThreshold

// Lowest returns the threshold with the smallest MinPercent.
func (s GradingScale) Lowest() (GradeThreshold, bool) {
	if len(s) == 0 {
		return GradeThreshold{}, false
	}
	lowest := s[0]
	for _, t := range s[1:] {
		if t.MinPercent < lowest.MinPercent {
			lowest = t
		}
	}
	return lowest, true
}
