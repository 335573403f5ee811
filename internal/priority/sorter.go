package priority

import "sort"

// InsightRank returns a sort priority (lower = more urgent).
func InsightRank(p InsightPriority) int {
	switch p {
	case InsightCritical:
		return 0
	case InsightHigh:
		return 1
	default:
		return 2
	}
}

// SortRanked orders panic items by priority score, highest first. The sort
// is stable so equal scores keep collection order.
func SortRanked(items []RankedAssignment) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PriorityScore > items[j].PriorityScore
	})
}

// SortSurvival orders survival items by blended score, highest first.
func SortSurvival(items []SurvivalItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
}

// SortInsights orders insights critical > high > medium, stable within a level.
func SortInsights(items []Insight) {
	sort.SliceStable(items, func(i, j int) bool {
		return InsightRank(items[i].Priority) < InsightRank(items[j].Priority)
	})
}
