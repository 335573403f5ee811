package grades

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/alexanderramin/semester/internal/domain"
)

var scaleNumberPattern = regexp.MustCompile(`\d+(\.\d+)?`)

// DefaultScale returns the built-in ten-step letter scale.
func DefaultScale() domain.GradingScale {
	return domain.GradingScale{
		{Label: "A", MinPercent: 93},
		{Label: "A-", MinPercent: 90},
		{Label: "B+", MinPercent: 87},
		{Label: "B", MinPercent: 83},
		{Label: "B-", MinPercent: 80},
		{Label: "C+", MinPercent: 77},
		{Label: "C", MinPercent: 73},
		{Label: "C-", MinPercent: 70},
		{Label: "D", MinPercent: 60},
		{Label: "F", MinPercent: 0},
	}
}

// ParseScale parses free text with one "<label>: <num>[-<num>]" entry per
// line. When a line carries two numbers the smaller one is the threshold,
// so "A: 100-94" and "A: 94-100" agree. Lines without a label or a number
// are ignored; a text with no usable line is a validation error.
func ParseScale(text string) (domain.GradingScale, error) {
	var scale domain.GradingScale
	for _, line := range strings.Split(text, "\n") {
		label, rest, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		nums := scaleNumberPattern.FindAllString(rest, 2)
		if len(nums) == 0 {
			continue
		}
		minPercent, err := strconv.ParseFloat(nums[0], 64)
		if err != nil {
			continue
		}
		if len(nums) > 1 {
			if second, err := strconv.ParseFloat(nums[1], 64); err == nil && second < minPercent {
				minPercent = second
			}
		}
		scale = append(scale, domain.GradeThreshold{Label: label, MinPercent: minPercent})
	}
	if len(scale) == 0 {
		return nil, domain.NewValidationError("grading_scale", "contains no \"<label>: <number>\" lines")
	}
	return scale, nil
}

// ParseScaleOrDefault parses text and falls back to DefaultScale when
// nothing usable is found.
func ParseScaleOrDefault(text string) domain.GradingScale {
	scale, err := ParseScale(text)
	if err != nil {
		return DefaultScale()
	}
	return scale
}

// FormatScale renders a scale back into the line format ParseScale reads.
func FormatScale(scale domain.GradingScale) string {
	sorted := sortedDescending(scale)
	lines := make([]string, 0, len(sorted))
	for _, t := range sorted {
		lines = append(lines, t.Label+": "+strconv.FormatFloat(t.MinPercent, 'f', -1, 64))
	}
	return strings.Join(lines, "\n")
}

// LetterFor picks the highest threshold whose MinPercent is <= percent.
// Comparison is strict with no rounding. Below every threshold the lowest
// label is returned. A nil or empty scale uses DefaultScale.
func LetterFor(percent float64, scale domain.GradingScale) string {
	if len(scale) == 0 {
		scale = DefaultScale()
	}
	sorted := sortedDescending(scale)
	for _, t := range sorted {
		if percent >= t.MinPercent {
			return t.Label
		}
	}
	return sorted[len(sorted)-1].Label
}

// NextThreshold returns the nearest threshold strictly above percent.
func NextThreshold(percent float64, scale domain.GradingScale) (domain.GradeThreshold, bool) {
	if len(scale) == 0 {
		scale = DefaultScale()
	}
	sorted := sortedDescending(scale)
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i].MinPercent > percent {
			return sorted[i], true
		}
	}
	return domain.GradeThreshold{}, false
}

func sortedDescending(scale domain.GradingScale) domain.GradingScale {
	sorted := make(domain.GradingScale, len(scale))
	copy(sorted, scale)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinPercent > sorted[j].MinPercent
	})
	return sorted
}
