package grades

// GradePointMap maps letter labels to grade points.
type GradePointMap map[string]float64

// DefaultGradePoints covers every label of DefaultScale on a 4.0 scale.
func DefaultGradePoints() GradePointMap {
	return GradePointMap{
		"A": 4.0, "A-": 3.7,
		"B+": 3.3, "B": 3.0, "B-": 2.7,
		"C+": 2.3, "C": 2.0, "C-": 1.7,
		"D": 1.0, "F": 0.0,
	}
}

// CreditedGrade pairs a course letter with its credit hours.
type CreditedGrade struct {
	Credits float64
	Letter  string
}

// ComputeGPA returns the credit-weighted grade-point average. Courses whose
// letter is missing from points (including N/A) are left out of both the
// numerator and the denominator. With nothing qualifying the GPA is 0.
func ComputeGPA(courses []CreditedGrade, points GradePointMap) float64 {
	var totalPoints, totalCredits float64
	for _, c := range courses {
		p, ok := points[c.Letter]
		if !ok {
			continue
		}
		totalPoints += p * c.Credits
		totalCredits += c.Credits
	}
	if totalCredits <= 0 {
		return 0
	}
	return totalPoints / totalCredits
}
