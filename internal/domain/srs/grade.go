package srs

// Grade is the user-facing answer rating. The classic SM-2 quality scale
// (0-5) collapses to three buttons: "don't know", "partially", "know".
type Grade string

// Possible answer grades.
const (
	GradeFail    Grade = "fail"
	GradePartial Grade = "partial"
	GradePass    Grade = "pass"
)

// quality maps a grade onto the SM-2 quality scale.
func (g Grade) quality() int {
	switch g {
	case GradePass:
		return 5
	case GradePartial:
		return 3
	default:
		return 0
	}
}

// Success reports whether the grade counts as a successful recall.
func (g Grade) Success() bool {
	return g.quality() >= 3
}

// Valid reports whether the grade is one of the three supported ratings.
func (g Grade) Valid() bool {
	switch g {
	case GradeFail, GradePartial, GradePass:
		return true
	default:
		return false
	}
}
