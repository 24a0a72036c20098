package domain

// Grade represents the user's judgment of recall difficulty for a review.
type Grade string

// Possible grade values
const (
	GradeAgain Grade = "again"
	GradeHard  Grade = "hard"
	GradeGood  Grade = "good"
	GradeEasy  Grade = "easy"
)

// IsValid reports whether the grade is one of the four known values.
func (g Grade) IsValid() bool {
	switch g {
	case GradeAgain, GradeHard, GradeGood, GradeEasy:
		return true
	default:
		return false
	}
}
