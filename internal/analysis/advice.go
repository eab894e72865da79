package analysis

// recommendations are keyed on a single subject mark, best band first.
var recommendations = []struct {
	min  int
	text string
}{
	{90, "Excellent mastery. Explore advanced topics and competitions to stay challenged."},
	{80, "Strong grasp. Tackle harder problem sets to reach the top band."},
	{70, "Good understanding. Revisit the weaker chapters to push higher."},
	{60, "Fair performance. Regular revision and practice tests will help."},
	{50, "Average. Strengthen the fundamentals with a consistent study schedule."},
	{40, "Below average. Ask the teacher for extra help and practise daily."},
	{0, "Critical. Needs immediate intervention and one-on-one tutoring."},
}

// RecommendationFor returns the advisory text for one subject mark.
func RecommendationFor(mark int) string {
	for _, r := range recommendations[:len(recommendations)-1] {
		if mark >= r.min {
			return r.text
		}
	}
	return recommendations[len(recommendations)-1].text
}

// ImprovementPotential projects a subject's next score. Lower marks are
// projected larger gains but capped at lower ceilings.
func ImprovementPotential(mark int) int {
	switch {
	case mark < 50:
		return min(mark+20, 75)
	case mark < 70:
		return min(mark+15, 85)
	case mark < 85:
		return min(mark+10, 95)
	default:
		return min(mark+5, 100)
	}
}
