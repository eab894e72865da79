package analysis

import (
	"math"

	"github.com/alyansheikhh/reportcard/internal/grading"
)

// Category is a performance tier on the class percentage.
type Category struct {
	Label   string `json:"label"`
	Comment string `json:"comment"`
	Icon    string `json:"icon"`

	min float64
}

// categories is evaluated top-down; the first band whose lower bound the
// percentage reaches wins.
var categories = []Category{
	{
		Label:   "Exceptional",
		Comment: "Outstanding performance across the board. Keep aiming high!",
		Icon:    "🌟",
		min:     85,
	},
	{
		Label:   "Excellent",
		Comment: "Excellent work with a strong command of most subjects.",
		Icon:    "🏆",
		min:     75,
	},
	{
		Label:   "Good",
		Comment: "Good performance with clear room to grow in a few areas.",
		Icon:    "👍",
		min:     60,
	},
	{
		Label:   "Satisfactory",
		Comment: "Satisfactory results. Steady, focused effort will lift the scores.",
		Icon:    "📘",
		min:     50,
	},
	{
		Label:   "Needs Improvement",
		Comment: "Needs improvement. Regular practice and extra support are recommended.",
		Icon:    "⚠️",
		min:     40,
	},
	{
		Label:   "Critical",
		Comment: "Critical. Immediate attention and a structured study plan are required.",
		Icon:    "🚨",
		min:     math.Inf(-1),
	},
}

// CategoryFor returns the performance tier for a class percentage.
func CategoryFor(percentage float64) Category {
	for _, c := range categories {
		if percentage >= c.min {
			return c
		}
	}
	return categories[len(categories)-1]
}

// Categories returns all tiers from best to worst.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ConsistencyLevel describes how evenly marks are spread.
type ConsistencyLevel struct {
	Note  string        `json:"note"`
	Color grading.Color `json:"color"`
}

// ConsistencyFor classifies a population standard deviation.
func ConsistencyFor(stdDev float64) ConsistencyLevel {
	switch {
	case stdDev < 8:
		return ConsistencyLevel{Note: "Highly consistent", Color: grading.SeverityExcellent.Color()}
	case stdDev < 15:
		return ConsistencyLevel{Note: "Moderate variation", Color: grading.SeverityAverage.Color()}
	default:
		return ConsistencyLevel{Note: "High variation", Color: grading.SeverityCritical.Color()}
	}
}
