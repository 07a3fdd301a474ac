package ranking

import "github.com/jonathan/ats-ranker/internal/types"

// verdictBand maps an inclusive lower bound on the overall score to a verdict.
type verdictBand struct {
	minScore float64
	label    string
	category types.Category
}

// verdictBands is ordered from best to worst; the first band whose bound is met wins.
var verdictBands = []verdictBand{
	{85, "Excellent Match", types.CategoryHighlyRecommended},
	{70, "Good Match", types.CategoryRecommended},
	{55, "Moderate Match", types.CategoryConsider},
}

// Verdict maps an overall score to its ranking label and category.
func Verdict(overall float64) (string, types.Category) {
	for _, band := range verdictBands {
		if overall >= band.minScore {
			return band.label, band.category
		}
	}
	return "Low Match", types.CategoryNotRecommended
}
