package observability

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/jonathan/ats-ranker/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintScoreBreakdown(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := &types.ScoreBreakdown{
		OverallScore: 101.2,
		Ranking:      "Excellent Match",
		Category:     types.CategoryHighlyRecommended,
		Breakdown: types.Breakdown{
			Skills:     types.DimensionScore{Score: 100, Weight: 0.4, WeightedScore: 40},
			Experience: types.DimensionScore{Score: 104, Weight: 0.3, WeightedScore: 31.2},
		},
		MatchedSkills: []string{"python", "sql"},
		MissingSkills: []string{"spark"},
	}

	p.PrintScoreBreakdown(result)
	output := buf.String()

	assert.Contains(t, output, "SCORE BREAKDOWN")
	assert.Contains(t, output, "101.20")
	assert.Contains(t, output, "highly_recommended")
	assert.Contains(t, output, "104.00")
	assert.Contains(t, output, "Matched: python, sql")
	assert.Contains(t, output, "Missing: spark")
}

func TestPrintScoreBreakdown_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintScoreBreakdown(nil)

	assert.Empty(t, buf.String())
}

func TestPrintRankedCandidates(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	ranked := &types.RankedCandidates{JobID: "backend"}
	for i := 0; i < 7; i++ {
		ranked.Ranked = append(ranked.Ranked, types.RankedPair{
			JobID:       "backend",
			CandidateID: fmt.Sprintf("cand-%d", i),
			Result:      types.ScoreBreakdown{OverallScore: float64(90 - i*10), Category: types.CategoryRecommended},
		})
	}

	p.PrintRankedCandidates(ranked)
	output := buf.String()

	assert.Contains(t, output, "TOP RANKED CANDIDATES")
	assert.Contains(t, output, "Total candidates ranked: 7")
	assert.Contains(t, output, "cand-0")
	assert.Contains(t, output, "cand-4")
	assert.NotContains(t, output, "cand-5")
	assert.Contains(t, output, "... and 2 more candidates")
}

func TestPrintRankedCandidates_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRankedCandidates(&types.RankedCandidates{})
	assert.Empty(t, buf.String())
}

func TestJoinLimited(t *testing.T) {
	assert.Equal(t, "a, b", joinLimited([]string{"a", "b"}))
	assert.Equal(t, "a, b, c, d, e (+2)", joinLimited([]string{"a", "b", "c", "d", "e", "f", "g"}))
}
