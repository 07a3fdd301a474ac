//nolint:revive // types is a standard Go package name pattern
package types

// Category is the machine-readable recommendation tag of a ranking.
type Category string

// Recommendation categories, best first.
const (
	CategoryHighlyRecommended Category = "highly_recommended"
	CategoryRecommended       Category = "recommended"
	CategoryConsider          Category = "consider"
	CategoryNotRecommended    Category = "not_recommended"
)

// DimensionScore is the audit record for one evaluation axis.
type DimensionScore struct {
	Score         float64 `json:"score"`          // 0-100, two decimals
	Weight        float64 `json:"weight"`         // weight applied
	WeightedScore float64 `json:"weighted_score"` // score * weight, two decimals
}

// Breakdown groups the four dimension scores.
type Breakdown struct {
	Skills     DimensionScore `json:"skills"`
	Experience DimensionScore `json:"experience"`
	Location   DimensionScore `json:"location"`
	Education  DimensionScore `json:"education"`
}

// ScoreBreakdown is the full result of ranking one candidate against one job.
// OverallScore may exceed 100 when the experience sub-score carries an overqualification bonus.
type ScoreBreakdown struct {
	OverallScore  float64   `json:"overall_score"`
	Ranking       string    `json:"ranking"`
	Category      Category  `json:"category"`
	Breakdown     Breakdown `json:"breakdown"`
	MatchedSkills []string  `json:"matched_skills,omitempty"`
	MissingSkills []string  `json:"missing_skills,omitempty"`
}

// RankedPair is one entry of a batch ranking.
type RankedPair struct {
	JobID       string         `json:"job_id"`
	CandidateID string         `json:"candidate_id"`
	Result      ScoreBreakdown `json:"result"`
}

// RankedCandidates holds a batch ranking grouped per job, best candidates first.
type RankedCandidates struct {
	JobID  string       `json:"job_id"`
	Ranked []RankedPair `json:"ranked"`
}
