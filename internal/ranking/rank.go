package ranking

import (
	"go.uber.org/zap"

	"github.com/jonathan/ats-ranker/internal/types"
)

var (
	defaultTuning = DefaultTuning()
	defaultRanker = NewRanker()
)

// Ranker combines the dimension scorers into a weighted verdict.
// A Ranker has no mutable state and is safe for concurrent use.
type Ranker struct {
	tuning  Tuning
	weights Weights
	logger  *zap.Logger
}

// Option configures a Ranker.
type Option func(*Ranker)

// WithTuning overrides the scorer constants.
func WithTuning(t Tuning) Option {
	return func(r *Ranker) {
		r.tuning = t
	}
}

// WithWeights sets the weights used when Rank is called without explicit weights.
func WithWeights(w Weights) Option {
	return func(r *Ranker) {
		r.weights = w
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(r *Ranker) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRanker creates a Ranker with default tuning and weights.
func NewRanker(opts ...Option) *Ranker {
	r := &Ranker{
		tuning:  DefaultTuning(),
		weights: DefaultWeights(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Tuning returns the scorer constants in use.
func (r *Ranker) Tuning() Tuning {
	return r.tuning
}

// Rank scores a candidate against a job with the package defaults.
// Nil weights select DefaultWeights.
func Rank(job *types.JobRequirement, candidate *types.CandidateProfile, weights *Weights) types.ScoreBreakdown {
	return defaultRanker.Rank(job, candidate, weights)
}

// Rank scores a candidate against a job. Nil weights select the Ranker's weights.
// Weights that do not sum to 1.0 are used as given and logged as a warning.
func (r *Ranker) Rank(job *types.JobRequirement, candidate *types.CandidateProfile, weights *Weights) types.ScoreBreakdown {
	w := r.weights
	if weights != nil {
		w = *weights
	}
	if !w.Normalized() {
		r.logger.Warn("ranking weights do not sum to 1.0; overall score leaves the 0-100 scale",
			zap.Float64("sum", w.Sum()),
			zap.String("job_id", job.ID),
		)
	}

	skills := ScoreSkills(job.RequiredSkills, candidate.PrimarySkills)
	experience := r.tuning.ScoreExperience(job.MinExperience, candidate.ExperienceYears)
	location := r.tuning.ScoreLocation(job.Location, candidate.PreferredLocations, candidate.WillingToRelocate)
	education := r.tuning.ScoreEducation(job.EducationRequired, candidate.Education)

	raw := skills*w.skills +
		experience*w.experience +
		location*w.location +
		education*w.education
	overall := round2(raw)

	// Bands use the unrounded sum; only the reported score is rounded.
	label, category := Verdict(raw)
	matched, missing := MatchSkills(job.RequiredSkills, candidate.PrimarySkills)

	r.logger.Debug("ranked candidate",
		zap.String("job_id", job.ID),
		zap.String("candidate_id", candidate.ID),
		zap.Float64("overall_score", overall),
		zap.String("category", string(category)),
	)

	return types.ScoreBreakdown{
		OverallScore: overall,
		Ranking:      label,
		Category:     category,
		Breakdown: types.Breakdown{
			Skills:     dimension(skills, w.skills),
			Experience: dimension(experience, w.experience),
			Location:   dimension(location, w.location),
			Education:  dimension(education, w.education),
		},
		MatchedSkills: matched,
		MissingSkills: missing,
	}
}

func dimension(score, weight float64) types.DimensionScore {
	return types.DimensionScore{
		Score:         score,
		Weight:        weight,
		WeightedScore: round2(score * weight),
	}
}
