package ranking

// ScoreExperience scores candidate years against the required minimum using DefaultTuning.
func ScoreExperience(requiredYears, candidateYears int) float64 {
	return defaultTuning.ScoreExperience(requiredYears, candidateYears)
}

// ScoreExperience scores candidate years against the required minimum.
//
// Meeting the requirement scores 100 plus an overqualification bonus of
// ExperienceBonusPerYear for every extra year, capped at ExperienceBonusCap. The result is
// deliberately not clamped to 100. Falling short scores proportionally.
// Negative inputs are treated as zero.
func (t Tuning) ScoreExperience(requiredYears, candidateYears int) float64 {
	required := max(requiredYears, 0)
	candidate := max(candidateYears, 0)

	if required == 0 {
		return fullScore
	}
	if candidate == 0 {
		return 0
	}

	if candidate >= required {
		bonus := min(float64(candidate-required)*t.ExperienceBonusPerYear, t.ExperienceBonusCap)
		return fullScore + bonus
	}

	return round2(float64(candidate) / float64(required) * 100)
}
