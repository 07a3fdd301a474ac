package ranking

import (
	"strings"

	"github.com/jonathan/ats-ranker/internal/types"
)

// educationTerm maps a substring of a degree label to an ordinal level.
type educationTerm struct {
	label string
	level int
}

// educationVocabulary is scanned in declaration order. For a requirement the first term
// contained in the label decides the level, so "high school diploma" is level 1.
var educationVocabulary = []educationTerm{
	{"high school", 1},
	{"diploma", 2},
	{"associate", 3},
	{"bachelor", 4},
	{"master", 5},
	{"phd", 6},
	{"doctorate", 6},
}

// EducationLevel returns the level of the first vocabulary term found in label, or 0.
func EducationLevel(label string) int {
	lower := strings.ToLower(label)
	for _, term := range educationVocabulary {
		if strings.Contains(lower, term.label) {
			return term.level
		}
	}
	return 0
}

// highestEducationLevel returns the highest level of any vocabulary term found in label.
func highestEducationLevel(label string) int {
	lower := strings.ToLower(label)
	level := 0
	for _, term := range educationVocabulary {
		if strings.Contains(lower, term.label) {
			level = max(level, term.level)
		}
	}
	return level
}

// ScoreEducation scores the candidate's education against a required level using DefaultTuning.
func ScoreEducation(required *string, education []types.EducationRecord) float64 {
	return defaultTuning.ScoreEducation(required, education)
}

// ScoreEducation compares the candidate's highest degree with the required level.
// A nil or blank requirement scores 100. Missing candidate data and unparseable requirements
// get neutral scores rather than penalties.
func (t Tuning) ScoreEducation(required *string, education []types.EducationRecord) float64 {
	if required == nil || strings.TrimSpace(*required) == "" {
		return fullScore
	}
	if len(education) == 0 {
		return t.EducationMissing
	}

	requiredLevel := EducationLevel(*required)
	if requiredLevel == 0 {
		return t.EducationUnparseable
	}

	candidateLevel := 0
	for _, edu := range education {
		candidateLevel = max(candidateLevel, highestEducationLevel(edu.Degree))
	}

	switch {
	case candidateLevel >= requiredLevel:
		return fullScore
	case candidateLevel == requiredLevel-1:
		return t.EducationAdjacent
	default:
		return max(t.EducationFloor, round2(float64(candidateLevel)/float64(requiredLevel)*100))
	}
}
