package ranking

import "strings"

// ScoreSkills returns the share of required skills present in the candidate's skills, 0-100.
// Comparison is case-insensitive and ignores surrounding whitespace.
func ScoreSkills(required, candidate []string) float64 {
	if len(required) == 0 {
		return fullScore
	}
	if len(candidate) == 0 {
		return 0
	}

	matched, _ := MatchSkills(required, candidate)
	return round2(float64(len(matched)) / float64(len(required)) * 100)
}

// MatchSkills splits the normalized required skills into those the candidate has and those
// missing. Both lists keep requirement order and contain no duplicates.
func MatchSkills(required, candidate []string) (matched, missing []string) {
	have := make(map[string]bool, len(candidate))
	for _, skill := range candidate {
		have[normalizeSkill(skill)] = true
	}

	seen := make(map[string]bool, len(required))
	for _, skill := range required {
		norm := normalizeSkill(skill)
		if seen[norm] {
			continue
		}
		seen[norm] = true
		if have[norm] {
			matched = append(matched, norm)
		} else {
			missing = append(missing, norm)
		}
	}
	return matched, missing
}

func normalizeSkill(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}
