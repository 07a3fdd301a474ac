package ranking

import "strings"

// ScoreLocation scores location compatibility using DefaultTuning.
func ScoreLocation(jobLocation string, candidateLocations []string, willingToRelocate bool) float64 {
	return defaultTuning.ScoreLocation(jobLocation, candidateLocations, willingToRelocate)
}

// ScoreLocation scores how well the candidate's preferred locations fit the job location.
//
// Order of checks: no job location, no candidate data, relocation, exact match, then a
// substring match in either direction. The substring scan stops at the first hit.
// Blank candidate entries are ignored, so an empty string is never a substring hit; a list
// holding only blanks scores as no data.
func (t Tuning) ScoreLocation(jobLocation string, candidateLocations []string, willingToRelocate bool) float64 {
	job := strings.ToLower(strings.TrimSpace(jobLocation))
	if job == "" {
		return fullScore
	}

	preferred := make([]string, 0, len(candidateLocations))
	for _, loc := range candidateLocations {
		if norm := strings.ToLower(strings.TrimSpace(loc)); norm != "" {
			preferred = append(preferred, norm)
		}
	}

	if willingToRelocate {
		return fullScore
	}
	if len(preferred) == 0 {
		return t.LocationNoData
	}

	for _, loc := range preferred {
		if loc == job {
			return fullScore
		}
	}

	for _, loc := range preferred {
		if strings.Contains(loc, job) || strings.Contains(job, loc) {
			return t.LocationPartial
		}
	}

	return t.LocationMismatch
}
