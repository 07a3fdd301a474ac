// Package schemas embeds the JSON Schemas for ats-ranker inputs and outputs.
package schemas

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed *.schema.json
var files embed.FS

// Schema names.
const (
	JobRequirement    = "job_requirement"
	JobRequirements   = "job_requirements"
	CandidateProfile  = "candidate_profile"
	CandidateProfiles = "candidate_profiles"
	Weights           = "weights"
	ScoreBreakdown    = "score_breakdown"
	RankedCandidates  = "ranked_candidates"
)

const suffix = ".schema.json"

// Get returns the schema document registered under name.
func Get(name string) (string, error) {
	data, err := files.ReadFile(strings.TrimSuffix(name, suffix) + suffix)
	if err != nil {
		return "", fmt.Errorf("unknown schema %q", name)
	}
	return string(data), nil
}

// Names lists the embedded schema names in sorted order.
func Names() []string {
	entries, err := fs.Glob(files, "*"+suffix)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e, suffix))
	}
	sort.Strings(names)
	return names
}
