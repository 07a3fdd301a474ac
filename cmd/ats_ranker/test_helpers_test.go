package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-ranker/internal/config"
	"github.com/jonathan/ats-ranker/internal/storage"
)

// resetFlags restores every flag of cmd and its children to its default value.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// executeCommand runs the root command in-process and returns stdout and stderr.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(config.EnvStorageBucketURL, "")
	t.Setenv(config.EnvDatabaseURL, "")
	t.Setenv(config.EnvAdminPassword, "")

	resetFlags(rootCmd)
	appConfig = nil

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// useMemoryStore routes storage commands to an in-process store for the test.
func useMemoryStore(t *testing.T) *storage.MemoryStore {
	t.Helper()
	mem := storage.NewMemoryStore()
	original := storeFactory
	storeFactory = func(*config.Config) (storage.Store, error) { return mem, nil }
	t.Cleanup(func() { storeFactory = original })
	return mem
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func writePDF(t *testing.T, dir, name, text string) string {
	t.Helper()
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetFont("Helvetica", "", 12)
	doc.AddPage()
	doc.Cell(40, 10, text)
	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

const (
	testJobJSON = `{
		"id": "job-remote-data",
		"required_skills": ["python", "sql"],
		"min_experience": 3,
		"location": "Remote",
		"education_required": "Bachelor"
	}`
	testCandidateJSON = `{
		"id": "cand-1",
		"primary_skills": ["Python", "SQL", "Java"],
		"experience_years": 5,
		"preferred_locations": [],
		"willing_to_relocate": true,
		"education": [{"degree": "Bachelor of Science"}]
	}`
)
