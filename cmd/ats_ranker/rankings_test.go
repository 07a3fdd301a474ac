package main

import (
	"context"
	"encoding/json"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-ranker/internal/config"
	"github.com/jonathan/ats-ranker/internal/db"
	"github.com/jonathan/ats-ranker/internal/types"
)

type memoryRankingStore struct {
	rankings map[uuid.UUID]db.Ranking
}

func (m *memoryRankingStore) GetRanking(_ context.Context, id uuid.UUID) (*db.Ranking, error) {
	r, ok := m.rankings[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *memoryRankingStore) ListRankingsForJob(_ context.Context, jobID string, limit int) ([]db.Ranking, error) {
	var out []db.Ranking
	for _, r := range m.rankings {
		if r.JobID == jobID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OverallScore > out[j].OverallScore })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memoryRankingStore) DeleteRanking(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := m.rankings[id]; !ok {
		return false, nil
	}
	delete(m.rankings, id)
	return true, nil
}

var _ rankingStore = (*db.DB)(nil)

func useRankingStore(t *testing.T, rankings ...db.Ranking) *memoryRankingStore {
	t.Helper()
	store := &memoryRankingStore{rankings: map[uuid.UUID]db.Ranking{}}
	for _, r := range rankings {
		store.rankings[r.ID] = r
	}
	original := rankingStoreFactory
	rankingStoreFactory = func(*cobra.Command, *config.Config) (rankingStore, func(), error) {
		return store, func() {}, nil
	}
	t.Cleanup(func() { rankingStoreFactory = original })
	return store
}

func storedRanking(jobID, candidateID string, score float64) db.Ranking {
	return db.Ranking{
		ID:           uuid.New(),
		JobID:        jobID,
		CandidateID:  candidateID,
		OverallScore: score,
		Category:     types.CategoryConsider,
		Breakdown:    types.ScoreBreakdown{OverallScore: score, Ranking: "Moderate Match", Category: types.CategoryConsider},
		CreatedAt:    time.Now(),
	}
}

func TestRankingsListCommand(t *testing.T) {
	useRankingStore(t,
		storedRanking("job-1", "cand-low", 56),
		storedRanking("job-1", "cand-high", 68),
		storedRanking("job-2", "cand-other", 90),
	)

	stdout, _, err := executeCommand(t, "rankings", "list", "--job", "job-1")
	require.NoError(t, err)

	var got []db.Ranking
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "cand-high", got[0].CandidateID)
	assert.Equal(t, "cand-low", got[1].CandidateID)

	stdout, _, err = executeCommand(t, "rankings", "list", "--job", "job-1", "--limit", "1")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Len(t, got, 1)
}

func TestRankingsListCommand_EmptyIsArray(t *testing.T) {
	useRankingStore(t)

	stdout, _, err := executeCommand(t, "rankings", "list", "--job", "nobody")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", stdout)
}

func TestRankingsShowAndDeleteCommands(t *testing.T) {
	r := storedRanking("job-1", "cand-1", 61.5)
	store := useRankingStore(t, r)

	stdout, _, err := executeCommand(t, "rankings", "show", "--id", r.ID.String())
	require.NoError(t, err)
	var got db.Ranking
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, r.ID, got.ID)
	assert.Equal(t, 61.5, got.Breakdown.OverallScore)

	stdout, _, err = executeCommand(t, "rankings", "delete", "--id", r.ID.String())
	require.NoError(t, err)
	assert.Contains(t, stdout, "Deleted ranking "+r.ID.String())
	assert.Empty(t, store.rankings)

	_, _, err = executeCommand(t, "rankings", "delete", "--id", r.ID.String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, _, err = executeCommand(t, "rankings", "show", "--id", r.ID.String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRankingsCommands_InvalidID(t *testing.T) {
	useRankingStore(t)

	_, _, err := executeCommand(t, "rankings", "show", "--id", "not-a-uuid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid ranking id")
}

func TestRankingsCommands_RequireDatabase(t *testing.T) {
	_, _, err := executeCommand(t, "rankings", "list", "--job", "job-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.EnvDatabaseURL)
}
