package ranking

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/ats-ranker/internal/types"
)

// RankBatch ranks every candidate against every job, one task per pair, with at most
// concurrency tasks in flight (GOMAXPROCS when concurrency <= 0).
// Results are grouped per job in input order; within a job candidates are sorted by overall
// score, best first, ties keeping input order.
func (r *Ranker) RankBatch(
	ctx context.Context,
	jobs []types.JobRequirement,
	candidates []types.CandidateProfile,
	weights *Weights,
	concurrency int,
) ([]types.RankedCandidates, error) {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	results := make([][]types.RankedPair, len(jobs))
	for i := range results {
		results[i] = make([]types.RankedPair, len(candidates))
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i := range jobs {
		for j := range candidates {
			g.Go(func() error {
				if err := gCtx.Err(); err != nil {
					return err
				}
				results[i][j] = types.RankedPair{
					JobID:       jobID(&jobs[i], i),
					CandidateID: candidateID(&candidates[j], j),
					Result:      r.Rank(&jobs[i], &candidates[j], weights),
				}
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch ranking aborted: %w", err)
	}

	ranked := make([]types.RankedCandidates, len(jobs))
	for i, pairs := range results {
		sort.SliceStable(pairs, func(a, b int) bool {
			return pairs[a].Result.OverallScore > pairs[b].Result.OverallScore
		})
		ranked[i] = types.RankedCandidates{JobID: jobID(&jobs[i], i), Ranked: pairs}
	}

	r.logger.Info("batch ranking complete",
		zap.Int("jobs", len(jobs)),
		zap.Int("candidates", len(candidates)),
	)

	return ranked, nil
}

func jobID(job *types.JobRequirement, idx int) string {
	if job.ID != "" {
		return job.ID
	}
	return fmt.Sprintf("job-%d", idx+1)
}

func candidateID(candidate *types.CandidateProfile, idx int) string {
	if candidate.ID != "" {
		return candidate.ID
	}
	return fmt.Sprintf("candidate-%d", idx+1)
}
