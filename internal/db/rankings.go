package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/ats-ranker/internal/types"
)

// SaveRanking stores an audit copy of a ranking result and returns its ID.
// resumeRef may be empty when no resume file was stored.
func (db *DB) SaveRanking(ctx context.Context, jobID, candidateID string, result types.ScoreBreakdown, resumeRef string) (uuid.UUID, error) {
	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal ranking: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO rankings (job_id, candidate_id, overall_score, category, breakdown, resume_ref)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		jobID, candidateID, result.OverallScore, string(result.Category), jsonBytes, resumeRef,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save ranking: %w", err)
	}
	return id, nil
}

// GetRanking retrieves a stored ranking by ID. Returns nil, nil when none matches.
func (db *DB) GetRanking(ctx context.Context, id uuid.UUID) (*Ranking, error) {
	var r Ranking
	var category string
	var breakdown []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, job_id, candidate_id, overall_score, category, breakdown, resume_ref, created_at
		 FROM rankings WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.JobID, &r.CandidateID, &r.OverallScore, &category, &breakdown, &r.ResumeRef, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ranking: %w", err)
	}
	r.Category = types.Category(category)
	if err := json.Unmarshal(breakdown, &r.Breakdown); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ranking breakdown: %w", err)
	}
	return &r, nil
}

// ListRankingsForJob returns stored rankings for a job, best first.
func (db *DB) ListRankingsForJob(ctx context.Context, jobID string, limit int) ([]Ranking, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, job_id, candidate_id, overall_score, category, breakdown, resume_ref, created_at
		 FROM rankings WHERE job_id = $1
		 ORDER BY overall_score DESC, created_at ASC
		 LIMIT $2`,
		jobID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list rankings: %w", err)
	}
	defer rows.Close()

	var out []Ranking
	for rows.Next() {
		var r Ranking
		var category string
		var breakdown []byte
		if err := rows.Scan(&r.ID, &r.JobID, &r.CandidateID, &r.OverallScore, &category, &breakdown, &r.ResumeRef, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ranking: %w", err)
		}
		r.Category = types.Category(category)
		if err := json.Unmarshal(breakdown, &r.Breakdown); err != nil {
			return nil, fmt.Errorf("failed to unmarshal ranking breakdown: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rankings: %w", err)
	}
	return out, nil
}

// DeleteRanking removes a stored ranking and reports whether a row was deleted.
func (db *DB) DeleteRanking(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM rankings WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete ranking: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
