// Package intake processes a candidate application end to end: the resume file is normalized
// to PDF and stored privately while the candidate is ranked against the job.
package intake

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/ats-ranker/internal/documents"
	"github.com/jonathan/ats-ranker/internal/ranking"
	"github.com/jonathan/ats-ranker/internal/storage"
	"github.com/jonathan/ats-ranker/internal/types"
)

// Progress steps reported through ProgressCallback.
const (
	StepNormalized = "normalized"
	StepStored     = "stored"
	StepPresigned  = "presigned"
	StepRanked     = "ranked"
	StepAudited    = "audited"
)

// ProgressEvent represents a progress update during intake.
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
}

// ProgressCallback is called when intake progress occurs. It may be called from several
// goroutines at once.
type ProgressCallback func(event ProgressEvent)

// AuditStore records ranking results. *db.DB implements it.
type AuditStore interface {
	SaveRanking(ctx context.Context, jobID, candidateID string, result types.ScoreBreakdown, resumeRef string) (uuid.UUID, error)
}

// Application is one resume submission for one job.
type Application struct {
	Resume    []byte
	Filename  string
	Job       *types.JobRequirement
	Candidate *types.CandidateProfile
	Weights   *ranking.Weights // nil uses the ranker's weights
}

// Result is the outcome of a processed application.
type Result struct {
	Reference    storage.Reference    `json:"reference"`
	PresignedURL string               `json:"presigned_url"`
	Pages        int                  `json:"pages"`
	Converted    bool                 `json:"converted"`
	Breakdown    types.ScoreBreakdown `json:"breakdown"`
	AuditID      *uuid.UUID           `json:"audit_id,omitempty"`
}

// Pipeline wires the normalizer, object store and ranker together.
type Pipeline struct {
	normalizer *documents.Normalizer
	store      storage.Store
	ranker     *ranking.Ranker
	audit      AuditStore
	presignTTL time.Duration
	logger     *zap.Logger
	progress   ProgressCallback
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithPresignTTL sets the lifetime of returned URLs.
func WithPresignTTL(ttl time.Duration) Option {
	return func(p *Pipeline) {
		if ttl > 0 {
			p.presignTTL = ttl
		}
	}
}

// WithAudit stores every ranking result.
func WithAudit(a AuditStore) Option {
	return func(p *Pipeline) {
		p.audit = a
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithProgress registers a progress callback.
func WithProgress(cb ProgressCallback) Option {
	return func(p *Pipeline) {
		p.progress = cb
	}
}

// New creates a Pipeline. A nil ranker uses ranking defaults.
func New(normalizer *documents.Normalizer, store storage.Store, ranker *ranking.Ranker, opts ...Option) *Pipeline {
	if ranker == nil {
		ranker = ranking.NewRanker()
	}
	p := &Pipeline{
		normalizer: normalizer,
		store:      store,
		ranker:     ranker,
		presignTTL: storage.DefaultPresignTTL,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pipeline) emit(step, message string) {
	if p.progress != nil {
		p.progress(ProgressEvent{Step: step, Message: message})
	}
}

// Process normalizes and stores the resume and ranks the candidate, concurrently.
// A failure to normalize, store or presign the resume fails the whole application; if
// presigning fails the stored object is removed on a best-effort basis. Audit failures are
// logged only.
func (p *Pipeline) Process(ctx context.Context, app Application) (*Result, error) {
	if app.Job == nil || app.Candidate == nil {
		return nil, errors.New("application requires a job and a candidate")
	}
	if err := app.Job.Validate(); err != nil {
		return nil, fmt.Errorf("invalid job requirement: %w", err)
	}
	if err := app.Candidate.Validate(); err != nil {
		return nil, fmt.Errorf("invalid candidate profile: %w", err)
	}

	g, gCtx := errgroup.WithContext(ctx)

	var (
		mu        sync.Mutex
		result    = &Result{}
		breakdown types.ScoreBreakdown
	)

	// File branch
	g.Go(func() error {
		doc, ref, url, err := p.storeResume(gCtx, app.Resume, app.Filename)
		if err != nil {
			return fmt.Errorf("resume branch failed: %w", err)
		}
		mu.Lock()
		result.Reference = ref
		result.PresignedURL = url
		result.Pages = doc.Pages
		result.Converted = doc.Converted
		mu.Unlock()
		return nil
	})

	// Ranking branch
	g.Go(func() error {
		if err := gCtx.Err(); err != nil {
			return err
		}
		b := p.ranker.Rank(app.Job, app.Candidate, app.Weights)
		mu.Lock()
		breakdown = b
		mu.Unlock()
		p.emit(StepRanked, fmt.Sprintf("%s: %.2f", b.Ranking, b.OverallScore))
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	result.Breakdown = breakdown

	if p.audit != nil {
		id, err := p.audit.SaveRanking(ctx, app.Job.ID, app.Candidate.ID, breakdown, result.Reference.String())
		if err != nil {
			p.logger.Warn("failed to save ranking audit", zap.Error(err))
		} else {
			result.AuditID = &id
			p.emit(StepAudited, id.String())
		}
	}

	p.logger.Info("application processed",
		zap.String("job_id", app.Job.ID),
		zap.String("candidate_id", app.Candidate.ID),
		zap.Float64("overall_score", breakdown.OverallScore),
		zap.String("reference", result.Reference.String()))
	return result, nil
}

func (p *Pipeline) storeResume(ctx context.Context, data []byte, filename string) (*documents.Document, storage.Reference, string, error) {
	doc, err := p.normalizer.Normalize(ctx, data, filename)
	if err != nil {
		return nil, "", "", err
	}
	p.emit(StepNormalized, fmt.Sprintf("%s (%d pages)", doc.Filename, doc.Pages))

	ref, err := p.store.Put(ctx, doc.Data, doc.Filename, doc.ContentType)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to store resume: %w", err)
	}
	p.emit(StepStored, ref.String())

	url, err := p.store.Presign(ctx, ref, p.presignTTL)
	if err != nil {
		// The caller never learns the reference, so the object would be orphaned.
		if delErr := p.store.Delete(context.WithoutCancel(ctx), ref); delErr != nil {
			p.logger.Warn("failed to remove orphaned resume",
				zap.String("reference", ref.String()), zap.Error(delErr))
		}
		return nil, "", "", fmt.Errorf("failed to presign resume: %w", err)
	}
	p.emit(StepPresigned, url)
	return doc, ref, url, nil
}
