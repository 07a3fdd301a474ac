package intake

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonathan/ats-ranker/internal/documents"
	"github.com/jonathan/ats-ranker/internal/ranking"
	"github.com/jonathan/ats-ranker/internal/storage"
	"github.com/jonathan/ats-ranker/internal/types"
)

func newTestPDF(t *testing.T, pages int) []byte {
	t.Helper()
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetFont("Helvetica", "", 12)
	for i := 0; i < pages; i++ {
		doc.AddPage()
		doc.Cell(40, 10, "Jane Doe - Go engineer")
	}
	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}

type stubConverter struct {
	out []byte
	err error
}

func (s *stubConverter) Convert(_ context.Context, _ []byte, _ string) ([]byte, error) {
	return s.out, s.err
}

// presignFailStore wraps a MemoryStore and fails every Presign call.
type presignFailStore struct {
	*storage.MemoryStore
}

func (s *presignFailStore) Presign(context.Context, storage.Reference, time.Duration) (string, error) {
	return "", errors.New("signing key unavailable")
}

type fakeAudit struct {
	mu    sync.Mutex
	saved []types.ScoreBreakdown
	refs  []string
	err   error
}

func (f *fakeAudit) SaveRanking(_ context.Context, _, _ string, result types.ScoreBreakdown, ref string) (uuid.UUID, error) {
	if f.err != nil {
		return uuid.Nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, result)
	f.refs = append(f.refs, ref)
	return uuid.New(), nil
}

func testApplication(resume []byte, filename string) Application {
	return Application{
		Resume:   resume,
		Filename: filename,
		Job: &types.JobRequirement{
			ID:                "job-1",
			RequiredSkills:    []string{"Python", "SQL"},
			MinExperience:     3,
			Location:          "Remote",
			EducationRequired: types.StringPtr("Bachelor"),
		},
		Candidate: &types.CandidateProfile{
			ID:                 "cand-1",
			PrimarySkills:      []string{"python", "sql"},
			ExperienceYears:    5,
			WillingToRelocate:  true,
			Education:          []types.EducationRecord{{Degree: "Bachelor of Science"}},
		},
	}
}

func TestProcess_PDF(t *testing.T) {
	store := storage.NewMemoryStore()
	audit := &fakeAudit{}
	var events []string
	var evMu sync.Mutex

	p := New(documents.NewNormalizer(nil), store, nil,
		WithAudit(audit),
		WithPresignTTL(15*time.Minute),
		WithProgress(func(e ProgressEvent) {
			evMu.Lock()
			events = append(events, e.Step)
			evMu.Unlock()
		}),
	)

	res, err := p.Process(context.Background(), testApplication(newTestPDF(t, 2), "Jane Resume.pdf"))
	require.NoError(t, err)

	assert.Contains(t, res.Reference.String(), storage.KeyPrefix)
	assert.Contains(t, res.PresignedURL, "expires=")
	assert.Equal(t, 2, res.Pages)
	assert.False(t, res.Converted)
	assert.Equal(t, 101.2, res.Breakdown.OverallScore)
	assert.Equal(t, types.CategoryHighlyRecommended, res.Breakdown.Category)
	require.NotNil(t, res.AuditID)

	data, contentType, ok := store.Get(res.Reference)
	require.True(t, ok)
	assert.Equal(t, "application/pdf", contentType)
	assert.NotEmpty(t, data)

	require.Len(t, audit.saved, 1)
	assert.Equal(t, res.Reference.String(), audit.refs[0])
	assert.ElementsMatch(t, []string{StepNormalized, StepStored, StepPresigned, StepRanked, StepAudited}, events)
}

func TestProcess_ConvertsDocx(t *testing.T) {
	store := storage.NewMemoryStore()
	conv := &stubConverter{out: newTestPDF(t, 1)}
	p := New(documents.NewNormalizer(conv), store, nil)

	res, err := p.Process(context.Background(), testApplication([]byte("PK docx bytes"), "resume.docx"))
	require.NoError(t, err)
	assert.True(t, res.Converted)
	assert.Equal(t, 1, res.Pages)
	assert.True(t, bytes.HasSuffix([]byte(res.Reference.String()), []byte(".pdf")))
}

func TestProcess_CustomWeights(t *testing.T) {
	w, err := ranking.NewWeights(1, 0, 0, 0)
	require.NoError(t, err)
	app := testApplication(newTestPDF(t, 1), "resume.pdf")
	app.Weights = &w

	p := New(documents.NewNormalizer(nil), storage.NewMemoryStore(), nil)
	res, err := p.Process(context.Background(), app)
	require.NoError(t, err)
	assert.Equal(t, 100.0, res.Breakdown.OverallScore)
}

func TestProcess_RejectsInvalidFile(t *testing.T) {
	store := storage.NewMemoryStore()
	p := New(documents.NewNormalizer(nil), store, nil)

	_, err := p.Process(context.Background(), testApplication([]byte("hello"), "resume.txt"))
	require.Error(t, err)
	var vErr *documents.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, 0, store.Len())
}

func TestProcess_ConversionFailure(t *testing.T) {
	store := storage.NewMemoryStore()
	conv := &stubConverter{err: &documents.ConversionError{Reason: documents.ReasonUnavailable}}
	p := New(documents.NewNormalizer(conv), store, nil)

	_, err := p.Process(context.Background(), testApplication([]byte("doc"), "resume.doc"))
	require.Error(t, err)
	var cErr *documents.ConversionError
	assert.ErrorAs(t, err, &cErr)
	assert.Equal(t, 0, store.Len())
}

func TestProcess_PresignFailureRemovesObject(t *testing.T) {
	mem := storage.NewMemoryStore()
	core, logs := observer.New(zap.WarnLevel)
	p := New(documents.NewNormalizer(nil), &presignFailStore{MemoryStore: mem}, nil, WithLogger(zap.New(core)))

	_, err := p.Process(context.Background(), testApplication(newTestPDF(t, 1), "resume.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "signing key unavailable")
	assert.Equal(t, 0, mem.Len())
	assert.Equal(t, 0, logs.Len())
}

func TestProcess_AuditFailureIsNonFatal(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	p := New(documents.NewNormalizer(nil), storage.NewMemoryStore(), nil,
		WithAudit(&fakeAudit{err: errors.New("db down")}),
		WithLogger(zap.New(core)),
	)

	res, err := p.Process(context.Background(), testApplication(newTestPDF(t, 1), "resume.pdf"))
	require.NoError(t, err)
	assert.Nil(t, res.AuditID)
	assert.Equal(t, 1, logs.FilterMessage("failed to save ranking audit").Len())
}

func TestProcess_InvalidApplication(t *testing.T) {
	p := New(documents.NewNormalizer(nil), storage.NewMemoryStore(), nil)
	ctx := context.Background()

	_, err := p.Process(ctx, Application{Filename: "resume.pdf"})
	require.Error(t, err)

	app := testApplication(newTestPDF(t, 1), "resume.pdf")
	app.Candidate.ExperienceYears = -1
	_, err = p.Process(ctx, app)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid candidate profile")
}

func TestProcess_CanceledContext(t *testing.T) {
	store := storage.NewMemoryStore()
	p := New(documents.NewNormalizer(nil), store, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Process(ctx, testApplication(newTestPDF(t, 1), "resume.pdf"))
	require.Error(t, err)
	assert.Equal(t, 0, store.Len())
}
