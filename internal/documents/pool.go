package documents

import (
	"context"
	"fmt"

	"github.com/panjf2000/ants/v2"
)

// Result is the outcome of one pooled normalization.
type Result struct {
	Document *Document
	Err      error
}

// Upload is a raw file waiting for normalization.
type Upload struct {
	Data     []byte
	Filename string
}

// Pool runs normalizations on a bounded set of workers, keeping slow conversions off the
// caller's goroutine.
type Pool struct {
	normalizer *Normalizer
	workers    *ants.Pool
}

// NewPool creates a pool of size workers around normalizer.
func NewPool(normalizer *Normalizer, size int) (*Pool, error) {
	if size <= 0 {
		size = 1
	}
	workers, err := ants.NewPool(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create conversion pool: %w", err)
	}
	return &Pool{normalizer: normalizer, workers: workers}, nil
}

// Submit queues one upload. The returned channel receives exactly one Result.
// Submit blocks while all workers are busy.
func (p *Pool) Submit(ctx context.Context, data []byte, filename string) (<-chan Result, error) {
	ch := make(chan Result, 1)
	err := p.workers.Submit(func() {
		doc, err := p.normalizer.Normalize(ctx, data, filename)
		ch <- Result{Document: doc, Err: err}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to submit %s for conversion: %w", filename, err)
	}
	return ch, nil
}

// NormalizeAll normalizes every upload and returns results in input order.
func (p *Pool) NormalizeAll(ctx context.Context, uploads []Upload) []Result {
	pending := make([]<-chan Result, len(uploads))
	results := make([]Result, len(uploads))

	for i, u := range uploads {
		ch, err := p.Submit(ctx, u.Data, u.Filename)
		if err != nil {
			results[i] = Result{Err: err}
			continue
		}
		pending[i] = ch
	}

	for i, ch := range pending {
		if ch != nil {
			results[i] = <-ch
		}
	}
	return results
}

// Release stops the workers. The pool must not be used afterwards.
func (p *Pool) Release() {
	p.workers.Release()
}
