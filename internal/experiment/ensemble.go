package experiment

import (
	"context"
	"fmt"
	"sync"

	"github.com/san-kum/pagescroll/internal/document"
	"github.com/san-kum/pagescroll/internal/engine"
)

// Variant is one labelled configuration in an Ensemble.
type Variant struct {
	Name   string
	Config Config
}

// Ensemble runs variants concurrently, each on a fresh document so scroll
// state never leaks between runs.
type Ensemble struct {
	newDoc     func() *document.Document
	newMetrics func() []engine.Metric
	workers    int
}

// NewEnsemble creates an ensemble. workers <= 0 runs every variant at once.
func NewEnsemble(newDoc func() *document.Document, newMetrics func() []engine.Metric, workers int) *Ensemble {
	return &Ensemble{newDoc: newDoc, newMetrics: newMetrics, workers: workers}
}

// Run returns one result per variant, in variant order. The first error
// aborts the batch.
func (e *Ensemble) Run(ctx context.Context, variants []Variant) ([]*Result, error) {
	results := make([]*Result, len(variants))
	errs := make([]error, len(variants))

	workers := e.workers
	if workers <= 0 || workers > len(variants) {
		workers = len(variants)
	}
	sem := make(chan struct{}, max(workers, 1))

	var wg sync.WaitGroup
	for i, v := range variants {
		wg.Add(1)
		go func(idx int, v Variant) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			exp := New(e.newDoc(), v.Config)
			if e.newMetrics != nil {
				exp.Setup(e.newMetrics())
			}
			res, err := exp.Run(ctx)
			if err != nil {
				errs[idx] = fmt.Errorf("%s: %w", v.Name, err)
				return
			}
			results[idx] = res
		}(i, v)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
