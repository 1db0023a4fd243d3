package reports

import (
	"context"
	"sync"

	"github.com/mikematt33/ghscope/pkg/models"
)

// Scorecard runs every report section concurrently, at most
// Global.Concurrency at a time, and collects whatever succeeds. A failed
// section lands in Failures under its name; the other sections are
// unaffected. The only hard error is a context cancellation before any
// section ran.
func (b *Builder) Scorecard(ctx context.Context) (*models.Scorecard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	card := &models.Scorecard{
		Repo:     b.Fetcher.Repo(),
		Failures: make(map[string]string),
	}

	var mu sync.Mutex

	sections := []struct {
		name string
		run  func() error
	}{
		{"overview", func() error {
			ov, err := b.Fetcher.Overview(ctx)
			if err != nil {
				return err
			}
			mu.Lock()
			card.Overview = ov
			mu.Unlock()
			return nil
		}},
		{"triage", func() error {
			t, err := b.Triage(ctx)
			if err != nil {
				return err
			}
			mu.Lock()
			card.Triage = t
			mu.Unlock()
			return nil
		}},
		{"contribs", func() error {
			c, err := b.Contributors(ctx)
			if err != nil {
				return err
			}
			mu.Lock()
			card.Contribs = c
			mu.Unlock()
			return nil
		}},
		{"review", func() error {
			r, err := b.Review(ctx)
			if err != nil {
				return err
			}
			mu.Lock()
			card.Review = r
			mu.Unlock()
			return nil
		}},
		{"health", func() error {
			h, err := b.Health(ctx)
			if err != nil {
				return err
			}
			mu.Lock()
			card.Health = h
			mu.Unlock()
			return nil
		}},
	}

	workers := b.Cfg.Global.Concurrency
	if workers <= 0 {
		workers = 4
	}
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	wg.Add(len(sections))
	for _, section := range sections {
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if err := section.run(); err != nil {
				b.Log.WithError(err).WithField("section", section.name).Warn("scorecard section failed")
				mu.Lock()
				card.Failures[section.name] = err.Error()
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(card.Failures) == 0 {
		card.Failures = nil
	}
	return card, nil
}
