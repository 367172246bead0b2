// Package aggregator runs every registered source and settles their outputs
// into one product collection: fan-out over the sources, a fan-in barrier,
// then dedupe, snapshot files and a bulk store replace.
package aggregator

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/tlemaire/product-aggregator/models"
	"github.com/tlemaire/product-aggregator/scrapers"
	"github.com/tlemaire/product-aggregator/snapshot"
)

// DefaultTimeout bounds each source's fetch so one unresponsive site cannot
// stall the whole run.
const DefaultTimeout = 30 * time.Second

// Result is one source's contribution to an aggregation run.
type Result struct {
	Brand    string
	Products []models.Product
	Err      error
}

type Options struct {
	Timeout     time.Duration // per-source budget; DefaultTimeout when zero
	SnapshotDir string        // empty disables snapshot files
}

// Run scrapes all sources concurrently and merges their outputs. A failing or
// timed-out source is logged and contributes zero products this run; the run
// itself fails only when no source succeeds, in which case the caller must
// keep the previous collection.
func Run(ctx context.Context, sources []scrapers.Source, opts Options) ([]models.Product, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	results := make([]Result, len(sources))
	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src scrapers.Source) {
			defer wg.Done()
			srcCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			products, err := src.Scraper.Scrape(srcCtx, src.URL)
			results[i] = Result{Brand: src.Brand, Products: products, Err: err}
		}(i, src)
	}
	wg.Wait()

	var merged []models.Product
	succeeded := 0
	for _, res := range results {
		if res.Err != nil {
			log.Printf("aggregator: source %s failed: %v", res.Brand, res.Err)
			continue
		}
		succeeded++
		log.Printf("aggregator: source %s yielded %d products", res.Brand, len(res.Products))

		if opts.SnapshotDir != "" {
			if err := snapshot.Write(opts.SnapshotDir, res.Brand, res.Products); err != nil {
				log.Printf("aggregator: snapshot for %s: %v", res.Brand, err)
			}
		}
		merged = append(merged, res.Products...)
	}

	if succeeded == 0 {
		return nil, fmt.Errorf("all %d sources failed", len(sources))
	}
	return Dedupe(merged), nil
}

// Dedupe removes duplicate ids. Sources are merged in registry order and the
// later occurrence wins, so a source listed later overrides an earlier one.
func Dedupe(products []models.Product) []models.Product {
	last := make(map[string]int, len(products))
	for i, p := range products {
		last[p.ID] = i
	}
	out := make([]models.Product, 0, len(last))
	for i, p := range products {
		if last[p.ID] == i {
			out = append(out, p)
		}
	}
	return out
}
