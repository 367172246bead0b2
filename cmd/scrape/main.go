// The scrape command runs one aggregation pass: every registered source is
// scraped, per-brand snapshot files are written, and the store's products
// collection is replaced in bulk. With -every it loops for unattended runs.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/tlemaire/product-aggregator/aggregator"
	"github.com/tlemaire/product-aggregator/config"
	"github.com/tlemaire/product-aggregator/scrapers"
	"github.com/tlemaire/product-aggregator/store"
)

func main() {
	every := flag.Duration("every", 0, "rerun the aggregation at this interval (one-shot when 0)")
	flag.Parse()

	config.LoadConfig()

	if *every <= 0 {
		if err := runOnce(); err != nil {
			log.Fatalf("aggregation run failed: %v", err)
		}
		return
	}

	for {
		if err := runOnce(); err != nil {
			log.Printf("aggregation run failed: %v", err)
		}
		time.Sleep(*every)
	}
}

func runOnce() error {
	ctx := context.Background()

	products, err := aggregator.Run(ctx, scrapers.Sources(), aggregator.Options{
		Timeout:     config.ScrapeTimeout,
		SnapshotDir: config.SnapshotDir,
	})
	if err != nil {
		return err
	}

	st, err := store.Connect(ctx, config.MongoURI, config.MongoDB)
	if err != nil {
		// The snapshots are already on disk; report the failure instead of
		// pretending the store holds fresh data.
		return fmt.Errorf("store unavailable, snapshots kept in %s: %w", config.SnapshotDir, err)
	}
	defer st.Close(ctx)

	if err := st.ReplaceAll(ctx, products); err != nil {
		return err
	}
	log.Printf("stored %d products", len(products))
	return nil
}
