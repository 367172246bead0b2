package scrapers

import (
	"context"

	"github.com/tlemaire/product-aggregator/models"
)

// Scraper defines the interface for all catalogue scrapers.
type Scraper interface {
	// Scrape fetches the listing page at url and maps every usable listing
	// into a canonical product. A page-level fetch or parse problem is
	// returned as an error; listings missing a required field are skipped.
	Scrape(ctx context.Context, url string) ([]models.Product, error)
}

// Source binds a scraper to the catalogue endpoint it runs against.
type Source struct {
	Brand   string
	URL     string
	Scraper Scraper
}
