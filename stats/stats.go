// Package stats computes derived views over a product collection. Every
// function is a pure transformation of its input; nothing here touches the
// store or the network.
package stats

import (
	"errors"
	"sort"
	"time"

	"github.com/tlemaire/product-aggregator/models"
)

// ErrNoData is returned when a statistic is requested over zero records.
// Callers must check for it instead of relying on a default value.
var ErrNoData = errors.New("no products")

// Percentile returns the price at rank floor(n*p/100) of the products ordered
// by descending price. Percentile(products, 50) is the median price under
// that rule.
func Percentile(products []models.Product, p float64) (float64, error) {
	if len(products) == 0 {
		return 0, ErrNoData
	}

	sorted := make([]models.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Price > sorted[j].Price
	})

	rank := int(float64(len(sorted)) * p / 100)
	if rank >= len(sorted) {
		rank = len(sorted) - 1
	}
	if rank < 0 {
		rank = 0
	}
	return sorted[rank].Price, nil
}

// GroupByBrand partitions products by brand, preserving the relative order of
// each brand's products.
func GroupByBrand(products []models.Product) map[string][]models.Product {
	groups := make(map[string][]models.Product)
	for _, p := range products {
		groups[p.Brand] = append(groups[p.Brand], p)
	}
	return groups
}

// FilterRecentlyReleased keeps products released within windowDays days
// before ref. The boundary is inclusive: a product released exactly
// windowDays before ref is kept. Products with an unparseable released date
// are excluded.
func FilterRecentlyReleased(products []models.Product, windowDays int, ref time.Time) []models.Product {
	refDay := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	cutoff := refDay.AddDate(0, 0, -windowDays)

	var recent []models.Product
	for _, p := range products {
		released, err := time.Parse(models.DateLayout, p.Released)
		if err != nil {
			continue
		}
		if !released.Before(cutoff) && !released.After(refDay) {
			recent = append(recent, p)
		}
	}
	return recent
}

// FilterByMaxPrice keeps products priced at or below ceiling.
func FilterByMaxPrice(products []models.Product, ceiling float64) []models.Product {
	var kept []models.Product
	for _, p := range products {
		if p.Price <= ceiling {
			kept = append(kept, p)
		}
	}
	return kept
}

// Count reports the number of products in the collection.
func Count(products []models.Product) int {
	return len(products)
}

// LastReleased returns the most recent released date in the collection.
func LastReleased(products []models.Product) (string, error) {
	last := ""
	for _, p := range products {
		if _, err := time.Parse(models.DateLayout, p.Released); err != nil {
			continue
		}
		if p.Released > last {
			last = p.Released
		}
	}
	if last == "" {
		return "", ErrNoData
	}
	return last, nil
}
