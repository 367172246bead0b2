// Package snapshot persists each aggregation run's per-source output as one
// JSON file per brand. The files are the recovery artifact when the document
// store is unavailable.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tlemaire/product-aggregator/models"
	"github.com/tlemaire/product-aggregator/query"
)

// Write stores one source's products as <dir>/<brand>.json.
func Write(dir, brand string, products []models.Product) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("snapshot dir: %w", err)
	}
	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", brand, err)
	}
	return os.WriteFile(filepath.Join(dir, brand+".json"), data, 0o644)
}

// Load reads every per-brand snapshot under dir and concatenates them.
func Load(dir string) ([]models.Product, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read snapshot dir: %w", err)
	}

	var products []models.Product
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read snapshot %s: %w", e.Name(), err)
		}
		var batch []models.Product
		if err := json.Unmarshal(data, &batch); err != nil {
			return nil, fmt.Errorf("decode snapshot %s: %w", e.Name(), err)
		}
		products = append(products, batch...)
	}
	return products, nil
}

// Store serves the last written snapshots read-only. It backs the API when
// MongoDB is unreachable; filtering happens in the query engine, so Find
// returns the whole set.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Find(ctx context.Context, spec query.Spec) ([]models.Product, error) {
	return Load(s.dir)
}

func (s *Store) FindByID(ctx context.Context, id string) (*models.Product, error) {
	products, err := Load(s.dir)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *Store) Brands(ctx context.Context) ([]string, error) {
	products, err := Load(s.dir)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var brands []string
	for _, p := range products {
		if _, ok := seen[p.Brand]; !ok {
			seen[p.Brand] = struct{}{}
			brands = append(brands, p.Brand)
		}
	}
	sort.Strings(brands)
	return brands, nil
}
