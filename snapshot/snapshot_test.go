package snapshot

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/tlemaire/product-aggregator/models"
)

func sample() []models.Product {
	return []models.Product{
		{
			ID:       "9c3b1c1e-0000-5000-8000-000000000001",
			Brand:    "dedicated",
			Name:     "T-shirt Stockholm",
			Link:     "https://www.dedicatedbrand.com/en/t-shirt-stockholm",
			Price:    29.90,
			Photo:    "https://cdn.example/img.jpg",
			Released: "2023-04-18",
		},
		{
			ID:       "9c3b1c1e-0000-5000-8000-000000000002",
			Brand:    "dedicated",
			Name:     "Hoodie Falun",
			Link:     "https://www.dedicatedbrand.com/en/hoodie-falun",
			Price:    79,
			Released: "2022-12-01",
		},
	}
}

func TestWriteLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	products := sample()

	if err := Write(dir, "dedicated", products); err != nil {
		t.Fatalf("Write: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(loaded, products) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, products)
	}
}

func TestLoad_MergesAllBrands(t *testing.T) {
	dir := t.TempDir()
	if err := Write(dir, "dedicated", sample()); err != nil {
		t.Fatal(err)
	}
	if err := Write(dir, "montlimart", []models.Product{{ID: "m1", Brand: "montlimart", Name: "Pull marin"}}); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 3 {
		t.Errorf("loaded %d products, want 3", len(loaded))
	}
}

func TestStore(t *testing.T) {
	dir := t.TempDir()
	if err := Write(dir, "dedicated", sample()); err != nil {
		t.Fatal(err)
	}
	if err := Write(dir, "adresseparis", []models.Product{{ID: "ap1", Brand: "adresseparis", Name: "Veste"}}); err != nil {
		t.Fatal(err)
	}

	store := NewStore(dir)
	ctx := context.Background()

	p, err := store.FindByID(ctx, "ap1")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if p.Name != "Veste" {
		t.Errorf("FindByID returned %q", p.Name)
	}

	if _, err := store.FindByID(ctx, "missing"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("FindByID on unknown id: got %v, want ErrNotFound", err)
	}

	brands, err := store.Brands(ctx)
	if err != nil {
		t.Fatalf("Brands: %v", err)
	}
	if !reflect.DeepEqual(brands, []string{"adresseparis", "dedicated"}) {
		t.Errorf("Brands = %v", brands)
	}
}
