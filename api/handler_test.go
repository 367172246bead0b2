package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tlemaire/product-aggregator/models"
	"github.com/tlemaire/product-aggregator/query"
)

type fakeStore struct {
	products []models.Product
	err      error
}

func (f *fakeStore) Find(ctx context.Context, spec query.Spec) ([]models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	// A coarse store: hand back everything, the query engine re-filters.
	return f.products, nil
}

func (f *fakeStore) FindByID(ctx context.Context, id string) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.products {
		if f.products[i].ID == id {
			return &f.products[i], nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeStore) Brands(ctx context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	seen := make(map[string]bool)
	var brands []string
	for _, p := range f.products {
		if !seen[p.Brand] {
			seen[p.Brand] = true
			brands = append(brands, p.Brand)
		}
	}
	return brands, nil
}

type response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response {
	t.Helper()
	var body response
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
	return body
}

func catalogue() []models.Product {
	return []models.Product{
		{ID: "a", Brand: "dedicated", Name: "T-shirt", Price: 30, Released: "2024-01-10"},
		{ID: "b", Brand: "dedicated", Name: "Hoodie", Price: 80, Released: "2023-06-01"},
		{ID: "c", Brand: "montlimart", Name: "Pull", Price: 120, Released: "2024-02-20"},
	}
}

func TestSearch(t *testing.T) {
	h := NewHandler(&fakeStore{products: catalogue()})

	rec := httptest.NewRecorder()
	h.Search(rec, httptest.NewRequest(http.MethodGet, "/products/search?brand=dedicated&price=$lte:50", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decode(t, rec)
	if !body.Success {
		t.Fatalf("success = false: %s", body.Error)
	}

	var data struct {
		Result []models.Product `json:"result"`
		Meta   query.Meta       `json:"meta"`
	}
	if err := json.Unmarshal(body.Data, &data); err != nil {
		t.Fatalf("decoding data: %v", err)
	}
	if len(data.Result) != 1 || data.Result[0].ID != "a" {
		t.Errorf("result = %+v, want only product a", data.Result)
	}
	want := query.Meta{Count: 1, CurrentPage: 1, PageSize: query.DefaultPageSize, PageCount: 1}
	if data.Meta != want {
		t.Errorf("meta = %+v, want %+v", data.Meta, want)
	}
}

func TestSearch_EmptyPageIsNotNull(t *testing.T) {
	h := NewHandler(&fakeStore{products: catalogue()})

	rec := httptest.NewRecorder()
	h.Search(rec, httptest.NewRequest(http.MethodGet, "/products/search?page=9", nil))

	body := decode(t, rec)
	var data struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(body.Data, &data); err != nil {
		t.Fatal(err)
	}
	if string(data.Result) != "[]" {
		t.Errorf("result past the last page = %s, want []", data.Result)
	}
}

func TestSearch_Info(t *testing.T) {
	recent := time.Now().AddDate(0, 0, -3).Format(models.DateLayout)
	products := []models.Product{
		{ID: "old", Brand: "dedicated", Released: "2021-05-01"},
		{ID: "new", Brand: "dedicated", Released: recent},
	}
	h := NewHandler(&fakeStore{products: products})

	rec := httptest.NewRecorder()
	h.Search(rec, httptest.NewRequest(http.MethodGet, "/products/search?info=1", nil))

	body := decode(t, rec)
	if !body.Success {
		t.Fatalf("success = false: %s", body.Error)
	}
	var data struct {
		LastReleased string `json:"lastReleased"`
		NbNew        int    `json:"nbNew"`
	}
	if err := json.Unmarshal(body.Data, &data); err != nil {
		t.Fatal(err)
	}
	if data.LastReleased != recent {
		t.Errorf("lastReleased = %q, want %q", data.LastReleased, recent)
	}
	if data.NbNew != 1 {
		t.Errorf("nbNew = %d, want 1", data.NbNew)
	}
}

func TestSearch_InvalidQuery(t *testing.T) {
	h := NewHandler(&fakeStore{products: catalogue()})

	rec := httptest.NewRecorder()
	h.Search(rec, httptest.NewRequest(http.MethodGet, "/products/search?page=zero", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body := decode(t, rec); body.Success || body.Error == "" {
		t.Errorf("expected a failure envelope with a message, got %+v", body)
	}
}

func TestSearch_StorageDown(t *testing.T) {
	h := NewHandler(&fakeStore{err: errors.New("no reachable servers")})

	rec := httptest.NewRecorder()
	h.Search(rec, httptest.NewRequest(http.MethodGet, "/products/search", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if body := decode(t, rec); body.Success || body.Error != "storage unavailable" {
		t.Errorf("expected the generic storage message, got %+v", body)
	}
}

func TestProduct(t *testing.T) {
	h := NewHandler(&fakeStore{products: catalogue()})

	rec := httptest.NewRecorder()
	h.Product(rec, httptest.NewRequest(http.MethodGet, "/products/b", nil))

	body := decode(t, rec)
	if !body.Success {
		t.Fatalf("success = false: %s", body.Error)
	}
	var p models.Product
	if err := json.Unmarshal(body.Data, &p); err != nil {
		t.Fatal(err)
	}
	if p.ID != "b" || p.Name != "Hoodie" {
		t.Errorf("product = %+v", p)
	}
}

func TestProduct_NotFound(t *testing.T) {
	h := NewHandler(&fakeStore{products: catalogue()})

	for _, path := range []string{"/products/nope", "/products/", "/products/a/extra"} {
		rec := httptest.NewRecorder()
		h.Product(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("GET %s: status = %d, want 404", path, rec.Code)
		}
	}
}

func TestBrands(t *testing.T) {
	h := NewHandler(&fakeStore{products: catalogue()})

	rec := httptest.NewRecorder()
	h.Brands(rec, httptest.NewRequest(http.MethodGet, "/brands", nil))

	body := decode(t, rec)
	var brands []string
	if err := json.Unmarshal(body.Data, &brands); err != nil {
		t.Fatal(err)
	}
	if len(brands) != 2 {
		t.Errorf("brands = %v, want 2 entries", brands)
	}
}

func TestBrands_EmptyCatalogue(t *testing.T) {
	h := NewHandler(&fakeStore{})

	rec := httptest.NewRecorder()
	h.Brands(rec, httptest.NewRequest(http.MethodGet, "/brands", nil))

	body := decode(t, rec)
	if string(body.Data) != "[]" {
		t.Errorf("empty catalogue brands = %s, want []", body.Data)
	}
}
