package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/tlemaire/product-aggregator/models"
	"github.com/tlemaire/product-aggregator/query"
	"github.com/tlemaire/product-aggregator/stats"
)

// Store is the read surface the handlers need. The MongoDB store and the
// snapshot fallback both implement it.
type Store interface {
	Find(ctx context.Context, spec query.Spec) ([]models.Product, error)
	FindByID(ctx context.Context, id string) (*models.Product, error)
	Brands(ctx context.Context) ([]string, error)
}

// newArrivalsWindowDays backs the nbNew indicator of the info view.
const newArrivalsWindowDays = 15

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

type searchData struct {
	Result []models.Product `json:"result"`
	Meta   query.Meta       `json:"meta"`
}

type infoData struct {
	LastReleased string `json:"lastReleased"`
	NbNew        int    `json:"nbNew"`
}

// Search handles GET /products/search. With info=1 it returns the freshness
// indicators over the filtered set instead of a page of products.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	spec, err := query.ParseSpec(r.URL.Query())
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	products, err := h.store.Find(r.Context(), spec)
	if err != nil {
		WriteStorageError(w, err)
		return
	}

	if r.URL.Query().Get("info") == "1" {
		filtered := query.Filtered(products, spec)
		info := infoData{
			NbNew: stats.Count(stats.FilterRecentlyReleased(filtered, newArrivalsWindowDays, time.Now())),
		}
		if last, err := stats.LastReleased(filtered); err == nil {
			info.LastReleased = last
		}
		WriteData(w, info)
		return
	}

	page, meta, err := query.Execute(products, spec)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	WriteData(w, searchData{Result: page, Meta: meta})
}

// Product handles GET /products/{id}.
func (h *Handler) Product(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/products/")
	if id == "" || strings.Contains(id, "/") {
		WriteNotFound(w, "unknown route")
		return
	}

	p, err := h.store.FindByID(r.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		WriteNotFound(w, "product not found")
		return
	}
	if err != nil {
		WriteStorageError(w, err)
		return
	}
	WriteData(w, p)
}

// Brands handles GET /brands.
func (h *Handler) Brands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.store.Brands(r.Context())
	if err != nil {
		WriteStorageError(w, err)
		return
	}
	if brands == nil {
		brands = []string{}
	}
	WriteData(w, brands)
}
