// Package query translates a declarative filter/sort/pagination request into
// a selection, ordering and slice over the product collection, and reports
// pagination metadata. The same spec also translates to the store's native
// query document, so MongoDB can pre-filter and the in-memory path stays
// authoritative.
package query

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/tlemaire/product-aggregator/models"
)

// ErrInvalidQuery is returned for bad pagination or sort arguments.
var ErrInvalidQuery = errors.New("invalid query")

// DefaultPageSize applies when the request carries no size parameter.
const DefaultPageSize = 12

// Sort keys accepted by the search endpoint.
const (
	SortPrice    = "price"
	SortReleased = "released"
)

// Spec is one declarative search request. All filters are optional and
// combine with logical AND.
type Spec struct {
	Brand         string
	PriceCeiling  *float64
	IDs           []string
	ReleasedAfter string // YYYY-MM-DD, inclusive lower bound
	SortKey       string // SortPrice or SortReleased; empty sorts by id
	SortAsc       bool
	Page          int // 1-indexed
	Size          int
}

// Meta describes the filtered set a page was cut from.
type Meta struct {
	Count       int `json:"count"`
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
	PageCount   int `json:"pageCount"`
}

// ParseSpec reads the wire format of /products/search:
//
//	brand=dedicated&price=$lte:50&_id=$in:a,b,c&released=$gte:2022-01-02&sort=price:-1&page=2&size=10
//
// sort=released:1 means ascending, earliest first.
func ParseSpec(values url.Values) (Spec, error) {
	spec := Spec{Page: 1, Size: DefaultPageSize}

	if v := values.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Spec{}, fmt.Errorf("%w: page %q", ErrInvalidQuery, v)
		}
		spec.Page = n
	}
	if v := values.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Spec{}, fmt.Errorf("%w: size %q", ErrInvalidQuery, v)
		}
		spec.Size = n
	}

	spec.Brand = values.Get("brand")

	if v := values.Get("price"); v != "" {
		raw := strings.TrimPrefix(v, "$lte:")
		ceiling, err := strconv.ParseFloat(raw, 64)
		if err != nil || ceiling < 0 {
			return Spec{}, fmt.Errorf("%w: price %q", ErrInvalidQuery, v)
		}
		spec.PriceCeiling = &ceiling
	}

	if v := values.Get("_id"); v != "" {
		raw := strings.TrimPrefix(v, "$in:")
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				spec.IDs = append(spec.IDs, id)
			}
		}
	}

	if v := values.Get("released"); v != "" {
		raw := strings.TrimPrefix(v, "$gte:")
		if _, err := time.Parse(models.DateLayout, raw); err != nil {
			return Spec{}, fmt.Errorf("%w: released %q", ErrInvalidQuery, v)
		}
		spec.ReleasedAfter = raw
	}

	if v := values.Get("sort"); v != "" {
		field, dir, ok := strings.Cut(v, ":")
		if !ok {
			return Spec{}, fmt.Errorf("%w: sort %q", ErrInvalidQuery, v)
		}
		switch field {
		case SortPrice, SortReleased:
			spec.SortKey = field
		default:
			return Spec{}, fmt.Errorf("%w: sort field %q", ErrInvalidQuery, field)
		}
		switch dir {
		case "1":
			spec.SortAsc = true
		case "-1":
			spec.SortAsc = false
		default:
			return Spec{}, fmt.Errorf("%w: sort direction %q", ErrInvalidQuery, dir)
		}
	}

	return spec, nil
}

// Filter translates the spec into the store's native query document.
func (s Spec) Filter() bson.M {
	filter := bson.M{}
	if s.Brand != "" {
		filter["brand"] = s.Brand
	}
	if s.PriceCeiling != nil {
		filter["price"] = bson.M{"$lte": *s.PriceCeiling}
	}
	if len(s.IDs) > 0 {
		filter["_id"] = bson.M{"$in": s.IDs}
	}
	if s.ReleasedAfter != "" {
		filter["released"] = bson.M{"$gte": s.ReleasedAfter}
	}
	return filter
}

func (s Spec) matches(p models.Product) bool {
	if s.Brand != "" && p.Brand != s.Brand {
		return false
	}
	if s.PriceCeiling != nil && p.Price > *s.PriceCeiling {
		return false
	}
	if len(s.IDs) > 0 {
		found := false
		for _, id := range s.IDs {
			if p.ID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	// ISO dates compare correctly as strings, same as the store does it.
	if s.ReleasedAfter != "" && p.Released < s.ReleasedAfter {
		return false
	}
	return true
}

// Filtered applies every filter predicate and nothing else. The info view
// needs the filtered set before pagination.
func Filtered(products []models.Product, spec Spec) []models.Product {
	kept := make([]models.Product, 0, len(products))
	for _, p := range products {
		if spec.matches(p) {
			kept = append(kept, p)
		}
	}
	return kept
}

// Execute filters, orders and slices the collection. The count in the meta is
// the filtered-set size before pagination; asking for a page past the end
// yields an empty page with truthful metadata, not an error.
func Execute(products []models.Product, spec Spec) ([]models.Product, Meta, error) {
	if spec.Page <= 0 || spec.Size <= 0 {
		return nil, Meta{}, fmt.Errorf("%w: page=%d size=%d", ErrInvalidQuery, spec.Page, spec.Size)
	}
	switch spec.SortKey {
	case "", SortPrice, SortReleased:
	default:
		return nil, Meta{}, fmt.Errorf("%w: sort key %q", ErrInvalidQuery, spec.SortKey)
	}

	filtered := Filtered(products, spec)

	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := filtered[i], filtered[j]
		switch spec.SortKey {
		case SortPrice:
			if a.Price != b.Price {
				if spec.SortAsc {
					return a.Price < b.Price
				}
				return a.Price > b.Price
			}
		case SortReleased:
			if a.Released != b.Released {
				if spec.SortAsc {
					return a.Released < b.Released
				}
				return a.Released > b.Released
			}
		}
		// Total-order tie-break so pagination stays stable when keys tie.
		return a.ID < b.ID
	})

	count := len(filtered)
	meta := Meta{
		Count:       count,
		CurrentPage: spec.Page,
		PageSize:    spec.Size,
		PageCount:   (count + spec.Size - 1) / spec.Size,
	}

	start := (spec.Page - 1) * spec.Size
	if start >= count {
		return []models.Product{}, meta, nil
	}
	end := start + spec.Size
	if end > count {
		end = count
	}
	return filtered[start:end], meta, nil
}
