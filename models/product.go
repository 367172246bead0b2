package models

import "errors"

// ErrNotFound is returned when a product id does not exist in the collection.
var ErrNotFound = errors.New("product not found")

// DateLayout is the wire format of the released field.
const DateLayout = "2006-01-02"

// Product is the canonical record every source extractor maps its listings
// into. The id is a pure function of the link (see the identity package), so
// re-scraping the same page always yields the same record identity.
type Product struct {
	ID       string  `json:"_id" bson:"_id"`
	Brand    string  `json:"brand" bson:"brand"`
	Name     string  `json:"name" bson:"name"`
	Link     string  `json:"link" bson:"link"`
	Price    float64 `json:"price" bson:"price"`
	Photo    string  `json:"photo,omitempty" bson:"photo,omitempty"`
	Released string  `json:"released" bson:"released"`
}
