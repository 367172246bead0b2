package dedicated

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/tlemaire/product-aggregator/identity"
	"github.com/tlemaire/product-aggregator/models"
	"github.com/tlemaire/product-aggregator/scrapers/base"
)

// Brand identifies this source in the canonical schema.
const Brand = "dedicated"

// LinkBase prefixes the canonicalUri field of each listing; the catalogue
// endpoint itself lives elsewhere.
const LinkBase = "https://www.dedicatedbrand.com/en/"

type listing struct {
	Name         string `json:"name"`
	CanonicalURI string `json:"canonicalUri"`
	Price        struct {
		Price json.Number `json:"price"`
	} `json:"price"`
	Image []string `json:"image"`
}

type catalogue struct {
	Products []listing `json:"products"`
}

// Scraper extracts products from the brand's JSON catalogue endpoint.
type Scraper struct {
	Client      *http.Client
	LinkBase    string
	releaseDate func() string
}

func New() *Scraper {
	return &Scraper{
		Client:      &http.Client{},
		LinkBase:    LinkBase,
		releaseDate: base.RandomReleaseDate,
	}
}

func (s *Scraper) Scrape(ctx context.Context, url string) ([]models.Product, error) {
	body, err := base.Fetch(ctx, s.Client, url)
	if err != nil {
		return nil, err
	}

	var cat catalogue
	if err := json.Unmarshal(body, &cat); err != nil {
		return nil, fmt.Errorf("decode catalogue: %w", err)
	}

	products := make([]models.Product, 0, len(cat.Products))
	for _, l := range cat.Products {
		if l.Name == "" || l.CanonicalURI == "" {
			continue
		}

		price, err := l.Price.Price.Float64()
		if err != nil || price < 0 {
			log.Printf("dedicated: skipping %q: bad price %q", l.Name, l.Price.Price)
			continue
		}

		link := s.LinkBase + l.CanonicalURI
		photo := ""
		if len(l.Image) > 0 {
			photo = l.Image[0]
		}

		products = append(products, models.Product{
			ID:       identity.FromLink(link),
			Brand:    Brand,
			Name:     l.Name,
			Link:     link,
			Price:    price,
			Photo:    photo,
			Released: s.releaseDate(),
		})
	}

	return products, nil
}
