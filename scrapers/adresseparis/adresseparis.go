package adresseparis

import (
	"bytes"
	"context"
	"log"
	"net/http"

	"github.com/PuerkitoBio/goquery"

	"github.com/tlemaire/product-aggregator/identity"
	"github.com/tlemaire/product-aggregator/models"
	"github.com/tlemaire/product-aggregator/scrapers/base"
)

// Brand identifies this source in the canonical schema.
const Brand = "adresseparis"

// Scraper extracts products from the collection listing page.
type Scraper struct {
	Client      *http.Client
	releaseDate func() string
}

func New() *Scraper {
	return &Scraper{
		Client:      &http.Client{},
		releaseDate: base.RandomReleaseDate,
	}
}

func (s *Scraper) Scrape(ctx context.Context, url string) ([]models.Product, error) {
	body, err := base.Fetch(ctx, s.Client, url)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var products []models.Product
	doc.Find(".right-block").Each(func(i int, sel *goquery.Selection) {
		nameEl := sel.Find(".product-name")
		link := nameEl.AttrOr("href", "")
		name := nameEl.AttrOr("title", "")
		if link == "" || name == "" {
			return
		}

		price, err := base.ParsePrice(sel.Find(".price").First().Text())
		if err != nil {
			log.Printf("adresseparis: skipping %q: %v", name, err)
			return
		}

		// Product images are lazy-loaded; the real URL sits in data-original.
		photo := sel.Parent().Find(".product_img_link img").AttrOr("data-original", "")

		products = append(products, models.Product{
			ID:       identity.FromLink(link),
			Brand:    Brand,
			Name:     name,
			Link:     link,
			Price:    price,
			Photo:    photo,
			Released: s.releaseDate(),
		})
	})

	return products, nil
}
