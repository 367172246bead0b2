package montlimart

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/tlemaire/product-aggregator/identity"
	"github.com/tlemaire/product-aggregator/models"
	"github.com/tlemaire/product-aggregator/scrapers/base"
)

// Brand identifies this source in the canonical schema.
const Brand = "montlimart"

// Scraper extracts products from the Magento listing page.
type Scraper struct {
	Collector   *colly.Collector
	releaseDate func() string
}

func New() *Scraper {
	c := colly.NewCollector(
		colly.UserAgent("Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.114 Safari/537.36"),
	)
	return &Scraper{
		Collector:   c,
		releaseDate: base.RandomReleaseDate,
	}
}

func (s *Scraper) Scrape(ctx context.Context, url string) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if deadline, ok := ctx.Deadline(); ok {
		s.Collector.SetRequestTimeout(time.Until(deadline))
	}

	var products []models.Product
	s.Collector.OnHTML("li.product-item", func(e *colly.HTMLElement) {
		nameEl := e.DOM.Find("a.product-item-link").First()
		link, _ := nameEl.Attr("href")
		name := strings.TrimSpace(nameEl.Text())
		if link == "" || name == "" {
			return
		}

		price, err := base.ParsePrice(e.DOM.Find(".price").First().Text())
		if err != nil {
			log.Printf("montlimart: skipping %q: %v", name, err)
			return
		}

		photo, _ := e.DOM.Find("img.product-image-photo").First().Attr("src")

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

	if err := s.Collector.Visit(url); err != nil {
		return nil, err
	}

	return products, nil
}
