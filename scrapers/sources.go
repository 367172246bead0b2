package scrapers

import (
	"github.com/tlemaire/product-aggregator/scrapers/adresseparis"
	"github.com/tlemaire/product-aggregator/scrapers/dedicated"
	"github.com/tlemaire/product-aggregator/scrapers/montlimart"
)

// Sources returns every registered catalogue source. The order matters for
// deduplication only: when two sources emit the same product id, the later
// entry wins during aggregation.
func Sources() []Source {
	return []Source{
		{
			Brand:   dedicated.Brand,
			URL:     "https://www.dedicatedbrand.com/en/loadfilter",
			Scraper: dedicated.New(),
		},
		{
			Brand:   montlimart.Brand,
			URL:     "https://www.montlimart.com/toute-la-collection.html",
			Scraper: montlimart.New(),
		},
		{
			Brand:   adresseparis.Brand,
			URL:     "https://adresse.paris/630-toute-la-collection?id_category=630&n=118",
			Scraper: adresseparis.New(),
		},
	}
}
