package base

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tlemaire/product-aggregator/models"
)

// Important: User-Agent to avoid immediate blocking
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.114 Safari/537.36"

// Fetch GETs a catalogue page and returns its body. Any non-200 status is an
// error; the caller treats it as a page-level extraction failure.
func Fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code error: %d %s", res.StatusCode, res.Status)
	}

	return io.ReadAll(res.Body)
}

// ParsePrice converts a scraped price string to a float. Currency symbols,
// spaces and thousands separators are stripped; both "49,90 €" and "$1,234.56"
// forms parse. Unparseable or negative prices are errors and the listing that
// carried them gets skipped.
func ParsePrice(raw string) (float64, error) {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',', r == '-':
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" {
		return 0, fmt.Errorf("no numeric content in price %q", raw)
	}

	// The rightmost of comma/dot is the decimal separator; the other one,
	// if present, separates thousands.
	ci, di := strings.LastIndex(s, ","), strings.LastIndex(s, ".")
	if ci > di {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	} else if di > ci {
		s = strings.ReplaceAll(s, ",", "")
	}

	price, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable price %q: %w", raw, err)
	}
	if price < 0 {
		return 0, fmt.Errorf("negative price %q", raw)
	}
	return price, nil
}

var releasedStart = time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)

// RandomReleaseDate returns a random date between January 2021 and now.
// None of the catalogue sites expose a real release date, so the field is
// filled with simulated data; the freshness indicators built on it are
// meaningful only once a source provides true dates.
func RandomReleaseDate() string {
	span := time.Since(releasedStart)
	offset := time.Duration(rand.Int63n(int64(span)))
	return releasedStart.Add(offset).Format(models.DateLayout)
}
