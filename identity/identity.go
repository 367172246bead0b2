package identity

import "github.com/google/uuid"

// FromLink derives a product id as a version-5 UUID of the full canonical
// product-page URL under the standard URL namespace. The mapping is
// deterministic across runs and processes, which is what lets favorites and
// pagination survive a re-scrape.
func FromLink(link string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(link)).String()
}
