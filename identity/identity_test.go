package identity

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
)

func TestFromLink_Deterministic(t *testing.T) {
	link := "https://www.dedicatedbrand.com/en/t-shirt-stockholm"

	first := FromLink(link)
	for i := 0; i < 100; i++ {
		if got := FromLink(link); got != first {
			t.Fatalf("FromLink not deterministic: got %s, want %s", got, first)
		}
	}
}

func TestFromLink_IsNameBasedUUID(t *testing.T) {
	id := FromLink("https://adresse.paris/robe-imprimee")

	parsed, err := uuid.Parse(id)
	if err != nil {
		t.Fatalf("FromLink returned invalid UUID %q: %v", id, err)
	}
	if parsed.Version() != 5 {
		t.Errorf("expected version-5 UUID, got version %d", parsed.Version())
	}
}

func TestFromLink_DistinctLinks(t *testing.T) {
	seen := make(map[string]string)
	for i := 0; i < 10000; i++ {
		link := fmt.Sprintf("https://www.montlimart.com/product-%d.html", i)
		id := FromLink(link)
		if prev, ok := seen[id]; ok {
			t.Fatalf("collision: %q and %q both map to %s", prev, link, id)
		}
		seen[id] = link
	}
}
