package catalog

import (
	"reflect"
	"testing"
	"time"
)

func record(slug, merchant string, price, shipping float64) OfferRecord {
	return OfferRecord{
		Slug:      slug,
		Name:      slug,
		Merchant:  merchant,
		Price:     price,
		Shipping:  shipping,
		Currency:  "RUB",
		URL:       "https://" + merchant + ".example/" + slug,
		UpdatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestReconcileGroupsBySlug(t *testing.T) {
	t.Parallel()

	c := Reconcile([]OfferRecord{
		record("bosch-gsr-12", "toolshop", 4500, 120),
		record("makita-df333", "toolshop", 5200, 0),
		record("bosch-gsr-12", "drillmart", 4399, 0),
	})

	if c.Len() != 2 {
		t.Fatalf("expected 2 products, got %d", c.Len())
	}
	if got := c.Slugs(); got[0] != "bosch-gsr-12" || got[1] != "makita-df333" {
		t.Fatalf("slug order not first-seen: %v", got)
	}
	if offs := c.Offers("bosch-gsr-12"); len(offs) != 2 {
		t.Fatalf("expected 2 offers, got %d", len(offs))
	}
	if c.OfferCount() != 3 {
		t.Fatalf("expected 3 offers total, got %d", c.OfferCount())
	}
}

func TestReconcileFirstSeenWins(t *testing.T) {
	t.Parallel()

	first := record("bosch-gsr-12", "toolshop", 4500, 0)
	first.Brand = "Bosch"
	first.Specs = map[string]string{"voltage": "12V"}
	second := record("bosch-gsr-12", "drillmart", 4399, 0)
	second.Brand = "BOSCH Professional"

	c := Reconcile([]OfferRecord{first, second})
	p, ok := c.Product("bosch-gsr-12")
	if !ok {
		t.Fatal("product missing")
	}
	if p.Brand != "Bosch" {
		t.Fatalf("descriptive fields must come from the first record, got brand %q", p.Brand)
	}
	if p.Specs["voltage"] != "12V" {
		t.Fatalf("specs must come from the first record, got %v", p.Specs)
	}
}

func TestReconcileKeepsDuplicateMerchantOffers(t *testing.T) {
	t.Parallel()

	c := Reconcile([]OfferRecord{
		record("bosch-gsr-12", "toolshop", 4500, 0),
		record("bosch-gsr-12", "toolshop", 4500, 0),
	})
	if offs := c.Offers("bosch-gsr-12"); len(offs) != 2 {
		t.Fatalf("identical merchant offers must not be deduplicated, got %d", len(offs))
	}
}

func TestReconcileDeterministic(t *testing.T) {
	t.Parallel()

	records := []OfferRecord{
		record("bosch-gsr-12", "toolshop", 4500, 120),
		record("makita-df333", "drillmart", 5200, 0),
		record("bosch-gsr-12", "drillmart", 4399, 0),
	}
	a := Reconcile(records)
	b := Reconcile(records)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same ordered input must yield identical catalogs")
	}
}

func TestOfferTotal(t *testing.T) {
	t.Parallel()

	c := Reconcile([]OfferRecord{record("bosch-gsr-12", "toolshop", 4500, 120)})
	if got := c.Offers("bosch-gsr-12")[0].Total; got != 4620 {
		t.Fatalf("total = %v, want 4620", got)
	}
}
