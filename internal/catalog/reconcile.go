package catalog

import "time"

// Product is one distinct physical product. Descriptive fields come from the
// first record seen for its slug; later records never overwrite them.
type Product struct {
	Slug     string
	Category string
	Name     string
	Brand    string
	Model    string
	GTIN     string
	MPN      string
	Specs    map[string]string
}

// Offer is one merchant's offer for a product. Offers from the same merchant
// are not deduplicated: each validated record becomes exactly one offer.
type Offer struct {
	Merchant     string
	Availability string
	Price        float64
	Shipping     float64
	Total        float64
	Currency     string
	URL          string
	UpdatedAt    time.Time
}

// Catalog maps product slugs to their product and offers. It preserves
// first-seen slug order so that every iteration over it is deterministic.
// Built once per run, read-only afterwards.
type Catalog struct {
	slugs    []string
	products map[string]Product
	offers   map[string][]Offer
}

// Reconcile folds validated records, in input order, into a catalog.
// The merge is non-commutative (first-seen-wins on descriptive fields), so
// feed concatenation order is part of the observable contract: the same
// ordered input always yields the same catalog, while reordering feeds may
// legitimately change which record names a product.
func Reconcile(records []OfferRecord) *Catalog {
	c := &Catalog{
		products: make(map[string]Product),
		offers:   make(map[string][]Offer),
	}
	for _, rec := range records {
		if _, seen := c.products[rec.Slug]; !seen {
			c.slugs = append(c.slugs, rec.Slug)
			c.products[rec.Slug] = Product{
				Slug:     rec.Slug,
				Category: rec.Category,
				Name:     rec.Name,
				Brand:    rec.Brand,
				Model:    rec.Model,
				GTIN:     rec.GTIN,
				MPN:      rec.MPN,
				Specs:    rec.Specs,
			}
		}
		c.offers[rec.Slug] = append(c.offers[rec.Slug], Offer{
			Merchant:     rec.Merchant,
			Availability: rec.Availability,
			Price:        rec.Price,
			Shipping:     rec.Shipping,
			Total:        rec.Price + rec.Shipping,
			Currency:     rec.Currency,
			URL:          rec.URL,
			UpdatedAt:    rec.UpdatedAt,
		})
	}
	return c
}

// Slugs returns product slugs in first-seen order.
func (c *Catalog) Slugs() []string {
	return c.slugs
}

func (c *Catalog) Len() int {
	return len(c.slugs)
}

func (c *Catalog) Product(slug string) (Product, bool) {
	p, ok := c.products[slug]
	return p, ok
}

// Offers returns a product's offers in the order their records arrived.
// Callers must not mutate the returned slice.
func (c *Catalog) Offers(slug string) []Offer {
	return c.offers[slug]
}

// OfferCount is the total number of offers across all products.
func (c *Catalog) OfferCount() int {
	n := 0
	for _, offs := range c.offers {
		n += len(offs)
	}
	return n
}
