package catalog

import (
	"strings"
	"time"
)

// Normalizer turns raw feed rows into validated offer records. It is pure
// apart from the injected clock, which only supplies the default updated_at.
type Normalizer struct {
	DefaultCurrency string
	Now             func() time.Time
}

func NewNormalizer(defaultCurrency string) *Normalizer {
	return &Normalizer{DefaultCurrency: defaultCurrency, Now: time.Now}
}

// resolveSlug picks the canonical product identity. Precedence matters: an
// explicit slug is the feed's stable key, brand+model is the next-most-stable
// human identity, free-text name is a last resort. Changing this ordering
// changes which offers land on the same product.
func resolveSlug(row RawRow) string {
	if slug := row.get(colSlug); slug != "" {
		return slug
	}
	brand, model := row.get(colBrand), row.get(colModel)
	if brand != "" && model != "" {
		return Slugify(brand + " " + model)
	}
	if name := row.get(colName); name != "" {
		return Slugify(name)
	}
	return FallbackSlug
}

// Normalize validates one row. It returns (nil, false) when the record
// invariant fails; that is routine feed noise, not an error, so it is never
// logged here — callers count it via NormalizeAll.
func (n *Normalizer) Normalize(row RawRow) (*OfferRecord, bool) {
	rec := &OfferRecord{
		Slug:         resolveSlug(row),
		Category:     row.get(colCategory),
		Name:         row.get(colName),
		Brand:        row.get(colBrand),
		Model:        row.get(colModel),
		GTIN:         row.get(colGTIN),
		MPN:          row.get(colMPN),
		Specs:        parseSpecs(row.get(colSpecs)),
		Merchant:     row.get(colMerchant),
		Price:        ParseAmount(row.get(colPrice)),
		Shipping:     ParseAmount(row.get(colShipping)),
		Currency:     row.get(colCurrency),
		URL:          row.get(colURL),
		Availability: row.get(colAvailability),
	}

	if rec.Name == "" {
		if combined := strings.TrimSpace(rec.Brand + " " + rec.Model); combined != "" {
			rec.Name = combined
		} else {
			rec.Name = rec.Slug
		}
	}
	if rec.Currency == "" {
		rec.Currency = n.DefaultCurrency
	}
	if ts, err := time.Parse(time.RFC3339, row.get(colUpdatedAt)); err == nil {
		rec.UpdatedAt = ts
	} else {
		rec.UpdatedAt = n.Now().UTC()
	}

	if rec.Slug == "" || rec.Merchant == "" || rec.URL == "" || rec.Price <= 0 {
		return nil, false
	}
	return rec, true
}

// Stats counts the outcome of a normalization pass. Rejected rows are
// expected, routine data loss; the CLI reports them, nothing else does.
type Stats struct {
	Accepted int
	Rejected int
}

// NormalizeAll validates rows in order, preserving input order of the
// accepted records. Order is load-bearing: reconciliation's first-seen-wins
// merge depends on it.
func (n *Normalizer) NormalizeAll(rows []RawRow) ([]OfferRecord, Stats) {
	records := make([]OfferRecord, 0, len(rows))
	var stats Stats
	for _, row := range rows {
		rec, ok := n.Normalize(row)
		if !ok {
			stats.Rejected++
			continue
		}
		stats.Accepted++
		records = append(records, *rec)
	}
	return records, stats
}
