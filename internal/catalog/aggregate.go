package catalog

import (
	"errors"
	"time"
)

// ErrEmptyOfferSet signals aggregation over zero offers. Reconcile never
// produces a product without offers, so hitting this means a pipeline bug,
// not bad feed data.
var ErrEmptyOfferSet = errors.New("catalog: aggregate over empty offer set")

// Aggregate holds the derived values a product listing depends on.
type Aggregate struct {
	Cheapest   Offer
	LowTotal   float64
	HighTotal  float64
	OfferCount int
	UpdatedAt  time.Time
}

// AggregateOffers computes derived values over a product's offer set.
// Cheapest ties break toward the earliest offer in the slice; that stability
// is what keeps rendered output deterministic, so the comparison is strict.
func AggregateOffers(offers []Offer) (Aggregate, error) {
	if len(offers) == 0 {
		return Aggregate{}, ErrEmptyOfferSet
	}
	agg := Aggregate{
		Cheapest:   offers[0],
		LowTotal:   offers[0].Total,
		HighTotal:  offers[0].Total,
		OfferCount: len(offers),
		UpdatedAt:  offers[0].UpdatedAt,
	}
	for _, o := range offers[1:] {
		if o.Total < agg.LowTotal {
			agg.LowTotal = o.Total
			agg.Cheapest = o
		}
		if o.Total > agg.HighTotal {
			agg.HighTotal = o.Total
		}
		if o.UpdatedAt.After(agg.UpdatedAt) {
			agg.UpdatedAt = o.UpdatedAt
		}
	}
	return agg, nil
}

// Aggregate computes the derived values for one catalog product.
func (c *Catalog) Aggregate(slug string) (Aggregate, error) {
	return AggregateOffers(c.offers[slug])
}
