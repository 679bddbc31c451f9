// Package catalog implements the feed-reconciliation pipeline: raw merchant
// feed rows are validated into offer records, grouped by canonical product
// identity and aggregated into the derived values the rendered pages show.
package catalog

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Feed column names. Sources may omit any of them; absent columns read as "".
const (
	colCategory     = "category"
	colSlug         = "product_slug"
	colName         = "product_name"
	colBrand        = "brand"
	colModel        = "model"
	colGTIN         = "gtin"
	colMPN          = "mpn"
	colSpecs        = "specs_json"
	colMerchant     = "merchant"
	colPrice        = "price"
	colCurrency     = "currency"
	colShipping     = "shipping"
	colURL          = "url"
	colAvailability = "availability"
	colUpdatedAt    = "updated_at"
)

// RawRow is one uninterpreted feed row, keyed by column name. It is ephemeral:
// nothing downstream of Normalize ever sees one.
type RawRow map[string]string

func (r RawRow) get(key string) string {
	return strings.TrimSpace(r[key])
}

// OfferRecord is a validated feed row. A record exists only when slug,
// merchant and url are non-empty and the price is positive; everything else
// is defaulted rather than rejected.
type OfferRecord struct {
	Slug         string
	Category     string
	Name         string
	Brand        string
	Model        string
	GTIN         string
	MPN          string
	Specs        map[string]string
	Merchant     string
	Price        float64
	Shipping     float64
	Currency     string
	URL          string
	Availability string
	UpdatedAt    time.Time
}

// parseSpecs decodes the nested specs_json column. Feed authors routinely ship
// malformed JSON there; that degrades to an empty map and never loses the row.
func parseSpecs(text string) map[string]string {
	specs := map[string]string{}
	if text == "" {
		return specs
	}
	var raw map[string]any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return map[string]string{}
	}
	for k, v := range raw {
		switch val := v.(type) {
		case string:
			specs[k] = val
		case float64:
			specs[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			specs[k] = strconv.FormatBool(val)
		case nil:
			specs[k] = ""
		default:
			encoded, err := json.Marshal(val)
			if err != nil {
				continue
			}
			specs[k] = string(encoded)
		}
	}
	return specs
}
