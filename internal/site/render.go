// Package site is the presentation adapter: it renders the reconciled
// catalog into the listing page and per-product detail pages, either as
// static files or per request in serve mode.
package site

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/ibulavka0612/price-compare/internal/catalog"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/style.css
var styleCSS []byte

var (
	indexTmpl   *template.Template
	productTmpl *template.Template
)

func init() {
	tmpls := template.Must(template.New("site").ParseFS(templateFS, "templates/*.html"))
	indexTmpl = ensure(tmpls, "index.html")
	productTmpl = ensure(tmpls, "product.html")
}

func ensure(templates *template.Template, name string) *template.Template {
	tmpl := templates.Lookup(name)
	if tmpl == nil {
		panic("template " + name + " not found")
	}
	return tmpl
}

// Renderer formats one reconciled catalog. The catalog is read-only by the
// time a Renderer sees it, so a Renderer is safe for concurrent handlers.
type Renderer struct {
	Title   string
	catalog *catalog.Catalog
	nowFn   func() time.Time
}

func NewRenderer(title string, c *catalog.Catalog) *Renderer {
	return &Renderer{Title: title, catalog: c, nowFn: time.Now}
}

// ListingRow is one product line on the index page.
type ListingRow struct {
	Category   string
	Slug       string
	Name       string
	Brand      string
	Model      string
	OfferCount int
	LowTotal   float64
	Currency   string
}

// Listing returns the index rows sorted by (category, name), the order the
// listing page promises.
func (r *Renderer) Listing() []ListingRow {
	rows := make([]ListingRow, 0, r.catalog.Len())
	for _, slug := range r.catalog.Slugs() {
		p, _ := r.catalog.Product(slug)
		// every catalog product has at least one offer; anything else is a bug
		agg := lo.Must(r.catalog.Aggregate(slug))
		rows = append(rows, ListingRow{
			Category:   p.Category,
			Slug:       p.Slug,
			Name:       p.Name,
			Brand:      p.Brand,
			Model:      p.Model,
			OfferCount: agg.OfferCount,
			LowTotal:   agg.LowTotal,
			Currency:   agg.Cheapest.Currency,
		})
	}
	slices.SortStableFunc(rows, func(a, b ListingRow) int {
		if c := strings.Compare(a.Category, b.Category); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return rows
}

// SortedOffers returns a product's offers ascending by total. The sort is
// stable: equal totals keep their feed order, matching the aggregator's
// cheapest-offer tie-break.
func (r *Renderer) SortedOffers(slug string) []catalog.Offer {
	offers := slices.Clone(r.catalog.Offers(slug))
	slices.SortStableFunc(offers, func(a, b catalog.Offer) int {
		switch {
		case a.Total < b.Total:
			return -1
		case a.Total > b.Total:
			return 1
		}
		return 0
	})
	return offers
}

type indexData struct {
	Title        string
	StylePath    string
	ProductCount int
	OfferCount   int
	Rows         []ListingRow
	Year         int
}

type productData struct {
	Title     string
	StylePath string
	Product   catalog.Product
	Offers    []catalog.Offer
	JSONLD    template.JS
	Year      int
}

// WriteIndex renders the listing page.
func (r *Renderer) WriteIndex(w io.Writer, stylePath string) error {
	return indexTmpl.Execute(w, indexData{
		Title:        r.Title,
		StylePath:    stylePath,
		ProductCount: r.catalog.Len(),
		OfferCount:   r.catalog.OfferCount(),
		Rows:         r.Listing(),
		Year:         r.nowFn().UTC().Year(),
	})
}

// WriteProduct renders one detail page.
func (r *Renderer) WriteProduct(w io.Writer, slug, stylePath string) error {
	p, ok := r.catalog.Product(slug)
	if !ok {
		return fmt.Errorf("render product: unknown slug %q", slug)
	}
	offers := r.SortedOffers(slug)
	agg := lo.Must(r.catalog.Aggregate(slug))
	return productTmpl.Execute(w, productData{
		Title:     r.Title,
		StylePath: stylePath,
		Product:   p,
		Offers:    offers,
		JSONLD:    jsonLD(p, agg),
		Year:      r.nowFn().UTC().Year(),
	})
}

// WriteStatic writes the whole site below dir: the listing, one page per
// product and the shared stylesheet.
func (r *Renderer) WriteStatic(dir string) error {
	if err := os.MkdirAll(filepath.Join(dir, "products"), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	var buf bytes.Buffer
	if err := r.WriteIndex(&buf, "style.css"); err != nil {
		return fmt.Errorf("render index: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "index.html"), buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}

	for _, slug := range r.catalog.Slugs() {
		buf.Reset()
		if err := r.WriteProduct(&buf, slug, "../style.css"); err != nil {
			return fmt.Errorf("render product %s: %w", slug, err)
		}
		if err := os.WriteFile(filepath.Join(dir, "products", slug+".html"), buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("write product %s: %w", slug, err)
		}
	}

	if err := os.WriteFile(filepath.Join(dir, "style.css"), styleCSS, 0644); err != nil {
		return fmt.Errorf("write stylesheet: %w", err)
	}
	return nil
}

// schema.org Product with an AggregateOffer, the block crawlers read price
// ranges from.
type productLD struct {
	Context string           `json:"@context"`
	Type    string           `json:"@type"`
	Name    string           `json:"name"`
	Brand   *brandLD         `json:"brand,omitempty"`
	MPN     string           `json:"mpn,omitempty"`
	GTIN13  string           `json:"gtin13,omitempty"`
	Offers  aggregateOfferLD `json:"offers"`
}

type brandLD struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type aggregateOfferLD struct {
	Type          string `json:"@type"`
	PriceCurrency string `json:"priceCurrency"`
	LowPrice      string `json:"lowPrice"`
	HighPrice     string `json:"highPrice"`
	OfferCount    string `json:"offerCount"`
}

func jsonLD(p catalog.Product, agg catalog.Aggregate) template.JS {
	ld := productLD{
		Context: "https://schema.org",
		Type:    "Product",
		Name:    p.Name,
		MPN:     p.MPN,
		GTIN13:  p.GTIN,
		Offers: aggregateOfferLD{
			Type:          "AggregateOffer",
			PriceCurrency: agg.Cheapest.Currency,
			LowPrice:      fmt.Sprintf("%.2f", agg.LowTotal),
			HighPrice:     fmt.Sprintf("%.2f", agg.HighTotal),
			OfferCount:    fmt.Sprintf("%d", agg.OfferCount),
		},
	}
	if p.Brand != "" {
		ld.Brand = &brandLD{Type: "Brand", Name: p.Brand}
	}
	encoded := lo.Must(json.Marshal(ld))
	return template.JS(encoded)
}
