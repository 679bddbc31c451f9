// Package sitemap builds the discovery manifests for the rendered catalog:
// a plain-text URL list for the static build and XML/robots handlers for
// serve mode.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

const robots = `# Allow all search engines to crawl the site
User-agent: *
Allow: /

# Sitemap location
Sitemap: %s/sitemap.xml
`

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// URLs lists every canonical page: the listing first, then one detail page
// per slug in catalog order, so the manifest is stable across runs.
func URLs(baseURL string, slugs []string) []string {
	base := strings.TrimRight(baseURL, "/")
	urls := make([]string, 0, len(slugs)+1)
	urls = append(urls, base+"/index.html")
	for _, slug := range slugs {
		urls = append(urls, base+"/products/"+slug+".html")
	}
	return urls
}

// WriteText writes the sitemap.txt format, one URL per line.
func WriteText(w io.Writer, urls []string) error {
	_, err := io.WriteString(w, strings.Join(urls, "\n")+"\n")
	return err
}

// WriteXML writes a sitemaps.org urlset.
func WriteXML(w io.Writer, urls []string) error {
	entries := make([]urlEntry, 0, len(urls))
	for _, u := range urls {
		entries = append(entries, urlEntry{Loc: u})
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return xml.NewEncoder(w).Encode(urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  entries,
	})
}

// Server serves the manifests in serve mode.
type Server struct {
	baseURL string
	slugs   []string
}

func New(baseURL string, slugs []string) *Server {
	return &Server{baseURL: strings.TrimRight(baseURL, "/"), slugs: slugs}
}

func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /sitemap.xml", s.handleSitemap)
	mux.HandleFunc("GET /robots.txt", s.handleRobots)
}

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	urls := URLs(s.baseURL, s.slugs)
	slog.InfoContext(r.Context(), "serving sitemap", "count", len(urls))

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	if err := WriteXML(w, urls); err != nil {
		slog.ErrorContext(r.Context(), "failed to encode sitemap", "error", err)
	}
}

func (s *Server) handleRobots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := fmt.Fprintf(w, robots, s.baseURL); err != nil {
		slog.ErrorContext(r.Context(), "failed to write robots.txt", "error", err)
	}
}
