package site

import (
	"crypto/sha256"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
)

// Register wires the serve-mode routes: the listing, the detail pages and
// the shared stylesheet. Pages render per request from the in-memory catalog.
func (r *Renderer) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", r.handleIndex)
	mux.HandleFunc("GET /index.html", r.handleIndex)
	mux.HandleFunc("GET /products/{page}", r.handleProduct)

	styleETag := fmt.Sprintf(`"%x"`, sha256.Sum256(styleCSS))
	mux.HandleFunc("GET /style.css", func(w http.ResponseWriter, req *http.Request) {
		if req.Header.Get("If-None-Match") == styleETag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=0, no-cache")
		w.Header().Set("ETag", styleETag)
		if _, err := w.Write(styleCSS); err != nil {
			slog.ErrorContext(req.Context(), "failed to write stylesheet", "error", err)
		}
	})
}

func (r *Renderer) handleIndex(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := r.WriteIndex(w, "/style.css"); err != nil {
		slog.ErrorContext(req.Context(), "index template error", "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

func (r *Renderer) handleProduct(w http.ResponseWriter, req *http.Request) {
	slug := strings.TrimSuffix(req.PathValue("page"), ".html")
	if _, ok := r.catalog.Product(slug); !ok {
		http.NotFound(w, req)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := r.WriteProduct(w, slug, "/style.css"); err != nil {
		slog.ErrorContext(req.Context(), "product template error", "slug", slug, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}
