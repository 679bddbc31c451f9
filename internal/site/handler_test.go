package site

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testMux(t *testing.T) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	NewRenderer("Drill Prices", testCatalog()).Register(mux)
	return mux
}

func TestHandleIndex(t *testing.T) {
	t.Parallel()

	mux := testMux(t)
	for _, path := range []string{"/", "/index.html"} {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: expected status 200, got %d", path, rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "bosch-gsr-12") {
			t.Fatalf("%s: listing missing product link", path)
		}
	}
}

func TestHandleProduct(t *testing.T) {
	t.Parallel()

	mux := testMux(t)
	for _, path := range []string{"/products/bosch-gsr-12.html", "/products/bosch-gsr-12"} {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: expected status 200, got %d", path, rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "AggregateOffer") {
			t.Fatalf("%s: detail page missing JSON-LD", path)
		}
	}
}

func TestHandleProductNotFound(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	testMux(t).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/products/nope.html", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
}

func TestHandleStyleETag(t *testing.T) {
	t.Parallel()

	mux := testMux(t)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/style.css", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	etag := rr.Header().Get("ETag")
	if etag == "" {
		t.Fatal("expected an ETag header")
	}

	req := httptest.NewRequest(http.MethodGet, "/style.css", nil)
	req.Header.Set("If-None-Match", etag)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotModified {
		t.Fatalf("expected status 304, got %d", rr.Code)
	}
}
