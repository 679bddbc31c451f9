package feeds

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/ibulavka0612/price-compare/internal/catalog"
	"github.com/ibulavka0612/price-compare/internal/config"
)

// Source is one merchant feed. Rows returns every row the source currently
// has; field-level cleanup is the normalizer's job, not the source's.
type Source interface {
	Name() string
	Rows(ctx context.Context) ([]catalog.RawRow, error)
}

// FileSource reads a feed from a local CSV file.
type FileSource struct {
	name     string
	path     string
	encoding string
}

var _ Source = (*FileSource)(nil)

func NewFileSource(name, path, encoding string) *FileSource {
	return &FileSource{name: name, path: path, encoding: encoding}
}

func (s *FileSource) Name() string { return s.name }

func (s *FileSource) Rows(_ context.Context) ([]catalog.RawRow, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open feed file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return DecodeCSV(f, s.encoding)
}

// HTTPSource fetches a feed over HTTP. Transient failures are the client
// library's problem; we configure it and otherwise stay out of retry policy.
type HTTPSource struct {
	name     string
	url      string
	encoding string
	client   *retryablehttp.Client
}

var _ Source = (*HTTPSource)(nil)

func NewHTTPSource(name, url, encoding string) *HTTPSource {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.HTTPClient.Timeout = 30 * time.Second
	client.Logger = nil
	return &HTTPSource{name: name, url: url, encoding: encoding, client: client}
}

func (s *HTTPSource) Name() string { return s.name }

func (s *HTTPSource) Rows(ctx context.Context) ([]catalog.RawRow, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch feed: status %d", resp.StatusCode)
	}
	return DecodeCSV(resp.Body, s.encoding)
}

// FromConfig builds sources in configured order. Order matters downstream:
// it fixes feed concatenation order and with it the first-seen-wins merge.
func FromConfig(cfgs []config.FeedConfig) []Source {
	sources := make([]Source, 0, len(cfgs))
	for _, fc := range cfgs {
		switch {
		case fc.URL != "":
			sources = append(sources, NewHTTPSource(fc.Name, fc.URL, fc.Encoding))
		case fc.Path != "":
			sources = append(sources, NewFileSource(fc.Name, fc.Path, fc.Encoding))
		}
	}
	return sources
}
