package feeds

import (
	"context"
	"log/slog"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/ibulavka0612/price-compare/internal/catalog"
)

// Load fetches every source concurrently and concatenates the results in
// configured source order, regardless of which fetch finished first. An
// unreachable source contributes zero rows and a warning; feeds go down all
// the time and one of them must not sink the build.
func Load(ctx context.Context, sources []Source) []catalog.RawRow {
	results := make([][]catalog.RawRow, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			rows, err := src.Rows(ctx)
			if err != nil {
				slog.WarnContext(ctx, "feed fetch failed", "feed", src.Name(), "error", err)
				return nil
			}
			slog.InfoContext(ctx, "feed loaded", "feed", src.Name(), "rows", len(rows))
			results[i] = rows
			return nil
		})
	}
	_ = g.Wait() // fetch errors are downgraded above, never returned
	return lo.Flatten(results)
}
