package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ibulavka0612/price-compare/internal/catalog"
	"github.com/ibulavka0612/price-compare/internal/config"
	"github.com/ibulavka0612/price-compare/internal/feeds"
	"github.com/ibulavka0612/price-compare/internal/site"
	"github.com/ibulavka0612/price-compare/internal/sitemap"
	"github.com/ibulavka0612/price-compare/internal/telemetry"
)

func main() {
	var configPath string
	var outDir string
	var serve bool
	var addr string
	var help bool

	flag.StringVar(&configPath, "config", "config.json", "Path to the site/feeds config file")
	flag.StringVar(&configPath, "c", "config.json", "Path to the config file (short form)")
	flag.StringVar(&outDir, "out", "", "Output directory for the static build (overrides config)")
	flag.BoolVar(&serve, "serve", false, "Run HTTP server mode instead of a static build")
	flag.StringVar(&addr, "addr", ":8080", "Address to bind in server mode")
	flag.BoolVar(&help, "help", false, "Show help message")
	flag.BoolVar(&help, "h", false, "Show help message")
	flag.Parse()

	if help {
		showHelp()
		return
	}

	_ = godotenv.Load()

	ctx := context.Background()
	shutdownLogs, err := telemetry.Setup(ctx, "pricesite")
	if err != nil {
		log.Fatalf("failed to set up logging: %v", err)
	}
	defer func() {
		_ = shutdownLogs(context.Background())
	}()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if outDir != "" {
		cfg.Output.Dir = outDir
	}

	cat := buildCatalog(ctx, cfg)

	if serve {
		if err := runServer(cfg, cat, addr); err != nil {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	if err := writeSite(cfg, cat); err != nil {
		log.Fatalf("build error: %v", err)
	}
}

// buildCatalog runs the whole pipeline once: fetch feeds, normalize rows,
// reconcile. The returned catalog is immutable from here on.
func buildCatalog(ctx context.Context, cfg *config.Config) *catalog.Catalog {
	start := time.Now()
	runID := uuid.NewString()

	rows := feeds.Load(ctx, feeds.FromConfig(cfg.Feeds))
	records, stats := catalog.NewNormalizer(cfg.DefaultCurrency).NormalizeAll(rows)
	cat := catalog.Reconcile(records)

	slog.InfoContext(ctx, "catalog built",
		"run_id", runID,
		"feeds", len(cfg.Feeds),
		"rows", len(rows),
		"accepted", stats.Accepted,
		"rejected", stats.Rejected,
		"products", cat.Len(),
		"offers", cat.OfferCount(),
		"duration", time.Since(start),
	)
	return cat
}

func writeSite(cfg *config.Config, cat *catalog.Catalog) error {
	renderer := site.NewRenderer(cfg.Site.Title, cat)
	if err := renderer.WriteStatic(cfg.Output.Dir); err != nil {
		return err
	}

	urls := sitemap.URLs(cfg.Site.BaseURL, cat.Slugs())
	txt, err := os.Create(filepath.Join(cfg.Output.Dir, "sitemap.txt"))
	if err != nil {
		return fmt.Errorf("create sitemap.txt: %w", err)
	}
	defer func() {
		_ = txt.Close()
	}()
	if err := sitemap.WriteText(txt, urls); err != nil {
		return fmt.Errorf("write sitemap.txt: %w", err)
	}

	xmlFile, err := os.Create(filepath.Join(cfg.Output.Dir, "sitemap.xml"))
	if err != nil {
		return fmt.Errorf("create sitemap.xml: %w", err)
	}
	defer func() {
		_ = xmlFile.Close()
	}()
	if err := sitemap.WriteXML(xmlFile, urls); err != nil {
		return fmt.Errorf("write sitemap.xml: %w", err)
	}

	slog.Info("static site written", "dir", cfg.Output.Dir, "pages", len(urls))
	return nil
}

func runServer(cfg *config.Config, cat *catalog.Catalog, addr string) error {
	mux := http.NewServeMux()

	site.NewRenderer(cfg.Site.Title, cat).Register(mux)
	sitemap.New(cfg.Site.BaseURL, cat.Slugs()).Register(mux)

	mux.HandleFunc("GET /ready", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.ErrorContext(r.Context(), "failed to write readiness response", "error", err)
		}
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	server := &http.Server{
		Addr:    addr,
		Handler: WithMiddleware(mux),
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("serving price catalog", "address", addr, "products", cat.Len())
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-shutdown:
		slog.Info("shutdown signal received", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server shutdown error", "error", err)
			if closeErr := server.Close(); closeErr != nil {
				slog.Error("server close error", "error", closeErr)
			}
			return err
		}
		return nil
	}
}

func showHelp() {
	fmt.Println("pricesite - merchant feed reconciliation and catalog site builder")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  pricesite [-config config.json] [-out site]")
	fmt.Println("  pricesite -serve [-addr :8080]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -config, -c     Path to the config file (default config.json)")
	fmt.Println("  -out            Output directory for the static build")
	fmt.Println("  -serve          Serve the catalog over HTTP instead of writing files")
	fmt.Println("  -addr           Address to bind in server mode (default :8080)")
	fmt.Println("  -help, -h       Show this help message")
}
