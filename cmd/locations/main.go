// Command locations fetches one batch of users, applies an optional search
// and any number of header clicks, and prints the resulting table.
//
// Usage:
//
//	go run ./cmd/locations --search berl
//	go run ./cmd/locations --sort city --sort city --json
//
// Each --sort is one click on that column, so repeating a field toggles its
// direction exactly as in the browser view.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/couchcryptid/user-locations/internal/adapter/randomuser"
	"github.com/couchcryptid/user-locations/internal/config"
	"github.com/couchcryptid/user-locations/internal/domain"
	"github.com/couchcryptid/user-locations/internal/observability"
	"github.com/couchcryptid/user-locations/internal/pipeline"
	"github.com/couchcryptid/user-locations/internal/render"
	"github.com/couchcryptid/user-locations/internal/view"
)

type Options struct {
	Search   string        `short:"s" long:"search" description:"Case-insensitive substring to match against any location field"`
	Sort     []string      `long:"sort" description:"Sort by field; repeat to toggle direction" value-name:"FIELD"`
	Results  int           `short:"n" long:"results" default:"20" description:"Number of users to fetch (1-5000)"`
	URL      string        `long:"url" env:"RANDOMUSER_URL" default:"https://randomuser.me/api/" description:"randomuser.me API endpoint"`
	Timeout  time.Duration `long:"timeout" env:"RANDOMUSER_TIMEOUT" default:"10s" description:"HTTP timeout for the fetch"`
	JSON     bool          `long:"json" description:"Print the page as JSON instead of a table"`
	LogLevel string        `long:"log-level" env:"LOG_LEVEL" default:"warn" description:"debug, info, warn or error"`
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		slog.Warn("failed to load .env file", "error", err)
	}

	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(opts Options) error {
	if opts.Results < 1 || opts.Results > 5000 {
		return fmt.Errorf("--results must be between 1 and 5000, got %d", opts.Results)
	}
	fields := make([]domain.Field, 0, len(opts.Sort))
	for _, s := range opts.Sort {
		f, err := domain.ParseField(s)
		if err != nil {
			return err
		}
		fields = append(fields, f)
	}

	logger := observability.NewLoggerTo(os.Stderr, opts.LogLevel, "text")
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := randomuser.NewClient(opts.URL, opts.Results, opts.Timeout, metrics, logger)
	store := view.NewStore(metrics, logger)
	p := pipeline.New(client, pipeline.NewTransformer(logger), store, logger, metrics)

	// A failed load is reported but still renders the empty table.
	if err := p.Run(ctx); err != nil {
		logger.Error("initial load failed", "error", err)
	}

	store.Search(opts.Search)
	for _, f := range fields {
		if _, err := store.Sort(f); err != nil {
			return err
		}
	}

	page := store.Snapshot()
	if opts.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	}
	return render.Text(os.Stdout, page)
}
