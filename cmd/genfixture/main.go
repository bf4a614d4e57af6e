// Command genfixture fetches one live batch from the randomuser.me API and
// writes its results array as an indented JSON test fixture. The
// batch is flattened before writing so that a fixture is never produced from
// a response the service itself would reject.
//
// Usage:
//
//	go run ./cmd/genfixture \
//	  --results 3 \
//	  --out internal/adapter/randomuser/testdata/results.json
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/couchcryptid/user-locations/internal/adapter/randomuser"
	"github.com/couchcryptid/user-locations/internal/domain"
	"github.com/couchcryptid/user-locations/internal/observability"
)

type Options struct {
	Out     string        `short:"o" long:"out" required:"true" description:"Output path for the fixture"`
	Results int           `short:"n" long:"results" default:"20" description:"Number of users to fetch"`
	URL     string        `long:"url" default:"https://randomuser.me/api/" description:"randomuser.me API endpoint, may carry extra query parameters such as seed"`
	Timeout time.Duration `long:"timeout" default:"10s" description:"HTTP timeout"`
}

func main() {
	var opts Options
	if _, err := flags.Parse(&opts); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		log.Fatal(err)
	}
}

func run(opts Options) error {
	logger := observability.NewLoggerTo(io.Discard, "error", "text")
	client := randomuser.NewClient(opts.URL, opts.Results, opts.Timeout, observability.NewMetrics(), logger)

	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	users, err := client.FetchUsers(ctx)
	if err != nil {
		return err
	}
	if _, err := domain.FlattenAll(users); err != nil {
		return fmt.Errorf("fetched batch is not usable: %w", err)
	}

	data, err := json.MarshalIndent(map[string]any{"results": users}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(opts.Out), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(opts.Out, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write fixture: %w", err)
	}

	fmt.Printf("wrote %d users to %s\n", len(users), opts.Out)
	return nil
}
