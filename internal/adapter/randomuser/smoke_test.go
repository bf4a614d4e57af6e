//go:build smoke

package randomuser

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/couchcryptid/user-locations/internal/domain"
	"github.com/couchcryptid/user-locations/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests hit the real randomuser.me API.
// Run with: go test -tags=smoke ./internal/adapter/randomuser/ -v -count=1

func smokeClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    DefaultURL,
		results:    20,
		metrics:    observability.NewMetricsForTesting(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestSmoke_FetchUsers(t *testing.T) {
	c := smokeClient()

	users, err := c.FetchUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 20)

	records, err := domain.FlattenAll(users)
	require.NoError(t, err)
	for _, r := range records {
		assert.NotEmpty(t, r.Location.City.String())
		assert.NotEmpty(t, r.Location.TimezoneOffset.String())
	}
}
