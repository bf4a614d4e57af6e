package randomuser

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/couchcryptid/user-locations/internal/domain"
	"github.com/couchcryptid/user-locations/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
)

func testClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		results:    20,
		metrics:    observability.NewMetricsForTesting(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func fixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/results.json")
	require.NoError(t, err)
	return data
}

func TestClient_FetchUsers_Success(t *testing.T) {
	body := fixture(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/", r.URL.Path)
		assert.Equal(t, "20", r.URL.Query().Get("results"))
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	c := testClient(srv.URL + "/api/")
	users, err := c.FetchUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Contains(t, users[0], "location")
	assert.JSONEq(t, `"DE"`, string(users[0]["nat"]))

	records, err := domain.FlattenAll(users)
	require.NoError(t, err)
	assert.Equal(t, "Zug", records[2].Location.City.String())

	assert.InDelta(t, 1, testutil.ToFloat64(c.metrics.FetchRequests.WithLabelValues("success")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(c.metrics.FetchRequests.WithLabelValues("error")), 0)
}

func TestClient_FetchUsers_KeepsExistingQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "de,ch", r.URL.Query().Get("nat"))
		assert.Equal(t, "5", r.URL.Query().Get("results"))
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL + "/api/?nat=de,ch&results=99")
	c.results = 5
	users, err := c.FetchUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestClient_FetchUsers_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"Uh oh, something has gone wrong."}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.FetchUsers(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
	assert.InDelta(t, 1, testutil.ToFloat64(c.metrics.FetchRequests.WithLabelValues("error")), 0)
}

func TestClient_FetchUsers_ErrorField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`{"error":"Uh oh, something has gone wrong. Please tell us about this."}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.FetchUsers(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "something has gone wrong")
}

func TestClient_FetchUsers_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.FetchUsers(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestClient_FetchUsers_MissingResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"info":{"seed":"abc"}}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.FetchUsers(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing results")
}

func TestClient_FetchUsers_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	c := testClient(srv.URL)
	_, err := c.FetchUsers(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "randomuser request")
}

func TestClient_FetchUsers_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := testClient(srv.URL)
	_, err := c.FetchUsers(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewClient(t *testing.T) {
	c := NewClient(DefaultURL, 20, 3*time.Second, observability.NewMetricsForTesting(), slog.Default())
	assert.Equal(t, DefaultURL, c.baseURL)
	assert.Equal(t, 20, c.results)
	assert.Equal(t, 3*time.Second, c.httpClient.Timeout)
}
