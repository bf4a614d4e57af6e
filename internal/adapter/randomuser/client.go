package randomuser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/user-locations/internal/domain"
	"github.com/couchcryptid/user-locations/internal/observability"
)

// DefaultURL is the public randomuser.me API endpoint.
const DefaultURL = "https://randomuser.me/api/"

// Client fetches batches of synthetic users from the randomuser.me API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	results    int
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a randomuser.me client requesting results users per call.
func NewClient(baseURL string, results int, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		results: results,
		metrics: metrics,
		logger:  logger,
	}
}

// FetchUsers performs one GET and returns the raw user objects found under "results".
func (c *Client) FetchUsers(ctx context.Context) ([]domain.RawUser, error) {
	start := time.Now()
	users, err := c.fetch(ctx)
	c.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.FetchRequests.WithLabelValues("error").Inc()
		return nil, err
	}
	c.metrics.FetchRequests.WithLabelValues("success").Inc()
	c.logger.Debug("fetched users", "count", len(users), "duration", time.Since(start))
	return users, nil
}

func (c *Client) fetch(ctx context.Context) ([]domain.RawUser, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	q := u.Query()
	q.Set("results", strconv.Itoa(c.results))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("randomuser request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("randomuser API error: status %d: %s", resp.StatusCode, body)
	}

	var ruResp response
	if err := json.NewDecoder(resp.Body).Decode(&ruResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if ruResp.Error != "" {
		return nil, fmt.Errorf("randomuser API error: %s", ruResp.Error)
	}
	if ruResp.Results == nil {
		return nil, errors.New("decode response: missing results")
	}
	c.logger.Debug("randomuser response", "seed", ruResp.Info.Seed, "version", ruResp.Info.Version)
	return *ruResp.Results, nil
}

// randomuser.me API response types.

type response struct {
	Results *[]domain.RawUser `json:"results"`
	Error   string            `json:"error"`
	Info    info              `json:"info"`
}

type info struct {
	Seed    string `json:"seed"`
	Results int    `json:"results"`
	Page    int    `json:"page"`
	Version string `json:"version"`
}
