package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"bbcd/internal/models"
	"bbcd/internal/structures"
)

type SourceClientInterface interface {
	Latest(ctx context.Context) (*models.UpstreamRound, error)
}

// SourceClient queries the upstream live-game results endpoint. One shared
// client with a pooled transport; every request carries the configured
// timeout through its context.
type SourceClient struct {
	url        string
	httpClient *http.Client
}

func NewSourceClient(conf *structures.Config) SourceClientInterface {
	return &SourceClient{
		url: conf.Collector.SourceURL,
		httpClient: &http.Client{
			Timeout: conf.Collector.RequestTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (c *SourceClient) Latest(ctx context.Context) (*models.UpstreamRound, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("unexpected status %d from source", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var round models.UpstreamRound
	if err := json.Unmarshal(body, &round); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &round, nil
}
