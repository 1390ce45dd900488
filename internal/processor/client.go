// Package processor queries the capability set of the external image
// processing service.
package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/AznStevy/bme590final/internal/model"
)

var _ model.Processor = (*Client)(nil)

// Client fetches capabilities from the processor's HTTP endpoint and
// caches the result for a short TTL so validation does not hit the
// processor on every request.
type Client struct {
	baseURL string
	hc      *http.Client
	ttl     time.Duration

	mu        sync.Mutex
	cached    []string
	fetchedAt time.Time
}

func NewClient(baseURL string, ttl time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: 10 * time.Second},
		ttl:     ttl,
	}
}

type capabilitiesResponse struct {
	Capabilities []string `json:"capabilities"`
}

// ListCapabilities returns the processor's capability names.
func (c *Client) ListCapabilities(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil && time.Since(c.fetchedAt) < c.ttl {
		return slices.Clone(c.cached), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/capabilities", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build capabilities request: %w", err)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query processor capabilities: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("processor capabilities query returned status %d", resp.StatusCode)
	}

	var body capabilitiesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode capabilities response: %w", err)
	}

	c.cached = body.Capabilities
	c.fetchedAt = time.Now()
	return slices.Clone(c.cached), nil
}
