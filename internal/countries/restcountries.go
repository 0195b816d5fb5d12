// Package countries fetches country profiles from the REST Countries API.
//
// Lookups are strictly one-shot: no caching, no retries. A failed call
// surfaces immediately as ErrNotFound or an UpstreamError and the caller
// decides what to do with it.
package countries

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// countryFields trims upstream responses to the fields the service keeps.
const countryFields = "name,capital,population,region"

// Country is a point-in-time profile of a single country as reported by
// the upstream API.
type Country struct {
	Name       string `json:"name"`
	Capital    string `json:"capital"`
	Population int64  `json:"population"`
	Region     string `json:"region"`
}

// Client fetches country data from the REST Countries v3.1 API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rateLimiter
}

type rateLimiter struct {
	mu       sync.Mutex
	lastCall time.Time
	interval time.Duration
}

func newRateLimiter(interval time.Duration) *rateLimiter {
	return &rateLimiter{interval: interval}
}

func (r *rateLimiter) wait() {
	r.mu.Lock()
	defer r.mu.Unlock()

	since := time.Since(r.lastCall)
	if since < r.interval {
		time.Sleep(r.interval - since)
	}
	r.lastCall = time.Now()
}

// NewClient creates a new REST Countries API client with rate limiting.
// An empty baseURL selects the public https://restcountries.com instance.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://restcountries.com"
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:     baseURL,
		rateLimiter: newRateLimiter(200 * time.Millisecond),
	}
}

// Fetch looks up a single country by its full name. Matching is
// case-insensitive on the upstream side, so "japan" and "Japan" resolve to
// the same record. Returns ErrNotFound when no country matches and an
// UpstreamError when the API is unreachable or misbehaves.
func (c *Client) Fetch(ctx context.Context, name string) (*Country, error) {
	if name == "" {
		return nil, fmt.Errorf("country name is required")
	}

	c.rateLimiter.wait()

	lookupURL := fmt.Sprintf("%s/v3.1/name/%s?fullText=true&fields=%s",
		c.baseURL, url.PathEscape(name), countryFields)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Atlas/1.0 (https://github.com/mrlokans/atlas)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{StatusCode: resp.StatusCode}
	}

	var matches []countryResponse
	if err := json.NewDecoder(resp.Body).Decode(&matches); err != nil {
		return nil, &UpstreamError{Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}

	return convertCountry(&matches[0]), nil
}

func convertCountry(match *countryResponse) *Country {
	country := &Country{
		Name:       match.Name.Common,
		Population: match.Population,
		Region:     match.Region,
	}
	if len(match.Capital) > 0 {
		country.Capital = match.Capital[0]
	}
	return country
}

// REST Countries API response types (internal)

type countryResponse struct {
	Name struct {
		Common   string `json:"common"`
		Official string `json:"official"`
	} `json:"name"`
	Capital    []string `json:"capital"`
	Population int64    `json:"population"`
	Region     string   `json:"region"`
}
