package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"podclip/pkg/httpclient"
)

const (
	defaultEndpoint = "https://itunes.apple.com/search"

	// resultLimit keeps the search response small; the first few results are
	// the only ones worth scoring
	resultLimit = 5
)

// ErrPodcastNotFound is returned when the directory has no candidate with a
// feed address for the query.
var ErrPodcastNotFound = errors.New("podcast not found in directory")

// Client resolves a podcast name to its feed URL via a podcast-search
// directory (iTunes Search API shape: a JSON object with a results array of
// collectionName/feedUrl pairs).
type Client struct {
	client   *httpclient.HTTPClient
	endpoint string
}

// NewClient creates a directory client against the default search endpoint.
func NewClient() *Client {
	return NewClientWithEndpoint(defaultEndpoint)
}

// NewClientWithEndpoint creates a directory client against a custom search
// endpoint. Used by tests.
func NewClientWithEndpoint(endpoint string) *Client {
	return &Client{
		client:   httpclient.NewClient(httpclient.CloudflareClient),
		endpoint: endpoint,
	}
}

type searchResult struct {
	CollectionName string `json:"collectionName"`
	FeedURL        string `json:"feedUrl"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

// ResolveFeed queries the directory for the podcast name and returns the
// feed URL of the best candidate. Candidates are scored by case-insensitive
// containment of the query in the collection name; if none score, the first
// result carrying a feed address is used.
func (c *Client) ResolveFeed(ctx context.Context, podcastName string) (string, error) {
	query := url.Values{}
	query.Set("term", podcastName)
	query.Set("media", "podcast")
	query.Set("limit", fmt.Sprintf("%d", resultLimit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build directory request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("directory search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("directory search: unexpected status code: %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode directory response: %w", err)
	}

	return pickFeed(podcastName, parsed.Results)
}

// pickFeed applies the scoring rules to the directory result set.
func pickFeed(podcastName string, results []searchResult) (string, error) {
	target := strings.ToLower(strings.TrimSpace(podcastName))

	for _, r := range results {
		if r.FeedURL == "" {
			continue
		}
		if target != "" && strings.Contains(strings.ToLower(r.CollectionName), target) {
			return r.FeedURL, nil
		}
	}

	// Fallback: first result that has a feed address at all
	for _, r := range results {
		if r.FeedURL != "" {
			return r.FeedURL, nil
		}
	}

	return "", ErrPodcastNotFound
}
