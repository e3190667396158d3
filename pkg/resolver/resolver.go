package resolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"podclip/pkg/domain"
	"podclip/pkg/feed"
	"podclip/pkg/httpclient"
)

var (
	// ErrFeedFetch is returned when the resolved feed cannot be downloaded
	// (transport failure or non-2xx response).
	ErrFeedFetch = errors.New("failed to fetch feed")

	// ErrEpisodeNotFound is returned when the feed parses to zero entries or
	// no entry title matches the target episode title.
	ErrEpisodeNotFound = errors.New("episode not found in feed")
)

// DirectoryClient resolves a podcast name to a feed URL.
type DirectoryClient interface {
	ResolveFeed(ctx context.Context, podcastName string) (string, error)
}

// Resolver verifies a (podcast name, episode title) pair against the podcast
// directory and the podcast's own feed, producing verified episode metadata.
type Resolver struct {
	directory DirectoryClient
	client    *httpclient.HTTPClient
	parser    *feed.CatalogParser
}

// New creates a resolver backed by the given directory client.
func New(directory DirectoryClient) *Resolver {
	return &Resolver{
		directory: directory,
		client:    httpclient.NewClient(httpclient.BrowserClient),
		parser:    feed.NewCatalogParser(),
	}
}

// Resolve finds the feed for podcastName, fetches it, and selects the entry
// matching episodeTitle. Directory failures propagate verbatim; feed
// download failures yield ErrFeedFetch; an empty or unmatched catalog yields
// ErrEpisodeNotFound.
func (r *Resolver) Resolve(ctx context.Context, podcastName, episodeTitle string) (domain.ResolvedEpisode, error) {
	feedURL, err := r.directory.ResolveFeed(ctx, podcastName)
	if err != nil {
		return domain.ResolvedEpisode{}, err
	}

	body, err := r.fetchFeed(ctx, feedURL)
	if err != nil {
		return domain.ResolvedEpisode{}, err
	}

	entries := r.parser.Parse(body)
	if len(entries) == 0 {
		return domain.ResolvedEpisode{}, fmt.Errorf("%w: feed has no items", ErrEpisodeNotFound)
	}

	entry, ok := matchEntry(entries, episodeTitle)
	if !ok {
		return domain.ResolvedEpisode{}, fmt.Errorf("%w: no title matching %q", ErrEpisodeNotFound, episodeTitle)
	}

	log.Printf("Resolver: matched episode %q in feed %s", entry.Title, feedURL)

	// Channel-level enrichment is best-effort; a feed the tolerant item
	// parser handled may still be rejected here
	meta := feed.ParseChannelMeta(body)

	return domain.ResolvedEpisode{
		FeedURL:      feedURL,
		AudioURL:     entry.AudioURL,
		PageURL:      entry.PageURL,
		ChannelTitle: meta.Title,
		ChannelLink:  meta.Link,
	}, nil
}

// fetchFeed downloads the feed bytes. A 200-class status is required.
func (r *Resolver) fetchFeed(ctx context.Context, feedURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedFetch, err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status code: %d", ErrFeedFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedFetch, err)
	}

	return body, nil
}

// matchEntry selects the first entry whose title matches the target title by
// bidirectional case-insensitive substring containment. Now-playing titles
// are often abbreviated or annotated (a trailing "(Audio)" and the like), so
// exact equality is unreliable; the loose match is an accepted
// false-positive/false-negative trade-off.
func matchEntry(entries []domain.CatalogEntry, episodeTitle string) (domain.CatalogEntry, bool) {
	target := strings.ToLower(strings.TrimSpace(episodeTitle))

	for _, entry := range entries {
		title := strings.ToLower(strings.TrimSpace(entry.Title))
		if title == "" || target == "" {
			continue
		}
		if strings.Contains(title, target) || strings.Contains(target, title) {
			return entry, true
		}
	}

	return domain.CatalogEntry{}, false
}
