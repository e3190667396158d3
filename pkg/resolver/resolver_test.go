package resolver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"podclip/pkg/directory"
)

// stubDirectory is a mock implementation of DirectoryClient for testing
type stubDirectory struct {
	feedURL string
	err     error
}

func (s *stubDirectory) ResolveFeed(ctx context.Context, podcastName string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.feedURL, nil
}

func feedServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

const testFeed = `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Tech Weekly</title>
    <link>https://techweekly.example.com</link>
    <item>
      <title>Episode 42: Scaling</title>
      <link>https://techweekly.example.com/42</link>
      <enclosure url="https://cdn.example.com/42.mp3" type="audio/mpeg"/>
    </item>
    <item>
      <title>Episode 41: Caching</title>
      <enclosure url="https://cdn.example.com/41.mp3" type="audio/mpeg"/>
    </item>
  </channel>
</rss>`

func TestResolver_Resolve_SuperstringMatch(t *testing.T) {
	server := feedServer(t, testFeed, http.StatusOK)
	r := New(&stubDirectory{feedURL: server.URL})

	// Now-playing titles are often truncated: "Episode 42" must match the
	// catalog's longer "Episode 42: Scaling"
	resolved, err := r.Resolve(context.Background(), "Tech Weekly", "Episode 42")

	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved.AudioURL != "https://cdn.example.com/42.mp3" {
		t.Errorf("Expected audio URL of episode 42, got %q", resolved.AudioURL)
	}
	if resolved.PageURL != "https://techweekly.example.com/42" {
		t.Errorf("Expected page URL of episode 42, got %q", resolved.PageURL)
	}
	if resolved.FeedURL != server.URL {
		t.Errorf("Expected feed URL actually used, got %q", resolved.FeedURL)
	}
}

func TestResolver_Resolve_SubstringMatch(t *testing.T) {
	server := feedServer(t, testFeed, http.StatusOK)
	r := New(&stubDirectory{feedURL: server.URL})

	// Annotated now-playing titles must also match: the catalog title is a
	// substring of the query
	resolved, err := r.Resolve(context.Background(), "Tech Weekly", "Episode 42: Scaling (Audio)")

	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved.AudioURL != "https://cdn.example.com/42.mp3" {
		t.Errorf("Expected audio URL of episode 42, got %q", resolved.AudioURL)
	}
}

func TestResolver_Resolve_ChannelMetadata(t *testing.T) {
	server := feedServer(t, testFeed, http.StatusOK)
	r := New(&stubDirectory{feedURL: server.URL})

	resolved, err := r.Resolve(context.Background(), "Tech Weekly", "Episode 42")

	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved.ChannelTitle != "Tech Weekly" {
		t.Errorf("Expected channel title 'Tech Weekly', got %q", resolved.ChannelTitle)
	}
	if resolved.ChannelLink != "https://techweekly.example.com" {
		t.Errorf("Expected channel link, got %q", resolved.ChannelLink)
	}
}

func TestResolver_Resolve_EpisodeNotFound(t *testing.T) {
	server := feedServer(t, testFeed, http.StatusOK)
	r := New(&stubDirectory{feedURL: server.URL})

	_, err := r.Resolve(context.Background(), "Tech Weekly", "Completely Different Episode")

	if !errors.Is(err, ErrEpisodeNotFound) {
		t.Errorf("Expected ErrEpisodeNotFound, got %v", err)
	}
}

func TestResolver_Resolve_EmptyFeed(t *testing.T) {
	server := feedServer(t, `<rss><channel><title>Empty</title></channel></rss>`, http.StatusOK)
	r := New(&stubDirectory{feedURL: server.URL})

	_, err := r.Resolve(context.Background(), "Empty", "Anything")

	if !errors.Is(err, ErrEpisodeNotFound) {
		t.Errorf("Expected ErrEpisodeNotFound for empty feed, got %v", err)
	}
}

func TestResolver_Resolve_FeedFetchFailed(t *testing.T) {
	server := feedServer(t, "gone", http.StatusNotFound)
	r := New(&stubDirectory{feedURL: server.URL})

	_, err := r.Resolve(context.Background(), "Tech Weekly", "Episode 42")

	if !errors.Is(err, ErrFeedFetch) {
		t.Errorf("Expected ErrFeedFetch for 404 feed, got %v", err)
	}
}

func TestResolver_Resolve_DirectoryErrorPropagates(t *testing.T) {
	r := New(&stubDirectory{err: directory.ErrPodcastNotFound})

	_, err := r.Resolve(context.Background(), "Unknown Show", "Episode 1")

	if !errors.Is(err, directory.ErrPodcastNotFound) {
		t.Errorf("Expected directory error to propagate verbatim, got %v", err)
	}
}
