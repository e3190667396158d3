package shownotes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"path"
	"strings"
	"unicode"

	"podclip/pkg/httpclient"
)

var (
	errEmptyPageURL = errors.New("episode page URL is empty")
	errEmptyHTML    = errors.New("episode page HTML is empty")
)

// maxExcerptRunes bounds the show-notes excerpt embedded in a note body.
const maxExcerptRunes = 1200

// PageNotes is what could be pulled off an episode page: a readable
// excerpt, and, when the page links a published transcript document, its
// extracted text.
type PageNotes struct {
	Title         string
	Excerpt       string
	TranscriptURL string
	Transcript    string
}

// Fetcher downloads an episode page and extracts show notes from it. All of
// this is enrichment: callers treat any failure as "no show notes".
type Fetcher struct {
	client *httpclient.HTTPClient
}

// NewFetcher creates a show-notes fetcher.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: httpclient.NewClient(httpclient.BrowserClient),
	}
}

// Fetch retrieves the episode page and extracts title, excerpt, and any
// published transcript (.pdf or .txt) linked from it.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (PageNotes, error) {
	pageURL = strings.TrimSpace(pageURL)
	if pageURL == "" {
		return PageNotes{}, errEmptyPageURL
	}

	html, err := f.fetch(ctx, pageURL)
	if err != nil {
		return PageNotes{}, fmt.Errorf("fetch episode page: %w", err)
	}
	if strings.TrimSpace(html) == "" {
		return PageNotes{}, errEmptyHTML
	}

	var notes PageNotes
	notes.Title, _ = ExtractTitle(html)

	if text, err := ExtractText(html); err == nil {
		notes.Excerpt = excerpt(text, maxExcerptRunes)
	}

	// Published transcript is best-effort on top of best-effort: keep
	// whatever the page yielded even if the transcript fetch fails
	if foundURL, err := FindTranscriptURL(html); err == nil {
		if resolved, err := resolveAgainst(pageURL, foundURL); err == nil {
			notes.TranscriptURL = resolved
			if text, err := f.fetchTranscript(ctx, resolved); err == nil {
				notes.Transcript = strings.TrimSpace(text)
			} else {
				log.Printf("ShowNotes: transcript fetch failed for %s: %v", resolved, err)
			}
		}
	}

	return notes, nil
}

func (f *Fetcher) fetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// fetchTranscript downloads a linked transcript document and extracts its
// text. PDF documents go through the PDF extractor; anything else is read
// as plain text.
func (f *Fetcher) fetchTranscript(ctx context.Context, transcriptURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, transcriptURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if isPDF(transcriptURL, resp.Header.Get("Content-Type")) {
		return extractPDFText(resp.Body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func isPDF(rawURL, contentType string) bool {
	if strings.Contains(strings.ToLower(contentType), "application/pdf") {
		return true
	}
	if u, err := url.Parse(rawURL); err == nil {
		return strings.EqualFold(path.Ext(u.Path), ".pdf")
	}
	return false
}

// resolveAgainst resolves a possibly relative href against the page URL.
func resolveAgainst(baseURL, href string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}

// excerpt truncates text to at most n runes, cutting back to the last word
// boundary.
func excerpt(text string, n int) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	cut := runes[:n]
	for i := len(cut) - 1; i > 0; i-- {
		if unicode.IsSpace(cut[i]) {
			cut = cut[:i]
			break
		}
	}
	return strings.TrimSpace(string(cut)) + "…"
}
