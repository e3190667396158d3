package shownotes

import (
	"bytes"
	"errors"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
)

var errNoTranscriptLink = errors.New("no transcript link found in HTML")

// FindTranscriptURL locates a published transcript link (.pdf or .txt) in
// episode page HTML.
//
// Anchors are ranked by how much they look like a transcript link:
//  1. anchor text mentions "transcript" and the href is a document
//  2. the href is a document
//  3. anchor text mentions "transcript"
func FindTranscriptURL(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	var high, medium, low []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists {
			return
		}
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}

		docLike := isDocumentHref(href)
		mentions := strings.Contains(strings.ToLower(sel.Text()), "transcript")

		switch {
		case docLike && mentions:
			high = append(high, href)
		case docLike:
			medium = append(medium, href)
		case mentions:
			low = append(low, href)
		}
	})

	for _, bucket := range [][]string{high, medium, low} {
		if len(bucket) > 0 {
			return bucket[0], nil
		}
	}

	return "", errNoTranscriptLink
}

// isDocumentHref reports whether the href points at a transcript-like
// document.
func isDocumentHref(href string) bool {
	p := href
	if u, err := url.Parse(href); err == nil && u.Path != "" {
		p = u.Path
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".pdf", ".txt":
		return true
	}
	return false
}

// extractPDFText turns a PDF stream into plain text.
func extractPDFText(r io.Reader) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}

	data := buf.Bytes()
	if len(data) == 0 {
		return "", errors.New("pdf content is empty")
	}

	doc, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	textReader, err := doc.GetPlainText()
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	if _, err := io.Copy(&out, textReader); err != nil {
		return "", err
	}

	return out.String(), nil
}
