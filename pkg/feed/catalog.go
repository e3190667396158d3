package feed

import (
	"bytes"
	"encoding/xml"
	"io"
	"net/url"
	"strings"

	"podclip/pkg/domain"
)

// audioExtensions are accepted as a fallback when an enclosure does not
// declare an audio media type.
var audioExtensions = []string{".mp3", ".m4a"}

// CatalogParser turns raw RSS bytes into an ordered list of catalog entries.
//
// It is a forward-only token parser, not a full document parse: per-item
// state is accumulated while inside an <item> element and an entry is
// emitted when the item closes. Malformed XML never aborts the whole
// document; parsing simply stops at the first unreadable token and keeps
// every entry emitted up to that point. Broken feeds degrade to fewer or
// emptier entries rather than errors.
type CatalogParser struct{}

// NewCatalogParser creates a new catalog parser
func NewCatalogParser() *CatalogParser {
	return &CatalogParser{}
}

// itemScratch holds per-item accumulation state. Fields are reset each time
// an <item> element opens.
type itemScratch struct {
	title    strings.Builder
	link     strings.Builder
	pubDate  strings.Builder
	duration strings.Builder
	audioURL string
}

func (s *itemScratch) entry() domain.CatalogEntry {
	return domain.CatalogEntry{
		Title:           strings.TrimSpace(s.title.String()),
		AudioURL:        s.audioURL,
		DurationText:    strings.TrimSpace(s.duration.String()),
		PageURL:         strings.TrimSpace(s.link.String()),
		PublishDateText: strings.TrimSpace(s.pubDate.String()),
	}
}

func (s *itemScratch) field(name string) *strings.Builder {
	switch name {
	case "title":
		return &s.title
	case "link":
		return &s.link
	case "pubdate":
		return &s.pubDate
	case "duration":
		// Matches itunes:duration and any other duration-like element
		return &s.duration
	default:
		return nil
	}
}

// Parse reads feed bytes and returns the entries of every well-formed item.
// Parsing identical bytes twice yields identical results.
func (p *CatalogParser) Parse(data []byte) []domain.CatalogEntry {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.Strict = false

	var (
		entries  []domain.CatalogEntry
		inItem   bool
		scratch  itemScratch
		curField string
	)

	for {
		token, err := decoder.Token()
		if err != nil {
			// io.EOF is the normal end; anything else is a malformed
			// document and we keep what was emitted so far
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			name := strings.ToLower(t.Name.Local)
			if name == "item" {
				inItem = true
				scratch = itemScratch{}
				curField = ""
				continue
			}
			if !inItem {
				continue
			}
			if name == "enclosure" {
				p.acceptEnclosure(&scratch, t)
				continue
			}
			if scratch.field(name) != nil {
				curField = name
			}

		case xml.CharData:
			if inItem && curField != "" {
				if buf := scratch.field(curField); buf != nil {
					buf.Write(t)
				}
			}

		case xml.EndElement:
			name := strings.ToLower(t.Name.Local)
			if name == "item" {
				if inItem {
					entries = append(entries, scratch.entry())
				}
				inItem = false
				curField = ""
				continue
			}
			if name == curField {
				curField = ""
			}
		}
	}

	return entries
}

// ParseReader is a convenience wrapper for callers holding a stream.
func (p *CatalogParser) ParseReader(r io.Reader) []domain.CatalogEntry {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil
	}
	return p.Parse(data)
}

// acceptEnclosure records the enclosure URL as the item's audio URL when the
// declared media type is audio, or, as a fallback, when the URL path ends in
// a known audio extension. The first acceptable enclosure wins.
func (p *CatalogParser) acceptEnclosure(scratch *itemScratch, el xml.StartElement) {
	if scratch.audioURL != "" {
		return
	}

	var encURL, encType string
	for _, attr := range el.Attr {
		switch strings.ToLower(attr.Name.Local) {
		case "url":
			encURL = strings.TrimSpace(attr.Value)
		case "type":
			encType = strings.TrimSpace(attr.Value)
		}
	}

	if encURL == "" {
		return
	}
	if strings.HasPrefix(strings.ToLower(encType), "audio") {
		scratch.audioURL = encURL
		return
	}
	if hasAudioExtension(encURL) {
		scratch.audioURL = encURL
	}
}

// hasAudioExtension checks the URL path (query string excluded) for a known
// audio file extension.
func hasAudioExtension(rawURL string) bool {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		p = u.Path
	}
	p = strings.ToLower(p)
	for _, ext := range audioExtensions {
		if strings.HasSuffix(p, ext) {
			return true
		}
	}
	return false
}
