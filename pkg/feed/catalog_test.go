package feed

import (
	"reflect"
	"testing"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd">
  <channel>
    <title>Tech Weekly</title>
    <link>https://techweekly.example.com</link>
    <item>
      <title>  Episode 42: Scaling  </title>
      <link>https://techweekly.example.com/42</link>
      <pubDate>Mon, 06 Jan 2025 10:00:00 +0000</pubDate>
      <itunes:duration>1:02:30</itunes:duration>
      <enclosure url="https://cdn.example.com/42.mp3" type="audio/mpeg" length="1000"/>
    </item>
    <item>
      <title>Episode 41: Caching</title>
      <link>https://techweekly.example.com/41</link>
      <enclosure url="https://cdn.example.com/41.m4a" type="application/octet-stream"/>
    </item>
  </channel>
</rss>`

func TestCatalogParser_Parse_WellFormedFeed(t *testing.T) {
	parser := NewCatalogParser()

	entries := parser.Parse([]byte(sampleFeed))

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}

	first := entries[0]
	if first.Title != "Episode 42: Scaling" {
		t.Errorf("Expected trimmed title 'Episode 42: Scaling', got %q", first.Title)
	}
	if first.AudioURL != "https://cdn.example.com/42.mp3" {
		t.Errorf("Expected audio URL from enclosure, got %q", first.AudioURL)
	}
	if first.PageURL != "https://techweekly.example.com/42" {
		t.Errorf("Expected page URL, got %q", first.PageURL)
	}
	if first.DurationText != "1:02:30" {
		t.Errorf("Expected duration '1:02:30', got %q", first.DurationText)
	}
	if first.PublishDateText != "Mon, 06 Jan 2025 10:00:00 +0000" {
		t.Errorf("Expected publish date, got %q", first.PublishDateText)
	}
}

func TestCatalogParser_Parse_EnclosureExtensionFallback(t *testing.T) {
	parser := NewCatalogParser()

	entries := parser.Parse([]byte(sampleFeed))

	// Second item declares a non-audio media type but the URL path ends in
	// .m4a, so the fallback accepts it
	if entries[1].AudioURL != "https://cdn.example.com/41.m4a" {
		t.Errorf("Expected extension fallback to accept .m4a URL, got %q", entries[1].AudioURL)
	}
}

func TestCatalogParser_Parse_RejectsNonAudioEnclosure(t *testing.T) {
	feed := `<rss><channel><item>
		<title>Video Episode</title>
		<enclosure url="https://cdn.example.com/ep.mp4" type="video/mp4"/>
	</item></channel></rss>`

	entries := NewCatalogParser().Parse([]byte(feed))

	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].AudioURL != "" {
		t.Errorf("Expected no audio URL for video enclosure, got %q", entries[0].AudioURL)
	}
}

func TestCatalogParser_Parse_MalformedFeedDoesNotAbort(t *testing.T) {
	// The document is cut off in the middle of the second item: the first
	// item must still be emitted and Parse must not panic or error
	truncated := `<rss><channel>
		<item><title>Complete Item</title></item>
		<item><title>Broken` // no closing tags at all

	entries := NewCatalogParser().Parse([]byte(truncated))

	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry from truncated feed, got %d", len(entries))
	}
	if entries[0].Title != "Complete Item" {
		t.Errorf("Expected 'Complete Item', got %q", entries[0].Title)
	}
}

func TestCatalogParser_Parse_GarbageInput(t *testing.T) {
	for _, input := range []string{"", "not xml at all", "<<<>>>", "{\"json\": true}"} {
		entries := NewCatalogParser().Parse([]byte(input))
		if len(entries) != 0 {
			t.Errorf("Expected 0 entries for input %q, got %d", input, len(entries))
		}
	}
}

func TestCatalogParser_Parse_Idempotent(t *testing.T) {
	parser := NewCatalogParser()

	first := parser.Parse([]byte(sampleFeed))
	second := parser.Parse([]byte(sampleFeed))

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical results from identical bytes, got %v then %v", first, second)
	}
}

func TestCatalogParser_Parse_UnknownElementsIgnored(t *testing.T) {
	feed := `<rss><channel><item>
		<title>Ep 1</title>
		<description>long description text</description>
		<someextension:weird>ignored</someextension:weird>
		<link>https://example.com/1</link>
	</item></channel></rss>`

	entries := NewCatalogParser().Parse([]byte(feed))

	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Title != "Ep 1" {
		t.Errorf("Expected 'Ep 1', got %q", entries[0].Title)
	}
	if entries[0].PageURL != "https://example.com/1" {
		t.Errorf("Expected link to survive unknown siblings, got %q", entries[0].PageURL)
	}
}

func TestCatalogParser_Parse_ChannelTitleNotAnEntry(t *testing.T) {
	// Title outside any item must not leak into entries
	feed := `<rss><channel><title>Show Title</title><item><title>Ep</title></item></channel></rss>`

	entries := NewCatalogParser().Parse([]byte(feed))

	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Title != "Ep" {
		t.Errorf("Expected item title 'Ep', got %q", entries[0].Title)
	}
}

func TestHasAudioExtension(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://cdn.example.com/ep.mp3", true},
		{"https://cdn.example.com/ep.M4A", true},
		{"https://cdn.example.com/ep.mp3?token=abc", true},
		{"https://cdn.example.com/ep.mp4", false},
		{"https://cdn.example.com/ep", false},
	}

	for _, tt := range tests {
		if got := hasAudioExtension(tt.url); got != tt.want {
			t.Errorf("hasAudioExtension(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}
