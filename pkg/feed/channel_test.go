package feed

import "testing"

func TestParseChannelMeta(t *testing.T) {
	data := []byte(`<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Tech Weekly</title>
    <link>https://techweekly.example.com</link>
    <item><title>Ep</title></item>
  </channel>
</rss>`)

	meta := ParseChannelMeta(data)

	if meta.Title != "Tech Weekly" {
		t.Errorf("Expected channel title 'Tech Weekly', got %q", meta.Title)
	}
	if meta.Link != "https://techweekly.example.com" {
		t.Errorf("Expected channel link, got %q", meta.Link)
	}
}

func TestParseChannelMeta_MalformedIsEmpty(t *testing.T) {
	meta := ParseChannelMeta([]byte("not a feed at all"))

	if meta.Title != "" || meta.Link != "" {
		t.Errorf("Expected empty metadata for malformed feed, got %+v", meta)
	}
}
