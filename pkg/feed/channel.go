package feed

import (
	"bytes"

	"github.com/mmcdole/gofeed"
)

// ChannelMeta is feed-level (channel) metadata used to enrich resolved
// episodes. All fields are optional.
type ChannelMeta struct {
	Title string
	Link  string
}

// ParseChannelMeta extracts channel metadata using gofeed. This is strictly
// best-effort: gofeed performs a whole-document parse and fails on feeds the
// tolerant catalog parser still handles, so any error yields empty metadata
// rather than an error.
func ParseChannelMeta(data []byte) ChannelMeta {
	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil || parsed == nil {
		return ChannelMeta{}
	}
	return ChannelMeta{
		Title: parsed.Title,
		Link:  parsed.Link,
	}
}
