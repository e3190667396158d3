package domain

// CatalogEntry is one feed item as emitted by the catalog parser. Optional
// fields are left empty when the feed does not carry them.
type CatalogEntry struct {
	Title           string
	AudioURL        string
	DurationText    string
	PageURL         string
	PublishDateText string
}

// ResolvedEpisode is the resolver's verified view of a now-playing snapshot:
// the feed that was actually used plus whatever the matched item carried.
// Channel fields are best-effort feed-level metadata.
type ResolvedEpisode struct {
	FeedURL      string
	AudioURL     string
	PageURL      string
	ChannelTitle string
	ChannelLink  string
}
