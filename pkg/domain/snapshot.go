package domain

// NowPlayingSnapshot is a point-in-time read of externally playing media
// metadata. It is produced by a now-playing probe at the instant capture is
// requested and consumed exactly once.
type NowPlayingSnapshot struct {
	Title          string  `json:"title"`
	ArtistName     string  `json:"artistName"`
	ElapsedSeconds float64 `json:"elapsedSeconds"`
	Artwork        []byte  `json:"artwork,omitempty"`
}
