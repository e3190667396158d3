package domain

import "time"

// ProcessingStatus tracks how far the capture pipeline got for a clip.
type ProcessingStatus string

const (
	StatusPending  ProcessingStatus = "pending"
	StatusResolved ProcessingStatus = "resolved"
	StatusFailed   ProcessingStatus = "failed"
)

// DefaultClipDurationSeconds is the clip length used when the caller does not
// request one.
const DefaultClipDurationSeconds = 60

// PodcastClip is the durable record of one capture attempt. It is created in
// pending state as soon as a now-playing snapshot is obtained, so the capture
// intent survives even if every later pipeline stage fails.
type PodcastClip struct {
	ID                      string           `bson:"_id" json:"id"`
	CapturedAt              time.Time        `bson:"captured_at" json:"captured_at"`
	EpisodeTitle            string           `bson:"episode_title" json:"episode_title"`
	PodcastName             string           `bson:"podcast_name" json:"podcast_name"`
	PlaybackPositionSeconds float64          `bson:"playback_position_seconds" json:"playback_position_seconds"`
	ClipDurationSeconds     float64          `bson:"clip_duration_seconds" json:"clip_duration_seconds"`
	FeedURL                 string           `bson:"feed_url,omitempty" json:"feed_url,omitempty"`
	EpisodeAudioURL         string           `bson:"episode_audio_url,omitempty" json:"episode_audio_url,omitempty"`
	SourceURL               string           `bson:"source_url,omitempty" json:"source_url,omitempty"`
	ChannelTitle            string           `bson:"channel_title,omitempty" json:"channel_title,omitempty"`
	ChannelLink             string           `bson:"channel_link,omitempty" json:"channel_link,omitempty"`
	Transcript              string           `bson:"transcript,omitempty" json:"transcript,omitempty"`
	UserNotes               string           `bson:"user_notes,omitempty" json:"user_notes,omitempty"`
	ProcessingStatus        ProcessingStatus `bson:"processing_status" json:"processing_status"`
	NoteID                  string           `bson:"note_id,omitempty" json:"note_id,omitempty"`
}

// MarkResolved moves the clip from pending to resolved. The transition is
// one-way: a clip that already reached a terminal status keeps it.
func (c *PodcastClip) MarkResolved() {
	if c.ProcessingStatus == StatusPending {
		c.ProcessingStatus = StatusResolved
	}
}

// MarkFailed moves the clip from pending to failed. Later partial failures
// (extraction, transcription) must not overwrite a resolved status, so the
// transition only applies while the clip is still pending.
func (c *PodcastClip) MarkFailed() {
	if c.ProcessingStatus == StatusPending {
		c.ProcessingStatus = StatusFailed
	}
}
