package domain

import "time"

// NoteSourcePodcast marks notes materialized by the podcast capture pipeline.
const NoteSourcePodcast = "podcast"

// Note is the knowledge-base note materialized at the end of a capture run.
// Richness degrades with pipeline progress: verified link plus transcript,
// verified link only, or just the raw now-playing title and position.
type Note struct {
	ID        string    `bson:"_id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Body      string    `bson:"body" json:"body"`
	Source    string    `bson:"source" json:"source"`
	ClipID    string    `bson:"clip_id,omitempty" json:"clip_id,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
