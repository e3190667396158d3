package store

import (
	"context"
	"database/sql"
	"fmt"

	"podclip/pkg/domain"
)

// DBProvider is an interface for database clients that provide access to a
// sql.DB handle. This allows both PostgresClient and SupabaseClient to be
// used interchangeably.
type DBProvider interface {
	DB() *sql.DB
}

// SQL persists clips and notes in two Postgres tables via any DBProvider.
//
// Expected schema:
//
//	CREATE TABLE podcast_clips (
//	    id TEXT PRIMARY KEY,
//	    captured_at TIMESTAMPTZ NOT NULL,
//	    episode_title TEXT NOT NULL DEFAULT '',
//	    podcast_name TEXT NOT NULL DEFAULT '',
//	    playback_position_seconds DOUBLE PRECISION NOT NULL DEFAULT 0,
//	    clip_duration_seconds DOUBLE PRECISION NOT NULL DEFAULT 60,
//	    feed_url TEXT NOT NULL DEFAULT '',
//	    episode_audio_url TEXT NOT NULL DEFAULT '',
//	    source_url TEXT NOT NULL DEFAULT '',
//	    channel_title TEXT NOT NULL DEFAULT '',
//	    channel_link TEXT NOT NULL DEFAULT '',
//	    transcript TEXT NOT NULL DEFAULT '',
//	    user_notes TEXT NOT NULL DEFAULT '',
//	    processing_status TEXT NOT NULL DEFAULT 'pending',
//	    note_id TEXT NOT NULL DEFAULT ''
//	);
//
//	CREATE TABLE notes (
//	    id TEXT PRIMARY KEY,
//	    title TEXT NOT NULL DEFAULT '',
//	    body TEXT NOT NULL DEFAULT '',
//	    source TEXT NOT NULL DEFAULT '',
//	    clip_id TEXT NOT NULL DEFAULT '',
//	    created_at TIMESTAMPTZ NOT NULL
//	);
type SQL struct {
	provider DBProvider
}

// NewSQL creates a SQL store over the given provider.
func NewSQL(provider DBProvider) *SQL {
	return &SQL{provider: provider}
}

// CreateClip upserts the clip by id.
func (s *SQL) CreateClip(ctx context.Context, clip *domain.PodcastClip) error {
	return s.SaveClip(ctx, clip)
}

// SaveClip upserts the clip by id.
func (s *SQL) SaveClip(ctx context.Context, clip *domain.PodcastClip) error {
	db := s.provider.DB()
	if db == nil {
		return fmt.Errorf("sql store: no database handle")
	}

	const q = `
		INSERT INTO podcast_clips (
			id, captured_at, episode_title, podcast_name,
			playback_position_seconds, clip_duration_seconds,
			feed_url, episode_audio_url, source_url,
			channel_title, channel_link,
			transcript, user_notes, processing_status, note_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO UPDATE SET
			episode_title = EXCLUDED.episode_title,
			podcast_name = EXCLUDED.podcast_name,
			playback_position_seconds = EXCLUDED.playback_position_seconds,
			clip_duration_seconds = EXCLUDED.clip_duration_seconds,
			feed_url = EXCLUDED.feed_url,
			episode_audio_url = EXCLUDED.episode_audio_url,
			source_url = EXCLUDED.source_url,
			channel_title = EXCLUDED.channel_title,
			channel_link = EXCLUDED.channel_link,
			transcript = EXCLUDED.transcript,
			user_notes = EXCLUDED.user_notes,
			processing_status = EXCLUDED.processing_status,
			note_id = EXCLUDED.note_id`

	_, err := db.ExecContext(ctx, q,
		clip.ID, clip.CapturedAt, clip.EpisodeTitle, clip.PodcastName,
		clip.PlaybackPositionSeconds, clip.ClipDurationSeconds,
		clip.FeedURL, clip.EpisodeAudioURL, clip.SourceURL,
		clip.ChannelTitle, clip.ChannelLink,
		clip.Transcript, clip.UserNotes, string(clip.ProcessingStatus), clip.NoteID,
	)
	if err != nil {
		return fmt.Errorf("save clip: %w", err)
	}
	return nil
}

// CreateNote inserts the note.
func (s *SQL) CreateNote(ctx context.Context, note *domain.Note) error {
	db := s.provider.DB()
	if db == nil {
		return fmt.Errorf("sql store: no database handle")
	}

	const q = `
		INSERT INTO notes (id, title, body, source, clip_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			body = EXCLUDED.body,
			source = EXCLUDED.source,
			clip_id = EXCLUDED.clip_id`

	_, err := db.ExecContext(ctx, q,
		note.ID, note.Title, note.Body, note.Source, note.ClipID, note.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save note: %w", err)
	}
	return nil
}
