package store

import (
	"context"

	"podclip/pkg/domain"
)

// Store persists clips and the notes materialized from them. The capture
// pipeline treats clip and note records as opaque beyond the domain fields.
type Store interface {
	// CreateClip persists a freshly created clip record.
	CreateClip(ctx context.Context, clip *domain.PodcastClip) error

	// SaveClip persists updates to an existing clip record.
	SaveClip(ctx context.Context, clip *domain.PodcastClip) error

	// CreateNote persists a materialized note.
	CreateNote(ctx context.Context, note *domain.Note) error
}
