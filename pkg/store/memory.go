package store

import (
	"context"
	"sync"

	"podclip/pkg/domain"
)

// Memory is an in-process store. It is the default backend for the CLI and
// the backend used by tests.
type Memory struct {
	mu    sync.Mutex
	clips map[string]domain.PodcastClip
	notes map[string]domain.Note
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		clips: make(map[string]domain.PodcastClip),
		notes: make(map[string]domain.Note),
	}
}

// CreateClip stores a copy of the clip.
func (m *Memory) CreateClip(ctx context.Context, clip *domain.PodcastClip) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clips[clip.ID] = *clip
	return nil
}

// SaveClip overwrites the stored clip.
func (m *Memory) SaveClip(ctx context.Context, clip *domain.PodcastClip) error {
	return m.CreateClip(ctx, clip)
}

// CreateNote stores a copy of the note.
func (m *Memory) CreateNote(ctx context.Context, note *domain.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notes[note.ID] = *note
	return nil
}

// Clips returns a snapshot of all stored clips.
func (m *Memory) Clips() []domain.PodcastClip {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.PodcastClip, 0, len(m.clips))
	for _, c := range m.clips {
		out = append(out, c)
	}
	return out
}

// Notes returns a snapshot of all stored notes.
func (m *Memory) Notes() []domain.Note {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Note, 0, len(m.notes))
	for _, n := range m.notes {
		out = append(out, n)
	}
	return out
}
