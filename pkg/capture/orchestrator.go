package capture

import (
	"context"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"podclip/pkg/domain"
	"podclip/pkg/notes"
	"podclip/pkg/nowplaying"
	"podclip/pkg/shownotes"
	"podclip/pkg/store"
)

// noMediaMessage is the only abort-class error: without a snapshot there is
// nothing to record.
const noMediaMessage = "No media currently playing"

// EpisodeResolver verifies a (podcast name, episode title) pair against the
// podcast directory and feed.
type EpisodeResolver interface {
	Resolve(ctx context.Context, podcastName, episodeTitle string) (domain.ResolvedEpisode, error)
}

// SegmentExtractor produces a local, time-bounded copy of remote audio. The
// orchestrator owns the returned file and deletes it once transcription has
// consumed it or failed.
type SegmentExtractor interface {
	ExtractSegment(ctx context.Context, audioURL string, centerSec, durationSec float64) (string, error)
}

// Transcriber converts a local audio file to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// ShowNotesFetcher extracts show notes and any published transcript from an
// episode page.
type ShowNotesFetcher interface {
	Fetch(ctx context.Context, pageURL string) (shownotes.PageNotes, error)
}

// Orchestrator runs the capture pipeline: snapshot, clip record, episode
// resolution, segment extraction, transcription, note materialization.
//
// Capture requests are single-flight: at most one capture runs at a time and
// a request arriving while one is in flight is ignored, not queued. That
// keeps rapid repeated triggers from producing duplicate clips. Stages run
// in strict sequence because each one's input is the previous one's output;
// every stage failure past the snapshot is non-fatal and recorded in the
// last-error slot without stopping the run.
type Orchestrator struct {
	probe       nowplaying.Probe
	resolver    EpisodeResolver
	extractor   SegmentExtractor
	transcriber Transcriber
	shownotes   ShowNotesFetcher
	store       store.Store

	mu        sync.Mutex
	capturing bool
	lastErr   string
}

// New creates an orchestrator. The show-notes fetcher is optional and set
// separately.
func New(probe nowplaying.Probe, resolver EpisodeResolver, extractor SegmentExtractor, transcriber Transcriber, st store.Store) *Orchestrator {
	return &Orchestrator{
		probe:       probe,
		resolver:    resolver,
		extractor:   extractor,
		transcriber: transcriber,
		store:       st,
	}
}

// SetShowNotesFetcher enables episode-page enrichment.
func (o *Orchestrator) SetShowNotesFetcher(f ShowNotesFetcher) {
	o.shownotes = f
}

// IsCapturing reports whether a capture is in flight.
func (o *Orchestrator) IsCapturing() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.capturing
}

// LastError returns the most recent stage failure message, or empty. Only
// the last failure observed is kept.
func (o *Orchestrator) LastError() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastErr
}

// Capture runs one capture for a clip of the requested duration (seconds; a
// non-positive value selects the default). It never returns an error: every
// failure is recorded in the last-error slot, and a request while another
// capture is in flight is a no-op.
func (o *Orchestrator) Capture(ctx context.Context, requestedDurationSeconds float64) {
	if !o.begin() {
		log.Printf("Capture: already in flight, ignoring request")
		return
	}
	defer o.end()

	snapshot, err := o.probe.Current(ctx)
	if err != nil || snapshot == nil {
		o.setLastError(noMediaMessage)
		return
	}

	duration := requestedDurationSeconds
	if duration <= 0 {
		duration = domain.DefaultClipDurationSeconds
	}

	clip := &domain.PodcastClip{
		ID:                      uuid.NewString(),
		CapturedAt:              time.Now(),
		EpisodeTitle:            snapshot.Title,
		PodcastName:             snapshot.ArtistName,
		PlaybackPositionSeconds: snapshot.ElapsedSeconds,
		ClipDurationSeconds:     duration,
		ProcessingStatus:        domain.StatusPending,
	}

	// Persist immediately: the capture intent must survive even if every
	// later stage fails
	if err := o.store.CreateClip(ctx, clip); err != nil {
		log.Printf("Capture: failed to persist pending clip: %v", err)
		o.setLastError(err.Error())
	}

	o.resolve(ctx, clip)
	o.extractAndTranscribe(ctx, clip)
	excerpt := o.enrich(ctx, clip)
	o.materializeNote(ctx, clip, excerpt)
}

// resolve runs the episode resolution stage and applies its outcome to the
// clip's terminal status. A clip that failed to resolve is still a valid
// artifact: it keeps the raw now-playing title and position.
func (o *Orchestrator) resolve(ctx context.Context, clip *domain.PodcastClip) {
	resolved, err := o.resolver.Resolve(ctx, clip.PodcastName, clip.EpisodeTitle)
	if err != nil {
		log.Printf("Capture: resolution failed: %v", err)
		o.setLastError(err.Error())
		clip.MarkFailed()
	} else {
		clip.FeedURL = resolved.FeedURL
		clip.EpisodeAudioURL = resolved.AudioURL
		clip.SourceURL = resolved.PageURL
		clip.ChannelTitle = resolved.ChannelTitle
		clip.ChannelLink = resolved.ChannelLink
		clip.MarkResolved()
	}

	if err := o.store.SaveClip(ctx, clip); err != nil {
		log.Printf("Capture: failed to save clip after resolution: %v", err)
		o.setLastError(err.Error())
	}
}

// extractAndTranscribe cuts the audio segment and transcribes it. Extraction
// is skipped entirely when no audio URL was resolved; each failure is
// recorded and the run continues with the transcript unset.
func (o *Orchestrator) extractAndTranscribe(ctx context.Context, clip *domain.PodcastClip) {
	if clip.EpisodeAudioURL == "" {
		return
	}

	segment, err := o.extractor.ExtractSegment(ctx, clip.EpisodeAudioURL, clip.PlaybackPositionSeconds, clip.ClipDurationSeconds)
	if err != nil {
		log.Printf("Capture: extraction failed: %v", err)
		o.setLastError(err.Error())
		return
	}
	// The segment is a scoped resource: delete it once transcription has
	// consumed it or failed
	defer func() {
		if err := os.Remove(segment); err != nil {
			log.Printf("Capture: failed to remove segment %s: %v", segment, err)
		}
	}()

	if o.transcriber == nil {
		return
	}

	text, err := o.transcriber.Transcribe(ctx, segment)
	if err != nil {
		log.Printf("Capture: transcription failed: %v", err)
		o.setLastError(err.Error())
		return
	}
	clip.Transcript = strings.TrimSpace(text)
}

// enrich fetches show notes from the episode page when one is known. A
// published transcript found there backfills the clip transcript if audio
// transcription produced nothing.
func (o *Orchestrator) enrich(ctx context.Context, clip *domain.PodcastClip) string {
	if o.shownotes == nil || clip.SourceURL == "" {
		return ""
	}

	page, err := o.shownotes.Fetch(ctx, clip.SourceURL)
	if err != nil {
		log.Printf("Capture: show-notes fetch failed: %v", err)
		return ""
	}

	if clip.Transcript == "" && page.Transcript != "" {
		clip.Transcript = page.Transcript
	}
	return page.Excerpt
}

// materializeNote unconditionally produces a note from whatever the
// pipeline managed to assemble and links it back to the clip.
func (o *Orchestrator) materializeNote(ctx context.Context, clip *domain.PodcastClip, excerpt string) {
	title, body := notes.Render(clip, excerpt)

	note := &domain.Note{
		ID:        uuid.NewString(),
		Title:     title,
		Body:      body,
		Source:    domain.NoteSourcePodcast,
		ClipID:    clip.ID,
		CreatedAt: time.Now(),
	}

	if err := o.store.CreateNote(ctx, note); err != nil {
		log.Printf("Capture: failed to persist note: %v", err)
		o.setLastError(err.Error())
	} else {
		clip.NoteID = note.ID
	}

	if err := o.store.SaveClip(ctx, clip); err != nil {
		log.Printf("Capture: failed to save clip after note: %v", err)
		o.setLastError(err.Error())
	}
}

// begin claims the single capture slot. It returns false when a capture is
// already in flight. A fresh capture clears the previous last error.
func (o *Orchestrator) begin() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.capturing {
		return false
	}
	o.capturing = true
	o.lastErr = ""
	return true
}

func (o *Orchestrator) end() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.capturing = false
}

func (o *Orchestrator) setLastError(msg string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lastErr = msg
}
