package nowplaying

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"podclip/pkg/domain"
)

// ErrNoMedia is returned when no compatible media source is active or the
// probe hook is unavailable.
var ErrNoMedia = errors.New("no media currently playing")

// Probe reads the system's now-playing state. The OS-level hook this
// replaces is private and platform-specific, so it is modeled as a
// pluggable capability: a manual-entry implementation and a command-based
// one are provided here.
type Probe interface {
	Current(ctx context.Context) (*domain.NowPlayingSnapshot, error)
}

// Static is a manual-entry probe returning a fixed snapshot. A nil snapshot
// means nothing is playing.
type Static struct {
	Snapshot *domain.NowPlayingSnapshot
}

// Current returns the configured snapshot, or ErrNoMedia when unset.
func (s Static) Current(ctx context.Context) (*domain.NowPlayingSnapshot, error) {
	if s.Snapshot == nil || strings.TrimSpace(s.Snapshot.Title) == "" {
		return nil, ErrNoMedia
	}
	snap := *s.Snapshot
	return &snap, nil
}

// Command runs an external program expected to print a JSON now-playing
// snapshot ({"title", "artistName", "elapsedSeconds"}) on stdout. This is
// how a platform-specific hook (an AppleScript shim, playerctl, and so on)
// plugs into the pipeline.
type Command struct {
	Name string
	Args []string
}

// Current executes the probe command and decodes its output. Any execution
// failure or empty output is reported as ErrNoMedia: an unavailable hook is
// indistinguishable from nothing playing.
func (c Command) Current(ctx context.Context) (*domain.NowPlayingSnapshot, error) {
	if c.Name == "" {
		return nil, ErrNoMedia
	}

	out, err := exec.CommandContext(ctx, c.Name, c.Args...).Output()
	if err != nil {
		return nil, fmt.Errorf("%w: probe command: %v", ErrNoMedia, err)
	}

	return decodeSnapshot(out)
}

// decodeSnapshot parses a probe's JSON output into a snapshot, rejecting
// output without a title.
func decodeSnapshot(out []byte) (*domain.NowPlayingSnapshot, error) {
	out = bytes.TrimSpace(out)
	if len(out) == 0 {
		return nil, ErrNoMedia
	}

	var snap domain.NowPlayingSnapshot
	if err := json.Unmarshal(out, &snap); err != nil {
		return nil, fmt.Errorf("%w: decode probe output: %v", ErrNoMedia, err)
	}
	if strings.TrimSpace(snap.Title) == "" {
		return nil, ErrNoMedia
	}
	if snap.ElapsedSeconds < 0 {
		snap.ElapsedSeconds = 0
	}

	return &snap, nil
}
