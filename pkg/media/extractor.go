package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrInvalidSource is returned when the remote audio cannot be probed at
	// all (bad URL, unreachable host, unreadable container).
	ErrInvalidSource = errors.New("invalid audio source")

	// ErrNoAudioTrack is returned when the source has no audio stream.
	ErrNoAudioTrack = errors.New("source has no audio track")

	// ErrExportFailed is returned when the clip window is empty or the
	// transcode step fails.
	ErrExportFailed = errors.New("audio export failed")
)

// Extractor cuts a time-bounded audio segment out of a remote asset using
// ffprobe/ffmpeg. The returned file is owned by the caller, who must delete
// it once transcription has consumed it or failed.
type Extractor struct {
	ffmpegPath  string
	ffprobePath string
	tmpDir      string
}

// NewExtractor creates an extractor that resolves ffmpeg/ffprobe from PATH
// and writes segments to the system temp directory.
func NewExtractor() *Extractor {
	return &Extractor{
		ffmpegPath:  "ffmpeg",
		ffprobePath: "ffprobe",
		tmpDir:      os.TempDir(),
	}
}

// ExtractSegment copies the audio within a symmetric window around
// centerSec out of the remote asset and encodes it to AAC in a freshly
// named temp file. The window is [max(0, center-dur/2), center+dur/2],
// clamped so it never extends past end-of-media; a window that collapses to
// zero length fails with ErrExportFailed rather than producing an empty
// file.
//
// Centering (not starting) on the reported position is deliberate: the
// now-playing snapshot reports the current play head, and the useful clip
// is what the listener was reacting to, so symmetric framing keeps a few
// seconds of lead-in along with the triggering moment.
func (e *Extractor) ExtractSegment(ctx context.Context, audioURL string, centerSec, durationSec float64) (string, error) {
	if strings.TrimSpace(audioURL) == "" {
		return "", fmt.Errorf("%w: empty URL", ErrInvalidSource)
	}

	total, hasAudio, err := e.probe(ctx, audioURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}
	if !hasAudio {
		return "", ErrNoAudioTrack
	}

	start, end := clipWindow(centerSec, durationSec, total)
	if end <= start {
		return "", fmt.Errorf("%w: window [%.1f, %.1f] is empty (asset duration %.1fs)", ErrExportFailed, start, end, total)
	}

	out := filepath.Join(e.tmpDir, "podclip-"+uuid.NewString()+".m4a")

	// ffmpeg -ss before -i seeks on the input, so only the window is read
	// from the remote asset
	cmd := exec.CommandContext(ctx, e.ffmpegPath,
		"-y",
		"-ss", formatSeconds(start),
		"-to", formatSeconds(end),
		"-i", audioURL,
		"-vn",
		"-acodec", "aac",
		"-b:a", "64k",
		out,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		_ = os.Remove(out)
		return "", fmt.Errorf("%w: ffmpeg: %v: %s", ErrExportFailed, err, truncate(stderr.String(), 300))
	}

	info, err := os.Stat(out)
	if err != nil || info.Size() == 0 {
		_ = os.Remove(out)
		return "", fmt.Errorf("%w: ffmpeg produced no output", ErrExportFailed)
	}

	log.Printf("Extractor: wrote %.1fs segment (%d bytes) to %s", end-start, info.Size(), out)
	return out, nil
}

// probe reads the asset's total duration and whether it carries an audio
// stream.
func (e *Extractor) probe(ctx context.Context, audioURL string) (float64, bool, error) {
	cmd := exec.CommandContext(ctx, e.ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration:stream=codec_type",
		"-of", "default=noprint_wrappers=1",
		audioURL,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, false, fmt.Errorf("ffprobe: %v", err)
	}

	total, hasAudio := parseProbeOutput(string(out))
	if total <= 0 {
		return 0, hasAudio, errors.New("ffprobe reported no duration")
	}
	return total, hasAudio, nil
}

// parseProbeOutput scans ffprobe key=value lines for the format duration and
// an audio codec_type.
func parseProbeOutput(out string) (float64, bool) {
	var (
		total    float64
		hasAudio bool
	)
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if v, ok := strings.CutPrefix(line, "duration="); ok {
			if d, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && d > total {
				total = d
			}
		}
		if v, ok := strings.CutPrefix(line, "codec_type="); ok {
			if strings.TrimSpace(v) == "audio" {
				hasAudio = true
			}
		}
	}
	return total, hasAudio
}

// clipWindow computes the symmetric window around center, clamped to
// [0, total]. The start is never negative and the end never extends past
// end-of-media.
func clipWindow(center, duration, total float64) (start, end float64) {
	start = center - duration/2
	if start < 0 {
		start = 0
	}
	end = center + duration/2
	if end > total {
		end = total
	}
	return start, end
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', 3, 64)
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n]
}
