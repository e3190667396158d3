package transcribe

import (
	"context"
	"errors"
)

// Transcriber converts a local audio file to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// ErrMissingAPIKey is returned when a backend is invoked without
// credentials.
var ErrMissingAPIKey = errors.New("transcription API key is not configured")
