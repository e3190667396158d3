package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const (
	defaultEndpoint = "https://api.openai.com/v1/audio/transcriptions"

	// DefaultModel is the speech-to-text model used when none is given.
	DefaultModel = "whisper-1"
)

// OpenAIClient implements Transcriber against the OpenAI
// audio.transcriptions endpoint via a multipart upload.
type OpenAIClient struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewOpenAI creates an OpenAI transcription client. An empty model selects
// DefaultModel.
func NewOpenAI(apiKey, model string) *OpenAIClient {
	if model == "" {
		model = DefaultModel
	}
	return &OpenAIClient{
		apiKey:   apiKey,
		model:    model,
		endpoint: defaultEndpoint,
		// Transcoding a one-minute clip is quick but upload links can be
		// slow; allow well beyond the pipeline's other stages
		client: &http.Client{Timeout: 5 * time.Minute},
	}
}

// NewOpenAIWithEndpoint creates a client against a custom endpoint. Used by
// tests.
func NewOpenAIWithEndpoint(apiKey, model, endpoint string) *OpenAIClient {
	c := NewOpenAI(apiKey, model)
	c.endpoint = endpoint
	return c
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe uploads the audio file and returns the recognized text.
func (c *OpenAIClient) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	f, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if err := mw.WriteField("model", c.model); err != nil {
		return "", fmt.Errorf("build upload: %w", err)
	}
	fw, err := mw.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", fmt.Errorf("build upload: %w", err)
	}
	if _, err := io.Copy(fw, f); err != nil {
		return "", fmt.Errorf("build upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("transcription http %d: %s", resp.StatusCode, string(b))
	}

	var parsed transcriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode transcription response: %w", err)
	}

	return parsed.Text, nil
}
