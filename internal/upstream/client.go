// Package upstream wraps the external generation/voice service. Stream
// starts hand back the raw response so callers can relay the body; nothing
// here retries.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"eduforge/api/internal/config"
)

type ComicStreamRequest struct {
	Instructions string `json:"instructions"`
	GradeLevel   string `json:"gradeLevel"`
	NumPanels    int    `json:"numPanels"`
}

type VoiceChatRequest struct {
	Text             string `json:"text"`
	WebSearchEnabled bool   `json:"webSearchEnabled"`
}

type SpeechResult struct {
	Success  bool   `json:"success"`
	AudioHex string `json:"audio"`
	Error    string `json:"error,omitempty"`
}

type TranscriptionResult struct {
	Success       bool   `json:"success"`
	Transcription string `json:"transcription"`
	Error         string `json:"error,omitempty"`
}

type Client struct {
	baseURL string
	apiKey  string
	// requestClient bounds plain calls; streamClient has no overall timeout
	// because it carries open event streams.
	requestClient *http.Client
	streamClient  *http.Client
}

func NewClient(cfg config.UpstreamConfig) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:        cfg.APIKey,
		requestClient: &http.Client{Timeout: timeout},
		streamClient:  &http.Client{},
	}
}

// StartComicStream opens the comic generation event stream. The caller owns
// the response body, whatever the status code.
func (c *Client) StartComicStream(ctx context.Context, req ComicStreamRequest) (*http.Response, error) {
	return c.startStream(ctx, "/comics/stream", req)
}

// StartVoiceChat opens the voice chat event stream.
func (c *Client) StartVoiceChat(ctx context.Context, req VoiceChatRequest) (*http.Response, error) {
	return c.startStream(ctx, "/voice/chat", req)
}

func (c *Client) startStream(ctx context.Context, path string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode stream request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	c.authorize(req)

	resp, err := c.streamClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("start stream %s: %w", path, err)
	}
	return resp, nil
}

// GenerateSpeech synthesizes text. Audio comes back hex-encoded in JSON;
// decoding is the caller's concern.
func (c *Client) GenerateSpeech(ctx context.Context, text, voice string) (SpeechResult, error) {
	payload := map[string]string{"text": text}
	if voice != "" {
		payload["voice"] = voice
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return SpeechResult{}, fmt.Errorf("encode speech request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/voice/speech", bytes.NewReader(body))
	if err != nil {
		return SpeechResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.requestClient.Do(req)
	if err != nil {
		return SpeechResult{}, fmt.Errorf("generate speech: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return SpeechResult{}, fmt.Errorf("generate speech: upstream returned %s", resp.Status)
	}

	var result SpeechResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return SpeechResult{}, fmt.Errorf("decode speech response: %w", err)
	}
	return result, nil
}

// Transcribe sends an audio file as multipart and returns the text.
func (c *Client) Transcribe(ctx context.Context, filename string, file io.Reader) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("audio_file", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("copy audio: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/voice/transcribe", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.authorize(req)

	resp, err := c.requestClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcribe: upstream returned %s", resp.Status)
	}

	var result TranscriptionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode transcription: %w", err)
	}
	if !result.Success {
		return "", fmt.Errorf("transcribe: upstream reported failure: %s", result.Error)
	}
	return result.Transcription, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}
