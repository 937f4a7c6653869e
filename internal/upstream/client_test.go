package upstream

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eduforge/api/internal/config"
)

func testClient(baseURL string) *Client {
	return NewClient(config.UpstreamConfig{BaseURL: baseURL, APIKey: "test-key"})
}

func TestStartComicStreamPostsPayloadAndReturnsBody(t *testing.T) {
	var got ComicStreamRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/comics/stream", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = io.WriteString(w, "data: {\"panel\":0}\n\n")
	}))
	defer srv.Close()

	resp, err := testClient(srv.URL).StartComicStream(context.Background(), ComicStreamRequest{
		Instructions: "underwater world",
		GradeLevel:   "3",
		NumPanels:    4,
	})
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "underwater world", got.Instructions)
	assert.Equal(t, 4, got.NumPanels)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "data: {\"panel\":0}\n\n", string(body))
}

func TestStartStreamReturnsNonOKResponseWithoutError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, "generation backlog full")
	}))
	defer srv.Close()

	resp, err := testClient(srv.URL).StartVoiceChat(context.Background(), VoiceChatRequest{Text: "hi"})
	require.NoError(t, err, "a failed establish is reported via the response, not an error")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "generation backlog full", string(body))
}

func TestGenerateSpeechDecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/voice/speech", r.URL.Path)

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "read this aloud", payload["text"])
		assert.Equal(t, "nova", payload["voice"])

		_ = json.NewEncoder(w).Encode(SpeechResult{Success: true, AudioHex: "fffb9000"})
	}))
	defer srv.Close()

	result, err := testClient(srv.URL).GenerateSpeech(context.Background(), "read this aloud", "nova")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "fffb9000", result.AudioHex)
}

func TestGenerateSpeechNonOKIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).GenerateSpeech(context.Background(), "hi", "")
	assert.Error(t, err)
}

func TestTranscribeSendsMultipartField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/voice/transcribe", r.URL.Path)

		file, header, err := r.FormFile("audio_file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "answer.webm", header.Filename)

		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "audio-bytes", string(data))

		_ = json.NewEncoder(w).Encode(TranscriptionResult{Success: true, Transcription: "hello"})
	}))
	defer srv.Close()

	text, err := testClient(srv.URL).Transcribe(context.Background(), "answer.webm", strings.NewReader("audio-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

func TestTranscribeUpstreamFailureIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(TranscriptionResult{Success: false, Error: "unintelligible audio"})
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Transcribe(context.Background(), "x.webm", strings.NewReader("zzz"))
	assert.Error(t, err)
}
