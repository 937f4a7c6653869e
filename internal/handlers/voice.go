package handlers

import (
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"eduforge/api/internal/httperr"
	"eduforge/api/internal/upstream"
)

type voiceChatRequest struct {
	Text             string `json:"text"`
	WebSearchEnabled bool   `json:"webSearchEnabled"`
}

// POST /api/v1/voice/chat
func (h HandlerSet) VoiceChat(c *gin.Context) error {
	var req voiceChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return httperr.BadRequest("voice_chat", "invalid request body")
	}
	if req.Text == "" {
		return httperr.BadRequest("voice_chat", "missing text")
	}

	resp, err := h.upstream.StartVoiceChat(c.Request.Context(), upstream.VoiceChatRequest{
		Text:             req.Text,
		WebSearchEnabled: req.WebSearchEnabled,
	})
	if err != nil {
		return httperr.Upstream("voice_chat", err)
	}

	if resp.StatusCode != http.StatusOK || resp.Body == nil {
		if resp.Body != nil {
			resp.Body.Close()
		}
		return httperr.Upstream("voice_chat", fmt.Errorf("upstream returned %s", resp.Status))
	}

	relayEventStream(c, resp, true)
	return nil
}

type speechRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
}

// POST /api/v1/voice/speech
//
// Decodes the upstream's hex audio and returns raw bytes with an exact
// Content-Length.
func (h HandlerSet) Speech(c *gin.Context) error {
	var req speechRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return httperr.BadRequest("voice_speech", "invalid request body")
	}
	if req.Text == "" {
		return httperr.BadRequest("voice_speech", "missing text")
	}

	result, err := h.upstream.GenerateSpeech(c.Request.Context(), req.Text, req.Voice)
	if err != nil {
		return httperr.Upstream("voice_speech", err)
	}
	if !result.Success || result.AudioHex == "" {
		return httperr.Upstream("voice_speech", fmt.Errorf("upstream reported failure: %s", result.Error))
	}

	audio, err := hex.DecodeString(result.AudioHex)
	if err != nil {
		return httperr.Internal("voice_speech", fmt.Errorf("decode audio: %w", err))
	}

	c.Header("Content-Length", strconv.Itoa(len(audio)))
	c.Data(http.StatusOK, "audio/mpeg", audio)
	return nil
}

// POST /api/v1/voice/transcribe
func (h HandlerSet) Transcribe(c *gin.Context) error {
	file, header, err := c.Request.FormFile("audio_file")
	if err != nil {
		return httperr.BadRequest("voice_transcribe", "missing audio file")
	}
	defer file.Close()

	transcription, err := h.upstream.Transcribe(c.Request.Context(), header.Filename, file)
	if err != nil {
		return httperr.Upstream("voice_transcribe", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"transcription": transcription,
	})
	return nil
}
