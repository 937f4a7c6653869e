package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eduforge/api/internal/config"
)

func webhookRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/generation", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer shared-key")
	return req
}

func webhookHandlerSet(images *fakeImages, comics *fakeComics) HandlerSet {
	h := testHandlerSet()
	h.cfg = &config.AppConfig{
		Environment: "test",
		Upstream:    config.UpstreamConfig{APIKey: "shared-key"},
	}
	h.images = images
	h.comics = comics
	return h
}

func TestIngestGenerationImageAppliesDefaults(t *testing.T) {
	images := &fakeImages{}
	h := webhookHandlerSet(images, &fakeComics{})

	r := newRouter(http.MethodPost, "/api/v1/webhooks/generation", h.wrap(h.IngestGeneration))
	w := do(r, webhookRequest(`{
		"type": "image",
		"image": {
			"ownerSubject": "user_7",
			"topic": "volcanoes",
			"gradeLevel": "5",
			"imageUrl": "https://cdn.example.com/volcano.png"
		}
	}`))

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, images.created, 1)

	image := images.created[0]
	assert.NotEmpty(t, image.ID)
	assert.Equal(t, "English", image.Language)
	assert.Equal(t, "success", image.Status)
	assert.Equal(t, "false", image.Difficulty)
}

func TestIngestGenerationImageWithoutURLIs400(t *testing.T) {
	images := &fakeImages{}
	h := webhookHandlerSet(images, &fakeComics{})

	r := newRouter(http.MethodPost, "/api/v1/webhooks/generation", h.wrap(h.IngestGeneration))
	w := do(r, webhookRequest(`{"type":"image","image":{"ownerSubject":"user_7","topic":"volcanoes"}}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, images.created)
}

func TestIngestGenerationComicFlattensPanelURLs(t *testing.T) {
	comics := &fakeComics{}
	h := webhookHandlerSet(&fakeImages{}, comics)

	r := newRouter(http.MethodPost, "/api/v1/webhooks/generation", h.wrap(h.IngestGeneration))
	w := do(r, webhookRequest(`{
		"type": "comic",
		"comic": {
			"ownerSubject": "user_7",
			"instructions": "a day at the museum",
			"numPanels": 2,
			"panels": [
				{"index": 0, "prompt": "arrival", "imageUrl": "https://cdn.example.com/p0.png"},
				{"index": 1, "prompt": "dinosaur hall", "imageUrl": "https://cdn.example.com/p1.png"}
			]
		}
	}`))

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, comics.created, 1)

	comic := comics.created[0]
	assert.Equal(t, []string{"https://cdn.example.com/p0.png", "https://cdn.example.com/p1.png"}, comic.ImageURLs)
	assert.Equal(t, "English", comic.Language)
}

func TestIngestGenerationRejectsBadKey(t *testing.T) {
	h := webhookHandlerSet(&fakeImages{}, &fakeComics{})

	r := newRouter(http.MethodPost, "/api/v1/webhooks/generation", h.wrap(h.IngestGeneration))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/generation",
		bytes.NewBufferString(`{"type":"image"}`))
	req.Header.Set("Authorization", "Bearer wrong-key")
	w := do(r, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIngestGenerationUnknownTypeIs400(t *testing.T) {
	h := webhookHandlerSet(&fakeImages{}, &fakeComics{})

	r := newRouter(http.MethodPost, "/api/v1/webhooks/generation", h.wrap(h.IngestGeneration))
	w := do(r, webhookRequest(`{"type":"hologram"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
