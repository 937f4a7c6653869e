package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eduforge/api/internal/models"
)

type stubImages struct {
	images []models.Image
}

func (s stubImages) ListByOwner(context.Context, string, int, int) ([]models.Image, error) {
	return s.images, nil
}

type stubComics struct {
	comics []models.Comic
}

func (s stubComics) ListByOwner(context.Context, string, int, int) ([]models.Comic, error) {
	return s.comics, nil
}

type memoryStore struct {
	objects map[string][]byte
	types   map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

func (m *memoryStore) PutResource(_ context.Context, subject, key string, data []byte, contentType string) error {
	m.objects[subject+"/"+key] = data
	m.types[subject+"/"+key] = contentType
	return nil
}

func (m *memoryStore) HasResource(_ context.Context, subject, key string) bool {
	_, ok := m.objects[subject+"/"+key]
	return ok
}

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func TestSyncMirrorsNewAssets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(pngHeader)
	}))
	defer srv.Close()

	images := stubImages{images: []models.Image{
		{ID: "img_1", ImageURL: srv.URL + "/a.png"},
		{ID: "img_2", ImageURL: srv.URL + "/missing.png"},
	}}
	comics := stubComics{comics: []models.Comic{
		{ID: "com_1", ImageURLs: []string{srv.URL + "/a.png", srv.URL + "/b.png"}},
	}}
	store := newMemoryStore()

	svc := NewResourceSyncService(images, comics, store, zerolog.Nop())
	result, err := svc.Sync(context.Background(), "user_1")
	require.NoError(t, err)

	// a.png deduplicated across image and comic records
	assert.Equal(t, 2, result.Synced)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 0, result.Skipped)
	assert.Len(t, store.objects, 2)
	for _, contentType := range store.types {
		assert.Equal(t, "image/png", contentType)
	}
}

func TestSyncSkipsAlreadyMirrored(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(pngHeader)
	}))
	defer srv.Close()

	images := stubImages{images: []models.Image{{ID: "img_1", ImageURL: srv.URL + "/a.png"}}}
	store := newMemoryStore()

	svc := NewResourceSyncService(images, stubComics{}, store, zerolog.Nop())

	first, err := svc.Sync(context.Background(), "user_1")
	require.NoError(t, err)
	assert.Equal(t, 1, first.Synced)

	second, err := svc.Sync(context.Background(), "user_1")
	require.NoError(t, err)
	assert.Equal(t, 0, second.Synced)
	assert.Equal(t, 1, second.Skipped)
}
