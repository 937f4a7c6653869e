package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"eduforge/api/internal/media/sniffer"
	"eduforge/api/internal/models"
)

// Generated assets live behind short-lived CDN URLs on the generation
// service; a sync walks the caller's records and copies anything not yet
// mirrored into our bucket.

const (
	syncListLimit    = 200
	maxResourceBytes = 20 << 20
)

type ImageLister interface {
	ListByOwner(ctx context.Context, subject string, limit, offset int) ([]models.Image, error)
}

type ComicLister interface {
	ListByOwner(ctx context.Context, subject string, limit, offset int) ([]models.Comic, error)
}

type ResourceStore interface {
	PutResource(ctx context.Context, subject, key string, data []byte, contentType string) error
	HasResource(ctx context.Context, subject, key string) bool
}

type SyncResult struct {
	Synced  int
	Skipped int
	Failed  int
}

func (r SyncResult) Message() string {
	return fmt.Sprintf("synced %d resources (%d already mirrored, %d failed)", r.Synced, r.Skipped, r.Failed)
}

type ResourceSyncService struct {
	images     ImageLister
	comics     ComicLister
	store      ResourceStore
	httpClient *http.Client
	log        zerolog.Logger
}

func NewResourceSyncService(images ImageLister, comics ComicLister, store ResourceStore, log zerolog.Logger) *ResourceSyncService {
	return &ResourceSyncService{
		images:     images,
		comics:     comics,
		store:      store,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
	}
}

// Sync mirrors every asset URL on the subject's image and comic records.
// Individual download failures are counted, not fatal; listing failures
// are.
func (s *ResourceSyncService) Sync(ctx context.Context, subject string) (SyncResult, error) {
	urls, err := s.collectURLs(ctx, subject)
	if err != nil {
		return SyncResult{}, err
	}

	var result SyncResult
	for _, assetURL := range urls {
		key := resourceKey(assetURL)
		if s.store.HasResource(ctx, subject, key) {
			result.Skipped++
			continue
		}

		data, headerType, err := s.download(ctx, assetURL)
		if err != nil {
			s.log.Warn().Err(err).Str("url", assetURL).Msg("resource download failed")
			result.Failed++
			continue
		}

		// magic bytes first; the CDN header only breaks ties for types the
		// sniffer doesn't know
		contentType := sniffer.DetectMIME(data)
		if contentType == sniffer.FallbackMIME && headerType != "" {
			contentType = headerType
		}
		if err := s.store.PutResource(ctx, subject, key, data, contentType); err != nil {
			s.log.Warn().Err(err).Str("url", assetURL).Msg("resource store failed")
			result.Failed++
			continue
		}
		result.Synced++
	}

	return result, nil
}

func (s *ResourceSyncService) collectURLs(ctx context.Context, subject string) ([]string, error) {
	seen := make(map[string]struct{})
	var urls []string
	add := func(u string) {
		if u == "" {
			return
		}
		if _, ok := seen[u]; ok {
			return
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}

	images, err := s.images.ListByOwner(ctx, subject, syncListLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	for _, image := range images {
		add(image.ImageURL)
	}

	comics, err := s.comics.ListByOwner(ctx, subject, syncListLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("list comics: %w", err)
	}
	for _, comic := range comics {
		for _, u := range comic.ImageURLs {
			add(u)
		}
	}

	return urls, nil
}

func (s *ResourceSyncService) download(ctx context.Context, assetURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, assetURL, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetch returned %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResourceBytes+1))
	if err != nil {
		return nil, "", err
	}
	if len(data) > maxResourceBytes {
		return nil, "", fmt.Errorf("resource exceeds %d bytes", maxResourceBytes)
	}
	return data, sniffer.MimeTypeFromHTTP(resp.Header), nil
}

func resourceKey(assetURL string) string {
	sum := sha256.Sum256([]byte(assetURL))
	return hex.EncodeToString(sum[:])
}
