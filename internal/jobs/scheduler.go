package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"eduforge/api/internal/repository"
)

// staleAfter is how long a non-success generation record may linger before
// the nightly purge drops it.
const staleAfter = 72 * time.Hour

type Scheduler struct {
	cron   *cron.Cron
	images *repository.ImageRepository
	comics *repository.ComicRepository
	log    zerolog.Logger
}

func NewScheduler(images *repository.ImageRepository, comics *repository.ComicRepository, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:   c,
		images: images,
		comics: comics,
		log:    log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 0 0 * * *", s.purgeStale); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop waits for in-flight jobs, up to five seconds.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("scheduler stop timed out")
	}
}

func (s *Scheduler) purgeStale() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-staleAfter)

	purgedImages, err := s.images.PurgeStale(ctx, cutoff)
	if err != nil {
		s.log.Error().Err(err).Msg("purge stale images failed")
	}

	purgedComics, err := s.comics.PurgeStale(ctx, cutoff)
	if err != nil {
		s.log.Error().Err(err).Msg("purge stale comics failed")
	}

	s.log.Info().
		Int64("images", purgedImages).
		Int64("comics", purgedComics).
		Msg("stale generation records purged")
}
