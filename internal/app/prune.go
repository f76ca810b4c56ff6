package app

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"hotel_listings/internal/domain"
)

// PruneService removes image files that no hotel or room row references.
// Such files are left behind when an update replaces images and when a
// best-effort removal fails.
type PruneService struct {
	index   domain.ImageIndex
	files   domain.ImageFiles
	workers int
	limiter *rate.Limiter
	grace   time.Duration
	now     func() time.Time
}

type PruneReport struct {
	Scanned    int `json:"scanned"`
	Referenced int `json:"referenced"`
	Recent     int `json:"recent"` // unreferenced but inside the grace period
	Orphans    int `json:"orphans"`
	Removed    int `json:"removed"`
	Failed     int `json:"failed"`
}

// NewPruneService bounds removals to workers in flight and perSecond per
// second (<= 0 means unthrottled). Files younger than grace are never removed
// so uploads whose row is not written yet survive.
func NewPruneService(idx domain.ImageIndex, files domain.ImageFiles, workers int, perSecond float64, grace time.Duration) *PruneService {
	if workers <= 0 {
		workers = 1
	}
	lim := rate.NewLimiter(rate.Inf, workers)
	if perSecond > 0 {
		lim = rate.NewLimiter(rate.Limit(perSecond), workers)
	}
	return &PruneService{index: idx, files: files, workers: workers, limiter: lim, grace: grace, now: time.Now}
}

func (s *PruneService) Prune(ctx context.Context, dryRun bool) (PruneReport, error) {
	var rep PruneReport

	// 1) Snapshot what the database references.
	refs, err := s.index.ReferencedImages(ctx)
	if err != nil {
		return rep, err
	}
	referenced := make(map[string]struct{}, len(refs))
	for _, p := range refs {
		referenced[p] = struct{}{}
	}

	// 2) Classify what is on disk.
	files, err := s.files.Files()
	if err != nil {
		return rep, err
	}
	cutoff := s.now().Add(-s.grace)
	var orphans []string
	for _, f := range files {
		rep.Scanned++
		switch _, ok := referenced[f.Path]; {
		case ok:
			rep.Referenced++
		case f.ModTime.After(cutoff):
			rep.Recent++
		default:
			orphans = append(orphans, f.Path)
		}
	}
	rep.Orphans = len(orphans)

	if dryRun {
		for _, p := range orphans {
			log.Info().Str("path", p).Msg("orphan (dry run)")
		}
		return rep, nil
	}

	// 3) Remove orphans on a bounded, throttled pool.
	sem := semaphore.NewWeighted(int64(s.workers))
	var wg sync.WaitGroup
	var removed, failed atomic.Int64

	for _, p := range orphans {
		if err := s.limiter.Wait(ctx); err != nil {
			break
		}
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			defer sem.Release(1)

			if err := s.files.Remove(ctx, path); err != nil {
				failed.Add(1)
				log.Warn().Err(err).Str("path", path).Msg("prune remove failed")
				return
			}
			removed.Add(1)
			log.Debug().Str("path", path).Msg("pruned")
		}(p)
	}
	wg.Wait()

	rep.Removed, rep.Failed = int(removed.Load()), int(failed.Load())
	return rep, ctx.Err()
}
