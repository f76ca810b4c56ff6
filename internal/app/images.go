package app

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"hotel_listings/internal/domain"
)

const removeConcurrency = 4

// RemoveImages deletes paths from the store and waits for all of them.
// Failures are logged, never returned: the rows are already gone (or were
// never written) and the caller's response does not depend on the files.
func RemoveImages(ctx context.Context, store domain.ImageStore, paths []string) {
	if store == nil || len(paths) == 0 {
		return
	}
	// finish even if the client goes away mid-request
	ctx = context.WithoutCancel(ctx)

	var g errgroup.Group
	g.SetLimit(removeConcurrency)
	for _, p := range paths {
		p := p
		g.Go(func() error {
			if err := store.Remove(ctx, p); err != nil {
				log.Warn().Err(err).Str("path", p).Msg("image remove failed")
			}
			return nil
		})
	}
	_ = g.Wait()
}
