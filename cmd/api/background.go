package main

import (
	"context"
	"time"
)

// prunePushTokensEvery drops push tokens not refreshed within ttl, once at
// start-up and then every interval. The returned func stops the loop.
func (app *application) prunePushTokensEvery(interval, ttl time.Duration) func() {
	ctx, cancel := context.WithCancel(context.Background())

	prune := func() {
		ctx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()

		n, err := app.pushTokens.PruneStale(ctx, ttl)
		if err != nil {
			app.logger.Errorw("error pruning stale push tokens", "error", err)
			return
		}
		app.logger.Infow("pruned stale push tokens", "removed", n, "older_than", ttl)
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		// Run once immediately
		prune()

		for {
			select {
			case <-ticker.C:
				prune()
			case <-ctx.Done():
				return
			}
		}
	}()

	return cancel
}
