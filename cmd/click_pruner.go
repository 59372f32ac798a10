package main

import (
	"context"
	"log"
	"time"

	"lokalBack/internal/repositories"
)

const (
	clickRetention     = 180 * 24 * time.Hour
	clickPrunerTimeout = 1 * time.Minute
)

func startClickPruner(ctx context.Context, repo *repositories.ClickRepository, infoLog, errorLog *log.Logger) {
	if repo == nil {
		return
	}

	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		runOnce := func() {
			runCtx, cancel := context.WithTimeout(ctx, clickPrunerTimeout)
			deleted, err := repo.DeleteOlderThan(runCtx, time.Now().Add(-clickRetention))
			cancel()
			if err != nil {
				if errorLog != nil {
					errorLog.Printf("click pruner: failed to delete old clicks: %v", err)
				}
			} else if deleted > 0 && infoLog != nil {
				infoLog.Printf("click pruner: deleted %d old click records", deleted)
			}
		}

		runOnce()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runOnce()
			}
		}
	}()
}
