package portfolio

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// RefreshJob refreshes all prices and records a snapshot on a cron schedule.
type RefreshJob struct {
	Service *Service
}

func (j *RefreshJob) Name() string { return "price_refresh" }

func (j *RefreshJob) Run() error {
	counts, _, errMsg, _ := j.Service.UpdateAllPrices(context.Background())
	if errMsg != "" {
		return fmt.Errorf("price refresh: %s", errMsg)
	}
	log.Info().
		Int("investments", counts.Investments).
		Int("crypto", counts.Crypto).
		Msg("Scheduled price refresh completed")
	return nil
}

// PruneJob trims the snapshot history to the newest Keep rows.
type PruneJob struct {
	Service *Service
	Keep    int
}

func (j *PruneJob) Name() string { return "snapshot_prune" }

func (j *PruneJob) Run() error {
	removed, err := j.Service.PruneHistory(context.Background(), j.Keep)
	if err != nil {
		return err
	}
	if removed > 0 {
		log.Info().Int64("removed", removed).Msg("Pruned portfolio snapshots")
	}
	return nil
}
