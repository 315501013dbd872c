package store

import (
	"context"
	"time"

	"travelshare/utils"
)

// RunMaintenance loops the periodic sweeps: expired-notification removal
// and follow-graph reconciliation. The interval is fixed for the life of
// the loop; cancellation is cooperative through ctx, checked between
// iterations. Blocks until ctx is done.
func (s *Store) RunMaintenance(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweepOnce()
		}
	}
}

func (s *Store) sweepOnce() {
	if err := s.SweepExpiredNotifications(time.Now()); err != nil && utils.Sugar != nil {
		utils.Sugar.Warnf("notification sweep failed: %v", err)
	}
	if repaired, err := s.ReconcileFollowGraph(); err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Warnf("follow graph reconciliation failed: %v", err)
		}
	} else if repaired > 0 && utils.Sugar != nil {
		utils.Sugar.Infof("follow graph reconciliation repaired %d users", repaired)
	}
}
