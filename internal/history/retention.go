package history

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Retention prunes old sessions and runs on a cron schedule.
type Retention struct {
	store *Store
	cron  *cron.Cron
	days  int
}

// NewRetention builds a retention job that removes history older than the
// given number of days. The schedule uses standard five-field cron syntax.
func NewRetention(store *Store, days int, schedule string) (*Retention, error) {
	r := &Retention{store: store, cron: cron.New(), days: days}
	if _, err := r.cron.AddFunc(schedule, r.prune); err != nil {
		return nil, fmt.Errorf("parsing prune schedule %q: %w", schedule, err)
	}
	return r, nil
}

// Start begins running the schedule in the background.
func (r *Retention) Start() {
	r.cron.Start()
	slog.Info("history retention enabled", "days", r.days)
}

// Stop halts the schedule. Running prunes finish on their own.
func (r *Retention) Stop() {
	r.cron.Stop()
}

func (r *Retention) prune() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	sessions, runs, err := r.store.PruneOlderThan(ctx, r.days)
	if err != nil {
		slog.Error("pruning history", "error", err)
		return
	}
	if sessions > 0 || runs > 0 {
		slog.Info("pruned history", "sessions", sessions, "runs", runs)
	}
}
