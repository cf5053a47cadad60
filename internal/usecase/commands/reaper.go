package commands

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"redemption-service/internal/pkg/clock"
	"redemption-service/internal/pkg/errs"
	"redemption-service/internal/pkg/metrics"
	"redemption-service/internal/usecase/shared"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type ReaperConfig struct {
	TTL         time.Duration
	Interval    time.Duration
	BatchSize   int
	Concurrency int
}

type SweepReport struct {
	Scanned int `json:"scanned"`
	Expired int `json:"expired"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

type ReaperCommands interface {
	Sweep(ctx context.Context) (SweepReport, error)
}

type expirer interface {
	Expire(ctx context.Context, id uuid.UUID) (*Reservation, error)
}

// Reaper expires reservations that outlived their TTL. Several reapers may
// run at once; the guarded transition lets exactly one of them win per entry.
type Reaper struct {
	reads    shared.CommandReads
	expirer  expirer
	clock    clock.Clock
	cfg      ReaperConfig
	recorder metrics.Recorder
}

func NewReaper(uow shared.UnitOfWork, coordinator *Coordinator, clk clock.Clock, cfg ReaperConfig, recorder metrics.Recorder) *Reaper {
	if cfg.TTL <= 0 {
		cfg.TTL = coordinator.TTL()
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &Reaper{
		reads:    uow.Reads(),
		expirer:  coordinator,
		clock:    clk,
		cfg:      cfg,
		recorder: recorder,
	}
}

// Sweep pages through stale reservations oldest first. A failing entry is
// counted and logged and never stops the sweep.
func (r *Reaper) Sweep(ctx context.Context) (SweepReport, error) {
	var report SweepReport
	cutoff := r.clock.Now().Add(-r.cfg.TTL)

	var after *shared.StaleKey
	for {
		keys, err := r.reads.StaleReservations(ctx, cutoff, after, r.cfg.BatchSize)
		if err != nil {
			return report, errs.Wrap(err, "list stale reservations")
		}
		if len(keys) == 0 {
			break
		}

		ids := make([]uuid.UUID, len(keys))
		for i, k := range keys {
			ids[i] = k.ID
		}
		expired, skipped, failed := r.expireBatch(ctx, ids)
		report.Scanned += len(ids)
		report.Expired += expired
		report.Skipped += skipped
		report.Failed += failed

		if err := ctx.Err(); err != nil {
			return report, err
		}
		if len(keys) < r.cfg.BatchSize {
			break
		}
		last := keys[len(keys)-1]
		after = &last
	}

	r.recorder.SweepResult(report.Expired, report.Skipped, report.Failed)
	if report.Scanned > 0 {
		slog.InfoContext(ctx, "reaper sweep finished",
			"scanned", report.Scanned,
			"expired", report.Expired,
			"skipped", report.Skipped,
			"failed", report.Failed)
	}
	return report, nil
}

func (r *Reaper) expireBatch(ctx context.Context, ids []uuid.UUID) (expired, skipped, failed int) {
	var nExpired, nSkipped, nFailed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Concurrency)
	for _, id := range ids {
		g.Go(func() error {
			_, err := r.expirer.Expire(gctx, id)
			switch {
			case err == nil:
				nExpired.Add(1)
			case errs.Is(err, errs.ErrConflictingTransition), errs.Is(err, errs.ErrNotStale):
				// a caller or another reaper decided the entry first
				nSkipped.Add(1)
			default:
				nFailed.Add(1)
				slog.WarnContext(gctx, "failed to expire reservation",
					"reservation_id", id,
					"error", err.Error())
			}
			return nil
		})
	}
	_ = g.Wait()

	return int(nExpired.Load()), int(nSkipped.Load()), int(nFailed.Load())
}

// Run sweeps on the configured interval until ctx is done.
func (r *Reaper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	slog.Info("reaper started", "interval", r.cfg.Interval, "ttl", r.cfg.TTL)
	for {
		if _, err := r.Sweep(ctx); err != nil && ctx.Err() == nil {
			slog.Error("reaper sweep failed", "error", err.Error())
		}

		select {
		case <-ctx.Done():
			slog.Info("reaper stopped")
			return
		case <-ticker.C:
		}
	}
}
