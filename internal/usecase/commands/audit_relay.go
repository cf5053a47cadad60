package commands

import (
	"context"
	"log/slog"
	"time"

	"redemption-service/internal/domain/redemption"
	"redemption-service/internal/pkg/clock"
	"redemption-service/internal/pkg/metrics"
	"redemption-service/internal/usecase/shared"

	"github.com/google/uuid"
)

type AuditRelayConfig struct {
	Interval  time.Duration
	BatchSize int
}

type RelayReport struct {
	Published int
	Failed    int
}

// AuditRelay forwards outbox rows to the audit sink. Rows stay claimed for
// the length of one transaction, so concurrent relays never publish the
// same batch twice.
type AuditRelay struct {
	uow      shared.UnitOfWork
	sink     shared.AuditSink
	clock    clock.Clock
	cfg      AuditRelayConfig
	recorder metrics.Recorder
}

func NewAuditRelay(uow shared.UnitOfWork, sink shared.AuditSink, clk clock.Clock, cfg AuditRelayConfig, recorder metrics.Recorder) *AuditRelay {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Second
	}
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &AuditRelay{uow: uow, sink: sink, clock: clk, cfg: cfg, recorder: recorder}
}

// Drain publishes one batch. A sink failure is recorded on the rows and
// leaves them for the next attempt.
func (r *AuditRelay) Drain(ctx context.Context) (RelayReport, error) {
	var report RelayReport
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		report = RelayReport{}

		records, err := tx.Outbox().ClaimUnpublished(ctx, r.cfg.BatchSize)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}

		events := make([]redemption.AuditEvent, len(records))
		ids := make([]uuid.UUID, len(records))
		for i, rec := range records {
			events[i] = rec.Event
			ids[i] = rec.Event.ID
		}

		if perr := r.sink.Publish(ctx, events); perr != nil {
			report.Failed = len(records)
			slog.WarnContext(ctx, "audit publish failed", "events", len(records), "error", perr.Error())
			return tx.Outbox().MarkFailed(ctx, ids, perr.Error())
		}

		report.Published = len(records)
		return tx.Outbox().MarkPublished(ctx, ids, r.clock.Now())
	})
	if err != nil {
		return RelayReport{}, err
	}

	r.recorder.AuditRelayed(report.Published, report.Failed)
	return report, nil
}

// Run drains until a batch comes back short, then waits for the next tick.
func (r *AuditRelay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	slog.Info("audit relay started", "interval", r.cfg.Interval)
	for {
		for {
			report, err := r.Drain(ctx)
			if err != nil {
				if ctx.Err() == nil {
					slog.Error("audit relay drain failed", "error", err.Error())
				}
				break
			}
			if report.Failed > 0 || report.Published < r.cfg.BatchSize {
				break
			}
		}

		select {
		case <-ctx.Done():
			slog.Info("audit relay stopped")
			return
		case <-ticker.C:
		}
	}
}
