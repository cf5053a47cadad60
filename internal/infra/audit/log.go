package audit

import (
	"context"
	"log/slog"

	"redemption-service/internal/domain/redemption"
)

// LogSink writes audit events to the structured log. Used when no brokers
// are configured.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger.With("component", "audit")}
}

func (s *LogSink) Publish(ctx context.Context, events []redemption.AuditEvent) error {
	for _, ev := range events {
		s.logger.InfoContext(ctx, "audit event",
			"event_id", ev.ID,
			"action", ev.Action,
			"resource", ev.Resource,
			"entry_id", ev.EntryID,
			"code", ev.Code,
			"identity_id", ev.IdentityID,
			"context_id", ev.ContextID,
			"amount_applied", ev.AmountApplied,
			"occurred_at", ev.OccurredAt)
	}
	return nil
}
