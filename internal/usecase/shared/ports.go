package shared

import (
	"context"

	"redemption-service/internal/domain/redemption"

	"github.com/google/uuid"
)

// AuditSink receives ledger transitions relayed from the outbox.
type AuditSink interface {
	Publish(ctx context.Context, events []redemption.AuditEvent) error
}

// StatsInvalidator drops cached seller aggregates after a referral confirm.
type StatsInvalidator interface {
	InvalidateSeller(ctx context.Context, sellerID uuid.UUID) error
}

// CodeInvalidator drops cached code lookups after their usage changed.
type CodeInvalidator interface {
	InvalidateCode(ctx context.Context, code string) error
}
