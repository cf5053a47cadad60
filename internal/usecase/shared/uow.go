package shared

import (
	"context"
	"time"

	"redemption-service/internal/domain/eligibility"
	"redemption-service/internal/domain/redeemable"
	"redemption-service/internal/domain/redemption"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Reads: Lock-free reads outside transactions, advisory only
	Reads() CommandReads
}

type Tx interface {
	Codes() CodeRepository
	Ledger() LedgerRepository
	Attributions() AttributionRepository
	Outbox() OutboxRepository
}

type CommandReads interface {
	CodeByCode(ctx context.Context, code string) (*redeemable.Code, error)
	Usage(ctx context.Context, codeID, identityID uuid.UUID) (eligibility.Usage, error)
	EntryByID(ctx context.Context, id uuid.UUID) (*redemption.Entry, error)
	// StaleReservations pages RESERVED entries reserved before cutoff, ordered
	// by (reservedAt, id) and strictly after the given key when set.
	StaleReservations(ctx context.Context, cutoff time.Time, after *StaleKey, limit int) ([]StaleKey, error)
}

// StaleKey is the keyset position of a RESERVED entry.
type StaleKey struct {
	ReservedAt time.Time
	ID         uuid.UUID
}

// CodeRepository is the only writer of current_uses.
type CodeRepository interface {
	// LockByCode takes the row lock that serializes redemptions of one code.
	LockByCode(ctx context.Context, code string) (*redeemable.Code, error)
	LockByID(ctx context.Context, id uuid.UUID) (*redeemable.Code, error)
	// IncrementConfirmed adds one confirmed use only while under the global
	// cap; otherwise it fails with errs.ErrCapInvariant.
	IncrementConfirmed(ctx context.Context, id uuid.UUID) error
}

type LedgerRepository interface {
	// Insert fails with errs.ErrIdentityAttributed when the identity already
	// holds an active referral entry.
	Insert(ctx context.Context, e *redemption.Entry) error
	Get(ctx context.Context, id uuid.UUID) (*redemption.Entry, error)
	// Transition updates the status only when the stored status equals from.
	Transition(ctx context.Context, id uuid.UUID, from, to redemption.Status, at time.Time) (bool, error)
	Usage(ctx context.Context, codeID, identityID uuid.UUID) (eligibility.Usage, error)
}

type Attribution struct {
	IdentityID   uuid.UUID
	CodeID       uuid.UUID
	SellerID     uuid.UUID
	EntryID      uuid.UUID
	AttributedAt time.Time
}

type AttributionRepository interface {
	Insert(ctx context.Context, a Attribution) error
}

type OutboxRecord struct {
	Event    redemption.AuditEvent
	Attempts int
}

type OutboxRepository interface {
	Append(ctx context.Context, ev redemption.AuditEvent) error
	// ClaimUnpublished locks up to limit unpublished rows, skipping rows
	// another relay holds.
	ClaimUnpublished(ctx context.Context, limit int) ([]OutboxRecord, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, ids []uuid.UUID, reason string) error
}
