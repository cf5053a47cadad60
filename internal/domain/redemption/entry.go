package redemption

import (
	"errors"
	"strings"
	"time"

	"redemption-service/internal/domain/redeemable"

	"github.com/google/uuid"
)

var (
	ErrMissingIdentity   = errors.New("identity id is required")
	ErrNegativeAmount    = errors.New("amount applied cannot be negative")
	ErrIllegalTransition = errors.New("illegal ledger transition")
)

// Entry is one redemption attempt. It changes status exactly once.
type Entry struct {
	id            uuid.UUID
	codeID        uuid.UUID
	kind          redeemable.Kind
	identityID    uuid.UUID
	contextID     string
	status        Status
	amountApplied int64
	reservedAt    time.Time
	decidedAt     *time.Time
}

// NewReservation builds a RESERVED entry for code. An empty contextID falls
// back to the identity.
func NewReservation(id uuid.UUID, code *redeemable.Code, identityID uuid.UUID, contextID string, amount int64, reservedAt time.Time) (*Entry, error) {
	if identityID == uuid.Nil {
		return nil, ErrMissingIdentity
	}
	if amount < 0 {
		return nil, ErrNegativeAmount
	}
	contextID = strings.TrimSpace(contextID)
	if contextID == "" {
		contextID = identityID.String()
	}

	return &Entry{
		id:            id,
		codeID:        code.ID(),
		kind:          code.Kind(),
		identityID:    identityID,
		contextID:     contextID,
		status:        StatusReserved,
		amountApplied: amount,
		reservedAt:    reservedAt,
	}, nil
}

type EntryParams struct {
	ID            uuid.UUID
	CodeID        uuid.UUID
	Kind          redeemable.Kind
	IdentityID    uuid.UUID
	ContextID     string
	Status        Status
	AmountApplied int64
	ReservedAt    time.Time
	DecidedAt     *time.Time
}

// Restore rebuilds a persisted entry without validation.
func Restore(p EntryParams) *Entry {
	return &Entry{
		id:            p.ID,
		codeID:        p.CodeID,
		kind:          p.Kind,
		identityID:    p.IdentityID,
		contextID:     p.ContextID,
		status:        p.Status,
		amountApplied: p.AmountApplied,
		reservedAt:    p.ReservedAt,
		decidedAt:     p.DecidedAt,
	}
}

func (e *Entry) Params() EntryParams {
	return EntryParams{
		ID:            e.id,
		CodeID:        e.codeID,
		Kind:          e.kind,
		IdentityID:    e.identityID,
		ContextID:     e.contextID,
		Status:        e.status,
		AmountApplied: e.amountApplied,
		ReservedAt:    e.reservedAt,
		DecidedAt:     e.decidedAt,
	}
}

// Transition moves a RESERVED entry to a terminal status.
func (e *Entry) Transition(to Status, at time.Time) error {
	if e.status != StatusReserved || !to.IsTerminal() {
		return ErrIllegalTransition
	}
	e.status = to
	e.decidedAt = &at
	return nil
}

func (e *Entry) ExpiresAt(ttl time.Duration) time.Time {
	return e.reservedAt.Add(ttl)
}

// IsStale reports whether a reservation outlived ttl at now.
func (e *Entry) IsStale(now time.Time, ttl time.Duration) bool {
	return e.status == StatusReserved && e.ExpiresAt(ttl).Before(now)
}

func (e *Entry) ID() uuid.UUID         { return e.id }
func (e *Entry) CodeID() uuid.UUID     { return e.codeID }
func (e *Entry) Kind() redeemable.Kind { return e.kind }
func (e *Entry) IdentityID() uuid.UUID { return e.identityID }
func (e *Entry) ContextID() string     { return e.contextID }
func (e *Entry) Status() Status        { return e.status }
func (e *Entry) AmountApplied() int64  { return e.amountApplied }
func (e *Entry) ReservedAt() time.Time { return e.reservedAt }
func (e *Entry) DecidedAt() *time.Time { return e.decidedAt }
