package redemption

import (
	"time"

	"redemption-service/internal/domain/redeemable"

	"github.com/google/uuid"
)

type Action string

const (
	ActionReserved  Action = "code.reserved"
	ActionConfirmed Action = "code.confirmed"
	ActionReleased  Action = "code.released"
	ActionExpired   Action = "code.expired"
)

var statusActions = map[Status]Action{
	StatusReserved:  ActionReserved,
	StatusConfirmed: ActionConfirmed,
	StatusReleased:  ActionReleased,
	StatusExpired:   ActionExpired,
}

// AuditEvent records one ledger transition for the external audit log.
type AuditEvent struct {
	ID            uuid.UUID       `json:"id"`
	Action        Action          `json:"action"`
	Resource      redeemable.Kind `json:"resource"`
	EntryID       uuid.UUID       `json:"entryId"`
	CodeID        uuid.UUID       `json:"codeId"`
	Code          string          `json:"code"`
	IdentityID    uuid.UUID       `json:"identityId"`
	ContextID     string          `json:"contextId"`
	AmountApplied int64           `json:"amountApplied"`
	OccurredAt    time.Time       `json:"occurredAt"`
}

// NewAuditEvent describes the entry's current status.
func NewAuditEvent(id uuid.UUID, e *Entry, code string, at time.Time) AuditEvent {
	return AuditEvent{
		ID:            id,
		Action:        statusActions[e.Status()],
		Resource:      e.Kind(),
		EntryID:       e.ID(),
		CodeID:        e.CodeID(),
		Code:          code,
		IdentityID:    e.IdentityID(),
		ContextID:     e.ContextID(),
		AmountApplied: e.AmountApplied(),
		OccurredAt:    at,
	}
}
