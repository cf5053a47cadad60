package memstore

import (
	"context"
	"sort"
	"time"

	"redemption-service/internal/domain/eligibility"
	"redemption-service/internal/domain/redeemable"
	"redemption-service/internal/domain/redemption"
	"redemption-service/internal/pkg/errs"
	"redemption-service/internal/usecase/shared"

	"github.com/google/uuid"
)

// memTx exposes every repository over the same work copy. The store lock is
// already held, so row locks are no-ops.
type memTx struct {
	st *state
}

func (t *memTx) Codes() shared.CodeRepository               { return codeRepo{t.st} }
func (t *memTx) Ledger() shared.LedgerRepository            { return ledgerRepo{t.st} }
func (t *memTx) Attributions() shared.AttributionRepository { return attributionRepo{t.st} }
func (t *memTx) Outbox() shared.OutboxRepository            { return outboxRepo{t.st} }

type codeRepo struct{ st *state }

func (r codeRepo) LockByCode(_ context.Context, code string) (*redeemable.Code, error) {
	return r.st.codeByCode(redeemable.NormalizeCode(code))
}

func (r codeRepo) LockByID(_ context.Context, id uuid.UUID) (*redeemable.Code, error) {
	return r.st.codeByID(id)
}

func (r codeRepo) IncrementConfirmed(_ context.Context, id uuid.UUID) error {
	p, ok := r.st.codes[id]
	if !ok {
		return errs.Wrapf(errs.ErrCodeNotFound, "code %s", id)
	}
	if p.MaxUses != nil && p.CurrentUses >= *p.MaxUses {
		return errs.Wrapf(errs.ErrCapInvariant, "code %s", id)
	}
	p.CurrentUses++
	r.st.codes[id] = p
	return nil
}

type ledgerRepo struct{ st *state }

func (r ledgerRepo) Insert(_ context.Context, e *redemption.Entry) error {
	if _, ok := r.st.codes[e.CodeID()]; !ok {
		return errs.Wrapf(errs.ErrCodeNotFound, "code %s", e.CodeID())
	}
	if _, ok := r.st.ledger[e.ID()]; ok {
		return errs.Newf("ledger entry %s already exists", e.ID())
	}
	if e.Kind() == redeemable.KindReferral {
		for _, other := range r.st.ledger {
			if other.IdentityID == e.IdentityID() && other.Kind == redeemable.KindReferral && other.Status.IsActive() {
				return errs.Wrapf(errs.ErrIdentityAttributed, "identity %s", e.IdentityID())
			}
		}
	}
	r.st.ledger[e.ID()] = e.Params()
	return nil
}

func (r ledgerRepo) Get(_ context.Context, id uuid.UUID) (*redemption.Entry, error) {
	return r.st.entry(id)
}

func (r ledgerRepo) Transition(_ context.Context, id uuid.UUID, from, to redemption.Status, at time.Time) (bool, error) {
	p, ok := r.st.ledger[id]
	if !ok || p.Status != from {
		return false, nil
	}
	p.Status = to
	p.DecidedAt = &at
	r.st.ledger[id] = p
	return true, nil
}

func (r ledgerRepo) Usage(_ context.Context, codeID, identityID uuid.UUID) (eligibility.Usage, error) {
	return r.st.usage(codeID, identityID), nil
}

type attributionRepo struct{ st *state }

func (r attributionRepo) Insert(_ context.Context, a shared.Attribution) error {
	if _, ok := r.st.attributions[a.IdentityID]; ok {
		return errs.Wrapf(errs.ErrIdentityAttributed, "identity %s", a.IdentityID)
	}
	r.st.attributions[a.IdentityID] = a
	return nil
}

type outboxRepo struct{ st *state }

func (r outboxRepo) Append(_ context.Context, ev redemption.AuditEvent) error {
	r.st.outbox = append(r.st.outbox, outboxRow{event: ev})
	return nil
}

func (r outboxRepo) ClaimUnpublished(_ context.Context, limit int) ([]shared.OutboxRecord, error) {
	pending := make([]outboxRow, 0)
	for _, row := range r.st.outbox {
		if row.publishedAt == nil {
			pending = append(pending, row)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].event.OccurredAt.Before(pending[j].event.OccurredAt)
	})
	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}

	records := make([]shared.OutboxRecord, 0, len(pending))
	for _, row := range pending {
		records = append(records, shared.OutboxRecord{Event: row.event, Attempts: row.attempts})
	}
	return records, nil
}

func (r outboxRepo) MarkPublished(_ context.Context, ids []uuid.UUID, at time.Time) error {
	r.update(ids, func(row *outboxRow) {
		published := at
		row.publishedAt = &published
	})
	return nil
}

func (r outboxRepo) MarkFailed(_ context.Context, ids []uuid.UUID, reason string) error {
	r.update(ids, func(row *outboxRow) {
		row.attempts++
		row.lastError = reason
	})
	return nil
}

func (r outboxRepo) update(ids []uuid.UUID, fn func(row *outboxRow)) {
	want := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	for i := range r.st.outbox {
		if _, ok := want[r.st.outbox[i].event.ID]; ok {
			fn(&r.st.outbox[i])
		}
	}
}
