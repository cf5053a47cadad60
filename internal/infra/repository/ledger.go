package repository

import (
	"context"
	"time"

	"redemption-service/internal/domain/eligibility"
	"redemption-service/internal/domain/redemption"
	"redemption-service/internal/infra"
	"redemption-service/internal/infra/converter"
	"redemption-service/internal/infra/db"
	"redemption-service/internal/pkg/errs"
	"redemption-service/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const oneReferralPerIdentityIndex = "redemption_ledger_one_referral_per_identity"

const (
	insertEntrySQL = `INSERT INTO redemption_ledger (` + converter.EntryColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	getEntrySQL = `SELECT ` + converter.EntryColumns + ` FROM redemption_ledger WHERE id = $1`

	transitionEntrySQL = `
UPDATE redemption_ledger
SET status = $3, decided_at = $4
WHERE id = $1 AND status = $2`

	// Stale reservations still count against capacity until the reaper expires them.
	UsageSQL = `
SELECT
    (SELECT count(*) FROM redemption_ledger WHERE code_id = $1 AND status = 'RESERVED'),
    (SELECT count(*) FROM redemption_ledger
        WHERE code_id = $1 AND identity_id = $2 AND status IN ('RESERVED', 'CONFIRMED')),
    EXISTS (SELECT 1 FROM identity_attributions WHERE identity_id = $2)
        OR EXISTS (SELECT 1 FROM redemption_ledger
            WHERE identity_id = $2 AND kind = 'REFERRAL' AND status IN ('RESERVED', 'CONFIRMED'))`
)

type LedgerRepository struct {
	db db.DBTX
}

func NewLedgerRepository(dbtx db.DBTX) *LedgerRepository {
	return &LedgerRepository{db: dbtx}
}

func (r *LedgerRepository) Insert(ctx context.Context, e *redemption.Entry) error {
	_, err := r.db.Exec(ctx, insertEntrySQL,
		e.ID(), e.CodeID(), string(e.Kind()), e.IdentityID(), e.ContextID(),
		string(e.Status()), e.AmountApplied(), e.ReservedAt(), pgconv.TimePtrToPgtype(e.DecidedAt()),
	)
	if err != nil {
		if infra.PgConstraint(err) == oneReferralPerIdentityIndex {
			return errs.Mark(infra.WrapRepoErr("identity already referred", err, infra.KindDuplicateKey), errs.ErrIdentityAttributed)
		}
		return infra.WrapRepoErr("failed to insert ledger entry", err)
	}
	return nil
}

func (r *LedgerRepository) Get(ctx context.Context, id uuid.UUID) (*redemption.Entry, error) {
	entry, err := converter.ScanEntry(r.db.QueryRow(ctx, getEntrySQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Mark(infra.WrapRepoErr("ledger entry not found", err, infra.KindNotFound), errs.ErrReservationNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get ledger entry", err)
	}
	return entry, nil
}

func (r *LedgerRepository) Transition(ctx context.Context, id uuid.UUID, from, to redemption.Status, at time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, transitionEntrySQL, id, string(from), string(to), at)
	if err != nil {
		return false, infra.WrapRepoErr("failed to transition ledger entry", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *LedgerRepository) Usage(ctx context.Context, codeID, identityID uuid.UUID) (eligibility.Usage, error) {
	return ScanUsage(ctx, r.db, codeID, identityID)
}

// ScanUsage runs UsageSQL on any connection.
func ScanUsage(ctx context.Context, dbtx db.DBTX, codeID, identityID uuid.UUID) (eligibility.Usage, error) {
	var u eligibility.Usage
	if err := dbtx.QueryRow(ctx, UsageSQL, codeID, identityID).Scan(&u.ReservedCount, &u.IdentityActive, &u.IdentityReferred); err != nil {
		return eligibility.Usage{}, infra.WrapRepoErr("failed to count code usage", err)
	}
	return u, nil
}
