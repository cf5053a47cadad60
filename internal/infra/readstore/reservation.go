package readstore

import (
	"context"

	"redemption-service/internal/infra"
	"redemption-service/internal/infra/db"
	"redemption-service/internal/pkg/errs"
	"redemption-service/internal/pkg/pgconv"
	"redemption-service/internal/pkg/ptr"
	"redemption-service/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const findReservationSQL = `
SELECT l.id, l.code_id, c.code, l.kind, l.identity_id, l.context_id, l.status,
       l.amount_applied, l.reserved_at, l.decided_at
FROM redemption_ledger l
JOIN redeemable_codes c ON c.id = l.code_id
WHERE l.id = $1`

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: dbtx}
}

func (s *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	var (
		v         queries.ReservationView
		decidedAt pgtype.Timestamptz
	)
	err := s.db.QueryRow(ctx, findReservationSQL, id).Scan(
		&v.ID, &v.CodeID, &v.Code, &v.Kind, &v.IdentityID, &v.ContextID, &v.Status,
		&v.AmountApplied, &v.ReservedAt, &decidedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Mark(infra.WrapRepoErr("reservation not found", err, infra.KindNotFound), errs.ErrReservationNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	v.DecidedAt = ptr.TimeFromPgtype(decidedAt)
	return &v, nil
}
