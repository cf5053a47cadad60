package repository

import (
	"context"

	"redemption-service/internal/domain/redeemable"
	"redemption-service/internal/infra"
	"redemption-service/internal/infra/converter"
	"redemption-service/internal/infra/db"
	"redemption-service/internal/pkg/errs"
	"redemption-service/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const (
	lockCodeByCodeSQL = `SELECT ` + converter.CodeColumns + ` FROM redeemable_codes WHERE code = $1 FOR UPDATE`
	lockCodeByIDSQL   = `SELECT ` + converter.CodeColumns + ` FROM redeemable_codes WHERE id = $1 FOR UPDATE`

	incrementConfirmedSQL = `
UPDATE redeemable_codes
SET current_uses = current_uses + 1, updated_at = now()
WHERE id = $1 AND (max_uses IS NULL OR current_uses < max_uses)`

	insertCodeSQL = `INSERT INTO redeemable_codes (` + converter.CodeColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
)

type CodeRepository struct {
	db db.DBTX
}

func NewCodeRepository(dbtx db.DBTX) *CodeRepository {
	return &CodeRepository{db: dbtx}
}

func (r *CodeRepository) LockByCode(ctx context.Context, code string) (*redeemable.Code, error) {
	return r.lock(ctx, lockCodeByCodeSQL, redeemable.NormalizeCode(code))
}

func (r *CodeRepository) LockByID(ctx context.Context, id uuid.UUID) (*redeemable.Code, error) {
	return r.lock(ctx, lockCodeByIDSQL, id)
}

func (r *CodeRepository) lock(ctx context.Context, query string, arg any) (*redeemable.Code, error) {
	row, err := converter.ScanCode(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Mark(infra.WrapRepoErr("code not found", err, infra.KindNotFound), errs.ErrCodeNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock code", err)
	}

	code, err := row.ToDomain()
	if err != nil {
		return nil, infra.WrapRepoErr("stored code is invalid", err, infra.KindConstraintViolated)
	}
	return code, nil
}

func (r *CodeRepository) IncrementConfirmed(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, incrementConfirmedSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to increment confirmed uses", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.Wrapf(errs.ErrCapInvariant, "code %s", id)
	}
	return nil
}

// Create stores a new code. Codes are provisioned out of band; this is used
// by seeding and tests.
func (r *CodeRepository) Create(ctx context.Context, code *redeemable.Code) error {
	if _, err := r.db.Exec(ctx, insertCodeSQL, converter.CodeInsertArgs(code)...); err != nil {
		return infra.WrapRepoErr("failed to create code", err)
	}
	return nil
}
