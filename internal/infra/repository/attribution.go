package repository

import (
	"context"

	"redemption-service/internal/infra"
	"redemption-service/internal/infra/db"
	"redemption-service/internal/pkg/errs"
	"redemption-service/internal/usecase/shared"
)

const insertAttributionSQL = `
INSERT INTO identity_attributions (identity_id, code_id, seller_id, entry_id, attributed_at)
VALUES ($1, $2, $3, $4, $5)`

type AttributionRepository struct {
	db db.DBTX
}

func NewAttributionRepository(dbtx db.DBTX) *AttributionRepository {
	return &AttributionRepository{db: dbtx}
}

func (r *AttributionRepository) Insert(ctx context.Context, a shared.Attribution) error {
	_, err := r.db.Exec(ctx, insertAttributionSQL, a.IdentityID, a.CodeID, a.SellerID, a.EntryID, a.AttributedAt)
	if err != nil {
		if infra.PgErrorCode(err) == "23505" {
			return errs.Mark(infra.WrapRepoErr("identity already attributed", err, infra.KindDuplicateKey), errs.ErrIdentityAttributed)
		}
		return infra.WrapRepoErr("failed to insert attribution", err)
	}
	return nil
}
