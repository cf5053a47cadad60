package readstore

import (
	"context"

	"redemption-service/internal/domain/eligibility"
	"redemption-service/internal/infra"
	"redemption-service/internal/infra/converter"
	"redemption-service/internal/infra/db"
	"redemption-service/internal/infra/repository"
	"redemption-service/internal/pkg/errs"
	"redemption-service/internal/pkg/pgconv"
	"redemption-service/internal/usecase/queries"

	"github.com/google/uuid"
)

const findCodeByCodeSQL = `SELECT ` + converter.CodeColumns + ` FROM redeemable_codes WHERE code = $1`

type CodeReadStore struct {
	db db.DBTX
}

func NewCodeReadStore(dbtx db.DBTX) *CodeReadStore {
	return &CodeReadStore{db: dbtx}
}

func (s *CodeReadStore) FindByCode(ctx context.Context, code string) (*queries.CodeView, error) {
	row, err := converter.ScanCode(s.db.QueryRow(ctx, findCodeByCodeSQL, code))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Mark(infra.WrapRepoErr("code not found", err, infra.KindNotFound), errs.ErrCodeNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find code", err)
	}

	c, err := row.ToDomain()
	if err != nil {
		return nil, infra.WrapRepoErr("stored code is invalid", err, infra.KindConstraintViolated)
	}
	return queries.CodeViewFromDomain(c), nil
}

func (s *CodeReadStore) Usage(ctx context.Context, codeID, identityID uuid.UUID) (eligibility.Usage, error) {
	return repository.ScanUsage(ctx, s.db, codeID, identityID)
}
