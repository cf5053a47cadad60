package readstore

import (
	"context"

	"redemption-service/internal/infra"
	"redemption-service/internal/infra/db"
	"redemption-service/internal/pkg/ptr"
	"redemption-service/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const referralCodesBySellerSQL = `
SELECT id, code, is_active, current_uses, max_uses
FROM redeemable_codes
WHERE kind = 'REFERRAL' AND owner_seller_id = $1
ORDER BY code`

type ReferralReadStore struct {
	db db.DBTX
}

func NewReferralReadStore(dbtx db.DBTX) *ReferralReadStore {
	return &ReferralReadStore{db: dbtx}
}

func (s *ReferralReadStore) ReferralCodesBySeller(ctx context.Context, sellerID uuid.UUID) ([]queries.ReferralCodeStat, error) {
	rows, err := s.db.Query(ctx, referralCodesBySellerSQL, sellerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list referral codes", err)
	}
	defer rows.Close()

	stats := make([]queries.ReferralCodeStat, 0)
	for rows.Next() {
		var (
			st      queries.ReferralCodeStat
			maxUses pgtype.Int8
		)
		if err := rows.Scan(&st.CodeID, &st.Code, &st.IsActive, &st.CurrentUses, &maxUses); err != nil {
			return nil, infra.WrapRepoErr("failed to scan referral code", err)
		}
		st.MaxUses = ptr.Int64FromPgtype(maxUses)
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate referral codes", err)
	}
	return stats, nil
}
