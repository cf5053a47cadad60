package queries

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type AttributionQueries interface {
	// TotalReferralUses sums current uses over the seller's referral codes.
	TotalReferralUses(ctx context.Context, sellerID uuid.UUID) (int64, error)
	ReferralStats(ctx context.Context, sellerID uuid.UUID) (*ReferralStats, error)
}

type attributionQueriesImpl struct {
	store ReferralReadStore
	cache StatsCache
}

func NewAttributionQueries(store ReferralReadStore, cache StatsCache) AttributionQueries {
	return &attributionQueriesImpl{store: store, cache: cache}
}

func (q *attributionQueriesImpl) TotalReferralUses(ctx context.Context, sellerID uuid.UUID) (int64, error) {
	stats, err := q.ReferralStats(ctx, sellerID)
	if err != nil {
		return 0, err
	}
	return stats.TotalReferralUses, nil
}

// A seller without referral codes has a zero total, not a missing one.
func (q *attributionQueriesImpl) ReferralStats(ctx context.Context, sellerID uuid.UUID) (*ReferralStats, error) {
	if q.cache != nil {
		if stats, ok, err := q.cache.GetStats(ctx, sellerID); err != nil {
			slog.WarnContext(ctx, "stats cache read failed", "seller_id", sellerID, "error", err.Error())
		} else if ok {
			return stats, nil
		}
	}

	codes, err := q.store.ReferralCodesBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	stats := &ReferralStats{SellerID: sellerID, Codes: codes}
	if stats.Codes == nil {
		stats.Codes = []ReferralCodeStat{}
	}
	for _, c := range codes {
		stats.TotalReferralUses += c.CurrentUses
	}

	if q.cache != nil {
		if err := q.cache.SetStats(ctx, stats); err != nil {
			slog.WarnContext(ctx, "stats cache write failed", "seller_id", sellerID, "error", err.Error())
		}
	}
	return stats, nil
}
