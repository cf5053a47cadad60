package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type RedemptionQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
}

type redemptionQueriesImpl struct {
	store ReservationReadStore
	ttl   time.Duration
}

func NewRedemptionQueries(store ReservationReadStore, ttl time.Duration) RedemptionQueries {
	return &redemptionQueriesImpl{store: store, ttl: ttl}
}

func (q *redemptionQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	v, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v.ExpiresAt = v.ReservedAt.Add(q.ttl)
	return v, nil
}
