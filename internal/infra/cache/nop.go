package cache

import (
	"context"

	"redemption-service/internal/usecase/queries"

	"github.com/google/uuid"
)

// Nop never hits. It stands in when no Redis address is configured.
type Nop struct{}

func (Nop) GetCode(context.Context, string) (*queries.CodeView, bool, error) { return nil, false, nil }
func (Nop) SetCode(context.Context, *queries.CodeView) error                 { return nil }
func (Nop) InvalidateCode(context.Context, string) error                     { return nil }

func (Nop) GetStats(context.Context, uuid.UUID) (*queries.ReferralStats, bool, error) {
	return nil, false, nil
}
func (Nop) SetStats(context.Context, *queries.ReferralStats) error { return nil }
func (Nop) InvalidateSeller(context.Context, uuid.UUID) error      { return nil }
