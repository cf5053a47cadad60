package queries

import (
	"context"
	"time"

	"redemption-service/internal/domain/eligibility"
	"redemption-service/internal/domain/redeemable"

	"github.com/google/uuid"
)

// CodeView represents read-optimized redeemable code data
type CodeView struct {
	ID          uuid.UUID  `json:"id"`
	Code        string     `json:"code"`
	Kind        string     `json:"kind"`
	IsActive    bool       `json:"is_active"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	MaxUses     *int64     `json:"max_uses,omitempty"`
	UserMaxUses *int64     `json:"user_max_uses,omitempty"`
	CurrentUses int64      `json:"current_uses"`
	// coupon only
	DiscountType  *string `json:"discount_type,omitempty"`
	DiscountValue *int64  `json:"discount_value,omitempty"`
	MinAmount     *int64  `json:"min_amount,omitempty"`
	MaxAmount     *int64  `json:"max_amount,omitempty"`
	// referral only
	OwnerSellerID *uuid.UUID `json:"owner_seller_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func CodeViewFromDomain(c *redeemable.Code) *CodeView {
	v := &CodeView{
		ID:          c.ID(),
		Code:        c.Code(),
		Kind:        c.Kind().String(),
		IsActive:    c.IsActive(),
		StartsAt:    c.StartsAt(),
		EndsAt:      c.EndsAt(),
		MaxUses:     c.MaxUses(),
		UserMaxUses: c.UserMaxUses(),
		CurrentUses: c.CurrentUses(),
		CreatedAt:   c.CreatedAt(),
	}
	if rule := c.Coupon(); rule != nil {
		dt := string(rule.DiscountType)
		dv, mn := rule.DiscountValue, rule.MinAmount
		v.DiscountType = &dt
		v.DiscountValue = &dv
		v.MinAmount = &mn
		v.MaxAmount = rule.MaxAmount
	}
	if rule := c.Referral(); rule != nil {
		seller := rule.OwnerSellerID
		v.OwnerSellerID = &seller
	}
	return v
}

// Domain rebuilds the validated entity from a (possibly cached) view.
func (v *CodeView) Domain() (*redeemable.Code, error) {
	p := redeemable.Params{
		ID:          v.ID,
		Code:        v.Code,
		Kind:        redeemable.Kind(v.Kind),
		IsActive:    v.IsActive,
		StartsAt:    v.StartsAt,
		EndsAt:      v.EndsAt,
		MaxUses:     v.MaxUses,
		UserMaxUses: v.UserMaxUses,
		CurrentUses: v.CurrentUses,
		CreatedAt:   v.CreatedAt,
	}
	if v.DiscountType != nil {
		rule := &redeemable.CouponRule{
			DiscountType: redeemable.DiscountType(*v.DiscountType),
			MaxAmount:    v.MaxAmount,
		}
		if v.DiscountValue != nil {
			rule.DiscountValue = *v.DiscountValue
		}
		if v.MinAmount != nil {
			rule.MinAmount = *v.MinAmount
		}
		p.Coupon = rule
	}
	if v.OwnerSellerID != nil {
		p.Referral = &redeemable.ReferralRule{OwnerSellerID: *v.OwnerSellerID}
	}
	return redeemable.NewCode(p)
}

// ReservationView represents one ledger entry with its code
type ReservationView struct {
	ID            uuid.UUID  `json:"id"`
	CodeID        uuid.UUID  `json:"code_id"`
	Code          string     `json:"code"`
	Kind          string     `json:"kind"`
	IdentityID    uuid.UUID  `json:"identity_id"`
	ContextID     string     `json:"context_id"`
	Status        string     `json:"status"`
	AmountApplied int64      `json:"amount_applied"`
	ReservedAt    time.Time  `json:"reserved_at"`
	DecidedAt     *time.Time `json:"decided_at,omitempty"`
	ExpiresAt     time.Time  `json:"expires_at"`
}

type ReferralCodeStat struct {
	CodeID      uuid.UUID `json:"code_id"`
	Code        string    `json:"code"`
	IsActive    bool      `json:"is_active"`
	CurrentUses int64     `json:"current_uses"`
	MaxUses     *int64    `json:"max_uses,omitempty"`
}

type ReferralStats struct {
	SellerID          uuid.UUID          `json:"seller_id"`
	TotalReferralUses int64              `json:"total_referral_uses"`
	Codes             []ReferralCodeStat `json:"codes"`
}

type CodeReadStore interface {
	FindByCode(ctx context.Context, code string) (*CodeView, error)
	Usage(ctx context.Context, codeID, identityID uuid.UUID) (eligibility.Usage, error)
}

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
}

type ReferralReadStore interface {
	ReferralCodesBySeller(ctx context.Context, sellerID uuid.UUID) ([]ReferralCodeStat, error)
}

// CodeCache holds lookups for pre-flight reads. A miss is (nil, false, nil).
type CodeCache interface {
	GetCode(ctx context.Context, code string) (*CodeView, bool, error)
	SetCode(ctx context.Context, v *CodeView) error
}

// StatsCache holds seller aggregates until the next referral confirm.
type StatsCache interface {
	GetStats(ctx context.Context, sellerID uuid.UUID) (*ReferralStats, bool, error)
	SetStats(ctx context.Context, stats *ReferralStats) error
}
