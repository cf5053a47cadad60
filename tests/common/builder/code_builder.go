//go:build unit || e2e

package builder

import (
	"time"

	"redemption-service/internal/domain/redeemable"
	"redemption-service/internal/pkg/ptr"

	"github.com/google/uuid"
)

type CodeBuilder struct {
	ID          uuid.UUID
	Code        string
	Kind        redeemable.Kind
	IsActive    bool
	StartsAt    *time.Time
	EndsAt      *time.Time
	MaxUses     *int64
	UserMaxUses *int64
	CurrentUses int64

	DiscountType  redeemable.DiscountType
	DiscountValue int64
	MinAmount     int64
	MaxAmount     *int64

	OwnerSellerID uuid.UUID
	CreatedAt     time.Time
}

// NewCouponBuilder defaults to the SAVE10 coupon: 10% off orders of at least
// 10000, discount capped at 5000, single use.
func NewCouponBuilder() *CodeBuilder {
	return &CodeBuilder{
		ID:            uuid.New(),
		Code:          "SAVE10",
		Kind:          redeemable.KindCoupon,
		IsActive:      true,
		MaxUses:       ptr.Of(int64(1)),
		DiscountType:  redeemable.DiscountPercentage,
		DiscountValue: 10,
		MinAmount:     10000,
		MaxAmount:     ptr.Of(int64(5000)),
		CreatedAt:     time.Now(),
	}
}

// NewReferralBuilder defaults to an unlimited referral code.
func NewReferralBuilder() *CodeBuilder {
	return &CodeBuilder{
		ID:            uuid.New(),
		Code:          "WELCOME10",
		Kind:          redeemable.KindReferral,
		IsActive:      true,
		OwnerSellerID: uuid.New(),
		CreatedAt:     time.Now(),
	}
}

func (b *CodeBuilder) With(mutate func(*CodeBuilder)) *CodeBuilder {
	mutate(b)
	return b
}

func (b *CodeBuilder) WithCode(code string) *CodeBuilder {
	b.Code = code
	return b
}

func (b *CodeBuilder) WithMaxUses(n int64) *CodeBuilder {
	b.MaxUses = &n
	return b
}

func (b *CodeBuilder) WithUserMaxUses(n int64) *CodeBuilder {
	b.UserMaxUses = &n
	return b
}

func (b *CodeBuilder) Unlimited() *CodeBuilder {
	b.MaxUses = nil
	b.UserMaxUses = nil
	return b
}

func (b *CodeBuilder) WithWindow(startsAt, endsAt *time.Time) *CodeBuilder {
	b.StartsAt = startsAt
	b.EndsAt = endsAt
	return b
}

func (b *CodeBuilder) WithSeller(sellerID uuid.UUID) *CodeBuilder {
	b.OwnerSellerID = sellerID
	return b
}

func (b *CodeBuilder) Inactive() *CodeBuilder {
	b.IsActive = false
	return b
}

func (b *CodeBuilder) BuildParams() redeemable.Params {
	p := redeemable.Params{
		ID:          b.ID,
		Code:        b.Code,
		Kind:        b.Kind,
		IsActive:    b.IsActive,
		StartsAt:    b.StartsAt,
		EndsAt:      b.EndsAt,
		MaxUses:     b.MaxUses,
		UserMaxUses: b.UserMaxUses,
		CurrentUses: b.CurrentUses,
		CreatedAt:   b.CreatedAt,
	}
	switch b.Kind {
	case redeemable.KindCoupon:
		p.Coupon = &redeemable.CouponRule{
			DiscountType:  b.DiscountType,
			DiscountValue: b.DiscountValue,
			MinAmount:     b.MinAmount,
			MaxAmount:     b.MaxAmount,
		}
	case redeemable.KindReferral:
		p.Referral = &redeemable.ReferralRule{OwnerSellerID: b.OwnerSellerID}
	}
	return p
}

func (b *CodeBuilder) BuildDomain() (*redeemable.Code, error) {
	return redeemable.NewCode(b.BuildParams())
}

// MustBuild panics on invalid params; only for fixtures known to be valid.
func (b *CodeBuilder) MustBuild() *redeemable.Code {
	c, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return c
}
