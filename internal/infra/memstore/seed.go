package memstore

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"redemption-service/internal/domain/redeemable"
	"redemption-service/internal/pkg/errs"

	"github.com/google/uuid"
)

// SeedCode is one entry of a seed file. Amounts are integer minor units.
type SeedCode struct {
	ID            uuid.UUID  `json:"id"`
	Code          string     `json:"code"`
	Kind          string     `json:"kind"`
	IsActive      bool       `json:"isActive"`
	StartsAt      *time.Time `json:"startsAt"`
	EndsAt        *time.Time `json:"endsAt"`
	MaxUses       *int64     `json:"maxUses"`
	UserMaxUses   *int64     `json:"userMaxUses"`
	DiscountType  string     `json:"discountType"`
	DiscountValue int64      `json:"discountValue"`
	MinAmount     int64      `json:"minAmount"`
	MaxAmount     *int64     `json:"maxAmount"`
	OwnerSellerID *uuid.UUID `json:"ownerSellerId"`
}

func (s SeedCode) params(now time.Time) redeemable.Params {
	p := redeemable.Params{
		ID:          s.ID,
		Code:        s.Code,
		Kind:        redeemable.Kind(s.Kind),
		IsActive:    s.IsActive,
		StartsAt:    s.StartsAt,
		EndsAt:      s.EndsAt,
		MaxUses:     s.MaxUses,
		UserMaxUses: s.UserMaxUses,
		CreatedAt:   now,
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	switch p.Kind {
	case redeemable.KindCoupon:
		p.Coupon = &redeemable.CouponRule{
			DiscountType:  redeemable.DiscountType(s.DiscountType),
			DiscountValue: s.DiscountValue,
			MinAmount:     s.MinAmount,
			MaxAmount:     s.MaxAmount,
		}
	case redeemable.KindReferral:
		if s.OwnerSellerID != nil {
			p.Referral = &redeemable.ReferralRule{OwnerSellerID: *s.OwnerSellerID}
		}
	}
	return p
}

// Seed provisions every code in order and stops at the first invalid one.
func (s *Store) Seed(ctx context.Context, codes []SeedCode, now time.Time) error {
	for i, sc := range codes {
		code, err := redeemable.NewCode(sc.params(now))
		if err != nil {
			return errs.Wrapf(err, "seed entry %d (%s)", i, sc.Code)
		}
		if err := s.CreateCode(ctx, code); err != nil {
			return err
		}
	}
	return nil
}

// SeedFromFile reads a JSON array of SeedCode.
func (s *Store) SeedFromFile(ctx context.Context, path string, now time.Time) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, errs.Wrapf(err, "read seed file %s", path)
	}
	var codes []SeedCode
	if err := json.Unmarshal(raw, &codes); err != nil {
		return 0, errs.Wrapf(err, "decode seed file %s", path)
	}
	if err := s.Seed(ctx, codes, now); err != nil {
		return 0, err
	}
	return len(codes), nil
}
