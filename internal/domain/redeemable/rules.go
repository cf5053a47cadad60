package redeemable

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidDiscountType    = errors.New("discount type must be PERCENTAGE or FIXED_AMOUNT")
	ErrInvalidDiscountValue   = errors.New("discount value cannot be negative")
	ErrInvalidDiscountPercent = errors.New("percentage discount must be between 0 and 100")
	ErrInvalidAmountBounds    = errors.New("min and max amounts cannot be negative")
)

type DiscountType string

const (
	DiscountPercentage  DiscountType = "PERCENTAGE"
	DiscountFixedAmount DiscountType = "FIXED_AMOUNT"
)

// CouponRule amounts are integer minor units. MaxAmount caps the computed
// discount, not the order subtotal.
type CouponRule struct {
	DiscountType  DiscountType
	DiscountValue int64
	MinAmount     int64
	MaxAmount     *int64
}

func (r CouponRule) validate() error {
	switch r.DiscountType {
	case DiscountPercentage:
		if r.DiscountValue < 0 || r.DiscountValue > 100 {
			return ErrInvalidDiscountPercent
		}
	case DiscountFixedAmount:
		if r.DiscountValue < 0 {
			return ErrInvalidDiscountValue
		}
	default:
		return ErrInvalidDiscountType
	}
	if r.MinAmount < 0 || (r.MaxAmount != nil && *r.MaxAmount < 0) {
		return ErrInvalidAmountBounds
	}
	return nil
}

// Discount rounds down, never up.
func (r CouponRule) Discount(orderAmount int64) int64 {
	if orderAmount <= 0 {
		return 0
	}

	var amount int64
	switch r.DiscountType {
	case DiscountPercentage:
		// split so the product stays in range for any order amount
		amount = orderAmount/100*r.DiscountValue + orderAmount%100*r.DiscountValue/100
	case DiscountFixedAmount:
		amount = min(r.DiscountValue, orderAmount)
	}

	if r.MaxAmount != nil {
		amount = min(amount, *r.MaxAmount)
	}
	return amount
}

type ReferralRule struct {
	OwnerSellerID uuid.UUID
}
