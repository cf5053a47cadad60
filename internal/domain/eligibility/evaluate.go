package eligibility

import (
	"time"

	"redemption-service/internal/domain/redeemable"

	"github.com/google/uuid"
)

// Usage is the live ledger state the rules are checked against. Inside a
// reservation it must be read under the code row lock.
type Usage struct {
	// RESERVED entries on the code, stale or not.
	ReservedCount int64
	// RESERVED or CONFIRMED entries of the identity on the code.
	IdentityActive int64
	// identity holds a RESERVED or CONFIRMED entry on any referral code
	IdentityReferred bool
}

type Context struct {
	IdentityID  uuid.UUID
	OrderAmount *int64
	Now         time.Time
}

// Evaluate applies the rules in order and returns the first failure.
// A nil code yields NOT_FOUND. Coupons evaluated without an order amount are
// treated as a zero order.
func Evaluate(code *redeemable.Code, usage Usage, ctx Context) Verdict {
	if code == nil {
		return Ineligible(ReasonNotFound)
	}
	if !code.IsActive() {
		return Ineligible(ReasonInactive)
	}
	if !code.InWindow(ctx.Now) {
		return Ineligible(ReasonOutOfWindow)
	}

	var orderAmount int64
	if ctx.OrderAmount != nil {
		orderAmount = *ctx.OrderAmount
	}

	if code.Kind() == redeemable.KindCoupon && orderAmount < code.Coupon().MinAmount {
		return Ineligible(ReasonBelowMinimum)
	}
	if !code.HasCapacity(usage.ReservedCount) {
		return Ineligible(ReasonGloballyExhausted)
	}
	if !code.AllowsIdentity(usage.IdentityActive) {
		return Ineligible(ReasonUserExhausted)
	}
	if code.Kind() == redeemable.KindReferral && usage.IdentityReferred {
		return Ineligible(ReasonAlreadyAttributed)
	}

	if code.Kind() == redeemable.KindCoupon {
		return Eligible(code.Coupon().Discount(orderAmount))
	}
	return Eligible(0)
}
