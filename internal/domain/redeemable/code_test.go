//go:build unit

package redeemable_test

import (
	"math"
	"testing"
	"time"

	"redemption-service/internal/domain/redeemable"
	"redemption-service/internal/pkg/ptr"
	"redemption-service/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name    string
	builder func() *builder.CodeBuilder
	errIs   error
}

func TestNewCode(t *testing.T) {
	t.Run("normalizes the code", func(t *testing.T) {
		actual, err := builder.NewCouponBuilder().WithCode("  save10 ").BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, "SAVE10", actual.Code())
		assert.Equal(t, redeemable.KindCoupon, actual.Kind())
	})

	runCases(t, []testCase{
		{
			name:    "valid coupon",
			builder: builder.NewCouponBuilder,
		},
		{
			name:    "valid referral",
			builder: builder.NewReferralBuilder,
		},
		{
			name:    "blank code",
			builder: func() *builder.CodeBuilder { return builder.NewCouponBuilder().WithCode("   ") },
			errIs:   redeemable.ErrEmptyCode,
		},
		{
			name: "unknown kind",
			builder: func() *builder.CodeBuilder {
				return builder.NewCouponBuilder().With(func(b *builder.CodeBuilder) { b.Kind = "GIFT" })
			},
			errIs: redeemable.ErrInvalidKind,
		},
		{
			name: "inverted window",
			builder: func() *builder.CodeBuilder {
				now := time.Now()
				return builder.NewCouponBuilder().WithWindow(ptr.Of(now), ptr.Of(now.Add(-time.Hour)))
			},
			errIs: redeemable.ErrInvalidWindow,
		},
		{
			name:    "zero global cap",
			builder: func() *builder.CodeBuilder { return builder.NewCouponBuilder().WithMaxUses(0) },
			errIs:   redeemable.ErrInvalidCap,
		},
		{
			name:    "zero per identity cap",
			builder: func() *builder.CodeBuilder { return builder.NewCouponBuilder().WithUserMaxUses(0) },
			errIs:   redeemable.ErrInvalidCap,
		},
		{
			name: "current uses above cap",
			builder: func() *builder.CodeBuilder {
				return builder.NewCouponBuilder().With(func(b *builder.CodeBuilder) { b.CurrentUses = 2 })
			},
			errIs: redeemable.ErrUsesExceedCap,
		},
		{
			name: "percentage above 100",
			builder: func() *builder.CodeBuilder {
				return builder.NewCouponBuilder().With(func(b *builder.CodeBuilder) { b.DiscountValue = 101 })
			},
			errIs: redeemable.ErrInvalidDiscountPercent,
		},
		{
			name: "negative fixed amount",
			builder: func() *builder.CodeBuilder {
				return builder.NewCouponBuilder().With(func(b *builder.CodeBuilder) {
					b.DiscountType = redeemable.DiscountFixedAmount
					b.DiscountValue = -1
				})
			},
			errIs: redeemable.ErrInvalidDiscountValue,
		},
		{
			name:    "referral without seller",
			builder: func() *builder.CodeBuilder { return builder.NewReferralBuilder().WithSeller(uuid.Nil) },
			errIs:   redeemable.ErrMissingReferralRule,
		},
	})
}

func TestCode_Rules(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("window is inclusive", func(t *testing.T) {
		code := builder.NewCouponBuilder().WithWindow(ptr.Of(now), ptr.Of(now.Add(time.Hour))).MustBuild()

		assert.True(t, code.InWindow(now))
		assert.True(t, code.InWindow(now.Add(time.Hour)))
		assert.False(t, code.InWindow(now.Add(-time.Nanosecond)))
		assert.False(t, code.InWindow(now.Add(time.Hour+time.Nanosecond)))
	})

	t.Run("capacity counts confirmed and reserved", func(t *testing.T) {
		code := builder.NewCouponBuilder().WithMaxUses(3).With(func(b *builder.CodeBuilder) { b.CurrentUses = 1 }).MustBuild()

		assert.True(t, code.HasCapacity(1))
		assert.False(t, code.HasCapacity(2))
	})

	t.Run("unbounded caps", func(t *testing.T) {
		code := builder.NewReferralBuilder().Unlimited().MustBuild()

		assert.True(t, code.HasCapacity(1_000_000))
		assert.True(t, code.AllowsIdentity(1_000_000))
	})

	t.Run("seller id only for referrals", func(t *testing.T) {
		seller := uuid.New()
		assert.Equal(t, seller, builder.NewReferralBuilder().WithSeller(seller).MustBuild().SellerID())
		assert.Equal(t, uuid.Nil, builder.NewCouponBuilder().MustBuild().SellerID())
	})
}

func TestCouponRule_Discount(t *testing.T) {
	testCases := []struct {
		name        string
		rule        redeemable.CouponRule
		orderAmount int64
		expected    int64
	}{
		{
			name:        "percentage capped by max amount",
			rule:        redeemable.CouponRule{DiscountType: redeemable.DiscountPercentage, DiscountValue: 10, MaxAmount: ptr.Of(int64(5000))},
			orderAmount: 100000,
			expected:    5000,
		},
		{
			name:        "percentage floors",
			rule:        redeemable.CouponRule{DiscountType: redeemable.DiscountPercentage, DiscountValue: 15},
			orderAmount: 999,
			expected:    149,
		},
		{
			name:        "fixed amount below order",
			rule:        redeemable.CouponRule{DiscountType: redeemable.DiscountFixedAmount, DiscountValue: 500},
			orderAmount: 2000,
			expected:    500,
		},
		{
			name:        "fixed amount limited to order",
			rule:        redeemable.CouponRule{DiscountType: redeemable.DiscountFixedAmount, DiscountValue: 5000},
			orderAmount: 1200,
			expected:    1200,
		},
		{
			name:        "fixed amount capped by max amount",
			rule:        redeemable.CouponRule{DiscountType: redeemable.DiscountFixedAmount, DiscountValue: 5000, MaxAmount: ptr.Of(int64(3000))},
			orderAmount: 10000,
			expected:    3000,
		},
		{
			name:        "percentage of a very large order",
			rule:        redeemable.CouponRule{DiscountType: redeemable.DiscountPercentage, DiscountValue: 10},
			orderAmount: 1 << 60,
			expected:    115292150460684697,
		},
		{
			name:        "percentage of the largest order",
			rule:        redeemable.CouponRule{DiscountType: redeemable.DiscountPercentage, DiscountValue: 99},
			orderAmount: math.MaxInt64,
			expected:    9131138316486228048,
		},
		{
			name:        "full percentage of the largest order",
			rule:        redeemable.CouponRule{DiscountType: redeemable.DiscountPercentage, DiscountValue: 100},
			orderAmount: math.MaxInt64,
			expected:    math.MaxInt64,
		},
		{
			name:        "zero order",
			rule:        redeemable.CouponRule{DiscountType: redeemable.DiscountPercentage, DiscountValue: 50},
			orderAmount: 0,
			expected:    0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.rule.Discount(tc.orderAmount))
		})
	}
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "WELCOME10", redeemable.NormalizeCode("\twelcome10\n"))
	assert.Equal(t, "", redeemable.NormalizeCode("   "))
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := c.builder().BuildDomain()

			if c.errIs == nil {
				require.NoError(t, err)
				require.NotNil(t, actual)
			} else {
				require.Nil(t, actual)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
