//go:build unit

package memstore_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"redemption-service/internal/domain/eligibility"
	"redemption-service/internal/domain/redeemable"
	"redemption-service/internal/domain/redemption"
	"redemption-service/internal/infra/memstore"
	"redemption-service/internal/pkg/errs"
	"redemption-service/internal/usecase/shared"
	"redemption-service/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func insertEntry(t *testing.T, store *memstore.Store, codeStr string, identity uuid.UUID, at time.Time) *redemption.Entry {
	t.Helper()
	ctx := context.Background()
	var entry *redemption.Entry
	err := store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		code, err := tx.Codes().LockByCode(ctx, codeStr)
		if err != nil {
			return err
		}
		entry, err = redemption.NewReservation(uuid.New(), code, identity, "ctx", 0, at)
		if err != nil {
			return err
		}
		return tx.Ledger().Insert(ctx, entry)
	})
	require.NoError(t, err)
	return entry
}

func TestStore_Within(t *testing.T) {
	ctx := context.Background()

	t.Run("failed work leaves no trace", func(t *testing.T) {
		store := memstore.New()
		code := builder.NewCouponBuilder().Unlimited().MustBuild()
		require.NoError(t, store.CreateCode(ctx, code))

		boom := errors.New("boom")
		err := store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			entry, err := redemption.NewReservation(uuid.New(), code, uuid.New(), "ctx", 0, t0)
			require.NoError(t, err)
			require.NoError(t, tx.Ledger().Insert(ctx, entry))
			require.NoError(t, tx.Codes().IncrementConfirmed(ctx, code.ID()))
			return boom
		})

		assert.ErrorIs(t, err, boom)
		usage, err := store.Usage(ctx, code.ID(), uuid.New())
		require.NoError(t, err)
		assert.Equal(t, int64(0), usage.ReservedCount)
		reloaded, err := store.CodeByCode(ctx, "SAVE10")
		require.NoError(t, err)
		assert.Equal(t, int64(0), reloaded.CurrentUses())
	})

	t.Run("cap is enforced on increment", func(t *testing.T) {
		store := memstore.New()
		code := builder.NewCouponBuilder().With(func(b *builder.CodeBuilder) { b.CurrentUses = 1 }).MustBuild()
		require.NoError(t, store.CreateCode(ctx, code))

		err := store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Codes().IncrementConfirmed(ctx, code.ID())
		})

		assert.True(t, errs.Is(err, errs.ErrCapInvariant))
	})

	t.Run("duplicate codes are rejected", func(t *testing.T) {
		store := memstore.New()
		require.NoError(t, store.CreateCode(ctx, builder.NewCouponBuilder().MustBuild()))

		assert.Error(t, store.CreateCode(ctx, builder.NewCouponBuilder().MustBuild()))
	})
}

func TestStore_Usage(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	welcome := builder.NewReferralBuilder().WithCode("WELCOME10").MustBuild()
	other := builder.NewReferralBuilder().WithCode("OTHER5").MustBuild()
	require.NoError(t, store.CreateCode(ctx, welcome))
	require.NoError(t, store.CreateCode(ctx, other))

	identity := uuid.New()
	insertEntry(t, store, "WELCOME10", identity, t0)
	insertEntry(t, store, "WELCOME10", uuid.New(), t0)

	onWelcome, err := store.Usage(ctx, welcome.ID(), identity)
	require.NoError(t, err)
	assert.Equal(t, eligibility.Usage{ReservedCount: 2, IdentityActive: 1, IdentityReferred: true}, onWelcome)

	onOther, err := store.Usage(ctx, other.ID(), identity)
	require.NoError(t, err)
	assert.Equal(t, eligibility.Usage{IdentityReferred: true}, onOther)

	err = store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		code, err := tx.Codes().LockByCode(ctx, "OTHER5")
		require.NoError(t, err)
		entry, err := redemption.NewReservation(uuid.New(), code, identity, "ctx", 0, t0)
		require.NoError(t, err)
		return tx.Ledger().Insert(ctx, entry)
	})
	assert.True(t, errs.Is(err, errs.ErrIdentityAttributed))
}

func TestStore_StaleReservations(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	require.NoError(t, store.CreateCode(ctx, builder.NewCouponBuilder().Unlimited().MustBuild()))

	var expected []shared.StaleKey
	for i := 0; i < 5; i++ {
		e := insertEntry(t, store, "SAVE10", uuid.New(), t0.Add(time.Duration(i)*time.Minute))
		expected = append(expected, shared.StaleKey{ReservedAt: e.ReservedAt(), ID: e.ID()})
	}
	insertEntry(t, store, "SAVE10", uuid.New(), t0.Add(time.Hour))
	cutoff := t0.Add(30 * time.Minute)

	var got []shared.StaleKey
	var after *shared.StaleKey
	for {
		page, err := store.StaleReservations(ctx, cutoff, after, 2)
		require.NoError(t, err)
		got = append(got, page...)
		if len(page) < 2 {
			break
		}
		last := page[len(page)-1]
		after = &last
	}

	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("stale keys mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_ReferralCodesBySeller(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	seller := uuid.New()
	require.NoError(t, store.CreateCode(ctx, builder.NewReferralBuilder().WithCode("ZETA").WithSeller(seller).MustBuild()))
	require.NoError(t, store.CreateCode(ctx, builder.NewReferralBuilder().WithCode("ALPHA").WithSeller(seller).MustBuild()))
	require.NoError(t, store.CreateCode(ctx, builder.NewReferralBuilder().WithCode("ELSEWHERE").MustBuild()))

	stats, err := store.ReferralCodesBySeller(ctx, seller)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "ALPHA", stats[0].Code)
	assert.Equal(t, "ZETA", stats[1].Code)

	none, err := store.ReferralCodesBySeller(ctx, uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestStore_SeedFromFile(t *testing.T) {
	ctx := context.Background()
	seller := uuid.New()
	path := filepath.Join(t.TempDir(), "codes.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"code":" save10 ","kind":"COUPON","isActive":true,"maxUses":1,"discountType":"PERCENTAGE","discountValue":10,"minAmount":10000,"maxAmount":5000},
		{"code":"WELCOME10","kind":"REFERRAL","isActive":true,"ownerSellerId":"`+seller.String()+`"}
	]`), 0o600))

	t.Run("loads every code", func(t *testing.T) {
		store := memstore.New()

		n, err := store.SeedFromFile(ctx, path, t0)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		save10, err := store.CodeByCode(ctx, "SAVE10")
		require.NoError(t, err)
		assert.Equal(t, int64(5000), save10.Coupon().Discount(100000))

		stats, err := store.ReferralCodesBySeller(ctx, seller)
		require.NoError(t, err)
		require.Len(t, stats, 1)
		assert.Equal(t, "WELCOME10", stats[0].Code)
	})

	t.Run("invalid entries are reported", func(t *testing.T) {
		store := memstore.New()

		err := store.Seed(ctx, []memstore.SeedCode{{Code: "BROKEN", Kind: "COUPON", DiscountType: "PERCENTAGE", DiscountValue: 150}}, t0)

		assert.ErrorIs(t, err, redeemable.ErrInvalidDiscountPercent)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := memstore.New().SeedFromFile(ctx, filepath.Join(t.TempDir(), "absent.json"), t0)
		assert.Error(t, err)
	})
}
