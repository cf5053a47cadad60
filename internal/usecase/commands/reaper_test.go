//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"redemption-service/internal/domain/redemption"
	"redemption-service/internal/infra/memstore"
	"redemption-service/internal/pkg/clock"
	"redemption-service/internal/pkg/ptr"
	"redemption-service/internal/usecase/commands"
	"redemption-service/internal/usecase/shared"
	"redemption-service/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// listedReads reports a fixed set of stale keys regardless of their status.
type listedReads struct {
	shared.CommandReads
	keys []shared.StaleKey
}

func (r listedReads) StaleReservations(_ context.Context, _ time.Time, after *shared.StaleKey, _ int) ([]shared.StaleKey, error) {
	if after != nil {
		return nil, nil
	}
	return r.keys, nil
}

type storeWithReads struct {
	*memstore.Store
	reads shared.CommandReads
}

func (s storeWithReads) Reads() shared.CommandReads {
	return s.reads
}

func newReaperFixture(t *testing.T) (*memstore.Store, *clock.MockClock, *commands.Coordinator) {
	t.Helper()
	store := memstore.New()
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	coordinator := commands.NewCoordinator(commands.CoordinatorDeps{UoW: store, Clock: clk, TTL: 15 * time.Minute})
	require.NoError(t, store.CreateCode(context.Background(), builder.NewCouponBuilder().Unlimited().MustBuild()))
	return store, clk, coordinator
}

func reserveN(t *testing.T, coordinator *commands.Coordinator, n int) []uuid.UUID {
	t.Helper()
	ids := make([]uuid.UUID, 0, n)
	for i := 0; i < n; i++ {
		res, err := coordinator.Reserve(context.Background(), commands.ReserveInput{
			Code:        "SAVE10",
			IdentityID:  uuid.New(),
			OrderAmount: ptr.Of(int64(20000)),
		})
		require.NoError(t, err)
		require.True(t, res.Verdict.Eligible)
		ids = append(ids, res.Reservation.ID)
	}
	return ids
}

func TestReaper_Sweep(t *testing.T) {
	ctx := context.Background()

	t.Run("expires only reservations past the ttl across pages", func(t *testing.T) {
		store, clk, coordinator := newReaperFixture(t)
		old := reserveN(t, coordinator, 5)
		clk.Add(10 * time.Minute)
		fresh := reserveN(t, coordinator, 2)
		clk.Add(6 * time.Minute)

		reaper := commands.NewReaper(store, coordinator, clk, commands.ReaperConfig{BatchSize: 2, Concurrency: 3}, nil)
		report, err := reaper.Sweep(ctx)

		require.NoError(t, err)
		assert.Equal(t, commands.SweepReport{Scanned: 5, Expired: 5}, report)
		for _, id := range old {
			e, err := store.EntryByID(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, redemption.StatusExpired, e.Status())
		}
		for _, id := range fresh {
			e, err := store.EntryByID(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, redemption.StatusReserved, e.Status())
		}
	})

	t.Run("second sweep finds nothing", func(t *testing.T) {
		store, clk, coordinator := newReaperFixture(t)
		reserveN(t, coordinator, 3)
		clk.Add(16 * time.Minute)
		reaper := commands.NewReaper(store, coordinator, clk, commands.ReaperConfig{}, nil)

		_, err := reaper.Sweep(ctx)
		require.NoError(t, err)
		report, err := reaper.Sweep(ctx)

		require.NoError(t, err)
		assert.Equal(t, commands.SweepReport{}, report)
	})

	t.Run("entries decided first are skipped and unknown ones fail", func(t *testing.T) {
		store, clk, coordinator := newReaperFixture(t)
		ids := reserveN(t, coordinator, 2)
		clk.Add(16 * time.Minute)
		_, err := coordinator.Confirm(ctx, ids[0])
		require.NoError(t, err)

		reads := listedReads{
			CommandReads: store.Reads(),
			keys: []shared.StaleKey{
				{ReservedAt: clk.Now().Add(-16 * time.Minute), ID: ids[0]},
				{ReservedAt: clk.Now().Add(-16 * time.Minute), ID: ids[1]},
				{ReservedAt: clk.Now().Add(-16 * time.Minute), ID: uuid.New()},
			},
		}
		reaper := commands.NewReaper(storeWithReads{Store: store, reads: reads}, coordinator, clk, commands.ReaperConfig{BatchSize: 10}, nil)

		report, err := reaper.Sweep(ctx)

		require.NoError(t, err)
		assert.Equal(t, commands.SweepReport{Scanned: 3, Expired: 1, Skipped: 1, Failed: 1}, report)
	})

	t.Run("cancelled context stops between pages", func(t *testing.T) {
		store, clk, coordinator := newReaperFixture(t)
		reserveN(t, coordinator, 4)
		clk.Add(16 * time.Minute)
		reaper := commands.NewReaper(store, coordinator, clk, commands.ReaperConfig{BatchSize: 2}, nil)

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := reaper.Sweep(cctx)

		assert.ErrorIs(t, err, context.Canceled)
	})
}
