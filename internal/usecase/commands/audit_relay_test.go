//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"redemption-service/internal/domain/redemption"
	"redemption-service/internal/infra/memstore"
	"redemption-service/internal/pkg/clock"
	"redemption-service/internal/usecase/commands"
	"redemption-service/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSink struct {
	err    error
	events []redemption.AuditEvent
}

func (f *fakeSink) Publish(_ context.Context, events []redemption.AuditEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, events...)
	return nil
}

func TestAuditRelay_Drain(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*memstore.Store, *clock.MockClock) {
		t.Helper()
		store := memstore.New()
		clk := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
		require.NoError(t, store.CreateCode(ctx, builder.NewReferralBuilder().MustBuild()))
		coordinator := commands.NewCoordinator(commands.CoordinatorDeps{UoW: store, Clock: clk})
		reserveReferrals(t, coordinator, 3)
		return store, clk
	}

	t.Run("publishes in batches and marks rows", func(t *testing.T) {
		store, clk := setup(t)
		sink := &fakeSink{}
		relay := commands.NewAuditRelay(store, sink, clk, commands.AuditRelayConfig{BatchSize: 2}, nil)

		first, err := relay.Drain(ctx)
		require.NoError(t, err)
		second, err := relay.Drain(ctx)
		require.NoError(t, err)
		third, err := relay.Drain(ctx)
		require.NoError(t, err)

		assert.Equal(t, commands.RelayReport{Published: 2}, first)
		assert.Equal(t, commands.RelayReport{Published: 1}, second)
		assert.Equal(t, commands.RelayReport{}, third)
		assert.Len(t, sink.events, 3)
		assert.Len(t, store.Published(), 3)
		assert.Empty(t, store.Pending())
	})

	t.Run("sink failure keeps rows pending", func(t *testing.T) {
		store, clk := setup(t)
		sink := &fakeSink{err: errors.New("broker down")}
		relay := commands.NewAuditRelay(store, sink, clk, commands.AuditRelayConfig{}, nil)

		report, err := relay.Drain(ctx)

		require.NoError(t, err)
		assert.Equal(t, commands.RelayReport{Failed: 3}, report)
		assert.Len(t, store.Pending(), 3)

		sink.err = nil
		report, err = relay.Drain(ctx)
		require.NoError(t, err)
		assert.Equal(t, commands.RelayReport{Published: 3}, report)
	})
}

func reserveReferrals(t *testing.T, coordinator *commands.Coordinator, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		res, err := coordinator.Reserve(context.Background(), commands.ReserveInput{
			Code:       "WELCOME10",
			IdentityID: uuid.New(),
		})
		require.NoError(t, err)
		require.True(t, res.Verdict.Eligible)
	}
}
