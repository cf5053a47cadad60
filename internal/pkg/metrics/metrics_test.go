//go:build unit

package metrics_test

import (
	"testing"

	"redemption-service/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheus(t *testing.T) {
	p := metrics.NewPrometheus()

	p.ReservationOutcome("COUPON", "reserved")
	p.ReservationOutcome("COUPON", "GLOBALLY_EXHAUSTED")
	p.ReservationOutcome("COUPON", "reserved")
	p.SweepResult(3, 1, 0)

	families, err := p.Registry().Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["redemption_reservations_total"])
	assert.True(t, names["redemption_reaper_entries_total"])

	count, err := testutil.GatherAndCount(p.Registry(), "redemption_reservations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
