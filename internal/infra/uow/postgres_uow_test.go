//go:build unit

package uow

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresUoW_Reads(t *testing.T) {
	u := NewPostgresUoW(nil)

	t.Run("stores are ready before first use", func(t *testing.T) {
		reads, ok := u.Reads().(*commandReads)
		require.True(t, ok)

		assert.NotNil(t, reads.codes)
		assert.NotNil(t, reads.ledger)
	})

	t.Run("shared value is safe to read concurrently", func(t *testing.T) {
		reads := u.Reads().(*commandReads)
		want := reads.codes

		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.Same(t, want, reads.codes)
			}()
		}
		wg.Wait()
	})
}
