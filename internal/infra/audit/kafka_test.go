//go:build unit

package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeaderCarrier(t *testing.T) {
	c := &headerCarrier{}
	c.Set("traceparent", "00-abc-def-01")
	c.Set("baggage", "k=v")

	assert.Equal(t, "00-abc-def-01", c.Get("traceparent"))
	assert.Equal(t, "", c.Get("missing"))
	assert.Equal(t, []string{"traceparent", "baggage"}, c.Keys())
}
