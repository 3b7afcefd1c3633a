package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	data := map[string]any{"product_id": "p1", "quantity": 2}

	ev, err := NewEvent("addToCart", "sess-1", "cart", "toystore-storefront", data)
	require.NoError(t, err)

	assert.NotEmpty(t, ev.EventID)
	assert.Equal(t, "addToCart", ev.EventType)
	assert.Equal(t, "sess-1", ev.AggregateID)
	assert.Equal(t, 1, ev.Version)
	assert.False(t, ev.Timestamp.IsZero())
}

func TestEventRoundTrip(t *testing.T) {
	ev, err := NewEvent("goToCheckout", "sess-1", "cart", "toystore-storefront",
		map[string]int64{"total_amount": 4998})
	require.NoError(t, err)
	ev.WithCorrelationID("corr-1")

	raw, err := ev.Marshal()
	require.NoError(t, err)

	decoded, err := UnmarshalEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, ev.EventID, decoded.EventID)
	assert.Equal(t, "corr-1", decoded.CorrelationID)

	var payload map[string]int64
	require.NoError(t, decoded.UnmarshalData(&payload))
	assert.Equal(t, int64(4998), payload["total_amount"])
}
