package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartTotals(t *testing.T) {
	cart := NewCart("sess-1")
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, int64(0), cart.Total())
	assert.Equal(t, 0, cart.ItemCount())

	cart.Items = append(cart.Items,
		LineItem{ProductID: "p1", Name: "Robo Friend", UnitPrice: 2499, Quantity: 2},
		LineItem{ProductID: "p2", Name: "Rocket Kite", UnitPrice: 1299, Quantity: 1},
	)

	assert.False(t, cart.IsEmpty())
	assert.Equal(t, int64(2*2499+1299), cart.Total())
	assert.Equal(t, 3, cart.ItemCount())
	assert.Equal(t, int64(4998), cart.Items[0].Subtotal())
}

func TestCartFindIndex(t *testing.T) {
	cart := NewCart("sess-1")
	cart.Items = []LineItem{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "p2", Quantity: 1},
	}

	assert.Equal(t, 0, cart.FindIndex("p1"))
	assert.Equal(t, 1, cart.FindIndex("p2"))
	assert.Equal(t, -1, cart.FindIndex("missing"))
}

func TestCartClone(t *testing.T) {
	cart := NewCart("sess-1")
	cart.Items = []LineItem{{ProductID: "p1", Name: "Dino Blocks", UnitPrice: 1899, Quantity: 1}}

	clone := cart.Clone()
	clone.Items[0].Quantity = 99

	assert.Equal(t, 1, cart.Items[0].Quantity)
	assert.Equal(t, cart.SessionID, clone.SessionID)
}

func TestCartItemsJSONRoundTrip(t *testing.T) {
	items := []LineItem{
		{ProductID: "p1", Name: "Galaxy Rover", UnitPrice: 3999, Quantity: 2},
	}

	data, err := json.Marshal(items)
	require.NoError(t, err)

	var decoded []LineItem
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, items, decoded)
}
