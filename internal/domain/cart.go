package domain

// LineItem is one product entry in the cart with its own quantity.
// Quantity is always >= 1: an item that would reach zero is removed from the
// cart rather than kept at zero.
type LineItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// Subtotal returns the line subtotal in minor units.
func (li LineItem) Subtotal() int64 {
	return li.UnitPrice * int64(li.Quantity)
}

// Cart holds the ordered line items for one storefront session. Insertion
// order is display order, and product IDs are unique within a cart.
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []LineItem `json:"items"`
}

// NewCart creates an empty cart for the given session.
func NewCart(sessionID string) *Cart {
	return &Cart{
		SessionID: sessionID,
		Items:     []LineItem{},
	}
}

// Total returns the cart total in minor units: the sum of unit price times
// quantity over all line items.
func (c *Cart) Total() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}

// ItemCount returns the total quantity across all line items (the badge number).
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// FindIndex returns the index of the line item with the given product ID, or
// -1 if the cart does not contain it.
func (c *Cart) FindIndex(productID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// IsEmpty reports whether the cart has no line items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Clone returns a deep copy of the cart. Callers receive snapshots so stored
// state can never be mutated through a returned cart.
func (c *Cart) Clone() *Cart {
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)
	return &Cart{
		SessionID: c.SessionID,
		Items:     items,
	}
}
