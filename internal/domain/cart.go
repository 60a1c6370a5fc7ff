package domain

import "time"

// CartLine pairs a product snapshot with a quantity. The snapshot is
// copied at add time so later catalog changes do not rewrite the cart.
type CartLine struct {
	Product  Product   `json:"product"`
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"addedAt"`
}

type Cart struct {
	ID            string     `json:"id"`
	Lines         []CartLine `json:"lineItems"`
	TotalQuantity int        `json:"totalQuantity"`
	TotalCents    int64      `json:"totalCents"`
	UpdatedAt     time.Time  `json:"updatedAt,omitempty"`
	// Recovered is set when the persisted cart could not be read and the
	// operation proceeded against an empty baseline.
	Recovered bool `json:"recovered,omitempty"`
}

// Totals recomputes the aggregate quantity and discounted price over the lines.
func (c *Cart) Totals() {
	c.TotalQuantity = 0
	c.TotalCents = 0
	for _, line := range c.Lines {
		c.TotalQuantity += line.Quantity
		c.TotalCents += line.Product.EffectivePriceCents() * int64(line.Quantity)
	}
}
