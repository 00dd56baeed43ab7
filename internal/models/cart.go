// internal/models/cart.go
package models

type CartItem struct {
	ID             string       `json:"id"`
	VariantID      string       `json:"variantId"`
	ProductID      string       `json:"productId"`
	Handle         string       `json:"handle"`
	Title          string       `json:"title"`
	VariantTitle   string       `json:"variantTitle"`
	Price          string       `json:"price"`
	CompareAtPrice string       `json:"compareAtPrice,omitempty"`
	Quantity       int          `json:"quantity"`
	Image          ProductImage `json:"image"`
}

// Cart is derived state: TotalQuantity and Subtotal are recomputed from
// Items after every mutation, never mutated independently.
type Cart struct {
	Items         []CartItem `json:"items"`
	TotalQuantity int        `json:"totalQuantity"`
	Subtotal      float64    `json:"subtotal"`
}

// Recompute rebuilds the derived totals from scratch.
func (c *Cart) Recompute() {
	c.TotalQuantity = 0
	c.Subtotal = 0
	for _, item := range c.Items {
		c.TotalQuantity += item.Quantity
		c.Subtotal += parsePrice(item.Price) * float64(item.Quantity)
	}
}
