// internal/models/customer.go
package models

import "time"

type Customer struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	FirstName          string    `json:"firstName"`
	LastName           string    `json:"lastName"`
	CreatedAt          time.Time `json:"createdAt"`
	SubscribedToOffers bool      `json:"subscribedToOffers"`
}

// StoredAccount is what the account store persists per customer id. The
// password hash is a device-local digest, not a security control.
type StoredAccount struct {
	Customer     Customer `json:"customer"`
	PasswordHash string   `json:"passwordHash"`
}

// OrderItem is a snapshot taken at checkout time, independent of live
// cart and product state.
type OrderItem struct {
	Title        string `json:"title"`
	VariantTitle string `json:"variantTitle"`
	Price        string `json:"price"`
	Quantity     int    `json:"quantity"`
	Image        string `json:"image"`
}

type Order struct {
	ID          string      `json:"id"`
	OrderNumber string      `json:"orderNumber"`
	Date        time.Time   `json:"date"`
	Items       []OrderItem `json:"items"`
	Subtotal    float64     `json:"subtotal"`
	Status      OrderStatus `json:"status"`
}
