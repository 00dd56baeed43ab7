// internal/checkout/provider.go

// Package checkout converts cart line items into an external checkout
// session. Providers are opaque collaborators: Shopify's Storefront API,
// Stripe Checkout, or a built-in mock that short-circuits to the local
// success page when nothing external is configured.
package checkout

import (
	"context"

	"github.com/newerastudio/storefront/internal/models"
)

// Provider creates a checkout session for the given line items and
// returns the URL the shopper should be sent to. A relative URL means the
// checkout completed locally (mock).
type Provider interface {
	CreateCheckout(ctx context.Context, items []models.CartItem) (string, error)
}

// MockProvider stands in when no commerce platform is configured.
type MockProvider struct {
	SuccessPath string
}

func (p MockProvider) CreateCheckout(_ context.Context, _ []models.CartItem) (string, error) {
	if p.SuccessPath != "" {
		return p.SuccessPath, nil
	}
	return "/checkout/success", nil
}
