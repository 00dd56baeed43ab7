// internal/checkout/stripe.go
package checkout

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"

	"github.com/newerastudio/storefront/internal/models"
	"github.com/newerastudio/storefront/internal/utils"
)

// StripeProvider creates Stripe Checkout sessions priced from the cart's
// line-item snapshots.
type StripeProvider struct {
	SuccessURL string
	CancelURL  string
}

func NewStripeProvider(secretKey, successURL, cancelURL string) StripeProvider {
	stripe.Key = secretKey
	return StripeProvider{SuccessURL: successURL, CancelURL: cancelURL}
}

func (p StripeProvider) CreateCheckout(ctx context.Context, items []models.CartItem) (string, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, len(items))
	for i, item := range items {
		name := item.Title
		if item.VariantTitle != "" {
			name = fmt.Sprintf("%s — %s", item.Title, item.VariantTitle)
		}

		lineItems[i] = &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(int64(item.Quantity)),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String("usd"),
				UnitAmount: stripe.Int64(int64(utils.ParsePrice(item.Price) * 100)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(name),
				},
			},
		}
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
	}
	params.Context = ctx

	sess, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create stripe checkout session: %w", err)
	}
	return sess.URL, nil
}
