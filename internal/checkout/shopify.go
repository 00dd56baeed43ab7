// internal/checkout/shopify.go
package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/newerastudio/storefront/internal/models"
)

const checkoutCreateMutation = `
mutation CreateCheckout($lineItems: [CheckoutLineItemInput!]!) {
  checkoutCreate(input: { lineItems: $lineItems }) {
    checkout {
      webUrl
    }
    checkoutUserErrors {
      message
    }
  }
}`

// ShopifyProvider creates real checkout sessions through the Shopify
// Storefront GraphQL API.
type ShopifyProvider struct {
	Domain string
	Token  string
	Client *http.Client
}

type shopifyLineItem struct {
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

type shopifyCheckoutResponse struct {
	Data struct {
		CheckoutCreate struct {
			Checkout struct {
				WebURL string `json:"webUrl"`
			} `json:"checkout"`
			CheckoutUserErrors []struct {
				Message string `json:"message"`
			} `json:"checkoutUserErrors"`
		} `json:"checkoutCreate"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (p ShopifyProvider) CreateCheckout(ctx context.Context, items []models.CartItem) (string, error) {
	lineItems := make([]shopifyLineItem, len(items))
	for i, item := range items {
		lineItems[i] = shopifyLineItem{VariantID: item.VariantID, Quantity: item.Quantity}
	}

	payload, err := json.Marshal(map[string]interface{}{
		"query":     checkoutCreateMutation,
		"variables": map[string]interface{}{"lineItems": lineItems},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode checkout request: %w", err)
	}

	url := fmt.Sprintf("https://%s/api/2024-01/graphql.json", p.Domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build checkout request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Storefront-Access-Token", p.Token)

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("checkout request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("shopify api error: %d", resp.StatusCode)
	}

	var decoded shopifyCheckoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode checkout response: %w", err)
	}

	if len(decoded.Errors) > 0 {
		return "", errors.New(decoded.Errors[0].Message)
	}
	if userErrors := decoded.Data.CheckoutCreate.CheckoutUserErrors; len(userErrors) > 0 {
		return "", errors.New(userErrors[0].Message)
	}

	webURL := decoded.Data.CheckoutCreate.Checkout.WebURL
	if webURL == "" {
		return "", errors.New("shopify returned no checkout url")
	}
	return webURL, nil
}
