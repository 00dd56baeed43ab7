// internal/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/newerastudio/storefront/internal/account"
	"github.com/newerastudio/storefront/internal/cart"
	"github.com/newerastudio/storefront/internal/kv"
	"github.com/newerastudio/storefront/internal/models"
	"github.com/newerastudio/storefront/internal/utils"
)

// ErrEmptyCart guards the handoff; the cart page short-circuits to an
// empty-state view before ever reaching here.
var ErrEmptyCart = errors.New("checkout: cart is empty")

const lastOrderKeyPrefix = "new-era-studio-last-order"

// LastOrderKey scopes the last-order reference to one visitor, so the
// success page never shows another shopper's order number.
func LastOrderKey(visitorID string) string {
	if visitorID == "" {
		return lastOrderKeyPrefix
	}
	return lastOrderKeyPrefix + "-" + visitorID
}

// Result tells the caller where to send the shopper.
type Result struct {
	RedirectURL string `json:"redirectUrl"`
	OrderNumber string `json:"orderNumber"`
	// Local is true for the mock flow: the cart was cleared and the
	// redirect points at the local success page.
	Local bool `json:"local"`
}

// Service walks a cart through the checkout handoff: create the external
// session, record the order reference, append the order to the account
// history when a customer session is active, and clear the cart on a
// local (mock) completion.
type Service struct {
	provider     Provider
	cart         *cart.Engine
	accounts     *account.Store
	kv           kv.Store
	lastOrderKey string
}

type Option func(*Service)

// WithLastOrderKey sets the storage key for the last-order reference,
// e.g. LastOrderKey(visitorID).
func WithLastOrderKey(key string) Option {
	return func(s *Service) { s.lastOrderKey = key }
}

func NewService(provider Provider, cartEngine *cart.Engine, accounts *account.Store, store kv.Store, opts ...Option) *Service {
	s := &Service{
		provider:     provider,
		cart:         cartEngine,
		accounts:     accounts,
		kv:           store,
		lastOrderKey: lastOrderKeyPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Checkout(ctx context.Context) (*Result, error) {
	snapshot := s.cart.Cart()
	if len(snapshot.Items) == 0 {
		return nil, ErrEmptyCart
	}

	checkoutURL, err := s.provider.CreateCheckout(ctx, snapshot.Items)
	if err != nil {
		return nil, err
	}

	orderNumber := utils.NewOrderNumber()
	if err := s.kv.Set(ctx, s.lastOrderKey, []byte(orderNumber)); err != nil {
		logrus.WithError(err).Warn("failed to record last order reference")
	}

	// An order is only attached to history when a session is active.
	if s.accounts.IsAuthenticated() {
		items := make([]models.OrderItem, len(snapshot.Items))
		for i, item := range snapshot.Items {
			items[i] = models.OrderItem{
				Title:        item.Title,
				VariantTitle: item.VariantTitle,
				Price:        item.Price,
				Quantity:     item.Quantity,
				Image:        item.Image.URL,
			}
		}
		order := models.Order{
			OrderNumber: orderNumber,
			Date:        time.Now().UTC(),
			Items:       items,
			Subtotal:    snapshot.Subtotal,
			Status:      models.OrderStatusProcessing,
		}
		if _, err := s.accounts.AddOrder(ctx, order); err != nil {
			logrus.WithError(err).Warn("failed to append order to account history")
		}
	}

	result := &Result{OrderNumber: orderNumber}
	if strings.HasPrefix(checkoutURL, "/") {
		// Mock checkout completes locally.
		s.cart.Clear(ctx)
		result.Local = true
		result.RedirectURL = checkoutURL + "?order=" + orderNumber
	} else {
		result.RedirectURL = checkoutURL
	}
	return result, nil
}

// LastOrderNumber returns this visitor's most recent order reference,
// if any.
func (s *Service) LastOrderNumber(ctx context.Context) string {
	return LastOrderNumber(ctx, s.kv, s.lastOrderKey)
}

// LastOrderNumber reads an order reference from storage; the success
// page falls back to it when the redirect query is missing.
func LastOrderNumber(ctx context.Context, store kv.Store, key string) string {
	data, err := store.Get(ctx, key)
	if err != nil {
		return ""
	}
	return string(data)
}
