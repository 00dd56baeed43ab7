// internal/cart/engine.go

// Package cart is the shopping cart state container. It owns the line
// items for one shopper, recomputes the derived totals from scratch after
// every mutation, and persists the items through the kv port. Stored cart
// state is disposable convenience data: a corrupt payload restores as an
// empty cart, never an error.
package cart

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/newerastudio/storefront/internal/kv"
	"github.com/newerastudio/storefront/internal/models"
	"github.com/newerastudio/storefront/internal/utils"
)

const storageKey = "new-era-studio-cart"

// Option configures an Engine.
type Option func(*Engine)

// WithStorageKey namespaces the persisted cart, e.g. per shopper session.
func WithStorageKey(key string) Option {
	return func(e *Engine) { e.key = key }
}

// WithOnAdd registers a view-layer hook invoked after every Add, used by
// the shell to make the cart panel visible. Not a data invariant.
func WithOnAdd(fn func()) Option {
	return func(e *Engine) { e.onAdd = fn }
}

type Engine struct {
	mtx   sync.Mutex
	cart  models.Cart
	store kv.Store
	key   string
	onAdd func()
}

func NewEngine(store kv.Store, opts ...Option) *Engine {
	e := &Engine{store: store, key: storageKey}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load restores the item list from storage. Missing or corrupt data is
// silently discarded and the cart starts empty.
func (e *Engine) Load(ctx context.Context) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	data, err := e.store.Get(ctx, e.key)
	if err != nil {
		e.cart = models.Cart{}
		return
	}

	var items []models.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		e.cart = models.Cart{}
		return
	}

	e.cart.Items = items
	e.cart.Recompute()
}

// Add merges the item into an existing line with the same variant id,
// keeping the original price and image snapshots, or appends a new line
// with a freshly generated id.
func (e *Engine) Add(ctx context.Context, item models.CartItem) models.Cart {
	e.mtx.Lock()

	merged := false
	for i := range e.cart.Items {
		if e.cart.Items[i].VariantID == item.VariantID {
			e.cart.Items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		item.ID = utils.NewCartItemID()
		e.cart.Items = append(e.cart.Items, item)
	}

	snapshot := e.commit(ctx)
	e.mtx.Unlock()

	if e.onAdd != nil {
		e.onAdd()
	}
	return snapshot
}

// Remove deletes the line unconditionally; an absent id is a no-op.
func (e *Engine) Remove(ctx context.Context, itemID string) models.Cart {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	items := e.cart.Items[:0]
	for _, item := range e.cart.Items {
		if item.ID != itemID {
			items = append(items, item)
		}
	}
	e.cart.Items = items
	return e.commit(ctx)
}

// SetQuantity replaces a line's quantity; zero or below removes the line.
func (e *Engine) SetQuantity(ctx context.Context, itemID string, quantity int) models.Cart {
	if quantity <= 0 {
		return e.Remove(ctx, itemID)
	}

	e.mtx.Lock()
	defer e.mtx.Unlock()

	for i := range e.cart.Items {
		if e.cart.Items[i].ID == itemID {
			e.cart.Items[i].Quantity = quantity
			break
		}
	}
	return e.commit(ctx)
}

// Clear empties all lines.
func (e *Engine) Clear(ctx context.Context) models.Cart {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	e.cart.Items = nil
	return e.commit(ctx)
}

// Cart returns a snapshot of the current state.
func (e *Engine) Cart() models.Cart {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	return e.snapshot()
}

// commit recomputes totals and persists the item list. Storage failures
// are logged and otherwise ignored; the in-memory cart stays the source
// of truth for this session. Callers must hold mtx.
func (e *Engine) commit(ctx context.Context) models.Cart {
	e.cart.Recompute()

	data, err := json.Marshal(e.cart.Items)
	if err == nil {
		err = e.store.Set(ctx, e.key, data)
	}
	if err != nil {
		logrus.WithError(err).Warn("failed to persist cart")
	}
	return e.snapshot()
}

func (e *Engine) snapshot() models.Cart {
	out := e.cart
	out.Items = append([]models.CartItem(nil), e.cart.Items...)
	return out
}
