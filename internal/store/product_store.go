// internal/store/product_store.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/newerastudio/storefront/internal/catalog"
	"github.com/newerastudio/storefront/internal/models"
)

var (
	ErrNotFound        = errors.New("store: product not found")
	ErrDuplicateID     = errors.New("store: product id already exists")
	ErrDuplicateHandle = errors.New("store: product handle already exists")
)

// ProductUpdate carries the fields a full update may merge into a product.
// Nil fields are left untouched.
type ProductUpdate struct {
	Handle           *string
	Title            *string
	Description      *string
	DescriptionHTML  *string
	ProductType      *models.ProductType
	Tags             *[]string
	Images           *[]models.ProductImage
	Variants         *[]models.ProductVariant
	Options          *[]models.ProductOption
	AvailableForSale *bool
}

// VariantPrice targets one variant in a pricing-only update. Unmatched
// variant ids are silently ignored.
type VariantPrice struct {
	VariantID      string  `json:"variantId" binding:"required"`
	Price          string  `json:"price" binding:"required"`
	CompareAtPrice *string `json:"compareAtPrice,omitempty"`
}

// ProductStore owns the catalog document. With no Document configured it
// serves the built-in seed catalog; writes are accepted but not durable,
// and a warning is the only signal.
type ProductStore struct {
	doc Document

	// mtx serializes read-modify-write cycles within this process only.
	// Two processes against the same document still race; last write wins.
	mtx sync.Mutex

	// memory holds the working copy while no document is configured.
	memory []models.Product
}

func NewProductStore(doc Document) *ProductStore {
	return &ProductStore{doc: doc}
}

// List returns all products in the catalog.
func (s *ProductStore) List(ctx context.Context) ([]models.Product, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.load(ctx)
}

func (s *ProductStore) GetByID(ctx context.Context, id string) (*models.Product, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	products, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *ProductStore) GetByHandle(ctx context.Context, handle string) (*models.Product, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	products, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].Handle == handle {
			return &products[i], nil
		}
	}
	return nil, ErrNotFound
}

// Create appends a product, rejecting id and handle collisions.
func (s *ProductStore) Create(ctx context.Context, product models.Product) (*models.Product, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	products, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	for _, p := range products {
		if p.ID == product.ID {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, product.ID)
		}
		if p.Handle == product.Handle {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateHandle, product.Handle)
		}
	}

	product.RecomputePriceRange()
	products = append(products, product)

	if err := s.save(ctx, products); err != nil {
		return nil, err
	}
	return &product, nil
}

// Update merges the supplied fields into an existing product. The price
// range is recomputed when variants change; a handle change that collides
// with another product is rejected.
func (s *ProductStore) Update(ctx context.Context, id string, update ProductUpdate) (*models.Product, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	products, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	index := -1
	for i := range products {
		if products[i].ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	product := &products[index]

	if update.Handle != nil && *update.Handle != product.Handle {
		for _, p := range products {
			if p.Handle == *update.Handle {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateHandle, *update.Handle)
			}
		}
		product.Handle = *update.Handle
	}
	if update.Title != nil {
		product.Title = *update.Title
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.DescriptionHTML != nil {
		product.DescriptionHTML = *update.DescriptionHTML
	}
	if update.ProductType != nil {
		product.ProductType = *update.ProductType
	}
	if update.Tags != nil {
		product.Tags = *update.Tags
	}
	if update.Images != nil {
		product.Images = *update.Images
		if len(product.Images) > 0 {
			product.FeaturedImage = product.Images[0]
		}
	}
	if update.Options != nil {
		product.Options = *update.Options
	}
	if update.AvailableForSale != nil {
		product.AvailableForSale = *update.AvailableForSale
	}
	if update.Variants != nil {
		product.Variants = *update.Variants
		product.RecomputePriceRange()
	}

	if err := s.save(ctx, products); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product; a repeat delete fails with ErrNotFound.
func (s *ProductStore) Delete(ctx context.Context, id string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	products, err := s.load(ctx)
	if err != nil {
		return err
	}

	filtered := products[:0]
	for _, p := range products {
		if p.ID != id {
			filtered = append(filtered, p)
		}
	}
	if len(filtered) == len(products) {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	return s.save(ctx, filtered)
}

// UpdatePricing applies price and compare-at updates to the matched
// variants and recomputes the product's price range.
func (s *ProductStore) UpdatePricing(ctx context.Context, id string, prices []VariantPrice) (*models.Product, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	products, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	index := -1
	for i := range products {
		if products[i].ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	product := &products[index]
	for _, update := range prices {
		for i := range product.Variants {
			if product.Variants[i].ID != update.VariantID {
				continue
			}
			product.Variants[i].Price = update.Price
			if update.CompareAtPrice != nil {
				product.Variants[i].CompareAtPrice = *update.CompareAtPrice
			}
		}
	}
	product.RecomputePriceRange()

	if err := s.save(ctx, products); err != nil {
		return nil, err
	}
	return product, nil
}

// load returns the working copy of the catalog. Callers must hold mtx.
func (s *ProductStore) load(ctx context.Context) ([]models.Product, error) {
	if s.doc == nil {
		if s.memory == nil {
			s.memory = catalog.SeedProducts()
		}
		return s.memory, nil
	}

	data, err := s.doc.Read(ctx)
	if err != nil {
		if errors.Is(err, ErrNoDocument) {
			// Seed the document once from the built-in catalog.
			seed := catalog.SeedProducts()
			if err := s.save(ctx, seed); err != nil {
				return nil, err
			}
			return seed, nil
		}
		return nil, err
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		logrus.WithError(err).Error("catalog document is corrupt, serving seed catalog")
		return catalog.SeedProducts(), nil
	}
	return products, nil
}

// save writes the full collection back. Callers must hold mtx.
func (s *ProductStore) save(ctx context.Context, products []models.Product) error {
	if s.doc == nil {
		logrus.Warn("catalog store not configured, products not persisted")
		s.memory = products
		return nil
	}

	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize catalog: %w", err)
	}
	return s.doc.Write(ctx, data)
}
