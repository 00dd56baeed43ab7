// internal/store/product_store_test.go
package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/newerastudio/storefront/internal/models"
)

func testProduct(id, handle string, prices ...string) models.Product {
	variants := make([]models.ProductVariant, len(prices))
	for i, price := range prices {
		variants[i] = models.ProductVariant{
			ID:        handle + "-v" + price,
			Title:     price,
			Price:     price,
			Available: true,
		}
	}
	p := models.Product{
		ID:          id,
		Handle:      handle,
		Title:       "Test " + handle,
		ProductType: models.ProductTypeBundles,
		Variants:    variants,
	}
	p.RecomputePriceRange()
	return p
}

type ProductStoreTestSuite struct {
	suite.Suite
	ctx   context.Context
	path  string
	store *ProductStore
}

func (suite *ProductStoreTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.path = filepath.Join(suite.T().TempDir(), "products.json")
	doc, err := NewFileDocument(suite.path)
	assert.NoError(suite.T(), err)
	suite.store = NewProductStore(doc)
}

func (suite *ProductStoreTestSuite) TestEmptyDocumentIsSeededOnce() {
	products, err := suite.store.List(suite.ctx)
	assert.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), products)

	// The seed must have been written to the backing document.
	data, err := os.ReadFile(suite.path)
	assert.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), data)
}

func (suite *ProductStoreTestSuite) TestCreateRejectsDuplicates() {
	created, err := suite.store.Create(suite.ctx, testProduct("p-1", "unique-handle", "30.00"))
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "p-1", created.ID)

	_, err = suite.store.Create(suite.ctx, testProduct("p-1", "other-handle", "30.00"))
	assert.ErrorIs(suite.T(), err, ErrDuplicateID)

	_, err = suite.store.Create(suite.ctx, testProduct("p-2", "unique-handle", "30.00"))
	assert.ErrorIs(suite.T(), err, ErrDuplicateHandle)
}

func (suite *ProductStoreTestSuite) TestPriceRangeAfterEveryMutationPath() {
	created, err := suite.store.Create(suite.ctx, testProduct("p-1", "range-product", "30.00", "50.00", "40.00"))
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "30.00", created.PriceRange.MinVariantPrice.Amount)
	assert.Equal(suite.T(), "50.00", created.PriceRange.MaxVariantPrice.Amount)

	// Full update replacing variants.
	variants := []models.ProductVariant{
		{ID: "v1", Price: "30.00"},
		{ID: "v2", Price: "50.00"},
		{ID: "v3", Price: "40.00"},
	}
	updated, err := suite.store.Update(suite.ctx, "p-1", ProductUpdate{Variants: &variants})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "30.00", updated.PriceRange.MinVariantPrice.Amount)
	assert.Equal(suite.T(), "50.00", updated.PriceRange.MaxVariantPrice.Amount)

	// Pricing-only update.
	repriced, err := suite.store.UpdatePricing(suite.ctx, "p-1", []VariantPrice{
		{VariantID: "v1", Price: "30.00"},
		{VariantID: "v2", Price: "50.00"},
		{VariantID: "v3", Price: "40.00"},
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "30.00", repriced.PriceRange.MinVariantPrice.Amount)
	assert.Equal(suite.T(), "50.00", repriced.PriceRange.MaxVariantPrice.Amount)
}

func (suite *ProductStoreTestSuite) TestUpdatePricingIgnoresUnmatchedAndSetsCompareAt() {
	_, err := suite.store.Create(suite.ctx, testProduct("p-1", "reprice", "30.00"))
	assert.NoError(suite.T(), err)

	compareAt := "55.00"
	updated, err := suite.store.UpdatePricing(suite.ctx, "p-1", []VariantPrice{
		{VariantID: "reprice-v30.00", Price: "45.00", CompareAtPrice: &compareAt},
		{VariantID: "ghost-variant", Price: "99.00"},
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "45.00", updated.Variants[0].Price)
	assert.Equal(suite.T(), "55.00", updated.Variants[0].CompareAtPrice)

	_, err = suite.store.UpdatePricing(suite.ctx, "missing-product", []VariantPrice{
		{VariantID: "v", Price: "1.00"},
	})
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *ProductStoreTestSuite) TestUpdateHandleCollision() {
	_, err := suite.store.Create(suite.ctx, testProduct("p-1", "first", "30.00"))
	assert.NoError(suite.T(), err)
	_, err = suite.store.Create(suite.ctx, testProduct("p-2", "second", "30.00"))
	assert.NoError(suite.T(), err)

	taken := "first"
	_, err = suite.store.Update(suite.ctx, "p-2", ProductUpdate{Handle: &taken})
	assert.ErrorIs(suite.T(), err, ErrDuplicateHandle)

	// Keeping your own handle is not a collision.
	own := "second"
	_, err = suite.store.Update(suite.ctx, "p-2", ProductUpdate{Handle: &own})
	assert.NoError(suite.T(), err)
}

func (suite *ProductStoreTestSuite) TestDeleteThenRepeatDelete() {
	_, err := suite.store.Create(suite.ctx, testProduct("p-1", "doomed", "30.00"))
	assert.NoError(suite.T(), err)

	assert.NoError(suite.T(), suite.store.Delete(suite.ctx, "p-1"))

	_, err = suite.store.GetByID(suite.ctx, "p-1")
	assert.ErrorIs(suite.T(), err, ErrNotFound)

	products, err := suite.store.List(suite.ctx)
	assert.NoError(suite.T(), err)
	for _, p := range products {
		assert.NotEqual(suite.T(), "p-1", p.ID)
	}

	assert.ErrorIs(suite.T(), suite.store.Delete(suite.ctx, "p-1"), ErrNotFound)
}

func (suite *ProductStoreTestSuite) TestGetByHandle() {
	_, err := suite.store.Create(suite.ctx, testProduct("p-1", "by-handle", "30.00"))
	assert.NoError(suite.T(), err)

	product, err := suite.store.GetByHandle(suite.ctx, "by-handle")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "p-1", product.ID)

	_, err = suite.store.GetByHandle(suite.ctx, "nope")
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *ProductStoreTestSuite) TestMutationsSurviveReload() {
	_, err := suite.store.Create(suite.ctx, testProduct("p-1", "durable", "30.00"))
	assert.NoError(suite.T(), err)

	doc, err := NewFileDocument(suite.path)
	assert.NoError(suite.T(), err)
	reopened := NewProductStore(doc)

	product, err := reopened.GetByID(suite.ctx, "p-1")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "durable", product.Handle)
}

func TestProductStoreTestSuite(t *testing.T) {
	suite.Run(t, new(ProductStoreTestSuite))
}

func TestSeedFallbackWithoutDocument(t *testing.T) {
	store := NewProductStore(nil)
	ctx := context.Background()

	products, err := store.List(ctx)
	assert.NoError(t, err)
	assert.NotEmpty(t, products)

	// Writes are accepted but only held in memory.
	_, err = store.Create(ctx, testProduct("p-mem", "memory-only", "30.00"))
	assert.NoError(t, err)

	again, err := store.GetByID(ctx, "p-mem")
	assert.NoError(t, err)
	assert.Equal(t, "memory-only", again.Handle)

	// A fresh store starts over from the seed.
	fresh := NewProductStore(nil)
	_, err = fresh.GetByID(ctx, "p-mem")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCorruptDocumentServesSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	assert.NoError(t, os.WriteFile(path, []byte("{corrupt"), 0o644))

	doc, err := NewFileDocument(path)
	assert.NoError(t, err)
	store := NewProductStore(doc)

	products, err := store.List(context.Background())
	assert.NoError(t, err)
	assert.NotEmpty(t, products)
}
