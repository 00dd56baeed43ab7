// internal/utils/id.go
package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewCartItemID generates an opaque cart line id.
func NewCartItemID() string {
	return "cart-" + uuid.NewString()
}

// NewCustomerID generates a customer id.
func NewCustomerID() string {
	return "cust-" + uuid.NewString()
}

// NewOrderID generates an order record id.
func NewOrderID() string {
	return "order-" + uuid.NewString()
}

// NewProductID generates a product id for admin creates that omit one.
func NewProductID() string {
	return fmt.Sprintf("product-%d", time.Now().UnixMilli())
}

// NewOrderNumber generates the human-readable order reference shown on the
// checkout success page, e.g. "NES-LXK2V9QH".
func NewOrderNumber() string {
	return "NES-" + strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
}
