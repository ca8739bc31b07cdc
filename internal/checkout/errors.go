package checkout

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/talkincode/toughmall/internal/domain"
)

var (
	// ErrOrderNotFound is returned when the referenced order does not exist
	// (or is not visible to the caller).
	ErrOrderNotFound = errors.New("order not found")
)

// ValidationError reports a malformed placement payload before any store
// access happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ProductNotFoundError identifies the line item whose product is absent.
type ProductNotFoundError struct {
	ProductId int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductId)
}

// InvalidSizeError reports a size that is not configured on the product.
type InvalidSizeError struct {
	ProductId int64
	Size      string
}

func (e *InvalidSizeError) Error() string {
	return fmt.Sprintf("product %d has no size %q", e.ProductId, e.Size)
}

// InsufficientStockError reports that the size's available quantity is
// below the requested quantity.
type InsufficientStockError struct {
	ProductId int64
	Size      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d size %q: requested %d, available %d",
		e.ProductId, e.Size, e.Requested, e.Available)
}

// InvalidTransitionError reports an illegal order status change.
type InvalidTransitionError struct {
	From domain.OrderStatus
	To   domain.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("illegal order status transition %s -> %s", e.From, e.To)
}
