package inventory

import "fmt"

// ProductNotFoundError means a referenced product was missing from the
// catalog at transaction time.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("Product not found: %s", e.ProductID)
}

// NoStockConfiguredError means the product exists but its stock map is empty.
// Reported before the two-key probe on the decrement path for a clearer
// diagnostic.
type NoStockConfiguredError struct {
	ProductID string
}

func (e *NoStockConfiguredError) Error() string {
	return fmt.Sprintf("No stockBySize on product %s", e.ProductID)
}

// StockKeyNotFoundError means neither the color+size key nor the size-only
// key exists in the product's stock map. This is a data-shape mismatch
// between catalog and cart; it fails loudly instead of guessing a key.
type StockKeyNotFoundError struct {
	ProductID string
	Tried     []string
}

func (e *StockKeyNotFoundError) Error() string {
	return fmt.Sprintf("Stock key not found for product %s. Tried %q and %q.", e.ProductID, e.Tried[0], e.Tried[1])
}

// InsufficientStockError means a decrement would take stock below zero.
type InsufficientStockError struct {
	ProductName string
	Color       string
	Size        string
	Have        int
	Need        int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for %q (%s, %s). Have %d, need %d.", e.ProductName, e.Color, e.Size, e.Have, e.Need)
}
