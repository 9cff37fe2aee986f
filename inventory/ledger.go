package inventory

// Ledger accumulates stock deltas for one product against an in-memory
// snapshot of its stock map. A transaction attempt builds exactly one Ledger
// per product it touches, folds every item delta into it, and writes the
// accumulated map back once. Issuing per-item partial writes instead would
// lose updates when an order carries two lines against the same product.
type Ledger struct {
	productID string
	stock     map[string]int
}

// NewLedger snapshots the product's stock map. The input map is copied so
// the caller's decoded document is never mutated.
func NewLedger(productID string, stockBySize map[string]int) *Ledger {
	stock := make(map[string]int, len(stockBySize))
	for k, v := range stockBySize {
		stock[k] = v
	}
	return &Ledger{productID: productID, stock: stock}
}

// ResolveKey finds the stock key addressing a variant. Products use one of
// two key conventions, determined by which keys exist in the map: multi-color
// products key by "{color}-{size}", single-color products by "{size}" alone.
// The color+size key always wins when both are present.
func (l *Ledger) ResolveKey(color, size string) (string, error) {
	keyColorSize := color + "-" + size
	if _, ok := l.stock[keyColorSize]; ok {
		return keyColorSize, nil
	}
	if _, ok := l.stock[size]; ok {
		return size, nil
	}
	return "", &StockKeyNotFoundError{ProductID: l.productID, Tried: []string{keyColorSize, size}}
}

// Decrement removes qty units of a variant. It fails with
// NoStockConfiguredError on an empty map, StockKeyNotFoundError when the
// variant has no key, and InsufficientStockError when the decrement would go
// negative. It never clamps to zero.
func (l *Ledger) Decrement(itemName, color, size string, qty int) error {
	if len(l.stock) == 0 {
		return &NoStockConfiguredError{ProductID: l.productID}
	}
	key, err := l.ResolveKey(color, size)
	if err != nil {
		return err
	}
	have := l.stock[key]
	if have-qty < 0 {
		return &InsufficientStockError{ProductName: itemName, Color: color, Size: size, Have: have, Need: qty}
	}
	l.stock[key] = have - qty
	return nil
}

// Increment returns qty units of a variant to stock. Restock is trusted
// unconditionally, so there is no upper bound.
func (l *Ledger) Increment(color, size string, qty int) error {
	key, err := l.ResolveKey(color, size)
	if err != nil {
		return err
	}
	l.stock[key] += qty
	return nil
}

// Stock returns a copy of the accumulated stock map for the single
// per-product write at commit time.
func (l *Ledger) Stock() map[string]int {
	out := make(map[string]int, len(l.stock))
	for k, v := range l.stock {
		out[k] = v
	}
	return out
}
