// Package inventory holds the pure inventory core: variant-id resolution and
// the per-product stock ledger used by the order transaction engine.
package inventory

import "strings"

// ResolveVariant maps a compound variant id plus the stored color/size fields
// to a (productID, color, size) triple.
//
// Variant ids look like "{productId}-{color}-{size}", but color and size may
// themselves contain hyphens ("Daydream Blue", "10-12Y"), so the id cannot be
// decomposed by splitting. Only the prefix up to the first hyphen is
// trustworthy (product ids never contain hyphens); color and size are passed
// through verbatim from the fields stored alongside the item.
func ResolveVariant(itemID, storedColor, storedSize string) (productID, color, size string) {
	productID = itemID
	if i := strings.Index(itemID, "-"); i > 0 {
		productID = itemID[:i]
	}
	return productID, storedColor, storedSize
}
