package enums

import "fmt"

// ProductKind distinguishes how a catalog entry participates in stock and
// binding flows.
type ProductKind string

const (
	// ProductKindSingle is a plain sellable product.
	ProductKindSingle ProductKind = "single"
	// ProductKindVariantParent groups generated variant items and is never
	// bound or stocked directly.
	ProductKindVariantParent ProductKind = "variant_parent"
	// ProductKindVariantItem is one generated variant of a parent.
	ProductKindVariantItem ProductKind = "variant_item"
	// ProductKindKit bundles other products under one SKU.
	ProductKindKit ProductKind = "kit"
)

var validProductKinds = []ProductKind{
	ProductKindSingle,
	ProductKindVariantParent,
	ProductKindVariantItem,
	ProductKindKit,
}

// String implements fmt.Stringer.
func (k ProductKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known ProductKind.
func (k ProductKind) IsValid() bool {
	for _, candidate := range validProductKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// Stockable reports whether stock records may exist for this kind.
func (k ProductKind) Stockable() bool {
	return k == ProductKindSingle || k == ProductKindVariantItem || k == ProductKindKit
}

// ParseProductKind converts raw input into a ProductKind.
func ParseProductKind(value string) (ProductKind, error) {
	for _, candidate := range validProductKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product kind %q", value)
}
