package guides

import (
	"errors"
	"fmt"
)

// ErrInvalidProduct is returned when a raw value does not name a documentation product.
var ErrInvalidProduct = errors.New("guides: invalid product")

// Product identifies a top-level documentation section.
type Product string

const (
	ProductHack Product = "hack"
	ProductHHVM Product = "hhvm"
)

var products = []Product{ProductHack, ProductHHVM}

// Products returns every known product in display order.
func Products() []Product {
	out := make([]Product, len(products))
	copy(out, products)
	return out
}

// ParseProduct converts a raw path segment into a Product.
// Matching is exact: URLs always carry the lower-case form.
func ParseProduct(raw string) (Product, error) {
	for _, p := range products {
		if string(p) == raw {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidProduct, raw)
}

func (p Product) String() string { return string(p) }

// DisplayName is the human-readable product name.
func (p Product) DisplayName() string {
	switch p {
	case ProductHack:
		return "Hack"
	case ProductHHVM:
		return "HHVM"
	}
	return string(p)
}

// Valid reports whether p is a known product.
func (p Product) Valid() bool {
	_, err := ParseProduct(string(p))
	return err == nil
}
