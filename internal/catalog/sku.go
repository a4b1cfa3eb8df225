// Package catalog holds domain helpers that belong to the catalog itself
// rather than to any one transport or storage layer.
package catalog

import (
	"fmt"
	"math/rand"
	"strings"
)

// SKUParts are the naming inputs for a candidate SKU. Any part may be
// empty; empty parts render as X-padding.
type SKUParts struct {
	BrandName   string
	ProductName string
	SizeName    string
	Color       string
}

// GenerateSKU composes a candidate SKU from truncated brand/product/size/
// color tokens plus a random 3-digit suffix, e.g. "DUL-WAL-5L-RED-042".
// It is a convenience default only: the caller may edit the result, and the
// database unique constraint on sku is the real enforcement point.
func GenerateSKU(p SKUParts) string {
	return fmt.Sprintf("%s-%s-%s-%s-%03d",
		token(p.BrandName, 3),
		token(p.ProductName, 3),
		token(p.SizeName, 2),
		token(p.Color, 3),
		rand.Intn(1000),
	)
}

// token upper-cases s, keeps only A-Z and 0-9, and truncates to n
// characters. Names like "2.5 Litre" or "Off-White" reduce to their
// alphanumerics; an input with none left pads with X.
func token(s string, n int) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	t := b.String()
	if t == "" {
		return strings.Repeat("X", n)
	}
	if len(t) > n {
		return t[:n]
	}
	return t
}
