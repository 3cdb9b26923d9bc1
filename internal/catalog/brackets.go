package catalog

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// BracketCount is the number of quantity-dependent unit prices per product.
const BracketCount = 6

// Brackets holds unit prices indexed 1..6. The k-th bracket is the unit
// price charged when the buyer commits to k distinct days.
type Brackets [BracketCount]decimal.Decimal

// At returns bracket k (1-based). k outside 1..6 is a caller bug.
func (b Brackets) At(k int) decimal.Decimal {
	if k < 1 || k > BracketCount {
		panic(fmt.Sprintf("catalog: bracket index %d out of range 1..%d", k, BracketCount))
	}
	return b[k-1]
}

// Column limits of the products table: prices numeric(10,2), stock integer.
const (
	PriceScale = 2
	MaxStock   = math.MaxInt32
)

// MaxPrice is the first amount numeric(10,2) cannot hold.
var MaxPrice = decimal.New(1, 10-PriceScale)

// Validate rejects unit prices the store cannot hold exactly: negative,
// at or above MaxPrice, or with more than two decimal places.
func (b Brackets) Validate() error {
	for i, price := range b {
		switch {
		case price.IsNegative():
			return fmt.Errorf("bracket %d must be non-negative", i+1)
		case price.GreaterThanOrEqual(MaxPrice):
			return fmt.Errorf("bracket %d must be below %s", i+1, MaxPrice.String())
		case !price.Equal(price.Truncate(PriceScale)):
			return fmt.Errorf("bracket %d must have at most %d decimal places", i+1, PriceScale)
		}
	}
	return nil
}

// NonIncreasing reports whether each bracket is at most the previous one.
func (b Brackets) NonIncreasing() bool {
	for i := 1; i < BracketCount; i++ {
		if b[i].GreaterThan(b[i-1]) {
			return false
		}
	}
	return true
}

// IsZero reports whether every bracket is zero.
func (b Brackets) IsZero() bool {
	for _, price := range b {
		if !price.IsZero() {
			return false
		}
	}
	return true
}

// BracketsFrom builds a bracket table from exactly six amounts.
func BracketsFrom(values []decimal.Decimal) (Brackets, error) {
	var out Brackets
	if len(values) != BracketCount {
		return out, fmt.Errorf("expected %d brackets, got %d", BracketCount, len(values))
	}
	copy(out[:], values)
	return out, nil
}

// ZeroBrackets returns the bracket table used by placeholder products.
func ZeroBrackets() Brackets {
	var out Brackets
	for i := range out {
		out[i] = decimal.Zero
	}
	return out
}
