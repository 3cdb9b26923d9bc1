package enums

import (
	"fmt"
	"strings"
)

// Category partitions the catalog into the two buyer variants sold per day.
type Category string

const (
	CategoryM Category = "M"
	CategoryF Category = "F"
)

// validCategories is ordered; catalog listings follow it within a day.
var validCategories = []Category{
	CategoryM,
	CategoryF,
}

// Categories returns the fixed category order (M before F).
func Categories() []Category {
	out := make([]Category, len(validCategories))
	copy(out, validCategories)
	return out
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// IsValid reports whether the value is a known Category.
func (c Category) IsValid() bool {
	for _, candidate := range validCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// Index returns the position of c in the fixed order, or -1.
func (c Category) Index() int {
	for i, candidate := range validCategories {
		if candidate == c {
			return i
		}
	}
	return -1
}

// ParseCategory converts raw input into a Category. Input is case-insensitive.
func ParseCategory(value string) (Category, error) {
	normalized := Category(strings.ToUpper(strings.TrimSpace(value)))
	if normalized.IsValid() {
		return normalized, nil
	}
	return "", fmt.Errorf("invalid category %q", value)
}
