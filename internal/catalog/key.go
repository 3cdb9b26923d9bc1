package catalog

import (
	"fmt"

	"github.com/angelmondragon/daypass-backend/pkg/enums"
)

const (
	MinDay = 1
	MaxDay = 6

	// MatrixSize is the number of products in a fully initialized batch.
	MatrixSize = MaxDay * 2
)

// Key is the natural key of a product within a batch.
type Key struct {
	Day      int            `json:"day"`
	Category enums.Category `json:"category"`
}

// ValidDay reports whether day is one of the six event days.
func ValidDay(day int) bool {
	return day >= MinDay && day <= MaxDay
}

// Valid reports whether both components of the key are in range.
func (k Key) Valid() bool {
	return ValidDay(k.Day) && k.Category.IsValid()
}

// Index returns the position of the key in the stable matrix order
// (day ascending, M before F), or -1 for an invalid key.
func (k Key) Index() int {
	if !k.Valid() {
		return -1
	}
	return (k.Day-MinDay)*len(enums.Categories()) + k.Category.Index()
}

func (k Key) String() string {
	return fmt.Sprintf("day %d/%s", k.Day, k.Category)
}

// Keys lists every valid key in matrix order.
func Keys() []Key {
	categories := enums.Categories()
	keys := make([]Key, 0, MatrixSize)
	for day := MinDay; day <= MaxDay; day++ {
		for _, category := range categories {
			keys = append(keys, Key{Day: day, Category: category})
		}
	}
	return keys
}

// DefaultName is the label shown for a product without a display name.
func DefaultName(day int) string {
	return fmt.Sprintf("Day %d", day)
}
