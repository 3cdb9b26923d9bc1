package pricing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/angelmondragon/daypass-backend/internal/catalog"
	"github.com/angelmondragon/daypass-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/daypass-backend/pkg/errors"
)

// MaxQuantity is the most passes a buyer may take for one day and category.
const MaxQuantity = 2

// Selection maps (day, category) to a quantity in {0,1,2}. The zero value is
// an empty selection and is ready to use.
type Selection struct {
	qty map[catalog.Key]int
}

// NewSelection returns an empty selection.
func NewSelection() Selection {
	return Selection{qty: map[catalog.Key]int{}}
}

// Set records qty for key. Setting 0 removes the key. An invalid key or a
// quantity outside 0..2 panics; untrusted input goes through ParseSelection.
func (s *Selection) Set(key catalog.Key, qty int) {
	if !key.Valid() {
		panic(fmt.Sprintf("pricing: invalid selection key %s", key))
	}
	if qty < 0 || qty > MaxQuantity {
		panic(fmt.Sprintf("pricing: quantity %d out of range 0..%d", qty, MaxQuantity))
	}
	if s.qty == nil {
		s.qty = map[catalog.Key]int{}
	}
	if qty == 0 {
		delete(s.qty, key)
		return
	}
	s.qty[key] = qty
}

// Quantity returns the selected quantity for key (0 when unselected).
func (s Selection) Quantity(key catalog.Key) int {
	return s.qty[key]
}

// IsEmpty reports whether nothing is selected.
func (s Selection) IsEmpty() bool {
	return len(s.qty) == 0
}

// Keys lists the selected keys in matrix order.
func (s Selection) Keys() []catalog.Key {
	keys := make([]catalog.Key, 0, len(s.qty))
	for key := range s.qty {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Index() < keys[j].Index() })
	return keys
}

// Days returns the selected days of category in ascending order.
func (s Selection) Days(category enums.Category) []int {
	days := []int{}
	for day := catalog.MinDay; day <= catalog.MaxDay; day++ {
		if s.qty[catalog.Key{Day: day, Category: category}] > 0 {
			days = append(days, day)
		}
	}
	return days
}

// DistinctDays counts the days of category with a positive quantity.
func (s Selection) DistinctDays(category enums.Category) int {
	return len(s.Days(category))
}

// TotalUnits sums the quantities selected for category.
func (s Selection) TotalUnits(category enums.Category) int {
	total := 0
	for key, qty := range s.qty {
		if key.Category == category {
			total += qty
		}
	}
	return total
}

// Item is one untrusted selection entry as submitted by a buyer.
type Item struct {
	Day      int    `json:"day" validate:"min=1,max=6"`
	Category string `json:"category" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=0,max=2"`
}

// ParseSelection validates untrusted items and builds a Selection. Any
// malformed or repeated entry is reported as a validation error.
func ParseSelection(items []Item) (Selection, error) {
	sel := NewSelection()
	details := map[string]string{}
	seen := map[catalog.Key]int{}

	for i, item := range items {
		field := fmt.Sprintf("items[%d]", i)
		category, err := enums.ParseCategory(item.Category)
		if err != nil {
			details[field+".category"] = "must be M or F"
			continue
		}
		if !catalog.ValidDay(item.Day) {
			details[field+".day"] = fmt.Sprintf("must be between %d and %d", catalog.MinDay, catalog.MaxDay)
			continue
		}
		if item.Quantity < 0 || item.Quantity > MaxQuantity {
			details[field+".quantity"] = fmt.Sprintf("must be between 0 and %d", MaxQuantity)
			continue
		}
		key := catalog.Key{Day: item.Day, Category: category}
		if prev, dup := seen[key]; dup {
			details[field] = fmt.Sprintf("repeats items[%d]", prev)
			continue
		}
		seen[key] = i
		sel.Set(key, item.Quantity)
	}

	if len(details) > 0 {
		return Selection{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid selection").WithDetails(details)
	}
	return sel, nil
}

func (s Selection) String() string {
	parts := make([]string, 0, len(s.qty))
	for _, key := range s.Keys() {
		parts = append(parts, fmt.Sprintf("d%d%s:%d", key.Day, key.Category, s.qty[key]))
	}
	return "{" + strings.Join(parts, ",") + "}"
}
