package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/daypass-backend/internal/catalog"
	"github.com/angelmondragon/daypass-backend/pkg/enums"
)

// PriceSource resolves the product behind a (day, category) pair.
// *catalog.Model satisfies it.
type PriceSource interface {
	Lookup(day int, category enums.Category) (catalog.Product, bool)
}

// Line is the priced result for one selected day.
type Line struct {
	Day            int               `json:"day"`
	Quantity       int               `json:"quantity"`
	UnitPrices     []decimal.Decimal `json:"unit_prices"`
	Total          decimal.Decimal   `json:"total"`
	ReferenceTotal decimal.Decimal   `json:"reference_total"`
}

// CategoryQuote is the priced result for one category.
type CategoryQuote struct {
	Category       enums.Category  `json:"category"`
	DistinctDays   int             `json:"distinct_days"`
	TotalUnits     int             `json:"total_units"`
	Total          decimal.Decimal `json:"category_total"`
	ReferenceTotal decimal.Decimal `json:"reference_total"`
	Savings        decimal.Decimal `json:"savings"`
	Lines          []Line          `json:"lines"`
}

// Quote is the priced result of a full selection.
type Quote struct {
	Categories     []CategoryQuote `json:"categories"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
	ReferenceTotal decimal.Decimal `json:"reference_total"`
	Savings        decimal.Decimal `json:"savings"`
}

// Category returns the quote for category, or a zero quote when absent.
func (q Quote) Category(category enums.Category) CategoryQuote {
	for _, c := range q.Categories {
		if c.Category == category {
			return c
		}
	}
	return zeroCategory(category)
}

// Price computes the quote for sel against src. Each category is priced on
// its own: with n distinct days selected, a single pass costs bracket n, and
// a double pass costs bracket 1 plus bracket n. The reference total charges
// every unit at bracket 1.
//
// Price does not check availability and does not consult src for an empty
// selection. A selected key that src cannot resolve panics.
func Price(src PriceSource, sel Selection) Quote {
	out := Quote{
		Categories:     make([]CategoryQuote, 0, len(enums.Categories())),
		GrandTotal:     decimal.Zero,
		ReferenceTotal: decimal.Zero,
		Savings:        decimal.Zero,
	}
	for _, category := range enums.Categories() {
		cq := priceCategory(src, sel, category)
		out.Categories = append(out.Categories, cq)
		out.GrandTotal = out.GrandTotal.Add(cq.Total)
		out.ReferenceTotal = out.ReferenceTotal.Add(cq.ReferenceTotal)
	}
	out.Savings = out.ReferenceTotal.Sub(out.GrandTotal)
	return out
}

func priceCategory(src PriceSource, sel Selection, category enums.Category) CategoryQuote {
	cq := zeroCategory(category)
	days := sel.Days(category)
	if len(days) == 0 {
		return cq
	}

	distinct := len(days)
	cq.DistinctDays = distinct
	cq.TotalUnits = sel.TotalUnits(category)

	for _, day := range days {
		product, ok := src.Lookup(day, category)
		if !ok {
			panic(fmt.Sprintf("pricing: no product for day %d/%s", day, category))
		}
		qty := sel.Quantity(catalog.Key{Day: day, Category: category})
		line := priceLine(product.Brackets, day, qty, distinct)

		cq.Lines = append(cq.Lines, line)
		cq.Total = cq.Total.Add(line.Total)
		cq.ReferenceTotal = cq.ReferenceTotal.Add(line.ReferenceTotal)
	}
	cq.Savings = cq.ReferenceTotal.Sub(cq.Total)
	return cq
}

func priceLine(brackets catalog.Brackets, day, qty, distinct int) Line {
	var units []decimal.Decimal
	switch qty {
	case 1:
		units = []decimal.Decimal{brackets.At(distinct)}
	case 2:
		units = []decimal.Decimal{brackets.At(1), brackets.At(distinct)}
	}

	total := decimal.Zero
	for _, unit := range units {
		total = total.Add(unit)
	}
	return Line{
		Day:            day,
		Quantity:       qty,
		UnitPrices:     units,
		Total:          total,
		ReferenceTotal: brackets.At(1).Mul(decimal.NewFromInt(int64(qty))),
	}
}

func zeroCategory(category enums.Category) CategoryQuote {
	return CategoryQuote{
		Category:       category,
		Total:          decimal.Zero,
		ReferenceTotal: decimal.Zero,
		Savings:        decimal.Zero,
		Lines:          []Line{},
	}
}
