package domain

import "strings"

// Category labels a news article. The known set is closed, but values
// outside it are carried through untouched.
type Category string

const (
	CategoryCrypto      Category = "crypto"
	CategoryStocks      Category = "stocks"
	CategoryCommodities Category = "commodities"
	CategoryMarkets     Category = "markets"
	CategoryTech        Category = "tech"
)

// ValidCategories contains all known categories in display order.
var ValidCategories = []Category{
	CategoryCrypto,
	CategoryStocks,
	CategoryCommodities,
	CategoryMarkets,
	CategoryTech,
}

var categoryLabels = map[Category]string{
	CategoryCrypto:      "Cryptocurrency",
	CategoryStocks:      "Stock Market",
	CategoryCommodities: "Oil & Gold",
	CategoryMarkets:     "Markets",
	CategoryTech:        "Technology",
}

// IsKnown reports whether c is one of ValidCategories.
func (c Category) IsKnown() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the admin display label, falling back to the raw value.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Matches reports whether c equals name ignoring case.
func (c Category) Matches(name string) bool {
	return strings.EqualFold(string(c), name)
}
