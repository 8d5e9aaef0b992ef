// Package browse implements the public article browser: grouping by
// category, category tabs and per-section "show more" expansion.
package browse

import (
	"sort"
	"strings"

	"github.com/Faisalali0159/besofy/internal/domain"
)

// sectionLabels are the public section headings. They differ from the
// admin labels in domain.
var sectionLabels = map[domain.Category]string{
	domain.CategoryCrypto:      "Cryptocurrency",
	domain.CategoryStocks:      "Stock Market",
	domain.CategoryCommodities: "Commodities",
	domain.CategoryMarkets:     "Global Markets",
	domain.CategoryTech:        "Technology",
}

// SectionLabel returns the heading for c, matched case-insensitively, or
// its raw value when unknown.
func SectionLabel(c domain.Category) string {
	if label, ok := sectionLabels[domain.Category(strings.ToLower(string(c)))]; ok {
		return label
	}
	return string(c)
}

// Group is the articles of one category, newest first.
type Group struct {
	Category domain.Category
	Items    []domain.ArticleSummary
}

// GroupByCategory partitions items by category. Groups appear in the order
// their category first appears in items; each group is sorted by creation
// time descending, keeping input order for equal times. Running it again
// over its own flattened output yields the same groups.
func GroupByCategory(items []domain.ArticleSummary) []Group {
	index := make(map[domain.Category]int)
	var groups []Group

	for _, item := range items {
		i, ok := index[item.Category]
		if !ok {
			i = len(groups)
			index[item.Category] = i
			groups = append(groups, Group{Category: item.Category})
		}
		groups[i].Items = append(groups[i].Items, item)
	}

	for _, g := range groups {
		sortNewestFirst(g.Items)
	}
	return groups
}

// Flatten concatenates groups back into one sequence.
func Flatten(groups []Group) []domain.ArticleSummary {
	var out []domain.ArticleSummary
	for _, g := range groups {
		out = append(out, g.Items...)
	}
	return out
}

func sortNewestFirst(items []domain.ArticleSummary) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
