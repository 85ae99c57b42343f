package core

import "strings"

// CategoryGroup is one partition of the grouped view.
type CategoryGroup struct {
	Category Category `json:"category"`
	Items    []Item   `json:"items"`
}

// GroupByCategory partitions items by category for display. When search is
// non-empty, items whose name does not contain the case-folded search term
// are dropped first. Groups come out in the fixed category order, each
// preserving the relative insertion order of its items; categories with no
// matching items are omitted entirely. Every surviving item lands in exactly
// one group.
func GroupByCategory(items []Item, search string) []CategoryGroup {
	search = strings.ToLower(strings.TrimSpace(search))

	buckets := make(map[Category][]Item)
	for _, it := range items {
		if search != "" && !strings.Contains(strings.ToLower(it.Name), search) {
			continue
		}
		buckets[it.Category] = append(buckets[it.Category], it)
	}

	var out []CategoryGroup
	for _, cat := range Categories() {
		if group, ok := buckets[cat]; ok {
			out = append(out, CategoryGroup{Category: cat, Items: group})
		}
	}
	return out
}
