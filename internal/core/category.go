package core

import "strings"

// Category is one of the fixed set of labels an item is filed under.
type Category string

const (
	CategoryLaticinios Category = "Laticínios"
	CategoryHortifruti Category = "Hortifruti"
	CategoryCarnes     Category = "Carnes"
	CategoryPadaria    Category = "Padaria"
	CategoryBebidas    Category = "Bebidas"
	CategoryLimpeza    Category = "Limpeza"
	CategoryOutros     Category = "Outros"
)

// categoryRule pairs a label with the keywords that select it. Rules are
// tested in slice order; the first match wins, so the order is part of the
// classification contract.
type categoryRule struct {
	Label    Category
	Keywords []string
}

var categoryRules = []categoryRule{
	{CategoryLaticinios, []string{"leite", "queijo", "iogurte"}},
	{CategoryHortifruti, []string{"maçã", "banana", "alface"}},
	{CategoryCarnes, []string{"frango", "carne", "peixe"}},
	{CategoryPadaria, []string{"pão", "bolo"}},
	{CategoryBebidas, []string{"coca-cola", "suco", "água"}},
	{CategoryLimpeza, []string{"sabão", "detergente", "amaciante"}},
}

// Categories returns every known label in display order, Outros last.
func Categories() []Category {
	out := make([]Category, 0, len(categoryRules)+1)
	for _, r := range categoryRules {
		out = append(out, r.Label)
	}
	return append(out, CategoryOutros)
}

// Classify maps a product name to a category by case-folded substring
// matching. The match is bidirectional: "leite" matches "Leite Integral" and
// the partial input "iogur" matches the keyword "iogurte". Names that match
// no rule fall back to Outros; Classify never fails.
func Classify(name string) Category {
	folded := strings.ToLower(strings.TrimSpace(name))
	if folded == "" {
		return CategoryOutros
	}
	for _, rule := range categoryRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(folded, kw) || strings.Contains(kw, folded) {
				return rule.Label
			}
		}
	}
	return CategoryOutros
}

// Valid reports whether c is one of the known labels.
func (c Category) Valid() bool {
	if c == CategoryOutros {
		return true
	}
	for _, r := range categoryRules {
		if r.Label == c {
			return true
		}
	}
	return false
}
