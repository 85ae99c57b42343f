package core

import "testing"

func seedList(t *testing.T) *List {
	t.Helper()
	l := NewList("l1", "")
	for _, it := range []struct {
		name  string
		cents int64
	}{
		{"Leite Integral", 450},
		{"Banana Prata", 300},
		{"Queijo Minas", 2500},
		{"Detergente", 250},
		{"Produto Misterioso", 999},
	} {
		if _, err := l.AddItem(it.name, 1, Money{Cents: it.cents}); err != nil {
			t.Fatalf("AddItem(%q): %v", it.name, err)
		}
	}
	return l
}

func TestGroupByCategory(t *testing.T) {
	l := seedList(t)
	groups := GroupByCategory(l.Items, "")

	// Laticínios, Hortifruti, Limpeza, Outros — in category order, no empties.
	wantOrder := []Category{CategoryLaticinios, CategoryHortifruti, CategoryLimpeza, CategoryOutros}
	if len(groups) != len(wantOrder) {
		t.Fatalf("group count = %d, want %d (%+v)", len(groups), len(wantOrder), groups)
	}
	for i, g := range groups {
		if g.Category != wantOrder[i] {
			t.Errorf("group[%d] = %q, want %q", i, g.Category, wantOrder[i])
		}
		if len(g.Items) == 0 {
			t.Errorf("group %q came out empty", g.Category)
		}
	}

	// Union of groups equals the item set, each item exactly once.
	seen := make(map[int64]int)
	total := 0
	for _, g := range groups {
		for _, it := range g.Items {
			seen[it.ID]++
			total++
			if it.Category != g.Category {
				t.Errorf("item %d in group %q has category %q", it.ID, g.Category, it.Category)
			}
		}
	}
	if total != len(l.Items) {
		t.Fatalf("grouped %d items, want %d", total, len(l.Items))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("item %d appeared %d times", id, n)
		}
	}
}

func TestGroupByCategoryPreservesInsertionOrder(t *testing.T) {
	l := seedList(t)
	groups := GroupByCategory(l.Items, "")
	// Items are newest-first; Queijo Minas (added later) must precede
	// Leite Integral inside the dairy group.
	if groups[0].Category != CategoryLaticinios {
		t.Fatalf("first group = %q", groups[0].Category)
	}
	dairy := groups[0].Items
	if len(dairy) != 2 || dairy[0].Name != "Queijo Minas" || dairy[1].Name != "Leite Integral" {
		t.Fatalf("dairy order = %+v", dairy)
	}
}

func TestGroupByCategorySearchFilter(t *testing.T) {
	l := seedList(t)

	groups := GroupByCategory(l.Items, "LEITE")
	if len(groups) != 1 || groups[0].Category != CategoryLaticinios {
		t.Fatalf("filtered groups = %+v", groups)
	}
	if len(groups[0].Items) != 1 || groups[0].Items[0].Name != "Leite Integral" {
		t.Fatalf("filtered items = %+v", groups[0].Items)
	}

	if groups := GroupByCategory(l.Items, "zzz"); groups != nil {
		t.Fatalf("no-match search must yield no groups, got %+v", groups)
	}
}

func TestGroupByCategoryEmptyInput(t *testing.T) {
	if groups := GroupByCategory(nil, ""); groups != nil {
		t.Fatalf("empty input must yield no groups, got %+v", groups)
	}
}
