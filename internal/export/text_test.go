package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"listinha/internal/core"
)

func sampleList(t *testing.T) *core.List {
	t.Helper()
	l := core.NewList("list-1", "Minha Lista")
	if _, err := l.AddItem("Arroz", 1, core.Money{Cents: 2550}); err != nil {
		t.Fatal(err)
	}
	if _, err := l.AddItem("Leite", 2, core.Money{Cents: 450}); err != nil {
		t.Fatal(err)
	}
	if err := l.SetBudget(core.Money{Cents: 10000}); err != nil {
		t.Fatal(err)
	}
	return l
}

func TestRenderList(t *testing.T) {
	out := RenderList(sampleList(t))

	for _, want := range []string{
		"Minha Lista",
		"Laticínios",
		"2x Leite  R$ 9.00",
		"Outros",
		"1x Arroz  R$ 25.50",
		"Total: R$ 34.50",
		"Orçamento: R$ 100.00 (34%)",
		"Restante: R$ 65.50",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// Category order follows the classifier's priority order.
	if strings.Index(out, "Laticínios") > strings.Index(out, "Outros") {
		t.Errorf("categories out of order:\n%s", out)
	}
}

func TestRenderListNoBudget(t *testing.T) {
	l := core.NewList("list-1", "Compras")
	out := RenderList(l)
	if strings.Contains(out, "Orçamento") {
		t.Errorf("budget footer without a budget:\n%s", out)
	}
	if !strings.Contains(out, "(lista vazia)") {
		t.Errorf("missing empty marker:\n%s", out)
	}
}

func TestWriteRecord(t *testing.T) {
	l := sampleList(t)
	rec, _, err := l.Finalize("list-2")
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path, err := WriteRecord(dir, rec)
	if err != nil {
		t.Fatalf("WriteRecord: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("path %q not under %q", path, dir)
	}
	if !strings.Contains(filepath.Base(path), "list-1") {
		t.Fatalf("file name %q missing list id", filepath.Base(path))
	}

	blob, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(blob), "Finalizada em") {
		t.Errorf("missing archival header:\n%s", blob)
	}
	if !strings.Contains(string(blob), "Total: R$ 34.50") {
		t.Errorf("missing total:\n%s", blob)
	}

	// Re-delivery of the same record lands on the same file.
	again, err := WriteRecord(dir, rec)
	if err != nil {
		t.Fatal(err)
	}
	if again != path {
		t.Fatalf("re-delivery produced %q, want %q", again, path)
	}
}
