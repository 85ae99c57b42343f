package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"listinha/internal/core"
)

// RenderList formats an active list as shareable plain text, grouped by
// category with per-line totals and the budget footer.
func RenderList(l *core.List) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", l.Name)
	fmt.Fprintf(&b, "%s\n", strings.Repeat("=", len([]rune(l.Name))))

	if len(l.Items) == 0 {
		b.WriteString("\n(lista vazia)\n")
	}

	for _, g := range core.GroupByCategory(l.Items, "") {
		fmt.Fprintf(&b, "\n%s\n", g.Category)
		for _, it := range g.Items {
			fmt.Fprintf(&b, "  %dx %s  %s\n", it.Quantity, it.Name, it.LineTotal())
		}
	}

	fmt.Fprintf(&b, "\nTotal: %s\n", core.Money{Cents: l.TotalCents})
	if l.Budget.Cents > 0 {
		pct, _ := l.SpentPercent()
		fmt.Fprintf(&b, "Orçamento: %s (%.0f%%)\n", l.Budget, pct)
		fmt.Fprintf(&b, "Restante: %s\n", l.Remaining())
	}
	return b.String()
}

// RenderRecord formats a finalized list for archival, with the finalization
// timestamp in the header.
func RenderRecord(rec core.HistoryRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Finalizada em %s\n\n", rec.FinalizedAt.Format("2006-01-02 15:04"))
	b.WriteString(RenderList(&rec.List))
	return b.String()
}

// WriteRecord writes a finalized list as a text file under dir and returns
// the file path. The name embeds the list ID and the finalization time so
// repeated deliveries of the same record overwrite rather than pile up.
func WriteRecord(dir string, rec core.HistoryRecord) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	name := fmt.Sprintf("%s_%s.txt", rec.FinalizedAt.UTC().Format("20060102T150405Z"), rec.List.ID)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(RenderRecord(rec)), 0o644); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	return path, nil
}
