package console

import (
	"strings"

	"github.com/harunnryd/contribdesk/internal/approval"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
)

type TableRenderer struct {
	headerStyle  lipgloss.Style
	cellStyle    lipgloss.Style
	oddRowStyle  lipgloss.Style
	evenRowStyle lipgloss.Style
	borderStyle  lipgloss.Style
}

func NewTableRenderer() *TableRenderer {
	purple := lipgloss.Color("99")
	gray := lipgloss.Color("245")
	lightGray := lipgloss.Color("241")

	return &TableRenderer{
		headerStyle: lipgloss.NewStyle().
			Foreground(purple).
			Bold(true).
			Align(lipgloss.Center).
			Padding(0, 1),
		cellStyle: lipgloss.NewStyle().
			Padding(0, 1),
		oddRowStyle: lipgloss.NewStyle().
			Foreground(gray).
			Padding(0, 1),
		evenRowStyle: lipgloss.NewStyle().
			Foreground(lightGray).
			Padding(0, 1),
		borderStyle: lipgloss.NewStyle().
			Foreground(purple),
	}
}

// RenderList draws one row per approval, in store order.
func (r *TableRenderer) RenderList(records []approval.Record) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return r.headerStyle
			case row%2 == 0:
				return r.evenRowStyle
			default:
				return r.oddRowStyle
			}
		}).
		Headers("ID", "Kind", "Name", "Category", "Contributor", "Approved")

	for _, rec := range records {
		t.Row(
			rec.ID,
			displayKind(rec.Kind),
			truncateString(orDash(rec.Name()), 30),
			truncateString(orDash(rec.Category()), 20),
			truncateString(orDash(rec.ContributorEmail), 30),
			rec.ApprovedDate(),
		)
	}

	return t.String()
}

// RenderDetail draws the expanded view of one approval.
func (r *TableRenderer) RenderDetail(rec approval.Record) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return r.headerStyle
			}
			return r.cellStyle
		})

	t.Row("ID", rec.ID)
	t.Row("Kind", displayKind(rec.Kind))
	t.Row("Name", orDash(rec.Name()))
	t.Row("Category", orDash(rec.Category()))
	t.Row("Description", truncateString(orDash(rec.Description()), 60))
	if label, value := rec.Details(); label != "" {
		t.Row(label, truncateString(orDash(value), 60))
	}
	for _, key := range sortedKeys(rec.Extra) {
		t.Row(key, truncateString(orDash(rec.Extra[key]), 60))
	}
	t.Row("Contributor", orDash(rec.ContributorEmail))
	t.Row("Approved", rec.ApprovedDate())
	t.Row("Review notes", truncateString(orDash(rec.ReviewNotes), 60))

	return t.String()
}

func displayKind(k approval.Kind) string {
	if k.IsKnown() {
		return k.String()
	}
	if k == "" {
		return "?"
	}
	return k.String() + " (unknown)"
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
