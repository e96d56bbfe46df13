package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/wI2L/jsondiff"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	faint       = lipgloss.NewStyle().Faint(true)
)

// printTable renders rows under headers. An empty table prints the note instead.
func printTable(w io.Writer, headers []string, rows [][]string, empty string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, faint.Render(empty))
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(w, t.Render())
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// printPatch lists JSON Patch operations, one per line.
func printPatch(w io.Writer, patch jsondiff.Patch) {
	if len(patch) == 0 {
		fmt.Fprintln(w, "No differences: activating would keep the current data.")
		return
	}

	for _, op := range patch {
		line := fmt.Sprintf("%-8s %s", op.Type, op.Path)
		if op.Type != jsondiff.OperationRemove {
			if b, err := json.Marshal(op.Value); err == nil {
				line += " " + clamp(string(b), 80)
			}
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "%d change(s)\n", len(patch))
}

func clamp(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
