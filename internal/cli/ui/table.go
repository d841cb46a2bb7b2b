package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/rodaine/table"
)

// NewTable creates a new table with consistent styling
func NewTable(headers ...interface{}) table.Table {
	tbl := table.New(headers...)

	// Bind the writer at call time rather than relying on the package-level
	// default, which captures os.Stdout at init and ignores later swaps
	tbl.WithWriter(os.Stdout)

	tbl.WithFirstColumnFormatter(func(format string, vals ...interface{}) string {
		return BoldStyle.Render(fmt.Sprintf(format, vals...))
	})

	tbl.WithPadding(2)

	// lipgloss.Width counts display width, not bytes, so styled cells
	// with ANSI codes still align
	tbl.WithWidthFunc(lipgloss.Width)

	return tbl
}

// PrintSectionHeader prints a consistent section header
func PrintSectionHeader(icon string, title string, count int) {
	fmt.Printf("\n%s %s (%d)\n", icon, title, count)
}
