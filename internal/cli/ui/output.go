package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/sprout-cli/sprout/internal/core/metadata"
	"github.com/sprout-cli/sprout/internal/core/worktree"
)

// Print functions for consistent output

func Error(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorIcon, ErrorStyle.Render(fmt.Sprintf(format, args...)))
}

func Success(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", SuccessIcon, SuccessStyle.Render(fmt.Sprintf(format, args...)))
}

func Info(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", InfoIcon, InfoStyle.Render(fmt.Sprintf(format, args...)))
}

func Warning(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", WarningIcon, WarningStyle.Render(fmt.Sprintf(format, args...)))
}

// FormatCommitTime renders a unix commit timestamp for the list view.
// Zero means no commit could be read and renders as a dash.
func FormatCommitTime(ts int64) string {
	if ts == 0 {
		return "-"
	}
	return time.Unix(ts, 0).Format("2006-01-02 15:04")
}

// PrintWorktreeList displays worktree rows using a table
func PrintWorktreeList(rows []worktree.Row) {
	if len(rows) == 0 {
		Info("No worktrees found")
		return
	}

	tbl := NewTable("NAME", "BRANCH", "PATH", "LAST COMMIT", "STATUS")

	for _, row := range rows {
		status := string(row.Status)
		if row.Status == worktree.StatusDangling {
			status = WarningStyle.Render(status)
		}
		tbl.AddRow(row.Name, row.Branch, row.Path, FormatCommitTime(row.LastCommit), status)
	}

	PrintSectionHeader(SproutIcon, "Worktrees", len(rows))
	tbl.Print()
	fmt.Println()
}

// PrintWorktreeDetails displays a single worktree entry
func PrintWorktreeDetails(entry metadata.Entry) {
	fmt.Printf("   %s %s\n", DimStyle.Render("Branch:"), entry.Branch)
	fmt.Printf("   %s %s\n", DimStyle.Render("Path:"), entry.Path)
	fmt.Printf("   %s %s\n", DimStyle.Render("Source:"), entry.SourceRepo)
}
