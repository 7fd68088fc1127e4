// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todo/internal/task"
)

const (
	// NoTasks is printed by list when there is nothing to show.
	NoTasks = "no tasks found"
)

// FormatTask formats one task line.
// Format: "{ID:>4}  [x] {TITLE}\n" (4-wide right-aligned id, two spaces, checkbox, title)
func FormatTask(w io.Writer, t task.Task) {
	fmt.Fprintf(w, "%4d  %s %s\n", t.ID(), Checkbox(t.Completed()), NormalizeTitle(t.Title()))
}

// FormatTasks formats every task in order.
func FormatTasks(w io.Writer, tasks []task.Task) {
	for _, t := range tasks {
		FormatTask(w, t)
	}
}

// FormatCounts formats the summary line shown under a non-empty list.
func FormatCounts(w io.Writer, c task.Counts) {
	fmt.Fprintln(w, CountsLine(c))
}

// CountsLine returns "Completed N out of M tasks."
func CountsLine(c task.Counts) string {
	return fmt.Sprintf("Completed %d out of %d tasks.", c.Completed, c.Total)
}

// Checkbox returns "[x]" for completed tasks and "[ ]" otherwise.
func Checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// NormalizeTitle prepares a task title for single-line display.
// Newlines are replaced with spaces.
func NormalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	return title
}
