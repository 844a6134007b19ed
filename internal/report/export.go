// Package report renders markdown monitor pages for the terminal and
// exports the final report to disk. Export is one-way generation;
// nothing here is ever parsed back.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Render formats markdown for terminal display at the given width. On
// renderer failure the raw markdown comes back unchanged — a plain
// report beats a blank panel.
func Render(markdown string, width int) string {
	if width <= 0 {
		return markdown
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return markdown
	}
	out, err := r.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.TrimRight(out, "\n")
}

var unsafeFilenameRe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// Filename derives a safe .md filename from a task title.
func Filename(taskTitle string) string {
	name := unsafeFilenameRe.ReplaceAllString(strings.TrimSpace(taskTitle), "-")
	name = strings.Trim(name, "-")
	if name == "" {
		name = "informe-final"
	}
	return name + ".md"
}

// Export writes a report's markdown under dir, atomically, and returns
// the written path.
func Export(dir, taskTitle, markdown string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	target := filepath.Join(dir, Filename(taskTitle))
	tmp := target + ".tmp"

	if err := os.WriteFile(tmp, []byte(markdown), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("rename report: %w", err)
	}
	return target, nil
}
