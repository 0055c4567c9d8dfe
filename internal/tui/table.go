package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/wisalhq/wisal-admin/internal/api"
)

// listPageSize is the page size every table screen requests
const listPageSize = 20

// newTable builds a focused bubbles table with the dashboard's styling
func newTable(cols []table.Column, height int) table.Model {
	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("241")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("36")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// pageLine renders the "page X of Y" footer under a table
func pageLine(styles Styles, page, total int) string {
	pages := (total + listPageSize - 1) / listPageSize
	if pages < 1 {
		pages = 1
	}
	return styles.Muted.Render(fmt.Sprintf("page %d of %d (%d total) · ←/→ to page", page, pages, total))
}

// pageError is the page-level text for a failed resource load. The server's
// message is used as-is when it has one; everything else collapses to a
// generic retry line.
func pageError(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "Something went wrong loading this screen. Press r to retry."
}
