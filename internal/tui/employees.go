package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wisalhq/wisal-admin/internal/api"
)

// employeesLoadedMsg carries one page of staff accounts
type employeesLoadedMsg struct {
	list *api.ListEmployeesResponse
	err  error
}

// employeesScreen is the staff accounts table
type employeesScreen struct {
	svc    Services
	styles Styles

	table   table.Model
	page    int
	total   int
	loaded  bool
	errText string
}

func newEmployeesScreen(svc Services, styles Styles, height int) *employeesScreen {
	cols := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Email", Width: 28},
		{Title: "Role", Width: 12},
		{Title: "Phone", Width: 14},
	}

	return &employeesScreen{
		svc:    svc,
		styles: styles,
		table:  newTable(cols, height),
		page:   1,
	}
}

func (s *employeesScreen) Init() tea.Cmd {
	s.loaded = false
	return loadEmployeesCmd(s.svc, s.page)
}

func (s *employeesScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case employeesLoadedMsg:
		s.loaded = true
		if msg.err != nil {
			s.errText = pageError(msg.err)
			return s, nil
		}
		s.errText = ""
		s.total = msg.list.TotalCount

		rows := make([]table.Row, 0, len(msg.list.Employees))
		for _, e := range msg.list.Employees {
			rows = append(rows, table.Row{e.Name, e.Email, e.Role, e.Phone})
		}
		s.table.SetRows(rows)
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "left":
			if s.page > 1 {
				s.page--
				return s, s.Init()
			}
			return s, nil
		case "right":
			if s.page*listPageSize < s.total {
				s.page++
				return s, s.Init()
			}
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.table, cmd = s.table.Update(msg)
	return s, cmd
}

func (s *employeesScreen) View() string {
	if !s.loaded {
		return s.styles.Muted.Render("Loading employees...")
	}
	if s.errText != "" {
		return s.styles.Error.Render(s.errText)
	}

	var b strings.Builder
	b.WriteString(s.table.View())
	b.WriteString("\n")
	b.WriteString(pageLine(s.styles, s.page, s.total))
	b.WriteString("\n")
	return b.String()
}

func (s *employeesScreen) capturing() bool {
	return false
}

func loadEmployeesCmd(svc Services, page int) tea.Cmd {
	return func() tea.Msg {
		inst := svc.Session.State().InstitutionID
		list, err := svc.Client.ListEmployees(context.Background(), inst, page, listPageSize)
		return employeesLoadedMsg{list: list, err: err}
	}
}
