package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wisalhq/wisal-admin/internal/api"
)

// beneficiariesLoadedMsg carries one page of the beneficiary registry
type beneficiariesLoadedMsg struct {
	list *api.ListBeneficiariesResponse
	err  error
}

// beneficiariesScreen is the beneficiary registry table
type beneficiariesScreen struct {
	svc    Services
	styles Styles

	table   table.Model
	page    int
	total   int
	loaded  bool
	errText string
}

func newBeneficiariesScreen(svc Services, styles Styles, height int) *beneficiariesScreen {
	cols := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "National ID", Width: 14},
		{Title: "Phone", Width: 14},
		{Title: "Family", Width: 6},
		{Title: "Address", Width: 28},
	}

	return &beneficiariesScreen{
		svc:    svc,
		styles: styles,
		table:  newTable(cols, height),
		page:   1,
	}
}

func (s *beneficiariesScreen) Init() tea.Cmd {
	s.loaded = false
	return loadBeneficiariesCmd(s.svc, s.page)
}

func (s *beneficiariesScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case beneficiariesLoadedMsg:
		s.loaded = true
		if msg.err != nil {
			s.errText = pageError(msg.err)
			return s, nil
		}
		s.errText = ""
		s.total = msg.list.TotalCount

		rows := make([]table.Row, 0, len(msg.list.Beneficiaries))
		for _, b := range msg.list.Beneficiaries {
			rows = append(rows, table.Row{
				b.Name, b.NationalID, b.Phone, fmt.Sprintf("%d", b.FamilySize), b.Address,
			})
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

func (s *beneficiariesScreen) View() string {
	if !s.loaded {
		return s.styles.Muted.Render("Loading beneficiaries...")
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

func (s *beneficiariesScreen) capturing() bool {
	return false
}

func loadBeneficiariesCmd(svc Services, page int) tea.Cmd {
	return func() tea.Msg {
		inst := svc.Session.State().InstitutionID
		list, err := svc.Client.ListBeneficiaries(context.Background(), inst, page, listPageSize)
		return beneficiariesLoadedMsg{list: list, err: err}
	}
}
