package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wisalhq/wisal-admin/internal/api"
)

// distributionPhase is which pane of the distribution center is active
type distributionPhase int

const (
	phaseRounds distributionPhase = iota
	phaseAllocations
)

// roundsLoadedMsg carries one page of distribution rounds
type roundsLoadedMsg struct {
	list *api.ListRoundsResponse
	err  error
}

// allocationsLoadedMsg carries one page of a round's allocations
type allocationsLoadedMsg struct {
	roundID string
	list    *api.ListAllocationsResponse
	err     error
}

// roundClosedMsg carries the outcome of closing a round
type roundClosedMsg struct {
	round *api.Round
	err   error
}

// distributionScreen is the distribution center: the rounds table, and an
// allocations pane for the round picked with enter
type distributionScreen struct {
	svc    Services
	styles Styles

	phase distributionPhase

	roundsTable table.Model
	rounds      []api.Round
	page        int
	total       int

	allocTable table.Model
	selected   *api.Round
	allocPage  int
	allocTotal int

	loaded  bool
	errText string
	flash   string
}

func newDistributionScreen(svc Services, styles Styles, height int) *distributionScreen {
	roundCols := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Status", Width: 10},
		{Title: "Starts", Width: 12},
		{Title: "Ends", Width: 12},
		{Title: "Description", Width: 30},
	}
	allocCols := []table.Column{
		{Title: "Coupon", Width: 14},
		{Title: "Beneficiary", Width: 26},
		{Title: "Amount", Width: 8},
		{Title: "Status", Width: 10},
	}

	return &distributionScreen{
		svc:         svc,
		styles:      styles,
		roundsTable: newTable(roundCols, height-2),
		allocTable:  newTable(allocCols, height-2),
		page:        1,
		allocPage:   1,
	}
}

func (s *distributionScreen) Init() tea.Cmd {
	s.loaded = false
	if s.phase == phaseAllocations && s.selected != nil {
		return loadAllocationsCmd(s.svc, s.selected.ID, s.allocPage)
	}
	return loadRoundsCmd(s.svc, s.page)
}

func (s *distributionScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case roundsLoadedMsg:
		s.loaded = true
		if msg.err != nil {
			s.errText = pageError(msg.err)
			return s, nil
		}
		s.errText = ""
		s.total = msg.list.TotalCount
		s.rounds = msg.list.Rounds

		rows := make([]table.Row, 0, len(s.rounds))
		for _, r := range s.rounds {
			rows = append(rows, table.Row{
				r.Name, r.Status,
				r.StartsAt.Format("2006-01-02"), r.EndsAt.Format("2006-01-02"),
				r.Description,
			})
		}
		s.roundsTable.SetRows(rows)
		return s, nil

	case allocationsLoadedMsg:
		s.loaded = true
		if msg.err != nil {
			s.errText = pageError(msg.err)
			return s, nil
		}
		s.errText = ""
		s.allocTotal = msg.list.TotalCount

		rows := make([]table.Row, 0, len(msg.list.Allocations))
		for _, a := range msg.list.Allocations {
			rows = append(rows, table.Row{
				a.CouponCode, a.BeneficiaryID, fmt.Sprintf("%d", a.Amount), a.Status,
			})
		}
		s.allocTable.SetRows(rows)
		return s, nil

	case roundClosedMsg:
		if msg.err != nil {
			s.flash = pageError(msg.err)
			return s, nil
		}
		s.flash = fmt.Sprintf("Closed round %q.", msg.round.Name)
		return s, loadRoundsCmd(s.svc, s.page)

	case tea.KeyMsg:
		if s.phase == phaseAllocations {
			return s.updateAllocationsKeys(msg)
		}
		return s.updateRoundsKeys(msg)
	}

	return s, nil
}

func (s *distributionScreen) updateRoundsKeys(msg tea.KeyMsg) (screen, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if r := s.selectedRound(); r != nil {
			s.selected = r
			s.phase = phaseAllocations
			s.allocPage = 1
			s.loaded = false
			s.flash = ""
			return s, loadAllocationsCmd(s.svc, r.ID, s.allocPage)
		}
		return s, nil

	case "c":
		if r := s.selectedRound(); r != nil && r.Status != api.RoundStatusClosed {
			return s, closeRoundCmd(s.svc, r.ID)
		}
		return s, nil

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

	var cmd tea.Cmd
	s.roundsTable, cmd = s.roundsTable.Update(msg)
	return s, cmd
}

func (s *distributionScreen) updateAllocationsKeys(msg tea.KeyMsg) (screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.phase = phaseRounds
		s.selected = nil
		s.errText = ""
		s.loaded = true
		return s, nil

	case "left":
		if s.allocPage > 1 {
			s.allocPage--
			return s, s.Init()
		}
		return s, nil

	case "right":
		if s.allocPage*listPageSize < s.allocTotal && s.selected != nil {
			s.allocPage++
			return s, s.Init()
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.allocTable, cmd = s.allocTable.Update(msg)
	return s, cmd
}

func (s *distributionScreen) selectedRound() *api.Round {
	i := s.roundsTable.Cursor()
	if i < 0 || i >= len(s.rounds) {
		return nil
	}
	return &s.rounds[i]
}

func (s *distributionScreen) View() string {
	if !s.loaded {
		return s.styles.Muted.Render("Loading distribution center...")
	}
	if s.errText != "" {
		return s.styles.Error.Render(s.errText)
	}

	var b strings.Builder

	if s.phase == phaseAllocations && s.selected != nil {
		b.WriteString(s.styles.Subtitle.Render("Allocations — " + s.selected.Name))
		b.WriteString("\n")
		b.WriteString(s.allocTable.View())
		b.WriteString("\n")
		b.WriteString(pageLine(s.styles, s.allocPage, s.allocTotal))
		b.WriteString("\n")
		b.WriteString(s.styles.Muted.Render("esc back to rounds"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(s.roundsTable.View())
	b.WriteString("\n")
	b.WriteString(pageLine(s.styles, s.page, s.total))
	b.WriteString("\n")
	if s.flash != "" {
		b.WriteString(s.styles.Success.Render(s.flash))
		b.WriteString("\n")
	}
	b.WriteString(s.styles.Muted.Render("enter allocations · c close round"))
	b.WriteString("\n")
	return b.String()
}

// capturing holds the keyboard inside the allocations pane so esc returns
// to the rounds table instead of leaving the screen
func (s *distributionScreen) capturing() bool {
	return s.phase == phaseAllocations
}

func loadRoundsCmd(svc Services, page int) tea.Cmd {
	return func() tea.Msg {
		inst := svc.Session.State().InstitutionID
		list, err := svc.Client.ListRounds(context.Background(), inst, page, listPageSize)
		return roundsLoadedMsg{list: list, err: err}
	}
}

func loadAllocationsCmd(svc Services, roundID string, page int) tea.Cmd {
	return func() tea.Msg {
		inst := svc.Session.State().InstitutionID
		list, err := svc.Client.ListAllocations(context.Background(), inst, roundID, page, listPageSize)
		return allocationsLoadedMsg{roundID: roundID, list: list, err: err}
	}
}

func closeRoundCmd(svc Services, roundID string) tea.Cmd {
	return func() tea.Msg {
		inst := svc.Session.State().InstitutionID
		round, err := svc.Client.CloseRound(context.Background(), inst, roundID)
		return roundClosedMsg{round: round, err: err}
	}
}
