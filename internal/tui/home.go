package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// homeStatsMsg carries the overview counters
type homeStatsMsg struct {
	beneficiaries int
	rounds        int
	posts         int
	employees     int
	err           error
}

// homeScreen is the admin overview: one counter card per resource
type homeScreen struct {
	svc    Services
	styles Styles

	stats   homeStatsMsg
	fetched bool
}

func newHomeScreen(svc Services, styles Styles) *homeScreen {
	return &homeScreen{svc: svc, styles: styles}
}

func (s *homeScreen) Init() tea.Cmd {
	s.fetched = false
	return homeStatsCmd(s.svc)
}

func (s *homeScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	if stats, ok := msg.(homeStatsMsg); ok {
		s.stats = stats
		s.fetched = true
	}
	return s, nil
}

func (s *homeScreen) View() string {
	if !s.fetched {
		return s.styles.Muted.Render("Loading overview...")
	}
	if s.stats.err != nil {
		return s.styles.Error.Render(pageError(s.stats.err))
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		s.card("Beneficiaries", s.stats.beneficiaries),
		s.card("Rounds", s.stats.rounds),
		s.card("Posts", s.stats.posts),
		s.card("Employees", s.stats.employees),
	)

	var b strings.Builder
	b.WriteString(cards)
	b.WriteString("\n\n")
	b.WriteString(s.styles.Muted.Render("Pick a screen with the digit keys below."))
	b.WriteString("\n")
	return b.String()
}

func (s *homeScreen) card(label string, count int) string {
	body := s.styles.Status.Render(fmt.Sprintf("%d", count)) + "\n" + s.styles.Muted.Render(label)
	return s.styles.Card.Render(body)
}

func (s *homeScreen) capturing() bool {
	return false
}

// homeStatsCmd fetches the four counters in one pass. The list endpoints
// report totals on every page, so one minimal page per resource is enough.
func homeStatsCmd(svc Services) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		inst := svc.Session.State().InstitutionID

		var stats homeStatsMsg

		bens, err := svc.Client.ListBeneficiaries(ctx, inst, 1, 1)
		if err != nil {
			return homeStatsMsg{err: err}
		}
		stats.beneficiaries = bens.TotalCount

		rounds, err := svc.Client.ListRounds(ctx, inst, 1, 1)
		if err != nil {
			return homeStatsMsg{err: err}
		}
		stats.rounds = rounds.TotalCount

		posts, err := svc.Client.ListPosts(ctx, inst, 1, 1)
		if err != nil {
			return homeStatsMsg{err: err}
		}
		stats.posts = posts.TotalCount

		emps, err := svc.Client.ListEmployees(ctx, inst, 1, 1)
		if err != nil {
			return homeStatsMsg{err: err}
		}
		stats.employees = emps.TotalCount

		return stats
	}
}
