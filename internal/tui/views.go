package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// renderLoading is the placeholder shown while the session is initializing.
// No routing decision exists yet, so no screen content does either.
func (a *App) renderLoading() string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  %s %s\n", a.spin.View(), a.styles.Status.Render("Checking session...")))
	b.WriteString("\n")
	b.WriteString(a.styles.Muted.Render("  Restoring your sign-in from the last run."))
	b.WriteString("\n")
	return b.String()
}

// renderHeader renders the title bar with the session identity
func (a *App) renderHeader() string {
	state := a.svc.Session.State()

	title := a.styles.Title.Render("Wisal — " + a.route().String())

	identity := ""
	if state.Authenticated {
		who := state.EmployeeID
		if who == "" {
			who = "signed in"
		}
		role := string(state.Role)
		if role == "" {
			role = "no role"
		}
		identity = a.styles.Muted.Render(fmt.Sprintf("%s · %s", who, role))
	}

	return title + "  " + identity
}

// renderFooter renders the shortcut help line. Digit shortcuts only appear
// for screens the current role can actually open.
func (a *App) renderFooter() string {
	state := a.svc.Session.State()

	var parts []string
	for _, k := range navOrder {
		r := routeKeys[k]
		if Evaluate(state, AllowedRoles(r)) != DecisionRender {
			continue
		}
		parts = append(parts, a.styles.Key.Render(k)+" "+a.styles.KeyDesc.Render(r.String()))
	}

	parts = append(parts,
		a.styles.Key.Render(keys.Refresh.Help().Key)+" "+a.styles.KeyDesc.Render(keys.Refresh.Help().Desc),
		a.styles.Key.Render(keys.Back.Help().Key)+" "+a.styles.KeyDesc.Render(keys.Back.Help().Desc),
		a.styles.Key.Render(keys.SignOut.Help().Key)+" "+a.styles.KeyDesc.Render(keys.SignOut.Help().Desc),
		a.styles.Key.Render(keys.Quit.Help().Key)+" "+a.styles.KeyDesc.Render(keys.Quit.Help().Desc),
	)

	return a.styles.Help.Render(strings.Join(parts, "  "))
}

// unauthorizedScreen is shown when the session has no role that maps to a
// landing screen
type unauthorizedScreen struct {
	styles Styles
}

func newUnauthorizedScreen(styles Styles) *unauthorizedScreen {
	return &unauthorizedScreen{styles: styles}
}

func (s *unauthorizedScreen) Init() tea.Cmd {
	return nil
}

func (s *unauthorizedScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	return s, nil
}

func (s *unauthorizedScreen) View() string {
	var b strings.Builder
	b.WriteString(s.styles.Warning.Render("You don't have access to this area."))
	b.WriteString("\n\n")
	b.WriteString(s.styles.Muted.Render("Your account has no role the dashboard can route. Ask an administrator to\nassign one, then sign in again (ctrl+x to sign out)."))
	b.WriteString("\n")
	return b.String()
}

func (s *unauthorizedScreen) capturing() bool {
	return false
}
