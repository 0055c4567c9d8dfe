package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wisalhq/wisal-admin/internal/api"
	"github.com/wisalhq/wisal-admin/internal/auth"
	"github.com/wisalhq/wisal-admin/internal/log"
)

// Services bundles the dependencies every screen draws on
type Services struct {
	Client  *api.Client
	Session *auth.Context
	Logger  *log.Logger
}

// screen is one dashboard view. Screens own their widgets and data loads;
// the app owns navigation, the guard, and the session.
type screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (screen, tea.Cmd)
	View() string

	// capturing reports whether the screen owns the keyboard right now
	// (a focused input, an inner detail view); global navigation keys do
	// not fire while it does.
	capturing() bool
}

// keyMap defines the global keyboard shortcuts
type keyMap struct {
	Quit    key.Binding
	Back    key.Binding
	Refresh key.Binding
	SignOut key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	SignOut: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "sign out"),
	),
}

// routeKeys maps the digit shortcuts to screens
var routeKeys = map[string]Route{
	"1": RouteHome,
	"2": RouteDistribution,
	"3": RouteBeneficiaries,
	"4": RoutePosts,
	"5": RouteDelivery,
	"6": RouteEmployees,
	"7": RouteMessages,
}

// navOrder fixes the footer ordering of the digit shortcuts
var navOrder = []string{"1", "2", "3", "4", "5", "6", "7"}

// routeNone marks that no screen is mounted yet
const routeNone Route = -1

// bootDoneMsg signals that the boot-time silent refresh has settled
type bootDoneMsg struct{}

// signOutDoneMsg signals that the sign-out round trip finished
type signOutDoneMsg struct {
	err error
}

// App is the dashboard's root bubbletea model. It keeps a stack of routes,
// re-runs the route guard after every message, and delegates everything
// screen-specific to the mounted screen.
type App struct {
	svc    Services
	styles Styles

	stack   []Route
	mounted Route
	active  screen
	loading bool

	spin       spinner.Model
	width      int
	height     int
	ready      bool
	quitting   bool
	signingOut bool
}

// NewApp creates the dashboard model. The first guard pass decides whether
// the home request survives or turns into the sign-in screen.
func NewApp(svc Services) *App {
	if svc.Logger == nil {
		svc.Logger = log.DefaultLogger()
	}

	styles := DefaultStyles()
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(styles.Status),
	)

	return &App{
		svc:     svc,
		styles:  styles,
		stack:   []Route{RouteHome},
		mounted: routeNone,
		loading: true,
		spin:    sp,
	}
}

// Init starts the spinner and the boot-time silent refresh (required by Bubble Tea)
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spin.Tick, bootCmd(a.svc.Session))
}

// Update handles messages and updates the model state (required by Bubble Tea)
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true

	case tea.KeyMsg:
		// Ctrl+C always quits, captured screen or not
		if msg.String() == "ctrl+c" {
			a.quitting = true
			return a, tea.Quit
		}
		if a.active == nil || !a.active.capturing() {
			if cmd, handled := a.handleGlobalKey(msg); handled {
				cmds = append(cmds, cmd, a.applyGuard())
				return a, tea.Batch(cmds...)
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		cmds = append(cmds, cmd)

	case signOutDoneMsg:
		a.signingOut = false
		if msg.err != nil {
			a.svc.Logger.Warn("remote sign-out failed", "error", msg.err.Error())
		}
	}

	if a.active != nil {
		var cmd tea.Cmd
		a.active, cmd = a.active.Update(msg)
		cmds = append(cmds, cmd)
	}

	// The session may have changed under us (a finished login, a 401 from
	// any request): the guard re-runs after every message.
	cmds = append(cmds, a.applyGuard())

	return a, tea.Batch(cmds...)
}

// View renders the dashboard (required by Bubble Tea)
func (a *App) View() string {
	if !a.ready {
		return "Initializing..."
	}
	if a.quitting {
		return ""
	}
	if a.loading {
		return a.renderLoading()
	}
	if a.active == nil {
		return ""
	}

	return a.renderHeader() + "\n" + a.active.View() + "\n" + a.renderFooter()
}

// handleGlobalKey handles the shortcuts shared by every screen
func (a *App) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Quit):
		a.quitting = true
		return tea.Quit, true

	case key.Matches(msg, keys.Back):
		a.pop()
		return nil, true

	case key.Matches(msg, keys.Refresh):
		if a.active != nil {
			return a.active.Init(), true
		}
		return nil, true

	case key.Matches(msg, keys.SignOut):
		if a.signingOut {
			return nil, true
		}
		a.signingOut = true
		return signOutCmd(a.svc.Session), true
	}

	if r, ok := routeKeys[msg.String()]; ok {
		a.push(r)
		return nil, true
	}

	return nil, false
}

// route returns the top of the navigation stack
func (a *App) route() Route {
	return a.stack[len(a.stack)-1]
}

// push requests navigation to a screen; the guard decides what actually mounts
func (a *App) push(r Route) {
	if r != a.route() {
		a.stack = append(a.stack, r)
	}
}

// pop backs out to the previous screen
func (a *App) pop() {
	if len(a.stack) > 1 {
		a.stack = a.stack[:len(a.stack)-1]
	}
}

// applyGuard re-runs the route guard for the top of the stack and mounts
// whatever it resolves to. A redirect replaces the stack top, never pushes.
func (a *App) applyGuard() tea.Cmd {
	state := a.svc.Session.State()

	target, loading := a.resolveTarget(state)
	a.loading = loading
	if loading {
		return nil
	}

	if target != a.route() {
		a.svc.Logger.Debug("route redirected",
			"from", a.route().String(),
			"to", target.String(),
		)
		a.stack[len(a.stack)-1] = target

		// A redirect that lands where the stack already was collapses the
		// duplicate, so esc cannot cycle between identical entries
		if n := len(a.stack); n > 1 && a.stack[n-1] == a.stack[n-2] {
			a.stack = a.stack[:n-1]
		}
	}

	if a.mounted == target && a.active != nil {
		return nil
	}
	return a.mount(target)
}

// resolveTarget maps the requested route through the guard
func (a *App) resolveTarget(state auth.State) (Route, bool) {
	requested := a.route()

	// A signed-in session has no business on the sign-in screen
	if requested == RouteLogin && state.Authenticated {
		return LandingRoute(state.Role), false
	}

	return Resolve(state, requested)
}

// mount builds the screen for a route and starts its first load
func (a *App) mount(r Route) tea.Cmd {
	a.mounted = r
	a.active = a.buildScreen(r)
	if a.active == nil {
		return nil
	}
	return a.active.Init()
}

// buildScreen constructs the screen model for a route
func (a *App) buildScreen(r Route) screen {
	switch r {
	case RouteLogin:
		return newLoginScreen(a.svc, a.styles)
	case RouteUnauthorized:
		return newUnauthorizedScreen(a.styles)
	case RouteHome:
		return newHomeScreen(a.svc, a.styles)
	case RouteDistribution:
		return newDistributionScreen(a.svc, a.styles, a.contentHeight())
	case RouteBeneficiaries:
		return newBeneficiariesScreen(a.svc, a.styles, a.contentHeight())
	case RoutePosts:
		return newPostsScreen(a.svc, a.styles, a.contentHeight())
	case RouteDelivery:
		return newDeliveryScreen(a.svc, a.styles)
	case RouteEmployees:
		return newEmployeesScreen(a.svc, a.styles, a.contentHeight())
	case RouteMessages:
		return newMessagesScreen(a.svc, a.styles, a.contentHeight())
	default:
		return nil
	}
}

// contentHeight is the vertical space left between header and footer
func (a *App) contentHeight() int {
	h := a.height - 6
	if h < 5 {
		h = 5
	}
	return h
}

// bootCmd runs the boot-time silent refresh off the UI loop
func bootCmd(session *auth.Context) tea.Cmd {
	return func() tea.Msg {
		session.Bootstrap(context.Background())
		return bootDoneMsg{}
	}
}

// signOutCmd ends the session. Local cleanup happens even when the remote
// call fails; the guard routes to sign-in either way.
func signOutCmd(session *auth.Context) tea.Cmd {
	return func() tea.Msg {
		return signOutDoneMsg{err: session.Logout(context.Background())}
	}
}

// Run starts the dashboard program and blocks until it exits
func Run(ctx context.Context, svc Services) error {
	p := tea.NewProgram(NewApp(svc), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}
