package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/wisalhq/wisal-admin/internal/api"
)

// loginResultMsg carries the outcome of a sign-in attempt
type loginResultMsg struct {
	err error
}

// loginScreen is the embedded sign-in form. Failures surface inline above
// the form, never as a separate screen.
type loginScreen struct {
	svc    Services
	styles Styles

	form       *huh.Form
	email      string
	password   string
	submitting bool
	errText    string
}

func newLoginScreen(svc Services, styles Styles) *loginScreen {
	s := &loginScreen{
		svc:    svc,
		styles: styles,
	}
	s.form = s.buildForm()
	return s
}

// buildForm creates a fresh huh form. The email survives a failed attempt;
// the password never does.
func (s *loginScreen) buildForm() *huh.Form {
	s.password = ""

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("email").
				Title("Email").
				Value(&s.email).
				Validate(func(v string) error {
					if strings.TrimSpace(v) == "" {
						return fmt.Errorf("email is required")
					}
					if !strings.Contains(v, "@") {
						return fmt.Errorf("enter a valid email address")
					}
					return nil
				}),
			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&s.password).
				Validate(func(v string) error {
					if v == "" {
						return fmt.Errorf("password is required")
					}
					return nil
				}),
		).
			Title("Sign in to Wisal").
			Description("Enter to submit • Ctrl+C to quit"),
	)
}

func (s *loginScreen) Init() tea.Cmd {
	return s.form.Init()
}

func (s *loginScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	if result, ok := msg.(loginResultMsg); ok {
		s.submitting = false
		if result.err != nil {
			s.errText = loginErrorText(result.err)
			s.form = s.buildForm()
			return s, s.form.Init()
		}
		// Success: the guard sees the authenticated session and routes away
		s.errText = ""
		return s, nil
	}

	if s.submitting {
		return s, nil
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f

		if s.form.State == huh.StateCompleted {
			s.submitting = true
			email := strings.TrimSpace(s.form.GetString("email"))
			password := s.form.GetString("password")
			return s, loginCmd(s.svc, email, password)
		}
	}

	return s, cmd
}

func (s *loginScreen) View() string {
	var b strings.Builder
	if s.errText != "" {
		b.WriteString(s.styles.Error.Render(s.errText))
		b.WriteString("\n\n")
	}
	if s.submitting {
		b.WriteString(s.styles.Status.Render("Signing in..."))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(s.form.View())
	return b.String()
}

func (s *loginScreen) capturing() bool {
	return true
}

// loginCmd runs the sign-in round trip off the UI loop
func loginCmd(svc Services, email, password string) tea.Cmd {
	return func() tea.Msg {
		return loginResultMsg{err: svc.Session.Login(context.Background(), email, password)}
	}
}

// loginErrorText picks the inline text for a failed attempt: the server's
// own message when there is one, a generic line otherwise.
func loginErrorText(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "Sign-in failed. Check your email and password and try again."
}
