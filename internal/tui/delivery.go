package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wisalhq/wisal-admin/internal/api"
)

// couponVerifiedMsg carries the outcome of a delivery verification
type couponVerifiedMsg struct {
	result *api.CouponVerification
	err    error
}

// deliveryScreen is the coupon verification desk: type a code, verify,
// read the verdict
type deliveryScreen struct {
	svc    Services
	styles Styles

	input     textinput.Model
	verifying bool
	result    *api.CouponVerification
	errText   string
}

func newDeliveryScreen(svc Services, styles Styles) *deliveryScreen {
	ti := textinput.New()
	ti.Placeholder = "coupon code"
	ti.CharLimit = 32
	ti.Width = 32
	ti.Focus()

	return &deliveryScreen{
		svc:    svc,
		styles: styles,
		input:  ti,
	}
}

func (s *deliveryScreen) Init() tea.Cmd {
	return textinput.Blink
}

func (s *deliveryScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case couponVerifiedMsg:
		s.verifying = false
		if msg.err != nil {
			s.errText = pageError(msg.err)
			s.result = nil
			return s, nil
		}
		s.errText = ""
		s.result = msg.result
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			// Release the keyboard so navigation keys work again
			s.input.Blur()
			return s, nil

		case "enter":
			if !s.input.Focused() {
				s.input.Focus()
				return s, textinput.Blink
			}
			if s.verifying {
				return s, nil
			}
			code := strings.TrimSpace(s.input.Value())
			if code == "" {
				return s, nil
			}
			s.verifying = true
			s.input.SetValue("")
			return s, verifyCouponCmd(s.svc, code)
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *deliveryScreen) View() string {
	var b strings.Builder
	b.WriteString(s.styles.Subtitle.Render("Verify a coupon before handing out aid."))
	b.WriteString("\n")
	b.WriteString(s.input.View())
	b.WriteString("\n")
	if s.input.Focused() {
		b.WriteString(s.styles.Muted.Render("enter verify · esc release input"))
	} else {
		b.WriteString(s.styles.Muted.Render("enter to type a code"))
	}
	b.WriteString("\n\n")

	if s.verifying {
		b.WriteString(s.styles.Status.Render("Verifying..."))
		b.WriteString("\n")
		return b.String()
	}

	if s.errText != "" {
		b.WriteString(s.styles.Error.Render(s.errText))
		b.WriteString("\n")
		return b.String()
	}

	if s.result != nil {
		b.WriteString(s.renderResult())
	}

	return b.String()
}

// renderResult shows the verification verdict with whatever detail the
// server attached
func (s *deliveryScreen) renderResult() string {
	var b strings.Builder

	if s.result.Valid {
		b.WriteString(s.styles.Success.Render("✓ Valid coupon"))
	} else {
		b.WriteString(s.styles.Error.Render("✗ Not valid"))
	}
	if s.result.Message != "" {
		b.WriteString("  " + s.styles.Muted.Render(s.result.Message))
	}
	b.WriteString("\n")

	if c := s.result.Coupon; c != nil {
		b.WriteString(fmt.Sprintf("  Code: %s   Amount: %d   Status: %s\n", c.Code, c.Amount, c.Status))
	}
	if ben := s.result.Beneficiary; ben != nil {
		b.WriteString(fmt.Sprintf("  Beneficiary: %s (family of %d)\n", ben.Name, ben.FamilySize))
	}

	return b.String()
}

// capturing follows the input focus; esc hands the keyboard back to the app
func (s *deliveryScreen) capturing() bool {
	return s.input.Focused()
}

func verifyCouponCmd(svc Services, code string) tea.Cmd {
	return func() tea.Msg {
		inst := svc.Session.State().InstitutionID
		result, err := svc.Client.VerifyCoupon(context.Background(), inst, code)
		return couponVerifiedMsg{result: result, err: err}
	}
}
