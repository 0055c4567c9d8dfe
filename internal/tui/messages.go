package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wisalhq/wisal-admin/internal/api"
)

// messagesPhase is which pane of the messages screen is active
type messagesPhase int

const (
	phaseConversations messagesPhase = iota
	phaseThread
)

// conversationsLoadedMsg carries the conversation list
type conversationsLoadedMsg struct {
	list *api.ListConversationsResponse
	err  error
}

// threadLoadedMsg carries one conversation's messages
type threadLoadedMsg struct {
	conversationID string
	list           *api.ListMessagesResponse
	err            error
}

// messageSentMsg carries the outcome of sending a message
type messageSentMsg struct {
	conversationID string
	err            error
}

// messagesScreen is the conversations list and, after enter, a single
// thread with a compose line
type messagesScreen struct {
	svc    Services
	styles Styles
	height int

	phase messagesPhase

	convTable     table.Model
	conversations []api.Conversation

	selected *api.Conversation
	thread   []api.Message
	compose  textinput.Model
	sending  bool

	loaded  bool
	errText string
}

func newMessagesScreen(svc Services, styles Styles, height int) *messagesScreen {
	cols := []table.Column{
		{Title: "Subject", Width: 40},
		{Title: "Unread", Width: 8},
		{Title: "Last activity", Width: 16},
	}

	ti := textinput.New()
	ti.Placeholder = "write a message"
	ti.CharLimit = 500
	ti.Width = 60

	return &messagesScreen{
		svc:       svc,
		styles:    styles,
		height:    height,
		convTable: newTable(cols, height-1),
		compose:   ti,
	}
}

func (s *messagesScreen) Init() tea.Cmd {
	s.loaded = false
	if s.phase == phaseThread && s.selected != nil {
		return loadThreadCmd(s.svc, s.selected.ID)
	}
	return loadConversationsCmd(s.svc)
}

func (s *messagesScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case conversationsLoadedMsg:
		s.loaded = true
		if msg.err != nil {
			s.errText = pageError(msg.err)
			return s, nil
		}
		s.errText = ""
		s.conversations = msg.list.Conversations

		rows := make([]table.Row, 0, len(s.conversations))
		for _, c := range s.conversations {
			rows = append(rows, table.Row{
				c.Subject,
				fmt.Sprintf("%d", c.UnreadCount),
				c.LastMessageAt.Format("2006-01-02 15:04"),
			})
		}
		s.convTable.SetRows(rows)
		return s, nil

	case threadLoadedMsg:
		s.loaded = true
		if msg.err != nil {
			s.errText = pageError(msg.err)
			return s, nil
		}
		s.errText = ""
		s.thread = msg.list.Messages
		return s, nil

	case messageSentMsg:
		s.sending = false
		if msg.err != nil {
			s.errText = pageError(msg.err)
			return s, nil
		}
		s.errText = ""
		return s, loadThreadCmd(s.svc, msg.conversationID)

	case tea.KeyMsg:
		if s.phase == phaseThread {
			return s.updateThreadKeys(msg)
		}
		return s.updateConversationKeys(msg)
	}

	return s, nil
}

func (s *messagesScreen) updateConversationKeys(msg tea.KeyMsg) (screen, tea.Cmd) {
	if msg.String() == "enter" {
		i := s.convTable.Cursor()
		if i >= 0 && i < len(s.conversations) {
			s.selected = &s.conversations[i]
			s.phase = phaseThread
			s.loaded = false
			s.compose.Focus()
			return s, tea.Batch(loadThreadCmd(s.svc, s.selected.ID), textinput.Blink)
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.convTable, cmd = s.convTable.Update(msg)
	return s, cmd
}

func (s *messagesScreen) updateThreadKeys(msg tea.KeyMsg) (screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.phase = phaseConversations
		s.selected = nil
		s.thread = nil
		s.compose.Blur()
		s.compose.SetValue("")
		s.errText = ""
		s.loaded = true
		return s, nil

	case "enter":
		if s.sending || s.selected == nil {
			return s, nil
		}
		body := strings.TrimSpace(s.compose.Value())
		if body == "" {
			return s, nil
		}
		s.sending = true
		s.compose.SetValue("")
		return s, sendMessageCmd(s.svc, s.selected.ID, body)
	}

	var cmd tea.Cmd
	s.compose, cmd = s.compose.Update(msg)
	return s, cmd
}

func (s *messagesScreen) View() string {
	if !s.loaded {
		return s.styles.Muted.Render("Loading messages...")
	}
	if s.errText != "" && s.phase == phaseConversations {
		return s.styles.Error.Render(s.errText)
	}

	if s.phase == phaseThread && s.selected != nil {
		return s.renderThread()
	}

	var b strings.Builder
	b.WriteString(s.convTable.View())
	b.WriteString("\n")
	b.WriteString(s.styles.Muted.Render("enter open conversation"))
	b.WriteString("\n")
	return b.String()
}

// renderThread shows the tail of the thread that fits plus the compose line
func (s *messagesScreen) renderThread() string {
	var b strings.Builder
	b.WriteString(s.styles.Subtitle.Render(s.selected.Subject))
	b.WriteString("\n")

	fit := (s.height - 5) / 2
	if fit < 1 {
		fit = 1
	}
	tail := s.thread
	if len(tail) > fit {
		tail = tail[len(tail)-fit:]
	}

	for _, m := range tail {
		b.WriteString(s.styles.Key.Render(m.SenderName))
		b.WriteString(s.styles.Muted.Render("  " + m.SentAt.Format("15:04")))
		b.WriteString("\n")
		b.WriteString(m.Body)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if s.errText != "" {
		b.WriteString(s.styles.Error.Render(s.errText))
		b.WriteString("\n")
	}
	if s.sending {
		b.WriteString(s.styles.Status.Render("Sending..."))
		b.WriteString("\n")
	}
	b.WriteString(s.compose.View())
	b.WriteString("\n")
	b.WriteString(s.styles.Muted.Render("enter send · esc back to conversations"))
	b.WriteString("\n")
	return b.String()
}

// capturing holds the keyboard inside an open thread so typing and esc
// stay on this screen
func (s *messagesScreen) capturing() bool {
	return s.phase == phaseThread
}

func loadConversationsCmd(svc Services) tea.Cmd {
	return func() tea.Msg {
		inst := svc.Session.State().InstitutionID
		list, err := svc.Client.ListConversations(context.Background(), inst)
		return conversationsLoadedMsg{list: list, err: err}
	}
}

func loadThreadCmd(svc Services, conversationID string) tea.Cmd {
	return func() tea.Msg {
		inst := svc.Session.State().InstitutionID
		list, err := svc.Client.ListMessages(context.Background(), inst, conversationID)
		return threadLoadedMsg{conversationID: conversationID, list: list, err: err}
	}
}

func sendMessageCmd(svc Services, conversationID, body string) tea.Cmd {
	return func() tea.Msg {
		inst := svc.Session.State().InstitutionID
		_, err := svc.Client.SendMessage(context.Background(), inst, api.SendMessageRequest{
			ConversationID: conversationID,
			Body:           body,
		})
		return messageSentMsg{conversationID: conversationID, err: err}
	}
}
