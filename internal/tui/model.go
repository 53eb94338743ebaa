package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/glassai/internal/models"
	"github.com/diogo/glassai/internal/render"
	"github.com/diogo/glassai/internal/session"
	"github.com/diogo/glassai/internal/store"
)

// Message types for the TUI
type (
	responseMsg struct {
		resp *models.AnalysisResponse
	}
	errMsg struct {
		err error
	}
)

// Model represents the chat TUI state
type Model struct {
	session       *session.Session
	conversations *store.ConversationStore

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	loading bool
	ready   bool
	errText string
	status  string

	// Dimensions
	width  int
	height int
}

// NewChatModel creates a new chat TUI model
func NewChatModel(sess *session.Session, conversations *store.ConversationStore) Model {
	ta := textarea.New()
	ta.Placeholder = "Ask about something you captured..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	return Model{
		session:       sess,
		conversations: conversations,
		textarea:      ta,
		spinner:       s,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
	)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 3
		inputHeight := 4
		statusHeight := 2

		vpHeight := m.height - headerHeight - inputHeight - statusHeight
		if vpHeight < 5 {
			vpHeight = 5
		}
		contentWidth := m.width - 4

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
		}
		m.textarea.SetWidth(contentWidth)
		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.conversations.Flush()
			return m, tea.Quit

		case "enter":
			if m.loading {
				break
			}
			text := strings.TrimSpace(m.textarea.Value())
			if text == "" {
				m.errText = session.ErrNoInputMessage
				return m, nil
			}
			m.textarea.Reset()
			m.errText = ""
			m.loading = true
			m.refreshViewport()
			m.viewport.GotoBottom()
			return m, tea.Batch(m.sendCmd(text), m.spinner.Tick)

		case "ctrl+n":
			if m.loading {
				break
			}
			m.conversations.StartNewConversation()
			m.status = "Started a new conversation"
			m.refreshViewport()
			return m, nil

		case "ctrl+y":
			if reply := m.lastAssistantText(); reply != "" {
				if err := clipboard.WriteAll(reply); err != nil {
					m.errText = "copy failed: " + err.Error()
				} else {
					m.status = "Copied last reply"
				}
			}
			return m, nil
		}

	case responseMsg:
		m.loading = false
		m.status = ""
		m.refreshViewport()
		m.viewport.GotoBottom()

	case errMsg:
		m.loading = false
		m.errText = msg.err.Error()
		m.refreshViewport()
		m.viewport.GotoBottom()

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.textarea, cmd = m.textarea.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// sendCmd runs the ask operation in the background.
func (m Model) sendCmd(text string) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.session.SendMessage(text, nil)
		if err != nil {
			return errMsg{err: err}
		}
		return responseMsg{resp: resp}
	}
}

// lastAssistantText returns the newest assistant reply in the current
// conversation, or "".
func (m Model) lastAssistantText() string {
	conv := m.conversations.Current()
	if conv == nil {
		return ""
	}
	for i := len(conv.Messages) - 1; i >= 0; i-- {
		if conv.Messages[i].Type == models.MessageAssistant {
			return conv.Messages[i].Text
		}
	}
	return ""
}

// refreshViewport re-renders the transcript into the viewport.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderMessages())
}

func (m Model) renderMessages() string {
	conv := m.conversations.Current()
	if conv == nil || len(conv.Messages) == 0 {
		return subtitleStyle.Render("Type a question to get started.")
	}

	var b strings.Builder
	for _, msg := range conv.Messages {
		switch msg.Type {
		case models.MessageUser:
			b.WriteString(userLabelStyle.Render("You"))
			b.WriteString("\n")
			b.WriteString(userTextStyle.Render(msg.Text))
			if msg.Image != "" {
				b.WriteString("\n")
				b.WriteString(attachmentStyle.Render("[image attached]"))
			}
		case models.MessageAssistant:
			b.WriteString(assistantLabelStyle.Render("Assistant"))
			b.WriteString("\n")
			b.WriteString(render.Markdown(msg.Text, m.viewport.Width))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := headerStyle.Width(m.width - 2).Render(
		titleStyle.Render("Glass AI") + "  " + subtitleStyle.Render(m.conversationLabel()),
	)

	var middle string
	if m.loading {
		middle = m.viewport.View() + "\n" + loadingStyle.Render(m.spinner.View()+" Analyzing...")
	} else {
		middle = m.viewport.View()
	}

	input := inputStyle.Width(m.width - 4).Render(m.textarea.View())

	status := statusStyle.Render("enter send • ctrl+n new • ctrl+y copy • esc quit")
	if m.status != "" {
		status = statusStyle.Render(m.status)
	}
	if m.errText != "" {
		status = errorStyle.Render(m.errText)
	}

	return fmt.Sprintf("%s\n%s\n%s\n%s", header, middle, input, status)
}

func (m Model) conversationLabel() string {
	conv := m.conversations.Current()
	if conv == nil {
		return "new conversation"
	}
	if conv.Preview != "" {
		return conv.Preview
	}
	return fmt.Sprintf("%d messages", len(conv.Messages))
}

// RunChat starts the interactive chat screen.
func RunChat(sess *session.Session, conversations *store.ConversationStore) error {
	p := tea.NewProgram(NewChatModel(sess, conversations), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
