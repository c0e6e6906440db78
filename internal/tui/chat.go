package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/codebench-ai/codebench/internal/assistant"
)

var (
	userStyle      = lipgloss.NewStyle().Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle      = lipgloss.NewStyle().Faint(true)
)

// Run starts the interactive chat UI on the given engine. A non-empty
// sessionID resumes that session; the empty string starts a new one on
// the first message. Blocks until the user quits.
func Run(engine *assistant.Engine, sessionID string) error {
	p := tea.NewProgram(newChatModel(engine, sessionID))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running chat ui: %w", err)
	}
	return nil
}

type chatModel struct {
	engine    *assistant.Engine
	sessionID string

	input      textinput.Model
	spin       spinner.Model
	transcript []string
	thinking   bool
	width      int
}

type responseMsg struct{ turn *assistant.Turn }
type errorMsg struct{ err error }

func newChatModel(engine *assistant.Engine, sessionID string) chatModel {
	in := textinput.New()
	in.Placeholder = "Type a message"
	in.Prompt = "You> "
	in.Focus()
	in.CharLimit = 0
	in.Width = 60

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))

	return chatModel{
		engine:    engine,
		sessionID: sessionID,
		input:     in,
		spin:      s,
		width:     80,
	}
}

func (m chatModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick)
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		w := msg.Width - 2
		if w < 20 {
			w = 20
		}
		m.input.Width = w
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			if m.thinking {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.transcript = append(m.transcript, userStyle.Render("You:")+" "+text)
			m.input.SetValue("")
			m.thinking = true
			return m, sendCmd(m.engine, m.sessionID, text)
		}

	case responseMsg:
		m.thinking = false
		m.sessionID = msg.turn.SessionID
		m.transcript = append(m.transcript,
			assistantStyle.Render("Assistant:")+"\n"+renderReply(msg.turn.Response, m.width))
		return m, nil

	case errorMsg:
		m.thinking = false
		m.transcript = append(m.transcript, errorStyle.Render(fmt.Sprintf("Error: %v", msg.err)))
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.spin, cmd = m.spin.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// sendCmd runs one chat turn off the UI goroutine and reports the
// outcome back as a message.
func sendCmd(engine *assistant.Engine, sessionID, text string) tea.Cmd {
	return func() tea.Msg {
		turn, err := engine.Reply(context.Background(), sessionID, text)
		if err != nil {
			return errorMsg{err: err}
		}
		return responseMsg{turn: turn}
	}
}

func (m chatModel) View() string {
	var b strings.Builder
	b.WriteString(helpStyle.Render("codebench chat") + "\n\n")
	for _, line := range m.transcript {
		b.WriteString(line + "\n\n")
	}
	if m.thinking {
		b.WriteString(m.spin.View() + " Thinking...\n")
		return b.String()
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Enter to send. Esc or Ctrl+C to quit."))
	b.WriteString("\n")
	return b.String()
}
