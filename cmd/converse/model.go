package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	coordination "github.com/lenavoss/converse-core/core"
)

type permissionsMsg coordination.Permissions

type signalChangedMsg struct{}

type transcriptMsg struct {
	text  string
	final bool
}

type logChangedMsg struct{}

// Model is the bubbletea model for the chat surface. All conversation state
// lives in the coordinator and the message log; the model only mirrors what
// it needs to render.
type Model struct {
	coordinator *coordination.Coordinator
	responder   *responder

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	styles   styles

	permissions coordination.Permissions
	interim     string
	// dictated accumulates final transcripts until listening ends, at which
	// point they are committed to the draft.
	dictated string

	updates chan tea.Msg

	width  int
	height int
	ready  bool
}

func newModel(ctx context.Context, coordinator *coordination.Coordinator, autoSpeak bool) Model {
	input := textinput.New()
	input.Placeholder = "Type a message..."
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := Model{
		coordinator: coordinator,
		input:       input,
		spinner:     spin,
		styles:      defaultStyles(),
		updates:     make(chan tea.Msg, 64),
	}

	m.responder = &responder{
		coordinator: coordinator,
		delay:       replyDelay,
		onReply: func(message coordination.Message) {
			if autoSpeak && coordinator.SpeechEnabled() {
				coordinator.ToggleSpeech(message.ID, message.Text)
			}
			m.post(logChangedMsg{})
		},
	}

	coordinator.Coordinate(ctx,
		coordination.WithSendMessageCallback(func(text string) {
			// Handle the append on a fresh goroutine: this callback runs
			// inside the submission step, which still holds the step lock.
			go func() {
				coordinator.AppendMessage(coordination.NewUserMessage(text))
				m.responder.Respond(text)
				m.post(logChangedMsg{})
			}()
		}),
		coordination.WithPermissionsChangedCallback(func(permissions coordination.Permissions) {
			m.post(permissionsMsg(permissions))
		}),
		coordination.WithListeningStateChangedCallback(func(bool) { m.post(signalChangedMsg{}) }),
		coordination.WithProcessingStateChangedCallback(func(bool) { m.post(signalChangedMsg{}) }),
		coordination.WithSpeakingStateChangedCallback(func(bool) { m.post(signalChangedMsg{}) }),
		coordination.WithInterimTranscriptionCallback(func(transcript string) {
			m.post(transcriptMsg{text: transcript})
		}),
		coordination.WithTranscriptionCallback(func(transcript string) {
			m.post(transcriptMsg{text: transcript, final: true})
		}),
	)

	return m
}

// post delivers a coordination update to the UI loop without ever blocking
// the coordinator's step.
func (m Model) post(msg tea.Msg) {
	select {
	case m.updates <- msg:
	default:
	}
}

func (m Model) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		return <-m.updates
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.waitForUpdate())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		viewportHeight := max(msg.Height-6, 3)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, viewportHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = viewportHeight
		}
		m.input.Width = max(msg.Width-6, 10)
		m.refreshHistory()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case permissionsMsg:
		m.permissions = coordination.Permissions(msg)
		if m.permissions.InputDisabled {
			m.input.Blur()
		} else if !m.input.Focused() {
			m.input.Focus()
		}
		return m, m.waitForUpdate()

	case signalChangedMsg:
		signals := m.coordinator.Signals()
		if !signals.Listening && m.dictated != "" {
			m.commitDictation()
		}
		m.refreshHistory()
		cmds := []tea.Cmd{m.waitForUpdate()}
		if signals.Processing {
			cmds = append(cmds, m.spinner.Tick)
		}
		return m, tea.Batch(cmds...)

	case transcriptMsg:
		if msg.final {
			if m.dictated != "" {
				m.dictated += " "
			}
			m.dictated += msg.text
			m.interim = ""
		} else {
			m.interim = msg.text
		}
		return m, m.waitForUpdate()

	case logChangedMsg:
		m.refreshHistory()
		return m, m.waitForUpdate()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.coordinator.Close()
		return m, tea.Quit

	case "enter":
		m.coordinator.SetDraft(m.input.Value())
		m.coordinator.Submit()
		m.input.SetValue(m.coordinator.Draft())
		m.refreshHistory()
		return m, nil

	case "ctrl+l":
		m.coordinator.ToggleListening()
		return m, nil

	case "ctrl+r":
		if message, ok := m.latestAssistantMessage(); ok {
			m.coordinator.ToggleSpeech(message.ID, message.Text)
			m.refreshHistory()
		}
		return m, nil

	case "ctrl+t":
		m.coordinator.ToggleSpeechEnabled()
		return m, nil

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.coordinator.SetDraft(m.input.Value())
	if draft := m.coordinator.Draft(); draft != m.input.Value() {
		m.input.SetValue(draft)
	}
	return m, cmd
}

func (m *Model) commitDictation() {
	text := strings.TrimSpace(m.dictated)
	m.dictated = ""
	m.interim = ""
	if text == "" {
		return
	}

	draft := m.input.Value()
	if draft != "" && !strings.HasSuffix(draft, " ") {
		draft += " "
	}
	m.input.SetValue(draft + text)
	m.coordinator.SetDraft(m.input.Value())
}

func (m Model) latestAssistantMessage() (coordination.Message, bool) {
	for message := range m.coordinator.Log().RValues {
		if message.Author == coordination.AuthorAssistant {
			return message, true
		}
	}
	return coordination.Message{}, false
}

func (m *Model) refreshHistory() {
	if !m.ready {
		return
	}

	targetID, _ := m.coordinator.SpeechTarget()
	wrapWidth := max(m.viewport.Width-4, 20)

	var sb strings.Builder
	for message := range m.coordinator.Log().Values {
		label := m.styles.AssistantLabel.Render("Assistant")
		if message.Author == coordination.AuthorUser {
			label = m.styles.UserLabel.Render("You")
		}
		if message.ID == targetID {
			label += m.styles.SpeakingMark.Render("  ♪ speaking")
		}

		sb.WriteString(label + "\n")
		sb.WriteString(m.styles.MessageText.Render(wordwrap.String(message.Text, wrapWidth)))
		sb.WriteString("\n\n")
	}

	m.viewport.SetContent(sb.String())
	m.viewport.GotoBottom()
}

func (m Model) View() string {
	if !m.ready {
		return "Starting..."
	}

	header := m.styles.Header.Render("converse")

	history := m.viewport.View()
	if m.interim != "" {
		history = lipgloss.JoinVertical(lipgloss.Left, history,
			m.styles.Interim.Render("… "+m.interim))
	}

	inputStyle := m.styles.Input
	if m.permissions.InputDisabled {
		inputStyle = m.styles.InputDisabled
	}
	inputArea := inputStyle.Render(m.input.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		history,
		inputArea,
		m.statusLine(),
	)
}

func (m Model) statusLine() string {
	signals := m.coordinator.Signals()

	indicators := []string{}
	if signals.Listening {
		indicators = append(indicators, m.styles.StatusActive.Render("● listening"))
	}
	if signals.Processing {
		indicators = append(indicators, m.spinner.View()+m.styles.Status.Render("thinking"))
	}
	if signals.Speaking {
		indicators = append(indicators, m.styles.StatusActive.Render("♪ speaking"))
	}
	if len(indicators) == 0 {
		indicators = append(indicators, m.styles.Status.Render("idle"))
	}

	speechPref := "on"
	if !m.coordinator.SpeechEnabled() {
		speechPref = "off"
	}

	status := strings.Join(indicators, "  ")
	help := m.styles.Help.Render(fmt.Sprintf(
		"enter: send | ctrl+l: mic | ctrl+r: read aloud | ctrl+t: speech %s | esc: quit", speechPref))

	return lipgloss.JoinVertical(lipgloss.Left, status, help)
}
