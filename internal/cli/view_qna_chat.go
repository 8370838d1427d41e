package cli

import (
	"context"
	"fmt"
	"strings"

	usecase "github.com/alexanderramin/waypoint/internal/app"
	"github.com/alexanderramin/waypoint/internal/cli/formatter"
	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type chatKeyMap struct {
	Submit   key.Binding
	Quit     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

func defaultChatKeys() chatKeyMap {
	return chatKeyMap{
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "ask")),
		Quit:     key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
	}
}

func (k chatKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.PageUp, k.PageDown, k.Quit}
}

func (k chatKeyMap) helpLine() string {
	parts := make([]string, 0, 4)
	for _, b := range k.ShortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}

type qnaOpenedMsg struct {
	snap *domain.QnaSnapshot
	err  error
}

type qnaAnsweredMsg struct {
	snap *domain.QnaSnapshot
	err  error
}

// qnaChatView is the interactive conversation about one subgoal. Engine
// calls run inside tea.Cmds; their results come back as messages and are
// handed to the view's QnaPresenter methods. Answers render as markdown.
type qnaChatView struct {
	ctx       context.Context
	useCase   usecase.QnaUseCase
	subgoalID string

	keys     chatKeyMap
	input    textinput.Model
	viewport viewport.Model
	render   formatter.AnswerRenderer

	history []domain.QnaEntry
	pending string // question awaiting its answer
	status  string
}

var _ usecase.QnaPresenter = (*qnaChatView)(nil)

func newQnaChatView(ctx context.Context, useCase usecase.QnaUseCase, subgoalID string) *qnaChatView {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.CharLimit = 500

	v := &qnaChatView{
		ctx:       ctx,
		useCase:   useCase,
		subgoalID: subgoalID,
		keys:      defaultChatKeys(),
		input:     ti,
		viewport:  viewport.New(80, 20),
		render:    formatter.NewMarkdownRenderer(76),
	}
	v.refresh()
	return v
}

// ── tea.Model interface ──────────────────────────────────────────────────────

func (v *qnaChatView) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, v.openCmd())
}

func (v *qnaChatView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.resize(msg.Width, msg.Height)
		return v, nil

	case qnaOpenedMsg:
		if msg.err != nil {
			v.status = fmt.Sprintf("Could not load history: %v", msg.err)
			v.refresh()
			return v, nil
		}
		v.PresentInitial(*msg.snap)
		return v, nil

	case qnaAnsweredMsg:
		question := v.pending
		v.pending = ""
		if msg.err != nil {
			v.status = fmt.Sprintf("Could not ask %q: %v", question, msg.err)
			v.refresh()
			return v, nil
		}
		v.PresentUpdate(*msg.snap)
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit
		case key.Matches(msg, v.keys.PageUp), key.Matches(msg, v.keys.PageDown):
			var cmd tea.Cmd
			v.viewport, cmd = v.viewport.Update(msg)
			return v, cmd
		case key.Matches(msg, v.keys.Submit):
			return v.submit()
		}

	case tea.MouseMsg:
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *qnaChatView) View() string {
	var b strings.Builder
	b.WriteString(v.header())
	b.WriteString(v.viewport.View())
	b.WriteString("\n")
	b.WriteString(chatPrompt())
	b.WriteString(v.input.View())
	b.WriteString("\n")
	b.WriteString(formatter.Dim(v.keys.helpLine()))
	return b.String()
}

// ── QnaPresenter ─────────────────────────────────────────────────────────────

func (v *qnaChatView) PresentInitial(snap domain.QnaSnapshot) {
	v.history = snap.History
	v.status = ""
	v.refresh()
}

func (v *qnaChatView) PresentUpdate(snap domain.QnaSnapshot) {
	v.history = snap.History
	v.status = ""
	v.refresh()
}

// ── input handling ───────────────────────────────────────────────────────────

func (v *qnaChatView) submit() (tea.Model, tea.Cmd) {
	if v.pending != "" {
		return v, nil
	}
	question := strings.TrimSpace(v.input.Value())
	v.input.Reset()
	if question == "" {
		return v, nil
	}
	if isQuitCommand(question) {
		return v, tea.Quit
	}

	v.pending = question
	v.refresh()
	return v, v.askCmd(question)
}

func (v *qnaChatView) openCmd() tea.Cmd {
	ctx, uc, id := v.ctx, v.useCase, v.subgoalID
	return func() tea.Msg {
		snap, err := uc.Open(ctx, id)
		return qnaOpenedMsg{snap: snap, err: err}
	}
}

func (v *qnaChatView) askCmd(question string) tea.Cmd {
	ctx, uc, id := v.ctx, v.useCase, v.subgoalID
	return func() tea.Msg {
		snap, err := uc.Ask(ctx, id, question)
		return qnaAnsweredMsg{snap: snap, err: err}
	}
}

// ── layout ───────────────────────────────────────────────────────────────────

func (v *qnaChatView) header() string {
	return formatter.FormatChatWelcome(v.subgoalID)
}

func (v *qnaChatView) resize(width, height int) {
	v.viewport.Width = width
	v.viewport.Height = max(3, height-lipgloss.Height(v.header())-3)
	v.input.Width = max(10, width-8)
	v.render = formatter.NewMarkdownRenderer(width - 4)
	v.refresh()
}

func (v *qnaChatView) refresh() {
	var b strings.Builder
	b.WriteString(formatter.FormatQnaHistoryWith(domain.QnaSnapshot{SubgoalID: v.subgoalID, History: v.history}, v.render))
	if v.pending != "" {
		b.WriteString("\n")
		b.WriteString(formatter.StyleBlue.Render("Q: ") + formatter.Bold(v.pending) + "\n")
		b.WriteString("   " + formatter.StylePurple.Render("Thinking...") + "\n")
	}
	if v.status != "" {
		b.WriteString("\n" + formatter.StyleRed.Render(v.status) + "\n")
	}
	v.viewport.SetContent(b.String())
	v.viewport.GotoBottom()
}
