package teatest

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type echoedMsg string

// echoModel records typed runes and, on Enter, echoes the buffer back
// through a Cmd so the driver has something to drain.
type echoModel struct {
	width   int
	buf     string
	echoed  []string
	gotQuit bool
}

func (m echoModel) Init() tea.Cmd { return nil }

func (m echoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			line := m.buf
			m.buf = ""
			return m, func() tea.Msg { return echoedMsg(line) }
		case tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyRunes:
			m.buf += string(msg.Runes)
		}
	case echoedMsg:
		m.echoed = append(m.echoed, string(msg))
	case tea.QuitMsg:
		m.gotQuit = true
	}
	return m, nil
}

func (m echoModel) View() string { return strings.Join(m.echoed, "\n") }

func TestDriver_DrainsFollowUpMessages(t *testing.T) {
	d := New(t, echoModel{}, WithSize(100, 30))
	d.DrainInit()

	d.Submit("hello")
	d.Submit("again")

	m := d.Model.(echoModel)
	assert.Equal(t, 100, m.width)
	assert.Equal(t, []string{"hello", "again"}, m.echoed)
	assert.Equal(t, "hello\nagain", d.View())
}

func TestDriver_QuitStopsFurtherInput(t *testing.T) {
	d := New(t, echoModel{})
	d.PressEsc()
	assert.True(t, d.Quitting)
	assert.True(t, d.Model.(echoModel).gotQuit)

	d.Submit("ignored")
	assert.Empty(t, d.Model.(echoModel).echoed)
}

func TestDriver_SlowCmdIsDropped(t *testing.T) {
	d := New(t, echoModel{}, WithCmdTimeout(5*time.Millisecond))
	d.drain(func() tea.Msg {
		time.Sleep(200 * time.Millisecond)
		return echoedMsg("late")
	}, 0)
	assert.Empty(t, d.Model.(echoModel).echoed)
}
