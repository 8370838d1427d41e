package cli

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/alexanderramin/waypoint/internal/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeQnaUseCase keeps history in memory and answers by echoing.
type fakeQnaUseCase struct {
	mu      sync.Mutex
	history []domain.QnaEntry
	openErr error
	askErr  error
	asked   []string
}

func (f *fakeQnaUseCase) Open(_ context.Context, subgoalID string) (*domain.QnaSnapshot, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return &domain.QnaSnapshot{SubgoalID: subgoalID, History: append([]domain.QnaEntry(nil), f.history...)}, nil
}

func (f *fakeQnaUseCase) Ask(_ context.Context, subgoalID, question string) (*domain.QnaSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.asked = append(f.asked, question)
	if f.askErr != nil {
		return nil, f.askErr
	}
	f.history = append(f.history, domain.QnaEntry{
		SubgoalID: subgoalID,
		Question:  question,
		Answer:    "echo: " + question,
	})
	return &domain.QnaSnapshot{SubgoalID: subgoalID, History: append([]domain.QnaEntry(nil), f.history...)}, nil
}

func newChatDriver(t *testing.T, uc *fakeQnaUseCase) *teatest.Driver {
	t.Helper()
	d := teatest.New(t, newQnaChatView(context.Background(), uc, "S1"), teatest.WithSize(100, 40))
	d.DrainInit()
	return d
}

func chatView(d *teatest.Driver) *qnaChatView {
	return d.Model.(*qnaChatView)
}

func TestQnaChatView_OpenPresentsExistingHistory(t *testing.T) {
	uc := &fakeQnaUseCase{history: []domain.QnaEntry{
		{SubgoalID: "S1", Question: "earlier?", Answer: "yes"},
	}}
	d := newChatDriver(t, uc)

	assert.Len(t, chatView(d).history, 1)
	assert.Contains(t, d.View(), "earlier?")
	assert.Contains(t, d.View(), "S1")
}

func TestQnaChatView_AskAppendsAnswer(t *testing.T) {
	uc := &fakeQnaUseCase{}
	d := newChatDriver(t, uc)
	assert.Contains(t, d.View(), "No questions asked about S1 yet.")

	d.Submit("how long?")
	d.Submit("and then?")

	v := chatView(d)
	require.Len(t, v.history, 2)
	assert.Equal(t, "how long?", v.history[0].Question)
	assert.Equal(t, "and then?", v.history[1].Question)
	assert.Empty(t, v.pending)
	assert.Contains(t, d.View(), "echo: and then?")
	assert.Empty(t, v.input.Value())
}

func TestQnaChatView_BlankInputIsIgnored(t *testing.T) {
	uc := &fakeQnaUseCase{}
	d := newChatDriver(t, uc)

	d.Submit("   ")
	d.PressEnter()

	assert.Empty(t, uc.asked)
	assert.False(t, d.Quitting)
}

func TestQnaChatView_QuitCommands(t *testing.T) {
	t.Run("slash quit", func(t *testing.T) {
		uc := &fakeQnaUseCase{}
		d := newChatDriver(t, uc)
		d.Submit("/quit")
		assert.True(t, d.Quitting)
		assert.Empty(t, uc.asked)
	})

	t.Run("escape", func(t *testing.T) {
		d := newChatDriver(t, &fakeQnaUseCase{})
		d.PressEsc()
		assert.True(t, d.Quitting)
	})
}

func TestQnaChatView_ErrorsShownInStatus(t *testing.T) {
	t.Run("open fails", func(t *testing.T) {
		d := newChatDriver(t, &fakeQnaUseCase{openErr: errors.New("store offline")})
		assert.Contains(t, d.View(), "Could not load history: store offline")
	})

	t.Run("ask fails", func(t *testing.T) {
		uc := &fakeQnaUseCase{askErr: errors.New("history write failed")}
		d := newChatDriver(t, uc)
		d.Submit("anything?")

		v := chatView(d)
		assert.Empty(t, v.pending)
		assert.Empty(t, v.history)
		assert.True(t, strings.Contains(d.View(), "history write failed"))
	})
}

func TestQnaChatView_PendingBlocksSecondSubmit(t *testing.T) {
	v := newQnaChatView(context.Background(), &fakeQnaUseCase{}, "S1")
	v.input.SetValue("first")
	_, cmd := v.submit()
	require.NotNil(t, cmd)
	assert.Equal(t, "first", v.pending)
	assert.Contains(t, v.View(), "Thinking...")

	v.input.SetValue("second")
	_, cmd = v.submit()
	assert.Nil(t, cmd)
	assert.Equal(t, "second", v.input.Value())
}
