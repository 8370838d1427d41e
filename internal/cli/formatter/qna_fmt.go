package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/waypoint/internal/domain"
)

const qnaWrapWidth = 76

// FormatQnaEntry renders one exchange as a question line followed by the
// indented answer. An empty answer renders as a dim placeholder.
func FormatQnaEntry(e domain.QnaEntry) string {
	return formatQnaEntry(e, nil)
}

func formatQnaEntry(e domain.QnaEntry, render AnswerRenderer) string {
	var b strings.Builder
	b.WriteString(StyleBlue.Render("Q: "))
	b.WriteString(StyleBold.Render(e.Question))
	b.WriteString("\n")

	answer := strings.TrimSpace(e.Answer)
	switch {
	case answer == "":
		b.WriteString("   " + Dim("(no answer)"))
	case render != nil:
		b.WriteString(StyleGreen.Render("A:") + "\n")
		b.WriteString(render(answer))
	default:
		b.WriteString(StyleGreen.Render("A: "))
		b.WriteString(strings.TrimPrefix(indentWrapped(answer, 3, qnaWrapWidth), "   "))
	}
	b.WriteString("\n")
	return b.String()
}

// FormatQnaHistory renders a full conversation, oldest exchange first.
func FormatQnaHistory(snap domain.QnaSnapshot) string {
	return FormatQnaHistoryWith(snap, nil)
}

// FormatQnaHistoryWith is FormatQnaHistory with answers passed through
// render. A nil render prints answers as wrapped plain text.
func FormatQnaHistoryWith(snap domain.QnaSnapshot, render AnswerRenderer) string {
	if len(snap.History) == 0 {
		return Dim(fmt.Sprintf("No questions asked about %s yet.", snap.SubgoalID)) + "\n"
	}
	parts := make([]string, 0, len(snap.History))
	for _, e := range snap.History {
		parts = append(parts, formatQnaEntry(e, render))
	}
	return strings.Join(parts, "\n")
}

// FormatChatWelcome is shown when an interactive conversation starts.
func FormatChatWelcome(subgoalID string) string {
	return fmt.Sprintf("%s %s\n%s\n",
		StyleHeader.Render("Q&A"),
		StyleBold.Render(subgoalID),
		Dim("Ask about this subgoal. Type /quit to leave."))
}

// TerminalPresenter writes snapshots to a terminal stream. The initial view
// prints the whole history; updates print only the newest exchange.
type TerminalPresenter struct {
	w io.Writer
}

func NewTerminalPresenter(w io.Writer) *TerminalPresenter {
	return &TerminalPresenter{w: w}
}

func (p *TerminalPresenter) PresentInitial(snap domain.QnaSnapshot) {
	fmt.Fprint(p.w, FormatQnaHistory(snap))
}

func (p *TerminalPresenter) PresentUpdate(snap domain.QnaSnapshot) {
	if len(snap.History) == 0 {
		return
	}
	fmt.Fprint(p.w, FormatQnaEntry(snap.History[len(snap.History)-1]))
}
