package formatter

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// AnswerRenderer turns a raw model answer into display text.
type AnswerRenderer func(answer string) string

// NewMarkdownRenderer renders answers as terminal markdown wrapped to width.
// It returns nil when no renderer can be built; callers then print answers
// as plain wrapped text.
func NewMarkdownRenderer(width int) AnswerRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(20, width)),
	)
	if err != nil {
		return nil
	}
	return func(answer string) string {
		out, err := r.Render(answer)
		if err != nil {
			return answer
		}
		return strings.Trim(out, "\n")
	}
}
