package intelligence

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/waypoint/internal/domain"
)

// MaxHistoryPairs bounds how many prior exchanges are replayed to the model.
const MaxHistoryPairs = 5

const qnaSystemPrompt = `You are a planning assistant helping a user make progress on one subgoal of a larger plan.

You are given the subgoal's details, the other subgoals of the same plan in the order they are due, and the recent conversation about this subgoal.

Rules:
1. Answer the user's new question directly, in plain text suitable for a terminal.
2. Ground your answer in the subgoal context and the sibling list. When the user asks what comes next or what came before, use the "Previous subgoal" and "Next subgoal" lines.
3. Stay consistent with earlier answers in the conversation unless the user corrects them.
4. Keep answers concise: a few sentences or a short list.
5. If the context does not contain what the user asks about, say so rather than inventing plan details.`

const qnaClosingInstruction = "Answer the new question using the subgoal context above, the list of subgoals in this plan, and the previous conversation."

// AssembleQnaPrompt renders the user prompt for one question about focal.
// The sibling block is emitted only when focal was located in order; the
// history is windowed to the MaxHistoryPairs most recent entries.
func AssembleQnaPrompt(focal domain.Subgoal, order domain.SiblingOrder, history []domain.QnaEntry, question string) string {
	var b strings.Builder

	if focal.OwnerID != "" {
		fmt.Fprintf(&b, "User: %s\n", focal.OwnerID)
	}
	if focal.PlanID != "" {
		fmt.Fprintf(&b, "Plan: %s\n", focal.PlanID)
	}
	fmt.Fprintf(&b, "Subgoal: %s\n", focal.Name)
	if focal.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", focal.Description)
	}
	if focal.HasDeadline() {
		fmt.Fprintf(&b, "Deadline: %s\n", focal.DeadlineString())
	}
	if status := subgoalStatus(focal); status != "" {
		fmt.Fprintf(&b, "Status: %s\n", status)
	}

	if len(order.Ordered) > 0 && order.HasFocal() {
		b.WriteString("\nSubgoals in this plan, in order:\n")
		for i, s := range order.Ordered {
			desc := s.Description
			if desc == "" {
				desc = "(none)"
			}
			fmt.Fprintf(&b, "%d. %s: %s", i+1, s.Name, desc)
			if i == order.FocalIndex {
				b.WriteString(" (current)")
			}
			b.WriteString("\n")
		}
		if prev := order.Previous(); prev != nil {
			fmt.Fprintf(&b, "Previous subgoal: %s\n", prev.Name)
		}
		if next := order.Next(); next != nil {
			fmt.Fprintf(&b, "Next subgoal: %s\n", next.Name)
		}
	}

	if window := historyWindow(history, MaxHistoryPairs); len(window) > 0 {
		b.WriteString("\nPrevious conversation:\n")
		for _, e := range window {
			fmt.Fprintf(&b, "Q: %s\n", e.Question)
			if e.Answer != "" {
				fmt.Fprintf(&b, "A: %s\n", e.Answer)
			}
		}
	}

	fmt.Fprintf(&b, "\nNew question: %s\n\n", question)
	b.WriteString(qnaClosingInstruction)

	return b.String()
}

// historyWindow returns the last max entries, oldest first.
func historyWindow(history []domain.QnaEntry, max int) []domain.QnaEntry {
	if len(history) <= max {
		return history
	}
	return history[len(history)-max:]
}

func subgoalStatus(s domain.Subgoal) string {
	var parts []string
	if s.Completed {
		parts = append(parts, "completed")
	}
	if s.Priority {
		parts = append(parts, "priority")
	}
	return strings.Join(parts, ", ")
}
