package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/waypoint/internal/domain"
)

// FormatPlanList renders a table of plans with their IDs.
func FormatPlanList(plans []*domain.Plan, now time.Time) string {
	if len(plans) == 0 {
		return Dim("No plans found. Import one with: waypoint plan import <file>") + "\n"
	}

	rows := make([][]string, 0, len(plans))
	for _, p := range plans {
		rows = append(rows, []string{
			Dim(p.ID),
			StyleBold.Render(p.Name),
			p.OwnerID,
			Dim(HumanTimestamp(p.CreatedAt, now)),
		})
	}
	return RenderTable([]string{"ID", "NAME", "OWNER", "CREATED"}, rows)
}

// FormatPlanView renders a plan header and its subgoals in canonical order.
// When the order carries a focal subgoal it is highlighted.
func FormatPlanView(plan *domain.Plan, order domain.SiblingOrder, now time.Time) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(plan.Name))
	b.WriteString("  " + Dim(plan.ID) + "\n")
	if desc := strings.TrimSpace(plan.Description); desc != "" {
		b.WriteString(wrapText(desc, qnaWrapWidth) + "\n")
	}
	b.WriteString("\n")

	if len(order.Ordered) == 0 {
		b.WriteString(Dim("This plan has no subgoals.") + "\n")
		return b.String()
	}

	rows := make([][]string, 0, len(order.Ordered))
	for i, s := range order.Ordered {
		name := s.Name
		if order.HasFocal() && i == order.FocalIndex {
			name = StyleYellow.Render("▸ " + name)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d.", i+1),
			SubgoalMarker(s),
			name,
			DeadlineLabel(s.Deadline, now),
			Dim(s.ID),
		})
	}
	b.WriteString(RenderTable([]string{"#", "", "SUBGOAL", "DEADLINE", "ID"}, rows))
	return b.String()
}
