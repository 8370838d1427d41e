package planner

import (
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/waypoint/internal/domain"
)

// OrderSiblings returns the subgoals of one plan in canonical order and the
// position of focalID within it (-1 when absent). The input is not modified.
//
// Canonical order:
// 1. Deadline: earliest first (nil last)
// 2. Name: case-insensitive ascending
// 3. ID: lexical ascending
func OrderSiblings(siblings []domain.Subgoal, focalID string) domain.SiblingOrder {
	ordered := make([]domain.Subgoal, len(siblings))
	copy(ordered, siblings)

	sort.SliceStable(ordered, func(i, j int) bool {
		return less(ordered[i], ordered[j])
	})

	focal := -1
	if focalID != "" {
		for i := range ordered {
			if ordered[i].ID == focalID {
				focal = i
				break
			}
		}
	}
	return domain.SiblingOrder{Ordered: ordered, FocalIndex: focal}
}

func less(a, b domain.Subgoal) bool {
	if (a.Deadline == nil) != (b.Deadline == nil) {
		return a.Deadline != nil
	}
	if a.Deadline != nil && b.Deadline != nil {
		da, db := dateKey(*a.Deadline), dateKey(*b.Deadline)
		if da != db {
			return da < db
		}
	}

	na, nb := strings.ToLower(a.Name), strings.ToLower(b.Name)
	if na != nb {
		return na < nb
	}
	return a.ID < b.ID
}

// dateKey compares deadlines as calendar dates in the value's own location,
// so a stray time component cannot split two subgoals due on the same day.
func dateKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
