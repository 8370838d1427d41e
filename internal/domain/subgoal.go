package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidSubgoal is returned when a subgoal is constructed without a name
// or description.
var ErrInvalidSubgoal = errors.New("invalid subgoal")

// DateLayout is the calendar-date format used for deadlines.
const DateLayout = "2006-01-02"

// Subgoal is one actionable step within a plan. Values are immutable:
// WithCompleted and WithPriority return updated copies.
type Subgoal struct {
	ID          string
	PlanID      string
	OwnerID     string
	Name        string
	Description string
	Deadline    *time.Time // calendar date, nil when unscheduled
	Completed   bool
	Priority    bool
}

// NewSubgoal validates and builds a Subgoal. The deadline, if any, is
// truncated to its calendar date in UTC.
func NewSubgoal(id, planID, ownerID, name, description string, deadline *time.Time) (Subgoal, error) {
	if strings.TrimSpace(name) == "" {
		return Subgoal{}, fmt.Errorf("%w: name is required", ErrInvalidSubgoal)
	}
	if strings.TrimSpace(description) == "" {
		return Subgoal{}, fmt.Errorf("%w: description is required", ErrInvalidSubgoal)
	}
	return Subgoal{
		ID:          id,
		PlanID:      planID,
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		Deadline:    dateOnly(deadline),
	}, nil
}

// WithCompleted returns a copy of s with the completion flag set.
func (s Subgoal) WithCompleted(completed bool) Subgoal {
	s.Completed = completed
	return s
}

// WithPriority returns a copy of s with the priority flag set.
func (s Subgoal) WithPriority(priority bool) Subgoal {
	s.Priority = priority
	return s
}

// HasDeadline reports whether the subgoal is scheduled.
func (s Subgoal) HasDeadline() bool {
	return s.Deadline != nil
}

// DeadlineString formats the deadline as YYYY-MM-DD, or "" when unset.
func (s Subgoal) DeadlineString() string {
	if s.Deadline == nil {
		return ""
	}
	return s.Deadline.Format(DateLayout)
}

func dateOnly(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &day
}
