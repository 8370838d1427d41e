package domain

import "time"

// QnaEntry is one question/answer exchange about a subgoal. Entries are
// append-only: once stored they are never modified or reordered.
type QnaEntry struct {
	ID        string
	SubgoalID string
	Question  string
	Answer    string // empty when generation failed upstream
	CreatedAt time.Time
}

// QnaSnapshot is the history of one subgoal as returned to a presenter.
type QnaSnapshot struct {
	SubgoalID string
	History   []QnaEntry
}

// SiblingOrder is the deterministic ordering of a plan's subgoals, with the
// position of the focal subgoal. FocalIndex is -1 when the focal subgoal is
// not part of Ordered.
type SiblingOrder struct {
	Ordered    []Subgoal
	FocalIndex int
}

// HasFocal reports whether the focal subgoal was located.
func (o SiblingOrder) HasFocal() bool {
	return o.FocalIndex >= 0 && o.FocalIndex < len(o.Ordered)
}

// Previous returns the subgoal immediately before the focal one, if any.
func (o SiblingOrder) Previous() *Subgoal {
	if !o.HasFocal() || o.FocalIndex == 0 {
		return nil
	}
	return &o.Ordered[o.FocalIndex-1]
}

// Next returns the subgoal immediately after the focal one, if any.
func (o SiblingOrder) Next() *Subgoal {
	if !o.HasFocal() || o.FocalIndex == len(o.Ordered)-1 {
		return nil
	}
	return &o.Ordered[o.FocalIndex+1]
}
