package testutil

import (
	"time"

	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/google/uuid"
)

// Plan options
type PlanOption func(*domain.Plan)

func WithPlanID(id string) PlanOption {
	return func(p *domain.Plan) {
		p.ID = id
	}
}

func WithPlanOwner(owner string) PlanOption {
	return func(p *domain.Plan) {
		p.OwnerID = owner
	}
}

func NewTestPlan(name string, opts ...PlanOption) *domain.Plan {
	p := &domain.Plan{
		ID:          uuid.New().String(),
		OwnerID:     "tester",
		Name:        name,
		Description: name + " plan",
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Subgoal options
type SubgoalOption func(*domain.Subgoal)

func WithSubgoalID(id string) SubgoalOption {
	return func(s *domain.Subgoal) {
		s.ID = id
	}
}

func WithOwner(owner string) SubgoalOption {
	return func(s *domain.Subgoal) {
		s.OwnerID = owner
	}
}

func WithDescription(d string) SubgoalOption {
	return func(s *domain.Subgoal) {
		s.Description = d
	}
}

// WithDeadline sets the deadline from a YYYY-MM-DD string and panics on a
// malformed date.
func WithDeadline(date string) SubgoalOption {
	return func(s *domain.Subgoal) {
		d := MustDate(date)
		s.Deadline = &d
	}
}

func WithCompleted() SubgoalOption {
	return func(s *domain.Subgoal) {
		s.Completed = true
	}
}

func WithPriority() SubgoalOption {
	return func(s *domain.Subgoal) {
		s.Priority = true
	}
}

// NewTestSubgoal builds a subgoal directly, bypassing NewSubgoal validation so
// tests can also construct degenerate values.
func NewTestSubgoal(planID, name string, opts ...SubgoalOption) domain.Subgoal {
	s := domain.Subgoal{
		ID:          uuid.New().String(),
		PlanID:      planID,
		OwnerID:     "tester",
		Name:        name,
		Description: name + " description",
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// MustDate parses a YYYY-MM-DD string as a UTC date.
func MustDate(date string) time.Time {
	d, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		panic(err)
	}
	return d
}
