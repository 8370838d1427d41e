package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/waypoint/internal/domain"
)

// ErrNotFound is wrapped by lookups that match no row.
var ErrNotFound = errors.New("not found")

type PlanRepo interface {
	Create(ctx context.Context, p *domain.Plan) error
	GetByID(ctx context.Context, id string) (*domain.Plan, error)
	List(ctx context.Context, ownerID string) ([]*domain.Plan, error)
}

// SubgoalRepo is read-only from the Q&A engine's point of view; Create exists
// for plan import.
type SubgoalRepo interface {
	Create(ctx context.Context, s domain.Subgoal) error
	GetByID(ctx context.Context, id string) (*domain.Subgoal, error)
	// ListByPlan returns every subgoal of the plan in unspecified order.
	ListByPlan(ctx context.Context, planID string) ([]domain.Subgoal, error)
}

// QnaRepo is the per-subgoal, append-only Q&A history store.
//
// Implementations must serialize Append calls for the same subgoal id so that
// entries never interleave or get lost; appends for different subgoal ids may
// run in parallel. History returns a fresh slice in append order, empty (not
// an error) when nothing has been asked yet.
type QnaRepo interface {
	History(ctx context.Context, subgoalID string) ([]domain.QnaEntry, error)
	// Append stores a new entry with a generated id and returns it once it is
	// durable.
	Append(ctx context.Context, subgoalID, question, answer string) (domain.QnaEntry, error)
}
