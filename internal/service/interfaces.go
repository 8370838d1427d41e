package service

import (
	"context"

	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/alexanderramin/waypoint/internal/importer"
)

// QnaService answers questions about one subgoal and keeps the per-subgoal
// conversation history.
type QnaService interface {
	// Open returns the stored history without changing it.
	Open(ctx context.Context, subgoalID string) (*domain.QnaSnapshot, error)

	// Ask answers question in the context of the subgoal's plan and records
	// the exchange. ErrEmptyQuestion is the only error caused by input.
	Ask(ctx context.Context, subgoalID, question string) (*domain.QnaSnapshot, error)
}

// PlanView is a plan with its subgoals in canonical sibling order.
type PlanView struct {
	Plan  *domain.Plan
	Order domain.SiblingOrder
}

type PlanService interface {
	List(ctx context.Context, ownerID string) ([]*domain.Plan, error)
	Show(ctx context.Context, planID string) (*PlanView, error)
}

// ImportResult holds the outcome of a plan import.
type ImportResult struct {
	Plan         *domain.Plan
	SubgoalCount int
}

type ImportService interface {
	ImportPlan(ctx context.Context, filePath string) (*ImportResult, error)
	ImportPlanFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}
