package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/alexanderramin/waypoint/internal/planner"
	"github.com/alexanderramin/waypoint/internal/repository"
)

type planService struct {
	plans    repository.PlanRepo
	subgoals repository.SubgoalRepo
}

func NewPlanService(plans repository.PlanRepo, subgoals repository.SubgoalRepo) PlanService {
	return &planService{plans: plans, subgoals: subgoals}
}

func (s *planService) List(ctx context.Context, ownerID string) ([]*domain.Plan, error) {
	return s.plans.List(ctx, ownerID)
}

func (s *planService) Show(ctx context.Context, planID string) (*PlanView, error) {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	subgoals, err := s.subgoals.ListByPlan(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("listing subgoals for plan %s: %w", planID, err)
	}
	return &PlanView{Plan: plan, Order: planner.OrderSiblings(subgoals, "")}, nil
}
