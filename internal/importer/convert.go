package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/google/uuid"
)

// GeneratedPlan is a plan and its subgoals ready for persistence.
type GeneratedPlan struct {
	Plan     *domain.Plan
	Subgoals []domain.Subgoal
}

// Convert transforms a validated ImportSchema into domain objects ready for persistence.
// Call ValidateImportSchema first; Convert still rejects subgoals the domain
// constructor refuses.
func Convert(schema *ImportSchema) (*GeneratedPlan, error) {
	plan := &domain.Plan{
		ID:          coalesceID(schema.Plan.ID),
		OwnerID:     schema.Plan.OwnerID,
		Name:        schema.Plan.Name,
		Description: schema.Plan.Description,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}

	subgoals := make([]domain.Subgoal, 0, len(schema.Subgoals))
	for i, si := range schema.Subgoals {
		deadline, err := parseOptionalDate(si.Deadline)
		if err != nil {
			return nil, fmt.Errorf("subgoals[%d].deadline: %w", i, err)
		}

		s, err := domain.NewSubgoal(coalesceID(si.ID), plan.ID, plan.OwnerID, si.Name, si.Description, deadline)
		if err != nil {
			return nil, fmt.Errorf("subgoals[%d]: %w", i, err)
		}
		subgoals = append(subgoals, s.WithCompleted(si.Completed).WithPriority(si.Priority))
	}

	return &GeneratedPlan{Plan: plan, Subgoals: subgoals}, nil
}

func coalesceID(id string) string {
	if id != "" {
		return id
	}
	return uuid.New().String()
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
