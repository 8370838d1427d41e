package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/waypoint/internal/domain"
)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	errs = append(errs, validatePlan(&schema.Plan)...)
	errs = append(errs, validateSubgoals(schema.Subgoals)...)

	return errs
}

func validatePlan(p *PlanImport) []error {
	var errs []error

	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, fmt.Errorf("plan.name is required"))
	}
	if strings.TrimSpace(p.OwnerID) == "" {
		errs = append(errs, fmt.Errorf("plan.owner_id is required"))
	}

	return errs
}

func validateSubgoals(subgoals []SubgoalImport) []error {
	var errs []error

	if len(subgoals) == 0 {
		errs = append(errs, fmt.Errorf("subgoals: at least one subgoal is required"))
	}

	ids := make(map[string]bool)
	for i, s := range subgoals {
		prefix := fmt.Sprintf("subgoals[%d]", i)

		if s.ID != "" {
			if ids[s.ID] {
				errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, s.ID))
			}
			ids[s.ID] = true
		}
		if strings.TrimSpace(s.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if strings.TrimSpace(s.Description) == "" {
			errs = append(errs, fmt.Errorf("%s.description is required", prefix))
		}
		if s.Deadline != nil {
			if _, err := time.Parse(domain.DateLayout, *s.Deadline); err != nil {
				errs = append(errs, fmt.Errorf("%s.deadline: invalid date format %q (expected YYYY-MM-DD)", prefix, *s.Deadline))
			}
		}
	}

	return errs
}
