package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptrStr(s string) *string { return &s }

func validMinimalSchema() *ImportSchema {
	return &ImportSchema{
		Plan: PlanImport{OwnerID: "alice", Name: "Launch"},
		Subgoals: []SubgoalImport{
			{Name: "Build", Description: "Assemble the prototype"},
		},
	}
}

func TestValidateImportSchema_ValidMinimal(t *testing.T) {
	errs := ValidateImportSchema(validMinimalSchema())
	assert.Empty(t, errs)
}

func TestValidateImportSchema_MissingPlanFields(t *testing.T) {
	schema := validMinimalSchema()
	schema.Plan = PlanImport{Name: "  "}

	errs := ValidateImportSchema(schema)

	assert.Len(t, errs, 2)
	assertHasError(t, errs, "plan.name is required")
	assertHasError(t, errs, "plan.owner_id is required")
}

func TestValidateImportSchema_NoSubgoals(t *testing.T) {
	schema := validMinimalSchema()
	schema.Subgoals = nil

	errs := ValidateImportSchema(schema)

	assertHasError(t, errs, "at least one subgoal")
}

func TestValidateImportSchema_SubgoalErrorsAggregate(t *testing.T) {
	schema := validMinimalSchema()
	schema.Subgoals = []SubgoalImport{
		{ID: "S1", Name: "", Description: "x"},
		{ID: "S1", Name: "Dup", Description: ""},
		{Name: "Late", Description: "y", Deadline: ptrStr("01/02/2025")},
	}

	errs := ValidateImportSchema(schema)

	assert.Len(t, errs, 4)
	assertHasError(t, errs, "subgoals[0].name is required")
	assertHasError(t, errs, `subgoals[1].id: duplicate id "S1"`)
	assertHasError(t, errs, "subgoals[1].description is required")
	assertHasError(t, errs, "subgoals[2].deadline: invalid date format")
}

func assertHasError(t *testing.T, errs []error, substr string) {
	t.Helper()
	for _, err := range errs {
		if strings.Contains(err.Error(), substr) {
			return
		}
	}
	t.Errorf("expected an error containing %q, got %v", substr, errs)
}
