package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/waypoint/internal/importer"
	"github.com/alexanderramin/waypoint/internal/repository"
	"github.com/alexanderramin/waypoint/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeImportJSON(t *testing.T, schema *importer.ImportSchema) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "import.json")
	data, err := json.MarshalIndent(schema, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func ptrStr(s string) *string { return &s }

func launchSchema() *importer.ImportSchema {
	return &importer.ImportSchema{
		Plan: importer.PlanImport{ID: "P1", OwnerID: "alice", Name: "Launch"},
		Subgoals: []importer.SubgoalImport{
			{ID: "S1", Name: "Build", Description: "Assemble it", Deadline: ptrStr("2025-01-02")},
			{ID: "S2", Name: "Plan", Description: "Checklist", Deadline: ptrStr("2025-01-01")},
			{ID: "S3", Name: "Finish", Description: "Ship it"},
		},
	}
}

func TestImportPlan_FromFile(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	obs := &captureObserver{}
	svc := NewImportService(testutil.NewTestUoW(database), obs)

	result, err := svc.ImportPlan(ctx, writeImportJSON(t, launchSchema()))

	require.NoError(t, err)
	assert.Equal(t, "P1", result.Plan.ID)
	assert.Equal(t, 3, result.SubgoalCount)

	plan, err := repository.NewSQLitePlanRepo(database).GetByID(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, "Launch", plan.Name)

	subgoals, err := repository.NewSQLiteSubgoalRepo(database).ListByPlan(ctx, "P1")
	require.NoError(t, err)
	assert.Len(t, subgoals, 3)
	for _, s := range subgoals {
		assert.Equal(t, "alice", s.OwnerID)
	}

	event := obs.last()
	assert.Equal(t, "import-plan", event.Name)
	assert.Equal(t, 3, event.Fields["subgoal_count"])
}

func TestImportPlan_ValidationErrorsAggregated(t *testing.T) {
	svc := NewImportService(testutil.NewTestUoW(testutil.NewTestDB(t)))
	schema := launchSchema()
	schema.Plan.Name = ""
	schema.Subgoals[1].Description = ""

	_, err := svc.ImportPlanFromSchema(context.Background(), schema)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed (2 errors)")
	assert.Contains(t, err.Error(), "plan.name is required")
	assert.Contains(t, err.Error(), "subgoals[1].description is required")
}

func TestImportPlan_RollsBackOnConflict(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	svc := NewImportService(testutil.NewTestUoW(database))

	_, err := svc.ImportPlanFromSchema(ctx, launchSchema())
	require.NoError(t, err)

	second := launchSchema()
	second.Plan.ID = "P2"
	second.Subgoals[0].ID = "S-new"
	// S2 already exists, so the transaction fails after inserting P2 and S-new.
	_, err = svc.ImportPlanFromSchema(ctx, second)
	require.Error(t, err)

	_, err = repository.NewSQLitePlanRepo(database).GetByID(ctx, "P2")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repository.NewSQLiteSubgoalRepo(database).GetByID(ctx, "S-new")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestImportPlan_MissingFile(t *testing.T) {
	svc := NewImportService(testutil.NewTestUoW(testutil.NewTestDB(t)))

	_, err := svc.ImportPlan(context.Background(), filepath.Join(t.TempDir(), "nope.json"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading import file")
}
