package importer

import (
	"testing"

	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_MinimalPlanGeneratesIDs(t *testing.T) {
	gen, err := Convert(validMinimalSchema())
	require.NoError(t, err)

	assert.NotEmpty(t, gen.Plan.ID)
	assert.Equal(t, "alice", gen.Plan.OwnerID)
	assert.False(t, gen.Plan.CreatedAt.IsZero())
	require.Len(t, gen.Subgoals, 1)

	s := gen.Subgoals[0]
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, gen.Plan.ID, s.PlanID)
	assert.Equal(t, "alice", s.OwnerID)
	assert.Nil(t, s.Deadline)
}

func TestConvert_KeepsExplicitIDsAndFlags(t *testing.T) {
	schema, err := LoadImportSchema("testdata/launch_plan.json")
	require.NoError(t, err)
	require.Empty(t, ValidateImportSchema(schema))

	gen, err := Convert(schema)
	require.NoError(t, err)

	assert.Equal(t, "P1", gen.Plan.ID)
	assert.Equal(t, "Get a working prototype in front of users", gen.Plan.Description)
	require.Len(t, gen.Subgoals, 3)

	byID := make(map[string]domain.Subgoal)
	for _, s := range gen.Subgoals {
		byID[s.ID] = s
	}
	assert.Equal(t, "2025-01-02", byID["S1"].DeadlineString())
	assert.True(t, byID["S2"].Completed)
	assert.True(t, byID["S3"].Priority)
	assert.False(t, byID["S3"].HasDeadline())
}

func TestConvert_RejectsBlankSubgoal(t *testing.T) {
	schema := validMinimalSchema()
	schema.Subgoals[0].Description = ""

	_, err := Convert(schema)

	assert.ErrorIs(t, err, domain.ErrInvalidSubgoal)
}

func TestLoadImportSchema_Errors(t *testing.T) {
	_, err := LoadImportSchema("testdata/does-not-exist.json")
	assert.Error(t, err)
}
