package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSubgoal_Valid(t *testing.T) {
	due := time.Date(2025, 1, 2, 17, 30, 0, 0, time.UTC)
	s, err := NewSubgoal("S1", "P1", "alice", "Build", "Build the thing", &due)
	require.NoError(t, err)

	assert.Equal(t, "S1", s.ID)
	assert.Equal(t, "P1", s.PlanID)
	assert.Equal(t, "alice", s.OwnerID)
	require.NotNil(t, s.Deadline)
	assert.Equal(t, "2025-01-02", s.DeadlineString())
	assert.Equal(t, 0, s.Deadline.Hour(), "deadline should be truncated to the date")
	assert.False(t, s.Completed)
	assert.False(t, s.Priority)
}

func TestNewSubgoal_EmptyName(t *testing.T) {
	_, err := NewSubgoal("S1", "P1", "alice", "  ", "desc", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSubgoal)
	assert.Contains(t, err.Error(), "name")
}

func TestNewSubgoal_EmptyDescription(t *testing.T) {
	_, err := NewSubgoal("S1", "P1", "alice", "Build", "", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSubgoal)
	assert.Contains(t, err.Error(), "description")
}

func TestNewSubgoal_NoDeadline(t *testing.T) {
	s, err := NewSubgoal("S1", "P1", "", "Finish", "Wrap up", nil)
	require.NoError(t, err)
	assert.False(t, s.HasDeadline())
	assert.Equal(t, "", s.DeadlineString())
}

func TestSubgoal_WithFlagsReturnsCopy(t *testing.T) {
	orig, err := NewSubgoal("S1", "P1", "", "Build", "desc", nil)
	require.NoError(t, err)

	done := orig.WithCompleted(true).WithPriority(true)

	assert.True(t, done.Completed)
	assert.True(t, done.Priority)
	assert.False(t, orig.Completed, "original must not change")
	assert.False(t, orig.Priority, "original must not change")
}
