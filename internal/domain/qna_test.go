package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func order(focal int, names ...string) SiblingOrder {
	subs := make([]Subgoal, len(names))
	for i, n := range names {
		subs[i] = Subgoal{ID: n, Name: n}
	}
	return SiblingOrder{Ordered: subs, FocalIndex: focal}
}

func TestSiblingOrder_Middle(t *testing.T) {
	o := order(1, "Plan", "Build", "Finish")

	require.NotNil(t, o.Previous())
	require.NotNil(t, o.Next())
	assert.Equal(t, "Plan", o.Previous().Name)
	assert.Equal(t, "Finish", o.Next().Name)
}

func TestSiblingOrder_First(t *testing.T) {
	o := order(0, "Plan", "Build")
	assert.Nil(t, o.Previous())
	require.NotNil(t, o.Next())
	assert.Equal(t, "Build", o.Next().Name)
}

func TestSiblingOrder_Last(t *testing.T) {
	o := order(1, "Plan", "Build")
	assert.Nil(t, o.Next())
	require.NotNil(t, o.Previous())
}

func TestSiblingOrder_FocalMissing(t *testing.T) {
	o := order(-1, "Plan", "Build")
	assert.False(t, o.HasFocal())
	assert.Nil(t, o.Previous())
	assert.Nil(t, o.Next())
}

func TestSiblingOrder_Empty(t *testing.T) {
	o := SiblingOrder{FocalIndex: -1}
	assert.False(t, o.HasFocal())
	assert.Nil(t, o.Next())
}
