// Copyright (C) 2026, AIZone Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package builtin

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aizone/behaviortree/core"
	"github.com/aizone/behaviortree/steering"
)

func TestNewRegistryHasEveryBuiltinName(t *testing.T) {
	r := NewRegistry(nil)

	treeNodes := []string{
		"Idle", "Print", "Invert", "Fail", "Succeed", "Limit",
		"Sequence", "PrioritySelector", "ProbabilitySelector", "RandomSelector", "Parallel",
	}
	for _, name := range treeNodes {
		_, ok := r.TreeNode(name)
		require.Truef(t, ok, "tree node %q should be registered", name)
	}

	_, ok := r.SteerNode("Steer")
	require.True(t, ok)

	steerings := []string{"TargetSeek", "TargetFlee", "GroupSeek", "GroupFlee", "SelectionSeek", "SelectionFlee", "Wander"}
	for _, name := range steerings {
		_, ok := r.Steering(name)
		require.Truef(t, ok, "steering %q should be registered", name)
	}

	filters := []string{
		"SelectEmpty", "SelectAll", "SelectZone", "SelectHighestAggro",
		"SelectGroupLeader", "SelectGroupMembers", "First", "Last", "Random",
		"Union", "Intersection", "Difference", "Complement",
	}
	for _, name := range filters {
		_, ok := r.Filter(name)
		require.Truef(t, ok, "filter %q should be registered", name)
	}

	conditions := []string{"And", "Or", "Not", "True", "False", "HasEnemies", "IsInGroup", "IsGroupLeader", "IsCloseToGroup"}
	for _, name := range conditions {
		_, ok := r.Condition(name)
		require.Truef(t, ok, "condition %q should be registered", name)
	}

	// Filter is deliberately absent from the condition table; the parser
	// special-cases it.
	_, ok = r.Condition("Filter")
	require.False(t, ok)
}

func TestIdleFactoryParsesMillis(t *testing.T) {
	r := NewRegistry(nil)
	f, _ := r.TreeNode("Idle")
	n, err := f("Idle", "150", nil, nil)
	require.NoError(t, err)
	require.Equal(t, "150", n.Params())
}

func TestIdleFactoryRejectsBadParams(t *testing.T) {
	r := NewRegistry(nil)
	f, _ := r.TreeNode("Idle")
	_, err := f("Idle", "not-a-number", nil, nil)
	require.Error(t, err)
}

func TestProbabilitySelectorDefaultsMissingWeights(t *testing.T) {
	weights, err := probabilityWeights("", 3)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 1, 1}, weights)
}

func TestProbabilitySelectorRejectsMismatchedWeights(t *testing.T) {
	_, err := probabilityWeights("1,2", 3)
	require.Error(t, err)
}

func TestTargetSeekFactoryParsesVec3(t *testing.T) {
	r := NewRegistry(nil)
	f, _ := r.Steering("TargetSeek")
	s, err := f("1,2,3")
	require.NoError(t, err)
	require.Equal(t, steering.TargetSeek{Target: core.Vec3{X: 1, Y: 2, Z: 3}}, s)
}

func TestFilterFactoriesRejectWrongChildCount(t *testing.T) {
	r := NewRegistry(nil)
	f, _ := r.Filter("First")
	_, err := f("", nil)
	require.Error(t, err)
}

func TestConditionNotRejectsWrongChildCount(t *testing.T) {
	r := NewRegistry(nil)
	f, _ := r.Condition("Not")
	_, err := f("", nil)
	require.Error(t, err)
}
