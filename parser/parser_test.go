// Copyright (C) 2026, AIZone Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aizone/behaviortree/builtin"
	"github.com/aizone/behaviortree/core"
)

func TestParseConditionSimple(t *testing.T) {
	reg := builtin.NewRegistry(nil)
	c, err := ConditionParser("HasEnemies", reg)
	require.NoError(t, err)
	require.NotNil(t, c)
}

func TestParseConditionNot(t *testing.T) {
	reg := builtin.NewRegistry(nil)
	c, err := ConditionParser("Not(HasEnemies)", reg)
	require.NoError(t, err)
	require.NotNil(t, c)
}

func TestParseConditionAndNot(t *testing.T) {
	reg := builtin.NewRegistry(nil)
	c, err := ConditionParser("And(Not(HasEnemies),True)", reg)
	require.NoError(t, err)
	require.NotNil(t, c)
}

func TestParseConditionAndNotInnerParam(t *testing.T) {
	reg := builtin.NewRegistry(nil)
	c, err := ConditionParser("And(Not(HasEnemies{3}),True)", reg)
	require.NoError(t, err)
	require.NotNil(t, c)
}

func TestParseConditionAndNotInnerOuterParam(t *testing.T) {
	reg := builtin.NewRegistry(nil)
	c, err := ConditionParser("And(Not{3}(HasEnemies{3}),True)", reg)
	require.NoError(t, err)
	require.NotNil(t, c)
}

func TestParseConditionParamEverywhere(t *testing.T) {
	reg := builtin.NewRegistry(nil)
	c, err := ConditionParser("And{1}(Not{3}(HasEnemies{3}),True{1})", reg)
	require.NoError(t, err)
	require.NotNil(t, c)
}

func TestParseFailUnbalancedBrackets(t *testing.T) {
	reg := builtin.NewRegistry(nil)
	c, err := ConditionParser("And(Not(HasEnemies{3},True)", reg)
	require.Error(t, err)
	require.Nil(t, c)
}

func TestParseConditionNodeMultipleParamsAsChild(t *testing.T) {
	reg := builtin.NewRegistry(nil)
	c, err := ConditionParser("Not(IsCloseToGroup{1,10})", reg)
	require.NoError(t, err)
	require.NotNil(t, c)
}

func TestParseTreeNode(t *testing.T) {
	reg := builtin.NewRegistry(nil)
	n, err := TreeNodeParser("Invert{1}", reg)
	require.NoError(t, err)
	require.NotNil(t, n)
}

func TestParseTreeNodeMultipleParams(t *testing.T) {
	reg := builtin.NewRegistry(nil)
	n, err := TreeNodeParser("Invert{1,1000}", reg)
	require.NoError(t, err)
	require.NotNil(t, n)
}

func TestParseIdleNode(t *testing.T) {
	reg := builtin.NewRegistry(nil)
	n, err := TreeNodeParser("Idle{1000}", reg)
	require.NoError(t, err)
	require.NotNil(t, n)
	require.Equal(t, "1000", n.Params())
}

func TestParseIdleNodeNoParam(t *testing.T) {
	reg := builtin.NewRegistry(nil)
	n, err := TreeNodeParser("Idle", reg)
	require.NoError(t, err)
	require.NotNil(t, n)
}

func TestParseUnknown(t *testing.T) {
	reg := builtin.NewRegistry(nil)
	n, err := TreeNodeParser("Unknown", reg)
	require.Error(t, err)
	require.Nil(t, n)
	require.True(t, errors.Is(err, core.ErrUnknownType))
}

func TestSteerWeightChildMismatchWrapsSentinel(t *testing.T) {
	reg := builtin.NewRegistry(nil)
	_, err := TreeNodeParser("Steer{0.6}(GroupFlee{2},Wander{1})", reg)
	require.Error(t, err)
	require.True(t, errors.Is(err, core.ErrWeightCountMismatch))
}

func TestFilterMissingFilterType(t *testing.T) {
	reg := builtin.NewRegistry(nil)
	c, err := ConditionParser("Filter", reg)
	require.EqualError(t, err, "missing details for Filter condition")
	require.Nil(t, c)
}

func TestFilterSingleChild(t *testing.T) {
	reg := builtin.NewRegistry(nil)
	c, err := ConditionParser("Filter(SelectEmpty)", reg)
	require.NoError(t, err)
	require.NotNil(t, c)
}

func TestMultipleFilter(t *testing.T) {
	reg := builtin.NewRegistry(nil)
	c, err := ConditionParser("Filter(SelectEmpty,SelectHighestAggro)", reg)
	require.NoError(t, err)
	require.NotNil(t, c)
}

func TestSteer(t *testing.T) {
	reg := builtin.NewRegistry(nil)
	n, err := TreeNodeParser("Steer{0.6,0.4}(GroupFlee{2},Wander{1})", reg)
	require.NoError(t, err)
	require.NotNil(t, n)
}

func TestSteerGroupFleeAndSelectionSeek(t *testing.T) {
	reg := builtin.NewRegistry(nil)
	n, err := TreeNodeParser("Steer{0.6,0.4}(GroupFlee{2},SelectionSeek)", reg)
	require.NoError(t, err)
	require.NotNil(t, n)
}

func TestSteerWithoutParam(t *testing.T) {
	reg := builtin.NewRegistry(nil)
	n, err := TreeNodeParser("Steer(GroupFlee{2})", reg)
	require.NoError(t, err)
	require.NotNil(t, n)
}

func TestSteerWanderWithoutAnyParam(t *testing.T) {
	reg := builtin.NewRegistry(nil)
	n, err := TreeNodeParser("Steer(Wander)", reg)
	require.NoError(t, err)
	require.NotNil(t, n)
}

func TestSteerWeightChildMismatchErrors(t *testing.T) {
	reg := builtin.NewRegistry(nil)
	_, err := TreeNodeParser("Steer{0.6}(GroupFlee{2},Wander{1})", reg)
	require.Error(t, err)
}

func TestFilterInAnd(t *testing.T) {
	reg := builtin.NewRegistry(nil)
	c, err := ConditionParser("And(Filter(SelectEmpty,SelectHighestAggro),True)", reg)
	require.NoError(t, err)
	require.NotNil(t, c)
}

func TestInnerFiltersUnion(t *testing.T) {
	reg := builtin.NewRegistry(nil)
	c, err := ConditionParser("Filter(Union(SelectEmpty,SelectHighestAggro))", reg)
	require.NoError(t, err)
	require.NotNil(t, c)
}

func TestInnerFiltersIntersection(t *testing.T) {
	reg := builtin.NewRegistry(nil)
	c, err := ConditionParser("Filter(Intersection(SelectEmpty,SelectHighestAggro,SelectZone))", reg)
	require.NoError(t, err)
	require.NotNil(t, c)
}

func TestInnerFiltersCombination(t *testing.T) {
	reg := builtin.NewRegistry(nil)
	c, err := ConditionParser("Filter(Intersection(Last(SelectEmpty),SelectHighestAggro,Random{1}(SelectZone)))", reg)
	require.NoError(t, err)
	require.NotNil(t, c)
}

func TestMultipleFilterInAnd(t *testing.T) {
	reg := builtin.NewRegistry(nil)
	c, err := ConditionParser(
		"And(Filter(SelectEmpty,SelectHighestAggro),True,And(Filter(SelectEmpty,SelectHighestAggro),True))", reg)
	require.NoError(t, err)
	require.NotNil(t, c)
}

func TestTrailingInputIsRejected(t *testing.T) {
	reg := builtin.NewRegistry(nil)
	_, err := TreeNodeParser("Idle{1}Idle{2}", reg)
	require.Error(t, err)
}
