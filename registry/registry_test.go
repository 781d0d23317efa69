// Copyright (C) 2026, AIZone Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aizone/behaviortree/core"
)

func TestRegisterTreeNodeDuplicateFails(t *testing.T) {
	r := New()
	f := func(name, params string, cond core.Condition, children []core.Node) (core.Node, error) {
		return nil, nil
	}
	require.True(t, r.RegisterTreeNode("Idle", f))
	require.False(t, r.RegisterTreeNode("Idle", f))

	got, ok := r.TreeNode("Idle")
	require.True(t, ok)
	require.NotNil(t, got)
}

func TestUnregisterAbsentFails(t *testing.T) {
	r := New()
	require.False(t, r.UnregisterTreeNode("Nope"))
	require.False(t, r.UnregisterFilter("Nope"))
	require.False(t, r.UnregisterCondition("Nope"))
	require.False(t, r.UnregisterSteering("Nope"))
	require.False(t, r.UnregisterSteerNode("Nope"))
}

func TestUnregisterThenReregister(t *testing.T) {
	r := New()
	f := func(params string, children []core.Filter) (core.Filter, error) { return nil, nil }
	require.True(t, r.RegisterFilter("SelectAll", f))
	require.True(t, r.UnregisterFilter("SelectAll"))

	_, ok := r.Filter("SelectAll")
	require.False(t, ok)

	require.True(t, r.RegisterFilter("SelectAll", f))
}

func TestNamesEnumeratesEachKind(t *testing.T) {
	r := New()
	r.RegisterCondition("And", func(params string, children []core.Condition) (core.Condition, error) { return nil, nil })
	r.RegisterCondition("Or", func(params string, children []core.Condition) (core.Condition, error) { return nil, nil })

	names := r.Names(KindCondition)
	require.ElementsMatch(t, []string{"And", "Or"}, names)
	require.Empty(t, r.Names(Kind(99)))
}

func TestTablesAreIndependent(t *testing.T) {
	r := New()
	require.True(t, r.RegisterFilter("Select", func(string, []core.Filter) (core.Filter, error) { return nil, nil }))
	require.True(t, r.RegisterCondition("Select", func(string, []core.Condition) (core.Condition, error) { return nil, nil }))

	_, okFilter := r.Filter("Select")
	_, okCond := r.Condition("Select")
	require.True(t, okFilter)
	require.True(t, okCond)
}
