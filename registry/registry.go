// Copyright (C) 2026, AIZone Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package registry implements §4.7's five parallel string→factory tables:
// tree_node, steer_node, steering, filter and condition. Built-in names are
// registered into a fresh Registry at construction (package builtin); user
// extensions register into the same tables afterward.
package registry

import (
	"sync"

	"github.com/aizone/behaviortree/core"
	"github.com/aizone/behaviortree/steering"
)

// TreeNodeFactory builds an ordinary tree node (leaf, decorator or
// composite) from its parsed name/params, activating condition and child
// nodes. cond is nil if the node carried no activating condition.
type TreeNodeFactory func(name, params string, cond core.Condition, children []core.Node) (core.Node, error)

// SteerNodeFactory builds the Steer node kind specifically: its "children"
// are weighted steering atoms, not tree nodes, so it is kept in a table of
// its own rather than overloading TreeNodeFactory (§4.7).
type SteerNodeFactory func(name, params string, cond core.Condition, weighted []steering.Weighted) (core.Node, error)

// SteeringFactory builds a steering leaf atom (e.g. TargetSeek, Wander)
// from its parsed params.
type SteeringFactory func(params string) (core.Steering, error)

// FilterFactory builds a filter leaf or combinator from its parsed params
// and (for combinators) already-built child filters.
type FilterFactory func(params string, children []core.Filter) (core.Filter, error)

// ConditionFactory builds a condition leaf or combinator from its parsed
// params and already-built child conditions.
type ConditionFactory func(params string, children []core.Condition) (core.Condition, error)

// table is a name-keyed factory store shared by every category below.
// Register/Unregister report success as a bool rather than an error,
// matching §4.7's literal contract ("returns false on duplicate" / "returns
// false on absent").
type table[F any] struct {
	mu    sync.RWMutex
	funcs map[string]F
}

func newTable[F any]() *table[F] {
	return &table[F]{funcs: make(map[string]F)}
}

func (t *table[F]) register(name string, f F) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.funcs[name]; exists {
		return false
	}
	t.funcs[name] = f
	return true
}

func (t *table[F]) unregister(name string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.funcs[name]; !exists {
		return false
	}
	delete(t.funcs, name)
	return true
}

func (t *table[F]) lookup(name string) (F, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	f, ok := t.funcs[name]
	return f, ok
}

func (t *table[F]) names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, 0, len(t.funcs))
	for name := range t.funcs {
		out = append(out, name)
	}
	return out
}

// Registry holds the five factory tables a parser resolves tree-definition
// names against. The zero value is not usable; construct with New.
type Registry struct {
	treeNodes  *table[TreeNodeFactory]
	steerNodes *table[SteerNodeFactory]
	steerings  *table[SteeringFactory]
	filters    *table[FilterFactory]
	conditions *table[ConditionFactory]
}

// New returns an empty Registry. Callers almost always want
// builtin.NewRegistry instead, which pre-populates every built-in name.
func New() *Registry {
	return &Registry{
		treeNodes:  newTable[TreeNodeFactory](),
		steerNodes: newTable[SteerNodeFactory](),
		steerings:  newTable[SteeringFactory](),
		filters:    newTable[FilterFactory](),
		conditions: newTable[ConditionFactory](),
	}
}

// RegisterTreeNode registers a tree-node factory under name. It returns
// false, leaving the existing entry untouched, if name is already taken.
func (r *Registry) RegisterTreeNode(name string, f TreeNodeFactory) bool {
	return r.treeNodes.register(name, f)
}

// UnregisterTreeNode removes name's tree-node factory. It returns false if
// name was not registered.
func (r *Registry) UnregisterTreeNode(name string) bool {
	return r.treeNodes.unregister(name)
}

// TreeNode looks up name's tree-node factory.
func (r *Registry) TreeNode(name string) (TreeNodeFactory, bool) {
	return r.treeNodes.lookup(name)
}

// TreeNodeNames lists every registered tree-node name, in no particular
// order.
func (r *Registry) TreeNodeNames() []string { return r.treeNodes.names() }

// RegisterSteerNode registers the Steer node factory under name.
func (r *Registry) RegisterSteerNode(name string, f SteerNodeFactory) bool {
	return r.steerNodes.register(name, f)
}

// UnregisterSteerNode removes name's Steer node factory.
func (r *Registry) UnregisterSteerNode(name string) bool {
	return r.steerNodes.unregister(name)
}

// SteerNode looks up name's Steer node factory.
func (r *Registry) SteerNode(name string) (SteerNodeFactory, bool) {
	return r.steerNodes.lookup(name)
}

// SteerNodeNames lists every registered Steer node name.
func (r *Registry) SteerNodeNames() []string { return r.steerNodes.names() }

// RegisterSteering registers a steering-atom factory under name.
func (r *Registry) RegisterSteering(name string, f SteeringFactory) bool {
	return r.steerings.register(name, f)
}

// UnregisterSteering removes name's steering-atom factory.
func (r *Registry) UnregisterSteering(name string) bool {
	return r.steerings.unregister(name)
}

// Steering looks up name's steering-atom factory.
func (r *Registry) Steering(name string) (SteeringFactory, bool) {
	return r.steerings.lookup(name)
}

// SteeringNames lists every registered steering-atom name.
func (r *Registry) SteeringNames() []string { return r.steerings.names() }

// RegisterFilter registers a filter factory under name.
func (r *Registry) RegisterFilter(name string, f FilterFactory) bool {
	return r.filters.register(name, f)
}

// UnregisterFilter removes name's filter factory.
func (r *Registry) UnregisterFilter(name string) bool {
	return r.filters.unregister(name)
}

// Filter looks up name's filter factory.
func (r *Registry) Filter(name string) (FilterFactory, bool) {
	return r.filters.lookup(name)
}

// FilterNames lists every registered filter name.
func (r *Registry) FilterNames() []string { return r.filters.names() }

// RegisterCondition registers a condition factory under name.
func (r *Registry) RegisterCondition(name string, f ConditionFactory) bool {
	return r.conditions.register(name, f)
}

// UnregisterCondition removes name's condition factory.
func (r *Registry) UnregisterCondition(name string) bool {
	return r.conditions.unregister(name)
}

// Condition looks up name's condition factory.
func (r *Registry) Condition(name string) (ConditionFactory, bool) {
	return r.conditions.lookup(name)
}

// ConditionNames lists every registered condition name.
func (r *Registry) ConditionNames() []string { return r.conditions.names() }

// Kind enumerates the five factory tables, for the supplemented Names(kind)
// enumeration entry point offered to host diagnostics.
type Kind int

const (
	KindTreeNode Kind = iota
	KindSteerNode
	KindSteering
	KindFilter
	KindCondition
)

// Names enumerates every registered name under kind. Unknown kinds return
// nil.
func (r *Registry) Names(kind Kind) []string {
	switch kind {
	case KindTreeNode:
		return r.TreeNodeNames()
	case KindSteerNode:
		return r.SteerNodeNames()
	case KindSteering:
		return r.SteeringNames()
	case KindFilter:
		return r.FilterNames()
	case KindCondition:
		return r.ConditionNames()
	default:
		return nil
	}
}
