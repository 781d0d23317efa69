// Copyright (C) 2026, AIZone Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package builtin registers every built-in tree-node, steering, filter and
// condition kind described by §4.3-§4.6 into a fresh registry.Registry, per
// §4.7: "Built-in names... are registered at construction; user extensions
// are registered thereafter."
//
// The "Filter" condition atom is deliberately NOT registered here: its
// single child is a filter-grammar subtree, not a condition, so it cannot
// be expressed through ConditionFactory's (params, []core.Condition)
// shape. The parser special-cases the literal name "Filter" by resolving
// its child through the filter table and constructing condition.Filter
// directly (see package parser).
package builtin

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aizone/behaviortree/condition"
	"github.com/aizone/behaviortree/core"
	"github.com/aizone/behaviortree/filter"
	"github.com/aizone/behaviortree/node"
	"github.com/aizone/behaviortree/registry"
	"github.com/aizone/behaviortree/steering"
)

// NewRegistry returns a registry.Registry with every built-in name
// pre-registered. printFn is the sink for Print leaves; it may be nil, in
// which case Print nodes are a pure no-op that still reports Finished.
func NewRegistry(printFn node.PrintFunc) *registry.Registry {
	r := registry.New()
	registerTreeNodes(r, printFn)
	registerSteerNode(r)
	registerSteerings(r)
	registerFilters(r)
	registerConditions(r)
	return r
}

func splitParams(params string) []string {
	params = strings.TrimSpace(params)
	if params == "" {
		return nil
	}
	parts := strings.Split(params, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func parseInt64(params string, def int64) (int64, error) {
	params = strings.TrimSpace(params)
	if params == "" {
		return def, nil
	}
	return strconv.ParseInt(params, 10, 64)
}

func parseInt(params string, def int) (int, error) {
	params = strings.TrimSpace(params)
	if params == "" {
		return def, nil
	}
	return strconv.Atoi(params)
}

func parseFloat(params string, def float64) (float64, error) {
	params = strings.TrimSpace(params)
	if params == "" {
		return def, nil
	}
	return strconv.ParseFloat(params, 64)
}

func parseGroupID(params string) (core.GroupID, error) {
	if strings.TrimSpace(params) == "" {
		return -1, nil
	}
	v, err := parseInt64(params, -1)
	if err != nil {
		return 0, fmt.Errorf("invalid group id %q: %w", params, err)
	}
	return core.GroupID(v), nil
}

func parseVec3(params string) (core.Vec3, error) {
	parts := splitParams(params)
	if len(parts) != 3 {
		return core.Vec3{}, fmt.Errorf("expected 3 coordinates, got %q", params)
	}
	vals := make([]float64, 3)
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("invalid coordinate %q: %w", p, err)
		}
		vals[i] = v
	}
	return core.Vec3{X: vals[0], Y: vals[1], Z: vals[2]}, nil
}

func registerTreeNodes(r *registry.Registry, printFn node.PrintFunc) {
	r.RegisterTreeNode("Idle", func(name, params string, cond core.Condition, children []core.Node) (core.Node, error) {
		ms, err := parseInt64(params, 0)
		if err != nil {
			return nil, fmt.Errorf("Idle: %w", err)
		}
		return node.NewIdle(name, params, cond, ms), nil
	})
	r.RegisterTreeNode("Print", func(name, params string, cond core.Condition, children []core.Node) (core.Node, error) {
		return node.NewPrint(name, params, cond, printFn), nil
	})
	r.RegisterTreeNode("Invert", func(name, params string, cond core.Condition, children []core.Node) (core.Node, error) {
		return node.NewInvert(name, params, cond, onlyChild(children)), nil
	})
	r.RegisterTreeNode("Fail", func(name, params string, cond core.Condition, children []core.Node) (core.Node, error) {
		return node.NewFail(name, params, cond, onlyChild(children)), nil
	})
	r.RegisterTreeNode("Succeed", func(name, params string, cond core.Condition, children []core.Node) (core.Node, error) {
		return node.NewSucceed(name, params, cond, onlyChild(children)), nil
	})
	r.RegisterTreeNode("Limit", func(name, params string, cond core.Condition, children []core.Node) (core.Node, error) {
		n, err := parseInt(params, 0)
		if err != nil {
			return nil, fmt.Errorf("Limit: %w", err)
		}
		return node.NewLimit(name, params, cond, n, onlyChild(children)), nil
	})
	r.RegisterTreeNode("Sequence", func(name, params string, cond core.Condition, children []core.Node) (core.Node, error) {
		return node.NewSequence(name, params, cond, children), nil
	})
	r.RegisterTreeNode("PrioritySelector", func(name, params string, cond core.Condition, children []core.Node) (core.Node, error) {
		return node.NewPrioritySelector(name, params, cond, children), nil
	})
	r.RegisterTreeNode("ProbabilitySelector", func(name, params string, cond core.Condition, children []core.Node) (core.Node, error) {
		weights, err := probabilityWeights(params, len(children))
		if err != nil {
			return nil, fmt.Errorf("ProbabilitySelector: %w", err)
		}
		return node.NewProbabilitySelector(name, params, cond, weights, children), nil
	})
	r.RegisterTreeNode("RandomSelector", func(name, params string, cond core.Condition, children []core.Node) (core.Node, error) {
		return node.NewRandomSelector(name, params, cond, children), nil
	})
	r.RegisterTreeNode("Parallel", func(name, params string, cond core.Condition, children []core.Node) (core.Node, error) {
		return node.NewParallel(name, params, cond, children), nil
	})
}

// probabilityWeights defaults every missing weight to 1.0 (§9) and rejects
// a weight count that does not match the child count.
func probabilityWeights(params string, numChildren int) ([]float64, error) {
	parts := splitParams(params)
	if len(parts) == 0 {
		weights := make([]float64, numChildren)
		for i := range weights {
			weights[i] = 1.0
		}
		return weights, nil
	}
	if len(parts) != numChildren {
		return nil, fmt.Errorf("%d weights for %d children", len(parts), numChildren)
	}
	weights := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight %q: %w", p, err)
		}
		weights[i] = v
	}
	return weights, nil
}

func onlyChild(children []core.Node) core.Node {
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

func registerSteerNode(r *registry.Registry) {
	r.RegisterSteerNode("Steer", func(name, params string, cond core.Condition, weighted []steering.Weighted) (core.Node, error) {
		return node.NewSteer(name, params, cond, weighted), nil
	})
}

func registerSteerings(r *registry.Registry) {
	r.RegisterSteering("TargetSeek", func(params string) (core.Steering, error) {
		v, err := parseVec3(params)
		if err != nil {
			return nil, fmt.Errorf("TargetSeek: %w", err)
		}
		return steering.TargetSeek{Target: v}, nil
	})
	r.RegisterSteering("TargetFlee", func(params string) (core.Steering, error) {
		v, err := parseVec3(params)
		if err != nil {
			return nil, fmt.Errorf("TargetFlee: %w", err)
		}
		return steering.TargetFlee{Target: v}, nil
	})
	r.RegisterSteering("GroupSeek", func(params string) (core.Steering, error) {
		g, err := parseGroupID(params)
		if err != nil {
			return nil, fmt.Errorf("GroupSeek: %w", err)
		}
		return steering.GroupSeek{Group: g}, nil
	})
	r.RegisterSteering("GroupFlee", func(params string) (core.Steering, error) {
		g, err := parseGroupID(params)
		if err != nil {
			return nil, fmt.Errorf("GroupFlee: %w", err)
		}
		return steering.GroupFlee{Group: g}, nil
	})
	r.RegisterSteering("SelectionSeek", func(string) (core.Steering, error) {
		return steering.SelectionSeek{}, nil
	})
	r.RegisterSteering("SelectionFlee", func(string) (core.Steering, error) {
		return steering.SelectionFlee{}, nil
	})
	r.RegisterSteering("Wander", func(params string) (core.Steering, error) {
		rot, err := parseFloat(params, 0)
		if err != nil {
			return nil, fmt.Errorf("Wander: %w", err)
		}
		return steering.Wander{Rot: rot}, nil
	})
}

func registerFilters(r *registry.Registry) {
	r.RegisterFilter("SelectEmpty", func(string, []core.Filter) (core.Filter, error) {
		return filter.SelectEmpty{}, nil
	})
	r.RegisterFilter("SelectAll", func(string, []core.Filter) (core.Filter, error) {
		return filter.SelectAll{}, nil
	})
	r.RegisterFilter("SelectZone", func(string, []core.Filter) (core.Filter, error) {
		return filter.SelectZone{}, nil
	})
	r.RegisterFilter("SelectHighestAggro", func(string, []core.Filter) (core.Filter, error) {
		return filter.SelectHighestAggro{}, nil
	})
	r.RegisterFilter("SelectGroupLeader", func(params string, _ []core.Filter) (core.Filter, error) {
		g, err := parseGroupID(params)
		if err != nil {
			return nil, fmt.Errorf("SelectGroupLeader: %w", err)
		}
		return filter.SelectGroupLeader{Group: g}, nil
	})
	r.RegisterFilter("SelectGroupMembers", func(params string, _ []core.Filter) (core.Filter, error) {
		g, err := parseGroupID(params)
		if err != nil {
			return nil, fmt.Errorf("SelectGroupMembers: %w", err)
		}
		return filter.SelectGroupMembers{Group: g}, nil
	})
	r.RegisterFilter("First", func(_ string, children []core.Filter) (core.Filter, error) {
		c, err := oneFilterChild("First", children)
		if err != nil {
			return nil, err
		}
		return filter.First{Child: c}, nil
	})
	r.RegisterFilter("Last", func(_ string, children []core.Filter) (core.Filter, error) {
		c, err := oneFilterChild("Last", children)
		if err != nil {
			return nil, err
		}
		return filter.Last{Child: c}, nil
	})
	r.RegisterFilter("Random", func(params string, children []core.Filter) (core.Filter, error) {
		c, err := oneFilterChild("Random", children)
		if err != nil {
			return nil, err
		}
		n, err := parseInt(params, 1)
		if err != nil {
			return nil, fmt.Errorf("Random: %w", err)
		}
		return filter.Random{N: n, Child: c}, nil
	})
	r.RegisterFilter("Union", func(_ string, children []core.Filter) (core.Filter, error) {
		return filter.Union{Children: children}, nil
	})
	r.RegisterFilter("Intersection", func(_ string, children []core.Filter) (core.Filter, error) {
		return filter.Intersection{Children: children}, nil
	})
	r.RegisterFilter("Difference", func(_ string, children []core.Filter) (core.Filter, error) {
		return filter.Difference{Children: children}, nil
	})
	r.RegisterFilter("Complement", func(_ string, children []core.Filter) (core.Filter, error) {
		c, err := oneFilterChild("Complement", children)
		if err != nil {
			return nil, err
		}
		return filter.Complement{Child: c}, nil
	})
}

func oneFilterChild(name string, children []core.Filter) (core.Filter, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("%s requires exactly one child filter, got %d", name, len(children))
	}
	return children[0], nil
}

func registerConditions(r *registry.Registry) {
	r.RegisterCondition("And", func(_ string, children []core.Condition) (core.Condition, error) {
		return condition.And{Children: children}, nil
	})
	r.RegisterCondition("Or", func(_ string, children []core.Condition) (core.Condition, error) {
		return condition.Or{Children: children}, nil
	})
	r.RegisterCondition("Not", func(_ string, children []core.Condition) (core.Condition, error) {
		if len(children) != 1 {
			return nil, fmt.Errorf("Not requires exactly one child condition, got %d", len(children))
		}
		return condition.Not{Child: children[0]}, nil
	})
	r.RegisterCondition("True", func(string, []core.Condition) (core.Condition, error) {
		return condition.True{}, nil
	})
	r.RegisterCondition("False", func(string, []core.Condition) (core.Condition, error) {
		return condition.False{}, nil
	})
	r.RegisterCondition("HasEnemies", func(params string, _ []core.Condition) (core.Condition, error) {
		n, err := parseInt(params, -1)
		if err != nil {
			return nil, fmt.Errorf("HasEnemies: %w", err)
		}
		return condition.HasEnemies{Count: n}, nil
	})
	r.RegisterCondition("IsInGroup", func(params string, _ []core.Condition) (core.Condition, error) {
		g, err := parseGroupID(params)
		if err != nil {
			return nil, fmt.Errorf("IsInGroup: %w", err)
		}
		return condition.IsInGroup{Group: g}, nil
	})
	r.RegisterCondition("IsGroupLeader", func(params string, _ []core.Condition) (core.Condition, error) {
		g, err := parseGroupID(params)
		if err != nil {
			return nil, fmt.Errorf("IsGroupLeader: %w", err)
		}
		return condition.IsGroupLeader{Group: g}, nil
	})
	r.RegisterCondition("IsCloseToGroup", func(params string, _ []core.Condition) (core.Condition, error) {
		parts := splitParams(params)
		if len(parts) != 2 {
			return nil, fmt.Errorf("IsCloseToGroup: expected group,distance, got %q", params)
		}
		g, err := parseGroupID(parts[0])
		if err != nil {
			return nil, fmt.Errorf("IsCloseToGroup: %w", err)
		}
		dist, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("IsCloseToGroup: invalid distance %q: %w", parts[1], err)
		}
		return condition.IsCloseToGroup{Group: g, Distance: dist}, nil
	})
}
