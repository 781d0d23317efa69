// Copyright (C) 2026, AIZone Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package condition implements the boolean predicate algebra of §4.4/§4.5:
// the And/Or/Not combinators, the constant True/False atoms, the
// aggro/group predicates, and the Filter(F) bridge into package filter.
package condition

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/aizone/behaviortree/core"
)

// And evaluates true only if every child evaluates true. An empty And is
// vacuously true.
type And struct{ Children []core.Condition }

// Evaluate implements core.Condition.
func (c And) Evaluate(ai core.AI) bool {
	for _, ch := range c.Children {
		if !ch.Evaluate(ai) {
			return false
		}
	}
	return true
}

// Or evaluates true if any child evaluates true. An empty Or is vacuously
// false.
type Or struct{ Children []core.Condition }

// Evaluate implements core.Condition.
func (c Or) Evaluate(ai core.AI) bool {
	for _, ch := range c.Children {
		if ch.Evaluate(ai) {
			return true
		}
	}
	return false
}

// Not inverts its single child.
type Not struct{ Child core.Condition }

// Evaluate implements core.Condition.
func (c Not) Evaluate(ai core.AI) bool { return !c.Child.Evaluate(ai) }

// True always evaluates true.
type True struct{}

// Evaluate implements core.Condition.
func (True) Evaluate(core.AI) bool { return true }

// False always evaluates false.
type False struct{}

// Evaluate implements core.Condition.
func (False) Evaluate(core.AI) bool { return false }

// HasEnemies evaluates true if the AI has at least Count aggro entries.
// Count of -1 (the "no parameter" sentinel) asks instead whether the AI has
// any highest-aggro entry at all.
type HasEnemies struct{ Count int }

// Evaluate implements core.Condition.
func (c HasEnemies) Evaluate(ai core.AI) bool {
	if c.Count == -1 {
		_, ok := ai.HighestAggro()
		return ok
	}
	return ai.AggroCount() >= c.Count
}

// IsInGroup evaluates true if the AI belongs to Group, or to any group at
// all when Group is -1.
type IsInGroup struct{ Group core.GroupID }

// Evaluate implements core.Condition.
func (c IsInGroup) Evaluate(ai core.AI) bool {
	zone := ai.Zone()
	if zone == nil {
		return false
	}
	if c.Group == -1 {
		return zone.Groups().IsInAnyGroup(ai)
	}
	return zone.Groups().IsInGroup(c.Group, ai)
}

// IsGroupLeader evaluates true if the AI is the head-of-list member of
// Group. Group -1 (unparsed) never matches.
type IsGroupLeader struct{ Group core.GroupID }

// Evaluate implements core.Condition.
func (c IsGroupLeader) Evaluate(ai core.AI) bool {
	if c.Group == -1 {
		return false
	}
	zone := ai.Zone()
	if zone == nil {
		return false
	}
	return zone.Groups().IsLeader(c.Group, ai)
}

// IsCloseToGroup evaluates true if the AI's distance to Group's mean
// position is at most Distance. An unresolved group position (empty or
// unknown group) never matches.
type IsCloseToGroup struct {
	Group    core.GroupID
	Distance float64
}

// Evaluate implements core.Condition.
func (c IsCloseToGroup) Evaluate(ai core.AI) bool {
	if c.Group == -1 || c.Distance < 0 {
		return false
	}
	zone := ai.Zone()
	if zone == nil {
		return false
	}
	pos, ok := zone.Groups().Position(c.Group)
	if !ok {
		return false
	}
	return r3.Norm(r3.Sub(pos, ai.Character().Position())) <= c.Distance
}

// Filter evaluates true if running F leaves the AI with at least one
// selected entity, bridging the filter algebra into a condition.
type Filter struct{ F core.Filter }

// Evaluate implements core.Condition.
func (c Filter) Evaluate(ai core.AI) bool {
	c.F.Apply(ai)
	return len(ai.FilteredEntities()) > 0
}
