// Copyright (C) 2026, AIZone Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package filter implements the entity-selection algebra of §4.4: leaves
// that populate an AI's FilteredEntities from zone/group/aggro state, and
// combinators that run child filters against a clean list and then either
// replace the incoming selection with the result or append to it, per
// combinator.
package filter

import (
	"github.com/aizone/behaviortree/core"
	"github.com/aizone/behaviortree/set"
)

// runOnEmpty runs f against the AI's current selection and returns a
// detached copy of whatever it produced. Combinators call it inside
// withBlank, which blanks the selection first and restores the prior one
// afterwards; together they are the "save incoming, run children on fresh
// list" pattern every combinator below is built on.
func runOnEmpty(ai core.AI, f core.Filter) []core.CharacterID {
	f.Apply(ai)
	out := append([]core.CharacterID(nil), ai.FilteredEntities()...)
	return out
}

func withBlank(ai core.AI, fn func()) {
	saved := ai.FilteredEntities()
	ai.SetFilteredEntities(nil)
	fn()
	ai.SetFilteredEntities(saved)
}

// toSet builds a membership set from ids, giving the combinators below O(1)
// contains checks instead of a linear rescan per candidate.
func toSet(ids []core.CharacterID) set.Set[core.CharacterID] {
	return set.Of(ids...)
}

// SelectEmpty clears the current selection.
type SelectEmpty struct{}

// Apply implements core.Filter.
func (SelectEmpty) Apply(ai core.AI) { ai.SetFilteredEntities(nil) }

// SelectAll is a no-op: it keeps whatever is already selected.
type SelectAll struct{}

// Apply implements core.Filter.
func (SelectAll) Apply(core.AI) {}

// SelectZone appends every character id the zone currently tracks.
type SelectZone struct{}

// Apply implements core.Filter.
func (SelectZone) Apply(ai core.AI) {
	zone := ai.Zone()
	if zone == nil {
		return
	}
	cur := ai.FilteredEntities()
	out := append(append([]core.CharacterID(nil), cur...), zone.AllCharacterIDs()...)
	ai.SetFilteredEntities(out)
}

// SelectHighestAggro appends the target of the AI's highest aggro entry, if
// any.
type SelectHighestAggro struct{}

// Apply implements core.Filter.
func (SelectHighestAggro) Apply(ai core.AI) {
	target, ok := ai.HighestAggro()
	if !ok {
		return
	}
	ai.SetFilteredEntities(append(append([]core.CharacterID(nil), ai.FilteredEntities()...), target))
}

// SelectGroupLeader appends the leader of Group, if one exists. Group -1
// (the zero value of an unparsed parameter) selects nothing, matching the
// source's "no group configured" sentinel.
type SelectGroupLeader struct{ Group core.GroupID }

// Apply implements core.Filter.
func (s SelectGroupLeader) Apply(ai core.AI) {
	if s.Group == -1 {
		return
	}
	zone := ai.Zone()
	if zone == nil {
		return
	}
	leader, ok := zone.Groups().Leader(s.Group)
	if !ok {
		return
	}
	ai.SetFilteredEntities(append(append([]core.CharacterID(nil), ai.FilteredEntities()...), leader.CharacterID()))
}

// SelectGroupMembers appends every member of Group.
type SelectGroupMembers struct{ Group core.GroupID }

// Apply implements core.Filter.
func (s SelectGroupMembers) Apply(ai core.AI) {
	zone := ai.Zone()
	if zone == nil {
		return
	}
	members := zone.Groups().Members(s.Group)
	out := append([]core.CharacterID(nil), ai.FilteredEntities()...)
	for _, m := range members {
		out = append(out, m.CharacterID())
	}
	ai.SetFilteredEntities(out)
}

// First replaces the selection with only the first entry Child produces.
// Unlike Last and Random, First is not spliced onto whatever was selected
// coming in (§9).
type First struct{ Child core.Filter }

// Apply implements core.Filter.
func (f First) Apply(ai core.AI) {
	var res []core.CharacterID
	withBlank(ai, func() { res = runOnEmpty(ai, f.Child) })
	if len(res) == 0 {
		ai.SetFilteredEntities(nil)
		return
	}
	ai.SetFilteredEntities([]core.CharacterID{res[0]})
}

// Last keeps only the last entry Child produces, appended to the incoming
// selection.
type Last struct{ Child core.Filter }

// Apply implements core.Filter.
func (f Last) Apply(ai core.AI) {
	saved := ai.FilteredEntities()
	var res []core.CharacterID
	withBlank(ai, func() { res = runOnEmpty(ai, f.Child) })
	if len(res) == 0 {
		return
	}
	ai.SetFilteredEntities(append(append([]core.CharacterID(nil), saved...), res[len(res)-1]))
}

// Random keeps N randomly-chosen entries Child produces, appended to the
// incoming selection.
type Random struct {
	N     int
	Child core.Filter
}

// Apply implements core.Filter.
func (f Random) Apply(ai core.AI) {
	saved := ai.FilteredEntities()
	var res []core.CharacterID
	withBlank(ai, func() { res = runOnEmpty(ai, f.Child) })

	rng := ai.RNG()
	if rng != nil {
		for i := len(res) - 1; i > 0; i-- {
			j := rng.IntN(i + 1)
			res[i], res[j] = res[j], res[i]
		}
	}
	n := f.N
	if n > len(res) {
		n = len(res)
	}
	ai.SetFilteredEntities(append(append([]core.CharacterID(nil), saved...), res[:n]...))
}

// Chain runs each child filter in turn against the live selection, with no
// blanking between them. It is the semantics the parser gives
// "Filter(F1,F2,...)": each filter sees what the previous one left behind,
// the way SelectEmpty followed by SelectHighestAggro narrows down to just
// the highest-aggro target.
type Chain struct{ Children []core.Filter }

// Apply implements core.Filter.
func (f Chain) Apply(ai core.AI) {
	for _, c := range f.Children {
		c.Apply(ai)
	}
}

// Union replaces the selection with the de-duplicated concatenation of
// every child's result, preserving first-seen order. Unlike First/Last/
// Random, it starts from empty and discards whatever was selected coming
// in (§4.4).
type Union struct{ Children []core.Filter }

// Apply implements core.Filter.
func (f Union) Apply(ai core.AI) {
	seen := make(set.Set[core.CharacterID])
	var merged []core.CharacterID
	for _, c := range f.Children {
		var res []core.CharacterID
		withBlank(ai, func() { res = runOnEmpty(ai, c) })
		for _, id := range res {
			if !seen.Contains(id) {
				seen.Add(id)
				merged = append(merged, id)
			}
		}
	}
	ai.SetFilteredEntities(merged)
}

// Intersection replaces the selection with only the ids present in every
// child's result, seeded from the first child.
type Intersection struct{ Children []core.Filter }

// Apply implements core.Filter.
func (f Intersection) Apply(ai core.AI) {
	if len(f.Children) == 0 {
		ai.SetFilteredEntities(nil)
		return
	}
	var first []core.CharacterID
	var rest []set.Set[core.CharacterID]
	for i, c := range f.Children {
		var res []core.CharacterID
		withBlank(ai, func() { res = runOnEmpty(ai, c) })
		if i == 0 {
			first = res
			continue
		}
		rest = append(rest, toSet(res))
	}
	seen := make(set.Set[core.CharacterID])
	var out []core.CharacterID
	for _, id := range first {
		inAll := true
		for _, s := range rest {
			if !s.Contains(id) {
				inAll = false
				break
			}
		}
		if inAll && !seen.Contains(id) {
			seen.Add(id)
			out = append(out, id)
		}
	}
	ai.SetFilteredEntities(out)
}

// Difference replaces the selection with the ids the first child produces
// minus every id produced by the remaining children.
type Difference struct{ Children []core.Filter }

// Apply implements core.Filter.
func (f Difference) Apply(ai core.AI) {
	if len(f.Children) == 0 {
		ai.SetFilteredEntities(nil)
		return
	}
	var base []core.CharacterID
	withBlank(ai, func() { base = runOnEmpty(ai, f.Children[0]) })

	exclude := make(set.Set[core.CharacterID])
	for _, c := range f.Children[1:] {
		var res []core.CharacterID
		withBlank(ai, func() { res = runOnEmpty(ai, c) })
		exclude.Add(res...)
	}
	var out []core.CharacterID
	for _, id := range base {
		if !exclude.Contains(id) {
			out = append(out, id)
		}
	}
	ai.SetFilteredEntities(out)
}

// Complement replaces the selection with every zone character id NOT
// produced by Child — i.e. SelectZone inverted against Child's result.
type Complement struct{ Child core.Filter }

// Apply implements core.Filter.
func (f Complement) Apply(ai core.AI) {
	zone := ai.Zone()
	if zone == nil {
		ai.SetFilteredEntities(nil)
		return
	}
	var res []core.CharacterID
	withBlank(ai, func() { res = runOnEmpty(ai, f.Child) })
	excluded := toSet(res)

	var out []core.CharacterID
	for _, id := range zone.AllCharacterIDs() {
		if !excluded.Contains(id) {
			out = append(out, id)
		}
	}
	ai.SetFilteredEntities(out)
}
