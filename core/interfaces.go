// Copyright (C) 2026, AIZone Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package core

import "time"

// AI is the per-entity runtime handle that filters, conditions, steerings
// and nodes operate against. The concrete implementation lives in package
// zone; everything above it only needs this contract.
type AI interface {
	CharacterID() CharacterID
	Character() Character

	// Zone is the owning zone's read-only view, or nil if unattached.
	Zone() ZoneView

	// FilteredEntities returns the current ordered candidate list. Callers
	// must not mutate the returned slice.
	FilteredEntities() []CharacterID
	// SetFilteredEntities replaces the candidate list. Filters are the only
	// callers expected to use this.
	SetFilteredEntities([]CharacterID)

	// AggroCount is the number of live aggro entries.
	AggroCount() int
	// HighestAggro returns the target with maximal aggro, if any.
	HighestAggro() (CharacterID, bool)

	// State returns the mutable per-node state for nodeID, creating it on
	// first access.
	State(nodeID int64) *NodeState

	TimeMillis() int64
	Paused() bool
	Debug() bool

	// RNG is this AI's (or its zone's) random source, injected so that
	// Wander and the random selectors/filters are reproducible in tests.
	RNG() RNG
}

// ZoneView is the read-only surface of a Zone that filters, conditions and
// steerings may consult while an AI's tree executes.
type ZoneView interface {
	// AllCharacterIDs returns every character id currently tracked by the
	// zone. Used by SelectZone and Complement.
	AllCharacterIDs() []CharacterID
	// Lookup returns the AI for id, if the zone currently owns it.
	Lookup(id CharacterID) (AI, bool)
	// Groups is the zone's co-resident group manager view.
	Groups() GroupView
}

// GroupView is the read-only surface of a GroupManager.
type GroupView interface {
	IsInGroup(g GroupID, ai AI) bool
	IsInAnyGroup(ai AI) bool
	IsLeader(g GroupID, ai AI) bool
	Leader(g GroupID) (AI, bool)
	Members(g GroupID) []AI
	// Position returns the group's cached mean position. ok is false for an
	// empty or unknown group (the "infinite" sentinel of spec §4.2).
	Position(g GroupID) (Vec3, bool)
}

// Filter mutates an AI's FilteredEntities list.
type Filter interface {
	Apply(ai AI)
}

// Condition is a side-effect-free boolean predicate over an AI.
type Condition interface {
	Evaluate(ai AI) bool
}

// Steering produces a MoveVector for an AI over a tick of length dt.
type Steering interface {
	Execute(ai AI, dt time.Duration) MoveVector
}

// Node is one element of a behaviour tree: a leaf, decorator, composite, or
// host extension. Execute runs its per-kind logic (including the activating
// condition gate); Reset clears this node's (and its children's) state for
// one AI.
type Node interface {
	ID() int64
	Name() string
	Params() string
	Kind() string
	Children() []Node

	Execute(ai AI, dt time.Duration) Status
	Reset(ai AI)
}
