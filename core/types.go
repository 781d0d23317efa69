// Copyright (C) 2026, AIZone Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package core holds the types and interfaces shared by every behaviour-tree
// subsystem (aggro, group, steering, filter, condition, node, zone) so that
// those packages can depend on one another's contracts without importing
// one another's implementations.
package core

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r3"
)

// CharacterID identifies a character for the lifetime of the process.
// NoCharacter means "none".
type CharacterID int32

// NoCharacter is the reserved id meaning "no character".
const NoCharacter CharacterID = -1

// GroupID identifies a group.
type GroupID int32

// Vec3 is the runtime's 3D vector type, reused directly from gonum's spatial
// package rather than hand-rolled, since it already implements the exact
// Add/Sub/Scale/Unit/Norm algebra the steering blender needs.
type Vec3 = r3.Vec

// Character is the host-provided avatar a character's AI drives. Position,
// orientation and speed are read and written by steering; attributes are
// surfaced only for debugging.
type Character interface {
	ID() CharacterID

	Position() Vec3
	SetPosition(Vec3)

	// Orientation is in radians, 0 == +x.
	Orientation() float64
	SetOrientation(float64)

	Speed() float64
	SetSpeed(float64)

	Attribute(key string) (string, bool)
	SetAttribute(key, value string)
}

// Status is the closed set of outcomes a tree node execution can produce.
type Status int

const (
	// StatusUnknown means the node has never executed.
	StatusUnknown Status = iota
	// StatusCannotExecute means the node's activating condition evaluated false.
	StatusCannotExecute
	// StatusRunning means the node is still in progress.
	StatusRunning
	// StatusFinished means the node completed successfully.
	StatusFinished
	// StatusFailed means the node completed unsuccessfully.
	StatusFailed
	// StatusException means a structural programming error was hit (e.g. a
	// decorator with the wrong number of children). Terminal: parents treat
	// it as unrecoverable.
	StatusException
)

func (s Status) String() string {
	switch s {
	case StatusUnknown:
		return "Unknown"
	case StatusCannotExecute:
		return "CannotExecute"
	case StatusRunning:
		return "Running"
	case StatusFinished:
		return "Finished"
	case StatusFailed:
		return "Failed"
	case StatusException:
		return "Exception"
	default:
		return "Invalid"
	}
}

// MoveState is the tri-state validity signal a steering result carries.
type MoveState int

const (
	// MoveInvalid means the steering could not produce a direction (e.g. an
	// empty selection or a missing group).
	MoveInvalid MoveState = iota
	// MoveValid means velocity/rotation are meaningful.
	MoveValid
	// MoveTargetReached means the steering's target has been reached.
	MoveTargetReached
)

// MoveVector is the output of a steering evaluation and of the weighted
// blender: a velocity, a rotation delta, and a validity tri-state.
type MoveVector struct {
	Velocity Vec3
	Rotation float64
	State    MoveState
}

// NothingSelected is the selector-index sentinel used by Sequence and the
// selector composites on reset and on clean completion.
const NothingSelected = -1

// NodeState is the per-(AI, node) mutable state kept in the AI's state map.
// Its lifetime follows the AI, not the tree, so a tree can be shared by many
// AIs without any node holding per-entity data itself.
type NodeState struct {
	LastStatus    Status
	LastRunMillis int64
	SelectorIndex int
	LimitCount    int
	TimedStart    int64
}

// NewNodeState returns a freshly reset NodeState.
func NewNodeState() *NodeState {
	return &NodeState{SelectorIndex: NothingSelected}
}

// RNG is the minimal random source the runtime needs: a uniform float in
// [0,1) and a uniform int in [0,n). Satisfied by *rand.Rand (math/rand/v2).
type RNG interface {
	Float64() float64
	IntN(n int) int
}

var _ RNG = (*rand.Rand)(nil)
