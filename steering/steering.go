// Copyright (C) 2026, AIZone Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package steering implements the movement primitives of §4.3: seek, flee,
// wander, group- and selection-relative variants, and the weighted blender
// that composes them into a single MoveVector.
package steering

import (
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/aizone/behaviortree/core"
)

func facing(dir core.Vec3) float64 {
	return math.Atan2(dir.Y, dir.X)
}

func seekTowards(ai core.AI, target core.Vec3, flee bool) core.MoveVector {
	pos := ai.Character().Position()
	delta := r3.Sub(target, pos)
	if flee {
		delta = r3.Scale(-1, delta)
	}
	norm := r3.Norm(delta)
	if norm == 0 {
		return core.MoveVector{State: core.MoveTargetReached}
	}
	dir := r3.Scale(1/norm, delta)
	return core.MoveVector{
		Velocity: r3.Scale(ai.Character().Speed(), dir),
		Rotation: facing(dir),
		State:    core.MoveValid,
	}
}

// TargetSeek steers directly toward a fixed point.
type TargetSeek struct{ Target core.Vec3 }

// Execute implements core.Steering.
func (s TargetSeek) Execute(ai core.AI, _ time.Duration) core.MoveVector {
	return seekTowards(ai, s.Target, false)
}

// TargetFlee steers directly away from a fixed point.
type TargetFlee struct{ Target core.Vec3 }

// Execute implements core.Steering.
func (s TargetFlee) Execute(ai core.AI, _ time.Duration) core.MoveVector {
	return seekTowards(ai, s.Target, true)
}

// GroupSeek steers toward a group's cached mean position.
type GroupSeek struct{ Group core.GroupID }

// Execute implements core.Steering.
func (s GroupSeek) Execute(ai core.AI, _ time.Duration) core.MoveVector {
	zone := ai.Zone()
	if zone == nil {
		return core.MoveVector{State: core.MoveInvalid}
	}
	pos, ok := zone.Groups().Position(s.Group)
	if !ok {
		return core.MoveVector{State: core.MoveInvalid}
	}
	return seekTowards(ai, pos, false)
}

// GroupFlee steers away from a group's cached mean position.
type GroupFlee struct{ Group core.GroupID }

// Execute implements core.Steering.
func (s GroupFlee) Execute(ai core.AI, _ time.Duration) core.MoveVector {
	zone := ai.Zone()
	if zone == nil {
		return core.MoveVector{State: core.MoveInvalid}
	}
	pos, ok := zone.Groups().Position(s.Group)
	if !ok {
		return core.MoveVector{State: core.MoveInvalid}
	}
	return seekTowards(ai, pos, true)
}

// SelectionSeek steers toward the first entry of the AI's FilteredEntities.
type SelectionSeek struct{}

// Execute implements core.Steering.
func (s SelectionSeek) Execute(ai core.AI, _ time.Duration) core.MoveVector {
	return selectionSteer(ai, false)
}

// SelectionFlee steers away from the first entry of the AI's FilteredEntities.
type SelectionFlee struct{}

// Execute implements core.Steering.
func (s SelectionFlee) Execute(ai core.AI, _ time.Duration) core.MoveVector {
	return selectionSteer(ai, true)
}

func selectionSteer(ai core.AI, flee bool) core.MoveVector {
	filtered := ai.FilteredEntities()
	if len(filtered) == 0 {
		return core.MoveVector{State: core.MoveInvalid}
	}
	zone := ai.Zone()
	if zone == nil {
		return core.MoveVector{State: core.MoveInvalid}
	}
	target, ok := zone.Lookup(filtered[0])
	if !ok {
		return core.MoveVector{State: core.MoveInvalid}
	}
	return seekTowards(ai, target.Character().Position(), flee)
}

// Wander moves forward at the character's current orientation and speed,
// perturbing the returned rotation by a uniform random delta in [-Rot,+Rot].
type Wander struct{ Rot float64 }

// Execute implements core.Steering.
func (s Wander) Execute(ai core.AI, _ time.Duration) core.MoveVector {
	o := ai.Character().Orientation()
	forward := core.Vec3{X: math.Cos(o), Y: math.Sin(o)}
	v := r3.Scale(ai.Character().Speed(), forward)

	delta := 0.0
	if s.Rot != 0 {
		rng := ai.RNG()
		if rng != nil {
			delta = (rng.Float64()*2 - 1) * s.Rot
		}
	}
	return core.MoveVector{Velocity: v, Rotation: delta, State: core.MoveValid}
}

// Weighted pairs a steering with its blend weight.
type Weighted struct {
	Steering core.Steering
	Weight   float64
}

// Blend runs every weighted steering and composes the results per §4.3: sum
// velocity and rotation over every Valid result, weighted, then divide by
// the total weight of those results; TargetReached results add nothing. If none are
// valid, Invalid propagates unless at least one emitted TargetReached, in
// which case that propagates instead.
func Blend(ai core.AI, dt time.Duration, ws []Weighted) core.MoveVector {
	var (
		velocity     core.Vec3
		rotation     float64
		totalWeight  float64
		reachedSeen  bool
		anyValidSeen bool
	)

	for _, w := range ws {
		res := w.Steering.Execute(ai, dt)
		switch res.State {
		case core.MoveValid:
			anyValidSeen = true
			velocity = r3.Add(velocity, r3.Scale(w.Weight, res.Velocity))
			rotation += w.Weight * res.Rotation
			totalWeight += w.Weight
		case core.MoveTargetReached:
			reachedSeen = true
		case core.MoveInvalid:
		}
	}

	if !anyValidSeen {
		if reachedSeen {
			return core.MoveVector{State: core.MoveTargetReached}
		}
		return core.MoveVector{State: core.MoveInvalid}
	}
	if totalWeight == 0 {
		return core.MoveVector{State: core.MoveInvalid}
	}

	velocity = r3.Scale(1/totalWeight, velocity)
	rotation = math.Mod(rotation/totalWeight, 2*math.Pi)
	if rotation < 0 {
		rotation += 2 * math.Pi
	}
	return core.MoveVector{Velocity: velocity, Rotation: rotation, State: core.MoveValid}
}
