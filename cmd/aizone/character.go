// Copyright (C) 2026, AIZone Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"sync"

	"github.com/aizone/behaviortree/core"
)

// entity is one line of an entities YAML file: an id and a starting
// position. The CLI turns each into a character and wraps it in a zone.AI.
type entity struct {
	ID    int32             `yaml:"id"`
	X     float64           `yaml:"x"`
	Y     float64           `yaml:"y"`
	Z     float64           `yaml:"z"`
	Attrs map[string]string `yaml:"attrs"`
}

// character is the concrete core.Character the CLI drives: a position,
// orientation, speed and a small string attribute bag, all guarded by a
// mutex since a zone worker may read Position while the host's own
// goroutines print status.
type character struct {
	id core.CharacterID

	mu   sync.Mutex
	pos  core.Vec3
	ori  float64
	spd  float64
	attr map[string]string
}

func newCharacter(e entity) *character {
	attr := e.Attrs
	if attr == nil {
		attr = make(map[string]string)
	}
	return &character{
		id:   core.CharacterID(e.ID),
		pos:  core.Vec3{X: e.X, Y: e.Y, Z: e.Z},
		attr: attr,
	}
}

var _ core.Character = (*character)(nil)

func (c *character) ID() core.CharacterID { return c.id }

func (c *character) Position() core.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pos
}

func (c *character) SetPosition(v core.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pos = v
}

func (c *character) Orientation() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ori
}

func (c *character) SetOrientation(o float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ori = o
}

func (c *character) Speed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.spd
}

func (c *character) SetSpeed(s float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.spd = s
}

func (c *character) Attribute(k string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.attr[k]
	return v, ok
}

func (c *character) SetAttribute(k, v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attr[k] = v
}
