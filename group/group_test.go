// Copyright (C) 2026, AIZone Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package group

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aizone/behaviortree/core"
)

type fakeCharacter struct {
	id  core.CharacterID
	pos core.Vec3
}

func (c *fakeCharacter) ID() core.CharacterID        { return c.id }
func (c *fakeCharacter) Position() core.Vec3         { return c.pos }
func (c *fakeCharacter) SetPosition(v core.Vec3)     { c.pos = v }
func (c *fakeCharacter) Orientation() float64         { return 0 }
func (c *fakeCharacter) SetOrientation(float64)       {}
func (c *fakeCharacter) Speed() float64               { return 0 }
func (c *fakeCharacter) SetSpeed(float64)             {}
func (c *fakeCharacter) Attribute(string) (string, bool) { return "", false }
func (c *fakeCharacter) SetAttribute(string, string)  {}

type fakeAI struct {
	id   core.CharacterID
	char *fakeCharacter
}

func (a *fakeAI) CharacterID() core.CharacterID          { return a.id }
func (a *fakeAI) Character() core.Character              { return a.char }
func (a *fakeAI) Zone() core.ZoneView                     { return nil }
func (a *fakeAI) FilteredEntities() []core.CharacterID    { return nil }
func (a *fakeAI) SetFilteredEntities([]core.CharacterID)  {}
func (a *fakeAI) AggroCount() int                         { return 0 }
func (a *fakeAI) HighestAggro() (core.CharacterID, bool)  { return 0, false }
func (a *fakeAI) State(int64) *core.NodeState              { return core.NewNodeState() }
func (a *fakeAI) TimeMillis() int64                        { return 0 }
func (a *fakeAI) Paused() bool                              { return false }
func (a *fakeAI) Debug() bool                               { return false }
func (a *fakeAI) RNG() core.RNG                             { return nil }

func newFakeAI(id int32, pos core.Vec3) *fakeAI {
	return &fakeAI{id: core.CharacterID(id), char: &fakeCharacter{id: core.CharacterID(id), pos: pos}}
}

func TestLeaderStableAcrossInserts(t *testing.T) {
	m := New()
	m1 := newFakeAI(1, core.Vec3{})
	m2 := newFakeAI(2, core.Vec3{})
	m3 := newFakeAI(3, core.Vec3{})

	require.True(t, m.Add(10, m1))
	require.True(t, m.Add(10, m2))
	require.True(t, m.Add(10, m3))

	leader, ok := m.Leader(10)
	require.True(t, ok)
	require.Equal(t, m1.CharacterID(), leader.CharacterID())
}

func TestLeaderPromotionOnRemoval(t *testing.T) {
	m := New()
	m1 := newFakeAI(1, core.Vec3{})
	m2 := newFakeAI(2, core.Vec3{})
	m.Add(10, m1)
	m.Add(10, m2)

	require.True(t, m.Remove(10, m1))
	leader, ok := m.Leader(10)
	require.True(t, ok)
	require.Equal(t, m2.CharacterID(), leader.CharacterID())
}

func TestDuplicateAddRejected(t *testing.T) {
	m := New()
	m1 := newFakeAI(1, core.Vec3{})
	require.True(t, m.Add(10, m1))
	require.False(t, m.Add(10, m1))
}

func TestMeanPositionAndDispersal(t *testing.T) {
	m := New()
	m1 := newFakeAI(1, core.Vec3{X: 0})
	m2 := newFakeAI(2, core.Vec3{X: 10})
	m.Add(1, m1)
	m.Add(1, m2)

	m.Update(0)
	pos, ok := m.Position(1)
	require.True(t, ok)
	require.InDelta(t, 5, pos.X, 1e-9)

	m.Remove(1, m1)
	leader, ok := m.Leader(1)
	require.True(t, ok)
	require.Equal(t, m2.CharacterID(), leader.CharacterID())

	m.Update(0)
	pos, ok = m.Position(1)
	require.True(t, ok)
	require.InDelta(t, 10, pos.X, 1e-9)
}

func TestEmptyGroupPositionIsSentinel(t *testing.T) {
	m := New()
	_, ok := m.Position(99)
	require.False(t, ok)
}
