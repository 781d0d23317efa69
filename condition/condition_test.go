// Copyright (C) 2026, AIZone Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package condition

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aizone/behaviortree/core"
)

type fakeCharacter struct{ pos core.Vec3 }

func (c *fakeCharacter) ID() core.CharacterID            { return 0 }
func (c *fakeCharacter) Position() core.Vec3             { return c.pos }
func (c *fakeCharacter) SetPosition(v core.Vec3)         { c.pos = v }
func (c *fakeCharacter) Orientation() float64             { return 0 }
func (c *fakeCharacter) SetOrientation(float64)           {}
func (c *fakeCharacter) Speed() float64                   { return 0 }
func (c *fakeCharacter) SetSpeed(float64)                 {}
func (c *fakeCharacter) Attribute(string) (string, bool) { return "", false }
func (c *fakeCharacter) SetAttribute(string, string)     {}

type fakeGroups struct {
	leader   core.AI
	hasLead  bool
	inGroup  bool
	inAny    bool
	pos      core.Vec3
	posOK    bool
}

func (g *fakeGroups) IsInGroup(core.GroupID, core.AI) bool { return g.inGroup }
func (g *fakeGroups) IsInAnyGroup(core.AI) bool            { return g.inAny }
func (g *fakeGroups) IsLeader(core.GroupID, core.AI) bool  { return g.hasLead }
func (g *fakeGroups) Leader(core.GroupID) (core.AI, bool)  { return g.leader, g.hasLead }
func (g *fakeGroups) Members(core.GroupID) []core.AI       { return nil }
func (g *fakeGroups) Position(core.GroupID) (core.Vec3, bool) { return g.pos, g.posOK }

type fakeZone struct{ groups *fakeGroups }

func (z *fakeZone) AllCharacterIDs() []core.CharacterID     { return nil }
func (z *fakeZone) Lookup(core.CharacterID) (core.AI, bool) { return nil, false }
func (z *fakeZone) Groups() core.GroupView                  { return z.groups }

type fakeAI struct {
	char     *fakeCharacter
	zone     core.ZoneView
	filtered []core.CharacterID
	highest  core.CharacterID
	hasHigh  bool
	aggroN   int
}

func (a *fakeAI) CharacterID() core.CharacterID          { return 0 }
func (a *fakeAI) Character() core.Character              { return a.char }
func (a *fakeAI) Zone() core.ZoneView                     { return a.zone }
func (a *fakeAI) FilteredEntities() []core.CharacterID    { return a.filtered }
func (a *fakeAI) SetFilteredEntities(ids []core.CharacterID) { a.filtered = ids }
func (a *fakeAI) AggroCount() int                         { return a.aggroN }
func (a *fakeAI) HighestAggro() (core.CharacterID, bool)  { return a.highest, a.hasHigh }
func (a *fakeAI) State(int64) *core.NodeState              { return core.NewNodeState() }
func (a *fakeAI) TimeMillis() int64                        { return 0 }
func (a *fakeAI) Paused() bool                             { return false }
func (a *fakeAI) Debug() bool                              { return false }
func (a *fakeAI) RNG() core.RNG                            { return nil }

func TestAndOrNot(t *testing.T) {
	ai := &fakeAI{char: &fakeCharacter{}}
	require.True(t, And{Children: []core.Condition{True{}, True{}}}.Evaluate(ai))
	require.False(t, And{Children: []core.Condition{True{}, False{}}}.Evaluate(ai))
	require.True(t, Or{Children: []core.Condition{False{}, True{}}}.Evaluate(ai))
	require.False(t, Or{}.Evaluate(ai))
	require.True(t, And{}.Evaluate(ai))
	require.True(t, Not{Child: False{}}.Evaluate(ai))
}

func TestHasEnemiesWithoutParameter(t *testing.T) {
	ai := &fakeAI{hasHigh: true}
	require.True(t, HasEnemies{Count: -1}.Evaluate(ai))
	ai.hasHigh = false
	require.False(t, HasEnemies{Count: -1}.Evaluate(ai))
}

func TestHasEnemiesWithCount(t *testing.T) {
	ai := &fakeAI{aggroN: 3}
	require.True(t, HasEnemies{Count: 2}.Evaluate(ai))
	require.False(t, HasEnemies{Count: 4}.Evaluate(ai))
}

func TestIsInGroupAnyVsSpecific(t *testing.T) {
	ai := &fakeAI{zone: &fakeZone{groups: &fakeGroups{inAny: true, inGroup: false}}}
	require.True(t, IsInGroup{Group: -1}.Evaluate(ai))
	require.False(t, IsInGroup{Group: 1}.Evaluate(ai))
}

func TestIsGroupLeaderRequiresGroup(t *testing.T) {
	ai := &fakeAI{zone: &fakeZone{groups: &fakeGroups{hasLead: true}}}
	require.False(t, IsGroupLeader{Group: -1}.Evaluate(ai))
	require.True(t, IsGroupLeader{Group: 1}.Evaluate(ai))
}

func TestIsCloseToGroupDistance(t *testing.T) {
	ai := &fakeAI{char: &fakeCharacter{pos: core.Vec3{}}, zone: &fakeZone{groups: &fakeGroups{pos: core.Vec3{X: 3}, posOK: true}}}
	require.True(t, IsCloseToGroup{Group: 1, Distance: 5}.Evaluate(ai))
	require.False(t, IsCloseToGroup{Group: 1, Distance: 2}.Evaluate(ai))
}

func TestIsCloseToGroupUnresolvedNeverMatches(t *testing.T) {
	ai := &fakeAI{char: &fakeCharacter{}, zone: &fakeZone{groups: &fakeGroups{posOK: false}}}
	require.False(t, IsCloseToGroup{Group: 1, Distance: 5}.Evaluate(ai))
}

type constFilter struct{ ids []core.CharacterID }

func (f constFilter) Apply(ai core.AI) { ai.SetFilteredEntities(f.ids) }

func TestFilterConditionBridgesSelection(t *testing.T) {
	ai := &fakeAI{}
	require.True(t, Filter{F: constFilter{ids: []core.CharacterID{1}}}.Evaluate(ai))
	require.False(t, Filter{F: constFilter{ids: nil}}.Evaluate(ai))
}
