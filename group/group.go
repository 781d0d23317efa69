// Copyright (C) 2026, AIZone Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package group implements the zone-co-resident group manager (§4.2):
// named, ordered AI membership with a head-of-list leader and a
// once-per-tick mean-position cache.
package group

import (
	"sync"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/aizone/behaviortree/core"
)

// group is one named, ordered membership list plus its cached mean
// position. The leader is always members[0].
type group struct {
	members []core.AI

	positionValid bool
	position      core.Vec3
}

func (g *group) indexOf(id core.CharacterID) int {
	for i, m := range g.members {
		if m.CharacterID() == id {
			return i
		}
	}
	return -1
}

// Manager owns every group in a zone. Writes happen only from the zone's
// update thread during the schedule-drain phase (or from serialised host
// commands); reads from worker goroutines are serialised by mu.
type Manager struct {
	mu     sync.RWMutex
	groups map[core.GroupID]*group
}

// New returns an empty group manager.
func New() *Manager {
	return &Manager{groups: make(map[core.GroupID]*group)}
}

var _ core.GroupView = (*Manager)(nil)

// Add inserts ai into group g, preserving insertion order. It returns false
// if ai is already a member: adding a member never preempts the existing
// leader.
func (m *Manager) Add(g core.GroupID, ai core.AI) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	grp, ok := m.groups[g]
	if !ok {
		grp = &group{}
		m.groups[g] = grp
	}
	if grp.indexOf(ai.CharacterID()) >= 0 {
		return false
	}
	grp.members = append(grp.members, ai)
	grp.positionValid = false
	return true
}

// Remove drops ai from group g. If ai was the leader, the new
// head-of-list member is promoted atomically with the removal.
func (m *Manager) Remove(g core.GroupID, ai core.AI) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	grp, ok := m.groups[g]
	if !ok {
		return false
	}
	i := grp.indexOf(ai.CharacterID())
	if i < 0 {
		return false
	}
	grp.members = append(grp.members[:i], grp.members[i+1:]...)
	grp.positionValid = false
	if len(grp.members) == 0 {
		delete(m.groups, g)
	}
	return true
}

// RemoveFromAllGroups drops ai from every group it belongs to, used when an
// AI is removed or destroyed by the zone scheduler.
func (m *Manager) RemoveFromAllGroups(ai core.AI) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for g, grp := range m.groups {
		if i := grp.indexOf(ai.CharacterID()); i >= 0 {
			grp.members = append(grp.members[:i], grp.members[i+1:]...)
			grp.positionValid = false
			if len(grp.members) == 0 {
				delete(m.groups, g)
			}
		}
	}
}

// IsLeader reports whether ai is the head-of-list member of group g.
func (m *Manager) IsLeader(g core.GroupID, ai core.AI) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	grp, ok := m.groups[g]
	if !ok || len(grp.members) == 0 {
		return false
	}
	return grp.members[0].CharacterID() == ai.CharacterID()
}

// IsInGroup reports whether ai belongs to group g.
func (m *Manager) IsInGroup(g core.GroupID, ai core.AI) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	grp, ok := m.groups[g]
	if !ok {
		return false
	}
	return grp.indexOf(ai.CharacterID()) >= 0
}

// IsInAnyGroup reports whether ai belongs to any group at all.
func (m *Manager) IsInAnyGroup(ai core.AI) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, grp := range m.groups {
		if grp.indexOf(ai.CharacterID()) >= 0 {
			return true
		}
	}
	return false
}

// Leader returns the head-of-list member of group g.
func (m *Manager) Leader(g core.GroupID) (core.AI, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	grp, ok := m.groups[g]
	if !ok || len(grp.members) == 0 {
		return nil, false
	}
	return grp.members[0], true
}

// Members returns a copy of group g's membership, in insertion order.
func (m *Manager) Members(g core.GroupID) []core.AI {
	m.mu.RLock()
	defer m.mu.RUnlock()

	grp, ok := m.groups[g]
	if !ok {
		return nil
	}
	out := make([]core.AI, len(grp.members))
	copy(out, grp.members)
	return out
}

// Position returns group g's cached mean position. ok is false for an
// empty or unknown group (the "infinite" sentinel of spec §4.2).
func (m *Manager) Position(g core.GroupID) (core.Vec3, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	grp, ok := m.groups[g]
	if !ok || !grp.positionValid {
		return core.Vec3{}, false
	}
	return grp.position, true
}

// Update recomputes every group's mean position from its members' current
// character positions. Called once per tick, after all workers have joined,
// per the scheduler's ordering contract (§5): steering reads during the
// tick see the previous tick's mean.
func (m *Manager) Update(dtMillis int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, grp := range m.groups {
		if len(grp.members) == 0 {
			grp.positionValid = false
			continue
		}
		var sum core.Vec3
		for _, mem := range grp.members {
			sum = r3.Add(sum, mem.Character().Position())
		}
		grp.position = r3.Scale(1/float64(len(grp.members)), sum)
		grp.positionValid = true
	}
}
