// Copyright (C) 2026, AIZone Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package aggro implements the per-AI aggro ledger (§4.1 of the runtime
// spec): a set of entries recording accumulated hostility toward other
// characters, with per-entry time decay and highest-aggro retrieval.
package aggro

import (
	"sort"

	"github.com/aizone/behaviortree/core"
)

// clampEpsilon is the threshold below which a Value-mode entry's aggro is
// clamped to zero, matching the 1e-6 tolerance spec'd for decay.
const clampEpsilon = 1e-6

// Mode selects how an entry's aggro decays per tick.
type Mode int

const (
	// Disabled entries never decay.
	Disabled Mode = iota
	// Ratio decays aggro by a fraction of itself per second.
	Ratio
	// Value decays aggro by a fixed amount per second.
	Value
)

// Entry records one AI's hostility toward one target.
type Entry struct {
	Target       core.CharacterID
	Aggro        float32
	MinAggro     float32
	ReducePerSec float32
	Mode         Mode
}

// SetMode switches an entry's decay mode after construction, mirroring the
// original AggroMgr's ability to flip an entry between ratio- and
// value-based decay at runtime (e.g. when a target becomes immune).
func (e *Entry) SetMode(m Mode, reducePerSec float32) {
	e.Mode = m
	e.ReducePerSec = reducePerSec
}

// Manager is the per-AI aggro ledger. It is not safe for concurrent use by
// more than one goroutine; the zone scheduler guarantees a given AI (and so
// its Manager) is only ever touched by the worker processing it.
//
// A Manager carries its own default decay settings, seeded into every new
// Entry that Add creates, mirroring the original AggroMgr's
// _reduceType/_reduceRatioSecond/_reduceValueSecond/_minAggro fields and its
// setReduceByRatio/setReduceByValue/resetReduceValue setters.
type Manager struct {
	entries map[core.CharacterID]*Entry
	sorted  []*Entry
	dirty   bool

	defaultMode         Mode
	defaultReducePerSec float32
	defaultMinAggro     float32
}

// New returns an empty aggro ledger with decay disabled by default, matching
// the original AggroMgr's DISABLED default reduce type.
func New() *Manager {
	return &Manager{entries: make(map[core.CharacterID]*Entry)}
}

// SetReduceByRatio configures every aggro entry Add creates from this point
// on to decay by a fraction of itself per second, floored at minAggro.
func (m *Manager) SetReduceByRatio(reducePerSec, minAggro float32) {
	m.defaultMode = Ratio
	m.defaultReducePerSec = reducePerSec
	m.defaultMinAggro = minAggro
}

// SetReduceByValue configures every aggro entry Add creates from this point
// on to decay by a fixed amount per second.
func (m *Manager) SetReduceByValue(reducePerSec float32) {
	m.defaultMode = Value
	m.defaultReducePerSec = reducePerSec
	m.defaultMinAggro = 0
}

// ResetReduceValue disables decay for every aggro entry Add creates from
// this point on.
func (m *Manager) ResetReduceValue() {
	m.defaultMode = Disabled
	m.defaultReducePerSec = 0
	m.defaultMinAggro = 0
}

// Add increments the aggro entry for target by amount, creating it (seeded
// from the manager's configured default decay settings) if absent, and
// returns the entry.
func (m *Manager) Add(target core.CharacterID, amount float32) *Entry {
	e, ok := m.entries[target]
	if !ok {
		e = &Entry{
			Target:       target,
			Mode:         m.defaultMode,
			ReducePerSec: m.defaultReducePerSec,
			MinAggro:     m.defaultMinAggro,
		}
		m.entries[target] = e
	}
	e.Aggro += amount
	m.dirty = true
	return e
}

// Remove drops the entry for target, if any.
func (m *Manager) Remove(target core.CharacterID) {
	if _, ok := m.entries[target]; ok {
		delete(m.entries, target)
		m.dirty = true
	}
}

// Count returns the number of live entries.
func (m *Manager) Count() int {
	return len(m.entries)
}

// Entries returns a read-only snapshot of the live entries, in no particular
// order.
func (m *Manager) Entries() []*Entry {
	out := make([]*Entry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e)
	}
	return out
}

// Highest returns the entry with the maximum aggro, ties broken by the
// lower target id, or false if the ledger is empty.
func (m *Manager) Highest() (*Entry, bool) {
	m.resort()
	if len(m.sorted) == 0 {
		return nil, false
	}
	return m.sorted[len(m.sorted)-1], true
}

// Update applies one tick of decay (dtMillis milliseconds) to every entry,
// then prunes entries that have decayed to zero.
func (m *Manager) Update(dtMillis int64) {
	dtSec := float32(dtMillis) / 1000
	if dtSec > 0 {
		for _, e := range m.entries {
			switch e.Mode {
			case Ratio:
				e.Aggro *= 1 - e.ReducePerSec*dtSec
				if e.Aggro < e.MinAggro {
					e.Aggro = 0
				}
				m.dirty = true
			case Value:
				e.Aggro -= e.ReducePerSec * dtSec
				if e.Aggro < clampEpsilon {
					e.Aggro = 0
				}
				m.dirty = true
			case Disabled:
			}
		}
	}
	m.resort()
	m.prune()
}

// resort rebuilds the ascending-by-aggro, ties-by-id ordering used by
// Highest, but only when entries have changed since the last sort.
func (m *Manager) resort() {
	if !m.dirty {
		return
	}
	m.sorted = m.sorted[:0]
	for _, e := range m.entries {
		m.sorted = append(m.sorted, e)
	}
	sort.Slice(m.sorted, func(i, j int) bool {
		a, b := m.sorted[i], m.sorted[j]
		if a.Aggro != b.Aggro {
			return a.Aggro < b.Aggro
		}
		return a.Target > b.Target
	})
	m.dirty = false
}

// prune drops leading zero-aggro entries from the sorted order and from the
// backing map.
func (m *Manager) prune() {
	i := 0
	for i < len(m.sorted) && m.sorted[i].Aggro <= 0 {
		delete(m.entries, m.sorted[i].Target)
		i++
	}
	m.sorted = m.sorted[i:]
}
