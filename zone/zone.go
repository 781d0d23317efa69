// Copyright (C) 2026, AIZone Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package zone implements the per-entity runtime handle (AI) and the
// container that owns AIs and a group manager and runs the per-tick
// scheduler described in §4.8: a two-lock deferred-mutation queue, a
// worker-pool tick over a snapshot of the AI map, followed by a
// single-threaded group manager update.
package zone

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aizone/behaviortree/aggro"
	"github.com/aizone/behaviortree/core"
	"github.com/aizone/behaviortree/group"
	"github.com/aizone/behaviortree/metrics"
)

func durationMillis(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// AI is the per-entity runtime handle: a character, a behaviour tree root,
// an aggro ledger, a back-pointer to the owning zone, and per-node state.
// It is not safe for concurrent use by more than one goroutine at a time;
// the zone scheduler guarantees a given AI is only ever touched by the
// worker processing it during a tick.
type AI struct {
	id   core.CharacterID
	char core.Character
	root core.Node
	rng  core.RNG

	aggro *aggro.Manager

	mu   sync.Mutex
	zone core.ZoneView

	filtered []core.CharacterID

	states map[int64]*core.NodeState

	timeMillis int64
	paused     bool
	debug      bool
}

// NewAI returns an AI wrapping character, driven by root (which may be nil
// until a tree is attached), with rng as its steering/selection random
// source.
func NewAI(char core.Character, root core.Node, rng core.RNG) *AI {
	return &AI{
		id:     char.ID(),
		char:   char,
		root:   root,
		rng:    rng,
		aggro:  aggro.New(),
		states: make(map[int64]*core.NodeState),
	}
}

var _ core.AI = (*AI)(nil)

// CharacterID implements core.AI.
func (a *AI) CharacterID() core.CharacterID { return a.id }

// Character implements core.AI.
func (a *AI) Character() core.Character { return a.char }

// Zone implements core.AI.
func (a *AI) Zone() core.ZoneView {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.zone
}

func (a *AI) setZone(z core.ZoneView) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.zone = z
}

// FilteredEntities implements core.AI.
func (a *AI) FilteredEntities() []core.CharacterID { return a.filtered }

// SetFilteredEntities implements core.AI.
func (a *AI) SetFilteredEntities(ids []core.CharacterID) { a.filtered = ids }

// AggroCount implements core.AI.
func (a *AI) AggroCount() int { return a.aggro.Count() }

// HighestAggro implements core.AI.
func (a *AI) HighestAggro() (core.CharacterID, bool) {
	e, ok := a.aggro.Highest()
	if !ok {
		return core.NoCharacter, false
	}
	return e.Target, true
}

// Aggro exposes the underlying ledger for hosts that need to record or
// inspect hostility directly (§4.1).
func (a *AI) Aggro() *aggro.Manager { return a.aggro }

// State implements core.AI, creating nodeID's state on first access.
func (a *AI) State(nodeID int64) *core.NodeState {
	st, ok := a.states[nodeID]
	if !ok {
		st = core.NewNodeState()
		a.states[nodeID] = st
	}
	return st
}

// TimeMillis implements core.AI.
func (a *AI) TimeMillis() int64 { return a.timeMillis }

// Paused implements core.AI.
func (a *AI) Paused() bool { return a.paused }

// SetPaused pauses or resumes this AI's tree execution; a paused AI still
// has its back-pointer and group membership maintained by the zone.
func (a *AI) SetPaused(p bool) { a.paused = p }

// Debug implements core.AI.
func (a *AI) Debug() bool { return a.debug }

func (a *AI) setDebug(d bool) { a.debug = d }

// RNG implements core.AI.
func (a *AI) RNG() core.RNG { return a.rng }

// Root returns the behaviour tree this AI executes.
func (a *AI) Root() core.Node { return a.root }

// SetRoot attaches (or replaces) the behaviour tree this AI executes.
func (a *AI) SetRoot(root core.Node) { a.root = root }

type pendingOp int

const (
	opAdd pendingOp = iota
	opRemove
	opDestroy
)

type pending struct {
	op pendingOp
	ai *AI
	id core.CharacterID
}

// Zone owns a {CharacterID → AI} map under a read/write lock, plus a
// separate schedule lock protecting the three pending-mutation queues
// (§4.8). It holds one group.Manager and drives a bounded worker pool each
// tick.
type Zone struct {
	workers int

	mapMu sync.RWMutex
	ais   map[core.CharacterID]*AI

	schedMu sync.Mutex
	pending []pending

	groups *group.Manager

	metrics *metrics.ZoneMetrics

	debug bool

	aggroMode         aggro.Mode
	aggroReducePerSec float32
	aggroMinAggro     float32
}

// New returns an empty Zone with workers concurrent tick workers (at least
// 1).
func New(workers int) *Zone {
	if workers < 1 {
		workers = 1
	}
	return &Zone{
		workers: workers,
		ais:     make(map[core.CharacterID]*AI),
		groups:  group.New(),
	}
}

var _ core.ZoneView = (*Zone)(nil)

// SetMetrics attaches m so every later Update call reports tick duration, AI
// count, and tree exceptions against it. Passing nil (the default) disables
// reporting.
func (z *Zone) SetMetrics(m *metrics.ZoneMetrics) { z.metrics = m }

// SetAggroDefaults configures the decay every AI added to this zone from
// this point on applies to the aggro entries it creates (§4.1), mirroring
// config.ZoneConfig's DefaultAggroMode/DefaultAggroReducePerSec/
// DefaultAggroMinAggro. It takes effect when the AI is actually added
// during Update's apply phase, not retroactively for AIs already in the
// zone.
func (z *Zone) SetAggroDefaults(mode aggro.Mode, reducePerSec, minAggro float32) {
	z.mapMu.Lock()
	defer z.mapMu.Unlock()
	z.aggroMode = mode
	z.aggroReducePerSec = reducePerSec
	z.aggroMinAggro = minAggro
}

// Add enqueues ai for insertion on the next Update and returns immediately.
// It rejects ai == nil or an id of core.NoCharacter up front; a duplicate
// id already present is rejected during the apply phase instead, per §4.8.
func (z *Zone) Add(ai *AI) bool {
	if ai == nil || ai.CharacterID() == core.NoCharacter {
		return false
	}
	z.schedMu.Lock()
	defer z.schedMu.Unlock()
	z.pending = append(z.pending, pending{op: opAdd, ai: ai})
	return true
}

// Remove enqueues id for removal on the next Update.
func (z *Zone) Remove(id core.CharacterID) bool {
	z.schedMu.Lock()
	defer z.schedMu.Unlock()
	z.pending = append(z.pending, pending{op: opRemove, id: id})
	return true
}

// Destroy enqueues id for destruction on the next Update. Distinct from
// Remove only in host-visible intent (§4.8); both clear the AI's
// back-pointer and group membership during the apply phase.
func (z *Zone) Destroy(id core.CharacterID) bool {
	z.schedMu.Lock()
	defer z.schedMu.Unlock()
	z.pending = append(z.pending, pending{op: opDestroy, id: id})
	return true
}

// Get returns the AI for id, if the zone currently owns it.
func (z *Zone) Get(id core.CharacterID) (*AI, bool) {
	z.mapMu.RLock()
	defer z.mapMu.RUnlock()
	ai, ok := z.ais[id]
	return ai, ok
}

// Lookup implements core.ZoneView.
func (z *Zone) Lookup(id core.CharacterID) (core.AI, bool) {
	ai, ok := z.Get(id)
	if !ok {
		return nil, false
	}
	return ai, true
}

// Size returns the number of AIs currently owned by the zone.
func (z *Zone) Size() int {
	z.mapMu.RLock()
	defer z.mapMu.RUnlock()
	return len(z.ais)
}

// AllCharacterIDs implements core.ZoneView.
func (z *Zone) AllCharacterIDs() []core.CharacterID {
	z.mapMu.RLock()
	defer z.mapMu.RUnlock()
	out := make([]core.CharacterID, 0, len(z.ais))
	for id := range z.ais {
		out = append(out, id)
	}
	return out
}

// Groups implements core.ZoneView.
func (z *Zone) Groups() core.GroupView { return z.groups }

// GroupManager exposes the co-resident group manager (§6's
// group_manager()).
func (z *Zone) GroupManager() *group.Manager { return z.groups }

// SetDebug toggles per-AI debug flag propagation (§6's set_debug(bool)):
// every AI currently owned by the zone, and every AI added afterward,
// inherits this flag.
func (z *Zone) SetDebug(d bool) {
	z.mapMu.Lock()
	defer z.mapMu.Unlock()
	z.debug = d
	for _, ai := range z.ais {
		ai.setDebug(d)
	}
}

// Execute runs fn against every AI currently owned by the zone, on the
// calling goroutine, over a snapshot taken under a read lock (§4.8: "a copy
// of the id→AI map is taken to release L early").
func (z *Zone) Execute(fn func(*AI)) {
	for _, ai := range z.snapshot() {
		fn(ai)
	}
}

// ExecuteParallel runs fn against every AI currently owned by the zone,
// fanning out across the zone's worker pool. Every AI in the snapshot is
// guaranteed to run exactly once: an error from one AI's fn call is
// recorded, not treated as a reason to stop the remaining AIs (§4.8's
// "shared state is read-only during a tick" model means one AI's tick is
// independent of another's, unlike an all-or-nothing batch job). Only
// cancellation of ctx itself — an external signal, never one caused by fn
// returning an error — stops workers early. Collected errors are joined and
// returned together rather than only the first.
func (z *Zone) ExecuteParallel(ctx context.Context, fn func(*AI) error) error {
	snap := z.snapshot()
	jobs := make(chan *AI, len(snap))
	for _, ai := range snap {
		jobs <- ai
	}
	close(jobs)

	var (
		grp  errgroup.Group
		mu   sync.Mutex
		errs []error
	)
	for i := 0; i < z.workers; i++ {
		grp.Go(func() error {
			for ai := range jobs {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				if err := fn(ai); err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
				}
			}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (z *Zone) snapshot() []*AI {
	z.mapMu.RLock()
	defer z.mapMu.RUnlock()
	out := make([]*AI, 0, len(z.ais))
	for _, ai := range z.ais {
		out = append(out, ai)
	}
	return out
}

// Update performs one scheduler tick, per §4.8's six steps: drain the
// pending queues, apply them under the map lock, snapshot the map, run
// every AI's tick on the worker pool, join, then update the group manager.
func (z *Zone) Update(ctx context.Context, dtMillis int64) error {
	start := time.Now()
	batch := z.drainPending()
	z.applyPending(batch)

	err := z.ExecuteParallel(ctx, func(ai *AI) error {
		if ai.Paused() {
			return nil
		}
		ai.timeMillis += dtMillis
		ai.aggro.Update(dtMillis)
		if ai.root == nil {
			return nil
		}
		status := ai.root.Execute(ai, durationMillis(dtMillis))
		if status == core.StatusException {
			z.metrics.IncException()
			return fmt.Errorf("ai %d: tree root returned Exception", ai.CharacterID())
		}
		return nil
	})

	z.groups.Update(dtMillis)
	z.metrics.ObserveTick(time.Since(start), z.Size())
	return err
}

// drainPending swaps out the pending queue under the schedule lock (§4.8
// step 1).
func (z *Zone) drainPending() []pending {
	z.schedMu.Lock()
	defer z.schedMu.Unlock()
	batch := z.pending
	z.pending = nil
	return batch
}

// applyPending applies one batch of queued mutations under the map write
// lock, in enqueue order (§4.8 step 2, §5's ordering guarantee).
func (z *Zone) applyPending(batch []pending) {
	if len(batch) == 0 {
		return
	}
	z.mapMu.Lock()
	defer z.mapMu.Unlock()

	for _, p := range batch {
		switch p.op {
		case opAdd:
			id := p.ai.CharacterID()
			if id == core.NoCharacter {
				continue
			}
			if _, exists := z.ais[id]; exists {
				continue
			}
			p.ai.setZone(z)
			p.ai.setDebug(z.debug)
			switch z.aggroMode {
			case aggro.Ratio:
				p.ai.aggro.SetReduceByRatio(z.aggroReducePerSec, z.aggroMinAggro)
			case aggro.Value:
				p.ai.aggro.SetReduceByValue(z.aggroReducePerSec)
			}
			z.ais[id] = p.ai
		case opRemove, opDestroy:
			ai, ok := z.ais[p.id]
			if !ok {
				continue
			}
			delete(z.ais, p.id)
			z.groups.RemoveFromAllGroups(ai)
			ai.setZone(nil)
		}
	}
}

// Shutdown drains any workers still processing a tick is the caller's
// responsibility (callers must not invoke Update concurrently with
// Shutdown); Shutdown then clears every AI's back-pointer and empties the
// group manager, per §4.8's cancellation contract.
func (z *Zone) Shutdown() {
	z.mapMu.Lock()
	defer z.mapMu.Unlock()
	for id, ai := range z.ais {
		z.groups.RemoveFromAllGroups(ai)
		ai.setZone(nil)
		delete(z.ais, id)
	}
}
