// Copyright (C) 2026, AIZone Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package node implements the behaviour-tree node model of §4.6: a single
// tagged-variant Node type (leaves, decorators, composites, and host
// extensions) dispatched through one Execute method, with per-AI state kept
// out of the tree entirely (§3, §9 — a tracing GC removes the need for the
// source's arena-of-indices workaround for shared, cyclic-unsafe trees; a
// plain *Node graph with a process-unique int64 id per node satisfies the
// same "per-node state keyed by identity, not by tree" contract).
package node

import (
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/aizone/behaviortree/core"
	"github.com/aizone/behaviortree/steering"
)

// Kind identifies a node's execution semantics.
type Kind int

const (
	KindIdle Kind = iota
	KindPrint
	KindSteer
	KindInvert
	KindFail
	KindSucceed
	KindLimit
	KindSequence
	KindPrioritySelector
	KindProbabilitySelector
	KindRandomSelector
	KindParallel
	KindExtension
)

func (k Kind) String() string {
	switch k {
	case KindIdle:
		return "Idle"
	case KindPrint:
		return "Print"
	case KindSteer:
		return "Steer"
	case KindInvert:
		return "Invert"
	case KindFail:
		return "Fail"
	case KindSucceed:
		return "Succeed"
	case KindLimit:
		return "Limit"
	case KindSequence:
		return "Sequence"
	case KindPrioritySelector:
		return "PrioritySelector"
	case KindProbabilitySelector:
		return "ProbabilitySelector"
	case KindRandomSelector:
		return "RandomSelector"
	case KindParallel:
		return "Parallel"
	case KindExtension:
		return "Extension"
	default:
		return "Unknown"
	}
}

// decoratorKinds require exactly one child; any other count is an
// Exception regardless of the node's activating condition.
func isDecorator(k Kind) bool {
	switch k {
	case KindInvert, KindFail, KindSucceed, KindLimit:
		return true
	}
	return false
}

// PrintFunc is the host-injectable side effect for a Print leaf.
type PrintFunc func(ai core.AI, text string)

// ExtensionFunc is the host-supplied execution body for an Extension node,
// built with NewExtension from a tree-node factory the host registers.
type ExtensionFunc func(ai core.AI, dt time.Duration, self *Node) core.Status

var nextID int64

func allocID() int64 {
	nextID++
	return nextID
}

// Node is the tagged-variant tree element. The zero value is not usable;
// construct with the New* functions below.
type Node struct {
	id        int64
	name      string
	params    string
	kind      Kind
	condition core.Condition
	children  []core.Node

	idleMillis int64
	limit      int
	weights    []float64
	steerings  []steering.Weighted
	printFn    PrintFunc
	ext        ExtensionFunc
	extKind    string
}

var _ core.Node = (*Node)(nil)

// ID implements core.Node.
func (n *Node) ID() int64 { return n.id }

// Name implements core.Node.
func (n *Node) Name() string { return n.name }

// Params implements core.Node.
func (n *Node) Params() string { return n.params }

// Kind implements core.Node.
func (n *Node) Kind() string {
	if n.kind == KindExtension {
		return n.extKind
	}
	return n.kind.String()
}

// Children implements core.Node.
func (n *Node) Children() []core.Node { return n.children }

func newNode(kind Kind, name, params string, cond core.Condition, children []core.Node) *Node {
	return &Node{id: allocID(), kind: kind, name: name, params: params, condition: cond, children: children}
}

// NewIdle returns an Idle(ms) leaf.
func NewIdle(name, params string, cond core.Condition, ms int64) *Node {
	n := newNode(KindIdle, name, params, cond, nil)
	n.idleMillis = ms
	return n
}

// NewPrint returns a Print leaf. fn may be nil, in which case the node is a
// pure no-op that always finishes.
func NewPrint(name, params string, cond core.Condition, fn PrintFunc) *Node {
	n := newNode(KindPrint, name, params, cond, nil)
	n.printFn = fn
	return n
}

// NewSteer returns a Steer leaf driven by a weighted steering blend.
func NewSteer(name, params string, cond core.Condition, weighted []steering.Weighted) *Node {
	n := newNode(KindSteer, name, params, cond, nil)
	n.steerings = weighted
	return n
}

// NewInvert returns an Invert decorator.
func NewInvert(name, params string, cond core.Condition, child core.Node) *Node {
	return newNode(KindInvert, name, params, cond, oneOrNone(child))
}

// NewFail returns a Fail decorator.
func NewFail(name, params string, cond core.Condition, child core.Node) *Node {
	return newNode(KindFail, name, params, cond, oneOrNone(child))
}

// NewSucceed returns a Succeed decorator.
func NewSucceed(name, params string, cond core.Condition, child core.Node) *Node {
	return newNode(KindSucceed, name, params, cond, oneOrNone(child))
}

// NewLimit returns a Limit(n) decorator.
func NewLimit(name, params string, cond core.Condition, limit int, child core.Node) *Node {
	n := newNode(KindLimit, name, params, cond, oneOrNone(child))
	n.limit = limit
	return n
}

// NewSequence returns a Sequence composite.
func NewSequence(name, params string, cond core.Condition, children []core.Node) *Node {
	return newNode(KindSequence, name, params, cond, children)
}

// NewPrioritySelector returns a PrioritySelector composite.
func NewPrioritySelector(name, params string, cond core.Condition, children []core.Node) *Node {
	return newNode(KindPrioritySelector, name, params, cond, children)
}

// NewProbabilitySelector returns a ProbabilitySelector composite. len(weights)
// must equal len(children); the builtin ProbabilitySelector factory is
// responsible for defaulting missing weights to 1.0 and rejecting
// mismatches before construction.
func NewProbabilitySelector(name, params string, cond core.Condition, weights []float64, children []core.Node) *Node {
	n := newNode(KindProbabilitySelector, name, params, cond, children)
	n.weights = weights
	return n
}

// NewRandomSelector returns a RandomSelector composite.
func NewRandomSelector(name, params string, cond core.Condition, children []core.Node) *Node {
	return newNode(KindRandomSelector, name, params, cond, children)
}

// NewParallel returns a Parallel composite.
func NewParallel(name, params string, cond core.Condition, children []core.Node) *Node {
	return newNode(KindParallel, name, params, cond, children)
}

// NewExtension returns a host-registered node. kind is the registry name
// under which the node was looked up; fn implements its execution body.
func NewExtension(kind, name, params string, cond core.Condition, children []core.Node, fn ExtensionFunc) *Node {
	n := newNode(KindExtension, name, params, cond, children)
	n.extKind = kind
	n.ext = fn
	return n
}

func oneOrNone(child core.Node) []core.Node {
	if child == nil {
		return nil
	}
	return []core.Node{child}
}

// Execute implements core.Node: the activating-condition gate and per-kind
// dispatch of §4.6.
func (n *Node) Execute(ai core.AI, dt time.Duration) core.Status {
	if isDecorator(n.kind) && len(n.children) != 1 {
		st := ai.State(n.id)
		return n.finish(st, core.StatusException)
	}

	st, cannot := n.prelude(ai, dt)
	if cannot {
		return core.StatusCannotExecute
	}

	switch n.kind {
	case KindIdle:
		return n.execIdle(ai, dt, st)
	case KindPrint:
		return n.execPrint(ai, st)
	case KindSteer:
		return n.execSteer(ai, dt, st)
	case KindInvert:
		return n.execInvert(ai, dt, st)
	case KindFail:
		return n.execFail(ai, dt, st)
	case KindSucceed:
		return n.execSucceed(ai, dt, st)
	case KindLimit:
		return n.execLimit(ai, dt, st)
	case KindSequence:
		return n.execSequence(ai, dt, st)
	case KindPrioritySelector:
		return n.execPrioritySelector(ai, dt, st)
	case KindProbabilitySelector:
		return n.execProbabilitySelector(ai, dt, st)
	case KindRandomSelector:
		return n.execRandomSelector(ai, dt, st)
	case KindParallel:
		return n.execParallel(ai, dt, st)
	case KindExtension:
		return n.finish(st, n.ext(ai, dt, n))
	default:
		return n.finish(st, core.StatusException)
	}
}

// prelude runs the activating condition gate and timestamps the node's
// state, per the common prelude of §4.6.
func (n *Node) prelude(ai core.AI, dt time.Duration) (*core.NodeState, bool) {
	st := ai.State(n.id)
	if n.condition != nil && !n.condition.Evaluate(ai) {
		st.LastRunMillis = ai.TimeMillis()
		st.LastStatus = core.StatusCannotExecute
		return st, true
	}
	st.LastRunMillis = ai.TimeMillis()
	return st, false
}

func (n *Node) finish(st *core.NodeState, status core.Status) core.Status {
	st.LastStatus = status
	return status
}

// Reset implements core.Node: clears this node's re-entry bookkeeping
// (elapsed-time accumulator, selector index, limit count) so its next
// Execute starts fresh, and recurses into children. LastStatus is left
// untouched — it is a report of what happened on the last tick, not
// re-entry state, and stays readable until the node actually runs again
// (§4.6, §9: a tick's terminal child statuses must still be observable
// after a composite resets for its next attempt).
func (n *Node) Reset(ai core.AI) {
	st := ai.State(n.id)
	st.TimedStart = 0
	st.SelectorIndex = core.NothingSelected
	st.LimitCount = 0
	for _, c := range n.children {
		c.Reset(ai)
	}
}

// execIdle checks the elapsed time accumulated as of the START of this
// tick against the threshold, then folds this tick's dt in for next time
// (§8 scenario 1: with ms=2 and dt=1 per tick, the node reports Running on
// ticks where elapsed-so-far is 0 and 1, and only Finished once elapsed
// reaches 2 — i.e. on the third tick, not the second).
func (n *Node) execIdle(ai core.AI, dt time.Duration, st *core.NodeState) core.Status {
	if st.LastStatus != core.StatusRunning {
		st.TimedStart = 0
	}
	elapsed := st.TimedStart
	st.TimedStart = elapsed + dt.Milliseconds()
	if elapsed >= n.idleMillis {
		return n.finish(st, core.StatusFinished)
	}
	return n.finish(st, core.StatusRunning)
}

func (n *Node) execPrint(ai core.AI, st *core.NodeState) core.Status {
	if n.printFn != nil {
		n.printFn(ai, n.params)
	}
	return n.finish(st, core.StatusFinished)
}

func (n *Node) execSteer(ai core.AI, dt time.Duration, st *core.NodeState) core.Status {
	mv := steering.Blend(ai, dt, n.steerings)
	switch mv.State {
	case core.MoveValid:
		applyMove(ai, mv, dt)
		return n.finish(st, core.StatusRunning)
	case core.MoveTargetReached:
		return n.finish(st, core.StatusFinished)
	default:
		return n.finish(st, core.StatusFailed)
	}
}

// applyMove is the default Steer application (§6): add v·dt to position,
// rotate orientation by r modulo 2π. Hosts that need a different physics
// integration replace the Steer factory in the registry, not this function.
func applyMove(ai core.AI, mv core.MoveVector, dt time.Duration) {
	ch := ai.Character()
	pos := r3.Add(ch.Position(), r3.Scale(dt.Seconds(), mv.Velocity))
	ch.SetPosition(pos)
	o := math.Mod(ch.Orientation()+mv.Rotation, 2*math.Pi)
	if o < 0 {
		o += 2 * math.Pi
	}
	ch.SetOrientation(o)
}

func (n *Node) execInvert(ai core.AI, dt time.Duration, st *core.NodeState) core.Status {
	r := n.children[0].Execute(ai, dt)
	switch r {
	case core.StatusFinished:
		return n.finish(st, core.StatusFailed)
	case core.StatusFailed, core.StatusCannotExecute:
		return n.finish(st, core.StatusFinished)
	case core.StatusException:
		return n.finish(st, core.StatusException)
	default:
		return n.finish(st, core.StatusRunning)
	}
}

func (n *Node) execFail(ai core.AI, dt time.Duration, st *core.NodeState) core.Status {
	if n.children[0].Execute(ai, dt) == core.StatusRunning {
		return n.finish(st, core.StatusRunning)
	}
	return n.finish(st, core.StatusFailed)
}

func (n *Node) execSucceed(ai core.AI, dt time.Duration, st *core.NodeState) core.Status {
	if n.children[0].Execute(ai, dt) == core.StatusRunning {
		return n.finish(st, core.StatusRunning)
	}
	return n.finish(st, core.StatusFinished)
}

func (n *Node) execLimit(ai core.AI, dt time.Duration, st *core.NodeState) core.Status {
	if st.LimitCount >= n.limit {
		return n.finish(st, core.StatusFinished)
	}
	r := n.children[0].Execute(ai, dt)
	st.LimitCount++
	if r == core.StatusRunning {
		return n.finish(st, core.StatusRunning)
	}
	return n.finish(st, core.StatusFailed)
}

// execSequence advances child-by-child from the last Running index. "Reset
// index" on a terminal outcome means exactly that: SelectorIndex goes back
// to NothingSelected so the next tick restarts at child 0. It does not
// recurse into children's own state — their last-reported status stands
// until they are executed again (§4.6, §8 scenario 1: the finished
// children's last_status is still visible at the tick they completed, and
// only the next-but-one tick shows child 0 back to Running).
func (n *Node) execSequence(ai core.AI, dt time.Duration, st *core.NodeState) core.Status {
	idx := st.SelectorIndex
	if idx == core.NothingSelected {
		idx = 0
	}
	for i := idx; i < len(n.children); i++ {
		r := n.children[i].Execute(ai, dt)
		switch r {
		case core.StatusRunning:
			st.SelectorIndex = i
			return n.finish(st, core.StatusRunning)
		case core.StatusFinished:
			continue
		case core.StatusFailed, core.StatusCannotExecute:
			st.SelectorIndex = core.NothingSelected
			return n.finish(st, core.StatusFailed)
		default: // Exception
			return n.finish(st, core.StatusException)
		}
	}
	st.SelectorIndex = core.NothingSelected
	return n.finish(st, core.StatusFinished)
}

func (n *Node) execPrioritySelector(ai core.AI, dt time.Duration, st *core.NodeState) core.Status {
	idx := st.SelectorIndex
	if idx == core.NothingSelected {
		idx = 0
	}
	for j := 0; j < idx && j < len(n.children); j++ {
		n.children[j].Reset(ai)
	}

	result := core.StatusFailed
	selected := core.NothingSelected
	i := idx
	for ; i < len(n.children); i++ {
		child := n.children[i]
		r := child.Execute(ai, dt)
		if r == core.StatusFailed || r == core.StatusCannotExecute {
			child.Reset(ai)
			continue
		}
		if r == core.StatusRunning {
			selected = i
		} else {
			child.Reset(ai)
		}
		result = r
		break
	}
	for j := i + 1; j < len(n.children); j++ {
		n.children[j].Reset(ai)
	}
	st.SelectorIndex = selected
	return n.finish(st, result)
}

func (n *Node) execProbabilitySelector(ai core.AI, dt time.Duration, st *core.NodeState) core.Status {
	idx := st.SelectorIndex
	if idx == core.NothingSelected {
		idx = pickWeighted(n.weights, ai.RNG())
	}
	for i, c := range n.children {
		if i != idx {
			c.Reset(ai)
		}
	}
	child := n.children[idx]
	result := child.Execute(ai, dt)
	if result == core.StatusRunning {
		st.SelectorIndex = idx
	} else {
		st.SelectorIndex = core.NothingSelected
		child.Reset(ai)
	}
	return n.finish(st, result)
}

func pickWeighted(weights []float64, rng core.RNG) int {
	if rng == nil || len(weights) == 0 {
		return 0
	}
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if sum <= 0 {
		return 0
	}
	r := rng.Float64() * sum
	for i, w := range weights {
		if r < w {
			return i
		}
		r -= w
	}
	return len(weights) - 1
}

func (n *Node) execRandomSelector(ai core.AI, dt time.Duration, st *core.NodeState) core.Status {
	order := make([]int, len(n.children))
	for i := range order {
		order[i] = i
	}
	if rng := ai.RNG(); rng != nil {
		for i := len(order) - 1; i > 0; i-- {
			j := rng.IntN(i + 1)
			order[i], order[j] = order[j], order[i]
		}
	}

	anyRunning, anyFinished := false, false
	for _, idx := range order {
		child := n.children[idx]
		r := child.Execute(ai, dt)
		switch r {
		case core.StatusRunning:
			anyRunning = true
		case core.StatusFinished:
			anyFinished = true
			child.Reset(ai)
		default:
			child.Reset(ai)
		}
	}

	switch {
	case anyFinished:
		return n.finish(st, core.StatusFinished)
	case anyRunning:
		return n.finish(st, core.StatusRunning)
	default:
		return n.finish(st, core.StatusFailed)
	}
}

func (n *Node) execParallel(ai core.AI, dt time.Duration, st *core.NodeState) core.Status {
	anyRunning := false
	for _, c := range n.children {
		if c.Execute(ai, dt) == core.StatusRunning {
			anyRunning = true
		} else {
			c.Reset(ai)
		}
	}
	if anyRunning {
		return n.finish(st, core.StatusRunning)
	}
	return n.finish(st, core.StatusFinished)
}
