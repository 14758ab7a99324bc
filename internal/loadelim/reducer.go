package loadelim

import (
	"fmt"
	"io"

	"github.com/emberlang/ember/internal/ssa"
)

// mapFieldIndex is the fixed, known field slot CheckMaps/
// TransitionElementsKind reason about — Ember's analog of a V8 object's
// Map slot, laid out as tracked field 0 of any tagged object.
const mapFieldIndex = 0

// Verdict is the outcome a Reduce call reports back to the driver.
type Verdict int

const (
	// NoChange means the node's recorded state (or lack of one) did not
	// move; the driver need not re-queue anything because of this call.
	NoChange Verdict = iota
	// Replace means the node is redundant; the driver should rewire its
	// users to Other and kill the node.
	Replace
	// Changed means the node's recorded abstract state moved since the
	// last time it was reduced; the driver should re-queue its effect
	// users.
	Changed
)

// Result is what Reduce returns for one node.
type Result struct {
	Verdict Verdict
	Other   *ssa.Value // valid iff Verdict == Replace
	Node    *ssa.Value // valid iff Verdict == Changed
}

// LoadElimination is the per-pass-invocation reducer core: one StateTable,
// reused across every Reduce call for the Func currently being optimized.
type LoadElimination struct {
	table *StateTable

	// Tracer, if non-nil, receives one line per Reduce call that moves a
	// node's recorded state (Changed) or replaces it (Replace). Mirrors
	// the dump-gated-by-pattern idiom passes.Config already uses.
	Tracer io.Writer
}

// New returns a fresh reducer with an empty state table.
func New() *LoadElimination {
	return &LoadElimination{table: NewStateTable()}
}

func (le *LoadElimination) trace(format string, args ...interface{}) {
	if le.Tracer == nil {
		return
	}
	fmt.Fprintf(le.Tracer, format+"\n", args...)
}

// Reduce dispatches on n.Op and returns the verdict the driver should act
// on. Nodes whose op does not carry an effect edge are never the subject
// of this analysis and always report NoChange.
func (le *LoadElimination) Reduce(n *ssa.Value) Result {
	if !n.Op.HasEffect() {
		return Result{}
	}

	if n.Op == ssa.OpStart {
		return le.updateState(n, emptyState)
	}

	if n.Op == ssa.OpEffectPhi {
		return le.reduceEffectPhi(n)
	}

	sIn := le.table.Get(n.Effect)
	if sIn == nil {
		// The predecessor has not been analyzed yet; the driver will
		// revisit this node once it has.
		return Result{}
	}

	switch n.Op {
	case ssa.OpLoadField:
		return le.reduceLoadField(n, sIn)
	case ssa.OpStoreField:
		return le.reduceStoreField(n, sIn)
	case ssa.OpLoadElement:
		return le.reduceLoadElement(n, sIn)
	case ssa.OpStoreElement:
		return le.reduceStoreElement(n, sIn)
	case ssa.OpCheckMaps:
		return le.reduceCheckMaps(n, sIn)
	case ssa.OpTransitionElementsKind:
		return le.reduceTransitionElementsKind(n, sIn)
	default:
		return le.reduceOther(n, sIn)
	}
}

func (le *LoadElimination) reduceLoadField(n *ssa.Value, sIn *AbstractState) Result {
	object := n.Args[0]
	access, ok := n.Aux.(ssa.FieldAccess)
	if !ok {
		panic(newInvariantError("LoadField", "Aux is %T, want ssa.FieldAccess", n.Aux))
	}
	i := ssa.FieldIndexOf(access)
	if i >= 0 {
		if v := sIn.LookupField(object, i); v != nil {
			le.trace("loadelim: %s redundant, replaced by v%d", n, v.ID)
			return Result{Verdict: Replace, Other: v}
		}
	}
	return le.updateState(n, sIn.AddField(object, i, n))
}

func (le *LoadElimination) reduceStoreField(n *ssa.Value, sIn *AbstractState) Result {
	object, value := n.Args[0], n.Args[1]
	access, ok := n.Aux.(ssa.FieldAccess)
	if !ok {
		panic(newInvariantError("StoreField", "Aux is %T, want ssa.FieldAccess", n.Aux))
	}
	i := ssa.FieldIndexOf(access)
	if i >= 0 && sIn.LookupField(object, i) == value {
		le.trace("loadelim: %s is a redundant store, elided", n)
		return Result{Verdict: Replace, Other: n.Effect}
	}
	return le.updateState(n, sIn.KillFieldForAliasing(object, i, value))
}

func (le *LoadElimination) reduceLoadElement(n *ssa.Value, sIn *AbstractState) Result {
	object, index := n.Args[0], n.Args[1]
	if v := sIn.LookupElement(object, index); v != nil {
		return Result{Verdict: Replace, Other: v}
	}
	return le.updateState(n, sIn.AddElement(object, index, n))
}

func (le *LoadElimination) reduceStoreElement(n *ssa.Value, sIn *AbstractState) Result {
	object, index, value := n.Args[0], n.Args[1], n.Args[2]
	if sIn.LookupElement(object, index) == value {
		return Result{Verdict: Replace, Other: n.Effect}
	}
	sKill := sIn.KillElement(object, index)
	return le.updateState(n, sKill.AddElement(object, index, value))
}

// reduceCheckMaps handles CheckMaps(object, maps...): Args[0] is the
// checked object, Args[1:] the asserted map nodes.
func (le *LoadElimination) reduceCheckMaps(n *ssa.Value, sIn *AbstractState) Result {
	object := n.Args[0]
	asserted := n.Args[1:]

	if known := sIn.LookupField(object, mapFieldIndex); known != nil {
		for _, m := range asserted {
			if m == known {
				le.trace("loadelim: %s redundant, map already checked against v%d", n, m.ID)
				return Result{Verdict: Replace, Other: n.Effect}
			}
		}
	}

	if len(asserted) == 1 {
		return le.updateState(n, sIn.AddField(object, mapFieldIndex, asserted[0]))
	}
	return le.updateState(n, sIn)
}

// reduceTransitionElementsKind always conservatively kills the map-field
// binding and the elements ring for every tracked object, since any
// object aliasing Args[0] may observe the transition. Ember's IR carries
// no target-kind operand to detect a no-op transition, so every
// TransitionElementsKind is treated as potentially-effectful.
func (le *LoadElimination) reduceTransitionElementsKind(n *ssa.Value, sIn *AbstractState) Result {
	out := sIn.clone()
	out.fields[mapFieldIndex] = nil
	out.elements = nil
	return le.updateState(n, out)
}

// reduceEffectPhi implements both the ordinary-merge and loop-header
// cases of an effect phi, distinguished by whether any predecessor block
// is dominated by the phi's own block (a back edge).
func (le *LoadElimination) reduceEffectPhi(n *ssa.Value) Result {
	b := n.Block
	args := n.EffectArgs()

	backIdx := -1
	for i, p := range b.Preds {
		if dominates(b, p) {
			backIdx = i
			break
		}
	}

	if backIdx < 0 {
		// Ordinary merge: every predecessor's state must be present.
		var states []*AbstractState
		for _, a := range args {
			s := le.table.Get(a)
			if s == nil {
				return Result{}
			}
			states = append(states, s)
		}
		out := states[0]
		for _, s := range states[1:] {
			out = out.Merge(s)
		}
		return le.updateState(n, out)
	}

	// Loop header: find the (single) forward entry edge and use its
	// state as the base; the backedge's own state is not needed because
	// ComputeLoopState conservatively kills anything the loop body might
	// have written instead of iterating the backedge to a fixpoint.
	var entryState *AbstractState
	for i, a := range args {
		if i == backIdx {
			continue
		}
		entryState = le.table.Get(a)
		break
	}
	if entryState == nil {
		return Result{}
	}
	return le.updateState(n, ComputeLoopState(n, entryState))
}

// reduceOther is ReduceOtherNode: effectful ops without a dedicated
// handler above. NoWrite ops propagate the input state unchanged;
// anything else conservatively clears all tracked facts. Ops without an
// effect edge (calls, NewAlloc) never get here: Reduce returns NoChange
// for them before dispatching.
func (le *LoadElimination) reduceOther(n *ssa.Value, sIn *AbstractState) Result {
	if n.Op.NoWrite() {
		return le.updateState(n, sIn)
	}
	return le.updateState(n, emptyState)
}

// updateState is UpdateState from spec.md §4.4: it stores sNew for n if
// it differs from what is already recorded, reporting Changed so the
// driver re-queues n's effect users, or NoChange at a fixed point.
func (le *LoadElimination) updateState(n *ssa.Value, sNew *AbstractState) Result {
	sOld := le.table.Get(n)
	if sOld != nil && sOld.Equal(sNew) {
		return Result{}
	}
	le.table.Set(n, sNew)
	return Result{Verdict: Changed, Node: n}
}

// dominates reports whether a dominates b, walking b's Idom chain.
func dominates(a, b *ssa.Block) bool {
	for b != nil {
		if b == a {
			return true
		}
		b = b.Idom
	}
	return false
}

// ComputeLoopState performs the one-shot loop-body walk described in
// spec.md §4.4 "Loop header" / §9: starting from the state flowing in on
// the loop's forward entry edge, it clears every field index and the
// elements ring that any node in the loop body (the blocks header
// dominates) might write, without iterating the backedge to a fixpoint.
func ComputeLoopState(header *ssa.Value, entryState *AbstractState) *AbstractState {
	killAll := false
	killElements := false
	var killFields []int

	var walk func(b *ssa.Block)
	visited := make(map[*ssa.Block]bool)
	walk = func(b *ssa.Block) {
		if visited[b] {
			return
		}
		visited[b] = true
		for _, v := range b.Values {
			switch v.Op {
			case ssa.OpStoreField:
				if i := ssa.FieldIndexOf(v.Aux.(ssa.FieldAccess)); i >= 0 {
					killFields = append(killFields, i)
				} else {
					killAll = true
				}
			case ssa.OpStoreElement:
				killElements = true
			case ssa.OpTransitionElementsKind:
				killFields = append(killFields, mapFieldIndex)
				killElements = true
			case ssa.OpCheckMaps, ssa.OpLoadField, ssa.OpLoadElement, ssa.OpEffectPhi, ssa.OpStart:
				// no write
			default:
				if v.Op.HasEffect() && !v.Op.NoWrite() {
					killAll = true
				}
			}
		}
		for _, child := range b.Dominees {
			walk(child)
		}
	}
	walk(header.Block)

	if killAll {
		return emptyState
	}

	out := entryState.clone()
	for _, i := range killFields {
		out.fields[i] = nil
	}
	if killElements {
		out.elements = nil
	}
	return out
}
