package passes

import (
	"io"

	"github.com/oleiade/lane/v2"

	"github.com/emberlang/ember/internal/loadelim"
	"github.com/emberlang/ember/internal/ssa"
)

// LoadElimStats summarizes what one LoadElimination run eliminated, for
// the -load-elim-stats diagnostic.
type LoadElimStats struct {
	LoadsEliminated  int
	StoresEliminated int
	ChecksEliminated int
}

// LoadElimTracer, if non-nil, receives the reducer's per-node trace lines
// (gated the same way -load-elim-stats gates summary output in
// cmd/emberc). nil by default: tracing is off unless a caller opts in.
var LoadElimTracer io.Writer

// LoadElimination runs the load-elimination analysis to a fixed point and
// rewrites the graph, discarding the stats LoadEliminationStats collects.
// Fits the Pass{Name, Fn} shape passes.Run expects. An invariant
// violation inside the reducer is recovered here rather than propagated:
// the pass simply stops, leaving whatever prefix of rewrites it already
// applied (all individually sound on their own) in place, instead of
// corrupting the graph or crashing the compiler over one pass that
// failed to converge.
func LoadElimination(f *ssa.Func) {
	runLoadElimination(f)
}

// LoadEliminationStats runs load elimination and returns a count of what
// it eliminated: redundant field/element loads are replaced by the value
// already known to occupy that slot, and redundant stores and map checks
// are elided, per the facts recorded in internal/loadelim's abstract
// state. Element-kind transitions are never elided.
//
// This is the worklist driver spec.md treats as an external collaborator
// (the "GraphReducer"): it owns only traversal and graph rewiring; the
// analysis itself lives in internal/loadelim.
func LoadEliminationStats(f *ssa.Func) LoadElimStats {
	return runLoadElimination(f)
}

func runLoadElimination(f *ssa.Func) (stats LoadElimStats) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*loadelim.InvariantError); ok {
				stats = LoadElimStats{}
				return
			}
			panic(r)
		}
	}()

	ssa.ComputeDom(f)

	le := loadelim.New()
	le.Tracer = LoadElimTracer
	work := lane.NewStack[*ssa.Value]()
	queued := make(map[*ssa.Value]bool, f.NumValues())

	enqueue := func(v *ssa.Value) {
		if !queued[v] {
			queued[v] = true
			work.Push(v)
		}
	}

	for _, b := range ssa.ReversePostOrder(f) {
		for _, v := range b.Values {
			if v.Op.HasEffect() {
				enqueue(v)
			}
		}
	}

	for work.Size() != 0 {
		n, ok := work.Pop()
		if !ok {
			break
		}
		queued[n] = false

		switch res := le.Reduce(n); res.Verdict {
		case loadelim.Replace:
			// n is redundant. Its effect successors must see n's own
			// incoming effect directly, bypassing n; its value users
			// (if any) take res.Other. Effect edges are migrated first
			// so the later ReplaceUses call finds none left pointing at
			// n and only rewires value-argument uses. EffectPhi users
			// reference n through Args, not Effect, so their Args slots
			// are rewired directly rather than via SetEffect (which would
			// touch their unused Effect field) or via the later ReplaceUses
			// call (which rewires to res.Other, the found value for a
			// load, not the bypassed effect node).
			for _, user := range f.EffectUsers(n) {
				if user.Op == ssa.OpEffectPhi {
					for i, a := range user.Args {
						if a == n {
							user.ReplaceArg(i, n.Effect)
						}
					}
				} else {
					user.SetEffect(n.Effect)
				}
				enqueue(user)
			}
			f.ReplaceUses(n, res.Other)
			if n.Uses == 0 {
				f.Kill(n)
			}

			switch n.Op {
			case ssa.OpLoadField, ssa.OpLoadElement:
				stats.LoadsEliminated++
			case ssa.OpStoreField, ssa.OpStoreElement:
				stats.StoresEliminated++
			case ssa.OpCheckMaps, ssa.OpTransitionElementsKind:
				stats.ChecksEliminated++
			}

		case loadelim.Changed:
			for _, user := range f.EffectUsers(n) {
				enqueue(user)
			}
		}
	}

	return stats
}
