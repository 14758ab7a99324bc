package loadelim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/emberlang/ember/internal/ssa"
	"github.com/emberlang/ember/internal/types"
)

// field4 names tracked field index 4 on a tagged object, the slot every
// scenario below stores to and loads from.
var field4 = ssa.FieldAccess{BaseIsTagged: true, Offset: 4 * 8, Machine: ssa.MachineWord}

func obj(f *ssa.Func) *ssa.Value {
	return f.NewValue(f.Entry, ssa.OpConstNil, types.Typ[types.Int])
}

// TestRedundantLoadElimination is S1: StoreField(o,4,v); LoadField(o,4)
// must replace the load with v while leaving the store in place.
func TestRedundantLoadElimination(t *testing.T) {
	f := ssa.NewFunc("s1", nil)
	o, v := obj(f), obj(f)

	store := f.NewEffectValue(f.Entry, ssa.OpStoreField, nil, f.Start, o, v)
	store.Aux = field4

	load := f.NewEffectValue(f.Entry, ssa.OpLoadField, types.Typ[types.Int], store, o)
	load.Aux = field4

	le := New()
	require.Equal(t, Changed, le.Reduce(f.Start).Verdict)
	storeRes := le.Reduce(store)
	require.Equal(t, Changed, storeRes.Verdict)

	loadRes := le.Reduce(load)
	require.Equal(t, Replace, loadRes.Verdict)
	require.Same(t, v, loadRes.Other)
}

// TestRedundantStoreElimination is S2: two stores of the same value to
// the same field; the second is redundant.
func TestRedundantStoreElimination(t *testing.T) {
	f := ssa.NewFunc("s2", nil)
	o, v := obj(f), obj(f)

	n1 := f.NewEffectValue(f.Entry, ssa.OpStoreField, nil, f.Start, o, v)
	n1.Aux = field4
	n2 := f.NewEffectValue(f.Entry, ssa.OpStoreField, nil, n1, o, v)
	n2.Aux = field4

	le := New()
	le.Reduce(f.Start)
	le.Reduce(n1)
	res := le.Reduce(n2)

	require.Equal(t, Replace, res.Verdict)
	require.Same(t, n1, res.Other)
}

// TestAliasingAwareKill is S3: a store to a different object at the same
// field index must not let a later load of the first object be replaced.
func TestAliasingAwareKill(t *testing.T) {
	f := ssa.NewFunc("s3", nil)
	a, b, v1, v2 := obj(f), obj(f), obj(f), obj(f)

	n1 := f.NewEffectValue(f.Entry, ssa.OpStoreField, nil, f.Start, a, v1)
	n1.Aux = field4
	n2 := f.NewEffectValue(f.Entry, ssa.OpStoreField, nil, n1, b, v2)
	n2.Aux = field4
	n3 := f.NewEffectValue(f.Entry, ssa.OpLoadField, types.Typ[types.Int], n2, a)
	n3.Aux = field4

	le := New()
	le.Reduce(f.Start)
	le.Reduce(n1)
	le.Reduce(n2)
	res := le.Reduce(n3)

	require.Equal(t, Changed, res.Verdict, "n3 must survive as a newly-recorded fact, not be replaced")
}

// TestElementRedundantLoad is S4: a store then load of the same
// (array, index) identity pair replaces the load.
func TestElementRedundantLoad(t *testing.T) {
	f := ssa.NewFunc("s4", nil)
	arr, idx, v := obj(f), obj(f), obj(f)

	access := ssa.ElementAccess{BaseIsTagged: true, HeaderSize: 16, Machine: ssa.MachineWord}

	n1 := f.NewEffectValue(f.Entry, ssa.OpStoreElement, nil, f.Start, arr, idx, v)
	n1.Aux = access
	n2 := f.NewEffectValue(f.Entry, ssa.OpLoadElement, types.Typ[types.Int], n1, arr, idx)
	n2.Aux = access

	le := New()
	le.Reduce(f.Start)
	le.Reduce(n1)
	res := le.Reduce(n2)

	require.Equal(t, Replace, res.Verdict)
	require.Same(t, v, res.Other)
}

// TestMergeAtDiamondKillsLoad is S5: a diamond where each branch stores a
// different value to the same field must leave the post-merge load
// unreplaced, because Merge drops disagreeing facts.
func TestMergeAtDiamondKillsLoad(t *testing.T) {
	f := ssa.NewFunc("s5", nil)
	o, v, w := obj(f), obj(f), obj(f)

	entry := f.Entry
	thenB := f.NewBlock(ssa.BlockPlain)
	elseB := f.NewBlock(ssa.BlockPlain)
	merge := f.NewBlock(ssa.BlockReturn)

	cond := f.NewValue(entry, ssa.OpConstBool, types.Typ[types.Bool])
	entry.Kind = ssa.BlockIf
	entry.SetControl(cond)
	entry.AddSucc(thenB)
	entry.AddSucc(elseB)
	thenB.AddSucc(merge)
	elseB.AddSucc(merge)

	thenStore := f.NewEffectValue(thenB, ssa.OpStoreField, nil, f.Start, o, v)
	thenStore.Aux = field4
	elseStore := f.NewEffectValue(elseB, ssa.OpStoreField, nil, f.Start, o, w)
	elseStore.Aux = field4

	phi := f.NewValueAtFront(merge, ssa.OpEffectPhi, nil)
	phi.Args = []*ssa.Value{thenStore, elseStore}
	thenStore.Uses++
	elseStore.Uses++

	load := f.NewEffectValue(merge, ssa.OpLoadField, types.Typ[types.Int], phi, o)
	load.Aux = field4
	merge.SetControl(load)

	le := New()
	le.Reduce(f.Start)
	le.Reduce(thenStore)
	le.Reduce(elseStore)
	le.Reduce(phi)
	res := le.Reduce(load)

	require.Equal(t, Changed, res.Verdict, "load must survive: merge produced unknown for field 4")
}

// TestRedundantCheckMaps is S6: asserting the same single map twice
// elides the second check.
func TestRedundantCheckMaps(t *testing.T) {
	f := ssa.NewFunc("s6", nil)
	o, m := obj(f), obj(f)

	n1 := f.NewEffectValue(f.Entry, ssa.OpCheckMaps, nil, f.Start, o, m)
	n2 := f.NewEffectValue(f.Entry, ssa.OpCheckMaps, nil, n1, o, m)

	le := New()
	le.Reduce(f.Start)
	le.Reduce(n1)
	res := le.Reduce(n2)

	require.Equal(t, Replace, res.Verdict)
	require.Same(t, n1, res.Other)
}

// TestLoopKillsPostLoopLoad is S7: a store inside a loop body must clear
// the field's binding at the loop header, so a load after the loop is not
// replaced by the pre-loop value.
func TestLoopKillsPostLoopLoad(t *testing.T) {
	f := ssa.NewFunc("s7", nil)
	entry := f.Entry
	o, vInit, vIter := obj(f), obj(f), obj(f)

	preStore := f.NewEffectValue(entry, ssa.OpStoreField, nil, f.Start, o, vInit)
	preStore.Aux = field4

	header := f.NewBlock(ssa.BlockIf)
	entry.Kind = ssa.BlockPlain
	entry.AddSucc(header)

	body := f.NewBlock(ssa.BlockPlain)
	exit := f.NewBlock(ssa.BlockReturn)

	header.AddSucc(body)
	header.AddSucc(exit)
	body.AddSucc(header) // back edge

	cond := f.NewValue(header, ssa.OpConstBool, types.Typ[types.Bool])
	header.SetControl(cond)

	phi := f.NewValueAtFront(header, ssa.OpEffectPhi, nil)

	bodyStore := f.NewEffectValue(body, ssa.OpStoreField, nil, phi, o, vIter)
	bodyStore.Aux = field4

	phi.Args = []*ssa.Value{preStore, bodyStore}
	preStore.Uses++
	bodyStore.Uses++

	load := f.NewEffectValue(exit, ssa.OpLoadField, types.Typ[types.Int], phi, o)
	load.Aux = field4
	exit.SetControl(load)

	require.NoError(t, ssa.Verify(f))
	ssa.ComputeDom(f)

	le := New()
	le.Reduce(f.Start)
	le.Reduce(preStore)
	le.Reduce(phi)
	le.Reduce(bodyStore)
	res := le.Reduce(load)

	require.Equal(t, Changed, res.Verdict, "post-loop load must not be replaced: loop body writes field 4")
}

func TestUpdateStateFixedPoint(t *testing.T) {
	f := ssa.NewFunc("fix", nil)
	le := New()

	first := le.Reduce(f.Start)
	require.Equal(t, Changed, first.Verdict)

	second := le.Reduce(f.Start)
	require.Equal(t, NoChange, second.Verdict, "re-reducing Start at its fixed point must report NoChange")
}

func TestReduceBeforePredecessorAnalyzedIsNoChange(t *testing.T) {
	f := ssa.NewFunc("unanalyzed", nil)
	o, v := obj(f), obj(f)

	store := f.NewEffectValue(f.Entry, ssa.OpStoreField, nil, f.Start, o, v)
	store.Aux = field4

	le := New()
	res := le.Reduce(store) // Start not yet reduced
	require.Equal(t, NoChange, res.Verdict)
}
