package passes

import (
	"testing"

	"github.com/emberlang/ember/internal/ssa"
	"github.com/emberlang/ember/internal/types"
)

var lefield4 = ssa.FieldAccess{BaseIsTagged: true, Offset: 4 * 8, Machine: ssa.MachineWord}

func leObj(f *ssa.Func) *ssa.Value {
	return f.NewValue(f.Entry, ssa.OpConstNil, types.Typ[types.Int])
}

// TestLoadEliminationDriverReplacesRedundantLoad exercises the full
// worklist driver, not just the reducer: a store followed by a load of
// the same field must have the load's uses rewired to the stored value
// and the load removed from its block.
func TestLoadEliminationDriverReplacesRedundantLoad(t *testing.T) {
	f := ssa.NewFunc("f", types.NewFunc(nil, nil, nil))
	o, v := leObj(f), leObj(f)

	store := f.NewEffectValue(f.Entry, ssa.OpStoreField, nil, f.Start, o, v)
	store.Aux = lefield4
	load := f.NewEffectValue(f.Entry, ssa.OpLoadField, types.Typ[types.Int], store, o)
	load.Aux = lefield4

	f.Entry.Kind = ssa.BlockReturn
	f.Entry.SetControl(load)

	if err := ssa.Verify(f); err != nil {
		t.Fatalf("Verify before loadelim: %v\n%s", err, ssa.Sprint(f))
	}

	stats := LoadEliminationStats(f)

	if stats.LoadsEliminated != 1 {
		t.Errorf("LoadsEliminated = %d, want 1", stats.LoadsEliminated)
	}
	if len(f.Entry.Controls) != 1 || f.Entry.Controls[0] != v {
		t.Errorf("return operand not rewired to stored value: %s", ssa.Sprint(f))
	}
	for _, val := range f.Entry.Values {
		if val == load {
			t.Errorf("eliminated load still present in block: %s", ssa.Sprint(f))
		}
	}

	if err := ssa.Verify(f); err != nil {
		t.Fatalf("Verify after loadelim: %v\n%s", err, ssa.Sprint(f))
	}
}

// TestLoadEliminationDriverElidesRedundantStore checks that a second,
// same-value store to the same field is dropped from the effect chain
// and its users are rewired past it.
func TestLoadEliminationDriverElidesRedundantStore(t *testing.T) {
	f := ssa.NewFunc("f", types.NewFunc(nil, nil, nil))
	o, v := leObj(f), leObj(f)

	n1 := f.NewEffectValue(f.Entry, ssa.OpStoreField, nil, f.Start, o, v)
	n1.Aux = lefield4
	n2 := f.NewEffectValue(f.Entry, ssa.OpStoreField, nil, n1, o, v)
	n2.Aux = lefield4
	load := f.NewEffectValue(f.Entry, ssa.OpLoadField, types.Typ[types.Int], n2, o)
	load.Aux = lefield4

	ret := f.NewValue(f.Entry, ssa.OpAdd64, types.Typ[types.Int], load)
	f.Entry.Kind = ssa.BlockReturn
	f.Entry.SetControl(ret)

	stats := LoadEliminationStats(f)

	if stats.StoresEliminated != 1 {
		t.Errorf("StoresEliminated = %d, want 1", stats.StoresEliminated)
	}
	if load.Effect != n1 {
		t.Errorf("load's effect edge not rewired past elided store, got %s want %s", load.Effect, n1)
	}

	if err := ssa.Verify(f); err != nil {
		t.Fatalf("Verify after loadelim: %v\n%s", err, ssa.Sprint(f))
	}
}

// TestLoadEliminationDriverPreservesAliasingStore checks that a store to
// a different object does not let the driver eliminate a subsequent load
// of the first object.
func TestLoadEliminationDriverPreservesAliasingStore(t *testing.T) {
	f := ssa.NewFunc("f", types.NewFunc(nil, nil, nil))
	a, b, v1, v2 := leObj(f), leObj(f), leObj(f), leObj(f)

	n1 := f.NewEffectValue(f.Entry, ssa.OpStoreField, nil, f.Start, a, v1)
	n1.Aux = lefield4
	n2 := f.NewEffectValue(f.Entry, ssa.OpStoreField, nil, n1, b, v2)
	n2.Aux = lefield4
	load := f.NewEffectValue(f.Entry, ssa.OpLoadField, types.Typ[types.Int], n2, a)
	load.Aux = lefield4

	ret := f.NewValue(f.Entry, ssa.OpAdd64, types.Typ[types.Int], load)
	f.Entry.Kind = ssa.BlockReturn
	f.Entry.SetControl(ret)

	stats := LoadEliminationStats(f)

	if stats.LoadsEliminated != 0 {
		t.Errorf("LoadsEliminated = %d, want 0 (aliasing store of a different object)", stats.LoadsEliminated)
	}
	found := false
	for _, val := range f.Entry.Values {
		if val == load {
			found = true
		}
	}
	if !found {
		t.Error("load should survive since it could not be proven redundant")
	}
}

// TestLoadEliminationDriverNoopOnEmptyFunc guards against the driver
// panicking or looping on a function with no memory ops at all.
func TestLoadEliminationDriverNoopOnEmptyFunc(t *testing.T) {
	f := ssa.NewFunc("f", types.NewFunc(nil, nil, nil))
	f.Entry.Kind = ssa.BlockReturn

	stats := LoadEliminationStats(f)
	if stats.LoadsEliminated != 0 || stats.StoresEliminated != 0 || stats.ChecksEliminated != 0 {
		t.Errorf("expected no eliminations on an empty func, got %+v", stats)
	}
}

// TestLoadEliminationDriverRecoversInvariantViolation checks that a
// malformed Aux value (one the builder should never actually produce)
// causes the driver to recover and return zero stats instead of letting
// the panic escape to the pass pipeline.
func TestLoadEliminationDriverRecoversInvariantViolation(t *testing.T) {
	f := ssa.NewFunc("f", types.NewFunc(nil, nil, nil))
	o := leObj(f)

	load := f.NewEffectValue(f.Entry, ssa.OpLoadField, types.Typ[types.Int], f.Start, o)
	load.Aux = "not a FieldAccess"
	f.Entry.Kind = ssa.BlockReturn
	f.Entry.SetControl(load)

	stats := LoadEliminationStats(f)
	if stats != (LoadElimStats{}) {
		t.Errorf("expected zero stats after a recovered invariant violation, got %+v", stats)
	}
}
