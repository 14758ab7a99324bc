// Package loadelim implements the abstract memory state and reducer core
// of the load-elimination optimization pass: tracking, per effect-chain
// node, which object fields and array elements are known to hold which
// value, so that redundant loads/stores/checks can be elided.
package loadelim

import "github.com/emberlang/ember/internal/ssa"

// AbstractField maps object identity to the last-known value of one field
// index. Value-semantic: every mutator returns a new AbstractField rather
// than mutating the receiver, so a shared instance can be referenced from
// many AbstractStates at once.
type AbstractField struct {
	bindings map[*ssa.Value]*ssa.Value
}

// Extend returns a field map with object bound to value, replacing any
// prior binding for object.
func (f *AbstractField) Extend(object, value *ssa.Value) *AbstractField {
	n := 1
	if f != nil {
		n += len(f.bindings)
	}
	out := &AbstractField{bindings: make(map[*ssa.Value]*ssa.Value, n)}
	if f != nil {
		for k, v := range f.bindings {
			out.bindings[k] = v
		}
	}
	out.bindings[object] = value
	return out
}

// Lookup returns the value bound to object, or nil if none is known.
func (f *AbstractField) Lookup(object *ssa.Value) *ssa.Value {
	if f == nil {
		return nil
	}
	return f.bindings[object]
}

// Kill returns a field map with object's binding removed. If that was the
// only binding, it returns nil — callers must store nil back in the slot
// rather than keep an empty map around.
func (f *AbstractField) Kill(object *ssa.Value) *AbstractField {
	if f == nil {
		return nil
	}
	if _, ok := f.bindings[object]; !ok {
		return f
	}
	if len(f.bindings) == 1 {
		return nil
	}
	out := &AbstractField{bindings: make(map[*ssa.Value]*ssa.Value, len(f.bindings)-1)}
	for k, v := range f.bindings {
		if k != object {
			out.bindings[k] = v
		}
	}
	return out
}

// Equal reports whether f and g record exactly the same bindings.
func (f *AbstractField) Equal(g *AbstractField) bool {
	if f == g {
		return true
	}
	if f == nil || g == nil {
		return false
	}
	if len(f.bindings) != len(g.bindings) {
		return false
	}
	for k, v := range f.bindings {
		if g.bindings[k] != v {
			return false
		}
	}
	return true
}

// Merge intersects f and g: a binding survives only if both sides agree
// on object mapping to the identity-equal value.
func (f *AbstractField) Merge(g *AbstractField) *AbstractField {
	if f == nil || g == nil {
		return nil
	}
	out := make(map[*ssa.Value]*ssa.Value)
	small, big := f.bindings, g.bindings
	if len(big) < len(small) {
		small, big = big, small
	}
	for k, v := range small {
		if big[k] == v {
			out[k] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return &AbstractField{bindings: out}
}

// MaxTrackedElements bounds the number of (object, index, value) triples
// an AbstractElements ring can hold at once.
const MaxTrackedElements = 8

// elementEntry is one ring slot. The zero value represents an empty slot.
type elementEntry struct {
	object, index, value *ssa.Value
}

func (e elementEntry) empty() bool { return e.object == nil }

// AbstractElements is a small recency window of the most recent element
// stores whose value is still known to be live: an insertion-ordered
// circular buffer of at most MaxTrackedElements triples. Value-semantic,
// like AbstractField.
type AbstractElements struct {
	slots  [MaxTrackedElements]elementEntry
	cursor int
}

// Extend appends (object, index, value) at the write cursor, silently
// overwriting the oldest tracked triple on overflow.
func (e *AbstractElements) Extend(object, index, value *ssa.Value) *AbstractElements {
	out := new(AbstractElements)
	if e != nil {
		out.slots = e.slots
		out.cursor = e.cursor
	}
	out.slots[out.cursor] = elementEntry{object: object, index: index, value: value}
	out.cursor = (out.cursor + 1) % MaxTrackedElements
	return out
}

// Lookup returns the value of the most recent triple whose object and
// index are both identity-equal to the query, or nil.
func (e *AbstractElements) Lookup(object, index *ssa.Value) *ssa.Value {
	if e == nil {
		return nil
	}
	for k := 1; k <= MaxTrackedElements; k++ {
		s := e.slots[(e.cursor-k+MaxTrackedElements)%MaxTrackedElements]
		if !s.empty() && s.object == object && s.index == index {
			return s.value
		}
	}
	return nil
}

// Kill clears every tracked entry that might alias (object, index): any
// entry is assumed to overlap unless it can be proven disjoint, which is
// only possible when both indices are distinct literal constants.
func (e *AbstractElements) Kill(object, index *ssa.Value) *AbstractElements {
	if e == nil {
		return nil
	}
	out := new(AbstractElements)
	out.cursor = e.cursor
	changed := false
	for i, s := range e.slots {
		if s.empty() {
			continue
		}
		if disjoint(s.object, s.index, object, index) {
			out.slots[i] = s
			continue
		}
		changed = true
	}
	if !changed {
		return e
	}
	return out
}

// disjoint reports whether (o1, i1) is provably disjoint from (o2, i2):
// true only when both indices are distinct literal integer constants,
// regardless of object, since any same-index write could still alias
// through an unrelated object pointer elsewhere in the ring.
func disjoint(o1, i1, o2, i2 *ssa.Value) bool {
	if i1 == i2 {
		return false
	}
	if i1 == nil || i2 == nil {
		return false
	}
	if i1.Op != ssa.OpConst64 || i2.Op != ssa.OpConst64 {
		return false
	}
	return i1.AuxInt != i2.AuxInt
}

// Merge keeps, at each ring position, the triple only if both rings carry
// an identical (object, index, value) there.
func (e *AbstractElements) Merge(o *AbstractElements) *AbstractElements {
	if e == nil || o == nil {
		return nil
	}
	out := new(AbstractElements)
	out.cursor = e.cursor
	any := false
	for i := range e.slots {
		if e.slots[i] == o.slots[i] && !e.slots[i].empty() {
			out.slots[i] = e.slots[i]
			any = true
		}
	}
	if !any {
		return nil
	}
	return out
}

// Equal reports whether e and o hold the same triples at every slot.
func (e *AbstractElements) Equal(o *AbstractElements) bool {
	if e == o {
		return true
	}
	if e == nil || o == nil {
		return false
	}
	return e.slots == o.slots
}

// emptyState is the sentinel "nothing known" AbstractState. It is the
// only AbstractState value interned by pointer identity (spec's
// StateTable lifecycle note).
var emptyState = &AbstractState{}

// AbstractState is the full per-effect-node lattice element: one
// AbstractField slot per tracked field index plus one shared
// AbstractElements ring. A nil fields[i] or nil elements means "unknown"
// (top of the lattice). Value-semantic like its components.
type AbstractState struct {
	fields   [ssa.MaxTrackedFields]*AbstractField
	elements *AbstractElements
}

// AddField records object.field[i] == value. Untracked indices (i < 0)
// are a no-op, returning s unchanged.
func (s *AbstractState) AddField(object *ssa.Value, i int, value *ssa.Value) *AbstractState {
	if i < 0 {
		return s
	}
	out := s.clone()
	out.fields[i] = out.fields[i].Extend(object, value)
	return out
}

// KillField drops any binding for object in field slot i. Untracked
// indices are a no-op.
func (s *AbstractState) KillField(object *ssa.Value, i int) *AbstractState {
	if i < 0 {
		return s
	}
	out := s.clone()
	out.fields[i] = out.fields[i].Kill(object)
	return out
}

// KillFieldForAliasing drops every binding in field slot i — not just
// object's own — and replaces it with a fresh binding of object to value.
// A store can alias any other object tracked in the same slot, so the
// whole slot must be cleared rather than just the stored-to object's own
// entry (spec's KillField_for_aliasing). Untracked indices are a no-op.
func (s *AbstractState) KillFieldForAliasing(object *ssa.Value, i int, value *ssa.Value) *AbstractState {
	if i < 0 {
		return s
	}
	out := s.clone()
	out.fields[i] = (*AbstractField)(nil).Extend(object, value)
	return out
}

// LookupField returns the known value of object's field i, or nil.
func (s *AbstractState) LookupField(object *ssa.Value, i int) *ssa.Value {
	if i < 0 {
		return nil
	}
	return s.fields[i].Lookup(object)
}

// AddElement records object[index] == value.
func (s *AbstractState) AddElement(object, index, value *ssa.Value) *AbstractState {
	out := s.clone()
	out.elements = out.elements.Extend(object, index, value)
	return out
}

// KillElement drops any tracked entry that might alias (object, index).
func (s *AbstractState) KillElement(object, index *ssa.Value) *AbstractState {
	out := s.clone()
	out.elements = out.elements.Kill(object, index)
	return out
}

// LookupElement returns the known value of object[index], or nil.
func (s *AbstractState) LookupElement(object, index *ssa.Value) *ssa.Value {
	return s.elements.Lookup(object, index)
}

// Equal reports whether s and o record exactly the same facts, slot by
// slot, including the elements ring.
func (s *AbstractState) Equal(o *AbstractState) bool {
	if s == o {
		return true
	}
	if s == nil || o == nil {
		return false
	}
	for i := range s.fields {
		if !s.fields[i].Equal(o.fields[i]) {
			return false
		}
	}
	return s.elements.Equal(o.elements)
}

// Merge intersects s and o slot-wise; a slot is absent in the result
// unless both inputs agree on it.
func (s *AbstractState) Merge(o *AbstractState) *AbstractState {
	if s == nil || o == nil {
		return emptyState
	}
	out := &AbstractState{}
	for i := range s.fields {
		if s.fields[i] == nil || o.fields[i] == nil {
			continue
		}
		out.fields[i] = s.fields[i].Merge(o.fields[i])
	}
	if s.elements != nil && o.elements != nil {
		out.elements = s.elements.Merge(o.elements)
	}
	return out
}

// clone copies s into a fresh AbstractState ready for one slot to be
// overwritten, or returns a fresh zero state if s is nil.
func (s *AbstractState) clone() *AbstractState {
	out := &AbstractState{}
	if s != nil {
		out.fields = s.fields
		out.elements = s.elements
	}
	return out
}
