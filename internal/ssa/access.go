package ssa

import (
	"github.com/emberlang/ember/internal/types"
)

// MachineKind is a coarse machine representation tag for a memory slot,
// analogous to a backend's MachineType but reduced to what load
// elimination needs to distinguish: whether two accesses could ever
// read/write the same bit pattern.
type MachineKind int

const (
	MachineInvalid MachineKind = iota
	MachineWord                // 64-bit integer or pointer-sized word
	MachineFloat64
	MachineTagged // a Ref (GC-tracked) value
)

// WriteBarrierKind describes what write barrier a store needs. It is
// metadata for codegen only — deliberately excluded from FieldAccess and
// ElementAccess equality (spec.md §3, §4.1).
type WriteBarrierKind int

const (
	NoWriteBarrier WriteBarrierKind = iota
	FullWriteBarrier
	AssertNoWriteBarrier
)

// wordSize is the slot width used to lay out tracked fields; it matches
// the host's pointer-sized representation for both Word and Tagged kinds.
const wordSize = 8

// MaxTrackedFields bounds the number of distinct field slots an
// AbstractState can track (spec.md §3 invariant 3, §9 "kMaxTrackedFields").
const MaxTrackedFields = 32

// FieldAccess names a fixed-offset field slot of an object.
//
// Equality and Hash consider only (BaseIsTagged, Offset, Machine) —
// WriteBarrier, Type, and Name are metadata that must never affect
// whether two accesses name the same tracked slot (spec.md §4.1): letting
// write-barrier kind or a debug name participate in equality would make
// two field accesses that are otherwise identical at runtime into
// opaque-to-each-other slots, defeating load elimination before it gets
// a chance to find a hit.
type FieldAccess struct {
	BaseIsTagged bool
	Offset       int64
	Machine      MachineKind
	Type         types.Type
	WriteBarrier WriteBarrierKind
	Name         string // optional, diagnostics only
}

// Equal reports whether a and b name the same tracked field slot.
func (a FieldAccess) Equal(b FieldAccess) bool {
	return a.BaseIsTagged == b.BaseIsTagged &&
		a.Offset == b.Offset &&
		a.Machine == b.Machine
}

// Hash returns a hash consistent with Equal: accesses with Equal == true
// always hash the same.
func (a FieldAccess) Hash() uint64 {
	h := uint64(a.Offset) * 1099511628211
	h ^= uint64(a.Machine) << 1
	if a.BaseIsTagged {
		h ^= 1
	}
	return h
}

// FieldIndexOf maps a to a dense index in [0, MaxTrackedFields), or -1 if
// a's offset falls outside the tracked inline-slot range. Pure and total
// (spec.md §4.1).
//
// Ember lays out the first MaxTrackedFields*wordSize bytes of any tagged
// object as trackable inline slots; anything beyond that (e.g. a field in
// an over-sized struct) is untracked and treated as unknown, matching
// the original's "typically aligned object header/inline-property slots"
// rationale.
func FieldIndexOf(a FieldAccess) int {
	if a.Offset < 0 || a.Offset%wordSize != 0 {
		return -1
	}
	i := int(a.Offset / wordSize)
	if i < 0 || i >= MaxTrackedFields {
		return -1
	}
	return i
}

// ElementAccess names an indexed element slot of an array-like object.
//
// Equality and Hash consider only (BaseIsTagged, HeaderSize, Machine).
type ElementAccess struct {
	BaseIsTagged bool
	HeaderSize   int64
	Machine      MachineKind
	Type         types.Type
	WriteBarrier WriteBarrierKind
}

// Equal reports whether a and b name the same tracked element class.
func (a ElementAccess) Equal(b ElementAccess) bool {
	return a.BaseIsTagged == b.BaseIsTagged &&
		a.HeaderSize == b.HeaderSize &&
		a.Machine == b.Machine
}

// Hash returns a hash consistent with Equal.
func (a ElementAccess) Hash() uint64 {
	h := uint64(a.HeaderSize) * 1099511628211
	h ^= uint64(a.Machine) << 1
	if a.BaseIsTagged {
		h ^= 1
	}
	return h
}
