// Package ssa implements the SSA (Static Single Assignment) intermediate
// representation for the Ember compiler.
package ssa

// Op represents an SSA operation code.
type Op int

const (
	OpInvalid Op = iota

	// Constants
	OpConst64     // integer constant; AuxInt = value
	OpConstFloat  // float constant; AuxFloat = value
	OpConstBool   // bool constant; AuxInt = 0 or 1
	OpConstString // string constant; Aux = string value
	OpConstNil    // nil constant

	// Integer arithmetic
	OpAdd64 // int + int
	OpSub64 // int - int
	OpMul64 // int * int
	OpDiv64 // int / int
	OpMod64 // int % int
	OpNeg64 // -int (unary)

	// Float arithmetic
	OpAddF64 // float + float
	OpSubF64 // float - float
	OpMulF64 // float * float
	OpDivF64 // float / float
	OpNegF64 // -float (unary)

	// Integer comparison
	OpEq64  // int == int
	OpNeq64 // int != int
	OpLt64  // int < int
	OpLeq64 // int <= int
	OpGt64  // int > int
	OpGeq64 // int >= int

	// Float comparison
	OpEqF64  // float == float
	OpNeqF64 // float != float
	OpLtF64  // float < float
	OpLeqF64 // float <= float
	OpGtF64  // float > float
	OpGeqF64 // float >= float

	// Pointer comparison
	OpEqPtr  // ptr == ptr (or ref == ref)
	OpNeqPtr // ptr != ptr (or ref != ref)

	// Boolean
	OpNot     // !bool
	OpAndBool // bool && bool (already short-circuit lowered)
	OpOrBool  // bool || bool (already short-circuit lowered)

	// Memory
	OpAlloca // stack allocation; Type = *T; Aux = optional name
	OpLoad   // load from pointer; Args[0] = ptr
	OpStore  // store to pointer; Args[0] = ptr, Args[1] = val; void
	OpZero   // zero-fill memory; Args[0] = ptr; AuxInt = size; void

	// Struct/Array access
	OpStructFieldPtr // &s.field; Args[0] = struct ptr; AuxInt = field index
	OpArrayIndexPtr  // &a[i]; Args[0] = array ptr, Args[1] = index

	// Conversion
	OpIntToFloat // int → float
	OpFloatToInt // float → int

	// Calls
	OpStaticCall // direct function call; Aux = *types.FuncObj; Args = arguments
	OpCall       // indirect call; Args[0] = func ptr, Args[1:] = arguments

	// Heap allocation
	OpNewAlloc // new(T) → ref T; calls rt_alloc; Aux = TypeDesc info

	// SSA-specific
	OpPhi  // φ function; Args = one per predecessor
	OpCopy // value copy (identity)
	OpArg  // function argument; AuxInt = param index; Aux = param name

	// Address
	OpAddr // address of local (&x → ptr to alloca); Args[0] = alloca

	// Builtins
	OpPrintln // println(...); Args = values to print; void
	OpPanic   // panic(msg); Args[0] = string; void

	// Nil check
	OpNilCheck // nil check; Args[0] = pointer; panics if nil

	// String operations
	OpStringLen // string length; Args[0] = string
	OpStringPtr // string data pointer; Args[0] = string

	// Effect-chain memory ops (heap/ref objects only; see internal/loadelim).
	// Stack locals keep using Alloca/Load/Store/StructFieldPtr/ArrayIndexPtr
	// above and are left to Mem2Reg; these opcodes model the heap side of
	// the memory model that load elimination reasons about.
	OpStart                  // effect-chain root; one per Func, in the entry block
	OpLoadField              // load object field; Args[0] = object; Aux = FieldAccess
	OpStoreField             // store object field; Args[0] = object, Args[1] = value; Aux = FieldAccess; void
	OpLoadElement            // load array element; Args[0] = object, Args[1] = index; Aux = ElementAccess
	OpStoreElement           // store array element; Args[0] = object, Args[1] = index, Args[2] = value; Aux = ElementAccess; void
	OpCheckMaps              // assert object's map is one of Args[1:]; Args[0] = object; void
	OpTransitionElementsKind // transition object's backing store; Args[0] = object; void
	OpEffectPhi              // effect-chain φ; Args = one effect predecessor per block predecessor; void

	opCount // sentinel; must be last
)

// OpInfo holds metadata about an SSA operation.
type OpInfo struct {
	Name      string // human-readable name
	IsPure    bool   // true if the op has no side effects and can be CSE'd/DCE'd
	IsVoid    bool   // true if the op produces no value (Store, Println, etc.)
	HasEffect bool   // true if the op carries a Value.Effect edge (participates in the effect chain)
	NoWrite   bool   // true if the op, despite HasEffect, cannot write any tracked field/element (spec's kNoWrite)
}

// opInfoTable maps each Op to its OpInfo.
// Index by Op value.
var opInfoTable = [opCount]OpInfo{
	OpInvalid: {Name: "Invalid"},

	// Constants — all pure
	OpConst64:     {Name: "Const64", IsPure: true},
	OpConstFloat:  {Name: "ConstFloat", IsPure: true},
	OpConstBool:   {Name: "ConstBool", IsPure: true},
	OpConstString: {Name: "ConstString", IsPure: true},
	OpConstNil:    {Name: "ConstNil", IsPure: true},

	// Integer arithmetic — all pure
	OpAdd64: {Name: "Add64", IsPure: true},
	OpSub64: {Name: "Sub64", IsPure: true},
	OpMul64: {Name: "Mul64", IsPure: true},
	OpDiv64: {Name: "Div64", IsPure: true},
	OpMod64: {Name: "Mod64", IsPure: true},
	OpNeg64: {Name: "Neg64", IsPure: true},

	// Float arithmetic — all pure
	OpAddF64: {Name: "AddF64", IsPure: true},
	OpSubF64: {Name: "SubF64", IsPure: true},
	OpMulF64: {Name: "MulF64", IsPure: true},
	OpDivF64: {Name: "DivF64", IsPure: true},
	OpNegF64: {Name: "NegF64", IsPure: true},

	// Integer comparison — all pure
	OpEq64:  {Name: "Eq64", IsPure: true},
	OpNeq64: {Name: "Neq64", IsPure: true},
	OpLt64:  {Name: "Lt64", IsPure: true},
	OpLeq64: {Name: "Leq64", IsPure: true},
	OpGt64:  {Name: "Gt64", IsPure: true},
	OpGeq64: {Name: "Geq64", IsPure: true},

	// Float comparison — all pure
	OpEqF64:  {Name: "EqF64", IsPure: true},
	OpNeqF64: {Name: "NeqF64", IsPure: true},
	OpLtF64:  {Name: "LtF64", IsPure: true},
	OpLeqF64: {Name: "LeqF64", IsPure: true},
	OpGtF64:  {Name: "GtF64", IsPure: true},
	OpGeqF64: {Name: "GeqF64", IsPure: true},

	// Pointer comparison — pure
	OpEqPtr:  {Name: "EqPtr", IsPure: true},
	OpNeqPtr: {Name: "NeqPtr", IsPure: true},

	// Boolean — pure
	OpNot:     {Name: "Not", IsPure: true},
	OpAndBool: {Name: "AndBool", IsPure: true},
	OpOrBool:  {Name: "OrBool", IsPure: true},

	// Memory — NOT pure (side effects)
	OpAlloca: {Name: "Alloca"},
	OpLoad:   {Name: "Load"},
	OpStore:  {Name: "Store", IsVoid: true},
	OpZero:   {Name: "Zero", IsVoid: true},

	// Struct/Array — pure (just pointer arithmetic)
	OpStructFieldPtr: {Name: "StructFieldPtr", IsPure: true},
	OpArrayIndexPtr:  {Name: "ArrayIndexPtr", IsPure: true},

	// Conversion — pure
	OpIntToFloat: {Name: "IntToFloat", IsPure: true},
	OpFloatToInt: {Name: "FloatToInt", IsPure: true},

	// Calls — NOT pure (side effects), but the builder does not thread
	// these through the effect chain (only the dedicated memory ops do),
	// so they are not marked HasEffect: true — doing so without a builder
	// that sets their Effect edge would make Verify reject every function
	// that calls anything.
	OpStaticCall: {Name: "StaticCall"},
	OpCall:       {Name: "Call"},

	// Heap allocation — NOT pure, but not part of the effect chain either,
	// for the same reason as calls above.
	OpNewAlloc: {Name: "NewAlloc", NoWrite: true},

	// SSA — Phi and Copy are pure; Arg is pure
	OpPhi:  {Name: "Phi", IsPure: true},
	OpCopy: {Name: "Copy", IsPure: true},
	OpArg:  {Name: "Arg", IsPure: true},

	// Address — pure (just computes pointer)
	OpAddr: {Name: "Addr", IsPure: true},

	// Builtins — NOT pure (side effects)
	OpPrintln: {Name: "Println", IsVoid: true},
	OpPanic:   {Name: "Panic", IsVoid: true},

	// Nil check — NOT pure (may panic)
	OpNilCheck: {Name: "NilCheck", IsVoid: true},

	// String — pure
	OpStringLen: {Name: "StringLen", IsPure: true},
	OpStringPtr: {Name: "StringPtr", IsPure: true},

	// Effect-chain memory ops.
	OpStart:                  {Name: "Start", HasEffect: true, NoWrite: true},
	OpLoadField:              {Name: "LoadField", HasEffect: true, NoWrite: true},
	OpStoreField:             {Name: "StoreField", IsVoid: true, HasEffect: true},
	OpLoadElement:            {Name: "LoadElement", HasEffect: true, NoWrite: true},
	OpStoreElement:           {Name: "StoreElement", IsVoid: true, HasEffect: true},
	OpCheckMaps:              {Name: "CheckMaps", IsVoid: true, HasEffect: true, NoWrite: true},
	OpTransitionElementsKind: {Name: "TransitionElementsKind", IsVoid: true, HasEffect: true},
	OpEffectPhi:              {Name: "EffectPhi", IsVoid: true, HasEffect: true, NoWrite: true},
}

// String returns the human-readable name of the op.
func (o Op) String() string {
	if o >= 0 && int(o) < len(opInfoTable) {
		return opInfoTable[o].Name
	}
	return "unknown"
}

// Info returns the OpInfo for this op.
func (o Op) Info() OpInfo {
	if o >= 0 && int(o) < len(opInfoTable) {
		return opInfoTable[o]
	}
	return OpInfo{Name: "unknown"}
}

// IsPure returns true if this op has no side effects.
func (o Op) IsPure() bool {
	if o >= 0 && int(o) < len(opInfoTable) {
		return opInfoTable[o].IsPure
	}
	return false
}

// IsVoid returns true if this op produces no value.
func (o Op) IsVoid() bool {
	if o >= 0 && int(o) < len(opInfoTable) {
		return opInfoTable[o].IsVoid
	}
	return false
}

// HasEffect returns true if this op carries an incoming Value.Effect edge.
func (o Op) HasEffect() bool {
	if o >= 0 && int(o) < len(opInfoTable) {
		return opInfoTable[o].HasEffect
	}
	return false
}

// NoWrite returns true if this op, though effectful, is known to never
// write a tracked field or element (spec's kNoWrite operator property).
func (o Op) NoWrite() bool {
	if o >= 0 && int(o) < len(opInfoTable) {
		return opInfoTable[o].NoWrite
	}
	return false
}
