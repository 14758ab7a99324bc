package ssa

import (
	"github.com/emberlang/ember/internal/syntax"
	"github.com/emberlang/ember/internal/types"
)

// Func represents an SSA function.
// It contains a control flow graph of Blocks, each containing Values.
type Func struct {
	// Name is the function name.
	Name string

	// Sig is the function signature from the type checker.
	Sig *types.Func

	// Blocks is the list of basic blocks. Blocks[0] is always the entry block.
	Blocks []*Block

	// Entry is the entry block (same as Blocks[0]).
	Entry *Block

	// Start is the effect-chain root for this function (spec.md §4.4).
	Start *Value

	// nextValueID is the next available value ID.
	nextValueID ID

	// nextBlockID is the next available block ID.
	nextBlockID ID
}

// NewFunc creates a new SSA function with the given name and signature.
// An entry block is automatically created, along with the Start value
// that roots the function's effect chain (spec.md §4.4 "Start").
func NewFunc(name string, sig *types.Func) *Func {
	f := &Func{
		Name: name,
		Sig:  sig,
	}
	// Create entry block.
	entry := f.NewBlock(BlockPlain)
	f.Entry = entry
	f.Start = f.NewValue(entry, OpStart, nil)
	return f
}

// NewBlock creates a new basic block with the given kind and appends it to the function.
func (f *Func) NewBlock(kind BlockKind) *Block {
	b := &Block{
		ID:   f.nextBlockID,
		Kind: kind,
		Func: f,
	}
	f.nextBlockID++
	f.Blocks = append(f.Blocks, b)
	return b
}

// NewValue creates a new Value in the given block.
func (f *Func) NewValue(b *Block, op Op, typ types.Type, args ...*Value) *Value {
	v := &Value{
		ID:    f.nextValueID,
		Op:    op,
		Type:  typ,
		Block: b,
	}
	f.nextValueID++
	for _, arg := range args {
		v.AddArg(arg)
	}
	b.Values = append(b.Values, v)
	return v
}

// NewValuePos creates a new Value with source position in the given block.
func (f *Func) NewValuePos(b *Block, op Op, typ types.Type, pos syntax.Pos, args ...*Value) *Value {
	v := f.NewValue(b, op, typ, args...)
	v.Pos = pos
	return v
}

// NumBlocks returns the number of blocks in the function.
func (f *Func) NumBlocks() int { return len(f.Blocks) }

// NumValues returns the total number of values across all blocks.
func (f *Func) NumValues() int {
	n := 0
	for _, b := range f.Blocks {
		n += len(b.Values)
	}
	return n
}

// NewValueAtFront creates a new Value and inserts it at the front of b's
// value list, ahead of any existing values. Used for phi placement, where
// the phi must precede every other value in its block.
func (f *Func) NewValueAtFront(b *Block, op Op, typ types.Type, args ...*Value) *Value {
	v := &Value{
		ID:    f.nextValueID,
		Op:    op,
		Type:  typ,
		Block: b,
	}
	f.nextValueID++
	for _, arg := range args {
		v.AddArg(arg)
	}
	b.Values = append([]*Value{v}, b.Values...)
	return v
}

// NewEffectValue creates a new Value in the given block carrying an
// incoming effect-chain edge, for opcodes where Op.HasEffect() is true.
func (f *Func) NewEffectValue(b *Block, op Op, typ types.Type, effect *Value, args ...*Value) *Value {
	v := f.NewValue(b, op, typ, args...)
	v.SetEffect(effect)
	return v
}

// ReplaceUses redirects every reference to old — as a value argument, a
// block control, or an effect edge — to new, keeping Uses counts correct.
// It does not remove old from its block; callers do that once old is
// confirmed dead (see passes.removeDead's pattern in mem2reg.go).
func (f *Func) ReplaceUses(old, new *Value) {
	if old == new {
		return
	}
	for _, b := range f.Blocks {
		for _, v := range b.Values {
			for i, arg := range v.Args {
				if arg == old {
					v.ReplaceArg(i, new)
				}
			}
			if v.Effect == old {
				v.SetEffect(new)
			}
		}
		for i, c := range b.Controls {
			if c == old {
				old.Uses--
				b.Controls[i] = new
				if new != nil {
					new.Uses++
				}
			}
		}
	}
}

// EffectUsers returns every value whose effect-chain input is v: either
// v.Effect == n for ordinary effectful ops, or n appears among an
// EffectPhi's Args.
func (f *Func) EffectUsers(n *Value) []*Value {
	var users []*Value
	for _, b := range f.Blocks {
		for _, v := range b.Values {
			if v.Effect == n {
				users = append(users, v)
				continue
			}
			if v.Op == OpEffectPhi {
				for _, a := range v.Args {
					if a == n {
						users = append(users, v)
						break
					}
				}
			}
		}
	}
	return users
}

// Kill removes a dead value from its block and decrements the use counts
// of its args and effect input. The value must have Uses == 0.
func (f *Func) Kill(v *Value) {
	b := v.Block
	for i, x := range b.Values {
		if x == v {
			b.Values = append(b.Values[:i], b.Values[i+1:]...)
			break
		}
	}
	for _, arg := range v.Args {
		arg.Uses--
	}
	if v.Effect != nil {
		v.Effect.Uses--
	}
}
