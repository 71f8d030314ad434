package interp

import (
	"math/big"

	"github.com/holiman/uint256"

	"github.com/lstacklang/lvm/pkg/gas"
	"github.com/lstacklang/lvm/pkg/lir"
	"github.com/lstacklang/lvm/pkg/stack"
	"github.com/lstacklang/lvm/pkg/typecheck"
)

// ValueStack is the runtime operand stack, top-of-stack at index 0 (§3,
// §4.3).
type ValueStack = stack.Stack[Value]

// maxMutez is 2^63 - 1, the largest representable Mutez (§3).
const maxMutez uint64 = 1<<63 - 1

// Interpret executes ast against vs, charging g once per executed
// instruction before performing its effect (§4.6). Execution aborts on the
// first error, leaving vs in its pre-step state for that instruction.
func Interpret(ast typecheck.Block, g *gas.Gas, vs *ValueStack) error {
	for _, instr := range ast {
		if err := interpretInstruction(instr, g, vs); err != nil {
			return err
		}
	}
	return nil
}

func interpretInstruction(instr typecheck.Instruction, g *gas.Gas, vs *ValueStack) error {
	switch v := instr.(type) {

	case typecheck.Add:
		if err := g.Consume(gas.InterpretCosts.Add); err != nil {
			return err
		}
		a, err := vs.PopFront()
		if err != nil {
			return InternalInvariantBrokenError{Details: "ADD: stack underflow after successful typecheck"}
		}
		b, err := vs.PopFront()
		if err != nil {
			return InternalInvariantBrokenError{Details: "ADD: stack underflow after successful typecheck"}
		}
		switch v.Overload {
		case typecheck.NatNat:
			an, aok := a.(Nat)
			bn, bok := b.(Nat)
			if !aok || !bok {
				return InternalInvariantBrokenError{Details: "ADD NatNat: operand not Nat"}
			}
			vs.PushFront(Nat{N: new(big.Int).Add(an.N, bn.N)})
		case typecheck.IntInt:
			ai, aok := a.(Int)
			bi, bok := b.(Int)
			if !aok || !bok {
				return InternalInvariantBrokenError{Details: "ADD IntInt: operand not Int"}
			}
			vs.PushFront(Int{N: new(big.Int).Add(ai.N, bi.N)})
		case typecheck.MutezMutez:
			am, aok := a.(Mutez)
			bm, bok := b.(Mutez)
			if !aok || !bok {
				return InternalInvariantBrokenError{Details: "ADD MutezMutez: operand not Mutez"}
			}
			x := new(uint256.Int).SetUint64(am.N)
			y := new(uint256.Int).SetUint64(bm.N)
			var sum uint256.Int
			overflowed := sum.AddOverflow(x, y)
			if overflowed || !sum.IsUint64() || sum.Uint64() > maxMutez {
				return MutezOverflowError{A: am.N, B: bm.N}
			}
			vs.PushFront(Mutez{N: sum.Uint64()})
		default:
			return InternalInvariantBrokenError{Details: "ADD: unknown overload"}
		}
		return nil

	case typecheck.IntOp:
		if err := g.Consume(gas.InterpretCosts.IntOp); err != nil {
			return err
		}
		top, err := vs.PopFront()
		if err != nil {
			return InternalInvariantBrokenError{Details: "INT: stack underflow after successful typecheck"}
		}
		n, ok := top.(Nat)
		if !ok {
			return InternalInvariantBrokenError{Details: "INT: operand not Nat"}
		}
		vs.PushFront(Int{N: new(big.Int).Set(n.N)})
		return nil

	case typecheck.Gt:
		if err := g.Consume(gas.InterpretCosts.Gt); err != nil {
			return err
		}
		top, err := vs.PopFront()
		if err != nil {
			return InternalInvariantBrokenError{Details: "GT: stack underflow after successful typecheck"}
		}
		n, ok := top.(Int)
		if !ok {
			return InternalInvariantBrokenError{Details: "GT: operand not Int"}
		}
		vs.PushFront(Bool(n.N.Sign() > 0))
		return nil

	case typecheck.Swap:
		if err := g.Consume(gas.InterpretCosts.Swap); err != nil {
			return err
		}
		if err := vs.Swap(0, 1); err != nil {
			return InternalInvariantBrokenError{Details: "SWAP: stack underflow after successful typecheck"}
		}
		return nil

	case typecheck.Push:
		if err := g.Consume(gas.InterpretCosts.Push); err != nil {
			return err
		}
		val, err := pushValue(v.Type, v.Value)
		if err != nil {
			return err
		}
		vs.PushFront(val)
		return nil

	case typecheck.Drop:
		if err := g.Consume(gas.InterpretCosts.DropDup(v.N)); err != nil {
			return err
		}
		if _, err := vs.SplitOff(v.N); err != nil {
			return InternalInvariantBrokenError{Details: "DROP: stack underflow after successful typecheck"}
		}
		return nil

	case typecheck.Dup:
		if err := g.Consume(gas.InterpretCosts.DropDup(v.N)); err != nil {
			return err
		}
		elem, err := vs.Get(v.N - 1)
		if err != nil {
			return InternalInvariantBrokenError{Details: "DUP: stack underflow after successful typecheck"}
		}
		vs.PushFront(elem)
		return nil

	case typecheck.Dip:
		if err := g.Consume(gas.InterpretCosts.Dip); err != nil {
			return err
		}
		protected, err := vs.SplitOff(v.N)
		if err != nil {
			return InternalInvariantBrokenError{Details: "DIP: stack underflow after successful typecheck"}
		}
		if err := Interpret(v.Body, g, vs); err != nil {
			protected.Append(vs)
			*vs = *protected
			return err
		}
		protected.Append(vs)
		*vs = *protected
		return nil

	case typecheck.If:
		if err := g.Consume(gas.InterpretCosts.If); err != nil {
			return err
		}
		top, err := vs.PopFront()
		if err != nil {
			return InternalInvariantBrokenError{Details: "IF: stack underflow after successful typecheck"}
		}
		b, ok := top.(Bool)
		if !ok {
			return InternalInvariantBrokenError{Details: "IF: operand not Bool"}
		}
		if b {
			return Interpret(v.Then, g, vs)
		}
		return Interpret(v.Else, g, vs)

	case typecheck.Loop:
		top, err := vs.PopFront()
		if err != nil {
			return InternalInvariantBrokenError{Details: "LOOP: stack underflow after successful typecheck"}
		}
		b, ok := top.(Bool)
		if !ok {
			return InternalInvariantBrokenError{Details: "LOOP: operand not Bool"}
		}
		for b {
			if err := g.Consume(gas.InterpretCosts.LoopStep); err != nil {
				vs.PushFront(b)
				return err
			}
			if err := Interpret(v.Body, g, vs); err != nil {
				return err
			}
			newTop, err := vs.PopFront()
			if err != nil {
				return InternalInvariantBrokenError{Details: "LOOP: body left stack without a Bool on top"}
			}
			nb, ok := newTop.(Bool)
			if !ok {
				return InternalInvariantBrokenError{Details: "LOOP: body left non-Bool on top"}
			}
			b = nb
		}
		return nil

	default:
		return InternalInvariantBrokenError{Details: "unrecognized typed instruction"}
	}
}

func pushValue(t lir.Type, v lir.Value) (Value, error) {
	switch t {
	case lir.Nat:
		n, ok := v.(lir.Number)
		if !ok {
			return nil, InternalInvariantBrokenError{Details: "PUSH Nat: literal not Number after successful typecheck"}
		}
		return Nat{N: new(big.Int).Set(n.N)}, nil
	case lir.Int:
		n, ok := v.(lir.Number)
		if !ok {
			return nil, InternalInvariantBrokenError{Details: "PUSH Int: literal not Number after successful typecheck"}
		}
		return Int{N: new(big.Int).Set(n.N)}, nil
	case lir.Mutez:
		n, ok := v.(lir.Number)
		if !ok {
			return nil, InternalInvariantBrokenError{Details: "PUSH Mutez: literal not Number after successful typecheck"}
		}
		return Mutez{N: n.N.Uint64()}, nil
	case lir.Bool:
		b, ok := v.(lir.Boolean)
		if !ok {
			return nil, InternalInvariantBrokenError{Details: "PUSH Bool: literal not Boolean after successful typecheck"}
		}
		return Bool(bool(b)), nil
	default:
		return nil, InternalInvariantBrokenError{Details: "PUSH: unknown type"}
	}
}
