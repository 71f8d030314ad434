package typecheck

import (
	"math/big"

	"github.com/lstacklang/lvm/pkg/gas"
	"github.com/lstacklang/lvm/pkg/lir"
	"github.com/lstacklang/lvm/pkg/stack"
)

// TypeStack is the compile-time operand stack, top-of-stack at index 0
// (§3, §4.3).
type TypeStack = stack.Stack[lir.Type]

// maxMutez is 2^63 - 1, the largest admissible Mutez literal (§3, §4.5).
var maxMutez = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 63), big.NewInt(1))

// Typecheck walks ast sequentially against ts, charging g per instruction
// before inspecting its operands (so an exhausted meter can never be
// disguised by an early return), and produces the typed tree.
func Typecheck(ast lir.Block, g *gas.Gas, ts *TypeStack) (Block, error) {
	return typecheckBlock(ast, g, ts)
}

func typecheckBlock(block lir.Block, g *gas.Gas, ts *TypeStack) (Block, error) {
	out := make(Block, 0, len(block))
	for _, instr := range block {
		typed, err := typecheckInstruction(instr, g, ts)
		if err != nil {
			return nil, err
		}
		out = append(out, typed)
	}
	return out, nil
}

func typecheckInstruction(instr lir.Instruction, g *gas.Gas, ts *TypeStack) (Instruction, error) {
	switch v := instr.(type) {

	case lir.Add:
		if err := g.Consume(gas.TypecheckCosts.Add); err != nil {
			return nil, err
		}
		if ts.Len() < 2 {
			return nil, StackTooShortError{Expected: 2, Got: ts.Len()}
		}
		a, _ := ts.Get(0)
		b, _ := ts.Get(1)
		var overload Overload
		switch {
		case a == lir.Nat && b == lir.Nat:
			overload = NatNat
		case a == lir.Int && b == lir.Int:
			overload = IntInt
		case a == lir.Mutez && b == lir.Mutez:
			overload = MutezMutez
		default:
			return nil, OperandTypeError{Instruction: "ADD", Expected: "(Nat,Nat) or (Int,Int) or (Mutez,Mutez)", Got: []lir.Type{a, b}}
		}
		ts.PopFront()
		return Add{Overload: overload}, nil

	case lir.IntOp:
		if err := g.Consume(gas.TypecheckCosts.IntOp); err != nil {
			return nil, err
		}
		if ts.Len() < 1 {
			return nil, StackTooShortError{Expected: 1, Got: 0}
		}
		top, _ := ts.Get(0)
		if top != lir.Nat {
			return nil, OperandTypeError{Instruction: "INT", Expected: "Nat", Got: []lir.Type{top}}
		}
		ts.PopFront()
		ts.PushFront(lir.Int)
		return IntOp{}, nil

	case lir.Gt:
		if err := g.Consume(gas.TypecheckCosts.Gt); err != nil {
			return nil, err
		}
		if ts.Len() < 1 {
			return nil, StackTooShortError{Expected: 1, Got: 0}
		}
		top, _ := ts.Get(0)
		if top != lir.Int {
			return nil, OperandTypeError{Instruction: "GT", Expected: "Int", Got: []lir.Type{top}}
		}
		ts.PopFront()
		ts.PushFront(lir.Bool)
		return Gt{}, nil

	case lir.Swap:
		if err := g.Consume(gas.TypecheckCosts.Swap); err != nil {
			return nil, err
		}
		if ts.Len() < 2 {
			return nil, StackTooShortError{Expected: 2, Got: ts.Len()}
		}
		ts.Swap(0, 1)
		return Swap{}, nil

	case lir.Push:
		if err := g.Consume(gas.TypecheckCosts.Push); err != nil {
			return nil, err
		}
		if !pushAdmissible(v.Type, v.Value) {
			return nil, PushLiteralMismatchError{Declared: v.Type, Literal: v.Value}
		}
		ts.PushFront(v.Type)
		return Push{Type: v.Type, Value: v.Value}, nil

	case lir.Drop:
		n := lir.DepthOf(v.N, 1)
		if err := g.Consume(gas.TypecheckCosts.DropDup(n)); err != nil {
			return nil, err
		}
		if ts.Len() < n {
			return nil, StackTooShortError{Expected: n, Got: ts.Len()}
		}
		if _, err := ts.SplitOff(n); err != nil {
			return nil, StackTooShortError{Expected: n, Got: ts.Len()}
		}
		return Drop{N: n}, nil

	case lir.Dup:
		n := lir.DepthOf(v.N, 1)
		if err := g.Consume(gas.TypecheckCosts.DropDup(n)); err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, InvalidArgumentError{Instruction: "DUP", Reason: "depth must be at least 1"}
		}
		if ts.Len() < n {
			return nil, StackTooShortError{Expected: n, Got: ts.Len()}
		}
		elem, _ := ts.Get(n - 1)
		ts.PushFront(elem)
		return Dup{N: n}, nil

	case lir.Dip:
		n := lir.DepthOf(v.N, 1)
		if err := g.Consume(gas.TypecheckCosts.Dip); err != nil {
			return nil, err
		}
		if ts.Len() < n {
			return nil, StackTooShortError{Expected: n, Got: ts.Len()}
		}
		protected, err := ts.SplitOff(n)
		if err != nil {
			return nil, StackTooShortError{Expected: n, Got: ts.Len()}
		}
		typedBody, err := typecheckBlock(v.Body, g, ts)
		if err != nil {
			return nil, err
		}
		protected.Append(ts)
		*ts = *protected
		return Dip{N: n, Body: typedBody}, nil

	case lir.If:
		if err := g.Consume(gas.TypecheckCosts.If); err != nil {
			return nil, err
		}
		if ts.Len() < 1 {
			return nil, StackTooShortError{Expected: 1, Got: 0}
		}
		top, _ := ts.Get(0)
		if top != lir.Bool {
			return nil, OperandTypeError{Instruction: "IF", Expected: "Bool", Got: []lir.Type{top}}
		}
		tail := ts.Clone()
		tail.PopFront()
		tThen := tail.Clone()
		tElse := tail.Clone()
		typedThen, err := typecheckBlock(v.Then, g, tThen)
		if err != nil {
			return nil, err
		}
		typedElse, err := typecheckBlock(v.Else, g, tElse)
		if err != nil {
			return nil, err
		}
		if !equalTypeStacks(tThen.AsSlice(), tElse.AsSlice()) {
			return nil, StacksNotEqualError{Left: tThen.AsSlice(), Right: tElse.AsSlice()}
		}
		*ts = *tThen
		return If{Then: typedThen, Else: typedElse}, nil

	case lir.Loop:
		if err := g.Consume(gas.TypecheckCosts.LoopStep); err != nil {
			return nil, err
		}
		if ts.Len() < 1 {
			return nil, StackTooShortError{Expected: 1, Got: 0}
		}
		top, _ := ts.Get(0)
		if top != lir.Bool {
			return nil, OperandTypeError{Instruction: "LOOP", Expected: "Bool", Got: []lir.Type{top}}
		}
		preTail := ts.Clone()
		preTail.PopFront()
		live := preTail.Clone()
		typedBody, err := typecheckBlock(v.Body, g, live)
		if err != nil {
			return nil, err
		}
		if live.Len() < 1 {
			return nil, StackTooShortError{Expected: 1, Got: live.Len()}
		}
		liveTop, _ := live.Get(0)
		if liveTop != lir.Bool {
			return nil, OperandTypeError{Instruction: "LOOP body result", Expected: "Bool", Got: []lir.Type{liveTop}}
		}
		live.PopFront()
		if !equalTypeStacks(preTail.AsSlice(), live.AsSlice()) {
			return nil, StacksNotEqualError{Left: preTail.AsSlice(), Right: live.AsSlice()}
		}
		ts.PopFront()
		return Loop{Body: typedBody}, nil

	default:
		return nil, InvalidArgumentError{Instruction: "unknown", Reason: "unrecognized instruction node"}
	}
}

// pushAdmissible implements §4.5's literal/type compatibility table.
func pushAdmissible(t lir.Type, v lir.Value) bool {
	switch t {
	case lir.Nat:
		n, ok := v.(lir.Number)
		return ok && n.N.Sign() >= 0
	case lir.Int:
		_, ok := v.(lir.Number)
		return ok
	case lir.Mutez:
		n, ok := v.(lir.Number)
		return ok && n.N.Sign() >= 0 && n.N.Cmp(maxMutez) <= 0
	case lir.Bool:
		_, ok := v.(lir.Boolean)
		return ok
	default:
		return false
	}
}
