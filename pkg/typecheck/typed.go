// Package typecheck statically verifies an untyped lir.Block against an
// abstract type stack and produces a typed instruction tree in which every
// overloaded instruction already carries its resolved overload, so
// pkg/interp never re-derives types (§3, §4.5, §9).
package typecheck

import "github.com/lstacklang/lvm/pkg/lir"

// Overload disambiguates an instruction whose behavior depends on its
// static operand types. Add is the only overloaded instruction in this
// language revision; the tag exists so a new overloaded instruction never
// has to touch the interpreter's dispatch beyond adding its own case.
type Overload int

const (
	NatNat Overload = iota
	IntInt
	MutezMutez
)

func (o Overload) String() string {
	switch o {
	case NatNat:
		return "NatNat"
	case IntInt:
		return "IntInt"
	case MutezMutez:
		return "MutezMutez"
	default:
		return "unknown"
	}
}

// Instruction is one node of the typed tree. Closed union mirroring
// lir.Instruction, plus the resolved Overload on Add and fully-resolved
// (never-nil) depth arguments on Drop/Dup/Dip (the parser's optional
// argument has had its default applied).
type Instruction interface {
	isTypedInstruction()
}

// Block is an ordered, typed instruction sequence.
type Block []Instruction

type Add struct {
	Overload Overload
}

func (Add) isTypedInstruction() {}

type IntOp struct{}

func (IntOp) isTypedInstruction() {}

type Gt struct{}

func (Gt) isTypedInstruction() {}

type Swap struct{}

func (Swap) isTypedInstruction() {}

type Push struct {
	Type  lir.Type
	Value lir.Value
}

func (Push) isTypedInstruction() {}

type Drop struct {
	N int
}

func (Drop) isTypedInstruction() {}

type Dup struct {
	N int
}

func (Dup) isTypedInstruction() {}

type Dip struct {
	N    int
	Body Block
}

func (Dip) isTypedInstruction() {}

type If struct {
	Then Block
	Else Block
}

func (If) isTypedInstruction() {}

type Loop struct {
	Body Block
}

func (Loop) isTypedInstruction() {}
