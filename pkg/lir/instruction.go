package lir

// Instruction is one node of the untyped AST (§3). It is a closed union —
// every variant below is the complete set the grammar (§4.1) can produce.
// Depth arguments are *int so the parser can tell "absent" (nil, default
// applies downstream) from "present" even when present-and-zero is legal
// syntax but illegal semantics (DUP 0, rejected by the typechecker, not the
// parser).
type Instruction interface {
	isInstruction()
}

// Block is an ordered instruction sequence; the root AST is a Block.
type Block []Instruction

type Add struct{}

func (Add) isInstruction() {}

// IntOp is the "INT" coercion instruction (named to avoid colliding with
// Go's int type).
type IntOp struct{}

func (IntOp) isInstruction() {}

type Gt struct{}

func (Gt) isInstruction() {}

type Swap struct{}

func (Swap) isInstruction() {}

// Push carries the literal's declared Type and the parsed Value; whether
// the pairing is admissible is a typecheck concern (§4.5), not a parse
// concern.
type Push struct {
	Type  Type
	Value Value
}

func (Push) isInstruction() {}

// Drop n: drop the top N elements (default 1 when N is nil).
type Drop struct {
	N *int
}

func (Drop) isInstruction() {}

// Dup n: duplicate the element at depth N-1 (default 1 when N is nil).
type Dup struct {
	N *int
}

func (Dup) isInstruction() {}

// Dip n Body: protect the top N elements (default 1) and run Body on the
// remainder.
type Dip struct {
	N    *int
	Body Block
}

func (Dip) isInstruction() {}

type If struct {
	Then Block
	Else Block
}

func (If) isInstruction() {}

type Loop struct {
	Body Block
}

func (Loop) isInstruction() {}

// DepthOf returns n's value or the given default when n is absent.
func DepthOf(n *int, def int) int {
	if n == nil {
		return def
	}
	return *n
}
