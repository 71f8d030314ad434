// Package interp executes a pkg/typecheck.Block against a runtime value
// stack and a gas meter (§3 "TypedValue", §4.6). Because the tree has
// already been type-checked, value-level type mismatches are impossible in
// a correct typechecker/interpreter pair; where the interpreter would have
// to assume a type it cannot re-derive, a violated assumption surfaces as
// InternalInvariantBrokenError rather than a panic (§4.6, §7).
package interp

import "math/big"

// Value is the runtime tagged union mirroring lir.Type: Nat, Int, Bool,
// Mutez (§3).
type Value interface {
	isValue()
	String() string
	Equal(other Value) bool
}

// Nat is a non-negative, arbitrary-precision integer.
type Nat struct{ N *big.Int }

func (Nat) isValue()      {}
func (n Nat) String() string { return n.N.String() }
func (n Nat) Equal(other Value) bool {
	o, ok := other.(Nat)
	return ok && n.N.Cmp(o.N) == 0
}

// Int is a signed, arbitrary-precision integer.
type Int struct{ N *big.Int }

func (Int) isValue()      {}
func (i Int) String() string { return i.N.String() }
func (i Int) Equal(other Value) bool {
	o, ok := other.(Int)
	return ok && i.N.Cmp(o.N) == 0
}

// Bool is a boolean value.
type Bool bool

func (Bool) isValue() {}
func (b Bool) String() string {
	if b {
		return "True"
	}
	return "False"
}
func (b Bool) Equal(other Value) bool {
	o, ok := other.(Bool)
	return ok && b == o
}

// Mutez is a non-negative currency amount, bounded to [0, 2^63-1] (§3).
type Mutez struct{ N uint64 }

func (Mutez) isValue()      {}
func (m Mutez) String() string { return big.NewInt(0).SetUint64(m.N).String() }
func (m Mutez) Equal(other Value) bool {
	o, ok := other.(Mutez)
	return ok && m.N == o.N
}
