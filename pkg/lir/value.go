package lir

import "math/big"

// Value is an untyped literal as parsed — a Number or a Boolean. It is
// checked against a declared Type on PUSH (pkg/typecheck); the typechecker
// never mutates a Value, it only validates it and passes it on unchanged.
// pkg/interp turns the Type/Value pair into a runtime interp.Value when the
// PUSH executes.
type Value interface {
	isValue()
	String() string
}

// Number is a literal signed, arbitrary-precision integer. Nat/Int/Mutez are
// all unlimited or near-unlimited in magnitude (§3), so the untyped literal
// itself is carried as a big.Int rather than a machine word — narrowing
// happens only once the typechecker has picked a concrete Type for it.
type Number struct {
	N *big.Int
}

func NewNumber(n int64) Number { return Number{N: big.NewInt(n)} }

func (Number) isValue() {}

func (n Number) String() string { return n.N.String() }

// Boolean is a literal True/False token.
type Boolean bool

func (Boolean) isValue() {}

func (b Boolean) String() string {
	if b {
		return "True"
	}
	return "False"
}
