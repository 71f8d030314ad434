// Package gas implements the monotone computation-budget meter threaded
// through both the typechecker and the interpreter (§4.4). Exhaustion is
// signalled the same way to both callers, which is what lets §8's property 3
// (progress/preservation) hold: a type-checked program's interpretation can
// only diverge from the checked type by running out of gas or overflowing
// Mutez.
package gas

import "fmt"

// milligasPerGas converts the gas/milligas units named in §3 (1 gas = 1000
// milligas).
const milligasPerGas = 1000

// DefaultMilligas is the "sufficient for tests" budget a zero-value-free
// default constructor provides (§4.4).
const DefaultMilligas uint64 = 1_000_000_000

// OutOfGas is returned by Consume when the charge would drop the meter
// below zero. The counter is left unchanged when this is returned — the
// charge never partially applies.
type OutOfGas struct{}

func (OutOfGas) Error() string { return "out of gas" }

// Gas is a monotonically non-increasing milligas counter.
type Gas struct {
	milligas uint64
}

// New constructs a Gas with the given whole-gas budget (converted to
// milligas).
func New(units uint64) *Gas {
	return &Gas{milligas: units * milligasPerGas}
}

// NewMilligas constructs a Gas directly from a milligas budget, for tests
// that need budgets not evenly divisible by 1000 (e.g. the Fibonacci tests'
// exact 456, 864 and 1664 milligas and 1-milligas budgets).
func NewMilligas(milligas uint64) *Gas {
	return &Gas{milligas: milligas}
}

// Default returns a budget generous enough that ordinary test programs
// never exhaust it.
func Default() *Gas {
	return NewMilligas(DefaultMilligas)
}

// Milligas returns the remaining budget.
func (g *Gas) Milligas() uint64 {
	return g.milligas
}

// Consume atomically charges milligas milligas. If the budget is
// insufficient, it is left untouched and OutOfGas is returned.
func (g *Gas) Consume(milligas uint64) error {
	if milligas > g.milligas {
		return OutOfGas{}
	}
	g.milligas -= milligas
	return nil
}

// String renders the remaining budget as "N.MMM" gas, the same format the
// reference test harness prints consumed gas in.
func (g *Gas) String() string {
	return fmt.Sprintf("%d.%03d", g.milligas/milligasPerGas, g.milligas%milligasPerGas)
}
