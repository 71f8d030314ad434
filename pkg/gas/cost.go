package gas

// Costs is the fixed, per-instruction milligas price list (§6.2). Both the
// typechecker and the interpreter charge from the same Gas meter using
// their own Costs table — they differ only in Push (a literal is cheaper to
// push at run time than to validate against its declared Type) and in how
// Loop's per-iteration step is applied (typecheck visits a loop body once,
// statically; interpretation charges LoopStep once per iteration actually
// run — see pkg/typecheck and pkg/interp).
type Costs struct {
	Add             uint64
	IntOp           uint64
	Gt              uint64
	Swap            uint64
	DropDupBase     uint64
	DropDupPerDepth uint64
	Push            uint64
	Dip             uint64
	If              uint64
	LoopStep        uint64
}

// DropDup returns the cost of a Drop/Dup with depth argument n.
func (c Costs) DropDup(n int) uint64 {
	return c.DropDupBase + c.DropDupPerDepth*uint64(n)
}

// TypecheckCosts is charged by pkg/typecheck.
var TypecheckCosts = Costs{
	Add: 20, IntOp: 10, Gt: 10, Swap: 10,
	DropDupBase: 10, DropDupPerDepth: 2,
	Push: 30, Dip: 20, If: 30, LoopStep: 30,
}

// InterpretCosts is charged by pkg/interp.
var InterpretCosts = Costs{
	Add: 20, IntOp: 10, Gt: 10, Swap: 10,
	DropDupBase: 10, DropDupPerDepth: 2,
	Push: 20, Dip: 20, If: 30, LoopStep: 30,
}
