package typecheck

import (
	"fmt"

	"github.com/lstacklang/lvm/pkg/lir"
)

// StackTooShortError means an instruction needed at least Expected elements
// but the stack only had Got.
type StackTooShortError struct {
	Expected int
	Got      int
}

func (e StackTooShortError) Error() string {
	return fmt.Sprintf("stack too short: expected %d, got %d", e.Expected, e.Got)
}

// StacksNotEqualError is raised when an If's two branches, or a Loop's
// body, leave type stacks that are not structurally equal (§4.5).
type StacksNotEqualError struct {
	Left  []lir.Type
	Right []lir.Type
}

func (e StacksNotEqualError) Error() string {
	return fmt.Sprintf("stacks not equal: %v vs %v", e.Left, e.Right)
}

// InvalidArgumentError flags a syntactically legal but semantically
// rejected argument, e.g. DUP 0.
type InvalidArgumentError struct {
	Instruction string
	Reason      string
}

func (e InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument to %s: %s", e.Instruction, e.Reason)
}

// PushLiteralMismatchError means a PUSH's literal is not admissible for its
// declared type (§4.5's Push compatibility table).
type PushLiteralMismatchError struct {
	Declared lir.Type
	Literal  lir.Value
}

func (e PushLiteralMismatchError) Error() string {
	return fmt.Sprintf("literal %s is not admissible for declared type %s", e.Literal, e.Declared)
}

// OperandTypeError means an instruction's operand(s) had the wrong static
// type — e.g. GT applied to a non-Int top. Distinct from StackTooShort
// (operand missing) and StacksNotEqual (branch/loop tail mismatch): this
// kind covers ADD/GT/INT's operand-shape checks and IF/LOOP's Bool checks
// (including the Bool a LOOP body must leave on top).
type OperandTypeError struct {
	Instruction string
	Expected    string
	Got         []lir.Type
}

func (e OperandTypeError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %v", e.Instruction, e.Expected, e.Got)
}

// equalTypeStacks compares two top-first type-stack views for structural
// equality (§9's "Two-branch stack equality").
func equalTypeStacks(a, b []lir.Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
