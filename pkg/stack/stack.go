// Package stack provides the double-ended stack abstraction shared by the
// typechecker's TypeStack and the interpreter's ValueStack (§3, §4.3). Both
// are instantiations of the same generic Stack[T]; the stack operations the
// instructions need (DIP, DUP, DROP, SWAP, the If/Loop tail comparisons) are
// coded once here and specialized only by T.
//
// Internally the top of stack lives at the end of a Go slice so push/pop at
// the top are O(1) append/truncate; callers see the logical convention
// (index 0 == top) through Get/AsSlice regardless of backing layout.
package stack

import "fmt"

// ErrUnderflow is returned by Get/PopFront/Swap/SplitOff when the requested
// depth exceeds the stack's length. Callers (pkg/typecheck, pkg/interp)
// translate this into their own specific error kinds (§7) — it is never
// surfaced directly to a caller of this package's callers.
var ErrUnderflow = fmt.Errorf("stack: underflow")

// Stack is an ordered sequence of T, top-of-stack at logical index 0.
type Stack[T any] struct {
	items []T // items[len-1] is the top; items[0] is the bottom.
}

// New builds a stack from a slice given in top-first order (index 0 == top),
// matching how callers naturally write down an initial stack (e.g. §8's
// "initial stack [Nat]").
func New[T any](topFirst ...T) *Stack[T] {
	s := &Stack[T]{items: make([]T, len(topFirst))}
	for i, v := range topFirst {
		s.items[len(topFirst)-1-i] = v
	}
	return s
}

// Len returns the number of elements.
func (s *Stack[T]) Len() int { return len(s.items) }

// Get returns the element at depth i (0 == top).
func (s *Stack[T]) Get(i int) (T, error) {
	var zero T
	if i < 0 || i >= len(s.items) {
		return zero, ErrUnderflow
	}
	return s.items[len(s.items)-1-i], nil
}

// PushFront pushes x onto the top.
func (s *Stack[T]) PushFront(x T) {
	s.items = append(s.items, x)
}

// PopFront removes and returns the top element.
func (s *Stack[T]) PopFront() (T, error) {
	var zero T
	if len(s.items) == 0 {
		return zero, ErrUnderflow
	}
	top := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return top, nil
}

// Swap exchanges the elements at depths i and j (0 == top).
func (s *Stack[T]) Swap(i, j int) error {
	if i < 0 || i >= len(s.items) || j < 0 || j >= len(s.items) {
		return ErrUnderflow
	}
	li, lj := len(s.items)-1-i, len(s.items)-1-j
	s.items[li], s.items[lj] = s.items[lj], s.items[li]
	return nil
}

// SplitOff removes the top k elements and returns them as their own Stack
// (top-first order preserved); the receiver is left holding the remainder
// — after the call, *s == the "rest" half, matching §4.3's contract
// "split_off(k) → (top[0..k], rest); after: self == rest".
func (s *Stack[T]) SplitOff(k int) (*Stack[T], error) {
	if k < 0 || k > len(s.items) {
		return nil, ErrUnderflow
	}
	n := len(s.items)
	top := &Stack[T]{items: append([]T(nil), s.items[n-k:]...)}
	s.items = s.items[:n-k]
	return top, nil
}

// Append places other's elements below the receiver's own (other becomes
// the bottom portion of the combined stack). Used to re-prepend a DIP's
// protected segment atop a modified tail: `protected.Append(tail)`.
func (s *Stack[T]) Append(other *Stack[T]) {
	combined := make([]T, 0, len(other.items)+len(s.items))
	combined = append(combined, other.items...)
	combined = append(combined, s.items...)
	s.items = combined
}

// AsSlice returns a contiguous, top-first view for pattern matching
// (mirrors Rust VecDeque::make_contiguous presenting the front/top at
// index 0). The returned slice is a copy; mutating it does not affect s.
func (s *Stack[T]) AsSlice() []T {
	out := make([]T, len(s.items))
	for i := range out {
		out[i] = s.items[len(s.items)-1-i]
	}
	return out
}

// Clone returns a deep-enough copy (element-wise shallow copy, sufficient
// for the comparable/value types T is instantiated with here) so that two
// independent branches (If's Then/Else, Loop's pre-body snapshot) can diverge
// without aliasing the same backing array.
func (s *Stack[T]) Clone() *Stack[T] {
	return &Stack[T]{items: append([]T(nil), s.items...)}
}
