package parser

import (
	"fmt"
)

// UnrecognizedError is raised when the token stream contains a token the
// grammar cannot continue from at that position (§7 "Unrecognized"). Detail
// carries the underlying grammar engine's own description of what it found
// and what it would have accepted instead; Line/Column locate it.
type UnrecognizedError struct {
	Detail       string
	Line, Column int
}

func (e UnrecognizedError) Error() string {
	return fmt.Sprintf("Unrecognized token found at %d:%d: %s", e.Line, e.Column, e.Detail)
}

// UnexpectedEofError is raised when input ends mid-construct — an opened
// block never closed, an instruction missing a mandatory argument (§7
// "UnexpectedEof").
type UnexpectedEofError struct {
	Line, Column int
}

func (e UnexpectedEofError) Error() string {
	return fmt.Sprintf("unexpected end of input at %d:%d", e.Line, e.Column)
}

// DepthOutOfRangeError is raised when a DROP/DUP/DIP depth argument falls
// outside [0, MaxDepth] (§4.1, §7 "DepthOutOfRange").
type DepthOutOfRangeError struct {
	Found int
	Max   int
}

func (e DepthOutOfRangeError) Error() string {
	return fmt.Sprintf("expected a natural from 0 to %d inclusive, but got %d", e.Max, e.Found)
}

// MaxDepth is the largest admissible DROP/DUP/DIP argument (§4.1).
const MaxDepth = 1023
