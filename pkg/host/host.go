// Package host declares the capability surface an L program's surrounding
// rollup kernel would offer it (§6.3): output/debug writes, durable-storage
// CRUD, preimage/metadata reveal, reboot marking. pkg/interp does not call
// any of this today (no instruction in §4 reaches outside the value stack)
// — these are the seams spec.md §6.3 names as external, carried here as
// interfaces plus one in-memory reference implementation so a future
// SELF_ADDRESS-style extension has somewhere concrete to land, the same way
// the original runtime exposes a full capability trait behind a single
// core primitive and ships a mock for its own tests.
package host

import (
	"strings"

	"github.com/pkg/errors"
)

// PATH_MAX_SIZE in the original host: the largest a durable storage path
// may be, in bytes.
const PathMaxSize = 250

// ValueType classifies what lives at a store path. None means nothing is
// there at all, folding the original Option<ValueType> into the enum
// itself rather than carrying a separate "present" flag.
type ValueType int

const (
	None ValueType = iota
	Value
	Subtree
	ValueWithSubtree
)

func (v ValueType) String() string {
	switch v {
	case None:
		return "none"
	case Value:
		return "value"
	case Subtree:
		return "subtree"
	case ValueWithSubtree:
		return "value-with-subtree"
	default:
		return "unknown"
	}
}

// RuntimeError is the closed set of host-call failures.
type RuntimeError struct {
	Kind RuntimeErrorKind
	Code string // populated for HostErr
}

type RuntimeErrorKind int

const (
	PathNotFound RuntimeErrorKind = iota
	StoreListIndexOutOfBounds
	HostErr
)

func (e RuntimeError) Error() string {
	switch e.Kind {
	case PathNotFound:
		return "path not found"
	case StoreListIndexOutOfBounds:
		return "store subkey index out of bounds"
	case HostErr:
		return "host error: " + e.Code
	default:
		return "unknown runtime error"
	}
}

// NewHostErr wraps an underlying host-call failure code (§6.3).
func NewHostErr(code string) RuntimeError {
	return RuntimeError{Kind: HostErr, Code: code}
}

// Path is an immutable, validated, slash-delimited store path, folding the
// original owned/borrowed Path/RefPath/OwnedPath trait triad into a single
// value type — Go has no borrow checker to make the distinction pay for
// itself.
type Path struct {
	s string
}

// NewPath validates and constructs a Path: must start with '/', must not
// exceed PathMaxSize, must not contain an empty segment.
func NewPath(s string) (Path, error) {
	if len(s) == 0 || s[0] != '/' {
		return Path{}, errors.Errorf("path %q: must start with '/'", s)
	}
	if len(s) > PathMaxSize {
		return Path{}, errors.Errorf("path %q: exceeds max size %d", s, PathMaxSize)
	}
	if len(s) > 1 {
		for _, seg := range strings.Split(s[1:], "/") {
			if seg == "" {
				return Path{}, errors.Errorf("path %q: contains an empty segment", s)
			}
		}
	}
	return Path{s: s}, nil
}

func (p Path) String() string { return p.s }

// Message is one inbox message as returned by ReadInput.
type Message struct {
	Level   uint32
	ID      uint32
	Payload []byte
}

// RollupMetadata is the fixed-size identity/level info RevealMetadata
// returns.
type RollupMetadata struct {
	Address []byte
	Level   uint32
}

// Runtime is the full host capability surface (§6.3). No pkg/interp
// instruction invokes it today; it exists as the documented extension
// seam, plus MemStore below as its one concrete, testable grounding.
type Runtime interface {
	WriteOutput(data []byte) error
	WriteDebug(msg string)
	ReadInput() (*Message, error)

	StoreHas(path Path) (ValueType, error)
	StoreRead(path Path, offset, maxBytes int) ([]byte, error)
	StoreWrite(path Path, offset int, data []byte) error
	StoreDelete(path Path) error
	StoreMove(from, to Path) error
	StoreCopy(from, to Path) error
	StoreCountSubkeys(prefix Path) (int64, error)
	StoreGetSubkey(prefix Path, index int64) (Path, error)
	StoreValueSize(path Path) (int, error)

	RevealPreimage(hash [32]byte, maxBytes int) ([]byte, error)
	RevealMetadata() (RollupMetadata, error)
	MarkForReboot() error
}
