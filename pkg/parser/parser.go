package parser

import (
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/pkg/errors"

	"github.com/lstacklang/lvm/pkg/lir"
)

// Parse parses L source text into lir.Block (§4.1). filename is only used
// to annotate error positions; pass "" for in-memory source.
func Parse(filename, source string) (lir.Block, error) {
	gb, err := grammarParser.ParseString(filename, source)
	if err != nil {
		return nil, translateParseError(err)
	}
	return toLIRBlock(gb)
}

// ParseFile reads and parses the named L source file.
func ParseFile(filename string) (lir.Block, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", filename)
	}
	return Parse(filename, string(data))
}

// translateParseError reformats participle's diagnostic into L's own error
// taxonomy (§7): a lexer/grammar failure becomes UnexpectedEofError when it
// ran out of input, otherwise UnrecognizedError carrying participle's own
// "found X, expected Y" description (it already lists candidates
// alphabetically) at the reported position.
func translateParseError(err error) error {
	perr, ok := err.(participle.Error)
	if !ok {
		return errors.Wrap(err, "parse error")
	}
	pos := perr.Position()
	msg := perr.Message()
	if strings.Contains(msg, "EOF") {
		return UnexpectedEofError{Line: pos.Line, Column: pos.Column}
	}
	return UnrecognizedError{Detail: msg, Line: pos.Line, Column: pos.Column}
}

func toLIRBlock(gb *grammarBlock) (lir.Block, error) {
	block := make(lir.Block, 0, len(gb.Instrs))
	for _, gi := range gb.Instrs {
		instr, err := toLIRInstr(gi)
		if err != nil {
			return nil, err
		}
		block = append(block, instr)
	}
	return block, nil
}

func toLIRInstr(gi *grammarInstr) (lir.Instruction, error) {
	switch {
	case gi.Nullary != nil:
		switch *gi.Nullary {
		case "ADD":
			return lir.Add{}, nil
		case "SWAP":
			return lir.Swap{}, nil
		case "INT":
			return lir.IntOp{}, nil
		case "GT":
			return lir.Gt{}, nil
		}
		return nil, errors.Errorf("unrecognized nullary instruction %q", *gi.Nullary)

	case gi.Push != nil:
		t, ok := lir.ParseType(gi.Push.Type)
		if !ok {
			return nil, errors.Errorf("unrecognized type %q", gi.Push.Type)
		}
		val, err := toLIRLiteral(gi.Push.Literal)
		if err != nil {
			return nil, err
		}
		return lir.Push{Type: t, Value: val}, nil

	case gi.Drop != nil:
		n, err := toDepthArg(gi.Drop.N)
		if err != nil {
			return nil, err
		}
		return lir.Drop{N: n}, nil

	case gi.Dup != nil:
		n, err := toDepthArg(gi.Dup.N)
		if err != nil {
			return nil, err
		}
		return lir.Dup{N: n}, nil

	case gi.Dip != nil:
		n, err := toDepthArg(gi.Dip.N)
		if err != nil {
			return nil, err
		}
		body, err := toLIRBlock(gi.Dip.Body)
		if err != nil {
			return nil, err
		}
		return lir.Dip{N: n, Body: body}, nil

	case gi.If != nil:
		then, err := toLIRBlock(gi.If.Then)
		if err != nil {
			return nil, err
		}
		els, err := toLIRBlock(gi.If.Else)
		if err != nil {
			return nil, err
		}
		return lir.If{Then: then, Else: els}, nil

	case gi.Loop != nil:
		body, err := toLIRBlock(gi.Loop)
		if err != nil {
			return nil, err
		}
		return lir.Loop{Body: body}, nil
	}
	return nil, errors.New("empty instruction node")
}

func toLIRLiteral(gl *grammarLiteral) (lir.Value, error) {
	switch {
	case gl.Number != nil:
		n, ok := new(big.Int).SetString(*gl.Number, 10)
		if !ok {
			return nil, errors.Errorf("malformed integer literal %q", *gl.Number)
		}
		return lir.Number{N: n}, nil
	case gl.Bool != nil:
		return lir.Boolean(*gl.Bool == "True"), nil
	}
	return nil, errors.New("empty literal node")
}

// toDepthArg parses an optional DROP/DUP/DIP nat_arg, enforcing [0,
// MaxDepth] (§4.1).
func toDepthArg(raw *string) (*int, error) {
	if raw == nil {
		return nil, nil
	}
	n, err := strconv.Atoi(*raw)
	if err != nil {
		return nil, errors.Wrapf(err, "malformed depth argument %q", *raw)
	}
	if n < 0 || n > MaxDepth {
		return nil, DepthOutOfRangeError{Found: n, Max: MaxDepth}
	}
	return &n, nil
}
