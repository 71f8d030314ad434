package typecheck_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lstacklang/lvm/pkg/gas"
	"github.com/lstacklang/lvm/pkg/lir"
	"github.com/lstacklang/lvm/pkg/parser"
	"github.com/lstacklang/lvm/pkg/stack"
	"github.com/lstacklang/lvm/pkg/typecheck"
)

const fibSrc = `{ INT ; PUSH int 0 ; DUP 2 ; GT ;
  IF { DIP { PUSH int -1 ; ADD } ;
       PUSH int 1 ; DUP 3 ; GT ;
       LOOP { SWAP ; DUP 2 ; ADD ;
              DIP 2 { PUSH int -1 ; ADD } ;
              DUP 3 ; GT } ;
       DIP { DROP 2 } }
     { DIP { DROP } } }`

// fibSrcBadDepth is S1 with the DUP 3 right after PUSH int 1 bumped to
// DUP 4, which at that point in the program only has 3 elements on the
// stack (§8 S5).
const fibSrcBadDepth = `{ INT ; PUSH int 0 ; DUP 2 ; GT ;
  IF { DIP { PUSH int -1 ; ADD } ;
       PUSH int 1 ; DUP 4 ; GT ;
       LOOP { SWAP ; DUP 2 ; ADD ;
              DIP 2 { PUSH int -1 ; ADD } ;
              DUP 3 ; GT } ;
       DIP { DROP 2 } }
     { DIP { DROP } } }`

func TestFibonacciTypechecksNatToInt(t *testing.T) {
	ast, err := parser.Parse("", fibSrc)
	require.NoError(t, err)

	ts := stack.New[lir.Type](lir.Nat)
	g := gas.Default()
	_, err = typecheck.Typecheck(ast, g, ts)
	require.NoError(t, err)
	assert.Equal(t, []lir.Type{lir.Int}, ts.AsSlice())
}

func TestFibonacciTypecheckGasCost(t *testing.T) {
	ast, err := parser.Parse("", fibSrc)
	require.NoError(t, err)

	ts := stack.New[lir.Type](lir.Nat)
	g := gas.NewMilligas(456)
	_, err = typecheck.Typecheck(ast, g, ts)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), g.Milligas())
}

func TestFibonacciTypecheckOutOfGas(t *testing.T) {
	ast, err := parser.Parse("", fibSrc)
	require.NoError(t, err)

	ts := stack.New[lir.Type](lir.Nat)
	g := gas.NewMilligas(455)
	_, err = typecheck.Typecheck(ast, g, ts)
	assert.ErrorIs(t, err, gas.OutOfGas{})
}

func TestStackTooShort(t *testing.T) {
	ast, err := parser.Parse("", fibSrcBadDepth)
	require.NoError(t, err)

	ts := stack.New[lir.Type](lir.Nat)
	_, err = typecheck.Typecheck(ast, gas.Default(), ts)
	require.Error(t, err)
	var tooShort typecheck.StackTooShortError
	require.ErrorAs(t, err, &tooShort)
	assert.Equal(t, 4, tooShort.Expected)
	assert.Equal(t, 3, tooShort.Got)
}

func TestDupZeroRejected(t *testing.T) {
	ast, err := parser.Parse("", `{ PUSH nat 1 ; DUP 0 }`)
	require.NoError(t, err)
	ts := stack.New[lir.Type]()
	_, err = typecheck.Typecheck(ast, gas.Default(), ts)
	require.Error(t, err)
	var invalid typecheck.InvalidArgumentError
	assert.ErrorAs(t, err, &invalid)
}

func TestIfBranchStacksMustMatch(t *testing.T) {
	ast, err := parser.Parse("", `{ PUSH bool True ; IF { PUSH nat 1 } { PUSH int 1 } }`)
	require.NoError(t, err)
	ts := stack.New[lir.Type]()
	_, err = typecheck.Typecheck(ast, gas.Default(), ts)
	require.Error(t, err)
	var notEqual typecheck.StacksNotEqualError
	assert.ErrorAs(t, err, &notEqual)
}

func TestMutezAddOverload(t *testing.T) {
	ast, err := parser.Parse("", `{ PUSH mutez 100 ; PUSH mutez 500 ; ADD }`)
	require.NoError(t, err)
	ts := stack.New[lir.Type]()
	typed, err := typecheck.Typecheck(ast, gas.Default(), ts)
	require.NoError(t, err)
	assert.Equal(t, []lir.Type{lir.Mutez}, ts.AsSlice())
	require.Len(t, typed, 3)
	add, ok := typed[2].(typecheck.Add)
	require.True(t, ok)
	assert.Equal(t, typecheck.MutezMutez, add.Overload)
}

func TestMutezLiteralAboveBoundRejected(t *testing.T) {
	ast, err := parser.Parse("", `{ PUSH mutez 9223372036854775808 }`)
	require.NoError(t, err)
	ts := stack.New[lir.Type]()
	_, err = typecheck.Typecheck(ast, gas.Default(), ts)
	require.Error(t, err)
	var mismatch typecheck.PushLiteralMismatchError
	assert.ErrorAs(t, err, &mismatch)
}
