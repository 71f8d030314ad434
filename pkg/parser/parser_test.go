package parser_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lstacklang/lvm/pkg/lir"
	"github.com/lstacklang/lvm/pkg/parser"
)

func TestParseNullaryInstructions(t *testing.T) {
	ast, err := parser.Parse("", `{ ADD ; SWAP ; INT ; GT }`)
	require.NoError(t, err)
	require.Equal(t, lir.Block{lir.Add{}, lir.Swap{}, lir.IntOp{}, lir.Gt{}}, ast)
}

func TestParsePushLiterals(t *testing.T) {
	ast, err := parser.Parse("", `{ PUSH nat 5 ; PUSH int -3 ; PUSH bool True ; PUSH mutez 100 }`)
	require.NoError(t, err)
	require.Len(t, ast, 4)

	push0, ok := ast[0].(lir.Push)
	require.True(t, ok)
	assert.Equal(t, lir.Nat, push0.Type)
	assert.Equal(t, big.NewInt(5), push0.Value.(lir.Number).N)

	push1, ok := ast[1].(lir.Push)
	require.True(t, ok)
	assert.Equal(t, lir.Int, push1.Type)
	assert.Equal(t, big.NewInt(-3), push1.Value.(lir.Number).N)

	push2, ok := ast[2].(lir.Push)
	require.True(t, ok)
	assert.Equal(t, lir.Bool, push2.Type)
	assert.Equal(t, lir.Boolean(true), push2.Value)
}

func TestParseDropDupDefaultDepth(t *testing.T) {
	ast, err := parser.Parse("", `{ DROP ; DUP }`)
	require.NoError(t, err)
	require.Len(t, ast, 2)
	drop, ok := ast[0].(lir.Drop)
	require.True(t, ok)
	assert.Nil(t, drop.N)
	dup, ok := ast[1].(lir.Dup)
	require.True(t, ok)
	assert.Nil(t, dup.N)
}

func TestParseDropWithExplicitDepth(t *testing.T) {
	ast, err := parser.Parse("", `{ DROP 3 }`)
	require.NoError(t, err)
	drop := ast[0].(lir.Drop)
	require.NotNil(t, drop.N)
	assert.Equal(t, 3, *drop.N)
}

func TestParseDipWithAndWithoutDepth(t *testing.T) {
	ast, err := parser.Parse("", `{ DIP { ADD } ; DIP 2 { SWAP } }`)
	require.NoError(t, err)
	require.Len(t, ast, 2)
	dip0 := ast[0].(lir.Dip)
	assert.Nil(t, dip0.N)
	assert.Equal(t, lir.Block{lir.Add{}}, dip0.Body)
	dip1 := ast[1].(lir.Dip)
	require.NotNil(t, dip1.N)
	assert.Equal(t, 2, *dip1.N)
}

func TestParseIfAndLoop(t *testing.T) {
	ast, err := parser.Parse("", `{ IF { PUSH bool True } { PUSH bool False } ; LOOP { DROP } }`)
	require.NoError(t, err)
	require.Len(t, ast, 2)
	_, ok := ast[0].(lir.If)
	assert.True(t, ok)
	_, ok = ast[1].(lir.Loop)
	assert.True(t, ok)
}

func TestParseTrailingSemicolonAllowed(t *testing.T) {
	_, err := parser.Parse("", `{ ADD ; SWAP ; }`)
	assert.NoError(t, err)
}

func TestParseEmptyBlock(t *testing.T) {
	ast, err := parser.Parse("", `{}`)
	require.NoError(t, err)
	assert.Len(t, ast, 0)
}

func TestParseMissingSemicolonFails(t *testing.T) {
	_, err := parser.Parse("", `{ DUP 4 GT }`)
	require.Error(t, err)
	var unrecognized parser.UnrecognizedError
	assert.ErrorAs(t, err, &unrecognized)
}

func TestParseDepthOutOfRange(t *testing.T) {
	_, err := parser.Parse("", `{ DROP 1025 }`)
	require.Error(t, err)
	assert.Equal(t, "expected a natural from 0 to 1023 inclusive, but got 1025", err.Error())
}

func TestParseDepthAtBoundSucceeds(t *testing.T) {
	_, err := parser.Parse("", `{ DROP 1023 }`)
	assert.NoError(t, err)
}

func TestParseFileFixtures(t *testing.T) {
	ast, err := parser.ParseFile("../../testdata/programs/fibonacci.lir")
	require.NoError(t, err)
	assert.NotEmpty(t, ast)

	ast, err = parser.ParseFile("../../testdata/programs/mutez_add.lir")
	require.NoError(t, err)
	require.Len(t, ast, 3)
}
