// Package parser turns L source text into an untyped pkg/lir.Block using a
// participle v2 struct-tag grammar (§4.1): brace/semicolon block syntax
// with typed literals and bounded depth arguments.
package parser

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// lLexer tokenizes L source. Instruction keywords are case-sensitive and
// uppercase; type keywords are lowercase (§4.1) — since the two sets never
// collide in spelling (e.g. the INT coercion vs. the int type), each gets
// its own rule rather than one generic identifier class.
var lLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},

	{Name: "Number", Pattern: `-?[0-9]+`},

	{Name: "ADD", Pattern: `ADD`},
	{Name: "PUSH", Pattern: `PUSH`},
	{Name: "DUP", Pattern: `DUP`},
	{Name: "DROP", Pattern: `DROP`},
	{Name: "DIP", Pattern: `DIP`},
	{Name: "IF", Pattern: `IF`},
	{Name: "LOOP", Pattern: `LOOP`},
	{Name: "SWAP", Pattern: `SWAP`},
	{Name: "INT", Pattern: `INT`},
	{Name: "GT", Pattern: `GT`},

	{Name: "TNat", Pattern: `nat`},
	{Name: "TInt", Pattern: `int`},
	{Name: "TBool", Pattern: `bool`},
	{Name: "TMutez", Pattern: `mutez`},

	{Name: "True", Pattern: `True`},
	{Name: "False", Pattern: `False`},

	{Name: "LBrace", Pattern: `\{`},
	{Name: "RBrace", Pattern: `\}`},
	{Name: "Semi", Pattern: `;`},
})

// grammarBlock mirrors `block := '{' [instr (';' instr)*] [';']? '}'`.
type grammarBlock struct {
	Pos    lexer.Position
	Instrs []*grammarInstr `"{" ( @@ ( ";" @@ )* ";"? )? "}"`
}

// grammarInstr mirrors `instr := IDENT instr_args*`, specialized per
// keyword since each instruction's argument shape is fixed (§4.1's
// "Argument shapes per instruction").
type grammarInstr struct {
	Pos lexer.Position

	Nullary *string          `  @("ADD" | "SWAP" | "INT" | "GT")`
	Push    *grammarPush     `| "PUSH" @@`
	Drop    *grammarDepthArg `| "DROP" @@`
	Dup     *grammarDepthArg `| "DUP" @@`
	Dip     *grammarDip      `| "DIP" @@`
	If      *grammarIf       `| "IF" @@`
	Loop    *grammarBlock    `| "LOOP" @@`
}

// grammarDepthArg is DROP/DUP's optional nat_arg.
type grammarDepthArg struct {
	N *string `@Number?`
}

// grammarDip is DIP's optional nat_arg followed by its mandatory block.
type grammarDip struct {
	N    *string       `@Number?`
	Body *grammarBlock `@@`
}

// grammarIf is IF's two mandatory blocks.
type grammarIf struct {
	Then *grammarBlock `@@`
	Else *grammarBlock `@@`
}

// grammarLiteral mirrors `literal := signed_integer | 'True' | 'False'`.
type grammarLiteral struct {
	Number *string `  @Number`
	Bool   *string `| @("True" | "False")`
}

// grammarPush mirrors `PUSH type literal`.
type grammarPush struct {
	Type    string          `@("nat" | "int" | "bool" | "mutez")`
	Literal *grammarLiteral `@@`
}

var grammarParser = participle.MustBuild[grammarBlock](
	participle.Lexer(lLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)
