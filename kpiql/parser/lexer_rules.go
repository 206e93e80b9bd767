package parser

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var KpiLexerRules = []lexer.SimpleRule{
	{Name: "Ob", Pattern: `\(`},
	{Name: "Cb", Pattern: `\)`},

	{Name: "Plus", Pattern: `\+`},
	{Name: "Minus", Pattern: `-`},
	{Name: "Mul", Pattern: `\*`},
	{Name: "FMul", Pattern: `×`},
	{Name: "Div", Pattern: `/`},

	{Name: "Number", Pattern: `[0-9]+(\.[0-9]+)?`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},

	{Name: "space", Pattern: `\s+`},
}

var KpiLexerDefinition = lexer.MustSimple(KpiLexerRules)
