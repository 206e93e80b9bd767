package parser

import (
	"errors"

	"github.com/alecthomas/participle/v2"
	"github.com/metrico/kpiql/kpiql/shared"
)

var formulaParser = participle.MustBuild[Formula](
	participle.Lexer(KpiLexerDefinition),
	participle.UseLookahead(3))

// Parse parses formula text. Any failure is returned as *shared.SyntaxError
// and the tree is nil.
func Parse(formula string) (Node, error) {
	res, err := formulaParser.ParseString("", formula)
	if err != nil {
		return nil, toSyntaxError(formula, err)
	}
	if res == nil || res.Expr == nil {
		return nil, &shared.SyntaxError{Formula: formula, Line: 1, Column: 1, Message: "empty formula"}
	}
	node := res.Expr.toNode()
	if node == nil {
		return nil, &shared.SyntaxError{Formula: formula, Line: 1, Column: 1, Message: "incomplete formula"}
	}
	return node, nil
}

func toSyntaxError(formula string, err error) *shared.SyntaxError {
	var perr participle.Error
	if errors.As(err, &perr) {
		pos := perr.Position()
		line, col := pos.Line, pos.Column
		if line < 1 {
			line = 1
		}
		if col < 1 {
			col = 1
		}
		return &shared.SyntaxError{Formula: formula, Line: line, Column: col, Message: perr.Message()}
	}
	return &shared.SyntaxError{Formula: formula, Line: 1, Column: 1, Message: err.Error()}
}
