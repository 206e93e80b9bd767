package parser

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Formula is the participle grammar root. The parse result is folded into
// the Node tree by Parse and never leaves this package.
type Formula struct {
	Expr *Expr `parser:"@@"`
}

type Expr struct {
	Pos  lexer.Position
	Head *Term     `parser:"@@"`
	Tail []*OpTerm `parser:"@@*"`
}

type OpTerm struct {
	Pos  lexer.Position
	Op   string `parser:"@(\"+\" | \"-\")"`
	Term *Term  `parser:"@@"`
}

type Term struct {
	Pos  lexer.Position
	Head *Factor     `parser:"@@"`
	Tail []*OpFactor `parser:"@@*"`
}

type OpFactor struct {
	Pos    lexer.Position
	Op     string  `parser:"@(\"*\" | \"×\" | \"/\")"`
	Factor *Factor `parser:"@@"`
}

// Factor needs the lookahead: "(" Ident ")" is a KPI reference, any other
// parenthesised content is a grouping.
type Factor struct {
	Pos    lexer.Position
	Number *string `parser:"  @Number"`
	Kpi    *string `parser:"| \"(\" @Ident \")\""`
	Group  *Expr   `parser:"| \"(\" @@ \")\""`
}

func (e *Expr) toNode() Node {
	var res Node = e.Head.toNode()
	for _, t := range e.Tail {
		res = &AddSub{Pos: t.Pos, Op: t.Op, Left: res, Right: t.Term.toNode()}
	}
	return res
}

func (t *Term) toNode() Node {
	var res Node = t.Head.toNode()
	for _, f := range t.Tail {
		res = &MulDiv{Pos: f.Pos, Op: f.Op, Left: res, Right: f.Factor.toNode()}
	}
	return res
}

func (f *Factor) toNode() Node {
	switch {
	case f.Number != nil:
		return &Number{Pos: f.Pos, Text: *f.Number}
	case f.Kpi != nil:
		return &Agg{Pos: f.Pos, Name: *f.Kpi}
	case f.Group != nil:
		return &Paren{Pos: f.Pos, Inner: f.Group.toNode()}
	}
	return nil
}
