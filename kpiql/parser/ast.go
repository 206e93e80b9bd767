package parser

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Node is a parsed formula. The implementations are Number, AddSub, MulDiv,
// Paren and Agg.
type Node interface {
	Position() lexer.Position
	// String returns the canonical formula text: no whitespace, "×" written as "*".
	String() string
}

type Number struct {
	Pos  lexer.Position
	Text string
}

func (n *Number) Position() lexer.Position { return n.Pos }
func (n *Number) String() string           { return n.Text }

// AddSub is "+" or "-".
type AddSub struct {
	Pos   lexer.Position
	Op    string
	Left  Node
	Right Node
}

func (a *AddSub) Position() lexer.Position { return a.Pos }
func (a *AddSub) String() string           { return a.Left.String() + a.Op + a.Right.String() }

// MulDiv is "*", "×" or "/".
type MulDiv struct {
	Pos   lexer.Position
	Op    string
	Left  Node
	Right Node
}

func (m *MulDiv) Position() lexer.Position { return m.Pos }

func (m *MulDiv) IsMul() bool {
	return m.Op == "*" || m.Op == "×"
}

func (m *MulDiv) String() string {
	op := m.Op
	if m.IsMul() {
		op = "*"
	}
	return m.Left.String() + op + m.Right.String()
}

type Paren struct {
	Pos   lexer.Position
	Inner Node
}

func (p *Paren) Position() lexer.Position { return p.Pos }
func (p *Paren) String() string           { return "(" + p.Inner.String() + ")" }

// Agg references a declared KPI by name.
type Agg struct {
	Pos  lexer.Position
	Name string
}

func (a *Agg) Position() lexer.Position { return a.Pos }
func (a *Agg) String() string           { return "(" + a.Name + ")" }

// Walk calls fn for node and its descendants, parents first, left before right.
// Returning false skips the children of the current node.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	switch n := node.(type) {
	case *AddSub:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *MulDiv:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *Paren:
		Walk(n.Inner, fn)
	}
}

// References returns the KPI names used by node in order of first appearance.
func References(node Node) []string {
	var res []string
	seen := map[string]bool{}
	Walk(node, func(n Node) bool {
		if agg, ok := n.(*Agg); ok && !seen[agg.Name] {
			seen[agg.Name] = true
			res = append(res, agg.Name)
		}
		return true
	})
	return res
}
