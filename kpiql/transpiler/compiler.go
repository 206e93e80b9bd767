package transpiler

import (
	"github.com/metrico/kpiql/kpiql/parser"
	"github.com/metrico/kpiql/kpiql/shared"
	"github.com/metrico/kpiql/model"
	sql "github.com/metrico/kpiql/utils/sql_select"
)

// Compile parses formula and translates it into an SQL expression evaluated
// at the dim drill-down level.
func Compile(formula string, dim model.FactDimension, kpis model.KpiDefs,
	mappings model.DataMappings) (sql.SQLObject, error) {
	node, err := parser.Parse(formula)
	if err != nil {
		return nil, err
	}
	return CompileNode(node, formula, dim, kpis, mappings)
}

// CompileNode translates an already parsed formula. formula is only used in
// error messages.
func CompileNode(node parser.Node, formula string, dim model.FactDimension, kpis model.KpiDefs,
	mappings model.DataMappings) (sql.SQLObject, error) {
	c := &compiler{
		formula:  formula,
		dim:      dim,
		kpis:     kpis,
		mappings: mappings,
	}
	return c.compile(node)
}

// Normalize parses formula and checks every KPI it references. It returns the
// canonical formula text and the referenced KPI names.
func Normalize(formula string, kpis model.KpiDefs) (string, []string, error) {
	node, err := parser.Parse(formula)
	if err != nil {
		return "", nil, err
	}
	refs := parser.References(node)
	for _, name := range refs {
		if !VerifyKpi(kpis, name) {
			return "", nil, &shared.UndefinedKpiError{Name: name, Formula: formula}
		}
	}
	return node.String(), refs, nil
}

type compiler struct {
	formula  string
	dim      model.FactDimension
	kpis     model.KpiDefs
	mappings model.DataMappings
}

func (c *compiler) compile(node parser.Node) (sql.SQLObject, error) {
	switch n := node.(type) {
	case *parser.Number:
		if n != nil {
			return c.number(n)
		}
	case *parser.AddSub:
		if n != nil {
			return c.addSub(n)
		}
	case *parser.MulDiv:
		if n != nil {
			return c.mulDiv(n)
		}
	case *parser.Paren:
		if n != nil {
			return c.compile(n.Inner)
		}
	case *parser.Agg:
		if n != nil {
			return c.agg(n)
		}
	}
	return nil, shared.NewInternalCompileError("unable to compile node %T of formula %q", node, c.formula)
}

func (c *compiler) number(n *parser.Number) (sql.SQLObject, error) {
	if n.Text == "" {
		return nil, shared.NewInternalCompileError("empty number in formula %q", c.formula)
	}
	return sql.NewNumberVal(n.Text), nil
}

func (c *compiler) operands(left, right parser.Node) (sql.SQLObject, sql.SQLObject, error) {
	l, err := c.compile(left)
	if err != nil {
		return nil, nil, err
	}
	r, err := c.compile(right)
	if err != nil {
		return nil, nil, err
	}
	return l, r, nil
}

func (c *compiler) addSub(n *parser.AddSub) (sql.SQLObject, error) {
	l, r, err := c.operands(n.Left, n.Right)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "+":
		return sql.Add(l, r), nil
	case "-":
		return sql.Sub(l, r), nil
	}
	return nil, shared.NewInternalCompileError("unknown operator %q in formula %q", n.Op, c.formula)
}

func (c *compiler) mulDiv(n *parser.MulDiv) (sql.SQLObject, error) {
	l, r, err := c.operands(n.Left, n.Right)
	if err != nil {
		return nil, err
	}
	switch {
	case n.IsMul():
		return sql.Mul(l, r), nil
	case n.Op == "/":
		return sql.Div(l, r), nil
	}
	return nil, shared.NewInternalCompileError("unknown operator %q in formula %q", n.Op, c.formula)
}

// agg aggregates the KPI's raw field. Above the terminal level the aggregate
// is re-applied as a window over the current dimension:
// sum(sum(clicks)) over (partition by datasource).
func (c *compiler) agg(n *parser.Agg) (sql.SQLObject, error) {
	if !VerifyKpi(c.kpis, n.Name) {
		return nil, &shared.UndefinedKpiError{Name: n.Name, Formula: c.formula}
	}
	kind := AggregationKind(c.kpis, n.Name)
	base := sql.NewAggregate(kind, c.rawField(n.Name))
	if c.dim.IsTerminal {
		return base, nil
	}
	partition, ok := c.mappings[c.dim.Name]
	if !ok {
		return nil, &shared.UnmappedDimensionError{Name: c.dim.Name}
	}
	return sql.NewWindow(sql.NewAggregate(kind, base), sql.NewRawObject(partition.Text)), nil
}

func (c *compiler) rawField(name string) sql.SQLObject {
	if m, ok := c.mappings[name]; ok && m.IsColumn() {
		return sql.NewRawObject(m.Text)
	}
	return sql.NewRawObject(name)
}
