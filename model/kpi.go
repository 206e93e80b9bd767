package model

import "strings"

const (
	AggregationSum = "sum"
	AggregationAvg = "avg"
	AggregationMin = "min"
	AggregationMax = "max"
)

// NormalizeAggregation maps an aggregation kind to one the compiler emits.
// Empty and unknown kinds are sum.
func NormalizeAggregation(kind string) string {
	switch k := strings.ToLower(strings.TrimSpace(kind)); k {
	case AggregationSum, AggregationAvg, AggregationMin, AggregationMax:
		return k
	}
	return AggregationSum
}

type Kpi struct {
	Name        string
	Aggregation string
}

type KpiDefs map[string]Kpi

func NewKpiDefs(kpis ...Kpi) KpiDefs {
	res := make(KpiDefs, len(kpis))
	for _, k := range kpis {
		res[k.Name] = k
	}
	return res
}

type FactDimension struct {
	Name       string
	IsTerminal bool
}

// NewDimensions builds a drill-down hierarchy in the given order. The last
// dimension is the terminal one.
func NewDimensions(names ...string) []FactDimension {
	res := make([]FactDimension, len(names))
	for i, name := range names {
		res[i] = FactDimension{Name: name, IsTerminal: i == len(names)-1}
	}
	return res
}

type FactColumn struct {
	Name string
}

func NewColumns(names ...string) []FactColumn {
	res := make([]FactColumn, len(names))
	for i, name := range names {
		res[i] = FactColumn{Name: name}
	}
	return res
}

type FactSource struct {
	Name string
}

func NewSources(names ...string) []FactSource {
	res := make([]FactSource, len(names))
	for i, name := range names {
		res[i] = FactSource{Name: name}
	}
	return res
}

const (
	ExprColumn = iota
	ExprFormula
)

// QueryExpr is either a raw SQL column reference or a formula to compile.
type QueryExpr struct {
	Kind int
	Text string
}

func Column(text string) QueryExpr {
	return QueryExpr{Kind: ExprColumn, Text: text}
}

func Formula(text string) QueryExpr {
	return QueryExpr{Kind: ExprFormula, Text: text}
}

func (q QueryExpr) IsColumn() bool  { return q.Kind == ExprColumn }
func (q QueryExpr) IsFormula() bool { return q.Kind == ExprFormula }

// DataMappings keys are case-sensitive.
type DataMappings map[string]QueryExpr
