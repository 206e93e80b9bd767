package transpiler

import (
	"fmt"

	"github.com/metrico/kpiql/kpiql/parser"
	"github.com/metrico/kpiql/kpiql/shared"
	"github.com/metrico/kpiql/model"
	sql "github.com/metrico/kpiql/utils/sql_select"
	"golang.org/x/sync/errgroup"
)

const DefaultUnionAlias = "facts"

// Assembler builds the reporting SELECT over a set of fact tables.
// Parallelism bounds concurrent formula compilations, values below 2 compile
// sequentially. UnionAlias names the unioned tables, DefaultUnionAlias if empty.
type Assembler struct {
	Parallelism int
	UnionAlias  string
}

// Assemble runs a sequential Assembler with default settings.
func Assemble(dimensions []model.FactDimension, columns []model.FactColumn, tables []model.FactSource,
	kpis model.KpiDefs, mappings model.DataMappings) (sql.ISelect, error) {
	return (&Assembler{}).Assemble(dimensions, columns, tables, kpis, mappings)
}

func (a *Assembler) Assemble(dimensions []model.FactDimension, columns []model.FactColumn, tables []model.FactSource,
	kpis model.KpiDefs, mappings model.DataMappings) (sql.ISelect, error) {
	err := checkDimensions(dimensions)
	if err != nil {
		return nil, err
	}
	facts, err := a.unionTables(tables)
	if err != nil {
		return nil, err
	}

	dimCols := make([]sql.SQLObject, len(dimensions))
	orderBy := make([]sql.SQLObject, len(dimensions))
	for i, dim := range dimensions {
		m, ok := mappings[dim.Name]
		if !ok {
			return nil, &shared.UnmappedDimensionError{Name: dim.Name}
		}
		dimCols[i] = sql.NewRawObject(m.Text)
		orderBy[i] = sql.NewOrderBy(dimCols[i], sql.ORDER_BY_DIRECTION_ASC).NullsLast()
	}

	fields, err := a.fields(dimensions, columns, kpis, mappings)
	if err != nil {
		return nil, err
	}

	return sql.NewSelect().
		With(facts).
		Select(append(dimCols, fields...)...).
		From(sql.NewWithRef(facts)).
		GroupBy(dimCols...).
		OrderBy(orderBy...), nil
}

func (a *Assembler) unionAlias() string {
	if a.UnionAlias == "" {
		return DefaultUnionAlias
	}
	return a.UnionAlias
}

func (a *Assembler) parallelism() int {
	if a.Parallelism < 1 {
		return 1
	}
	return a.Parallelism
}

func checkDimensions(dimensions []model.FactDimension) error {
	if len(dimensions) == 0 {
		return shared.NewConfigurationError("no dimensions")
	}
	last := len(dimensions) - 1
	for i, dim := range dimensions[:last] {
		if dim.IsTerminal {
			return shared.NewConfigurationError("dimension %s at position %d is terminal, only the last one may be", dim.Name, i)
		}
	}
	if !dimensions[last].IsTerminal {
		return shared.NewConfigurationError("last dimension %s is not terminal", dimensions[last].Name)
	}
	return nil
}

func (a *Assembler) unionTables(tables []model.FactSource) (*sql.With, error) {
	if len(tables) == 0 {
		return nil, shared.NewConfigurationError("no fact tables")
	}
	selects := make([]sql.ISelect, len(tables))
	for i, t := range tables {
		if t.Name == "" {
			return nil, shared.NewConfigurationError("fact table %d has no name", i)
		}
		selects[i] = sql.NewSelect().Select(sql.NewRawObject("*")).From(sql.NewRawObject(t.Name))
	}
	return sql.NewWith(sql.NewUnionAll(selects[0], selects[1:]...), a.unionAlias()), nil
}

type formulaJob struct {
	slot    int
	node    parser.Node
	formula string
	dim     model.FactDimension
	alias   string
}

// fields lays out the column part of the SELECT list. Every formula column
// takes one slot per dimension, compilation fills the slots, so the output
// order does not depend on which compilation finishes first.
func (a *Assembler) fields(dimensions []model.FactDimension, columns []model.FactColumn,
	kpis model.KpiDefs, mappings model.DataMappings) ([]sql.SQLObject, error) {
	var (
		fields []sql.SQLObject
		errs   []error
		jobs   []formulaJob
	)
	for colIdx, col := range columns {
		m, ok := mappings[col.Name]
		if !ok {
			continue
		}
		if m.IsColumn() {
			fields = append(fields, sql.NewRawObject(m.Text))
			errs = append(errs, nil)
			continue
		}
		node, parseErr := parser.Parse(m.Text)
		for _, dim := range dimensions {
			slot := len(fields)
			fields = append(fields, nil)
			errs = append(errs, parseErr)
			if parseErr != nil {
				continue
			}
			jobs = append(jobs, formulaJob{
				slot:    slot,
				node:    node,
				formula: m.Text,
				dim:     dim,
				alias:   fmt.Sprintf("kpi_%d~%s", colIdx, mappings[dim.Name].Text),
			})
		}
	}

	g := errgroup.Group{}
	g.SetLimit(a.parallelism())
	for _, job := range jobs {
		job := job
		g.Go(func() error {
			expr, err := CompileNode(job.node, job.formula, job.dim, kpis, mappings)
			if err != nil {
				errs[job.slot] = err
				return nil
			}
			fields[job.slot] = sql.NewCol(expr, job.alias)
			return nil
		})
	}
	g.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return fields, nil
}
