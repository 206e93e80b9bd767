package service

import (
	"fmt"
	"time"

	"github.com/go-faster/city"
	"github.com/metrico/kpiql/kpiql/shared"
	"github.com/metrico/kpiql/kpiql/transpiler"
	"github.com/metrico/kpiql/metric"
	"github.com/metrico/kpiql/model"
	"github.com/metrico/kpiql/utils/logger"
	sql "github.com/metrico/kpiql/utils/sql_select"
)

// CompileService turns tenant definitions into report SQL.
type CompileService struct {
	Dialect     sql.Dialect
	Parallelism int
	UnionAlias  string
	// InlineUnion renders the unioned fact tables as a FROM sub-select
	// instead of a WITH clause.
	InlineUnion bool
}

func (c *CompileService) dialect(defs *model.Definitions) (sql.Dialect, error) {
	if defs.Dialect != "" {
		return sql.DialectByName(defs.Dialect)
	}
	if c.Dialect == nil {
		return sql.Postgres, nil
	}
	return c.Dialect, nil
}

func (c *CompileService) Compile(defs *model.Definitions) (*model.CompileResult, error) {
	start := time.Now()
	res, err := c.compile(defs)
	if err != nil {
		kind := shared.ErrorKind(err)
		metric.CompileErrors.WithLabelValues(kind).Inc()
		if kind == shared.KindInternal {
			logger.Error("compile failed: ", err)
		} else {
			logger.Debug("compile rejected: ", err)
		}
		return nil, err
	}
	elapsed := float64(time.Since(start).Microseconds()) / 1000
	metric.CompileTime.Observe(elapsed)
	metric.CompiledQueries.WithLabelValues(res.Dialect).Inc()
	metric.CompiledFormulas.Add(float64(res.Formulas))
	metric.SQLSize.Observe(float64(len(res.SQL)))
	logger.WithFields(logger.LogInfo{
		"fingerprint": res.Fingerprint,
		"dialect":     res.Dialect,
		"formulas":    res.Formulas,
		"time_ms":     elapsed,
	}).Debug("query compiled")
	return res, nil
}

func (c *CompileService) compile(defs *model.Definitions) (*model.CompileResult, error) {
	if err := defs.Validate(); err != nil {
		return nil, err
	}
	dialect, err := c.dialect(defs)
	if err != nil {
		return nil, shared.NewConfigurationError("%v", err)
	}
	mappings := defs.DataMappings()
	dimensions := defs.FactDimensions()
	columns := defs.FactColumns()

	assembler := &transpiler.Assembler{Parallelism: c.Parallelism, UnionAlias: c.UnionAlias}
	query, err := assembler.Assemble(dimensions, columns, defs.FactSources(), defs.KpiDefs(), mappings)
	if err != nil {
		return nil, err
	}

	var options []int
	if c.InlineUnion {
		options = append(options, sql.STRING_OPT_INLINE_WITH)
	}
	str, err := sql.Render(query, dialect, options...)
	if err != nil {
		return nil, shared.NewInternalCompileError("unable to render query: %v", err)
	}
	return &model.CompileResult{
		SQL:         str,
		Fingerprint: fmt.Sprintf("%016x", city.CH64([]byte(str))),
		Dialect:     dialect.Name(),
		Formulas:    countFormulas(dimensions, columns, mappings),
	}, nil
}

func countFormulas(dimensions []model.FactDimension, columns []model.FactColumn, mappings model.DataMappings) int {
	res := 0
	for _, col := range columns {
		if m, ok := mappings[col.Name]; ok && m.IsFormula() {
			res += len(dimensions)
		}
	}
	return res
}

// ValidateFormula checks a single formula against the declared KPIs.
func (c *CompileService) ValidateFormula(formula string, kpis model.KpiDefs) (*model.FormulaInfo, error) {
	canonical, refs, err := transpiler.Normalize(formula, kpis)
	if err != nil {
		metric.CompileErrors.WithLabelValues(shared.ErrorKind(err)).Inc()
		return nil, err
	}
	if refs == nil {
		refs = []string{}
	}
	return &model.FormulaInfo{
		Formula:    formula,
		Canonical:  canonical,
		References: refs,
	}, nil
}
