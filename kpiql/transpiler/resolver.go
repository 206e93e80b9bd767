package transpiler

import (
	"github.com/metrico/kpiql/model"
)

// VerifyKpi reports whether name is a declared KPI.
func VerifyKpi(kpis model.KpiDefs, name string) bool {
	_, ok := kpis[name]
	return ok
}

// AggregationKind is the aggregate applied to a KPI. Empty and unknown kinds are sum.
func AggregationKind(kpis model.KpiDefs, name string) string {
	return model.NormalizeAggregation(kpis[name].Aggregation)
}
