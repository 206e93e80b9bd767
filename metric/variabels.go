package metric

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CompiledQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kpiql_compiled_queries_count",
		Help: "The total number of assembled report queries",
	}, []string{"dialect"})
	CompiledFormulas = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kpiql_compiled_formulas_count",
		Help: "The total number of formula fields compiled into report queries",
	})
	CompileErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kpiql_compile_errors_count",
		Help: "The total number of failed compilations by error kind",
	}, []string{"kind"})
	CompileTime = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "kpiql_compile_time_ms",
		Help:    "Query compile time in milliseconds",
		Buckets: []float64{0.1, 0.5, 1, 5, 10, 50, 100, 500},
	})
	SQLSize = promauto.NewSummary(prometheus.SummaryOpts{
		Name: "kpiql_sql_size_bytes",
		Help: "Size of the generated SQL text",
		Objectives: map[float64]float64{
			0.5:  0.05,
			0.9:  0.01,
			0.99: 0.001},
	})
)
