package apirouterv1

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"
	"github.com/metrico/kpiql/service"
	sql "github.com/metrico/kpiql/utils/sql_select"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const definitions = `{
  "kpis": {"clicks": {"aggregation": "sum"}, "impressions": {"aggregation": "avg"}},
  "mappings": {
    "Datasource": {"column": "datasource"},
    "Client": {"column": "client"},
    "costs": {"column": "costs"},
    "MyKpi": {"formula": "(clicks)+(impressions)*2"}
  },
  "dimensions": ["Datasource", "Client"],
  "columns": ["costs", "MyKpi"],
  "tables": ["facts_5", "facts_4"]
}`

type envelope struct {
	Status    string         `json:"status"`
	ErrorType string         `json:"errorType"`
	Error     string         `json:"error"`
	Data      map[string]any `json:"data"`
}

func newApp() *mux.Router {
	app := mux.NewRouter()
	RouteCompileApis(app, &service.CompileService{Dialect: sql.Postgres, Parallelism: 2, InlineUnion: true})
	return app
}

func post(t *testing.T, app http.Handler, path, body string) (int, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))
	res := envelope{}
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &res), rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	return rec.Code, res
}

func TestCompileRoute(t *testing.T) {
	code, res := post(t, newApp(), "/api/v1/compile", definitions)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", res.Status)
	assert.Equal(t, "postgres", res.Data["dialect"])
	assert.Contains(t, res.Data["sql"], `as "kpi_1~datasource"`)
	assert.Len(t, res.Data["fingerprint"], 16)
}

func TestCompileRouteDialect(t *testing.T) {
	body := strings.Replace(definitions, `"tables"`, `"dialect": "clickhouse", "tables"`, 1)
	code, res := post(t, newApp(), "/api/v1/compile", body)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "clickhouse", res.Data["dialect"])
	assert.Contains(t, res.Data["sql"], "as `kpi_1~client`")
}

func TestCompileRouteErrors(t *testing.T) {
	app := newApp()
	code, res := post(t, app, "/api/v1/compile", "{")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "bad_request", res.ErrorType)

	code, res = post(t, app, "/api/v1/compile", strings.Replace(definitions, "(impressions)*2", "(impressions)*", 1))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "error", res.Status)
	assert.Equal(t, "syntax_error", res.ErrorType)

	code, res = post(t, app, "/api/v1/compile", strings.Replace(definitions, "(clicks)+", "(unknown)+", 1))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "undefined_kpi", res.ErrorType)
	assert.Contains(t, res.Error, "unknown")

	code, res = post(t, app, "/api/v1/compile", strings.Replace(definitions, `"facts_5", "facts_4"`, "", 1))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "configuration_error", res.ErrorType)
}

func TestValidateFormulaRoute(t *testing.T) {
	app := newApp()
	code, res := post(t, app, "/api/v1/formula/validate",
		`{"formula": "((clicks))×2", "kpis": {"clicks": {"aggregation": "sum"}}}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "((clicks))*2", res.Data["canonical"])
	assert.Equal(t, []any{"clicks"}, res.Data["references"])

	code, res = post(t, app, "/api/v1/formula/validate", `{"formula": "(clicks)", "kpis": {}}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "undefined_kpi", res.ErrorType)

	code, res = post(t, app, "/api/v1/formula/validate", `{"kpis": {}}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "bad_request", res.ErrorType)
}

func TestCompileRouteMethod(t *testing.T) {
	rec := httptest.NewRecorder()
	newApp().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/compile", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
