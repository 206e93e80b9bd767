package commonroutes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/metrico/kpiql/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(app *mux.Router, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestCommonRoutes(t *testing.T) {
	cfg, err := config.New("")
	require.NoError(t, err)
	app := mux.NewRouter()
	RegisterCommonRoutes(app, cfg)

	rec := serve(app, http.MethodGet, "/ready")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = serve(app, http.MethodGet, "/api/status/buildinfo")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"version":"`+Version+`","branch":"`+Branch+`"}`, rec.Body.String())

	rec = serve(app, http.MethodGet, "/config")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Dialect":"postgres"`)

	rec = serve(app, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "promhttp_metric_handler_requests_total")

	rec = serve(app, http.MethodPost, "/ready")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestConfigWithoutSettings(t *testing.T) {
	app := mux.NewRouter()
	RegisterCommonRoutes(app, nil)
	rec := serve(app, http.MethodGet, "/config")
	assert.Equal(t, "Not supported", rec.Body.String())
}
