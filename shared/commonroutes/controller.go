package commonroutes

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/metrico/kpiql/config"
	"github.com/metrico/kpiql/kpiql/parser"
	"github.com/metrico/kpiql/utils/logger"
)

// Set at build time with -ldflags "-X".
var (
	Version = "0.1.0"
	Branch  = "main"
)

const readinessProbe = "(ready)*2"

func Ready(w http.ResponseWriter, r *http.Request) {
	_, err := parser.Parse(readinessProbe)
	if err != nil {
		w.WriteHeader(500)
		logger.Error(err.Error())
		w.Write([]byte("Internal Server Error"))
		return
	}
	w.WriteHeader(200)
	w.Write([]byte("OK"))
}

func ConfigHandler(cfg *config.KpiqlConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cfg == nil {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("Not supported"))
			return
		}
		body, err := jsoniter.ConfigFastest.Marshal(cfg.Setting)
		if err != nil {
			w.WriteHeader(500)
			logger.Error(err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}
}

func BuildInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	jsoniter.ConfigFastest.NewEncoder(w).Encode(map[string]string{
		"version": Version,
		"branch":  Branch,
	})
}
