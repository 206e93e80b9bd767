package apirouterv1

import (
	"github.com/gorilla/mux"
	controllerv1 "github.com/metrico/kpiql/controller"
	"github.com/metrico/kpiql/service"
)

func RouteCompileApis(app *mux.Router, svc *service.CompileService) {
	c := &controllerv1.CompileController{
		CompileService: svc,
	}
	app.HandleFunc("/api/v1/compile", c.Compile).Methods("POST")
	app.HandleFunc("/api/v1/formula/validate", c.ValidateFormula).Methods("POST")
}
