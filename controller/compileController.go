package controllerv1

import (
	"net/http"

	"github.com/metrico/kpiql/model"
	"github.com/metrico/kpiql/service"
)

type CompileController struct {
	CompileService *service.CompileService
}

type validateFormulaRequest struct {
	Formula string                  `json:"formula"`
	Kpis    map[string]model.KpiDef `json:"kpis"`
}

func (c *CompileController) Compile(w http.ResponseWriter, r *http.Request) {
	defer tamePanic(w, r)
	defs := &model.Definitions{}
	if err := readJSON(w, r, defs); err != nil {
		KpiError(http.StatusBadRequest, "bad_request", err.Error(), w)
		return
	}
	res, err := c.CompileService.Compile(defs)
	if err != nil {
		CompileError(err, w)
		return
	}
	writeSuccess(res, w)
}

func (c *CompileController) ValidateFormula(w http.ResponseWriter, r *http.Request) {
	defer tamePanic(w, r)
	req := &validateFormulaRequest{}
	if err := readJSON(w, r, req); err != nil {
		KpiError(http.StatusBadRequest, "bad_request", err.Error(), w)
		return
	}
	if req.Formula == "" {
		KpiError(http.StatusBadRequest, "bad_request", "formula is required", w)
		return
	}
	kpis := (&model.Definitions{Kpis: req.Kpis}).KpiDefs()
	res, err := c.CompileService.ValidateFormula(req.Formula, kpis)
	if err != nil {
		CompileError(err, w)
		return
	}
	writeSuccess(res, w)
}
