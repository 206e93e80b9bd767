package model

type CompileResult struct {
	SQL         string `json:"sql"`
	Fingerprint string `json:"fingerprint"`
	Dialect     string `json:"dialect"`
	Formulas    int    `json:"formulas"`
}

type FormulaInfo struct {
	Formula    string   `json:"formula"`
	Canonical  string   `json:"canonical"`
	References []string `json:"references"`
}
