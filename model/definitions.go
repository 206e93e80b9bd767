package model

import (
	"os"
	"sort"
	"strings"

	"github.com/metrico/kpiql/kpiql/shared"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/validator.v9"
	"gopkg.in/yaml.v2"
)

type KpiDef struct {
	Aggregation string `yaml:"aggregation" json:"aggregation" validate:"omitempty,oneof=sum avg min max"`
}

type MappingDef struct {
	Column  string `yaml:"column,omitempty" json:"column,omitempty"`
	Formula string `yaml:"formula,omitempty" json:"formula,omitempty"`
}

// Definitions is one tenant's KPI setup as stored in YAML or sent as JSON.
type Definitions struct {
	Kpis       map[string]KpiDef     `yaml:"kpis" json:"kpis" validate:"dive"`
	Mappings   map[string]MappingDef `yaml:"mappings" json:"mappings" validate:"required"`
	Dimensions []string              `yaml:"dimensions" json:"dimensions" validate:"required,min=1,dive,required"`
	Columns    []string              `yaml:"columns" json:"columns" validate:"dive,required"`
	Tables     []string              `yaml:"tables" json:"tables" validate:"required,min=1,dive,required"`
	Dialect    string                `yaml:"dialect,omitempty" json:"dialect,omitempty" validate:"omitempty,oneof=postgres postgresql clickhouse"`
}

var validate = validator.New()

// Validate checks the structure of the definitions. Failures are
// *shared.ConfigurationError.
func (d *Definitions) Validate() error {
	if d == nil {
		return shared.NewConfigurationError("no definitions")
	}
	if err := validate.Struct(d); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fe.Namespace()+" fails '"+fe.Tag()+"'")
			}
			return shared.NewConfigurationError("invalid definitions: %s", strings.Join(msgs, "; "))
		}
		return shared.NewConfigurationError("invalid definitions: %v", err)
	}
	names := make([]string, 0, len(d.Mappings))
	for name := range d.Mappings {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		m := d.Mappings[name]
		if (m.Column == "") == (m.Formula == "") {
			return shared.NewConfigurationError("mapping %s must set exactly one of column and formula", name)
		}
	}
	return nil
}

func (d *Definitions) KpiDefs() KpiDefs {
	res := make(KpiDefs, len(d.Kpis))
	for name, k := range d.Kpis {
		res[name] = Kpi{Name: name, Aggregation: k.Aggregation}
	}
	return res
}

func (d *Definitions) DataMappings() DataMappings {
	res := make(DataMappings, len(d.Mappings))
	for name, m := range d.Mappings {
		if m.Formula != "" {
			res[name] = Formula(m.Formula)
			continue
		}
		res[name] = Column(m.Column)
	}
	return res
}

func (d *Definitions) FactDimensions() []FactDimension {
	return NewDimensions(d.Dimensions...)
}

func (d *Definitions) FactColumns() []FactColumn {
	return NewColumns(d.Columns...)
}

func (d *Definitions) FactSources() []FactSource {
	return NewSources(d.Tables...)
}

// ParseDefinitions reads YAML. JSON documents are accepted as well.
func ParseDefinitions(data []byte) (*Definitions, error) {
	res := &Definitions{}
	if err := yaml.UnmarshalStrict(data, res); err != nil {
		return nil, errors.Wrap(err, "unable to parse definitions")
	}
	return res, nil
}

func LoadDefinitions(path string) (*Definitions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read definitions %s", path)
	}
	defs, err := ParseDefinitions(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return defs, nil
}
