package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/go-playground/validator.v9"
)

type LogSettings struct {
	Json          bool   `mapstructure:"json"`
	Stdout        bool   `mapstructure:"stdout"`
	Level         string `mapstructure:"level" validate:"omitempty,oneof=trace debug info warn warning error fatal panic"`
	Path          string `mapstructure:"path"`
	Name          string `mapstructure:"name"`
	MaxAgeDays    uint32 `mapstructure:"max_age_days"`
	RotationHours uint32 `mapstructure:"rotation_hours"`
}

type CorsSettings struct {
	Enable bool   `mapstructure:"enable"`
	Origin string `mapstructure:"origin"`
}

type HttpSettings struct {
	Host string       `mapstructure:"host"`
	Port int          `mapstructure:"port" validate:"min=0,max=65535"`
	Cors CorsSettings `mapstructure:"cors"`
}

type CompilerSettings struct {
	Dialect     string `mapstructure:"dialect" validate:"omitempty,oneof=postgres postgresql clickhouse"`
	Parallelism int    `mapstructure:"parallelism" validate:"min=0,max=1024"`
	UnionAlias  string `mapstructure:"union_alias"`
	InlineUnion bool   `mapstructure:"inline_union"`
}

type Setting struct {
	LOG_SETTINGS      LogSettings      `mapstructure:"log_settings"`
	HTTP_SETTINGS     HttpSettings     `mapstructure:"http_settings"`
	COMPILER_SETTINGS CompilerSettings `mapstructure:"compiler_settings"`
}

type KpiqlConfig struct {
	Setting Setting
}

var Kpiql *KpiqlConfig

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_settings.level", "info")
	v.SetDefault("log_settings.stdout", true)
	v.SetDefault("log_settings.name", "kpiql.log")
	v.SetDefault("log_settings.path", ".")
	v.SetDefault("log_settings.max_age_days", 7)
	v.SetDefault("log_settings.rotation_hours", 24)
	v.SetDefault("http_settings.host", "0.0.0.0")
	v.SetDefault("http_settings.port", 3200)
	v.SetDefault("compiler_settings.dialect", "postgres")
	v.SetDefault("compiler_settings.parallelism", 4)
	v.SetDefault("compiler_settings.union_alias", "facts")
	v.SetDefault("compiler_settings.inline_union", true)
}

// New reads the config file at path (if any), applies environment
// overrides and validates the result.
func New(path string) (*KpiqlConfig, error) {
	v := viper.New()
	setDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "unable to read config %s", path)
		}
	}
	cfg := &KpiqlConfig{}
	if err := v.Unmarshal(&cfg.Setting); err != nil {
		return nil, errors.Wrap(err, "unable to decode config")
	}
	if err := PortEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *KpiqlConfig) Validate() error {
	err := validator.New().Struct(c.Setting)
	if err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}

func boolEnv(key string) (bool, error) {
	val := strings.ToLower(os.Getenv(key))
	for _, v := range []string{"true", "1", "yes", "y"} {
		if v == val {
			return true, nil
		}
	}
	for _, v := range []string{"false", "0", "no", "n", ""} {
		if v == val {
			return false, nil
		}
	}
	return false, fmt.Errorf("%s value must be one of [no, n, false, 0, yes, y, true, 1]", key)
}

func intEnv(key string, target *int) error {
	if os.Getenv(key) == "" {
		return nil
	}
	val, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fmt.Errorf("invalid %s value: %w", key, err)
	}
	*target = val
	return nil
}

// PortEnv overrides config values with the environment.
func PortEnv(cfg *KpiqlConfig) error {
	s := &cfg.Setting
	if os.Getenv("HOST") != "" {
		s.HTTP_SETTINGS.Host = os.Getenv("HOST")
	}
	if err := intEnv("PORT", &s.HTTP_SETTINGS.Port); err != nil {
		return err
	}
	if os.Getenv("CORS_ALLOW_ORIGIN") != "" {
		s.HTTP_SETTINGS.Cors.Enable = true
		s.HTTP_SETTINGS.Cors.Origin = os.Getenv("CORS_ALLOW_ORIGIN")
	}
	if os.Getenv("LOG_LEVEL") != "" {
		s.LOG_SETTINGS.Level = os.Getenv("LOG_LEVEL")
	}
	if os.Getenv("LOG_JSON") != "" {
		json, err := boolEnv("LOG_JSON")
		if err != nil {
			return err
		}
		s.LOG_SETTINGS.Json = json
	}
	if os.Getenv("KPIQL_DIALECT") != "" {
		s.COMPILER_SETTINGS.Dialect = os.Getenv("KPIQL_DIALECT")
	}
	if err := intEnv("KPIQL_PARALLELISM", &s.COMPILER_SETTINGS.Parallelism); err != nil {
		return err
	}
	if os.Getenv("KPIQL_INLINE_UNION") != "" {
		inline, err := boolEnv("KPIQL_INLINE_UNION")
		if err != nil {
			return err
		}
		s.COMPILER_SETTINGS.InlineUnion = inline
	}
	if s.HTTP_SETTINGS.Host == "" {
		s.HTTP_SETTINGS.Host = "0.0.0.0"
	}
	return nil
}
