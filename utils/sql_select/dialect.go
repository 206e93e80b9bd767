package sql

import (
	"fmt"
	"strings"
)

type Dialect interface {
	Name() string
	QuoteIdent(name string) string
}

type postgresDialect struct{}

func (postgresDialect) Name() string { return "postgres" }

func (postgresDialect) QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

type clickhouseDialect struct{}

func (clickhouseDialect) Name() string { return "clickhouse" }

func (clickhouseDialect) QuoteIdent(name string) string {
	name = strings.ReplaceAll(name, "\\", "\\\\")
	return "`" + strings.ReplaceAll(name, "`", "\\`") + "`"
}

var (
	Postgres   Dialect = postgresDialect{}
	ClickHouse Dialect = clickhouseDialect{}
)

// DialectByName maps a configured dialect name to its serializer. Empty means postgres.
func DialectByName(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "postgres", "postgresql":
		return Postgres, nil
	case "clickhouse":
		return ClickHouse, nil
	}
	return nil, fmt.Errorf("unknown SQL dialect %q", name)
}

// Render serializes obj for the given dialect in a fresh Ctx.
func Render(obj SQLObject, dialect Dialect, options ...int) (string, error) {
	if dialect == nil {
		dialect = Postgres
	}
	return obj.String(&Ctx{Dialect: dialect}, options...)
}
