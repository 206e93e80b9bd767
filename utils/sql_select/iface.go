package sql

const (
	STRING_OPT_SKIP_WITH    = 1
	STRING_OPT_INLINE_WITH  = 2
	ORDER_BY_DIRECTION_ASC  = 3
	ORDER_BY_DIRECTION_DESC = 4
	WITH_REF_NO_ALIAS       = 5
	ORDER_BY_NULLS_FIRST    = 6
	ORDER_BY_NULLS_LAST     = 7
)

type SQLObject interface {
	String(ctx *Ctx, options ...int) (string, error)
}

// Ctx is the per-serialization state. A fresh Ctx is created for every Render call,
// so query trees can be rendered concurrently.
type Ctx struct {
	Dialect Dialect
}

func (c *Ctx) QuoteIdent(name string) string {
	if c == nil || c.Dialect == nil {
		return Postgres.QuoteIdent(name)
	}
	return c.Dialect.QuoteIdent(name)
}

type ISelect interface {
	Select(cols ...SQLObject) ISelect
	GetSelect() []SQLObject
	From(table SQLObject) ISelect
	GetFrom() SQLObject
	GroupBy(fields ...SQLObject) ISelect
	GetGroupBy() []SQLObject
	OrderBy(fields ...SQLObject) ISelect
	GetOrderBy() []SQLObject
	With(withs ...*With) ISelect
	AddWith(withs ...*With) ISelect
	GetWith() []*With
	String(ctx *Ctx, options ...int) (string, error)
}

type Aliased interface {
	GetExpr() SQLObject
	GetAlias() string
	String(ctx *Ctx, options ...int) (string, error)
}
