package sql

import (
	"fmt"
	"strings"
)

type RawObject struct {
	val string
}

func (r *RawObject) String(ctx *Ctx, options ...int) (string, error) {
	return r.val, nil
}

func NewRawObject(val string) *RawObject {
	return &RawObject{
		val: val,
	}
}

// NumberVal is a numeric literal kept in its source spelling, so "2.50" stays "2.50".
type NumberVal struct {
	val string
}

func (n *NumberVal) String(ctx *Ctx, options ...int) (string, error) {
	if n.val == "" {
		return "", fmt.Errorf("empty numeric literal")
	}
	return n.val, nil
}

func NewNumberVal(val string) *NumberVal {
	return &NumberVal{val: val}
}

type OrderBy struct {
	col       SQLObject
	direction int
	nulls     int
}

func (o *OrderBy) String(ctx *Ctx, options ...int) (string, error) {
	order := "desc"
	if o.direction == ORDER_BY_DIRECTION_ASC {
		order = "asc"
	}
	str, err := o.col.String(ctx, options...)
	if err != nil {
		return "", err
	}
	switch o.nulls {
	case ORDER_BY_NULLS_FIRST:
		return fmt.Sprintf("%s %s nulls first", str, order), nil
	case ORDER_BY_NULLS_LAST:
		return fmt.Sprintf("%s %s nulls last", str, order), nil
	}
	return fmt.Sprintf("%s %s", str, order), nil
}

func (o *OrderBy) NullsFirst() *OrderBy {
	o.nulls = ORDER_BY_NULLS_FIRST
	return o
}

func (o *OrderBy) NullsLast() *OrderBy {
	o.nulls = ORDER_BY_NULLS_LAST
	return o
}

func NewOrderBy(col SQLObject, direction int) *OrderBy {
	return &OrderBy{
		col:       col,
		direction: direction,
	}
}

type With struct {
	query ISelect
	alias string
}

func (w *With) GetQuery() ISelect {
	return w.query
}

func (w *With) GetAlias() string {
	return w.alias
}

func (w *With) String(ctx *Ctx, options ...int) (string, error) {
	str, err := w.query.String(ctx, options...)
	return fmt.Sprintf("%s as (%s)", ctx.QuoteIdent(w.alias), str), err
}

func NewWith(query ISelect, alias string) *With {
	return &With{
		query: query,
		alias: alias,
	}
}

// WithRef points at a WITH-bound query. Rendered with STRING_OPT_INLINE_WITH it expands
// to the sub-select itself instead of the alias.
type WithRef struct {
	ref *With
}

func (w *WithRef) String(ctx *Ctx, options ...int) (string, error) {
	if w.ref.alias == "" {
		return "", fmt.Errorf("alias is empty")
	}
	inline := false
	noAlias := false
	var _opts []int
	for _, opt := range options {
		inline = inline || opt == STRING_OPT_INLINE_WITH
		noAlias = noAlias || opt == WITH_REF_NO_ALIAS
		if opt != WITH_REF_NO_ALIAS {
			_opts = append(_opts, opt)
		}
	}
	res := ctx.QuoteIdent(w.ref.alias)
	if inline {
		str, err := w.ref.GetQuery().String(ctx, _opts...)
		if err != nil {
			return "", err
		}
		res = "(" + str + ")"
		if !noAlias {
			res += " as " + ctx.QuoteIdent(w.ref.alias)
		}
	}
	return res, nil
}

func NewWithRef(ref *With) *WithRef {
	return &WithRef{ref: ref}
}

type Col struct {
	expr  SQLObject
	alias string
}

func (c *Col) GetExpr() SQLObject {
	return c.expr
}

func (c *Col) GetAlias() string {
	return c.alias
}

func (c *Col) String(ctx *Ctx, options ...int) (string, error) {
	_opts := append(append([]int{}, options...), WITH_REF_NO_ALIAS)
	expr, err := c.expr.String(ctx, _opts...)
	if err != nil {
		return "", err
	}
	if c.alias == "" {
		return expr, nil
	}
	return fmt.Sprintf("%s as %s", expr, ctx.QuoteIdent(c.alias)), nil
}

func NewCol(expr SQLObject, alias string) SQLObject {
	return &Col{
		expr:  expr,
		alias: alias,
	}
}

func joinObjects(ctx *Ctx, objs []SQLObject, sep string, options ...int) (string, error) {
	parts := make([]string, len(objs))
	for i, o := range objs {
		str, err := o.String(ctx, options...)
		if err != nil {
			return "", err
		}
		parts[i] = str
	}
	return strings.Join(parts, sep), nil
}
