package sql

import (
	"fmt"
	"strings"
)

type Select struct {
	columns []SQLObject
	from    SQLObject
	groupBy []SQLObject
	orderBy []SQLObject
	withs   []*With
}

func (s *Select) Select(cols ...SQLObject) ISelect {
	s.columns = cols
	return s
}

func (s *Select) GetSelect() []SQLObject {
	return s.columns
}

func (s *Select) From(table SQLObject) ISelect {
	s.from = table
	return s
}

func (s *Select) GetFrom() SQLObject {
	return s.from
}

func (s *Select) GroupBy(fields ...SQLObject) ISelect {
	s.groupBy = fields
	return s
}

func (s *Select) GetGroupBy() []SQLObject {
	return s.groupBy
}

func (s *Select) OrderBy(fields ...SQLObject) ISelect {
	s.orderBy = fields
	return s
}

func (s *Select) GetOrderBy() []SQLObject {
	return s.orderBy
}

func (s *Select) With(withs ...*With) ISelect {
	s.withs = []*With{}
	s.AddWith(withs...)
	return s
}

func (s *Select) AddWith(withs ...*With) ISelect {
	if s.withs == nil {
		return s.With(withs...)
	}
	for _, w := range withs {
		exists := false
		for _, with := range s.withs {
			if with.alias == w.alias {
				exists = true
			}
		}
		if exists {
			continue
		}

		s.AddWith(w.GetQuery().GetWith()...)
		s.withs = append(s.withs, w)
	}
	return s
}

func (s *Select) GetWith() []*With {
	res := make([]*With, 0, len(s.withs))
	for _, w := range s.withs {
		res = append(res, w)
	}
	return res
}

func (s *Select) String(ctx *Ctx, options ...int) (string, error) {
	res := strings.Builder{}
	skipWith := false
	for _, i := range options {
		skipWith = skipWith || i == STRING_OPT_SKIP_WITH || i == STRING_OPT_INLINE_WITH
	}
	if !skipWith && len(s.withs) > 0 {
		res.WriteString("WITH ")
		_options := append(append([]int{}, options...), STRING_OPT_SKIP_WITH)
		for i, w := range s.withs {
			if i != 0 {
				res.WriteString(", ")
			}
			str, err := w.String(ctx, _options...)
			if err != nil {
				return "", err
			}
			res.WriteString(str)
		}
		res.WriteString(" ")
	}
	res.WriteString("SELECT ")
	if len(s.columns) == 0 {
		return "", fmt.Errorf("no 'SELECT' part")
	}
	str, err := joinObjects(ctx, s.columns, ", ", options...)
	if err != nil {
		return "", err
	}
	res.WriteString(str)
	if s.from != nil {
		res.WriteString(" FROM ")
		str, err = s.from.String(ctx, options...)
		if err != nil {
			return "", err
		}
		res.WriteString(str)
	}
	if len(s.groupBy) > 0 {
		res.WriteString(" GROUP BY ")
		str, err = joinObjects(ctx, s.groupBy, ", ", options...)
		if err != nil {
			return "", err
		}
		res.WriteString(str)
	}
	if len(s.orderBy) > 0 {
		res.WriteString(" ORDER BY ")
		str, err = joinObjects(ctx, s.orderBy, ", ", options...)
		if err != nil {
			return "", err
		}
		res.WriteString(str)
	}
	return res.String(), nil
}

func NewSelect() ISelect {
	return &Select{}
}

// unionAll keeps the first select as the embedded ISelect so it can be bound by a With
// like any other query.
type unionAll struct {
	ISelect
	subSelects []ISelect
}

func (u *unionAll) String(ctx *Ctx, options ...int) (string, error) {
	strSubSelects := make([]string, len(u.subSelects)+1)
	var err error
	strSubSelects[0], err = u.ISelect.String(ctx, options...)
	if err != nil {
		return "", err
	}
	for i, s := range u.subSelects {
		strSubSelects[i+1], err = s.String(ctx, options...)
		if err != nil {
			return "", err
		}
	}
	return strings.Join(strSubSelects, " UNION ALL "), nil
}

func (u *unionAll) GetUnion() []ISelect {
	return append([]ISelect{u.ISelect}, u.subSelects...)
}

func NewUnionAll(first ISelect, rest ...ISelect) ISelect {
	return &unionAll{first, rest}
}
