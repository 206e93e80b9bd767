package sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableSelect(name string) ISelect {
	return NewSelect().Select(NewRawObject("*")).From(NewRawObject(name))
}

func TestArithmetic(t *testing.T) {
	expr := Add(Sum(NewRawObject("clicks")), Mul(Avg(NewRawObject("impressions")), NewNumberVal("2")))
	str, err := Render(expr, Postgres)
	require.NoError(t, err)
	assert.Equal(t, "(sum(clicks) + (avg(impressions) * 2))", str)

	str, err = Render(Div(Sub(NewNumberVal("1"), NewNumberVal("2.50")), NewRawObject("x")), Postgres)
	require.NoError(t, err)
	assert.Equal(t, "((1 - 2.50) / x)", str)
}

func TestWindow(t *testing.T) {
	w := NewWindow(Sum(Sum(NewRawObject("clicks"))), NewRawObject("datasource"))
	str, err := Render(w, Postgres)
	require.NoError(t, err)
	assert.Equal(t, "sum(sum(clicks)) over (partition by datasource)", str)

	str, err = Render(NewWindow(Max(NewRawObject("a")), NewRawObject("b"), NewRawObject("c")), Postgres)
	require.NoError(t, err)
	assert.Equal(t, "max(a) over (partition by b, c)", str)

	str, err = Render(NewWindow(Min(NewRawObject("a"))), Postgres)
	require.NoError(t, err)
	assert.Equal(t, "min(a) over ()", str)
}

func TestColQuoting(t *testing.T) {
	col := NewCol(Sum(NewRawObject("clicks")), "kpi_0~data\"source")
	str, err := Render(col, Postgres)
	require.NoError(t, err)
	assert.Equal(t, `sum(clicks) as "kpi_0~data""source"`, str)

	col = NewCol(Sum(NewRawObject("clicks")), "kpi_0~da`ta")
	str, err = Render(col, ClickHouse)
	require.NoError(t, err)
	assert.Equal(t, "sum(clicks) as `kpi_0~da\\`ta`", str)
}

func TestOrderBy(t *testing.T) {
	str, err := Render(NewOrderBy(NewRawObject("a"), ORDER_BY_DIRECTION_ASC).NullsLast(), Postgres)
	require.NoError(t, err)
	assert.Equal(t, "a asc nulls last", str)

	str, err = Render(NewOrderBy(NewRawObject("a"), ORDER_BY_DIRECTION_DESC).NullsFirst(), Postgres)
	require.NoError(t, err)
	assert.Equal(t, "a desc nulls first", str)

	str, err = Render(NewOrderBy(NewRawObject("a"), ORDER_BY_DIRECTION_DESC), Postgres)
	require.NoError(t, err)
	assert.Equal(t, "a desc", str)
}

func TestUnionAllWith(t *testing.T) {
	union := NewUnionAll(tableSelect("facts_5"), tableSelect("facts_4"), tableSelect("facts_3"))
	with := NewWith(union, "facts")
	main := NewSelect().
		With(with).
		Select(NewRawObject("client")).
		From(NewWithRef(with)).
		GroupBy(NewRawObject("client")).
		OrderBy(NewOrderBy(NewRawObject("client"), ORDER_BY_DIRECTION_ASC).NullsLast())

	str, err := Render(main, Postgres, STRING_OPT_INLINE_WITH)
	require.NoError(t, err)
	assert.Equal(t, `SELECT client FROM (SELECT * FROM facts_5 UNION ALL SELECT * FROM facts_4 UNION ALL SELECT * FROM facts_3) as "facts" GROUP BY client ORDER BY client asc nulls last`, str)

	str, err = Render(main, ClickHouse)
	require.NoError(t, err)
	assert.Equal(t, "WITH `facts` as (SELECT * FROM facts_5 UNION ALL SELECT * FROM facts_4 UNION ALL SELECT * FROM facts_3) SELECT client FROM `facts` GROUP BY client ORDER BY client asc nulls last", str)
}

func TestSingleTableUnion(t *testing.T) {
	str, err := Render(NewUnionAll(tableSelect("facts_5")), Postgres)
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM facts_5", str)
}

func TestEmptySelect(t *testing.T) {
	_, err := Render(NewSelect().From(NewRawObject("t")), Postgres)
	assert.Error(t, err)

	_, err = Render(NewNumberVal(""), Postgres)
	assert.Error(t, err)
}

func TestDialectByName(t *testing.T) {
	d, err := DialectByName("")
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())
	d, err = DialectByName("ClickHouse")
	require.NoError(t, err)
	assert.Equal(t, "clickhouse", d.Name())
	_, err = DialectByName("oracle")
	assert.Error(t, err)
}
