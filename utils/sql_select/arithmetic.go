package sql

import (
	"fmt"
	"strings"
)

// ArithmeticOp renders as "(left op right)". Every operation is parenthesised, so the
// tree shape alone decides evaluation order in the generated SQL.
type ArithmeticOp struct {
	op    string
	left  SQLObject
	right SQLObject
}

func (a *ArithmeticOp) GetOp() string {
	return a.op
}

func (a *ArithmeticOp) GetLeft() SQLObject {
	return a.left
}

func (a *ArithmeticOp) GetRight() SQLObject {
	return a.right
}

func (a *ArithmeticOp) String(ctx *Ctx, options ...int) (string, error) {
	left, err := a.left.String(ctx, options...)
	if err != nil {
		return "", err
	}
	right, err := a.right.String(ctx, options...)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%s %s %s)", left, a.op, right), nil
}

func NewArithmeticOp(op string, left SQLObject, right SQLObject) *ArithmeticOp {
	return &ArithmeticOp{
		op:    op,
		left:  left,
		right: right,
	}
}

func Add(left SQLObject, right SQLObject) *ArithmeticOp {
	return NewArithmeticOp("+", left, right)
}

func Sub(left SQLObject, right SQLObject) *ArithmeticOp {
	return NewArithmeticOp("-", left, right)
}

func Mul(left SQLObject, right SQLObject) *ArithmeticOp {
	return NewArithmeticOp("*", left, right)
}

func Div(left SQLObject, right SQLObject) *ArithmeticOp {
	return NewArithmeticOp("/", left, right)
}

type Aggregate struct {
	fn  string
	arg SQLObject
}

func (a *Aggregate) GetFunction() string {
	return a.fn
}

func (a *Aggregate) GetArg() SQLObject {
	return a.arg
}

func (a *Aggregate) String(ctx *Ctx, options ...int) (string, error) {
	arg, err := a.arg.String(ctx, options...)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s(%s)", a.fn, arg), nil
}

func NewAggregate(fn string, arg SQLObject) *Aggregate {
	return &Aggregate{
		fn:  strings.ToLower(fn),
		arg: arg,
	}
}

func Sum(arg SQLObject) *Aggregate {
	return NewAggregate("sum", arg)
}

func Avg(arg SQLObject) *Aggregate {
	return NewAggregate("avg", arg)
}

func Min(arg SQLObject) *Aggregate {
	return NewAggregate("min", arg)
}

func Max(arg SQLObject) *Aggregate {
	return NewAggregate("max", arg)
}

// Window evaluates fn per partition without collapsing rows.
type Window struct {
	fn          SQLObject
	partitionBy []SQLObject
}

func (w *Window) GetFunction() SQLObject {
	return w.fn
}

func (w *Window) GetPartitionBy() []SQLObject {
	return w.partitionBy
}

func (w *Window) String(ctx *Ctx, options ...int) (string, error) {
	fn, err := w.fn.String(ctx, options...)
	if err != nil {
		return "", err
	}
	if len(w.partitionBy) == 0 {
		return fmt.Sprintf("%s over ()", fn), nil
	}
	partition, err := joinObjects(ctx, w.partitionBy, ", ", options...)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s over (partition by %s)", fn, partition), nil
}

func NewWindow(fn SQLObject, partitionBy ...SQLObject) *Window {
	return &Window{
		fn:          fn,
		partitionBy: partitionBy,
	}
}
