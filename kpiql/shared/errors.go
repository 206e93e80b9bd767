package shared

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	KindSyntax            = "syntax_error"
	KindUndefinedKpi      = "undefined_kpi"
	KindUnmappedDimension = "unmapped_dimension"
	KindConfiguration     = "configuration_error"
	KindInternal          = "internal_error"
)

// ICompileError is implemented by every error the compiler and the assembler return.
type ICompileError interface {
	error
	GetCode() int
	Kind() string
}

// SyntaxError is a malformed formula. Line and Column are 1-based.
type SyntaxError struct {
	Formula string
	Line    int
	Column  int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error in formula %q at line %d:%d: %s", e.Formula, e.Line, e.Column, e.Message)
}

func (e *SyntaxError) GetCode() int { return http.StatusBadRequest }
func (e *SyntaxError) Kind() string { return KindSyntax }

type UndefinedKpiError struct {
	Name    string
	Formula string
}

func (e *UndefinedKpiError) Error() string {
	if e.Formula == "" {
		return fmt.Sprintf("undefined KPI %s", e.Name)
	}
	return fmt.Sprintf("undefined KPI %s in formula %q", e.Name, e.Formula)
}

func (e *UndefinedKpiError) GetCode() int { return http.StatusBadRequest }
func (e *UndefinedKpiError) Kind() string { return KindUndefinedKpi }

type UnmappedDimensionError struct {
	Name string
}

func (e *UnmappedDimensionError) Error() string {
	return fmt.Sprintf("dimension %s has no mapping", e.Name)
}

func (e *UnmappedDimensionError) GetCode() int { return http.StatusBadRequest }
func (e *UnmappedDimensionError) Kind() string { return KindUnmappedDimension }

type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Message
}

func (e *ConfigurationError) GetCode() int { return http.StatusBadRequest }
func (e *ConfigurationError) Kind() string { return KindConfiguration }

func NewConfigurationError(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Message: fmt.Sprintf(format, args...)}
}

// InternalCompileError means the compiler met a tree it cannot translate.
// Correct input never produces it.
type InternalCompileError struct {
	Message string
}

func (e *InternalCompileError) Error() string {
	return "internal compile error: " + e.Message
}

func (e *InternalCompileError) GetCode() int { return http.StatusInternalServerError }
func (e *InternalCompileError) Kind() string { return KindInternal }

func NewInternalCompileError(format string, args ...any) *InternalCompileError {
	return &InternalCompileError{Message: fmt.Sprintf(format, args...)}
}

func Unwrap[T ICompileError](err error) (T, bool) {
	var target T
	if errors.As(err, &target) {
		return target, true
	}
	return target, false
}

// ErrorKind reports the kind of a compile error anywhere in err's chain,
// or KindInternal for anything else.
func ErrorKind(err error) string {
	if e, ok := Unwrap[ICompileError](err); ok {
		return e.Kind()
	}
	return KindInternal
}

// ErrorCode is the HTTP status matching err.
func ErrorCode(err error) int {
	if e, ok := Unwrap[ICompileError](err); ok {
		return e.GetCode()
	}
	return http.StatusInternalServerError
}
