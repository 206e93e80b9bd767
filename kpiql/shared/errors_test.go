package shared

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKindAndCode(t *testing.T) {
	for _, c := range []struct {
		err  error
		kind string
		code int
	}{
		{&SyntaxError{Formula: "(a", Line: 1, Column: 3, Message: "unexpected EOF"}, KindSyntax, http.StatusBadRequest},
		{&UndefinedKpiError{Name: "a"}, KindUndefinedKpi, http.StatusBadRequest},
		{&UnmappedDimensionError{Name: "Client"}, KindUnmappedDimension, http.StatusBadRequest},
		{NewConfigurationError("no tables"), KindConfiguration, http.StatusBadRequest},
		{NewInternalCompileError("nil node"), KindInternal, http.StatusInternalServerError},
		{errors.New("boom"), KindInternal, http.StatusInternalServerError},
	} {
		assert.Equal(t, c.kind, ErrorKind(c.err), c.err.Error())
		assert.Equal(t, c.code, ErrorCode(c.err), c.err.Error())
	}
}

func TestUnwrapThroughWrapping(t *testing.T) {
	err := fmt.Errorf("column MyKpi: %w", &UndefinedKpiError{Name: "clicks", Formula: "(clicks)"})
	kpiErr, ok := Unwrap[*UndefinedKpiError](err)
	assert.True(t, ok)
	assert.Equal(t, "clicks", kpiErr.Name)
	assert.Equal(t, KindUndefinedKpi, ErrorKind(err))

	_, ok = Unwrap[*SyntaxError](err)
	assert.False(t, ok)
}

func TestMessages(t *testing.T) {
	assert.Equal(t, `syntax error in formula "(a" at line 1:3: unexpected EOF`,
		(&SyntaxError{Formula: "(a", Line: 1, Column: 3, Message: "unexpected EOF"}).Error())
	assert.Equal(t, `undefined KPI x in formula "(x)"`, (&UndefinedKpiError{Name: "x", Formula: "(x)"}).Error())
	assert.Equal(t, "undefined KPI x", (&UndefinedKpiError{Name: "x"}).Error())
	assert.Equal(t, "configuration error: no tables", NewConfigurationError("no %s", "tables").Error())
}
