package main

import (
	"testing"

	"github.com/metrico/kpiql/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setFlags(dialect string, cte bool) {
	appFlags.Dialect = &dialect
	appFlags.WithClause = &cte
}

func TestNewCompileService(t *testing.T) {
	cfg, err := config.New("")
	require.NoError(t, err)

	setFlags("", false)
	svc, err := newCompileService(cfg)
	require.NoError(t, err)
	assert.Equal(t, "postgres", svc.Dialect.Name())
	assert.True(t, svc.InlineUnion)
	assert.Equal(t, 4, svc.Parallelism)

	setFlags("clickhouse", true)
	svc, err = newCompileService(cfg)
	require.NoError(t, err)
	assert.Equal(t, "clickhouse", svc.Dialect.Name())
	assert.False(t, svc.InlineUnion)

	setFlags("oracle", false)
	_, err = newCompileService(cfg)
	assert.Error(t, err)
}

func TestCompileDefinitions(t *testing.T) {
	cfg, err := config.New("")
	require.NoError(t, err)
	setFlags("", false)
	svc, err := newCompileService(cfg)
	require.NoError(t, err)

	assert.NoError(t, compileDefinitions(svc, "model/testdata/definitions.yaml"))
	assert.Error(t, compileDefinitions(svc, "model/testdata/missing.yaml"))
}
