package logger

import (
	"bytes"
	"testing"

	"github.com/metrico/kpiql/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInitLogger(t *testing.T) {
	InitLogger(config.LogSettings{Stdout: true, Level: "debug", Json: true})
	assert.Equal(t, logrus.DebugLevel, Logger.GetLevel())
	_, isJson := Logger.Formatter.(*logrus.JSONFormatter)
	assert.True(t, isJson)

	buf := &bytes.Buffer{}
	Logger.SetOutput(buf)
	WithFields(LogInfo{"fingerprint": "abc"}).Debug("compiled")
	assert.Contains(t, buf.String(), `"fingerprint":"abc"`)
	assert.Contains(t, buf.String(), `"msg":"compiled"`)
}

func TestSetLoggerLevel(t *testing.T) {
	SetLoggerLevel("warn")
	assert.Equal(t, logrus.WarnLevel, Logger.GetLevel())
	SetLoggerLevel("loud")
	assert.Equal(t, logrus.ErrorLevel, Logger.GetLevel())
}

func TestFileOutput(t *testing.T) {
	dir := t.TempDir()
	InitLogger(config.LogSettings{Level: "info", Path: dir, Name: "kpiql.log", MaxAgeDays: 1, RotationHours: 1})
	defer InitLogger(config.LogSettings{Stdout: true, Level: "info"})
	assert.NotNil(t, RLogs)
	assert.Equal(t, RLogs, Logger.Out)
}
