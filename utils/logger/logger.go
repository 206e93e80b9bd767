package logger

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/metrico/kpiql/config"
	"github.com/sirupsen/logrus"
)

type LogInfo logrus.Fields

var RLogs *rotatelogs.RotateLogs
var Logger = logrus.New()

// InitLogger configures the global Logger from the log settings.
func InitLogger(settings config.LogSettings) {
	if settings.Json {
		Logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Logger.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: false,
			DisableColors:    true,
		})
	}

	if settings.Stdout {
		Logger.SetOutput(os.Stdout)
		log.SetOutput(os.Stdout)
	}

	if settings.Level == "" {
		settings.Level = "error"
	}
	SetLoggerLevel(settings.Level)

	Logger.Info("init logging system")

	if !settings.Stdout {
		configureLocalFileSystemHook(settings)
	}
}

func SetLoggerLevel(loglevelString string) {
	if logLevel, err := logrus.ParseLevel(loglevelString); err == nil {
		Logger.SetLevel(logLevel)
	} else {
		Logger.Error("Couldn't parse loglevel", loglevelString)
		Logger.SetLevel(logrus.ErrorLevel)
	}
}

func configureLocalFileSystemHook(settings config.LogSettings) {
	logPath := settings.Path
	logName := settings.Name
	var err error

	if configPath := os.Getenv("WEBAPPLOGPATH"); configPath != "" {
		logPath = configPath
	}
	if configName := os.Getenv("WEBAPPLOGNAME"); configName != "" {
		logName = configName
	}

	fileLogExtension := filepath.Ext(logName)
	fileLogBase := strings.TrimSuffix(logName, fileLogExtension)

	pathAllLog := filepath.Join(logPath, fileLogBase+"_%Y%m%d%H%M"+fileLogExtension)
	pathLog := filepath.Join(logPath, logName)

	RLogs, err = rotatelogs.New(
		pathAllLog,
		rotatelogs.WithLinkName(pathLog),
		rotatelogs.WithMaxAge(time.Duration(settings.MaxAgeDays)*24*time.Hour),
		rotatelogs.WithRotationTime(time.Duration(settings.RotationHours)*time.Hour),
	)
	if err != nil {
		Logger.Println("Local file system hook initialize fail")
		return
	}

	Logger.SetOutput(RLogs)
	log.SetOutput(RLogs)
}

func WithFields(fields LogInfo) *logrus.Entry {
	return Logger.WithFields(logrus.Fields(fields))
}

func Info(args ...interface{}) {
	Logger.Info(args...)
}

func Error(args ...interface{}) {
	Logger.Error(args...)
}

func Debug(args ...interface{}) {
	Logger.Debug(args...)
}
