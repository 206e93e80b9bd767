package main

import (
	"os"

	"github.com/grafana/pyroscope-go"
	"github.com/metrico/kpiql/utils/logger"
)

func initPyro() {
	serverAddress := os.Getenv("PYROSCOPE_SERVER_ADDRESS")
	if serverAddress == "" {
		return
	}

	applicationName := os.Getenv("PYROSCOPE_APPLICATION_NAME")
	if applicationName == "" {
		applicationName = "kpiql"
	}

	config := pyroscope.Config{
		ApplicationName: applicationName,
		ServerAddress:   serverAddress,
		Logger:          logger.Logger,
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
		},
	}

	_, err := pyroscope.Start(config)
	if err != nil {
		logger.Logger.Fatalf("Failed to start Pyroscope: %v", err)
	}
	logger.Info("Pyroscope profiling started")
}
