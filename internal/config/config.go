// Package config provides functionality for loading and accessing
// application configuration from files and environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var (
	once sync.Once
	// Logger is the global logger instance shared across the application.
	Logger = logrus.New()
)

// ConfigureLogging sets up logging based on environment variables and returns the configured logger
func ConfigureLogging() *logrus.Logger {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		Logger.Warnf("Invalid log level '%s', using 'info'", logLevelStr)
		logLevel = logrus.InfoLevel
	}
	Logger.SetLevel(logLevel)

	logFormat := os.Getenv("LOG_FORMAT")
	if strings.ToLower(logFormat) == "json" {
		Logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return Logger
}

// LoadEnv loads environment variables from .env file if it exists
func LoadEnv() {
	once.Do(func() {
		envFile := ".env"
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			envFile = filepath.Join("..", ".env")
			if _, err := os.Stat(envFile); os.IsNotExist(err) {
				Logger.Info("No .env file found, using environment variables")
				return
			}
		}

		if err := godotenv.Load(envFile); err != nil {
			Logger.Warnf("Error loading .env file: %v", err)
			return
		}
		Logger.Infof("Loaded environment variables from %s", envFile)

		ConfigureLogging()
	})
}

