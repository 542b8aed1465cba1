// Package logging writes cardlab's diagnostic log. The TUI owns the
// terminal, so nothing here ever touches stdout or stderr.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
)

var (
	logger  zerolog.Logger
	logFile *os.File
	logPath string
	enabled bool
)

// Init initializes the logger with the default log path for the OS
func Init() error {
	logDir := getLogDir()
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath = filepath.Join(logDir, "cardlab.log")

	var err error
	logFile, err = os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	logger = zerolog.New(logFile).With().Timestamp().Logger()
	enabled = true

	Info("cardlab started")

	return nil
}

// getLogDir returns the appropriate log directory for the OS
func getLogDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "/tmp/cardlab/logs"
		}
		return filepath.Join(home, "Library", "Logs", "cardlab")
	case "linux":
		home, err := os.UserHomeDir()
		if err != nil {
			return "/tmp/cardlab/logs"
		}
		return filepath.Join(home, ".local", "state", "cardlab", "logs")
	default:
		return "/tmp/cardlab/logs"
	}
}

// Close closes the log file
func Close() {
	if logFile != nil {
		Info("cardlab shutting down")
		logFile.Close()
	}
}

// GetLogPath returns the path to the log file
func GetLogPath() string {
	return logPath
}

// Debug logs a debug message
func Debug(format string, args ...interface{}) {
	if enabled {
		logger.Debug().Msgf(format, args...)
	}
}

// Info logs an info message
func Info(format string, args ...interface{}) {
	if enabled {
		logger.Info().Msgf(format, args...)
	}
}

// Warn logs a warning message
func Warn(format string, args ...interface{}) {
	if enabled {
		logger.Warn().Msgf(format, args...)
	}
}

// Error logs an error message
func Error(format string, args ...interface{}) {
	if enabled {
		logger.Error().Msgf(format, args...)
	}
}
