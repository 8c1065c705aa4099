package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/rios0rios0/gitbridge/config"
)

const (
	// FormatJSON switches log lines to JSON objects.
	FormatJSON = "json"

	maxSizeMB  = 50
	maxBackups = 3
	maxAgeDays = 14
)

// Configure applies the log settings to the standard logrus logger. Lines go to
// stderr, or to a rotating file when a file is set; stdout belongs to the MCP
// transport and is never written to.
func Configure(settings config.LogSettings) {
	logger.SetFormatter(NewFormatter(settings.Format))
	logger.SetLevel(ParseLevel(settings.Level))
	logger.SetOutput(NewWriter(settings.File))
}

// NewFormatter returns a JSON formatter for "json" and a text formatter otherwise.
func NewFormatter(format string) logger.Formatter {
	if strings.EqualFold(format, FormatJSON) {
		//nolint:exhaustruct // Minimal JSONFormatter initialization with required fields only
		return &logger.JSONFormatter{}
	}
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	return &logger.TextFormatter{
		FullTimestamp: true,
	}
}

// ParseLevel falls back to info for empty or unknown levels.
func ParseLevel(level string) logger.Level {
	if level == "" {
		return logger.InfoLevel
	}
	parsed, err := logger.ParseLevel(level)
	if err != nil {
		logger.Warnf("Unknown log level %q, using info", level)
		return logger.InfoLevel
	}
	return parsed
}

// NewWriter returns a rotating file writer for path, or stderr when path is empty
// or its directory cannot be created.
func NewWriter(path string) io.Writer {
	if path == "" {
		return os.Stderr
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			logger.Warnf("Failed to create log directory %q, logging to stderr: %v", dir, err)
			return os.Stderr
		}
	}

	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}
}
