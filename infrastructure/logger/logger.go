package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

var logger = log.New()

func init() {
	logger.Out = os.Stdout
	logger.Formatter = &log.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
	}
	logger.SetLevel(log.DebugLevel)

	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		if parsed, err := log.ParseLevel(lvl); err == nil {
			logger.SetLevel(parsed)
		}
	}

	// Stdout suits systemd/docker; LOG_TO_FILE=true writes to logs/<date><env>.log instead.
	if os.Getenv("LOG_TO_FILE") == "true" {
		openLogFile()
	}
}

func openLogFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logger.WithField("error", err).Warn("Failed to get working directory, logging to stdout")
		return
	}
	logsDir := filepath.Join(cwd, "logs")
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		logger.Warnf("Failed to create logs directory %s: %v, falling back to stdout", logsDir, err)
		return
	}
	name := fmt.Sprintf("%s%s.log", time.Now().Format("2006-01-02"), os.Getenv("ENV"))
	f, err := os.OpenFile(filepath.Join(logsDir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		logger.Warnf("Failed to open log file %s: %v, falling back to stdout", name, err)
		return
	}
	logger.Out = f
}

// Configure applies the configured log format ("json" or "text").
func Configure(format string) {
	switch strings.ToLower(format) {
	case "text":
		logger.Formatter = &log.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339Nano,
		}
	case "", "json":
		logger.Formatter = &log.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		}
	default:
		logger.WithField("format", format).Warn("Unknown log format, keeping JSON")
	}
}

// SetOutput redirects log output, mostly for tests.
func SetOutput(w io.Writer) {
	logger.Out = w
}

// GetLogger returns an entry annotated with the caller's location.
func GetLogger() *log.Entry {
	pc, file, line, _ := runtime.Caller(1)

	fields := log.Fields{
		"file": file,
		"line": line,
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		fields["function"] = fn.Name()
	}
	return logger.WithFields(fields)
}
