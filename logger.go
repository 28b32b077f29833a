package main

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger provides structured logging functionality on top of logrus
type Logger struct {
	entry *logrus.Logger
}

// NewLogger creates a new structured logger writing JSON lines to output
func NewLogger(level string, output io.Writer) *Logger {
	if output == nil {
		output = os.Stdout
	}

	l := logrus.New()
	l.SetOutput(output)
	l.SetLevel(parseLogLevel(level))
	l.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "timestamp",
			logrus.FieldKeyMsg:  "message",
			logrus.FieldKeyFunc: "caller",
		},
	})
	l.SetReportCaller(l.IsLevelEnabled(logrus.DebugLevel))

	return &Logger{entry: l}
}

func parseLogLevel(level string) logrus.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return logrus.DebugLevel
	case "INFO":
		return logrus.InfoLevel
	case "WARN", "WARNING":
		return logrus.WarnLevel
	case "ERROR":
		return logrus.ErrorLevel
	case "FATAL":
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}

// FieldLogger exposes the underlying logger to packages that accept a logrus.FieldLogger
func (l *Logger) FieldLogger() logrus.FieldLogger {
	return l.entry
}

// WithFields returns a new log entry with the specified fields
func (l *Logger) WithFields(fields map[string]interface{}) *LogEntryBuilder {
	return &LogEntryBuilder{entry: l.entry.WithFields(fields)}
}

// WithField returns a new log entry with a single field
func (l *Logger) WithField(key string, value interface{}) *LogEntryBuilder {
	return &LogEntryBuilder{entry: l.entry.WithField(key, value)}
}

// WithError returns a new log entry with an error field
func (l *Logger) WithError(err error) *LogEntryBuilder {
	return &LogEntryBuilder{entry: l.entry.WithError(err)}
}

func (l *Logger) Debug(message string) { l.entry.Debug(message) }
func (l *Logger) Info(message string)  { l.entry.Info(message) }
func (l *Logger) Warn(message string)  { l.entry.Warn(message) }
func (l *Logger) Error(message string) { l.entry.Error(message) }

// Fatal logs a fatal message and exits
func (l *Logger) Fatal(message string) { l.entry.Fatal(message) }

// LogEntryBuilder helps build log entries with fields
type LogEntryBuilder struct {
	entry *logrus.Entry
}

func (b *LogEntryBuilder) WithField(key string, value interface{}) *LogEntryBuilder {
	return &LogEntryBuilder{entry: b.entry.WithField(key, value)}
}

func (b *LogEntryBuilder) WithFields(fields map[string]interface{}) *LogEntryBuilder {
	return &LogEntryBuilder{entry: b.entry.WithFields(fields)}
}

func (b *LogEntryBuilder) WithError(err error) *LogEntryBuilder {
	return &LogEntryBuilder{entry: b.entry.WithError(err)}
}

func (b *LogEntryBuilder) Debug(message string) { b.entry.Debug(message) }
func (b *LogEntryBuilder) Info(message string)  { b.entry.Info(message) }
func (b *LogEntryBuilder) Warn(message string)  { b.entry.Warn(message) }
func (b *LogEntryBuilder) Error(message string) { b.entry.Error(message) }
func (b *LogEntryBuilder) Fatal(message string) { b.entry.Fatal(message) }

// Global logger instance
var AppLogger = NewLogger("INFO", os.Stdout)

// InitializeLogger initializes the global logger
func InitializeLogger(config *Config) {
	var output io.Writer = os.Stdout

	if config.IsProduction() {
		if err := os.MkdirAll("logs", 0755); err == nil {
			if file, err := os.OpenFile("logs/app.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666); err == nil {
				output = file
			}
		}
	}

	AppLogger = NewLogger(config.LogLevel, output)

	// Library code that logs through the logrus standard logger ends up in the same stream.
	logrus.SetOutput(output)
	logrus.SetFormatter(AppLogger.entry.Formatter)
	logrus.SetLevel(AppLogger.entry.GetLevel())
}
