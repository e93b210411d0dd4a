package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// logger is the global logger instance
	logger *Logger
	once   sync.Once
)

// Logger wraps the standard logger with color support
type Logger struct {
	*logrus.Logger
	green  *color.Color
	cyan   *color.Color
	red    *color.Color
	yellow *color.Color
	bold   *color.Color
}

// FileOptions configures the optional rotating log file written next to the console output.
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New returns the process-wide logger.
func New() *Logger {
	once.Do(func() {
		logger = Wrap(logrus.New())

		// Configure logrus
		logger.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: "2006/01/02 15:04:05",
			FullTimestamp:   true,
			ForceColors:     true,
			DisableSorting:  true,
		})

		// Set log level based on environment variable
		logger.SetLevel(logrus.InfoLevel)
		if os.Getenv("DEBUG") == "true" {
			logger.EnableDebug()
		}
	})
	return logger
}

// Wrap builds a Logger around an existing logrus logger. Tests use it with
// logrus' null logger to inspect emitted entries.
func Wrap(l *logrus.Logger) *Logger {
	return &Logger{
		Logger: l,
		green:  color.New(color.FgGreen),
		cyan:   color.New(color.FgCyan),
		red:    color.New(color.FgRed),
		yellow: color.New(color.FgYellow),
		bold:   color.New(color.Bold),
	}
}

// EnableDebug switches to debug level. The first switch is announced.
func (l *Logger) EnableDebug() {
	if l.IsDebugEnabled() {
		return
	}
	l.SetLevel(logrus.DebugLevel)
	l.Info("Debug logging enabled")
}

// AttachFile tees all output into a size-rotated file.
func (l *Logger) AttachFile(opts FileOptions) {
	if opts.Path == "" {
		return
	}
	file := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
	}
	l.SetOutput(io.MultiWriter(l.Out, file))
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.Logger.Debug(msg)
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.Logger.Info(msg)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.Logger.Warn(msg)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.Logger.Error(msg)
}

// Fatal logs a fatal message and exits
func (l *Logger) Fatal(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.Logger.Fatal(msg)
}

// Separator logs a horizontal rule made of ch.
func (l *Logger) Separator(ch string) {
	l.Logger.Info(strings.Repeat(ch, 80))
}

// TestBegin marks the start of a scenario in the log stream.
func (l *Logger) TestBegin(name string) {
	l.Logger.WithField("event", "begin").Info(l.bold.Sprintf("-----------------  %s  -----------------", name))
}

// TestEnd marks the end of a scenario together with its final status.
func (l *Logger) TestEnd(name, status string) {
	c := l.green
	switch strings.ToLower(status) {
	case "failed":
		c = l.red
	case "skipped", "pending", "undefined":
		c = l.yellow
	}
	l.Logger.WithFields(logrus.Fields{"event": "end", "status": status}).
		Info(c.Sprintf("-----------------  %s - %s  -----------------", name, strings.ToUpper(status)))
}

// Highlight returns msg rendered in cyan, for URLs and paths in log lines.
func (l *Logger) Highlight(msg string) string {
	return l.cyan.Sprint(msg)
}

// IsDebugEnabled returns whether debug logging is enabled
func (l *Logger) IsDebugEnabled() bool {
	return l.GetLevel() == logrus.DebugLevel
}
