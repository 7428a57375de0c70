package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the logging surface used by the commands and collaborators
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	WithField(key string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger
}

type logrusLogger struct {
	entry *logrus.Entry
}

// New creates a logger writing to stderr. Production uses JSON output.
func New(level, env string) Logger {
	var formatter logrus.Formatter = &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	}
	if env == "production" {
		formatter = &logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"}
	}
	return build(level, formatter, os.Stderr)
}

// NewWithWriter creates a JSON logger writing to w
func NewWithWriter(level string, w io.Writer) Logger {
	return build(level, &logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"}, w)
}

func build(level string, formatter logrus.Formatter, w io.Writer) Logger {
	l := logrus.New()
	l.SetFormatter(formatter)
	l.SetLevel(ParseLevel(level))
	l.SetOutput(w)
	return &logrusLogger{entry: logrus.NewEntry(l)}
}

// ParseLevel falls back to info for unknown levels
func ParseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

func (l *logrusLogger) Debugf(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}

func (l *logrusLogger) Infof(format string, args ...interface{}) {
	l.entry.Infof(format, args...)
}

func (l *logrusLogger) Warnf(format string, args ...interface{}) {
	l.entry.Warnf(format, args...)
}

func (l *logrusLogger) Errorf(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}

func (l *logrusLogger) WithField(key string, value interface{}) Logger {
	return &logrusLogger{entry: l.entry.WithField(key, value)}
}

func (l *logrusLogger) WithFields(fields map[string]interface{}) Logger {
	return &logrusLogger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

// Discard returns a logger that drops everything
func Discard() Logger {
	return build("panic", &logrus.TextFormatter{}, io.Discard)
}
