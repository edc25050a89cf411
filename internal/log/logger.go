// Package log is the application logger. It writes nowhere until Setup
// points it at a file, since the terminal belongs to the UI.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var logger = newLogger(io.Discard)

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   true,
	})
	return l
}

// Setup opens path for appending and sends all log output there. The
// returned closer must be closed on exit. An empty path keeps logging off.
func Setup(path string, debug bool) (io.Closer, error) {
	SetDebug(debug)
	if path == "" {
		return nopCloser{}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	logger.SetOutput(f)
	return f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// SetOutput redirects the logger, mainly for tests.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

func SetDebug(debug bool) {
	if debug {
		logger.SetLevel(logrus.DebugLevel)
		return
	}
	logger.SetLevel(logrus.InfoLevel)
}

// Field is a single structured key/value pair.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// WithFields returns an entry carrying the given fields.
func WithFields(fields ...Field) *logrus.Entry {
	lf := make(logrus.Fields, len(fields))
	for _, f := range fields {
		lf[f.Key] = f.Value
	}
	return logger.WithFields(lf)
}

func Debugf(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

func Warnf(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}
