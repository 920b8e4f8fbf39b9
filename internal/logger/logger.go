// internal/logger/logger.go
package logger

import (
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu      sync.Mutex
	level   = logrus.InfoLevel
	loggers []*logrus.Logger
)

// NewLogger returns a logrus logger writing timestamped text lines to stderr.
// Loggers created here follow later calls to SetLevel.
func NewLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	mu.Lock()
	defer mu.Unlock()
	l.SetLevel(level)
	loggers = append(loggers, l)
	return l
}

// SetLevel applies a level name ("debug", "info", "warn", ...) to every logger
// handed out by NewLogger. Unknown names leave the level unchanged.
func SetLevel(name string) {
	parsed, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return
	}

	mu.Lock()
	defer mu.Unlock()
	level = parsed
	for _, l := range loggers {
		l.SetLevel(parsed)
	}
}
