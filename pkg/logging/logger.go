// Package logging builds the console's logrus loggers.
//
// The terminal belongs to the UI, so logs go to a file under the state
// directory. Stderr is added only when it is not a terminal (piped, CI).
package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/b/solar-console/pkg/paths"
)

const defaultFile = "solar-console.log"

// Options configure the shared logger. Zero values use the defaults.
type Options struct {
	Level string // overridden by SOLAR_LOG_LEVEL
	File  string // default: <state dir>/solar-console.log
}

var (
	mu      sync.Mutex
	root    *logrus.Logger
	loggers = make(map[string]*logrus.Entry)
	closers []io.Closer
)

// Setup configures the shared logger. Loggers handed out before Setup keep
// working and pick up the new level and output.
func Setup(opts Options) *logrus.Logger {
	mu.Lock()
	defer mu.Unlock()

	logger := rootLocked()
	closeLocked()

	levelStr := "info"
	if env := os.Getenv("SOLAR_LOG_LEVEL"); env != "" {
		levelStr = env
	} else if opts.Level != "" {
		levelStr = opts.Level
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	var writers []io.Writer
	path := opts.File
	if path == "" {
		path = paths.StatePath(defaultFile)
	}
	path = paths.Expand(path)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err == nil {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
			writers = append(writers, f)
			closers = append(closers, f)
		}
	}
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		writers = append(writers, os.Stderr)
	}

	switch len(writers) {
	case 0:
		logger.SetOutput(io.Discard)
	case 1:
		logger.SetOutput(writers[0])
	default:
		logger.SetOutput(io.MultiWriter(writers...))
	}
	return logger
}

// NewLogger returns the logger for a component, tagged with a component field.
func NewLogger(component string) *logrus.Entry {
	mu.Lock()
	defer mu.Unlock()

	if entry, ok := loggers[component]; ok {
		return entry
	}
	entry := rootLocked().WithField("component", component)
	loggers[component] = entry
	return entry
}

// SetOutput redirects the shared logger, mainly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	rootLocked().SetOutput(w)
}

// Close releases the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
}

func rootLocked() *logrus.Logger {
	if root == nil {
		root = logrus.New()
		root.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05.000",
			DisableColors:   true,
		})
		root.SetOutput(io.Discard)
	}
	return root
}

func closeLocked() {
	for _, c := range closers {
		c.Close()
	}
	closers = nil
}
