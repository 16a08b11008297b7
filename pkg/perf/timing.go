package perf

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/b/solar-console/pkg/logging"
)

var (
	// Set SOLAR_PERF=1 to enable performance logging
	enabled = os.Getenv("SOLAR_PERF") == "1"
	log     = logging.NewLogger("perf")
)

// Timer tracks elapsed time for a named operation
type Timer struct {
	name  string
	start time.Time
}

// Start begins timing an operation
func Start(name string) *Timer {
	return &Timer{
		name:  name,
		start: time.Now(),
	}
}

// Stop ends timing and logs the result
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	if enabled {
		log.WithFields(logrus.Fields{"op": t.name, "elapsed": elapsed}).Debug("timing")
	}
	return elapsed
}

// Track is a convenience function that times a function call
func Track(name string, fn func()) time.Duration {
	t := Start(name)
	fn()
	return t.Stop()
}

// SetEnabled turns timing logs on or off.
func SetEnabled(on bool) {
	enabled = on
}

// IsEnabled returns whether performance logging is enabled
func IsEnabled() bool {
	return enabled
}
