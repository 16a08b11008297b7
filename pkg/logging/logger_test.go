package logging

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerIsCachedPerComponent(t *testing.T) {
	a := NewLogger("grid")
	b := NewLogger("grid")
	c := NewLogger("launch")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, "grid", a.Data["component"])
}

func TestSetupWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "console.log")
	t.Setenv("SOLAR_LOG_LEVEL", "")

	logger := Setup(Options{Level: "debug", File: path})
	defer Close()
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	NewLogger("test").WithField("cell", "(0,1)").Debug("moved")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "component=test")
	assert.Contains(t, string(data), "moved")
}

func TestSetupEnvLevelWins(t *testing.T) {
	t.Setenv("SOLAR_LOG_LEVEL", "warn")
	logger := Setup(Options{Level: "debug", File: filepath.Join(t.TempDir(), "x.log")})
	defer Close()
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
}

func TestSetupBadLevelFallsBackToInfo(t *testing.T) {
	t.Setenv("SOLAR_LOG_LEVEL", "")
	logger := Setup(Options{Level: "loud", File: filepath.Join(t.TempDir(), "x.log")})
	defer Close()
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}

func TestSetOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(io.Discard)

	NewLogger("out").Warn("hello")
	assert.Contains(t, buf.String(), "hello")
}
