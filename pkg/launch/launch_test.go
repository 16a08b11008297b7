package launch

import (
	"errors"
	"io"
	"os/exec"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b/solar-console/pkg/config"
)

func quietLog() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func TestCommandExpansion(t *testing.T) {
	tests := []struct {
		name    string
		launch  config.Launch
		entry   string
		want    []string
		wantErr error
	}{
		{"default runs the name", config.Launch{}, "kodi", []string{"kodi"}, nil},
		{"template with args", config.Launch{Command: "flatpak run {name} --fs"}, "org.kodi", []string{"flatpak", "run", "org.kodi", "--fs"}, nil},
		{"name with spaces stays one arg", config.Launch{Command: "open -a {name}"}, "Steam Link", []string{"open", "-a", "Steam Link"}, nil},
		{"embedded placeholder", config.Launch{Command: "/opt/{name}/bin/run"}, "retro", []string{"/opt/retro/bin/run"}, nil},
		{"shell quotes the name", config.Launch{Mode: "shell", Command: "exec {name} &"}, "it's", []string{"sh", "-c", `exec 'it'\''s' &`}, nil},
		{"placeholder alone with empty name", config.Launch{Command: "{name}"}, "", nil, ErrEmptyCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.launch, quietLog()).Command(tt.entry)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLaunchStartsCommand(t *testing.T) {
	l := New(config.Launch{Command: "player --title {name}", Dir: "/srv/media"}, quietLog())
	var started *exec.Cmd
	l.start = func(cmd *exec.Cmd) error {
		started = cmd
		return nil
	}

	require.NoError(t, l.Launch("Movies"))
	require.NotNil(t, started)
	assert.Equal(t, []string{"player", "--title", "Movies"}, started.Args)
	assert.Equal(t, "/srv/media", started.Dir)
}

func TestLaunchSurfacesStartError(t *testing.T) {
	l := New(config.Launch{}, quietLog())
	boom := errors.New("boom")
	l.start = func(*exec.Cmd) error { return boom }

	err := l.Launch("Steam")
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "start Steam")
}

func TestLaunchMissingBinary(t *testing.T) {
	l := New(config.Launch{}, quietLog())
	err := l.Launch("solar-console-no-such-program")
	assert.ErrorIs(t, err, exec.ErrNotFound)
}

func TestTmuxModeOutsideTmuxRunsDirectly(t *testing.T) {
	t.Setenv("TMUX", "")
	l := New(config.Launch{Mode: "tmux"}, quietLog())
	called := false
	l.start = func(cmd *exec.Cmd) error {
		called = true
		return nil
	}

	require.NoError(t, l.Launch("Kodi"))
	assert.True(t, called)
}
