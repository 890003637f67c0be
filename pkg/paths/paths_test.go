package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv(EnvConfigDir, "")

	p, err := New()
	require.NoError(t, err)

	assert.Equal(t, home, p.Home())
	assert.Equal(t, filepath.Join(home, ".local", "state", AppDirName), p.StateDir())
	assert.Equal(t, filepath.Join(p.ConfigDir(), ConfigFileName), p.ConfigFilePath())
	assert.Equal(t, filepath.Join(p.StateDir(), LogFileName), p.LogFilePath())
}

func TestNewRespectsXDGOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	t.Setenv("XDG_STATE_HOME", "/custom/state")
	t.Setenv(EnvConfigDir, "")

	p, err := New()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/custom/config", AppDirName), p.ConfigDir())
	assert.Equal(t, filepath.Join("/custom/state", AppDirName), p.StateDir())
}

func TestNewRespectsConfigDirOverride(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvConfigDir, "~/my-config")

	p, err := New()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "my-config"), p.ConfigDir())
}

func TestExpand(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p, err := New()
	require.NoError(t, err)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty is home", "", home},
		{"bare tilde is home", "~", home},
		{"tilde prefix", "~/skilldock/skills", filepath.Join(home, "skilldock", "skills")},
		{"relative is home-relative", ".claude/skills", filepath.Join(home, ".claude", "skills")},
		{"absolute passes through", "/opt/skills", "/opt/skills"},
		{"absolute is cleaned", "/opt//skills/", "/opt/skills"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Expand(tt.in))
		})
	}
}

func TestGetHomeDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := GetHomeDirectory()
	require.NoError(t, err)
	assert.Equal(t, home, got)
}
