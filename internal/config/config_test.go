package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg)
	assert.Equal(t, 1, cfg.Window.Scale)
	assert.Equal(t, 60, cfg.Window.TPS)
	assert.Equal(t, 115200, cfg.Serial.Baud)
	assert.Empty(t, cfg.Serial.Port)
	assert.False(t, cfg.Headless.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "joydial.yaml")
	data := `
window:
  scale: 2
headless:
  enabled: true
  ticks: 30
  scenario:
    - ticks: 10
      joy_x: 0
      joy_y: 512
      pot: 4095
    - ticks: 5
      joy_x: 512
      joy_y: 512
      button: true
serial:
  port: /dev/ttyACM0
log:
  verbose: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Window.Scale)
	assert.Equal(t, 60, cfg.Window.TPS, "unset keys keep defaults")
	assert.True(t, cfg.Headless.Enabled)
	assert.Equal(t, uint64(30), cfg.Headless.Ticks)
	require.Len(t, cfg.Headless.Scenario, 2)
	assert.Equal(t, Step{Ticks: 10, JoyX: 0, JoyY: 512, Pot: 4095}, cfg.Headless.Scenario[0])
	assert.True(t, cfg.Headless.Scenario[1].Button)
	assert.Equal(t, "/dev/ttyACM0", cfg.Serial.Port)
	assert.Equal(t, 115200, cfg.Serial.Baud)
	assert.True(t, cfg.Log.Verbose)
}

func TestLoadRejectsBadScenario(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero ticks", "headless:\n  scenario:\n    - ticks: 0\n"},
		{"joystick out of range", "headless:\n  scenario:\n    - ticks: 1\n      joy_x: 2000\n"},
		{"pot out of range", "headless:\n  scenario:\n    - ticks: 1\n      pot: -1\n"},
		{"bad scale", "window:\n  scale: 0\n"},
		{"not yaml", "window: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := Default()
	cfg.Headless.Scenario = []Step{{Ticks: 3, JoyX: 100, JoyY: 900, Pot: 10, Button: true}}
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
