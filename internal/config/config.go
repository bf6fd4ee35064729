package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the host simulator configuration. The firmware has no config:
// its wiring and thresholds are compile-time constants.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Headless HeadlessConfig `yaml:"headless"`
	Serial   SerialConfig   `yaml:"serial"`
	Log      LogConfig      `yaml:"log"`
}

// WindowConfig contains desktop window settings.
type WindowConfig struct {
	Scale int `yaml:"scale"` // Window zoom factor
	TPS   int `yaml:"tps"`   // Window updates per second
}

// HeadlessConfig contains settings for runs without a window.
type HeadlessConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Ticks    uint64 `yaml:"ticks"`    // Stop after N ticks (0 = scenario length)
	Realtime bool   `yaml:"realtime"` // Sleep for real between ticks
	Scenario []Step `yaml:"scenario"`
}

// Step holds the inputs for a run of consecutive ticks.
type Step struct {
	Ticks  int  `yaml:"ticks"`
	JoyX   int  `yaml:"joy_x"`
	JoyY   int  `yaml:"joy_y"`
	Pot    int  `yaml:"pot"`
	Button bool `yaml:"button"` // true = held down
}

// SerialConfig selects a board streaming raw sensor readings.
type SerialConfig struct {
	Port string `yaml:"port"` // Empty = simulated sensors
	Baud int    `yaml:"baud"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Verbose bool `yaml:"verbose"` // Log every angle change
}

// Sensor limits used to validate scenarios.
const (
	joyMax = 1023
	potMax = 4095
)

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Scale: 1,
			TPS:   60,
		},
		Serial: SerialConfig{
			Baud: 115200,
		},
	}
}

// Load reads the configuration from path. A missing file yields Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks ranges that would otherwise be silently clamped.
func (c *Config) Validate() error {
	if c.Window.Scale < 1 || c.Window.Scale > 8 {
		return fmt.Errorf("window.scale must be 1..8, got %d", c.Window.Scale)
	}
	if c.Window.TPS < 1 {
		return fmt.Errorf("window.tps must be positive, got %d", c.Window.TPS)
	}
	if c.Serial.Baud < 0 {
		return fmt.Errorf("serial.baud must not be negative, got %d", c.Serial.Baud)
	}
	for i, s := range c.Headless.Scenario {
		if s.Ticks <= 0 {
			return fmt.Errorf("headless.scenario[%d]: ticks must be positive", i)
		}
		if s.JoyX < 0 || s.JoyX > joyMax || s.JoyY < 0 || s.JoyY > joyMax {
			return fmt.Errorf("headless.scenario[%d]: joystick must be 0..%d", i, joyMax)
		}
		if s.Pot < 0 || s.Pot > potMax {
			return fmt.Errorf("headless.scenario[%d]: pot must be 0..%d", i, potMax)
		}
	}
	return nil
}
