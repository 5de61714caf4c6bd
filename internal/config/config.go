package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Versifine/gimbal/internal/kinematics"
)

type Config struct {
	Gimbal   GimbalConfig   `yaml:"gimbal"`
	Controls ControlsConfig `yaml:"controls"`
	Layout   LayoutConfig   `yaml:"layout"`
	Debug    DebugConfig    `yaml:"debug"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type GimbalConfig struct {
	MaxPitch         float64 `yaml:"max_pitch"`
	MaxRoll          float64 `yaml:"max_roll"`
	MaxLift          float64 `yaml:"max_lift"`
	PitchSensitivity float64 `yaml:"pitch_sensitivity"`
	RollSensitivity  float64 `yaml:"roll_sensitivity"`
	LiftSensitivity  float64 `yaml:"lift_sensitivity"`
}

type ControlsConfig struct {
	KeyboardEnabled bool           `yaml:"keyboard_enabled"`
	KeyboardStep    float64        `yaml:"keyboard_step"`
	Joystick        JoystickConfig `yaml:"joystick"`
}

type JoystickConfig struct {
	Enabled      bool     `yaml:"enabled"`
	PitchAxis    string   `yaml:"pitch_axis"`
	RollAxis     string   `yaml:"roll_axis"`
	LiftAxis     string   `yaml:"lift_axis"`
	InvertPitch  bool     `yaml:"invert_pitch"`
	InvertRoll   bool     `yaml:"invert_roll"`
	InvertLift   bool     `yaml:"invert_lift"`
	FallbackAxes []string `yaml:"fallback_axes"`
}

type LayoutConfig struct {
	Actuators int     `yaml:"actuators"`
	Radius    float64 `yaml:"radius"`
}

type DebugConfig struct {
	Enabled          bool `yaml:"enabled"`
	ShowAllAxes      bool `yaml:"show_all_axes"`
	ShowButtonStates bool `yaml:"show_button_states"`
	LogInputValues   bool `yaml:"log_input_values"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

func Default() Config {
	return Config{
		Gimbal: GimbalConfig{
			MaxPitch:         20,
			MaxRoll:          20,
			MaxLift:          15,
			PitchSensitivity: 1,
			RollSensitivity:  1,
			LiftSensitivity:  1,
		},
		Controls: ControlsConfig{
			KeyboardEnabled: true,
			KeyboardStep:    0.1,
			Joystick: JoystickConfig{
				Enabled:   true,
				PitchAxis: "RightStickY",
				RollAxis:  "RightStickX",
				LiftAxis:  "RightZ",
				FallbackAxes: []string{
					"LeftStickY",
					"LeftStickX",
					"LeftZ",
					"Tz",
					"Ty",
					"Tx",
				},
			},
		},
		Layout: LayoutConfig{
			Actuators: 3,
			Radius:    kinematics.DefaultRadius(),
		},
		Debug: DebugConfig{
			ShowAllAxes:      true,
			ShowButtonStates: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "gimbal.log",
		},
	}
}

// Load reads path over the defaults, so keys missing from the file keep
// their default values. Unknown keys are rejected and the result is validated
// before it is returned.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadOrCreate loads path, writing the default document there first when it
// does not exist yet.
func LoadOrCreate(path string) (*Config, error) {
	_, err := os.Stat(path)
	if err == nil {
		return Load(path)
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	cfg := Default()
	if err := Save(path, cfg); err != nil {
		return nil, err
	}
	slog.Info("Created default config", "path", path)
	return &cfg, nil
}

func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

var ErrInvalid = errors.New("invalid config")

func (c Config) Validate() error {
	checks := []struct {
		name string
		v    float64
	}{
		{"gimbal.max_pitch", c.Gimbal.MaxPitch},
		{"gimbal.max_roll", c.Gimbal.MaxRoll},
		{"gimbal.max_lift", c.Gimbal.MaxLift},
		{"gimbal.pitch_sensitivity", c.Gimbal.PitchSensitivity},
		{"gimbal.roll_sensitivity", c.Gimbal.RollSensitivity},
		{"gimbal.lift_sensitivity", c.Gimbal.LiftSensitivity},
		{"controls.keyboard_step", c.Controls.KeyboardStep},
	}
	for _, ch := range checks {
		if ch.v < 0 || math.IsNaN(ch.v) || math.IsInf(ch.v, 0) {
			return fmt.Errorf("%w: %s must be a non-negative finite number, got %v", ErrInvalid, ch.name, ch.v)
		}
	}
	if c.Layout.Actuators < kinematics.MinActuators {
		return fmt.Errorf("%w: layout.actuators must be at least %d, got %d",
			ErrInvalid, kinematics.MinActuators, c.Layout.Actuators)
	}
	if !(c.Layout.Radius > 0) || math.IsInf(c.Layout.Radius, 0) {
		return fmt.Errorf("%w: layout.radius must be positive, got %v", ErrInvalid, c.Layout.Radius)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: logging.level %q is not one of debug, info, warn, error", ErrInvalid, c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "text", "json":
	default:
		return fmt.Errorf("%w: logging.format %q is not one of console, text, json", ErrInvalid, c.Logging.Format)
	}
	return nil
}

// ActuatorLayout builds the layout section into a kinematics layout.
func (c Config) ActuatorLayout() (kinematics.ActuatorLayout, error) {
	switch c.Layout.Actuators {
	case 3:
		return kinematics.NewLayout([]float64{0, 120, 240}, c.Layout.Radius)
	case 6:
		return kinematics.NewLayout([]float64{0, 60, 120, 180, 240, 300}, c.Layout.Radius)
	default:
		return kinematics.EvenLayout(c.Layout.Actuators, c.Layout.Radius)
	}
}
