package control

import (
	"math"

	"github.com/Versifine/gimbal/internal/config"
	"github.com/Versifine/gimbal/internal/input"
	"github.com/Versifine/gimbal/internal/kinematics"
)

// DemandVector is the clamped per-tick command handed to the solver.
// It aliases kinematics.Demand to avoid field divergence.
type DemandVector = kinematics.Demand

// Fallback axes below this magnitude are treated as idle.
const significanceThreshold = 0.01

type channel struct {
	axis        string
	invert      bool
	keyboard    float64
	sensitivity float64
	max         float64
}

// Update maps one tick of input onto a demand vector. It reads nothing but
// its arguments.
func Update(cfg config.Config, samples input.AxisSample, kb input.KeyboardState) DemandVector {
	js := cfg.Controls.Joystick
	g := cfg.Gimbal
	return DemandVector{
		Pitch: resolve(cfg, samples, channel{js.PitchAxis, js.InvertPitch, kb.Pitch, g.PitchSensitivity, g.MaxPitch}),
		Roll:  resolve(cfg, samples, channel{js.RollAxis, js.InvertRoll, kb.Roll, g.RollSensitivity, g.MaxRoll}),
		Lift:  resolve(cfg, samples, channel{js.LiftAxis, js.InvertLift, kb.Lift, g.LiftSensitivity, g.MaxLift}),
	}
}

func resolve(cfg config.Config, samples input.AxisSample, ch channel) float64 {
	raw := 0.0
	if cfg.Controls.Joystick.Enabled {
		raw = AxisValue(samples, ch.axis, cfg.Controls.Joystick.FallbackAxes)
		if ch.invert {
			raw = -raw
		}
	}
	if cfg.Controls.KeyboardEnabled {
		raw += ch.keyboard
	}
	return clamp(raw*ch.sensitivity*ch.max, ch.max)
}

// AxisValue returns the primary axis value when it is sampled, otherwise
// the first fallback whose magnitude is significant. Names that do not parse
// count as absent.
func AxisValue(samples input.AxisSample, primary string, fallbacks []string) float64 {
	if axis, ok := input.ParseAxis(primary); ok {
		if v, ok := samples.Value(axis); ok {
			return v
		}
	}
	for _, name := range fallbacks {
		axis, ok := input.ParseAxis(name)
		if !ok {
			continue
		}
		if v, ok := samples.Value(axis); ok && math.Abs(v) > significanceThreshold {
			return v
		}
	}
	return 0
}

func clamp(v, limit float64) float64 {
	if limit <= 0 || math.IsNaN(v) {
		return 0
	}
	return math.Max(-limit, math.Min(limit, v))
}
