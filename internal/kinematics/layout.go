package kinematics

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrDegenerateLayout = errors.New("layout needs at least three actuators")
	ErrInvalidRadius    = errors.New("layout radius must be positive and finite")
)

// ActuatorLayout fixes where the scissor lifts stand on the base. It is
// immutable once built; Angles returns a copy.
type ActuatorLayout struct {
	angles []float64
	radius float64
}

func NewLayout(angles []float64, radius float64) (ActuatorLayout, error) {
	if len(angles) < MinActuators {
		return ActuatorLayout{}, fmt.Errorf("%w: got %d", ErrDegenerateLayout, len(angles))
	}
	if radius <= 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return ActuatorLayout{}, fmt.Errorf("%w: got %v", ErrInvalidRadius, radius)
	}
	for i, a := range angles {
		if math.IsNaN(a) || math.IsInf(a, 0) {
			return ActuatorLayout{}, fmt.Errorf("actuator %d angle is not finite: %v", i, a)
		}
	}
	return ActuatorLayout{
		angles: append([]float64(nil), angles...),
		radius: radius,
	}, nil
}

// MustLayout is NewLayout for layouts known to be valid at compile time.
func MustLayout(angles []float64, radius float64) ActuatorLayout {
	l, err := NewLayout(angles, radius)
	if err != nil {
		panic(err)
	}
	return l
}

// EvenLayout spaces count actuators evenly starting at 0°.
func EvenLayout(count int, radius float64) (ActuatorLayout, error) {
	if count < MinActuators {
		return ActuatorLayout{}, fmt.Errorf("%w: got %d", ErrDegenerateLayout, count)
	}
	angles := make([]float64, count)
	for i := range angles {
		angles[i] = float64(i) * 360.0 / float64(count)
	}
	return NewLayout(angles, radius)
}

// Triangular is the 0°/120°/240° three-lift configuration.
func Triangular(radius float64) ActuatorLayout {
	return MustLayout([]float64{0, 120, 240}, radius)
}

// Hexagonal places six lifts every 60°.
func Hexagonal(radius float64) ActuatorLayout {
	return MustLayout([]float64{0, 60, 120, 180, 240, 300}, radius)
}

// DefaultRadius is the mounting radius used by the reference gimbal.
func DefaultRadius() float64 {
	return PlateRadius * ActuatorRadiusFactor
}

func (l ActuatorLayout) Count() int {
	return len(l.angles)
}

func (l ActuatorLayout) Radius() float64 {
	return l.radius
}

func (l ActuatorLayout) Angles() []float64 {
	return append([]float64(nil), l.angles...)
}

func (l ActuatorLayout) Angle(i int) float64 {
	return l.angles[i]
}

func (l ActuatorLayout) String() string {
	return fmt.Sprintf("%d actuators @ r=%.1fmm", len(l.angles), l.radius)
}
