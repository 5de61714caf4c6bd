package kinematics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Demand is the commanded plate orientation: pitch and roll in degrees, lift
// in millimetres.
type Demand struct {
	Pitch float64
	Roll  float64
	Lift  float64
}

func (d Demand) IsZero() bool {
	return d.Pitch == 0 && d.Roll == 0 && d.Lift == 0
}

// PlateVertex is a point on the upper plate. Y carries the height; X and Z
// span the base plane.
type PlateVertex = r3.Vec

type ActuatorState struct {
	Index    int
	AngleDeg float64
	Base     r3.Vec
	Top      r3.Vec
	// Height of the top attachment point, mm.
	Height float64
	// Height minus the nominal height of the current demand.
	Extension float64
	// Distance from the base plate mount to the top attachment point.
	Span float64
	Band Band
}

// Pose is everything derived from one demand on one layout. It is rebuilt
// wholesale by every Solve call.
type Pose struct {
	Demand     Demand
	Nominal    float64
	MeanHeight float64
	Actuators  []ActuatorState
	// Vertices[i] is the top point of Actuators[i].
	Vertices []PlateVertex
	// Unit normal of the upper plate, pointing up.
	Normal r3.Vec
}

// Model holds the geometric constants of the linearized plate model.
type Model struct {
	BaseNominal float64
	BaseHeight  float64
	PlateRadius float64
	Scale       float64
}

func DefaultModel() Model {
	return Model{
		BaseNominal: BaseNominalHeight,
		BaseHeight:  BasePlateHeight,
		PlateRadius: PlateRadius,
		Scale:       TiltScale,
	}
}

// Solve runs the default model.
func Solve(d Demand, layout ActuatorLayout) Pose {
	return DefaultModel().Solve(d, layout)
}

// Solve computes each actuator's height as
//
//	nominal + (z/R)·rad(pitch)·R·k + (x/R)·rad(roll)·R·k
//
// where (x, z) is the actuator's base-plane position. The R terms cancel, so
// the plate radius never enters the division.
func (m Model) Solve(d Demand, layout ActuatorLayout) Pose {
	n := layout.Count()
	pose := Pose{
		Demand:    d,
		Nominal:   m.BaseNominal + d.Lift,
		Actuators: make([]ActuatorState, n),
		Vertices:  make([]PlateVertex, n),
	}

	sum := 0.0
	for i := 0; i < n; i++ {
		angle := layout.Angle(i)
		x, z := planePosition(angle, layout.Radius())
		h := m.heightAt(pose.Nominal, x, z, d)

		base := r3.Vec{X: x, Y: m.BaseHeight, Z: z}
		top := r3.Vec{X: x, Y: h, Z: z}
		ext := h - pose.Nominal
		pose.Actuators[i] = ActuatorState{
			Index:     i,
			AngleDeg:  angle,
			Base:      base,
			Top:       top,
			Height:    h,
			Extension: ext,
			Span:      r3.Norm(r3.Sub(top, base)),
			Band:      Classify(ext),
		}
		pose.Vertices[i] = top
		sum += h
	}
	if n > 0 {
		pose.MeanHeight = sum / float64(n)
	}
	pose.Normal = plateNormal(pose.Vertices)
	return pose
}

// Perimeter samples the upper plate rim at count evenly spaced angles and the
// given radius, using the pose's mean actuator height as the reference. The
// first sample sits at 0° and samples advance counter-clockwise.
func (m Model) Perimeter(pose Pose, count int, radius float64) []PlateVertex {
	if count < MinPerimeterSize {
		count = MinPerimeterSize
	}
	out := make([]PlateVertex, count)
	for i := range out {
		angle := float64(i) * 360.0 / float64(count)
		x, z := planePosition(angle, radius)
		out[i] = r3.Vec{X: x, Y: m.heightAt(pose.MeanHeight, x, z, pose.Demand), Z: z}
	}
	return out
}

// DefaultPerimeter samples the rim at PerimeterRadiusFactor of the plate.
func (m Model) DefaultPerimeter(pose Pose, count int) []PlateVertex {
	return m.Perimeter(pose, count, m.PlateRadius*PerimeterRadiusFactor)
}

// BaseRing outlines the fixed lower plate.
func (m Model) BaseRing(count int, radius float64) []r3.Vec {
	if count < MinPerimeterSize {
		count = MinPerimeterSize
	}
	out := make([]r3.Vec, count)
	for i := range out {
		x, z := planePosition(float64(i)*360.0/float64(count), radius)
		out[i] = r3.Vec{X: x, Y: m.BaseHeight, Z: z}
	}
	return out
}

func (m Model) heightAt(reference, x, z float64, d Demand) float64 {
	return reference +
		z*radians(d.Pitch)*m.Scale +
		x*radians(d.Roll)*m.Scale
}

func planePosition(angleDeg, radius float64) (x, z float64) {
	rad := radians(angleDeg)
	return radius * math.Cos(rad), radius * math.Sin(rad)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// plateNormal uses Newell's method so every vertex contributes and collinear
// leading triples cannot zero the result.
func plateNormal(vertices []PlateVertex) r3.Vec {
	var n r3.Vec
	for i := range vertices {
		next := vertices[(i+1)%len(vertices)]
		n = r3.Add(n, r3.Cross(vertices[i], next))
	}
	if r3.Norm(n) < 1e-12 {
		return r3.Vec{Y: 1}
	}
	n = r3.Unit(n)
	if n.Y < 0 {
		n = r3.Scale(-1, n)
	}
	return n
}
