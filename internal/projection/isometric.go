// Package projection maps solver output onto the 2D plane used by renderers.
//
// The transform is the fixed isometric view
//
//	X = (x - z)·cos30°
//	Y = (x + z)·sin30° + height
//
// with no camera state, so the same 3D point always lands on the same 2D
// point.
package projection

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

var (
	cos30 = math.Cos(math.Pi / 6)
	sin30 = math.Sin(math.Pi / 6)
)

type Point2D struct {
	X float64
	Y float64
}

// Segment joins two projected points.
type Segment struct {
	From Point2D
	To   Point2D
}

func Project(x, height, z float64) Point2D {
	return Point2D{
		X: (x - z) * cos30,
		Y: (x+z)*sin30 + height,
	}
}

// ProjectVec projects a solver point whose Y component is the height.
func ProjectVec(v r3.Vec) Point2D {
	return Project(v.X, v.Y, v.Z)
}

// ProjectAll keeps the input order so neighbouring vertices stay neighbours.
func ProjectAll(vs []r3.Vec) []Point2D {
	out := make([]Point2D, len(vs))
	for i, v := range vs {
		out[i] = ProjectVec(v)
	}
	return out
}

// Polygon closes the ring through points in order, last back to first.
// Fewer than two points yield no edges.
func Polygon(points []Point2D) []Segment {
	if len(points) < 2 {
		return nil
	}
	out := make([]Segment, len(points))
	for i := range points {
		out[i] = Segment{From: points[i], To: points[(i+1)%len(points)]}
	}
	return out
}

// Bounds returns the axis-aligned box around points. An empty slice yields
// two zero points.
func Bounds(points []Point2D) (Point2D, Point2D) {
	if len(points) == 0 {
		return Point2D{}, Point2D{}
	}
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
	}
	return lo, hi
}
