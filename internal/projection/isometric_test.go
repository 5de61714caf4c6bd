package projection

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Versifine/gimbal/internal/kinematics"
)

func TestProjectOrigin(t *testing.T) {
	if got := Project(0, 0, 0); got != (Point2D{}) {
		t.Fatalf("Project(0,0,0)=%v want (0,0)", got)
	}
}

func TestProjectAxesSymmetry(t *testing.T) {
	for _, v := range []float64{1, 42.5, -17} {
		px := Project(v, 0, 0)
		pz := Project(0, 0, v)
		if math.Abs(px.Y) != math.Abs(pz.Y) {
			t.Fatalf("v=%v x-axis Y=%v z-axis Y=%v, magnitudes differ", v, px.Y, pz.Y)
		}
		if px.X != -pz.X {
			t.Fatalf("v=%v x-axis X=%v z-axis X=%v, want mirrored", v, px.X, pz.X)
		}
	}
}

func TestProjectKnownValues(t *testing.T) {
	tests := []struct {
		x, h, z float64
		want    Point2D
	}{
		{100, 0, 0, Point2D{X: 86.60254037844386, Y: 50}},
		{0, 15, 0, Point2D{X: 0, Y: 15}},
		{10, 5, 10, Point2D{X: 0, Y: 15}},
		{-20, 0, 20, Point2D{X: -34.64101615137754, Y: 0}},
	}
	for _, tt := range tests {
		got := Project(tt.x, tt.h, tt.z)
		if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
			t.Fatalf("Project(%v,%v,%v) (-want +got):\n%s", tt.x, tt.h, tt.z, diff)
		}
	}
}

func TestProjectDeterministic(t *testing.T) {
	a := Project(12.345, -6.789, 98.765)
	b := Project(12.345, -6.789, 98.765)
	if math.Float64bits(a.X) != math.Float64bits(b.X) || math.Float64bits(a.Y) != math.Float64bits(b.Y) {
		t.Fatalf("projection not bit-identical: %v vs %v", a, b)
	}
}

func TestProjectAllPreservesOrder(t *testing.T) {
	pose := kinematics.Solve(kinematics.Demand{Pitch: 5, Roll: 3}, kinematics.Hexagonal(75))
	points := ProjectAll(pose.Vertices)
	if len(points) != len(pose.Vertices) {
		t.Fatalf("len=%d want %d", len(points), len(pose.Vertices))
	}
	for i, v := range pose.Vertices {
		if points[i] != ProjectVec(v) {
			t.Fatalf("point %d=%v want %v", i, points[i], ProjectVec(v))
		}
	}
}

func TestPolygonClosesRing(t *testing.T) {
	pts := ProjectAll([]r3.Vec{{X: 1}, {Z: 1}, {X: -1}})
	segs := Polygon(pts)
	want := []Segment{
		{From: pts[0], To: pts[1]},
		{From: pts[1], To: pts[2]},
		{From: pts[2], To: pts[0]},
	}
	if diff := cmp.Diff(want, segs); diff != "" {
		t.Fatalf("polygon (-want +got):\n%s", diff)
	}
	if Polygon(pts[:1]) != nil {
		t.Fatalf("single point should yield no edges")
	}
}

func TestBounds(t *testing.T) {
	lo, hi := Bounds([]Point2D{{X: 1, Y: -2}, {X: -3, Y: 4}, {X: 0, Y: 0}})
	if lo != (Point2D{X: -3, Y: -2}) || hi != (Point2D{X: 1, Y: 4}) {
		t.Fatalf("bounds lo=%v hi=%v", lo, hi)
	}
	lo, hi = Bounds(nil)
	if lo != (Point2D{}) || hi != (Point2D{}) {
		t.Fatalf("empty bounds lo=%v hi=%v", lo, hi)
	}
}
