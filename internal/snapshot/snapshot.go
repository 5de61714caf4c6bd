// Package snapshot writes a projected gimbal pose to an image file for
// offline inspection. The output format follows the file extension
// (.png, .svg, .pdf, ...).
package snapshot

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Versifine/gimbal/internal/kinematics"
	"github.com/Versifine/gimbal/internal/projection"
)

const (
	defaultRimSamples  = 32
	defaultBaseSamples = 32
)

var (
	baseColor     = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	rimColor      = color.RGBA{R: 0, G: 170, B: 200, A: 255}
	neutralColor  = color.RGBA{R: 220, G: 180, B: 0, A: 255}
	extendedColor = color.RGBA{R: 0, G: 160, B: 0, A: 255}
	retractColor  = color.RGBA{R: 200, G: 0, B: 0, A: 255}
)

// Leg is one projected actuator from its base mount to its top point.
type Leg struct {
	Base projection.Point2D
	Top  projection.Point2D
	Band kinematics.Band
}

// Frame is a pose reduced to 2D. Outlines are closed edge rings: the last
// edge ends where the first begins.
type Frame struct {
	BaseRing []projection.Segment
	Rim      []projection.Segment
	Legs     []Leg
}

// Bounds returns the box around every projected point of the frame.
func (f Frame) Bounds() (projection.Point2D, projection.Point2D) {
	points := make([]projection.Point2D, 0, len(f.BaseRing)+len(f.Rim)+2*len(f.Legs))
	for _, e := range f.BaseRing {
		points = append(points, e.From)
	}
	for _, e := range f.Rim {
		points = append(points, e.From)
	}
	for _, l := range f.Legs {
		points = append(points, l.Base, l.Top)
	}
	return projection.Bounds(points)
}

func BuildFrame(model kinematics.Model, pose kinematics.Pose, rimSamples int) Frame {
	if rimSamples <= 0 {
		rimSamples = defaultRimSamples
	}
	f := Frame{
		BaseRing: projection.Polygon(projection.ProjectAll(model.BaseRing(defaultBaseSamples, model.PlateRadius))),
		Rim:      projection.Polygon(projection.ProjectAll(model.DefaultPerimeter(pose, rimSamples))),
		Legs:     make([]Leg, len(pose.Actuators)),
	}
	for i, a := range pose.Actuators {
		f.Legs[i] = Leg{
			Base: projection.ProjectVec(a.Base),
			Top:  projection.ProjectVec(a.Top),
			Band: a.Band,
		}
	}
	return f
}

// Export renders pose and saves it to path.
func Export(path string, model kinematics.Model, pose kinematics.Pose) error {
	f := BuildFrame(model, pose, defaultRimSamples)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("pitch %.1f°  roll %.1f°  lift %.1fmm",
		pose.Demand.Pitch, pose.Demand.Roll, pose.Demand.Lift)
	p.X.Label.Text = "iso x"
	p.Y.Label.Text = "iso y"

	lo, hi := f.Bounds()
	margin := 0.05 * math.Max(hi.X-lo.X, hi.Y-lo.Y)
	p.X.Min, p.X.Max = lo.X-margin, hi.X+margin
	p.Y.Min, p.Y.Max = lo.Y-margin, hi.Y+margin

	base, err := plotter.NewLine(outlineXYs(f.BaseRing))
	if err != nil {
		return fmt.Errorf("base ring: %w", err)
	}
	base.Color = baseColor
	base.Width = vg.Points(2)
	p.Add(base)

	rim, err := plotter.NewLine(outlineXYs(f.Rim))
	if err != nil {
		return fmt.Errorf("plate rim: %w", err)
	}
	rim.Color = rimColor
	rim.Width = vg.Points(1.5)
	p.Add(rim)

	tops := make(plotter.XYs, 0, len(f.Legs))
	for i, leg := range f.Legs {
		l, err := plotter.NewLine(plotter.XYs{{X: leg.Base.X, Y: leg.Base.Y}, {X: leg.Top.X, Y: leg.Top.Y}})
		if err != nil {
			return fmt.Errorf("actuator %d: %w", i, err)
		}
		l.Color = bandColor(leg.Band)
		l.Width = vg.Points(3)
		p.Add(l)
		tops = append(tops, plotter.XY{X: leg.Top.X, Y: leg.Top.Y})
	}

	if len(tops) > 0 {
		sc, err := plotter.NewScatter(tops)
		if err != nil {
			return fmt.Errorf("attachment points: %w", err)
		}
		sc.GlyphStyle.Radius = vg.Points(3)
		sc.GlyphStyle.Color = rimColor
		p.Add(sc)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}
	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// outlineXYs walks a closed edge ring as one polyline.
func outlineXYs(edges []projection.Segment) plotter.XYs {
	if len(edges) == 0 {
		return nil
	}
	out := make(plotter.XYs, 0, len(edges)+1)
	for _, e := range edges {
		out = append(out, plotter.XY{X: e.From.X, Y: e.From.Y})
	}
	last := edges[len(edges)-1].To
	return append(out, plotter.XY{X: last.X, Y: last.Y})
}

func bandColor(b kinematics.Band) color.Color {
	switch b {
	case kinematics.Extended:
		return extendedColor
	case kinematics.Retracted:
		return retractColor
	default:
		return neutralColor
	}
}
