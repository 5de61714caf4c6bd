package input

import (
	"math"
	"sort"
)

// AxisKind enumerates the axes every supported gamepad reports. Anything a
// device exposes beyond these is an Auxiliary axis carrying its own name.
type AxisKind uint8

const (
	Unknown AxisKind = iota
	LeftStickX
	LeftStickY
	LeftZ
	RightStickX
	RightStickY
	RightZ
	DPadX
	DPadY
	Auxiliary
)

var kindNames = map[AxisKind]string{
	LeftStickX:  "LeftStickX",
	LeftStickY:  "LeftStickY",
	LeftZ:       "LeftZ",
	RightStickX: "RightStickX",
	RightStickY: "RightStickY",
	RightZ:      "RightZ",
	DPadX:       "DPadX",
	DPadY:       "DPadY",
}

// Motion channels reported by 6-DOF controllers (translation then rotation).
var motionChannels = []string{"Tx", "Ty", "Tz", "Rx", "Ry", "Rz"}

// Axis identifies one input channel. Standard axes compare by Kind alone;
// auxiliary axes also compare by Name.
type Axis struct {
	Kind AxisKind
	Name string
}

func Standard(kind AxisKind) Axis {
	return Axis{Kind: kind}
}

func Aux(name string) Axis {
	return Axis{Kind: Auxiliary, Name: name}
}

func (a Axis) String() string {
	if a.Kind == Auxiliary {
		return a.Name
	}
	if name, ok := kindNames[a.Kind]; ok {
		return name
	}
	return "Unknown"
}

// ParseAxis resolves a configured axis name. Names outside the standard set
// and the motion channels are reported as not found.
func ParseAxis(name string) (Axis, bool) {
	for kind, kindName := range kindNames {
		if kindName == name {
			return Standard(kind), true
		}
	}
	for _, ch := range motionChannels {
		if ch == name {
			return Aux(ch), true
		}
	}
	return Axis{}, false
}

// AxisSample is one polling tick worth of normalized axis values.
type AxisSample map[Axis]float64

// Set stores v clamped into [-1, 1]. NaN is stored as 0.
func (s AxisSample) Set(axis Axis, v float64) {
	switch {
	case math.IsNaN(v):
		v = 0
	case v > 1:
		v = 1
	case v < -1:
		v = -1
	}
	s[axis] = v
}

func (s AxisSample) Value(axis Axis) (float64, bool) {
	v, ok := s[axis]
	return v, ok
}

// Axes returns the sampled axes ordered by name.
func (s AxisSample) Axes() []Axis {
	out := make([]Axis, 0, len(s))
	for a := range s {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}

// ButtonSample maps a button name to its pressed state. Display only.
type ButtonSample map[string]bool

func (b ButtonSample) Pressed() []string {
	out := make([]string, 0, len(b))
	for name, down := range b {
		if down {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
