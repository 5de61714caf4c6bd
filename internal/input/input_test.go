package input

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAxis(t *testing.T) {
	tests := []struct {
		name string
		want Axis
		ok   bool
	}{
		{"RightStickY", Standard(RightStickY), true},
		{"LeftZ", Standard(LeftZ), true},
		{"DPadX", Standard(DPadX), true},
		{"Tz", Aux("Tz"), true},
		{"Rx", Aux("Rx"), true},
		{"rightsticky", Axis{}, false},
		{"Throttle", Axis{}, false},
		{"", Axis{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAxis(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAxisStringRoundTripsThroughParse(t *testing.T) {
	for kind := LeftStickX; kind <= DPadY; kind++ {
		a := Standard(kind)
		got, ok := ParseAxis(a.String())
		require.True(t, ok, "axis %v", a)
		assert.Equal(t, a, got)
	}
	assert.Equal(t, "Unknown", Axis{}.String())
}

func TestAxisSampleSetClamps(t *testing.T) {
	s := AxisSample{}
	s.Set(Standard(LeftStickX), 1.7)
	s.Set(Standard(LeftStickY), -3)
	s.Set(Aux("Tx"), math.NaN())
	s.Set(Aux("Ty"), 0.25)

	v, ok := s.Value(Standard(LeftStickX))
	require.True(t, ok)
	assert.Equal(t, 1.0, v)
	v, _ = s.Value(Standard(LeftStickY))
	assert.Equal(t, -1.0, v)
	v, _ = s.Value(Aux("Tx"))
	assert.Equal(t, 0.0, v)
	v, _ = s.Value(Aux("Ty"))
	assert.Equal(t, 0.25, v)

	_, ok = s.Value(Aux("Tz"))
	assert.False(t, ok)
}

func TestAxisSampleAxesSorted(t *testing.T) {
	s := AxisSample{}
	s.Set(Aux("Tz"), 0.1)
	s.Set(Standard(RightZ), 0.1)
	s.Set(Standard(LeftStickX), 0.1)

	assert.Equal(t, []Axis{Standard(LeftStickX), Standard(RightZ), Aux("Tz")}, s.Axes())
}

func TestButtonSamplePressed(t *testing.T) {
	b := ButtonSample{"South": true, "East": false, "North": true}
	assert.Equal(t, []string{"North", "South"}, b.Pressed())
	assert.Empty(t, ButtonSample{}.Pressed())
}

func TestKeyboardHandleKey(t *testing.T) {
	var kb KeyboardState

	assert.True(t, kb.HandleKey('w', true, 0.1))
	assert.True(t, kb.HandleKey('A', true, 0.1))
	assert.True(t, kb.HandleKey('r', true, 0.1))
	assert.Equal(t, KeyboardState{Pitch: 0.1, Roll: -0.1, Lift: 0.1}, kb)

	assert.True(t, kb.HandleKey('S', true, 0.1))
	assert.True(t, kb.HandleKey('d', true, 0.1))
	assert.True(t, kb.HandleKey('f', true, 0.1))
	assert.Equal(t, KeyboardState{Pitch: -0.1, Roll: 0.1, Lift: -0.1}, kb)

	assert.True(t, kb.HandleKey('s', false, 0.1))
	assert.Equal(t, 0.0, kb.Pitch)
	assert.Equal(t, 0.1, kb.Roll)

	assert.False(t, kb.HandleKey('q', true, 0.1))
	kb.Reset()
	assert.Equal(t, KeyboardState{}, kb)
}

func TestIsMappedKey(t *testing.T) {
	for _, k := range "wasdrfWASDRF" {
		assert.True(t, IsMappedKey(k), "key %q", k)
	}
	for _, k := range "xq: " {
		assert.False(t, IsMappedKey(k), "key %q", k)
	}
}
