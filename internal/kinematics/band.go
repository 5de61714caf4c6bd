package kinematics

// Band classifies an actuator's extension for display.
type Band int

const (
	Neutral Band = iota
	Extended
	Retracted
)

func Classify(extension float64) Band {
	switch {
	case extension > BandThreshold:
		return Extended
	case extension < -BandThreshold:
		return Retracted
	default:
		return Neutral
	}
}

func (b Band) String() string {
	switch b {
	case Extended:
		return "extended"
	case Retracted:
		return "retracted"
	default:
		return "neutral"
	}
}
