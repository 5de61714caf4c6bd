package kinematics

const (
	// Resting actuator height with zero lift, mm.
	BaseNominalHeight = 15.0
	// Lower plate height below the actuator origin, mm.
	BasePlateHeight = -30.0
	// Upper plate radius, mm. Actuators sit inside it.
	PlateRadius = 100.0
	// Fraction of PlateRadius at which actuators are mounted.
	ActuatorRadiusFactor = 0.75
	// Fraction of PlateRadius at which the upper plate rim is sampled.
	PerimeterRadiusFactor = 0.9
	// Linear height differential per radian of tilt per mm of radius.
	TiltScale = 0.5

	// Extension magnitude beyond which an actuator counts as extended or
	// retracted, mm. Shared by every layout.
	BandThreshold = 3.0

	MinActuators     = 3
	MinPerimeterSize = 3
)
