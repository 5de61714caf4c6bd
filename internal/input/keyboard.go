package input

import "unicode"

// KeyboardState is the signed per-channel contribution of held keys.
// W/S drive pitch, D/A roll and R/F lift.
type KeyboardState struct {
	Pitch float64
	Roll  float64
	Lift  float64
}

// HandleKey updates the held state for key. A release zeroes the channel the
// key belongs to. Unmapped keys are ignored and report false.
func (k *KeyboardState) HandleKey(key rune, pressed bool, step float64) bool {
	v := 0.0
	if pressed {
		v = step
	}
	switch unicode.ToLower(key) {
	case 'w':
		k.Pitch = v
	case 's':
		k.Pitch = -v
	case 'd':
		k.Roll = v
	case 'a':
		k.Roll = -v
	case 'r':
		k.Lift = v
	case 'f':
		k.Lift = -v
	default:
		return false
	}
	return true
}

func (k *KeyboardState) Reset() {
	*k = KeyboardState{}
}

// IsMappedKey reports whether key drives one of the gimbal channels.
func IsMappedKey(key rune) bool {
	switch unicode.ToLower(key) {
	case 'w', 's', 'a', 'd', 'r', 'f':
		return true
	}
	return false
}
