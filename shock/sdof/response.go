package sdof

import "fmt"

// ResponseType selects which SDOF response quantity a filter recovers.
type ResponseType int

const (
	// AbsAcceleration recovers the absolute acceleration of the mass.
	AbsAcceleration ResponseType = iota
	// RelAcceleration recovers the acceleration of the mass relative to the base.
	RelAcceleration
	// RelDisplacement recovers the displacement of the mass relative to the base.
	RelDisplacement
	// RelVelocity recovers the velocity of the mass relative to the base.
	RelVelocity
	// PseudoVelocity recovers relative displacement scaled by omega.
	PseudoVelocity
	// PseudoAcceleration recovers relative displacement scaled by omega^2.
	PseudoAcceleration
)

// String returns the conventional short name of the response type.
func (rt ResponseType) String() string {
	switch rt {
	case AbsAcceleration:
		return "absacce"
	case RelAcceleration:
		return "relacce"
	case RelDisplacement:
		return "reldisp"
	case RelVelocity:
		return "relvelo"
	case PseudoVelocity:
		return "pvelo"
	case PseudoAcceleration:
		return "pacce"
	default:
		return fmt.Sprintf("ResponseType(%d)", int(rt))
	}
}

// Valid reports whether rt is one of the defined response types.
func (rt ResponseType) Valid() bool {
	return rt >= AbsAcceleration && rt <= PseudoAcceleration
}
