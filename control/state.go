package control

// Direction is what a tick reports to the indicator.
type Direction uint8

const (
	None Direction = iota
	CounterClockwise
	Clockwise
	ButtonPressed
)

func (d Direction) String() string {
	switch d {
	case None:
		return "none"
	case CounterClockwise:
		return "ccw"
	case Clockwise:
		return "cw"
	case ButtonPressed:
		return "button"
	default:
		return "unknown"
	}
}

const (
	MinAngle   = 0
	MaxAngle   = 180
	StartAngle = 90
	AngleStep  = 5

	// Stick readings inside [DeadbandLow, DeadbandHigh] do not move the
	// angle. Calibrated for 10-bit joystick channels.
	DeadbandLow  = 400
	DeadbandHigh = 600
)

// ControlState is the only state that outlives a tick.
type ControlState struct {
	Angle         int
	ButtonLatched bool
}

// NewControlState returns the power-on state.
func NewControlState() ControlState {
	return ControlState{Angle: StartAngle}
}

// Signaler receives direction and button events as they are decided.
type Signaler interface {
	Signal(d Direction) error
}

// StepResult reports what one Step did.
type StepResult struct {
	Direction Direction
	Pressed   bool
	Previous  int
	Angle     int
}

// Changed reports whether the angle moved.
func (r StepResult) Changed() bool { return r.Angle != r.Previous }

// Classify maps a stick reading to a movement direction.
// Either axis below the deadband wins over either axis above it.
func Classify(s RawInputSample) Direction {
	switch {
	case s.JoyX < DeadbandLow || s.JoyY < DeadbandLow:
		return CounterClockwise
	case s.JoyX > DeadbandHigh || s.JoyY > DeadbandHigh:
		return Clockwise
	default:
		return None
	}
}

// Step advances st by one sample.
//
// The movement signal goes to ind before the button signal, so when both
// fire in one tick the ring ends up showing the press. ind may be nil.
func Step(st *ControlState, s RawInputSample, ind Signaler) (StepResult, error) {
	res := StepResult{Previous: st.Angle}

	res.Direction = Classify(s)
	switch res.Direction {
	case CounterClockwise:
		st.Angle = max(MinAngle, st.Angle-AngleStep)
	case Clockwise:
		st.Angle = min(MaxAngle, st.Angle+AngleStep)
	}
	res.Angle = st.Angle
	if res.Direction != None && ind != nil {
		if err := ind.Signal(res.Direction); err != nil {
			return res, err
		}
	}

	if s.ButtonPressed {
		if !st.ButtonLatched {
			st.ButtonLatched = true
			res.Pressed = true
			if ind != nil {
				if err := ind.Signal(ButtonPressed); err != nil {
					return res, err
				}
			}
		}
	} else {
		st.ButtonLatched = false
	}
	return res, nil
}
