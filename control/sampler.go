package control

import (
	"errors"
	"fmt"

	"joydial/hal"
)

// RawInputSample is one reading of every input channel.
type RawInputSample struct {
	JoyX          int
	JoyY          int
	Pot           int
	ButtonPressed bool
}

// Sampler reads the input channels once per tick.
type Sampler struct {
	joyX   hal.AnalogIn
	joyY   hal.AnalogIn
	pot    hal.AnalogIn
	button hal.GPIOPin
}

var errMissingSensor = errors.New("missing sensor")

// NewSampler configures the button as a pulled-up input and returns a sampler
// over s.
func NewSampler(s hal.Sensors) (*Sampler, error) {
	if s.JoyX == nil || s.JoyY == nil || s.Pot == nil || s.Button == nil {
		return nil, errMissingSensor
	}
	if err := s.Button.Configure(hal.GPIOModeInput, hal.GPIOPullUp); err != nil {
		return nil, fmt.Errorf("configure button: %w", err)
	}
	return &Sampler{joyX: s.JoyX, joyY: s.JoyY, pot: s.Pot, button: s.Button}, nil
}

// Sample reads all channels. The button is active-low.
func (s *Sampler) Sample() (RawInputSample, error) {
	var in RawInputSample
	var err error

	if in.JoyX, err = s.joyX.Read(); err != nil {
		return RawInputSample{}, fmt.Errorf("joystick x: %w", err)
	}
	if in.JoyY, err = s.joyY.Read(); err != nil {
		return RawInputSample{}, fmt.Errorf("joystick y: %w", err)
	}
	if in.Pot, err = s.pot.Read(); err != nil {
		return RawInputSample{}, fmt.Errorf("pot: %w", err)
	}
	level, err := s.button.Read()
	if err != nil {
		return RawInputSample{}, fmt.Errorf("button: %w", err)
	}
	in.ButtonPressed = !level
	return in, nil
}
