package control

import (
	"fmt"

	"joydial/hal"
)

// Servo duty range for MinAngle..MaxAngle, in 1/1024ths of a 50 Hz frame.
const (
	DutyMin = 25
	DutyMax = 125
)

// DutyFor converts an angle to a servo duty.
func DutyFor(angle int) int {
	return Map(angle, MinAngle, MaxAngle, DutyMin, DutyMax)
}

// Actuator drives the servo.
type Actuator struct {
	out  hal.PWM
	duty int
}

func NewActuator(out hal.PWM) *Actuator {
	return &Actuator{out: out, duty: -1}
}

// Drive applies the duty for angle. It writes every call, even when the angle
// did not change.
func (a *Actuator) Drive(angle int) error {
	duty := DutyFor(angle)
	if err := a.out.SetDuty(duty); err != nil {
		return fmt.Errorf("set duty %d: %w", duty, err)
	}
	a.duty = duty
	return nil
}

// Duty returns the last applied duty, or -1 before the first Drive.
func (a *Actuator) Duty() int { return a.duty }
