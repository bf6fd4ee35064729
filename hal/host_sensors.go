//go:build !tinygo

package hal

import (
	"fmt"
	"sync"
)

// virtualAnalog is a converter channel whose value is set from outside the
// loop (keyboard, scenario, serial bridge).
type virtualAnalog struct {
	mu   sync.Mutex
	name string
	max  int
	v    int
	err  error
}

func newVirtualAnalog(name string, max, initial int) *virtualAnalog {
	a := &virtualAnalog{name: name, max: max}
	a.set(initial)
	return a
}

func (a *virtualAnalog) Read() (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return 0, fmt.Errorf("adc %s: %w", a.name, a.err)
	}
	return a.v, nil
}

func (a *virtualAnalog) set(v int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.v = clampInt(v, 0, a.max)
}

func (a *virtualAnalog) add(delta int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.v = clampInt(a.v+delta, 0, a.max)
}

func (a *virtualAnalog) value() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.v
}

// fail makes every following Read return err.
func (a *virtualAnalog) fail(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.err = err
}

// hostSensors is the simulated hand-held unit.
type hostSensors struct {
	joyX   *virtualAnalog
	joyY   *virtualAnalog
	pot    *virtualAnalog
	button *virtualPin

	// buttonPin replaces button when set (scripted demo input).
	buttonPin GPIOPin
}

const joyCenter = (JoyMax + 1) / 2

func newHostSensors() *hostSensors {
	return &hostSensors{
		joyX:   newVirtualAnalog("JOYX", JoyMax, joyCenter),
		joyY:   newVirtualAnalog("JOYY", JoyMax, joyCenter),
		pot:    newVirtualAnalog("POT", PotMax, PotMax/2),
		button: newVirtualPin("BTN", GPIOCapInput|GPIOCapPullUp),
	}
}

func (s *hostSensors) sensors() Sensors {
	var btn GPIOPin = s.button
	if s.buttonPin != nil {
		btn = s.buttonPin
	}
	return Sensors{JoyX: s.joyX, JoyY: s.joyY, Pot: s.pot, Button: btn}
}

func (s *hostSensors) override(btn GPIOPin) {
	s.buttonPin = btn
}

// apply sets every channel at once.
func (s *hostSensors) apply(joyX, joyY, pot int, pressed bool) {
	s.joyX.set(joyX)
	s.joyY.set(joyY)
	s.pot.set(pot)
	s.button.setPressed(pressed)
}

func (s *hostSensors) failAll(err error) {
	s.joyX.fail(err)
	s.joyY.fail(err)
	s.pot.fail(err)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
