package hal

import (
	"errors"
	"image/color"
	"time"

	"tinygo.org/x/drivers"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// AnalogIn is a single converter channel.
//
// The returned value is in the channel's configured range (for example
// 0..1023 for a 10-bit channel).
type AnalogIn interface {
	Read() (int, error)
}

// PWM drives a pulse output at a fixed frequency.
//
// Duty is expressed in 1/1024ths of the period.
type PWM interface {
	SetDuty(duty int) error
}

// Display is a buffered pixel display.
//
// SetPixel only touches the buffer; Display flushes it to the panel.
type Display interface {
	drivers.Displayer
	ClearBuffer()
}

// LEDRing is an addressable LED array. SetCell only stages a colour, Flush
// pushes the whole array out.
type LEDRing interface {
	Len() int
	SetCell(i int, c color.RGBA)
	Flush() error
}

// Clock suspends the caller. The loop's only suspension point goes through it.
type Clock interface {
	Sleep(d time.Duration)
}

// Sensors groups the input channels of the hand-held unit.
type Sensors struct {
	JoyX   AnalogIn
	JoyY   AnalogIn
	Pot    AnalogIn
	Button GPIOPin
}

// HAL provides the only contact point between the control loop and the outside world.
type HAL interface {
	Logger() Logger
	Sensors() Sensors
	Servo() PWM
	Display() Display
	Ring() LEDRing
	Clock() Clock
}

// Resolution limits of the sensor channels.
const (
	JoyMax = 1023
	PotMax = 4095
)

// RingCells is the length of the indicator ring.
const RingCells = 16

// Panel geometry of the gauge display.
const (
	DisplayWidth  = 128
	DisplayHeight = 32
)
