//go:build tinygo && baremetal

package hal

import (
	"fmt"
	"image/color"
	"machine"
	"time"

	"tinygo.org/x/drivers/servo"
	"tinygo.org/x/drivers/ssd1306"
	"tinygo.org/x/drivers/ws2812"
)

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

type sleepClock struct{}

func (sleepClock) Sleep(d time.Duration) { time.Sleep(d) }

// adcChannel reduces the 16-bit machine.ADC reading to the channel's
// configured width.
type adcChannel struct {
	adc  machine.ADC
	bits uint8
}

func newADCChannel(pin machine.Pin, bits uint8) *adcChannel {
	adc := machine.ADC{Pin: pin}
	adc.Configure(machine.ADCConfig{})
	return &adcChannel{adc: adc, bits: bits}
}

func (a *adcChannel) Read() (int, error) {
	return int(a.adc.Get() >> (16 - a.bits)), nil
}

type machinePin struct {
	name string
	pin  machine.Pin
}

func (p *machinePin) Name() string { return p.name }
func (p *machinePin) Caps() GPIOCaps {
	return GPIOCapInput | GPIOCapOutput | GPIOCapPullUp | GPIOCapPullDown
}

func (p *machinePin) Configure(mode GPIOMode, pull GPIOPull) error {
	var m machine.PinMode
	switch {
	case mode == GPIOModeOutput:
		m = machine.PinOutput
	case mode == GPIOModeInput && pull == GPIOPullUp:
		m = machine.PinInputPullup
	case mode == GPIOModeInput && pull == GPIOPullDown:
		m = machine.PinInputPulldown
	case mode == GPIOModeInput:
		m = machine.PinInput
	default:
		return fmt.Errorf("gpio: pin %s: invalid mode", p.name)
	}
	p.pin.Configure(machine.PinConfig{Mode: m})
	return nil
}

func (p *machinePin) Read() (bool, error) { return p.pin.Get(), nil }

func (p *machinePin) Write(level bool) error {
	p.pin.Set(level)
	return nil
}

// oledDisplay adapts the SSD1306 driver to Display.
type oledDisplay struct {
	dev *ssd1306.Device
}

func (d *oledDisplay) Size() (x, y int16)                { return d.dev.Size() }
func (d *oledDisplay) SetPixel(x, y int16, c color.RGBA) { d.dev.SetPixel(x, y, c) }
func (d *oledDisplay) Display() error                    { return d.dev.Display() }
func (d *oledDisplay) ClearBuffer()                      { d.dev.ClearBuffer() }

// neoRing stages colours and writes the whole WS2812 chain on Flush.
type neoRing struct {
	dev   ws2812.Device
	cells []color.RGBA
}

func (r *neoRing) Len() int { return len(r.cells) }

func (r *neoRing) SetCell(i int, c color.RGBA) {
	if i < 0 || i >= len(r.cells) {
		return
	}
	r.cells[i] = c
}

func (r *neoRing) Flush() error {
	return r.dev.WriteColors(r.cells)
}

// servoPWM turns a 10-bit duty at 50 Hz into a pulse width for the servo driver.
type servoPWM struct {
	s servo.Servo
}

// servoPeriodMicros is one 50 Hz frame.
const servoPeriodMicros = 20000

func (p *servoPWM) SetDuty(duty int) error {
	if duty < 0 || duty > 1023 {
		return fmt.Errorf("servo: duty %d out of range", duty)
	}
	p.s.SetMicroseconds(int16(duty * servoPeriodMicros / 1024))
	return nil
}
