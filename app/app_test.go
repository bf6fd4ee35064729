package app

import (
	"context"
	"errors"
	"image/color"
	"strings"
	"testing"
	"time"

	"joydial/hal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAnalog int

func (a stubAnalog) Read() (int, error) { return int(a), nil }

type stubButton struct{}

func (stubButton) Name() string                               { return "BTN" }
func (stubButton) Caps() hal.GPIOCaps                         { return hal.GPIOCapInput | hal.GPIOCapPullUp }
func (stubButton) Configure(hal.GPIOMode, hal.GPIOPull) error { return nil }
func (stubButton) Read() (bool, error)                        { return true, nil }
func (stubButton) Write(bool) error                           { return hal.ErrNotImplemented }

type stubPWM struct{ err error }

func (p stubPWM) SetDuty(int) error { return p.err }

type stubDisplay struct {
	lit     int
	flushes int
	failAt  int
}

func (d *stubDisplay) Size() (x, y int16) { return hal.DisplayWidth, hal.DisplayHeight }
func (d *stubDisplay) SetPixel(x, y int16, c color.RGBA) {
	if c.R|c.G|c.B != 0 {
		d.lit++
	}
}
func (d *stubDisplay) ClearBuffer() { d.lit = 0 }
func (d *stubDisplay) Display() error {
	d.flushes++
	if d.failAt > 0 && d.flushes == d.failAt {
		return errors.New("i2c nack")
	}
	return nil
}

type stubRing struct{}

func (stubRing) Len() int                { return hal.RingCells }
func (stubRing) SetCell(int, color.RGBA) {}
func (stubRing) Flush() error            { return nil }

type cancelClock struct {
	n      int
	cancel func()
}

func (c *cancelClock) Sleep(time.Duration) {
	c.n++
	if c.n >= 3 && c.cancel != nil {
		c.cancel()
	}
}

type memLog struct{ lines []string }

func (l *memLog) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *memLog) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

type stubHAL struct {
	log   *memLog
	disp  *stubDisplay
	servo stubPWM
	clock hal.Clock
}

func (h *stubHAL) Logger() hal.Logger { return h.log }
func (h *stubHAL) Sensors() hal.Sensors {
	return hal.Sensors{JoyX: stubAnalog(512), JoyY: stubAnalog(512), Pot: stubAnalog(0), Button: stubButton{}}
}
func (h *stubHAL) Servo() hal.PWM       { return h.servo }
func (h *stubHAL) Display() hal.Display { return h.disp }
func (h *stubHAL) Ring() hal.LEDRing    { return stubRing{} }
func (h *stubHAL) Clock() hal.Clock     { return h.clock }

func TestRunStopsCleanlyOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	clock := &cancelClock{cancel: cancel}
	h := &stubHAL{log: &memLog{}, disp: &stubDisplay{}, clock: clock}

	err := Run(ctx, h, Config{})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, clock.n)
	require.NotEmpty(t, h.log.lines)
	assert.True(t, strings.HasPrefix(h.log.lines[0], "joydial "), "banner first")
	for _, l := range h.log.lines {
		assert.NotContains(t, l, "fatal")
	}
}

func TestRunShowsFaultOnPeripheralError(t *testing.T) {
	h := &stubHAL{
		log:   &memLog{},
		disp:  &stubDisplay{},
		servo: stubPWM{err: errors.New("no pwm")},
		clock: &cancelClock{},
	}

	err := Run(context.Background(), h, Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "actuator")
	assert.Contains(t, h.log.lines[len(h.log.lines)-1], "fatal: actuator")
	assert.Positive(t, h.disp.lit, "fault text drawn")
	assert.Equal(t, 2, h.disp.flushes, "splash and fault screen")
}

func TestRunReportsDisplayFailure(t *testing.T) {
	h := &stubHAL{log: &memLog{}, disp: &stubDisplay{failAt: 2}, clock: &cancelClock{}}

	err := Run(context.Background(), h, Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gauge")
	assert.Contains(t, err.Error(), "i2c nack")
}

func TestWrapFitsWidth(t *testing.T) {
	lines := wrap("actuator: set duty 75: servo not connected to anything", 128)
	require.Greater(t, len(lines), 1)
	assert.Equal(t, "actuator: set duty 75: servo not connected to anything", strings.Join(lines, " "))
	assert.Empty(t, wrap("", 128))
}
