package control

import (
	"errors"
	"image/color"
	"time"

	"joydial/hal"
)

type fakeAnalog struct {
	v   int
	err error
}

func (a *fakeAnalog) Read() (int, error) { return a.v, a.err }

type fakeButton struct {
	pressed    bool
	configured bool
	pull       hal.GPIOPull
	err        error
}

func (b *fakeButton) Name() string       { return "BTN" }
func (b *fakeButton) Caps() hal.GPIOCaps { return hal.GPIOCapInput | hal.GPIOCapPullUp }
func (b *fakeButton) Configure(mode hal.GPIOMode, pull hal.GPIOPull) error {
	b.configured = mode == hal.GPIOModeInput
	b.pull = pull
	return nil
}
func (b *fakeButton) Read() (bool, error) { return !b.pressed, b.err }
func (b *fakeButton) Write(bool) error    { return hal.ErrNotImplemented }

type fakePWM struct {
	duties []int
	err    error
}

func (p *fakePWM) SetDuty(d int) error {
	if p.err != nil {
		return p.err
	}
	p.duties = append(p.duties, d)
	return nil
}

type pixel struct{ x, y int16 }

type fakeDisplay struct {
	buf     map[pixel]bool
	shown   map[pixel]bool
	clears  int
	flushes int
	err     error
}

func newFakeDisplay() *fakeDisplay {
	return &fakeDisplay{buf: map[pixel]bool{}, shown: map[pixel]bool{}}
}

func (d *fakeDisplay) Size() (x, y int16) { return hal.DisplayWidth, hal.DisplayHeight }

func (d *fakeDisplay) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= hal.DisplayWidth || y >= hal.DisplayHeight {
		return
	}
	if c.R|c.G|c.B == 0 {
		delete(d.buf, pixel{x, y})
		return
	}
	d.buf[pixel{x, y}] = true
}

func (d *fakeDisplay) ClearBuffer() {
	d.clears++
	d.buf = map[pixel]bool{}
}

func (d *fakeDisplay) Display() error {
	if d.err != nil {
		return d.err
	}
	d.flushes++
	d.shown = map[pixel]bool{}
	for p := range d.buf {
		d.shown[p] = true
	}
	return nil
}

type fakeRing struct {
	staged  []color.RGBA
	shown   []color.RGBA
	flushes int
	err     error
}

func newFakeRing(n int) *fakeRing {
	return &fakeRing{staged: make([]color.RGBA, n), shown: make([]color.RGBA, n)}
}

func (r *fakeRing) Len() int                    { return len(r.staged) }
func (r *fakeRing) SetCell(i int, c color.RGBA) { r.staged[i] = c }
func (r *fakeRing) Flush() error {
	if r.err != nil {
		return r.err
	}
	copy(r.shown, r.staged)
	r.flushes++
	return nil
}

type fakeClock struct {
	sleeps []time.Duration
	// cancel is called once the clock has slept limit times.
	limit  int
	cancel func()
}

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	if c.cancel != nil && len(c.sleeps) >= c.limit {
		c.cancel()
	}
}

type lineLog struct{ lines []string }

func (l *lineLog) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *lineLog) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

var errBus = errors.New("bus error")

// rig is a loop wired to fakes.
type rig struct {
	joyX, joyY, pot *fakeAnalog
	button          *fakeButton
	pwm             *fakePWM
	disp            *fakeDisplay
	ring            *fakeRing
	clock           *fakeClock
	log             *lineLog
	loop            *Loop
}

func newRig(verbose bool) (*rig, error) {
	r := &rig{
		joyX:   &fakeAnalog{v: 512},
		joyY:   &fakeAnalog{v: 512},
		pot:    &fakeAnalog{v: 0},
		button: &fakeButton{},
		pwm:    &fakePWM{},
		disp:   newFakeDisplay(),
		ring:   newFakeRing(hal.RingCells),
		clock:  &fakeClock{},
		log:    &lineLog{},
	}
	s, err := NewSampler(hal.Sensors{JoyX: r.joyX, JoyY: r.joyY, Pot: r.pot, Button: r.button})
	if err != nil {
		return nil, err
	}
	r.loop, err = NewLoop(Config{
		Sampler:   s,
		Indicator: NewIndicator(r.ring),
		Actuator:  NewActuator(r.pwm),
		Gauge:     NewGauge(r.disp),
		Clock:     r.clock,
		Logger:    r.log,
		Verbose:   verbose,
	})
	return r, err
}

func (r *rig) stick(x, y int) {
	r.joyX.v = x
	r.joyY.v = y
}
