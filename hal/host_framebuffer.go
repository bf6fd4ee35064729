//go:build !tinygo

package hal

import (
	"image/color"
	"sync"
)

// hostFramebuffer is a 1-bit panel with a back buffer written by the loop and
// a front buffer updated on Display, mirroring a buffered SSD1306.
type hostFramebuffer struct {
	mu      sync.Mutex
	width   int
	height  int
	back    []bool
	front   []bool
	flushes uint64
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	return &hostFramebuffer{
		width:  width,
		height: height,
		back:   make([]bool, width*height),
		front:  make([]bool, width*height),
	}
}

func (f *hostFramebuffer) Size() (x, y int16) { return int16(f.width), int16(f.height) }

func (f *hostFramebuffer) SetPixel(x, y int16, c color.RGBA) {
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= f.width || iy < 0 || iy >= f.height {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.back[iy*f.width+ix] = lit(c)
}

func (f *hostFramebuffer) ClearBuffer() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.back {
		f.back[i] = false
	}
}

func (f *hostFramebuffer) Display() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(f.front, f.back)
	f.flushes++
	return nil
}

// snapshot copies the last flushed frame into dst (len width*height).
func (f *hostFramebuffer) snapshot(dst []bool) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.front)
	return f.flushes
}

// hostRing stages colours until Flush, like a WS2812 chain.
type hostRing struct {
	mu      sync.Mutex
	staged  []color.RGBA
	shown   []color.RGBA
	flushes uint64
}

func newHostRing(n int) *hostRing {
	return &hostRing{
		staged: make([]color.RGBA, n),
		shown:  make([]color.RGBA, n),
	}
}

func (r *hostRing) Len() int { return len(r.staged) }

func (r *hostRing) SetCell(i int, c color.RGBA) {
	if i < 0 || i >= len(r.staged) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.staged[i] = c
}

func (r *hostRing) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copy(r.shown, r.staged)
	r.flushes++
	return nil
}

func (r *hostRing) snapshot(dst []color.RGBA) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copy(dst, r.shown)
}

// hostServo remembers the last duty so the window can draw the horn.
type hostServo struct {
	mu   sync.Mutex
	duty int
	sets uint64
}

// Duty limits of a hobby servo at 50 Hz with a 10-bit duty register.
const (
	servoDutyMin = 25
	servoDutyMax = 125
)

func (s *hostServo) SetDuty(duty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.duty = duty
	s.sets++
	return nil
}

// angle estimates the horn position from the duty, in degrees.
func (s *hostServo) angle() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sets == 0 {
		return 90
	}
	d := clampInt(s.duty, servoDutyMin, servoDutyMax)
	return float64(d-servoDutyMin) * 180 / float64(servoDutyMax-servoDutyMin)
}
