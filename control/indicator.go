package control

import (
	"fmt"
	"image/color"

	"joydial/hal"
)

var (
	colorCCW    = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	colorCW     = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	colorButton = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// ColorFor returns the ring colour for d. Anything but a turn shows white.
func ColorFor(d Direction) color.RGBA {
	switch d {
	case CounterClockwise:
		return colorCCW
	case Clockwise:
		return colorCW
	default:
		return colorButton
	}
}

// Indicator paints the whole LED ring in one colour.
type Indicator struct {
	ring hal.LEDRing
	last Direction
}

func NewIndicator(ring hal.LEDRing) *Indicator {
	return &Indicator{ring: ring}
}

// Signal fills every cell with the colour for d and flushes once.
func (i *Indicator) Signal(d Direction) error {
	c := ColorFor(d)
	for n := 0; n < i.ring.Len(); n++ {
		i.ring.SetCell(n, c)
	}
	if err := i.ring.Flush(); err != nil {
		return fmt.Errorf("flush ring: %w", err)
	}
	i.last = d
	return nil
}

// Last returns the most recently shown signal (None before the first one).
func (i *Indicator) Last() Direction { return i.last }
