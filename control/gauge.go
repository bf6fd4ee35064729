package control

import (
	"fmt"
	"image/color"
	"strconv"

	"joydial/hal"

	"github.com/chewxy/math32"
	"tinygo.org/x/tinydraw"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Gauge geometry on the 128x32 panel.
const (
	gaugeCenterX  = 64
	gaugeCenterY  = 16
	needleRadiusX = 20
	needleRadiusY = 10 // squashed to fit the panel height

	baselineStart = 10
	baselineEnd   = 118
	baselineStep  = 4

	labelX = 30
	labelY = 24
	// labelAscent moves the label's top edge to the font baseline.
	labelAscent = 7
)

var ink = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Needle returns the end of the gauge needle for angle, rounded to pixels.
// 0 points left, 90 straight up, 180 right.
func Needle(angle int) (x, y int16) {
	rad := float32(angle+180) * math32.Pi / 180
	fx := gaugeCenterX + needleRadiusX*math32.Cos(rad)
	fy := gaugeCenterY + needleRadiusY*math32.Sin(rad)
	return int16(math32.Floor(fx + 0.5)), int16(math32.Floor(fy + 0.5))
}

// Label is the text under the needle.
func Label(angle int) string {
	return "Angle: " + strconv.Itoa(angle)
}

// Gauge draws the angle as a needle over a dotted baseline.
type Gauge struct {
	disp hal.Display
	font tinyfont.Fonter
}

func NewGauge(disp hal.Display) *Gauge {
	return &Gauge{disp: disp, font: &proggy.TinySZ8pt7b}
}

// Render redraws the whole frame and flushes it. Called every tick.
func (g *Gauge) Render(angle int) error {
	g.disp.ClearBuffer()

	for x := int16(baselineStart); x < baselineEnd; x += baselineStep {
		g.disp.SetPixel(x, gaugeCenterY, ink)
	}

	nx, ny := Needle(angle)
	tinydraw.Line(g.disp, gaugeCenterX, gaugeCenterY, nx, ny, ink)

	tinyfont.WriteLine(g.disp, g.font, labelX, labelY+labelAscent, Label(angle), ink)

	if err := g.disp.Display(); err != nil {
		return fmt.Errorf("flush display: %w", err)
	}
	return nil
}
