//go:build !tinygo && cgo

package hal

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"

	"joydial/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// WindowConfig controls the desktop simulator.
type WindowConfig struct {
	Scale  int
	TPS    int
	Serial SerialConfig
}

const (
	panelScale  = 4
	panelMargin = 16
	panelW      = DisplayWidth * panelScale
	panelH      = DisplayHeight * panelScale
	screenW     = panelW + 2*panelMargin
	screenH     = panelH + 3*panelMargin + 200
)

// RunWindow starts a desktop window that shows the panel, the ring and the
// servo horn, and forwards the keyboard to the simulated stick.
// It blocks until the window closes or the loop fails.
func RunWindow(run RunFunc, cfg WindowConfig) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}

	h := newHostHAL(wallClock{})
	defer h.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := h.attachSerial(ctx, cfg.Serial); err != nil {
		return err
	}

	g := &hostGame{h: h, done: make(chan error, 1)}
	if cfg.Serial.Port == "" {
		g.kbd = newHostKeyboard(h.sensors)
	}
	go func() { g.done <- run(ctx, h) }()

	ebiten.SetWindowTitle("joydial (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(screenW*cfg.Scale, screenH*cfg.Scale)
	ebiten.SetTPS(cfg.TPS)
	err := ebiten.RunGame(g)
	if err == ebiten.Termination {
		return nil
	}
	return err
}

type hostGame struct {
	h    *hostHAL
	kbd  *hostKeyboard
	done chan error

	img     *image.RGBA
	panel   *ebiten.Image
	scratch []bool
	ring    []color.RGBA
}

func (g *hostGame) Update() error {
	g.kbd.poll()
	select {
	case err := <-g.done:
		if err != nil {
			return err
		}
		return ebiten.Termination
	default:
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]bool, fb.width*fb.height)
		g.panel = ebiten.NewImage(fb.width, fb.height)
		g.ring = make([]color.RGBA, g.h.ring.Len())
	}

	fb.snapshot(g.scratch)
	dst := g.img.Pix
	for i, on := range g.scratch {
		c := panelOff
		if on {
			c = panelOn
		}
		j := i * 4
		dst[j+0] = c.R
		dst[j+1] = c.G
		dst[j+2] = c.B
		dst[j+3] = 0xFF
	}
	g.panel.WritePixels(g.img.Pix)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(panelScale, panelScale)
	op.GeoM.Translate(panelMargin, panelMargin)
	screen.DrawImage(g.panel, op)

	top := float32(panelH + 2*panelMargin)
	g.drawRing(screen, float32(panelMargin)+90, top+90)
	g.drawServo(screen, float32(screenW)-170, top+150)
	g.drawPot(screen, top)
}

func (g *hostGame) drawRing(screen *ebiten.Image, cx, cy float32) {
	g.h.ring.snapshot(g.ring)
	n := len(g.ring)
	for i, c := range g.ring {
		a := 2 * math.Pi * float64(i) / float64(n)
		x := cx + 70*float32(math.Cos(a))
		y := cy + 70*float32(math.Sin(a))
		vector.DrawFilledCircle(screen, x, y, 12, scaleRGB(c, 0x60), true)
		vector.DrawFilledCircle(screen, x, y, 8, c, true)
		vector.StrokeCircle(screen, x, y, 8, 1, color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xFF}, true)
	}
	ebitenutil.DebugPrintAt(screen, "ring", int(cx)-12, int(cy)-8)
}

func (g *hostGame) drawServo(screen *ebiten.Image, cx, cy float32) {
	deg := g.h.servo.angle()
	// 0 deg points left, 180 deg points right, like the gauge needle.
	rad := (deg + 180) * math.Pi / 180
	x := cx + 110*float32(math.Cos(rad))
	y := cy + 110*float32(math.Sin(rad))
	vector.StrokeLine(screen, cx-120, cy, cx+120, cy, 1, color.RGBA{R: 0x50, G: 0x50, B: 0x50, A: 0xFF}, true)
	vector.StrokeLine(screen, cx, cy, x, y, 6, color.RGBA{R: 0xF0, G: 0xF0, B: 0xF0, A: 0xFF}, true)
	vector.DrawFilledCircle(screen, cx, cy, 10, color.RGBA{R: 0x30, G: 0x60, B: 0xC0, A: 0xFF}, true)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("servo %3.0f deg", deg), int(cx)-45, int(cy)+16)
}

func (g *hostGame) drawPot(screen *ebiten.Image, top float32) {
	pot := g.h.sensors.pot.value()
	x := float32(panelMargin) + 200
	w := float32(24)
	h := float32(160)
	fill := h * float32(pot) / PotMax
	vector.StrokeRect(screen, x, top+10, w, h, 1, color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}, false)
	vector.DrawFilledRect(screen, x, top+10+h-fill, w, fill, color.RGBA{R: 0xE0, G: 0xA0, B: 0x30, A: 0xFF}, false)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("pot %d", pot), int(x)-4, int(top+h+14))
	ebitenutil.DebugPrintAt(screen, "arrows: stick  space: button  [ ]: pot", panelMargin, screenH-18)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}
