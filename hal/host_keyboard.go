//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// hostKeyboard maps desktop keys onto the simulated hand-held unit.
type hostKeyboard struct {
	s *hostSensors
}

// Pot change per frame while a pot key is held.
const potKeyStep = 32

func newHostKeyboard(s *hostSensors) *hostKeyboard {
	return &hostKeyboard{s: s}
}

func (k *hostKeyboard) poll() {
	if k == nil || k.s == nil {
		return
	}

	k.s.joyX.set(axis(ebiten.KeyArrowLeft, ebiten.KeyArrowRight))
	k.s.joyY.set(axis(ebiten.KeyArrowDown, ebiten.KeyArrowUp))

	if ebiten.IsKeyPressed(ebiten.KeyBracketLeft) {
		k.s.pot.add(-potKeyStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyBracketRight) {
		k.s.pot.add(potKeyStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		k.s.pot.set(0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnd) {
		k.s.pot.set(PotMax)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		k.s.button.setPressed(true)
	}
	if inpututil.IsKeyJustReleased(ebiten.KeySpace) {
		k.s.button.setPressed(false)
	}
}

// axis returns the stick deflection for a pair of keys: low end, centre or high end.
func axis(low, high ebiten.Key) int {
	lo := ebiten.IsKeyPressed(low)
	hi := ebiten.IsKeyPressed(high)
	switch {
	case lo && !hi:
		return 0
	case hi && !lo:
		return JoyMax
	default:
		return joyCenter
	}
}
