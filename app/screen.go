package app

import (
	"image/color"
	"strings"

	"joydial/hal"
	"joydial/internal/buildinfo"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var (
	fg   = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	font = &proggy.TinySZ8pt7b
)

// Text layout on the 32-pixel panel: three rows.
const (
	rowHeight   = 10
	firstRowY   = 8
	faultRows   = 3
	faultColumn = 0
)

// splash shows the build on the panel until the first frame replaces it.
func splash(d hal.Display) {
	if d == nil {
		return
	}
	d.ClearBuffer()
	tinyfont.WriteLine(d, font, 0, firstRowY, "joydial", fg)
	tinyfont.WriteLine(d, font, 0, firstRowY+rowHeight, buildinfo.Short(), fg)
	_ = d.Display()
}

// showFault replaces the gauge with the error that stopped the loop.
func showFault(d hal.Display, err error) {
	if d == nil || err == nil {
		return
	}
	d.ClearBuffer()
	w, _ := d.Size()
	lines := append([]string{"FAULT"}, wrap(err.Error(), w)...)
	if len(lines) > faultRows {
		lines = lines[:faultRows]
	}
	y := int16(firstRowY)
	for _, line := range lines {
		tinyfont.WriteLine(d, font, faultColumn, y, line, fg)
		y += rowHeight
	}
	_ = d.Display()
}

// wrap splits s into lines that fit width pixels in font.
func wrap(s string, width int16) []string {
	var lines []string
	var cur string
	for _, word := range strings.Fields(s) {
		next := word
		if cur != "" {
			next = cur + " " + word
		}
		if _, w := tinyfont.LineWidth(font, next); cur != "" && int16(w) > width {
			lines = append(lines, cur)
			next = word
		}
		cur = next
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}
