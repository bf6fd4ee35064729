//go:build tinygo

package main

import (
	"joydial/app"
	"joydial/hal"
)

func main() {
	app.RunForever(hal.New())
}
