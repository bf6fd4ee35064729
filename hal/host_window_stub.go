//go:build !tinygo && !cgo

package hal

import "errors"

// WindowConfig controls the desktop simulator.
type WindowConfig struct {
	Scale  int
	TPS    int
	Serial SerialConfig
}

func RunWindow(_ RunFunc, _ WindowConfig) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
