package app

import (
	"context"
	"errors"
	"fmt"

	"joydial/control"
	"joydial/hal"
	"joydial/internal/buildinfo"
)

// Config holds the knobs the entry points expose.
type Config struct {
	Verbose bool
}

// New wires the control loop to h.
func New(h hal.HAL, cfg Config) (*control.Loop, error) {
	sampler, err := control.NewSampler(h.Sensors())
	if err != nil {
		return nil, fmt.Errorf("sensors: %w", err)
	}
	return control.NewLoop(control.Config{
		Sampler:   sampler,
		Indicator: control.NewIndicator(h.Ring()),
		Actuator:  control.NewActuator(h.Servo()),
		Gauge:     control.NewGauge(h.Display()),
		Clock:     h.Clock(),
		Logger:    h.Logger(),
		Verbose:   cfg.Verbose,
	})
}

// Run builds the loop and runs it until ctx is done or a peripheral fails.
// A failure is logged and shown on the panel before it is returned.
func Run(ctx context.Context, h hal.HAL, cfg Config) (err error) {
	log := h.Logger()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			if log != nil {
				log.WriteLineString("fatal: " + err.Error())
			}
			showFault(h.Display(), err)
		}
	}()

	if log != nil {
		log.WriteLineString(buildinfo.Banner())
	}
	splash(h.Display())

	loop, err := New(h, cfg)
	if err != nil {
		return err
	}
	return loop.Run(ctx)
}

// RunForever is the firmware entrypoint: it never returns. After a fatal
// error the fault screen stays up until reset.
func RunForever(h hal.HAL) {
	_ = Run(context.Background(), h, Config{})
	select {}
}
