package control

import (
	"context"
	"errors"
	"fmt"
	"time"

	"joydial/hal"
)

// Tick delay range, set by the pot.
const (
	MinTickDelayMs = 5
	MaxTickDelayMs = 50
)

// TickDelay converts a pot reading to the pause at the end of a tick.
func TickDelay(pot int) time.Duration {
	return time.Duration(Map(pot, 0, hal.PotMax, MinTickDelayMs, MaxTickDelayMs)) * time.Millisecond
}

// Config wires a Loop.
type Config struct {
	Sampler   *Sampler
	Indicator *Indicator
	Actuator  *Actuator
	Gauge     *Gauge
	Clock     hal.Clock
	Logger    hal.Logger

	// Verbose logs every angle change, not only button presses.
	Verbose bool
}

// TickResult is what one tick sampled, decided and slept.
type TickResult struct {
	StepResult
	Sample RawInputSample
	Delay  time.Duration
}

// Loop is the supervisory control loop. It is not safe for concurrent use.
type Loop struct {
	sampler   *Sampler
	indicator *Indicator
	actuator  *Actuator
	gauge     *Gauge
	clock     hal.Clock
	log       hal.Logger
	verbose   bool

	state ControlState
	ticks uint64
}

var errIncompleteConfig = errors.New("control: incomplete loop config")

func NewLoop(cfg Config) (*Loop, error) {
	if cfg.Sampler == nil || cfg.Indicator == nil || cfg.Actuator == nil || cfg.Gauge == nil || cfg.Clock == nil {
		return nil, errIncompleteConfig
	}
	return &Loop{
		sampler:   cfg.Sampler,
		indicator: cfg.Indicator,
		actuator:  cfg.Actuator,
		gauge:     cfg.Gauge,
		clock:     cfg.Clock,
		log:       cfg.Logger,
		verbose:   cfg.Verbose,
		state:     NewControlState(),
	}, nil
}

// State returns a copy of the current control state.
func (l *Loop) State() ControlState { return l.state }

// Ticks returns the number of completed ticks.
func (l *Loop) Ticks() uint64 { return l.ticks }

// Tick runs one iteration: sample, step (signalling the ring), drive the
// servo, redraw the gauge, then sleep for the pot-derived delay.
// Any peripheral error aborts the tick and is returned with its stage.
func (l *Loop) Tick() (TickResult, error) {
	var res TickResult

	in, err := l.sampler.Sample()
	if err != nil {
		return res, fmt.Errorf("sample: %w", err)
	}
	res.Sample = in

	res.StepResult, err = Step(&l.state, in, l.indicator)
	if err != nil {
		return res, fmt.Errorf("indicator: %w", err)
	}

	if err := l.actuator.Drive(l.state.Angle); err != nil {
		return res, fmt.Errorf("actuator: %w", err)
	}
	if err := l.gauge.Render(l.state.Angle); err != nil {
		return res, fmt.Errorf("gauge: %w", err)
	}

	l.report(res)

	res.Delay = TickDelay(in.Pot)
	l.clock.Sleep(res.Delay)
	l.ticks++
	return res, nil
}

// Run ticks until a tick fails or ctx is done. On the device ctx is never
// cancelled, so Run only returns on a fatal peripheral error.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if _, err := l.Tick(); err != nil {
			return err
		}
	}
}

func (l *Loop) report(res TickResult) {
	if l.log == nil {
		return
	}
	if res.Pressed {
		l.log.WriteLineString(fmt.Sprintf("tick %d: button pressed at %d", l.ticks, res.Angle))
	}
	if l.verbose && res.Changed() {
		l.log.WriteLineString(fmt.Sprintf("tick %d: %s %d -> %d (pot %d, duty %d, ring %s)",
			l.ticks, res.Direction, res.Previous, res.Angle, res.Sample.Pot, l.actuator.Duty(), l.indicator.Last()))
	}
}
