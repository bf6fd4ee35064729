//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ScenarioStep holds the sensor inputs for a number of consecutive ticks.
type ScenarioStep struct {
	Ticks  int
	JoyX   int
	JoyY   int
	Pot    int
	Button bool
}

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	// Ticks stops the run after N ticks (0 = length of the scenario, or forever
	// when there is no scenario and the sensors come from a serial bridge).
	Ticks    uint64
	Realtime bool
	Scenario []ScenarioStep
	Serial   SerialConfig

	// Output receives the log lines (default stdout).
	Output io.Writer
}

// DemoScenario sweeps the stick both ways at different pot settings.
func DemoScenario() []ScenarioStep {
	return []ScenarioStep{
		{Ticks: 10, JoyX: joyCenter, JoyY: joyCenter, Pot: 0},
		{Ticks: 25, JoyX: JoyMax, JoyY: joyCenter, Pot: 0},
		{Ticks: 10, JoyX: joyCenter, JoyY: joyCenter, Pot: PotMax},
		{Ticks: 40, JoyX: 0, JoyY: joyCenter, Pot: PotMax / 2},
		{Ticks: 20, JoyX: joyCenter, JoyY: JoyMax, Pot: PotMax / 4},
	}
}

// ScenarioTicks is the total length of a scenario.
func ScenarioTicks(steps []ScenarioStep) uint64 {
	var n uint64
	for _, s := range steps {
		if s.Ticks > 0 {
			n += uint64(s.Ticks)
		}
	}
	return n
}

// stepAt returns the scenario step in force for the zero-based tick index.
// Past the end the last step holds.
func stepAt(steps []ScenarioStep, tick uint64) (ScenarioStep, bool) {
	if len(steps) == 0 {
		return ScenarioStep{}, false
	}
	var start uint64
	for _, s := range steps {
		if s.Ticks <= 0 {
			continue
		}
		end := start + uint64(s.Ticks)
		if tick < end {
			return s, true
		}
		start = end
	}
	return steps[len(steps)-1], true
}

// RunHeadless runs the control loop without opening a window.
//
// Without a serial bridge the clock is virtual, so scenarios replay as fast
// as the loop can run unless cfg.Realtime is set.
func RunHeadless(ctx context.Context, run RunFunc, cfg HeadlessConfig) error {
	demo := len(cfg.Scenario) == 0 && cfg.Serial.Port == ""
	if demo {
		cfg.Scenario = DemoScenario()
	}
	if cfg.Ticks == 0 {
		cfg.Ticks = ScenarioTicks(cfg.Scenario)
	}

	clock := newVirtualClock(time.Unix(0, 0))
	clock.realtime = cfg.Realtime || cfg.Serial.Port != ""
	h := newHostHAL(clock)
	defer h.close()
	if cfg.Output != nil {
		h.logger.w = cfg.Output
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := h.attachSerial(runCtx, cfg.Serial); err != nil {
		return err
	}

	if demo {
		// Demo button: held for 300ms out of every 2s of simulated time.
		btn := newSignalPinWithClock("BTN", 2*time.Second, 300*time.Millisecond, clock.Now)
		h.sensors.override(btn)
	}

	apply := func(tick uint64) {
		if cfg.Serial.Port != "" {
			return
		}
		if s, ok := stepAt(cfg.Scenario, tick); ok {
			h.sensors.apply(s.JoyX, s.JoyY, s.Pot, s.Button)
		}
	}
	apply(0)

	var done bool
	clock.onSleep = func(n uint64, _ time.Duration) {
		if cfg.Ticks > 0 && n >= cfg.Ticks {
			done = true
			cancel()
			return
		}
		apply(n)
	}

	err := run(runCtx, h)
	h.logger.WriteLineString(fmt.Sprintf(
		"headless: %d ticks, %s simulated, servo %.0f deg, %d display flushes",
		clock.sleeps, clock.elapsed(), h.servo.angle(), h.fb.flushes,
	))
	if h.bridge != nil {
		if n := h.bridge.rejected(); n > 0 {
			h.logger.WriteLineString(fmt.Sprintf("serial: skipped %d malformed lines", n))
		}
	}
	if err == nil {
		return nil
	}
	if done && errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
