//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"joydial/app"
	"joydial/hal"
	"joydial/internal/config"
)

func main() {
	var (
		configPath string
		savePath   string
		headless   bool
		ticks      uint64
		realtime   bool
		port       string
		baud       int
		scale      int
		verbose    bool
	)
	flag.StringVar(&configPath, "config", "joydial.yaml", "Path to the simulator config file.")
	flag.StringVar(&savePath, "write-config", "", "Write the effective config to this path and exit.")
	flag.BoolVar(&headless, "headless", false, "Run without a window.")
	flag.Uint64Var(&ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = scenario length).")
	flag.BoolVar(&realtime, "realtime", false, "Sleep for real between headless ticks.")
	flag.StringVar(&port, "serial", "", "Read sensors from a board on this serial port.")
	flag.IntVar(&baud, "baud", 0, "Serial baud rate.")
	flag.IntVar(&scale, "scale", 0, "Window zoom factor.")
	flag.BoolVar(&verbose, "verbose", false, "Log every angle change.")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Flags given on the command line win over the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "headless":
			cfg.Headless.Enabled = headless
		case "ticks":
			cfg.Headless.Ticks = ticks
		case "realtime":
			cfg.Headless.Realtime = realtime
		case "serial":
			cfg.Serial.Port = port
		case "baud":
			cfg.Serial.Baud = baud
		case "scale":
			cfg.Window.Scale = scale
		case "verbose":
			cfg.Log.Verbose = verbose
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if savePath != "" {
		if err := cfg.Save(savePath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	appCfg := app.Config{Verbose: cfg.Log.Verbose}
	run := func(ctx context.Context, h hal.HAL) error {
		return app.Run(ctx, h, appCfg)
	}
	serial := hal.SerialConfig{Port: cfg.Serial.Port, Baud: cfg.Serial.Baud}

	if cfg.Headless.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, run, hal.HeadlessConfig{
			Ticks:    cfg.Headless.Ticks,
			Realtime: cfg.Headless.Realtime,
			Scenario: scenario(cfg.Headless.Scenario),
			Serial:   serial,
		}); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(run, hal.WindowConfig{
		Scale:  cfg.Window.Scale,
		TPS:    cfg.Window.TPS,
		Serial: serial,
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func scenario(steps []config.Step) []hal.ScenarioStep {
	out := make([]hal.ScenarioStep, 0, len(steps))
	for _, s := range steps {
		out = append(out, hal.ScenarioStep{
			Ticks:  s.Ticks,
			JoyX:   s.JoyX,
			JoyY:   s.JoyY,
			Pot:    s.Pot,
			Button: s.Button,
		})
	}
	return out
}
