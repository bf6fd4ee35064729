//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
)

// RunFunc runs the control loop against a HAL until ctx is done or the loop fails.
type RunFunc func(ctx context.Context, h HAL) error

type hostHAL struct {
	logger  *hostLogger
	sensors *hostSensors
	servo   *hostServo
	fb      *hostFramebuffer
	ring    *hostRing
	clock   Clock
	bridge  *serialBridge
}

// New returns a host HAL implementation driven by the wall clock.
func New() HAL {
	return newHostHAL(wallClock{})
}

func newHostHAL(clock Clock) *hostHAL {
	logger := &hostLogger{w: os.Stdout}
	return &hostHAL{
		logger:  logger,
		sensors: newHostSensors(),
		servo:   &hostServo{},
		fb:      newHostFramebuffer(DisplayWidth, DisplayHeight),
		ring:    newHostRing(RingCells),
		clock:   clock,
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Sensors() Sensors { return h.sensors.sensors() }
func (h *hostHAL) Servo() PWM       { return h.servo }
func (h *hostHAL) Display() Display { return h.fb }
func (h *hostHAL) Ring() LEDRing    { return h.ring }
func (h *hostHAL) Clock() Clock     { return h.clock }

// attachSerial hands the sensor channels over to a board streaming raw readings.
func (h *hostHAL) attachSerial(ctx context.Context, cfg SerialConfig) error {
	if cfg.Port == "" {
		return nil
	}
	b, err := openSerialBridge(cfg, h.sensors, h.logger)
	if err != nil {
		return err
	}
	h.bridge = b
	go b.run(ctx)
	h.logger.WriteLineString(fmt.Sprintf("serial: reading sensors from %s @ %d", cfg.Port, b.baud))
	return nil
}

func (h *hostHAL) close() {
	if h.bridge != nil {
		h.bridge.close()
	}
}

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
