//go:build !tinygo

package hal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"go.bug.st/serial"
)

// DefaultBaudRate is used when SerialConfig.Baud is zero.
const DefaultBaudRate = 115200

// SerialConfig selects a board that streams raw sensor readings.
//
// Each line is "joyX,joyY,pot,button" with button being the raw active-low
// level (0 = pressed).
type SerialConfig struct {
	Port string
	Baud int
}

var errBridgeClosed = errors.New("serial bridge closed")

type bridgeSample struct {
	joyX, joyY, pot int
	pressed         bool
}

// parseSampleLine decodes one bridge line. Out-of-range readings are rejected.
func parseSampleLine(line string) (bridgeSample, error) {
	line = strings.TrimSpace(line)
	parts := strings.Split(line, ",")
	if len(parts) != 4 {
		return bridgeSample{}, fmt.Errorf("invalid line format: expected 4 fields, got %d", len(parts))
	}

	fields := [3]int{}
	limits := [3]int{JoyMax, JoyMax, PotMax}
	names := [3]string{"joyX", "joyY", "pot"}
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return bridgeSample{}, fmt.Errorf("invalid %s: %w", names[i], err)
		}
		if v < 0 || v > limits[i] {
			return bridgeSample{}, fmt.Errorf("%s out of range: %d", names[i], v)
		}
		fields[i] = v
	}

	var pressed bool
	switch strings.TrimSpace(parts[3]) {
	case "0":
		pressed = true
	case "1":
		pressed = false
	default:
		return bridgeSample{}, fmt.Errorf("invalid button level: %q", parts[3])
	}

	return bridgeSample{joyX: fields[0], joyY: fields[1], pot: fields[2], pressed: pressed}, nil
}

type serialBridge struct {
	port    serial.Port
	name    string
	baud    int
	sensors *hostSensors
	log     Logger

	mu     sync.Mutex
	closed bool
	bad    uint64
}

func openSerialBridge(cfg SerialConfig, s *hostSensors, log Logger) (*serialBridge, error) {
	baud := cfg.Baud
	if baud == 0 {
		baud = DefaultBaudRate
	}
	port, err := serial.Open(cfg.Port, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", cfg.Port, err)
	}
	return &serialBridge{port: port, name: cfg.Port, baud: baud, sensors: s, log: log}, nil
}

func (b *serialBridge) run(ctx context.Context) {
	go func() {
		<-ctx.Done()
		b.close()
	}()

	err := b.consume(b.port)
	if err == nil {
		err = errBridgeClosed
	}
	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if !closed {
		b.log.WriteLineString(fmt.Sprintf("serial: %s: %v", b.name, err))
	}
	b.sensors.failAll(fmt.Errorf("serial %s: %w", b.name, err))
}

// maxLineLen bounds a bridge line. Longer lines (line noise, wrong baud rate)
// are dropped up to the next newline.
const maxLineLen = 256

// consume applies every valid line to the sensors; bad lines keep the last
// reading. It returns nil at EOF.
func (b *serialBridge) consume(r io.Reader) error {
	br := bufio.NewReaderSize(r, maxLineLen)
	dropping := false
	for {
		chunk, err := br.ReadSlice('\n')
		if errors.Is(err, bufio.ErrBufferFull) {
			if !dropping {
				b.reject()
				dropping = true
			}
			continue
		}
		if dropping {
			// Tail of an oversized line.
			dropping = false
		} else if len(chunk) > 0 {
			b.handle(string(chunk))
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (b *serialBridge) handle(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	s, err := parseSampleLine(line)
	if err != nil {
		b.reject()
		return
	}
	b.sensors.apply(s.joyX, s.joyY, s.pot, s.pressed)
}

func (b *serialBridge) reject() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bad++
}

func (b *serialBridge) rejected() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bad
}

func (b *serialBridge) close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	if b.port != nil {
		b.port.Close()
	}
}
