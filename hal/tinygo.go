//go:build tinygo && baremetal

package hal

import (
	"image/color"
	"machine"
	"time"

	"tinygo.org/x/drivers/servo"
	"tinygo.org/x/drivers/ssd1306"
	"tinygo.org/x/drivers/ws2812"
)

// Pico wiring of the hand-held unit.
const (
	pinJoyX   = machine.ADC0 // GP26
	pinJoyY   = machine.ADC1 // GP27
	pinPot    = machine.ADC2 // GP28
	pinButton = machine.GP15
	pinServo  = machine.GP13
	pinRing   = machine.GP16
	pinSDA    = machine.GP4
	pinSCL    = machine.GP5

	oledAddress = 0x3C
)

type tinyGoHAL struct {
	logger  *uartLogger
	sensors Sensors
	servo   PWM
	display Display
	ring    LEDRing
	clock   Clock
}

// New returns a Pico (RP2040) HAL implementation.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	logger := &uartLogger{uart: uart}

	machine.InitADC()
	sensors := Sensors{
		JoyX:   newADCChannel(pinJoyX, 10),
		JoyY:   newADCChannel(pinJoyY, 10),
		Pot:    newADCChannel(pinPot, 12),
		Button: &machinePin{name: "BTN", pin: pinButton},
	}

	machine.I2C0.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       pinSDA,
		SCL:       pinSCL,
	})
	// The panel needs a moment after a cold power-up.
	time.Sleep(100 * time.Millisecond)
	oled := ssd1306.NewI2C(machine.I2C0)
	oled.Configure(ssd1306.Config{
		Width:    DisplayWidth,
		Height:   DisplayHeight,
		Address:  oledAddress,
		VccState: ssd1306.SWITCHCAPVCC,
	})
	oled.ClearDisplay()

	pinRing.Configure(machine.PinConfig{Mode: machine.PinOutput})
	ring := &neoRing{dev: ws2812.New(pinRing), cells: make([]color.RGBA, RingCells)}

	var out PWM = nullPWM{}
	if s, err := servo.New(machine.PWM6, pinServo); err == nil {
		out = &servoPWM{s: s}
	} else {
		logger.WriteLineString("servo: " + err.Error())
	}

	return &tinyGoHAL{
		logger:  logger,
		sensors: sensors,
		servo:   out,
		display: &oledDisplay{dev: &oled},
		ring:    ring,
		clock:   sleepClock{},
	}
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) Sensors() Sensors { return h.sensors }
func (h *tinyGoHAL) Servo() PWM       { return h.servo }
func (h *tinyGoHAL) Display() Display { return h.display }
func (h *tinyGoHAL) Ring() LEDRing    { return h.ring }
func (h *tinyGoHAL) Clock() Clock     { return h.clock }

// nullPWM reports the missing servo on every tick so the loop stops.
type nullPWM struct{}

func (nullPWM) SetDuty(int) error { return ErrNotImplemented }
