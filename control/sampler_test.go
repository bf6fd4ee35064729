package control

import (
	"testing"

	"joydial/hal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSamplerReadsAllChannels(t *testing.T) {
	btn := &fakeButton{pressed: true}
	s, err := NewSampler(hal.Sensors{
		JoyX:   &fakeAnalog{v: 10},
		JoyY:   &fakeAnalog{v: 1000},
		Pot:    &fakeAnalog{v: 4095},
		Button: btn,
	})
	require.NoError(t, err)
	assert.True(t, btn.configured)
	assert.Equal(t, hal.GPIOPullUp, btn.pull)

	in, err := s.Sample()
	require.NoError(t, err)
	assert.Equal(t, RawInputSample{JoyX: 10, JoyY: 1000, Pot: 4095, ButtonPressed: true}, in)

	btn.pressed = false
	in, err = s.Sample()
	require.NoError(t, err)
	assert.False(t, in.ButtonPressed, "high line means released")
}

func TestSamplerErrors(t *testing.T) {
	_, err := NewSampler(hal.Sensors{JoyX: &fakeAnalog{}})
	require.Error(t, err)

	pot := &fakeAnalog{err: errBus}
	s, err := NewSampler(hal.Sensors{
		JoyX:   &fakeAnalog{},
		JoyY:   &fakeAnalog{},
		Pot:    pot,
		Button: &fakeButton{},
	})
	require.NoError(t, err)

	_, err = s.Sample()
	require.ErrorIs(t, err, errBus)
	assert.Contains(t, err.Error(), "pot")
}
