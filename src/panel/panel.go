// Package panel stands in for the knobs, switch and LED of the hardware.
// A Panel is fed by a control surface (the IPC socket, the terminal or a
// script) and read by the audio controller.
package panel

import (
	"fmt"
	"math"
	"strconv"
	"sync/atomic"

	"github.com/jinjor/desktop-drone/src/audio"
)

const knobCount = 3

var (
	_ audio.AnalogInput  = (*Panel)(nil)
	_ audio.DigitalInput = (*Panel)(nil)
	_ audio.Indicator    = (*Panel)(nil)
)

// Panel holds the latest position of every control. All methods are safe
// for concurrent use.
type Panel struct {
	knobs [knobCount]atomic.Uint64
	sw    atomic.Bool
	led   atomic.Bool
}

// New returns a panel with the switch on and the knobs at their rest
// positions.
func New() *Panel {
	p := &Panel{}
	p.SetKnob(audio.Pitch, 0.5)
	p.SetKnob(audio.Freq, 0.25)
	p.SetKnob(audio.Timbre, 0.7)
	p.sw.Store(true)
	return p
}

// Float implements audio.AnalogInput.
func (p *Panel) Float(ch audio.Channel) float64 {
	if ch < 0 || int(ch) >= knobCount {
		return 0
	}
	return math.Float64frombits(p.knobs[ch].Load())
}

// Read implements audio.DigitalInput.
func (p *Panel) Read() bool {
	return p.sw.Load()
}

// Set implements audio.Indicator.
func (p *Panel) Set(on bool) {
	p.led.Store(on)
}

// LED reports the last value given to Set.
func (p *Panel) LED() bool {
	return p.led.Load()
}

// SetKnob moves a knob, clamping to 0..1, and returns the stored value.
func (p *Panel) SetKnob(ch audio.Channel, value float64) float64 {
	if ch < 0 || int(ch) >= knobCount {
		return 0
	}
	if value < 0 || math.IsNaN(value) {
		value = 0
	} else if value > 1 {
		value = 1
	}
	p.knobs[ch].Store(math.Float64bits(value))
	return value
}

// Nudge moves a knob by delta.
func (p *Panel) Nudge(ch audio.Channel, delta float64) float64 {
	return p.SetKnob(ch, p.Float(ch)+delta)
}

// SetSwitch sets the raw switch level.
func (p *Panel) SetSwitch(on bool) {
	p.sw.Store(on)
}

// Toggle flips the switch and returns the new level.
func (p *Panel) Toggle() bool {
	for {
		old := p.sw.Load()
		if p.sw.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Apply runs one control command:
//
//	knob <pitch|freq|timbre> <0..1>
//	switch <on|off|toggle>
func (p *Panel) Apply(command []string) error {
	if len(command) == 0 {
		return fmt.Errorf("empty command")
	}
	switch command[0] {
	case "knob":
		if len(command) != 3 {
			return fmt.Errorf("invalid knob command %v", command)
		}
		ch, err := audio.ChannelFromString(command[1])
		if err != nil {
			return err
		}
		value, err := strconv.ParseFloat(command[2], 64)
		if err != nil {
			return err
		}
		p.SetKnob(ch, value)
	case "switch":
		if len(command) != 2 {
			return fmt.Errorf("invalid switch command %v", command)
		}
		switch command[1] {
		case "on":
			p.SetSwitch(true)
		case "off":
			p.SetSwitch(false)
		case "toggle":
			p.Toggle()
		default:
			return fmt.Errorf("invalid switch value %q", command[1])
		}
	default:
		return fmt.Errorf("unknown command %v", command[0])
	}
	return nil
}

// String renders the panel as a one-line status.
func (p *Panel) String() string {
	led := "○"
	if p.LED() {
		led = "●"
	}
	return fmt.Sprintf("pitch %.2f  freq %.2f  timbre %.2f  switch %-3s  led %s",
		p.Float(audio.Pitch), p.Float(audio.Freq), p.Float(audio.Timbre), onOff(p.Read()), led)
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
