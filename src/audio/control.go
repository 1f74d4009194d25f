package audio

import (
	"context"
	"fmt"
	"log"
	"time"
)

// ----- Channel ----- //

// Channel identifies one analog control input.
type Channel int

const (
	Pitch Channel = iota
	Freq
	Timbre
)

func (c Channel) String() string {
	switch c {
	case Pitch:
		return "pitch"
	case Freq:
		return "freq"
	case Timbre:
		return "timbre"
	}
	return fmt.Sprintf("Channel(%d)", int(c))
}

// ChannelFromString parses the name printed by Channel.String.
func ChannelFromString(s string) (Channel, error) {
	switch s {
	case "pitch":
		return Pitch, nil
	case "freq":
		return Freq, nil
	case "timbre":
		return Timbre, nil
	}
	return 0, fmt.Errorf("unknown channel %q", s)
}

// ----- Collaborators ----- //

// AnalogInput reads a normalized (0..1) value per channel. Implementations
// absorb their own read failures, returning the last known value.
type AnalogInput interface {
	Float(ch Channel) float64
}

// DigitalInput reads the debounced switch level.
type DigitalInput interface {
	Read() bool
}

// Indicator shows the gate state, e.g. on an LED.
type Indicator interface {
	Set(on bool)
}

// ----- Controller ----- //

// Controller is the control-rate loop. It copies the inputs into the shared
// gate, every voice and the filter once per tick.
type Controller struct {
	cfg     Config
	shared  *Shared
	bank    *Bank
	filter  Filter
	analog  AnalogInput
	digital DigitalInput
	led     Indicator
	ticks   int
}

// NewController wires the collaborators to the engine's state.
func NewController(cfg Config, shared *Shared, bank *Bank, filter Filter, analog AnalogInput, digital DigitalInput, led Indicator) *Controller {
	return &Controller{
		cfg:     cfg,
		shared:  shared,
		bank:    bank,
		filter:  filter,
		analog:  analog,
		digital: digital,
		led:     led,
	}
}

// Tick runs one control iteration.
func (c *Controller) Tick() {
	pitch := c.analog.Float(Pitch)
	freq := c.analog.Float(Freq)
	timbre := c.analog.Float(Timbre)
	gate := c.cfg.Polarity.gate(c.digital.Read())
	c.shared.SetGate(gate)

	c.led.Set(gate)

	c.bank.Read(pitch, freq)
	c.filter.SetTimbre(timbre)

	c.ticks++
	if c.cfg.DebugEvery > 0 && c.ticks%c.cfg.DebugEvery == 0 {
		debug(pitch, freq, timbre, gate)
	}
}

// Run ticks every ControlInterval until ctx is done.
func (c *Controller) Run(ctx context.Context) error {
	t := time.NewTicker(c.cfg.ControlInterval)
	defer t.Stop()
loop:
	for {
		c.Tick()
		select {
		case <-ctx.Done():
			log.Println("Controller interrupted")
			break loop
		case <-t.C:
		}
	}
	log.Println("Controller.Run() ended.")
	return nil
}

func debug(pitch float64, freq float64, timbre float64, gate bool) {
	g := 0
	if gate {
		g = 1
	}
	log.Printf("pitch [%.3f], freq [%.3f], timbre [%.3f], gate [%d]\n", pitch, freq, timbre, g)
}
