package audio

import (
	"fmt"
	"sync/atomic"
)

// ----- Shared ----- //

// Shared is the process-wide state written by the control loop and read by
// the audio engine. It is passed by pointer to both; all access is atomic so
// neither side ever waits for the other.
type Shared struct {
	gate atomic.Bool
}

// NewShared returns shared state with the gate open.
func NewShared() *Shared {
	s := &Shared{}
	s.gate.Store(true)
	return s
}

// Gate reports whether audio output is active.
func (s *Shared) Gate() bool {
	return s.gate.Load()
}

// SetGate opens or closes the output.
func (s *Shared) SetGate(on bool) {
	s.gate.Store(on)
}

// ----- Engine ----- //

// Engine is the audio-rate callback. Process never allocates, locks or
// returns an error; everything that can fail is checked in NewEngine.
type Engine struct {
	cfg    Config
	shared *Shared
	bank   *Bank
	filter Filter
	gain   float64
}

// NewEngine validates cfg and wires the bank and filter to the shared state.
// The filter is initialized here.
func NewEngine(cfg Config, shared *Shared, bank *Bank, filter Filter) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if bank.Len() != cfg.Voices {
		return nil, fmt.Errorf("bank has %d voices, config wants %d: %w", bank.Len(), cfg.Voices, ErrBankSize)
	}
	filter.Init(float64(cfg.SampleRate))
	return &Engine{
		cfg:    cfg,
		shared: shared,
		bank:   bank,
		filter: filter,
		gain:   cfg.gain(),
	}, nil
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Process renders size frames into out[0] and out[1]. Both channels receive
// the same samples. While the gate is closed the frames are silent and the
// voices and filter are left untouched.
func (e *Engine) Process(out [][]float64, size int) {
	left, right := out[0][:size], out[1][:size]
	for i := range left {
		output := 0.0
		if e.shared.Gate() {
			output = e.filter.Process(e.bank.process()) * e.gain
		}
		left[i] = output
		right[i] = output
	}
}
