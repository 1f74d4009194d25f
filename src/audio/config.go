package audio

import (
	"errors"
	"fmt"
	"time"
)

const (
	sampleRate      = 48000
	channelNum      = 2
	bitDepthInBytes = 2
	blockSize       = 4 // frames per engine callback
	voxCount        = 15
	voxLowestFreq   = 20.0
	voxCeilingFreq  = 1500.0
	voxRatio        = 1.5
	controlInterval = 4 * time.Millisecond
)
const bytesPerSample = bitDepthInBytes * channelNum
const samplesPerCycle = 1024
const bufferSizeInBytes = samplesPerCycle * bytesPerSample // should be >= 4096

// ----- Gate Polarity ----- //

// GatePolarity tells the control loop how to turn the raw switch level into the gate.
type GatePolarity int

const (
	// GateActiveHigh uses the raw switch level as the gate.
	GateActiveHigh GatePolarity = iota
	// GateActiveLow opens the gate while the raw level is low (pull-up wiring).
	GateActiveLow
)

func (p GatePolarity) String() string {
	switch p {
	case GateActiveHigh:
		return "active-high"
	case GateActiveLow:
		return "active-low"
	}
	return fmt.Sprintf("GatePolarity(%d)", int(p))
}

func (p GatePolarity) gate(raw bool) bool {
	if p == GateActiveLow {
		return !raw
	}
	return raw
}

// ----- Config ----- //

var (
	ErrNoVoices        = errors.New("voice count must be positive")
	ErrSampleRate      = errors.New("sample rate must be positive")
	ErrBlockSize       = errors.New("block size must be positive")
	ErrStartFrequency  = errors.New("start frequency must be positive")
	ErrCeiling         = errors.New("ceiling frequency must be positive")
	ErrRatio           = errors.New("tuning ratio must be greater than 1")
	ErrControlInterval = errors.New("control interval must be positive")
	ErrPolarity        = errors.New("unknown gate polarity")
	ErrBankSize        = errors.New("bank size does not match config")
)

// Config holds everything fixed at startup. Nothing in it changes once the
// audio schedule has begun.
type Config struct {
	SampleRate      int
	BlockSize       int // frames per Engine.Process call
	Voices          int
	StartFrequency  float64 // Hz, tuning of voice 0
	CeilingFreq     float64 // Hz, a tuning above this is halved once
	Ratio           float64 // interval between neighbouring voices
	ControlInterval time.Duration
	Polarity        GatePolarity
	DebugEvery      int // control ticks between debug lines, 0 disables
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		SampleRate:      sampleRate,
		BlockSize:       blockSize,
		Voices:          voxCount,
		StartFrequency:  voxLowestFreq,
		CeilingFreq:     voxCeilingFreq,
		Ratio:           voxRatio,
		ControlInterval: controlInterval,
		Polarity:        GateActiveHigh,
	}
}

// Validate reports the first configuration fault. An invalid Config must
// never reach NewEngine.
func (c Config) Validate() error {
	switch {
	case c.Voices <= 0:
		return fmt.Errorf("invalid config: voices=%d: %w", c.Voices, ErrNoVoices)
	case c.SampleRate <= 0:
		return fmt.Errorf("invalid config: sample rate=%d: %w", c.SampleRate, ErrSampleRate)
	case c.BlockSize <= 0:
		return fmt.Errorf("invalid config: block size=%d: %w", c.BlockSize, ErrBlockSize)
	case !(c.StartFrequency > 0):
		return fmt.Errorf("invalid config: start=%v: %w", c.StartFrequency, ErrStartFrequency)
	case !(c.CeilingFreq > 0):
		return fmt.Errorf("invalid config: ceiling=%v: %w", c.CeilingFreq, ErrCeiling)
	case !(c.Ratio > 1):
		return fmt.Errorf("invalid config: ratio=%v: %w", c.Ratio, ErrRatio)
	case c.ControlInterval <= 0:
		return fmt.Errorf("invalid config: interval=%v: %w", c.ControlInterval, ErrControlInterval)
	case c.Polarity != GateActiveHigh && c.Polarity != GateActiveLow:
		return fmt.Errorf("invalid config: %v: %w", c.Polarity, ErrPolarity)
	}
	return nil
}

// gain is the fixed normalization applied after the filter.
func (c Config) gain() float64 {
	return 3.0 / float64(c.Voices)
}

// ControlFrames is the number of frames that pass during one control interval.
func (c Config) ControlFrames() int {
	n := int(c.ControlInterval.Seconds() * float64(c.SampleRate))
	if n < 1 {
		n = 1
	}
	return n
}
