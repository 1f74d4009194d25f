package audio

import (
	"math"
)

const (
	voxGlideTime     = 30.0 // ms
	voxGlideEnd      = 0.00001
	voxShimmerMinHz  = 0.05
	voxShimmerOctave = 8.0
	voxDefaultPitch  = 0.5
)

// ----- Vox ----- //

// Vox is the default voice: a sine carrier at the voice's tuning, shifted by
// the pitch knob over ±1 octave, with an amplitude shimmer whose rate follows
// the freq knob. Its output stays in [-1, 1].
//
// Read may be called from the control goroutine while Process runs on the
// audio goroutine. Knob targets cross over through atomics; everything else
// belongs to the audio goroutine.
type Vox struct {
	tuning float64

	pitch sharedFloat
	freq  sharedFloat

	lastPitch float64
	lastFreq  float64
	ratio     *transitiveValue
	rate      *transitiveValue
	carrier   *osc
	shimmer   *osc
}

var _ Voice = (*Vox)(nil)

// NewVox returns an uninitialized voice; call Init before Process.
func NewVox() Voice {
	return &Vox{}
}

// Init sets the tuning and resets all oscillator state.
func (v *Vox) Init(sampleRate float64, tuning float64) {
	v.tuning = tuning
	v.carrier = newOsc(sampleRate)
	v.shimmer = newOsc(sampleRate)
	v.ratio = newTransitiveValue(sampleRate)
	v.rate = newTransitiveValue(sampleRate)
	v.lastPitch = voxDefaultPitch
	v.lastFreq = 0
	v.pitch.store(v.lastPitch)
	v.freq.store(v.lastFreq)
	v.ratio.init(pitchToRatio(v.lastPitch))
	v.rate.init(freqToShimmerRate(v.lastFreq))
}

// Tuning returns the frequency assigned by the bank builder.
func (v *Vox) Tuning() float64 {
	return v.tuning
}

// Read sets new knob targets, clamped to 0..1 (NaN reads as 0). The carrier
// phase is untouched; Process glides toward the new values.
func (v *Vox) Read(pitch float64, freq float64) {
	v.pitch.store(clamp01(pitch))
	v.freq.store(clamp01(freq))
}

// Process returns the next sample and advances the voice.
func (v *Vox) Process() float64 {
	if p := v.pitch.load(); p != v.lastPitch {
		v.lastPitch = p
		v.ratio.exponential(voxGlideTime, pitchToRatio(p), voxGlideEnd)
	}
	if f := v.freq.load(); f != v.lastFreq {
		v.lastFreq = f
		v.rate.exponential(voxGlideTime, freqToShimmerRate(f), voxGlideEnd)
	}
	v.ratio.step()
	v.rate.step()
	// higher voices shimmer faster
	shimmerHz := v.rate.value * (1 + v.tuning/1000)
	amp := 0.5 + 0.5*v.shimmer.step(shimmerHz)
	return v.carrier.step(v.tuning*v.ratio.value) * amp
}

// pitchToRatio maps a 0..1 knob to a frequency ratio of 0.5..2.
func pitchToRatio(pitch float64) float64 {
	return math.Pow(2, 2*clamp01(pitch)-1)
}

// freqToShimmerRate maps a 0..1 knob to 0.05..12.8 Hz.
func freqToShimmerRate(freq float64) float64 {
	return voxShimmerMinHz * math.Pow(2, voxShimmerOctave*clamp01(freq))
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
