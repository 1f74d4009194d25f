package audio

import (
	"math"
)

const (
	fltMinCutoff = 80.0 // Hz at timbre 0
	fltOctaves   = 8.0
	fltQ         = math.Sqrt2 / 2
)

// ----- Filter ----- //

// Flt is the default shared filter: a biquad lowpass whose cutoff follows the
// timbre knob. SetTimbre may race with Process; the coefficients are rebuilt
// on the audio goroutine the first time Process sees a new timbre.
type Flt struct {
	sampleRate float64
	timbre     sharedFloat
	applied    float64
	a          [3]float64 // feedforward
	b          [2]float64 // feedback
	past       [2]float64
}

var _ Filter = (*Flt)(nil)

// NewFlt returns an uninitialized filter; call Init before Process.
func NewFlt() *Flt {
	return &Flt{}
}

// Init sets the sample rate and clears the filter history.
func (f *Flt) Init(sampleRate float64) {
	f.sampleRate = sampleRate
	f.past = [2]float64{}
	f.timbre.store(1)
	f.applyTimbre(1)
}

// SetTimbre sets the timbre knob, clamped to 0..1 (NaN reads as 0).
func (f *Flt) SetTimbre(timbre float64) {
	f.timbre.store(clamp01(timbre))
}

// Cutoff returns the cutoff currently in use.
func (f *Flt) Cutoff() float64 {
	return timbreToCutoff(f.applied, f.sampleRate)
}

// Process filters one sample.
func (f *Flt) Process(in float64) float64 {
	if t := f.timbre.load(); t != f.applied {
		f.applyTimbre(t)
	}
	return processFilterEach(in, &f.a, &f.b, &f.past)
}

func (f *Flt) applyTimbre(timbre float64) {
	f.applied = timbre
	fc := timbreToCutoff(timbre, f.sampleRate) / f.sampleRate
	f.a, f.b = makeBiquadLowpassH(fc, fltQ)
}

// timbreToCutoff maps a 0..1 knob to 80 Hz..20 kHz, kept below Nyquist.
func timbreToCutoff(timbre float64, sampleRate float64) float64 {
	fc := fltMinCutoff * math.Pow(2, fltOctaves*clamp01(timbre))
	if limit := sampleRate * 0.45; fc > limit {
		fc = limit
	}
	return fc
}

func makeBiquadLowpassH(fc float64, q float64) ([3]float64, [2]float64) {
	// from RBJ's cookbook
	w0 := 2 * math.Pi * fc
	alpha := math.Sin(w0) / (2 * q)
	b0 := (1 - math.Cos(w0)) / 2
	b1 := (1 - math.Cos(w0))
	b2 := (1 - math.Cos(w0)) / 2
	a0 := 1 + alpha
	a1 := -2 * math.Cos(w0)
	a2 := 1 - alpha
	return [3]float64{b0 / a0, b1 / a0, b2 / a0}, [2]float64{a1 / a0, a2 / a0}
}

func processFilterEach(in float64, a *[3]float64, b *[2]float64, past *[2]float64) float64 {
	// apply b
	in -= past[0]*b[0] + past[1]*b[1]
	// apply a
	o := in*a[0] + past[0]*a[1] + past[1]*a[2]
	// unshift past
	past[1] = past[0]
	past[0] = in
	return o
}
