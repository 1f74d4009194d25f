package audio

import (
	"math"
)

// ----- OSC ----- //

// osc is a sine phase accumulator. The phase stays in [0, 2π) so long
// drones do not lose precision.
type osc struct {
	sampleRate float64
	phase      float64
}

func newOsc(sampleRate float64) *osc {
	return &osc{sampleRate: sampleRate}
}

func (o *osc) step(freq float64) float64 {
	value := math.Sin(o.phase)
	o.phase += 2.0 * math.Pi * freq / o.sampleRate
	if o.phase >= 2.0*math.Pi {
		o.phase = positiveMod(o.phase, 2.0*math.Pi)
	}
	return value
}

func positiveMod(a float64, b float64) float64 {
	if b < 0 {
		panic("b should not be negative")
	}
	for a < 0 {
		a += b
	}
	return math.Mod(a, b)
}
