package audio

import (
	"math"
	"sync/atomic"
)

// ----- Shared Float ----- //

// sharedFloat is a float64 that one goroutine writes and another reads
// without locking. Readers see either the old or the new value.
type sharedFloat struct {
	bits atomic.Uint64
}

func (f *sharedFloat) load() float64 {
	return math.Float64frombits(f.bits.Load())
}
func (f *sharedFloat) store(v float64) {
	f.bits.Store(math.Float64bits(v))
}

// ----- Transition Kind ----- //

const (
	transitionNone = iota
	transitionExponential
)

// ----- Transitive Value ----- //

type transitiveValue struct {
	kind         int
	msPerSample  float64
	duration     float64 // ms
	endThreshold float64
	initialValue float64
	targetValue  float64
	value        float64
	pos          int
}

func newTransitiveValue(sampleRate float64) *transitiveValue {
	return &transitiveValue{
		kind:        transitionNone,
		msPerSample: 1000 / sampleRate,
	}
}
func (tv *transitiveValue) init(value float64) {
	tv.kind = transitionNone
	tv.duration = 0
	tv.endThreshold = 0
	tv.initialValue = 0
	tv.targetValue = value
	tv.value = value
	tv.pos = 0
}

func (tv *transitiveValue) exponential(duration float64, targetValue float64, endThreshold float64) {
	tv.kind = transitionExponential
	tv.duration = duration
	tv.endThreshold = endThreshold
	tv.pos = 0
	tv.initialValue = tv.value
	tv.targetValue = targetValue
}
func (tv *transitiveValue) step() bool {
	ended := false
	switch tv.kind {
	case transitionExponential:
		phaseTime := float64(tv.pos) * tv.msPerSample
		t := phaseTime / tv.duration
		tv.value = setTargetAtTime(tv.initialValue, tv.targetValue, t)
		if math.Abs(tv.value-tv.targetValue) < tv.endThreshold {
			tv.end()
			ended = true
		} else {
			tv.pos++
		}
	case transitionNone:

	}
	return ended
}
func (tv *transitiveValue) end() {
	tv.kind = transitionNone
	tv.value = tv.targetValue
	tv.pos = 0
}

// 63% closer to target when pos=1.0
func setTargetAtTime(initialValue float64, targetValue float64, pos float64) float64 {
	return targetValue + (initialValue-targetValue)*math.Exp(-pos)
}
