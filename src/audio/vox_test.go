package audio

import (
	"math"
	"testing"
)

func TestVoxIsBounded(t *testing.T) {
	v := NewVox()
	v.Init(48000, 1459.6)
	for i := 0; i < 48000*2; i++ {
		if i%4800 == 0 {
			x := float64(i%9600) / 9600
			v.Read(x, 1-x)
		}
		s := v.Process()
		if math.Abs(s) > 1 {
			t.Fatalf("sample %d = %v out of [-1, 1]", i, s)
		}
	}
}

func TestVoxStartsAtTuning(t *testing.T) {
	v := NewVox().(*Vox)
	v.Init(48000, 220)
	expectEqual(t, v.Tuning(), 220.0)
	expectEqual(t, v.ratio.value, 1.0)
	expectEqual(t, v.Process(), 0.0)
}

func TestVoxReadKeepsPhase(t *testing.T) {
	a := NewVox().(*Vox)
	b := NewVox().(*Vox)
	a.Init(48000, 100)
	b.Init(48000, 100)
	for i := 0; i < 100; i++ {
		a.Process()
		b.Process()
	}
	b.Read(1, 0)
	// the glide starts from the current ratio, so the next sample is unchanged
	expectEqual(t, b.Process(), a.Process())
	expectEqual(t, b.carrier.phase, a.carrier.phase)
}

func TestVoxGlidesToTarget(t *testing.T) {
	v := NewVox().(*Vox)
	v.Init(48000, 100)
	v.Read(1, 1)
	v.Process()
	if v.ratio.value >= 1.5 {
		t.Errorf("ratio jumped to %v", v.ratio.value)
	}
	for i := 0; i < 48000; i++ {
		v.Process()
	}
	expectNearlyEqual(t, v.ratio.value, 2)
	expectNearlyEqual(t, v.rate.value, 12.8)
}

func TestVoxReadClampsNaN(t *testing.T) {
	v := NewVox().(*Vox)
	v.Init(48000, 100)
	v.Read(1, 0)
	for i := 0; i < 100; i++ {
		v.Process()
	}
	v.Read(math.NaN(), math.NaN())
	for i := 0; i < 48000; i++ {
		v.Process()
	}
	expectNearlyEqual(t, v.ratio.value, 0.5)
	expectNearlyEqual(t, v.rate.value, 0.05)
}

func TestVoxKnobMapping(t *testing.T) {
	expectNearlyEqual(t, pitchToRatio(0), 0.5)
	expectNearlyEqual(t, pitchToRatio(0.5), 1)
	expectNearlyEqual(t, pitchToRatio(1), 2)
	expectNearlyEqual(t, pitchToRatio(7), 2)
	expectNearlyEqual(t, freqToShimmerRate(0), 0.05)
	expectNearlyEqual(t, freqToShimmerRate(1), 12.8)
	expectNearlyEqual(t, freqToShimmerRate(math.NaN()), 0.05)
}

func TestOscWrapsPhase(t *testing.T) {
	o := newOsc(48000)
	for i := 0; i < 48000*10; i++ {
		o.step(1000)
		if o.phase < 0 || o.phase >= 2*math.Pi {
			t.Fatalf("phase %v out of range at %d", o.phase, i)
		}
	}
}
