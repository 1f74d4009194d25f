package audio

import (
	"math"
	"testing"
)

func TestFltSetTimbreIsIdempotent(t *testing.T) {
	once := NewFlt()
	many := NewFlt()
	once.Init(48000)
	many.Init(48000)
	once.SetTimbre(0.3)
	for i := 0; i < 5; i++ {
		many.SetTimbre(0.3)
	}
	for i := 0; i < 1000; i++ {
		in := math.Sin(float64(i) * 0.1)
		if i%7 == 0 {
			many.SetTimbre(0.3)
		}
		expectEqual(t, many.Process(in), once.Process(in))
	}
}

func TestFltCutoff(t *testing.T) {
	f := NewFlt()
	f.Init(48000)
	expectNearlyEqual(t, f.Cutoff(), 20480)
	f.SetTimbre(0)
	f.Process(0)
	expectNearlyEqual(t, f.Cutoff(), 80)
	f.SetTimbre(0.5)
	f.Process(0)
	expectNearlyEqual(t, f.Cutoff(), 1280)

	low := NewFlt()
	low.Init(16000)
	expectNearlyEqual(t, low.Cutoff(), 7200)
}

func TestFltPassesDC(t *testing.T) {
	f := NewFlt()
	f.Init(48000)
	f.SetTimbre(0.2)
	out := 0.0
	for i := 0; i < 48000; i++ {
		out = f.Process(1)
	}
	expectNearlyEqual(t, out, 1)
}

func TestFltAttenuatesAboveCutoff(t *testing.T) {
	f := NewFlt()
	f.Init(48000)
	f.SetTimbre(0) // 80 Hz
	peak := 0.0
	for i := 0; i < 48000; i++ {
		out := f.Process(math.Sin(2 * math.Pi * 5000 * float64(i) / 48000))
		if i > 4800 && math.Abs(out) > peak {
			peak = math.Abs(out)
		}
	}
	if peak > 0.01 {
		t.Errorf("5 kHz through an 80 Hz lowpass peaked at %v", peak)
	}
}

func TestFltSetTimbreClampsNaN(t *testing.T) {
	f := NewFlt()
	f.Init(48000)
	f.SetTimbre(math.NaN())
	f.Process(0)
	expectNearlyEqual(t, f.Cutoff(), 80)
	expectEqual(t, f.applied, 0.0)
	f.SetTimbre(2)
	f.Process(0)
	expectEqual(t, f.applied, 1.0)
}
