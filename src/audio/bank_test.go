package audio

import (
	"testing"
)

func TestTuningsReference(t *testing.T) {
	got := Tunings(15, 20, 1.5, 1500)
	expected := []float64{
		20, 30, 45, 67.5, 101.25, 151.875,
		227.8125, 341.71875, 512.578125, 768.8671875, 1153.30078125,
		864.9755859375, 1297.46337890625, 973.0975341796875, 1459.646301269531,
	}
	expectEqual(t, len(got), len(expected))
	// the first six never touch the ceiling and are exact
	for i := 0; i < 6; i++ {
		expectEqual(t, got[i], expected[i])
	}
	for i := 6; i < len(expected); i++ {
		expectNearlyEqual(t, got[i], expected[i])
	}
}

func TestTuningsDeterministic(t *testing.T) {
	a := Tunings(15, 20, 1.5, 1500)
	b := Tunings(15, 20, 1.5, 1500)
	for i := range a {
		expectEqual(t, a[i], b[i])
	}
}

func TestTuningsHalvesOnlyOnce(t *testing.T) {
	got := Tunings(3, 5000, 1.5, 1500)
	// 7500 is halved once to 3750 and stays above the ceiling
	expectEqual(t, got[0], 5000.0)
	expectEqual(t, got[1], 3750.0)
	expectEqual(t, got[2], 2812.5)
}

func TestTuningsCeilingIsExclusive(t *testing.T) {
	got := Tunings(2, 1000, 1.5, 1500)
	expectEqual(t, got[1], 1500.0)
}

func TestNewBank(t *testing.T) {
	cfg := testConfig(3)
	cfg.StartFrequency = 100
	bank := NewBank(cfg, constVoices(0))
	expectEqual(t, bank.Len(), 3)
	for i, want := range []float64{100, 150, 225} {
		v := bank.voices[i].(*constVoice)
		expectEqual(t, v.tuning, want)
		expectEqual(t, v.sampleRate, 48000.0)
	}

	tuning := bank.Tuning()
	tuning[0] = 0
	expectEqual(t, bank.Tuning()[0], 100.0)
}

func TestBankReadSharesControls(t *testing.T) {
	bank := NewBank(testConfig(4), constVoices(0))
	bank.Read(0.25, 0.75)
	for _, v := range bank.voices {
		cv := v.(*constVoice)
		expectEqual(t, cv.pitch, 0.25)
		expectEqual(t, cv.freq, 0.75)
		expectEqual(t, cv.reads, 1)
	}
}

func TestBankProcessSumsInOrder(t *testing.T) {
	bank := NewBank(testConfig(3), constVoices(1, 1e16, -1e16))
	// (1 + 1e16) - 1e16 loses the 1; any other order would not
	expectEqual(t, bank.process(), 0.0)
}
