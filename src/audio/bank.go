package audio

// ----- Voice ----- //

// Voice is one oscillator unit of the bank.
//
// Process is only ever called from the audio goroutine. Read may be called
// concurrently from the control goroutine and must not block.
type Voice interface {
	Init(sampleRate float64, tuning float64)
	Process() float64
	Read(pitch float64, freq float64)
}

// Filter is the shared stage applied to the voice sum. The same concurrency
// rules as Voice apply: SetTimbre races with Process and must not block.
type Filter interface {
	Init(sampleRate float64)
	Process(in float64) float64
	SetTimbre(timbre float64)
}

// ----- Bank ----- //

// Bank is the fixed, ordered set of voices. Its length never changes after
// NewBank returns.
type Bank struct {
	voices []Voice
	tuning []float64
}

// Tunings returns the harmonic stack for n voices: each voice sits a ratio
// above its predecessor, and a tuning above ceiling is halved once. Only one
// halving is applied, so a start far above ceiling stays above it.
func Tunings(n int, start float64, ratio float64, ceiling float64) []float64 {
	freqs := make([]float64, n)
	freq := start
	for i := range freqs {
		freqs[i] = freq
		freq *= ratio
		if freq > ceiling {
			freq *= 0.5
		}
	}
	return freqs
}

// NewBank builds cfg.Voices voices with newVoice and tunes them. cfg must
// already be valid.
func NewBank(cfg Config, newVoice func() Voice) *Bank {
	tuning := Tunings(cfg.Voices, cfg.StartFrequency, cfg.Ratio, cfg.CeilingFreq)
	voices := make([]Voice, cfg.Voices)
	for i := range voices {
		v := newVoice()
		v.Init(float64(cfg.SampleRate), tuning[i])
		voices[i] = v
	}
	return &Bank{
		voices: voices,
		tuning: tuning,
	}
}

// Len returns the number of voices.
func (b *Bank) Len() int {
	return len(b.voices)
}

// Tuning returns a copy of the voice frequencies in bank order.
func (b *Bank) Tuning() []float64 {
	return append([]float64(nil), b.tuning...)
}

// Read pushes the same pitch/freq pair into every voice.
func (b *Bank) Read(pitch float64, freq float64) {
	for _, v := range b.voices {
		v.Read(pitch, freq)
	}
}

// process sums one sample from every voice in bank order.
func (b *Bank) process() float64 {
	sum := 0.0
	for _, v := range b.voices {
		sum += v.Process()
	}
	return sum
}
