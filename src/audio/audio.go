package audio

import (
	"context"
	"io"
	"log"
	"math"

	"github.com/hajimehoshi/oto"
)

// ----- Audio ----- //

// Audio is the transport between an Engine and the sound card. The oto
// player pulls PCM through Read, which calls Engine.Process one fixed block
// at a time, so the engine always sees the configured block size no matter
// how large the player's buffer is.
type Audio struct {
	ctx        context.Context
	otoContext *oto.Context
	engine     *Engine
	block      [][]float64 // [channel][frame], length: BlockSize
	pos        int
	peak       sharedFloat
}

var _ io.Reader = (*Audio)(nil)

// NewAudio opens the output device at the engine's sample rate.
func NewAudio(engine *Engine) (*Audio, error) {
	otoContext, err := oto.NewContext(engine.Config().SampleRate, channelNum, bitDepthInBytes, bufferSizeInBytes)
	if err != nil {
		return nil, err
	}
	a := newAudio(engine)
	a.otoContext = otoContext
	return a, nil
}

func newAudio(engine *Engine) *Audio {
	size := engine.Config().BlockSize
	block := make([][]float64, channelNum)
	for ch := range block {
		block[ch] = make([]float64, size)
	}
	return &Audio{
		ctx:    context.Background(),
		engine: engine,
		block:  block,
		pos:    size,
	}
}

func (a *Audio) Read(buf []byte) (int, error) {
	select {
	case <-a.ctx.Done():
		log.Println("Read() interrupted.")
		return 0, io.EOF
	default:
	}
	size := len(a.block[0])
	frames := len(buf) / bytesPerSample
	peak := 0.0
	for i := 0; i < frames; i++ {
		if a.pos >= size {
			a.engine.Process(a.block, size)
			a.pos = 0
		}
		for ch := 0; ch < channelNum; ch++ {
			value := a.block[ch][a.pos]
			writeSample(value, buf[bytesPerSample*i:], ch)
			if abs := math.Abs(value); abs > peak {
				peak = abs
			}
		}
		a.pos++
	}
	a.peak.store(peak)
	return frames * bytesPerSample, nil
}

func writeSample(value float64, frame []byte, ch int) {
	if value > 1 {
		value = 1
	} else if value < -1 {
		value = -1
	}
	switch bitDepthInBytes {
	case 1:
		const max = 127
		b := int(value * max)
		frame[ch] = byte(b + 128)
	case 2:
		const max = 32767
		b := int16(value * max)
		frame[2*ch] = byte(b)
		frame[2*ch+1] = byte(b >> 8)
	}
}

// Peak returns the largest absolute sample of the most recent Read.
func (a *Audio) Peak() float64 {
	return a.peak.load()
}

// Close releases the output device. It is a no-op for an Audio without one.
func (a *Audio) Close() error {
	log.Println("Closing Audio...")
	if a.otoContext == nil {
		return nil
	}
	return a.otoContext.Close()
}

// Start streams until ctx is done.
func (a *Audio) Start(ctx context.Context) error {
	p := a.otoContext.NewPlayer()
	defer func() {
		if err := p.Close(); err != nil {
			log.Printf("error: %v", err)
		}
	}()
	a.ctx = ctx

	// block until cancel() called
	if _, err := io.CopyBuffer(p, a, make([]byte, bufferSizeInBytes)); err != nil {
		return err
	}
	log.Println("Start() ended.")
	return nil
}
