package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jinjor/desktop-drone/src/audio"
	"github.com/jinjor/desktop-drone/src/panel"
	"golang.org/x/sync/errgroup"
)

type preset struct {
	name   string
	pitch  float64
	freq   float64
	timbre float64
}

var presets = []preset{
	{name: "dark", pitch: 0.5, freq: 0.1, timbre: 0.3},
	{name: "open", pitch: 0.5, freq: 0.25, timbre: 0.7},
	{name: "bright", pitch: 0.6, freq: 0.6, timbre: 1.0},
}

func main() {
	seconds := flag.Float64("seconds", 5, "length of each render")
	flag.Parse()
	dir := flag.Arg(0)
	if dir == "" {
		panic("dir is not passed")
	}
	log.SetFlags(log.Lshortfile)

	cfg := audio.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("error: %v\n", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("error: %v\n", err)
	}

	g, _ := errgroup.WithContext(context.Background())
	for _, p := range presets {
		p := p
		g.Go(func() error {
			path := filepath.Join(dir, p.name+".wav")
			if err := render(cfg, p, *seconds, path); err != nil {
				return fmt.Errorf("%s: %w", p.name, err)
			}
			log.Printf("rendered %s\n", path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("error: %v\n", err)
	}
	log.Println("Successfully rendered presets.")
}

// render runs the engine and controller in lockstep, one control tick every
// control interval, with the switch off for the middle fifth of the render.
func render(cfg audio.Config, p preset, seconds float64, path string) error {
	pnl := panel.New()
	pnl.SetKnob(audio.Pitch, p.pitch)
	pnl.SetKnob(audio.Freq, p.freq)
	pnl.SetKnob(audio.Timbre, p.timbre)

	shared := audio.NewShared()
	bank := audio.NewBank(cfg, audio.NewVox)
	flt := audio.NewFlt()
	engine, err := audio.NewEngine(cfg, shared, bank, flt)
	if err != nil {
		return err
	}
	controller := audio.NewController(cfg, shared, bank, flt, pnl, pnl, pnl)

	total := int(seconds * float64(cfg.SampleRate))
	mute0, mute1 := total*2/5, total*3/5
	block := [][]float64{make([]float64, cfg.BlockSize), make([]float64, cfg.BlockSize)}
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: 2,
			SampleRate:  cfg.SampleRate,
		},
		Data:           make([]int, 0, total*2),
		SourceBitDepth: 16,
	}
	controlFrames := cfg.ControlFrames()
	sinceTick := controlFrames
	for frame := 0; frame < total; frame += cfg.BlockSize {
		if sinceTick >= controlFrames {
			pnl.SetSwitch(frame < mute0 || frame >= mute1)
			controller.Tick()
			sinceTick = 0
		}
		engine.Process(block, cfg.BlockSize)
		for i := 0; i < cfg.BlockSize && frame+i < total; i++ {
			buf.Data = append(buf.Data, toPCM16(block[0][i]), toPCM16(block[1][i]))
		}
		sinceTick += cfg.BlockSize
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := wav.NewEncoder(f, cfg.SampleRate, 16, 2, 1)
	if err := enc.Write(buf); err != nil {
		return err
	}
	return enc.Close()
}

func toPCM16(value float64) int {
	if value > 1 {
		value = 1
	} else if value < -1 {
		value = -1
	}
	return int(value * 32767)
}
