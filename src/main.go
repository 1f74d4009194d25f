package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/url"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/jinjor/desktop-drone/src/audio"
	"github.com/jinjor/desktop-drone/src/panel"
	"golang.org/x/sync/errgroup"
)

const sockFileName = "/tmp/desktop-drone.sock"

func main() {
	cfg := audio.DefaultConfig()
	input := flag.String("input", "terminal", "control surface: terminal or ipc")
	activeLow := flag.Bool("active-low", false, "open the gate while the switch reads low")
	debugEvery := flag.Int("debug", 0, "print the controls every N control ticks (0 disables)")
	flag.IntVar(&cfg.Voices, "voices", cfg.Voices, "number of voices")
	flag.Float64Var(&cfg.StartFrequency, "start", cfg.StartFrequency, "tuning of the lowest voice in Hz")
	flag.Float64Var(&cfg.CeilingFreq, "ceiling", cfg.CeilingFreq, "tunings above this are dropped an octave")
	flag.IntVar(&cfg.SampleRate, "rate", cfg.SampleRate, "sample rate in Hz")
	flag.IntVar(&cfg.BlockSize, "block", cfg.BlockSize, "frames per audio block")
	flag.DurationVar(&cfg.ControlInterval, "interval", cfg.ControlInterval, "delay between control ticks")
	flag.Parse()
	log.SetFlags(log.Lshortfile)
	log.Printf("NumCPU: %v\n", runtime.NumCPU())

	if *activeLow {
		cfg.Polarity = audio.GateActiveLow
	}
	cfg.DebugEvery = *debugEvery
	if err := cfg.Validate(); err != nil {
		log.Fatalf("error: %v\n", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shared := audio.NewShared()
	bank := audio.NewBank(cfg, audio.NewVox)
	flt := audio.NewFlt()
	engine, err := audio.NewEngine(cfg, shared, bank, flt)
	if err != nil {
		log.Fatalf("error: %v\n", err)
	}
	log.Printf("tuning: %v\n", bank.Tuning())

	a, err := audio.NewAudio(engine)
	if err != nil {
		log.Fatalf("error: %v\n", err)
	}
	defer a.Close()

	p := panel.New()
	controller := audio.NewController(cfg, shared, bank, flt, p, p, p)

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	defer func() {
		signal.Stop(signalCh)
		cancel()
	}()
	go func() {
		sig := <-signalCh
		log.Printf("Caught signal %s: shutting down...\n", sig)
		cancel()
	}()

	run := func(ctx context.Context, surface func(ctx context.Context) error) error {
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return a.Start(ctx)
		})
		g.Go(func() error {
			return controller.Run(ctx)
		})
		g.Go(func() error {
			return surface(ctx)
		})
		return g.Wait()
	}
	switch *input {
	case "terminal":
		err = run(ctx, func(ctx context.Context) error {
			return panel.RunTerminal(ctx, os.Stdin, os.Stdout, p)
		})
	case "ipc":
		err = withIPCConnection(ctx, sockFileName, func(conn net.Conn) error {
			return run(ctx, func(ctx context.Context) error {
				g, ctx := errgroup.WithContext(ctx)
				g.Go(func() error {
					return receiveCommands(ctx, conn, p)
				})
				g.Go(func() error {
					return sendReports(ctx, conn, a, p)
				})
				return g.Wait()
			})
		})
	default:
		err = fmt.Errorf("unknown input %q", *input)
	}
	if errors.Is(err, panel.ErrQuit) {
		err = nil
	}
	if err != nil {
		log.Fatalf("error: %v\n", err)
	}
	log.Println("main() ended.")
}

func withIPCConnection(ctx context.Context, path string, f func(net.Conn) error) error {
	os.Remove(path)
	listener, err := new(net.ListenConfig).Listen(ctx, "unix", path)
	if err != nil {
		return err
	}
	defer func() {
		log.Println("Closing IPC...")
		err := listener.Close()
		if err != nil && ctx.Err() == nil {
			log.Printf("error while closing listener: %v", err)
		}
		os.Remove(path)
	}()
	stop := context.AfterFunc(ctx, func() {
		// unblocks Accept
		listener.Close()
	})
	defer stop()
	log.Printf("start listening...\n")
	conn, err := listener.Accept()
	if err != nil {
		if ctx.Err() != nil {
			log.Println("Listening interrupted")
			return nil
		}
		return err
	}
	defer func() {
		err := conn.Close()
		if err != nil {
			log.Printf("error while closing connection: %v", err)
		}
	}()
	return f(conn)
}

func receiveCommands(ctx context.Context, conn net.Conn, p *panel.Panel) error {
	stop := context.AfterFunc(ctx, func() {
		// unblocks ReadLine
		conn.SetReadDeadline(time.Now())
	})
	defer stop()
	reader := bufio.NewReader(conn)
	var line []byte
loop:
	for {
		select {
		case <-ctx.Done():
			log.Println("Connection interrupted")
			break loop
		default:
		}
		next, isPrefix, err := reader.ReadLine()
		if err == io.EOF || ctx.Err() != nil {
			break loop
		}
		if err != nil {
			return err
		}
		line = append(line, next...)
		if isPrefix {
			continue
		}
		command, err := parseCommand(string(line))
		if err == nil {
			err = p.Apply(command)
		}
		if err != nil {
			log.Printf("[WARN] %v\n", err)
		} else {
			log.Printf("received: %s\n", string(line))
		}
		line = []byte{}
	}
	log.Println("receiveCommands() ended.")
	return nil
}

func parseCommand(line string) ([]string, error) {
	lineStr := strings.Split(line, " ")
	for i, item := range lineStr {
		escaped, err := url.QueryUnescape(item)
		if err != nil {
			return nil, err
		}
		lineStr[i] = escaped
	}
	return lineStr, nil
}

// peakMeter is the part of audio.Audio the reports need.
type peakMeter interface {
	Peak() float64
}

func sendReports(ctx context.Context, conn net.Conn, meter peakMeter, p *panel.Panel) error {
	stop := context.AfterFunc(ctx, func() {
		// unblocks Write
		conn.SetWriteDeadline(time.Now())
	})
	defer stop()
	t := time.NewTicker(time.Second / 60)
	defer t.Stop()
loop:
	for {
		select {
		case <-ctx.Done():
			log.Println("sendReports() interrupted")
			break loop
		case <-t.C:
			led := 0
			if p.LED() {
				led = 1
			}
			s := "led " + strconv.Itoa(led) + "\n"
			s += "peak " + strconv.FormatFloat(meter.Peak(), 'f', 6, 64) + "\n"
			if _, err := conn.Write([]byte(s)); err != nil {
				if ctx.Err() != nil {
					break loop
				}
				return err
			}
		}
	}
	log.Println("sendReports() ended.")
	return nil
}
