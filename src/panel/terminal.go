package panel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jinjor/desktop-drone/src/audio"
	"golang.org/x/term"
)

const knobStep = 0.05

var (
	// ErrQuit is returned by RunTerminal when the user asks to quit.
	ErrQuit = errors.New("quit requested")
	// ErrNotTerminal is returned by RunTerminal when stdin is not a terminal.
	ErrNotTerminal = errors.New("input is not a terminal")
)

// Key applies one key press. It returns false when the key asks to quit.
//
//	q/a  pitch up/down
//	w/s  freq up/down
//	e/d  timbre up/down
//	space toggles the switch
//	x or Ctrl-C quits
func (p *Panel) Key(k byte) bool {
	switch k {
	case 'q':
		p.Nudge(audio.Pitch, knobStep)
	case 'a':
		p.Nudge(audio.Pitch, -knobStep)
	case 'w':
		p.Nudge(audio.Freq, knobStep)
	case 's':
		p.Nudge(audio.Freq, -knobStep)
	case 'e':
		p.Nudge(audio.Timbre, knobStep)
	case 'd':
		p.Nudge(audio.Timbre, -knobStep)
	case ' ':
		p.Toggle()
	case 'x', 3:
		return false
	}
	return true
}

// RunTerminal puts in into raw mode and drives p from the keyboard until ctx
// is done or the user quits. The status line is redrawn on out after every
// key.
func RunTerminal(ctx context.Context, in *os.File, out io.Writer, p *Panel) error {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return ErrNotTerminal
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	defer func() {
		if err := term.Restore(fd, state); err != nil {
			log.Printf("failed to restore terminal: %v\n", err)
		}
		fmt.Fprint(out, "\r\n")
	}()

	keys := make(chan byte)
	go func() {
		defer close(keys)
		buf := make([]byte, 1)
		for {
			n, err := in.Read(buf)
			if err != nil {
				return
			}
			if n == 0 {
				continue
			}
			select {
			case keys <- buf[0]:
			case <-ctx.Done():
				return
			}
		}
	}()

	fmt.Fprintf(out, "\r%s", p)
	for {
		select {
		case <-ctx.Done():
			log.Println("RunTerminal() interrupted")
			return nil
		case k, ok := <-keys:
			if !ok {
				return nil
			}
			if !p.Key(k) {
				return ErrQuit
			}
			fmt.Fprintf(out, "\r%s", p)
		}
	}
}
