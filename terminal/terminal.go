// This file is part of Gopherfc.
//
// Gopherfc is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopherfc is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopherfc.  If not, see <https://www.gnu.org/licenses/>.

//go:build linux || darwin

package terminal

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/gopherfc/gopherfc/gui"
	"github.com/gopherfc/gopherfc/logger"
)

// how long a key is held down after the last time it was seen
const holdTime = 150 * time.Millisecond

// the input file is polled with this timeout so that the reading goroutine
// notices CleanUp()
const pollTimeout = 100

// Target is the emulation controlled by the terminal.
type Target interface {
	gui.Buttons
	Pause(pause bool)
	Paused() bool
}

// Input reads keys from the terminal.
type Input struct {
	in *os.File

	canAttr    unix.Termios
	cbreakAttr unix.Termios

	// keys that are currently pressed and the timer that will release them
	crit sync.Mutex
	held map[string]*time.Timer

	quit chan bool
	done chan bool
}

// NewInput puts the terminal into cbreak mode. The terminal must be restored
// with CleanUp().
func NewInput(in *os.File) (*Input, error) {
	if !term.IsTerminal(int(in.Fd())) {
		return nil, fmt.Errorf("terminal: %s is not a terminal", in.Name())
	}

	inp := &Input{
		in:   in,
		held: make(map[string]*time.Timer),
		quit: make(chan bool),
		done: make(chan bool),
	}

	err := termios.Tcgetattr(inp.in.Fd(), &inp.canAttr)
	if err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}

	inp.cbreakAttr = inp.canAttr
	termios.Cfmakecbreak(&inp.cbreakAttr)

	err = termios.Tcsetattr(inp.in.Fd(), termios.TCSANOW, &inp.cbreakAttr)
	if err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}

	return inp, nil
}

// Start reading keys in a new goroutine. The returned channel is closed when
// the quit key is pressed.
func (inp *Input) Start(target Target) <-chan bool {
	quit := make(chan bool)

	go func() {
		defer close(inp.done)

		fds := []unix.PollFd{{Fd: int32(inp.in.Fd()), Events: unix.POLLIN}}
		b := make([]byte, 16)

		for {
			select {
			case <-inp.quit:
				return
			default:
			}

			n, err := unix.Poll(fds, pollTimeout)
			if err != nil {
				if err == unix.EINTR {
					continue
				}
				logger.Log(logger.Allow, "terminal", err.Error())
				return
			}
			if n == 0 {
				continue
			}

			n, err = inp.in.Read(b)
			if err != nil {
				logger.Log(logger.Allow, "terminal", err.Error())
				return
			}

			for _, key := range KeyNames(b[:n]) {
				switch key {
				case "Escape", "Q":
					close(quit)
					return
				case "P":
					target.Pause(!target.Paused())
				default:
					inp.press(target, key)
				}
			}
		}
	}()

	return quit
}

// press the key and release it after the hold time
func (inp *Input) press(target Target, key string) {
	inp.crit.Lock()
	defer inp.crit.Unlock()

	if t, ok := inp.held[key]; ok {
		t.Reset(holdTime)
		return
	}

	if !gui.HandleKey(target, key, true) {
		return
	}

	inp.held[key] = time.AfterFunc(holdTime, func() {
		inp.crit.Lock()
		defer inp.crit.Unlock()
		delete(inp.held, key)
		gui.HandleKey(target, key, false)
	})
}

// CleanUp stops the reading goroutine and restores the terminal.
func (inp *Input) CleanUp() {
	close(inp.quit)

	// the goroutine may not have been started
	select {
	case <-inp.done:
	case <-time.After(2 * pollTimeout * time.Millisecond):
	}

	err := termios.Tcsetattr(inp.in.Fd(), termios.TCSANOW, &inp.canAttr)
	if err != nil {
		logger.Log(logger.Allow, "terminal", err.Error())
	}
}
