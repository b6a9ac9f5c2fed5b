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

//go:build !linux && !darwin

package terminal

import (
	"fmt"
	"os"

	"github.com/gopherfc/gopherfc/gui"
)

// Target is the emulation controlled by the terminal.
type Target interface {
	gui.Buttons
	Pause(pause bool)
	Paused() bool
}

// Input is not supported on this platform.
type Input struct{}

// NewInput always fails on this platform.
func NewInput(in *os.File) (*Input, error) {
	return nil, fmt.Errorf("terminal: not supported on this platform")
}

// Start does nothing on this platform.
func (inp *Input) Start(target Target) <-chan bool {
	return make(chan bool)
}

// CleanUp does nothing on this platform.
func (inp *Input) CleanUp() {
}
