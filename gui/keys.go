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

// Package gui contains the presentation layers of the emulator. The
// subpackages sdlplay and colours do the work. This package contains the
// mapping of keyboard keys to controller buttons, which is shared by the
// SDL window and the terminal.
package gui

import (
	"strings"

	"github.com/gopherfc/gopherfc/hardware/controller"
)

// Binding is the controller button and player number for a key.
type Binding struct {
	Player int
	Button controller.Button
}

// the key names are the names used by SDL
var bindings = map[string]Binding{
	"Up":     {0, controller.Up},
	"Down":   {0, controller.Down},
	"Left":   {0, controller.Left},
	"Right":  {0, controller.Right},
	"Z":      {0, controller.B},
	"X":      {0, controller.A},
	"Return": {0, controller.Start},
	"Space":  {0, controller.Select},

	"W": {1, controller.Up},
	"S": {1, controller.Down},
	"A": {1, controller.Left},
	"D": {1, controller.Right},
	"G": {1, controller.B},
	"H": {1, controller.A},
	"T": {1, controller.Start},
	"Y": {1, controller.Select},
}

// Lookup returns the controller binding for the named key. Key names are case
// insensitive.
func Lookup(key string) (Binding, bool) {
	for k, b := range bindings {
		if strings.EqualFold(k, key) {
			return b, true
		}
	}
	return Binding{}, false
}

// Buttons implementations can have the buttons of the two controllers pressed
// and released. Satisfied by hardware.Console.
type Buttons interface {
	Press(player int, button controller.Button)
	Release(player int, button controller.Button)
}

// HandleKey presses or releases the button bound to the key. Returns false if
// the key has no binding.
func HandleKey(btns Buttons, key string, down bool) bool {
	b, ok := Lookup(key)
	if !ok {
		return false
	}
	if down {
		btns.Press(b.Player, b.Button)
	} else {
		btns.Release(b.Player, b.Button)
	}
	return true
}
