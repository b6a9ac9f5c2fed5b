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

// Package controller implements the standard controller. The state of the
// buttons is latched into a shift register when the strobe bit is set and
// then read one bit at a time.
//
// Buttons may be pressed and released from any goroutine.
package controller

import (
	"strings"
	"sync"
)

// Button identifies one of the eight buttons. The value is the bit position
// of the button in the shift register, which is also the order in which the
// buttons are read.
type Button int

// List of buttons in read order.
const (
	A Button = iota
	B
	Select
	Start
	Up
	Down
	Left
	Right
)

// NumButtons on a standard controller.
const NumButtons = 8

// Valid returns false if the value does not identify a button.
func (b Button) Valid() bool {
	return b >= 0 && b < NumButtons
}

func (b Button) String() string {
	switch b {
	case A:
		return "A"
	case B:
		return "B"
	case Select:
		return "Select"
	case Start:
		return "Start"
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	}
	return "unknown button"
}

// the upper bits of a controller read are not driven by the controller. the
// value seen on the hardware is usually 0x40
const openBusBits = 0x40

// Controller is a standard controller.
type Controller struct {
	crit sync.Mutex

	// the live state of the buttons
	buttons uint8

	// the latched state being shifted out
	shift  uint8
	strobe bool
}

// NewController is the preferred method of initialisation for the Controller
// type.
func NewController() *Controller {
	return &Controller{}
}

func (c *Controller) String() string {
	c.crit.Lock()
	defer c.crit.Unlock()

	s := strings.Builder{}
	for b := range Button(NumButtons) {
		if c.buttons&(1<<b) != 0 {
			s.WriteString(b.String())
		} else {
			s.WriteString("-")
		}
	}
	return s.String()
}

// Press a button. Invalid buttons are ignored.
func (c *Controller) Press(b Button) {
	if !b.Valid() {
		return
	}
	c.crit.Lock()
	defer c.crit.Unlock()
	c.buttons |= 1 << b
}

// Release a button.
func (c *Controller) Release(b Button) {
	if !b.Valid() {
		return
	}
	c.crit.Lock()
	defer c.crit.Unlock()
	c.buttons &^= 1 << b
}

// IsPressed returns the live state of the button.
func (c *Controller) IsPressed(b Button) bool {
	if !b.Valid() {
		return false
	}
	c.crit.Lock()
	defer c.crit.Unlock()
	return c.buttons&(1<<b) != 0
}

// Write the strobe register. The buttons are latched while the strobe is set
// and the final state is kept when the strobe is cleared.
func (c *Controller) Write(data uint8) {
	c.crit.Lock()
	defer c.crit.Unlock()

	strobe := data&0x01 == 0x01
	if strobe || c.strobe {
		c.shift = c.buttons
	}
	c.strobe = strobe
}

// Read the next bit from the shift register. While the strobe is set the
// state of the A button is returned each time. After all eight buttons have
// been read the value is always 1.
func (c *Controller) Read() uint8 {
	c.crit.Lock()
	defer c.crit.Unlock()

	if c.strobe {
		return c.buttons&0x01 | openBusBits
	}

	v := c.shift & 0x01
	c.shift = c.shift>>1 | 0x80
	return v | openBusBits
}
