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

// Package govern defines the states of a running emulation. The state is
// owned by the emulation worker and read by the presentation layers.
package govern

// State indicates the emulation's state.
type State int

// List of possible emulation states.
//
// EmulatorStart is the default state and should never be entered once the
// emulator has begun.
const (
	EmulatorStart State = iota
	Initialising
	Paused
	Running
	Ending
)

func (s State) String() string {
	switch s {
	case EmulatorStart:
		return "EmulatorStart"
	case Initialising:
		return "Initialising"
	case Paused:
		return "Paused"
	case Running:
		return "Running"
	case Ending:
		return "Ending"
	}

	return ""
}

// Transition returns true if it is legal to move from one state to another.
//
// Rules:
//
//  1. nothing moves back to EmulatorStart
//
//  2. Paused and Running are only entered once the emulation is initialised
//
//  3. an emulation that has ended can only be restarted. it is never
//     initialised again
func Transition(from State, to State) bool {
	if to == EmulatorStart {
		return false
	}
	if from == Ending {
		return to == Running || to == Paused
	}
	switch to {
	case Paused, Running:
		return from != EmulatorStart
	}
	return true
}
