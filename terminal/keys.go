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

// Package terminal reads key presses from a terminal in cbreak mode. It is
// used to control the emulation when there is no window to receive keyboard
// events.
//
// Terminals do not report key releases. A key is released automatically a
// short time after it was pressed, or after the most recent repeat of the
// key.
package terminal

import "strings"

const escape = 0x1b

// KeyNames converts the bytes read from the terminal to key names. The key
// names are the same as those used by SDL.
func KeyNames(b []byte) []string {
	var keys []string

	for i := 0; i < len(b); i++ {
		switch c := b[i]; c {
		case escape:
			// cursor keys are sent as an escape sequence
			if i+2 < len(b) && b[i+1] == '[' {
				switch b[i+2] {
				case 'A':
					keys = append(keys, "Up")
				case 'B':
					keys = append(keys, "Down")
				case 'C':
					keys = append(keys, "Right")
				case 'D':
					keys = append(keys, "Left")
				}
				i += 2
				continue
			}
			keys = append(keys, "Escape")
		case '\r', '\n':
			keys = append(keys, "Return")
		case ' ':
			keys = append(keys, "Space")
		default:
			if c > ' ' && c < 0x7f {
				keys = append(keys, strings.ToUpper(string(c)))
			}
		}
	}

	return keys
}
