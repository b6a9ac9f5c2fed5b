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

// Package registers defines the status register of the CPU. The other
// registers of the CPU are plain integer types and need no support.
package registers

import "strings"

// Status is the flag register of the CPU.
type Status uint8

// List of flags in the status register.
const (
	Carry            Status = 0x01
	Zero             Status = 0x02
	InterruptDisable Status = 0x04
	Decimal          Status = 0x08
	Break            Status = 0x10
	Unused           Status = 0x20
	Overflow         Status = 0x40
	Negative         Status = 0x80
)

// PowerOn is the value of the status register after a reset.
const PowerOn = InterruptDisable | Break | Unused

// Label returns the canonical name for the status register.
func (p Status) Label() string {
	return "SR"
}

// String returns the flags in the order they appear in the register. Set
// flags are upper case. The unused bit is shown as a dash.
func (p Status) String() string {
	s := strings.Builder{}
	flag := func(f Status, r rune) {
		if p&f == f {
			s.WriteRune(r)
		} else {
			s.WriteRune(r + ('a' - 'A'))
		}
	}
	flag(Negative, 'N')
	flag(Overflow, 'V')
	s.WriteRune('-')
	flag(Break, 'B')
	flag(Decimal, 'D')
	flag(InterruptDisable, 'I')
	flag(Zero, 'Z')
	flag(Carry, 'C')
	return s.String()
}

// Is returns true if the flag is set.
func (p Status) Is(f Status) bool {
	return p&f == f
}

// Set the flag to the value.
func (p *Status) Set(f Status, v bool) {
	if v {
		*p |= f
	} else {
		*p &^= f
	}
}

// SetNZ sets the zero flag if the value is zero and copies bit 7 of the value
// into the negative flag.
func (p *Status) SetNZ(v uint8) {
	p.Set(Zero, v == 0)
	p.Set(Negative, v&0x80 == 0x80)
}

// Push returns the value of the register as pushed to the stack. The unused
// bit is always set. The break bit is set only for BRK and PHP.
func (p Status) Push(brk bool) uint8 {
	v := p | Unused
	if brk {
		v |= Break
	} else {
		v &^= Break
	}
	return uint8(v)
}

// Pull loads the register from a value pulled from the stack. The break bit
// does not exist in the register and is cleared. The unused bit is set.
func (p *Status) Pull(v uint8) {
	*p = (Status(v) &^ Break) | Unused
}
