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

// Package disassembly produces a linear disassembly of CPU memory. Every
// address is assumed to be the start of an instruction and the next entry
// begins after the bytes used by the instruction. Data in the program will
// be disassembled as though it were code.
package disassembly

import (
	"fmt"

	"github.com/gopherfc/gopherfc/hardware/cpu/instructions"
	"github.com/gopherfc/gopherfc/hardware/memory/addresses"
)

// Memory is the memory being disassembled. Reading must not have side effects.
type Memory interface {
	Read8(address uint16) uint8
}

// Entry is a disassembled instruction.
type Entry struct {
	Address uint16
	Bytes   []uint8
	Defn    instructions.Definition

	// the operand formatted according to the addressing mode of the
	// instruction
	Operand string
}

func (e Entry) String() string {
	var b string
	for i, v := range e.Bytes {
		if i > 0 {
			b += " "
		}
		b += fmt.Sprintf("%02x", v)
	}

	mnemonic := e.Defn.Operator.String()
	if e.Defn.Unofficial {
		mnemonic = "*" + mnemonic
	}

	if e.Operand == "" {
		return fmt.Sprintf("%04x  %-8s  %s", e.Address, b, mnemonic)
	}
	return fmt.Sprintf("%04x  %-8s  %s %s", e.Address, b, mnemonic, e.Operand)
}

// Decode the instruction at the address.
func Decode(mem Memory, address uint16) Entry {
	defn := instructions.Lookup(mem.Read8(address))

	e := Entry{
		Address: address,
		Defn:    defn,
		Bytes:   make([]uint8, defn.Bytes),
	}
	for i := range e.Bytes {
		e.Bytes[i] = mem.Read8(address + uint16(i))
	}

	e.Operand = operand(e)

	return e
}

// Linear disassembles count instructions starting at the origin address.
// Disassembly stops early if the end of the address space is reached.
func Linear(mem Memory, origin uint16, count int) []Entry {
	entries := make([]Entry, 0, count)

	address := int(origin)
	for range count {
		if address > 0xffff {
			break
		}
		e := Decode(mem, uint16(address))
		entries = append(entries, e)
		address += len(e.Bytes)
	}

	return entries
}

func operand(e Entry) string {
	var v uint16
	switch len(e.Bytes) {
	case 2:
		v = uint16(e.Bytes[1])
	case 3:
		v = uint16(e.Bytes[1]) | uint16(e.Bytes[2])<<8
	}

	// named registers are shown by name
	address := func(v uint16) string {
		if s := addresses.Symbol(v); s != "" {
			return s
		}
		return fmt.Sprintf("$%04x", v)
	}

	switch e.Defn.AddressingMode {
	case instructions.Implied:
		return ""
	case instructions.Accumulator:
		return "A"
	case instructions.Immediate:
		return fmt.Sprintf("#$%02x", v)
	case instructions.Relative:
		target := e.Address + 2 + uint16(int8(v))
		return fmt.Sprintf("$%04x", target)
	case instructions.ZeroPage:
		return fmt.Sprintf("$%02x", v)
	case instructions.ZeroPageX:
		return fmt.Sprintf("$%02x,X", v)
	case instructions.ZeroPageY:
		return fmt.Sprintf("$%02x,Y", v)
	case instructions.Absolute:
		return address(v)
	case instructions.AbsoluteX:
		return address(v) + ",X"
	case instructions.AbsoluteY:
		return address(v) + ",Y"
	case instructions.Indirect:
		return fmt.Sprintf("($%04x)", v)
	case instructions.IndexedIndirect:
		return fmt.Sprintf("($%02x,X)", v)
	case instructions.IndirectIndexed:
		return fmt.Sprintf("($%02x),Y", v)
	}

	return ""
}
