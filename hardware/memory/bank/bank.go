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

// Package bank implements the banked storage behind the two address spaces.
// Storage is owned by an Arena of fixed size banks. An address Space is a
// table of windows, each window holding the index of a bank in the Arena.
// Mirroring is achieved by having more than one window refer to the same
// bank.
//
// Windows are normally set up once, when the cartridge is inserted. Map() is
// the seam through which a bank-switching cartridge could change a window at
// runtime.
package bank

import (
	"fmt"
	"strings"
)

// Size of every bank in bytes.
const Size = 0x400

// the number of bits to shift an address by to get the window number
const windowShift = 10

// Tag describes how a bank can be accessed. Tags can be combined.
type Tag uint8

// List of tags. A bank with the Unmapped tag can be read (it returns zero)
// but cannot be written to.
const (
	Unmapped Tag = 0x00
	Read     Tag = 0x01
	Write    Tag = 0x02
	MMIO     Tag = 0x04
)

func (tag Tag) String() string {
	if tag == Unmapped {
		return "unmapped"
	}
	s := make([]string, 0, 3)
	if tag&Read == Read {
		s = append(s, "read")
	}
	if tag&Write == Write {
		s = append(s, "write")
	}
	if tag&MMIO == MMIO {
		s = append(s, "mmio")
	}
	return strings.Join(s, "|")
}

// Bank is a fixed size region of memory and the Tag that describes how it may
// be accessed.
type Bank struct {
	Data [Size]uint8
	Tag  Tag
}

// Arena owns every bank used by the console.
type Arena struct {
	banks []Bank
}

// Add a new bank to the arena. Returns the index of the new bank.
func (a *Arena) Add(tag Tag) int {
	a.banks = append(a.banks, Bank{Tag: tag})
	return len(a.banks) - 1
}

// AddData adds as many banks as required to store data. Returns the indexes
// of the new banks.
func (a *Arena) AddData(tag Tag, data []uint8) []int {
	idx := make([]int, 0, (len(data)+Size-1)/Size)
	for i := 0; i < len(data); i += Size {
		b := a.Add(tag)
		copy(a.banks[b].Data[:], data[i:])
		idx = append(idx, b)
	}
	return idx
}

// Bank returns the bank at index. The pointer should not be kept because
// adding banks to the arena may move them.
func (a *Arena) Bank(idx int) *Bank {
	return &a.banks[idx]
}

// Len returns the number of banks in the arena.
func (a *Arena) Len() int {
	return len(a.banks)
}

// Space is an address space made up of bank sized windows.
type Space struct {
	arena   *Arena
	windows []int
}

// NewSpace is the preferred method of initialisation for the Space type. The
// size of the space is given in bytes and must be a multiple of the bank
// size. Every window initially refers to the fill bank.
func NewSpace(arena *Arena, size int, fill int) *Space {
	spc := &Space{
		arena:   arena,
		windows: make([]int, size/Size),
	}
	for i := range spc.windows {
		spc.windows[i] = fill
	}
	return spc
}

func (spc *Space) String() string {
	s := strings.Builder{}
	for i, b := range spc.windows {
		s.WriteString(fmt.Sprintf("%04x: bank %d (%s)\n", i<<windowShift, b, spc.arena.banks[b].Tag))
	}
	return s.String()
}

// Windows returns the number of windows in the space.
func (spc *Space) Windows() int {
	return len(spc.windows)
}

// Map window to the bank at index.
func (spc *Space) Map(window int, idx int) {
	spc.windows[window] = idx
}

// Window returns the index of the bank in the window containing address.
func (spc *Space) Window(address uint16) int {
	return spc.windows[int(address>>windowShift)%len(spc.windows)]
}

// Resolve returns the bank for the address and the offset into that bank.
func (spc *Space) Resolve(address uint16) (*Bank, uint16) {
	return &spc.arena.banks[spc.Window(address)], address & (Size - 1)
}

// Read returns the value at address without consulting the bank's tag.
func (spc *Space) Read(address uint16) uint8 {
	b, o := spc.Resolve(address)
	return b.Data[o]
}

// Write the value at address without consulting the bank's tag.
func (spc *Space) Write(address uint16, data uint8) {
	b, o := spc.Resolve(address)
	b.Data[o] = data
}
