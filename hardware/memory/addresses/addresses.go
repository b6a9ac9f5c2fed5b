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

// Package addresses contains the addresses of the interrupt vectors and the
// memory mapped registers, along with the canonical names of the registers.
package addresses

// Interrupt vectors.
const (
	NMI   = uint16(0xfffa)
	Reset = uint16(0xfffc)
	IRQ   = uint16(0xfffe)
)

// Picture unit registers. The eight registers are mirrored every eight bytes
// from PPUCTRL up to $3fff.
const (
	PPUCTRL   = uint16(0x2000)
	PPUMASK   = uint16(0x2001)
	PPUSTATUS = uint16(0x2002)
	OAMADDR   = uint16(0x2003)
	OAMDATA   = uint16(0x2004)
	PPUSCROLL = uint16(0x2005)
	PPUADDR   = uint16(0x2006)
	PPUDATA   = uint16(0x2007)
)

// OAMDMA is handled as a picture unit register even though it is in the
// APU/IO region of the address space.
const OAMDMA = uint16(0x4014)

// Controller registers.
const (
	JOY1 = uint16(0x4016)
	JOY2 = uint16(0x4017)
)

// Region boundaries in CPU space.
const (
	OriginPPU  = uint16(0x2000)
	MemtopPPU  = uint16(0x3fff)
	OriginAPU  = uint16(0x4000)
	MemtopAPU  = uint16(0x4017)
	OriginPRG  = uint16(0x8000)
	OriginSRAM = uint16(0x6000)
)

// Regions in PPU space.
const (
	OriginNametables = uint16(0x2000)
	OriginPalette    = uint16(0x3f00)
)

// PPURegister normalises an address in the $2000 to $3fff range to the
// canonical register address.
func PPURegister(address uint16) uint16 {
	return OriginPPU | (address & 0x0007)
}

// IsPPURegister returns true if the address is one of the picture unit
// registers or a mirror of one, or the OAMDMA register.
func IsPPURegister(address uint16) bool {
	return (address >= OriginPPU && address <= MemtopPPU) || address == OAMDMA
}

// Canonical names of the registers.
var Canonical = map[uint16]string{
	PPUCTRL:   "PPUCTRL",
	PPUMASK:   "PPUMASK",
	PPUSTATUS: "PPUSTATUS",
	OAMADDR:   "OAMADDR",
	OAMDATA:   "OAMDATA",
	PPUSCROLL: "PPUSCROLL",
	PPUADDR:   "PPUADDR",
	PPUDATA:   "PPUDATA",
	OAMDMA:    "OAMDMA",
	JOY1:      "JOY1",
	JOY2:      "JOY2",
}

// Symbol returns the canonical name for the address, taking mirroring into
// account. The empty string is returned if the address is not a named
// register.
func Symbol(address uint16) string {
	if address >= OriginPPU && address <= MemtopPPU {
		address = PPURegister(address)
	}
	return Canonical[address]
}
