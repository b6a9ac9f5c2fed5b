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

package ppu

import (
	"fmt"

	"github.com/gopherfc/gopherfc/hardware/memory/addresses"
)

// bits of the control register
const (
	ctrlNametable       = 0x03
	ctrlIncrement32     = 0x04
	ctrlSpriteTable     = 0x08
	ctrlBackgroundTable = 0x10
	ctrlSpriteSize      = 0x20
	ctrlNMIEnable       = 0x80
)

// bits of the mask register
const (
	maskGreyscale      = 0x01
	maskBackgroundLeft = 0x02
	maskSpritesLeft    = 0x04
	maskBackground     = 0x08
	maskSprites        = 0x10
	maskRendering      = maskBackground | maskSprites
)

// bits of the status register
const (
	statusOverflow      = 0x20
	statusSpriteZeroHit = 0x40
	statusVBlank        = 0x80
	statusFlags         = statusOverflow | statusSpriteZeroHit | statusVBlank
)

// palette RAM is not part of PPU space as seen by the bus
const paletteOrigin = 0x3f00

// ReadRegister returns the value of the register. The address can be any
// mirror of the register.
func (ppu *PPU) ReadRegister(address uint16) uint8 {
	var data uint8

	switch addresses.PPURegister(address) {
	case addresses.PPUSTATUS:
		data = ppu.status&statusFlags | ppu.latch&^statusFlags
		ppu.status &^= statusVBlank
		ppu.w = false

	case addresses.OAMDATA:
		data = ppu.OAM[ppu.oamAddr]

	case addresses.PPUDATA:
		addr := ppu.v & 0x3fff
		if addr >= paletteOrigin {
			// palette reads are not buffered but the buffer is filled with
			// the nametable data underneath the palette
			data = ppu.readPalette(addr)&0x3f | ppu.latch&0xc0
			ppu.readBuffer = ppu.mem.ReadVRAM8(addr - 0x1000)
		} else {
			data = ppu.readBuffer
			ppu.readBuffer = ppu.mem.ReadVRAM8(addr)
		}
		ppu.incrementAddress()

	default:
		// the write-only registers return the value on the data latch
		return ppu.latch
	}

	ppu.latch = data
	return data
}

// WriteRegister writes the value to the register. The address can be any
// mirror of the register.
func (ppu *PPU) WriteRegister(address uint16, data uint8) {
	ppu.latch = data

	switch addresses.PPURegister(address) {
	case addresses.PPUCTRL:
		enabled := ppu.ctrl&ctrlNMIEnable == 0 && data&ctrlNMIEnable == ctrlNMIEnable
		ppu.ctrl = data
		ppu.t = ppu.t&^nametableMask | uint16(data&ctrlNametable)<<10

		// enabling NMI during the vertical blank causes an immediate NMI
		if enabled && ppu.status&statusVBlank == statusVBlank && ppu.nmi != nil {
			ppu.nmi.RaiseNMI()
		}

	case addresses.PPUMASK:
		ppu.mask = data

	case addresses.PPUSTATUS:
		// read-only

	case addresses.OAMADDR:
		ppu.oamAddr = data

	case addresses.OAMDATA:
		ppu.OAM[ppu.oamAddr] = data
		ppu.oamAddr++

	case addresses.PPUSCROLL:
		if !ppu.w {
			ppu.t = ppu.t&^coarseXMask | uint16(data>>3)
			ppu.x = data & 0x07
		} else {
			ppu.t = ppu.t&^(fineYMask|coarseYMask) | uint16(data&0x07)<<12 | uint16(data&0xf8)<<2
		}
		ppu.w = !ppu.w

	case addresses.PPUADDR:
		if !ppu.w {
			ppu.t = ppu.t&0x00ff | uint16(data&0x3f)<<8
		} else {
			ppu.t = ppu.t&0xff00 | uint16(data)
			ppu.v = ppu.t
		}
		ppu.w = !ppu.w

	case addresses.PPUDATA:
		addr := ppu.v & 0x3fff
		if addr >= paletteOrigin {
			ppu.writePalette(addr, data)
		} else {
			ppu.mem.WriteVRAM8(addr, data)
		}
		ppu.incrementAddress()
	}
}

// the CPU's access to PPUDATA increments the address. during rendering the
// address is incremented as though a tile had been fetched
func (ppu *PPU) incrementAddress() {
	if ppu.RenderingEnabled() && (ppu.scanline < visibleScanlines || ppu.scanline == preRenderScanline) {
		ppu.v = IncrementHScroll(ppu.v)
		ppu.v = IncrementVScroll(ppu.v)
		return
	}

	if ppu.ctrl&ctrlIncrement32 == ctrlIncrement32 {
		ppu.v += 32
	} else {
		ppu.v++
	}
	ppu.v &= 0x7fff
}

// the backdrop entries of the sprite palettes are mirrors of the background
// palette backdrop entries
func paletteIndex(address uint16) uint16 {
	idx := address & 0x1f
	if idx&0x13 == 0x10 {
		idx &^= 0x10
	}
	return idx
}

func (ppu *PPU) readPalette(address uint16) uint8 {
	return ppu.palette[paletteIndex(address)]
}

func (ppu *PPU) writePalette(address uint16, data uint8) {
	ppu.palette[paletteIndex(address)] = data & 0x3f
}

// PeekPalette returns the entry in palette RAM without side effect.
func (ppu *PPU) PeekPalette(idx int) uint8 {
	return ppu.readPalette(uint16(idx))
}

// Ctrl returns the value of the control register.
func (ppu *PPU) Ctrl() uint8 {
	return ppu.ctrl
}

// Mask returns the value of the mask register.
func (ppu *PPU) Mask() uint8 {
	return ppu.mask
}

// Status returns the status flags without the side effects of reading the
// register.
func (ppu *PPU) Status() uint8 {
	return ppu.status
}

// NMIEnabled returns true if the control register allows NMI at the start of
// the vertical blank.
func (ppu *PPU) NMIEnabled() bool {
	return ppu.ctrl&ctrlNMIEnable == ctrlNMIEnable
}

// RenderingEnabled returns true if either the background or sprites are
// shown.
func (ppu *PPU) RenderingEnabled() bool {
	return ppu.mask&maskRendering != 0
}

// Scroll returns the current and temporary VRAM addresses, the fine X scroll
// and the write latch.
func (ppu *PPU) Scroll() (v uint16, t uint16, x uint8, w bool) {
	return ppu.v, ppu.t, ppu.x, ppu.w
}

func (ppu *PPU) registersString() string {
	return fmt.Sprintf("ctrl=%02x mask=%02x status=%02x v=%04x t=%04x x=%d w=%v",
		ppu.ctrl, ppu.mask, ppu.status, ppu.v, ppu.t, ppu.x, ppu.w)
}
