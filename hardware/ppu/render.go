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

import "github.com/gopherfc/gopherfc/hardware/ppu/framebuffer"

// the addresses of the first nametable and its attribute table
const (
	nametableOrigin = 0x2000
	attributeOrigin = 0x23c0
)

// the start of a visible line. the scroll position is fixed for the whole
// line and the sprite layer is prepared
func (ppu *PPU) startLine() {
	ppu.lineV = ppu.v
	ppu.lineX = ppu.x
	ppu.prepareSprites()
}

// the decoded row and palette of the n-th tile of the line. tile zero is the
// tile under the left-most pixel of the line
func (ppu *PPU) backgroundTile(n int) ([]uint8, uint8) {
	v := ppu.lineV

	coarseX := int(v&coarseXMask) + n
	nt := v & nametableMask
	if coarseX >= 32 {
		coarseX -= 32
		nt ^= nametableX
	}
	coarseY := (v & coarseYMask) >> 5
	fineY := uint8(v>>12) & 0x07

	tile := ppu.mem.ReadVRAM8(nametableOrigin | nt | coarseY<<5 | uint16(coarseX))
	attr := ppu.mem.ReadVRAM8(attributeOrigin | nt | (coarseY>>2)<<3 | uint16(coarseX>>2))

	shift := (coarseY&0x02)<<1 | uint16(coarseX&0x02)
	palette := (attr >> shift) & 0x03

	base := uint16(ppu.ctrl&ctrlBackgroundTable) << 8
	return ppu.mem.PixelRow(base|uint16(tile)<<4, fineY), palette
}

func backgroundColour(row []uint8, palette uint8, p int) uint8 {
	px := row[p]
	if px == 0 {
		return 0
	}
	return palette<<2 | px
}

func (ppu *PPU) showBackground(col int) bool {
	if ppu.mask&maskBackground == 0 {
		return false
	}
	return col >= 8 || ppu.mask&maskBackgroundLeft == maskBackgroundLeft
}

func (ppu *PPU) showSprites(col int) bool {
	if ppu.mask&maskSprites == 0 {
		return false
	}
	return col >= 8 || ppu.mask&maskSpritesLeft == maskSpritesLeft
}

// render a single pixel of the current line
func (ppu *PPU) renderPixel(col int) {
	var bg uint8
	if ppu.showBackground(col) {
		f := int(ppu.lineX) + col
		row, palette := ppu.backgroundTile(f >> 3)
		bg = backgroundColour(row, palette, f&0x07)
	}
	ppu.composite(col, bg)
}

// render every pixel of the current line. the result is the same as calling
// renderPixel() for every column
func (ppu *PPU) renderLine() {
	var row []uint8
	var palette uint8
	tile := -1

	for col := range framebuffer.Width {
		var bg uint8
		if ppu.showBackground(col) {
			f := int(ppu.lineX) + col
			if f>>3 != tile {
				tile = f >> 3
				row, palette = ppu.backgroundTile(tile)
			}
			bg = backgroundColour(row, palette, f&0x07)
		}
		ppu.composite(col, bg)
	}
}

// combine the background colour with the sprite layer and write the result to
// the frame
func (ppu *PPU) composite(col int, bg uint8) {
	colour := bg

	if sp := ppu.spriteLine[col]; sp.colour != 0 && ppu.showSprites(col) {
		if sp.zero && bg != 0 && col != framebuffer.Width-1 {
			ppu.status |= statusSpriteZeroHit
		}
		if !sp.behind || bg == 0 {
			colour = sp.colour
		}
	}

	ppu.render.Pixels[ppu.scanline*framebuffer.Width+col] = ppu.outputColour(colour)
}

// the value written to the frame for the palette RAM index
func (ppu *PPU) outputColour(colour uint8) uint8 {
	// transparent pixels show the backdrop colour
	if colour&0x03 == 0 {
		colour = 0
	}
	c := ppu.palette[colour]
	if ppu.mask&maskGreyscale == maskGreyscale {
		c &= 0x30
	}
	return c
}
