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

// maximum number of sprites on a single line
const maxLineSprites = 8

// number of entries in primary OAM
const oamEntries = 64

// bits of the sprite attribute byte
const (
	attrPalette        = 0x03
	attrBehind         = 0x20
	attrFlipHorizontal = 0x40
	attrFlipVertical   = 0x80
)

// an entry in secondary OAM
type sprite struct {
	y    uint8
	tile uint8
	attr uint8
	x    uint8

	// the row of the sprite on the next line
	row int

	// sprite is entry zero in primary OAM
	zero bool
}

// a pixel in the sprite layer of the current line
type spritePixel struct {
	// palette RAM index. zero if no sprite pixel is at this column
	colour uint8
	behind bool
	zero   bool
}

func (ppu *PPU) spriteHeight() int {
	if ppu.ctrl&ctrlSpriteSize == ctrlSpriteSize {
		return 16
	}
	return 8
}

// EvaluateSprites selects the sprites in primary OAM that will be drawn on
// the line after the given line.
//
// Once eight sprites have been found the remainder of OAM is searched for
// overflow. The search contains the hardware bug where the byte being
// compared against the line advances along with the entry when there is no
// match.
func (ppu *PPU) EvaluateSprites(line int) {
	height := ppu.spriteHeight()
	inRange := func(y uint8) (int, bool) {
		row := line - int(y)
		return row, row >= 0 && row < height
	}

	ppu.spriteCount = 0
	ppu.spriteZeroSelected = false

	n := 0
	for ; n < oamEntries && ppu.spriteCount < maxLineSprites; n++ {
		o := ppu.OAM[n*4:]
		row, ok := inRange(o[0])
		if !ok {
			continue
		}
		ppu.secondary[ppu.spriteCount] = sprite{
			y:    o[0],
			tile: o[1],
			attr: o[2],
			x:    o[3],
			row:  row,
			zero: n == 0,
		}
		ppu.spriteCount++
		if n == 0 {
			ppu.spriteZeroSelected = true
		}
	}

	m := 0
	for ; n < oamEntries; n++ {
		if _, ok := inRange(ppu.OAM[n*4+m]); ok {
			ppu.status |= statusOverflow
			return
		}
		m = (m + 1) & 0x03
	}
}

// SpriteCount returns the number of sprites selected for the next line.
func (ppu *PPU) SpriteCount() int {
	return ppu.spriteCount
}

// SpriteZeroSelected returns true if sprite zero was selected for the next
// line.
func (ppu *PPU) SpriteZeroSelected() bool {
	return ppu.spriteZeroSelected
}

// PeekOAM returns the byte in primary OAM.
func (ppu *PPU) PeekOAM(idx int) uint8 {
	return ppu.OAM[idx&0xff]
}

// decode the selected sprites into the sprite layer for the current line. the
// first sprite to claim a column wins the column
func (ppu *PPU) prepareSprites() {
	clear(ppu.spriteLine[:])

	height := ppu.spriteHeight()

	for _, s := range ppu.secondary[:ppu.spriteCount] {
		row := s.row
		if row >= height {
			continue
		}
		if s.attr&attrFlipVertical == attrFlipVertical {
			row = height - 1 - row
		}

		var address uint16
		if height == 16 {
			address = uint16(s.tile&0x01)<<12 | uint16(s.tile&0xfe)<<4
			if row >= 8 {
				address += 16
				row -= 8
			}
		} else {
			address = uint16(ppu.ctrl&ctrlSpriteTable)<<9 | uint16(s.tile)<<4
		}

		pixels := ppu.mem.PixelRow(address, uint8(row))
		palette := 0x10 | (s.attr&attrPalette)<<2

		for p := range 8 {
			col := int(s.x) + p
			if col >= len(ppu.spriteLine) {
				break
			}
			if ppu.spriteLine[col].colour != 0 {
				continue
			}

			px := pixels[p]
			if s.attr&attrFlipHorizontal == attrFlipHorizontal {
				px = pixels[7-p]
			}
			if px == 0 {
				continue
			}

			ppu.spriteLine[col] = spritePixel{
				colour: palette | px,
				behind: s.attr&attrBehind == attrBehind,
				zero:   s.zero,
			}
		}
	}
}
