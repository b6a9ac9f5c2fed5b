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

// Layout of the current and temporary VRAM address registers:
//
//	yyy NN YYYYY XXXXX
//	||| || ||||| +++++-- coarse X scroll
//	||| || +++++-------- coarse Y scroll
//	||| ++-------------- nametable select
//	+++----------------- fine Y scroll
const (
	coarseXMask   = 0x001f
	coarseYMask   = 0x03e0
	nametableX    = 0x0400
	nametableY    = 0x0800
	nametableMask = nametableX | nametableY
	fineYMask     = 0x7000

	// the horizontal bits copied from the temporary address at the end of
	// each line
	horizontalMask = coarseXMask | nametableX
)

// IncrementHScroll increments the coarse X component of the address. When
// coarse X wraps from 31 to 0 the horizontal nametable is switched.
func IncrementHScroll(v uint16) uint16 {
	if v&coarseXMask == 31 {
		v &^= coarseXMask
		return v ^ nametableX
	}
	return v + 1
}

// IncrementVScroll increments the fine Y component of the address. When fine
// Y wraps the coarse Y component is incremented.
//
// Coarse Y wraps from 29 to 0 and switches the vertical nametable. Coarse Y
// can be set to 30 or 31 by the CPU, in which case it wraps from 31 to 0 and
// the nametable is not switched.
func IncrementVScroll(v uint16) uint16 {
	if v&fineYMask != fineYMask {
		return v + 0x1000
	}
	v &^= fineYMask

	y := (v & coarseYMask) >> 5
	switch y {
	case 29:
		y = 0
		v ^= nametableY
	case 31:
		y = 0
	default:
		y++
	}

	return v&^coarseYMask | y<<5
}

func copyHorizontal(v uint16, t uint16) uint16 {
	return v&^horizontalMask | t&horizontalMask
}
