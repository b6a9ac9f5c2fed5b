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

package bus

import "github.com/gopherfc/gopherfc/hardware/memory/bank"

// the number of tiles in a bank. each tile is sixteen bytes
const tilesPerBank = bank.Size / 16

// the size of a decoded bank. every pixel of every tile is a single byte
const decodedSize = tilesPerBank * 8 * 8

// PixelCache holds the decoded tiles of every graphics bank. The 2bpp planar
// tile data is decoded to one palette index per byte so that the rendering
// path never has to combine bit planes.
//
// Decoded banks are indexed by the bank's index in the arena. Banks that
// are not graphics banks have no entry.
type PixelCache struct {
	banks []*[decodedSize]uint8
}

// Decode the bank at the arena index and add it to the cache.
func (pc *PixelCache) Decode(arena *bank.Arena, idx int) {
	for len(pc.banks) <= idx {
		pc.banks = append(pc.banks, nil)
	}
	pc.banks[idx] = &[decodedSize]uint8{}

	b := arena.Bank(idx)
	for tile := range tilesPerBank {
		for y := range 8 {
			pc.decodeRow(b, idx, tile, y)
		}
	}
}

// Update re-decodes the tile row affected by a write to offset in the bank.
func (pc *PixelCache) Update(arena *bank.Arena, idx int, offset uint16) {
	if idx >= len(pc.banks) || pc.banks[idx] == nil {
		return
	}
	pc.decodeRow(arena.Bank(idx), idx, int(offset>>4), int(offset&0x07))
}

func (pc *PixelCache) decodeRow(b *bank.Bank, idx int, tile int, y int) {
	lo := b.Data[tile*16+y]
	hi := b.Data[tile*16+y+8]
	row := pc.banks[idx][tile*64+y*8:]
	for x := range 8 {
		bit := 7 - x
		row[x] = (lo>>bit)&0x01 | ((hi>>bit)&0x01)<<1
	}
}

// Lookup returns the eight pixels of the tile row. The tile is selected by
// the offset in the bank (the low four bits are ignored) and the row by
// fineY. The returned slice must not be modified.
func (pc *PixelCache) Lookup(idx int, offset uint16, fineY uint8) []uint8 {
	tile := int(offset&(bank.Size-1)) >> 4
	o := tile*64 + int(fineY&0x07)*8
	return pc.banks[idx][o : o+8]
}
