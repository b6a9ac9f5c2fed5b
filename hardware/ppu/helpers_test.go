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

package ppu_test

import (
	"github.com/gopherfc/gopherfc/hardware/ppu"
	"github.com/gopherfc/gopherfc/hardware/ppu/framebuffer"
)

// mockMem is a flat 16K PPU space. Tile rows are decoded on demand.
type mockMem struct {
	vram   [0x4000]uint8
	drains int
}

func (mem *mockMem) ReadVRAM8(address uint16) uint8 {
	return mem.vram[address&0x3fff]
}

func (mem *mockMem) WriteVRAM8(address uint16, data uint8) {
	mem.vram[address&0x3fff] = data
}

func (mem *mockMem) PixelRow(address uint16, fineY uint8) []uint8 {
	base := address&0x1ff0 | uint16(fineY&0x07)
	lo := mem.vram[base]
	hi := mem.vram[base+8]
	row := make([]uint8, 8)
	for x := range 8 {
		bit := 7 - x
		row[x] = (lo>>bit)&0x01 | ((hi>>bit)&0x01)<<1
	}
	return row
}

func (mem *mockMem) DrainRegisterCache() {
	mem.drains++
}

type mockNMI struct {
	raised int
}

func (n *mockNMI) RaiseNMI() {
	n.raised++
}

func newPPU() (*ppu.PPU, *mockMem, *mockNMI, *framebuffer.Buffers) {
	mem := &mockMem{}
	nmi := &mockNMI{}
	frames := framebuffer.NewBuffers()
	return ppu.NewPPU(mem, nmi, frames), mem, nmi, frames
}

// set the PPU address register
func setAddress(p *ppu.PPU, address uint16) {
	p.WriteRegister(0x2006, uint8(address>>8))
	p.WriteRegister(0x2006, uint8(address))
}

// master cycles in a frame with and without the skipped dot
const (
	evenFrameCycles = 341 * 262 * 4
	oddFrameCycles  = evenFrameCycles - 4
)
