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

package bus_test

import (
	"testing"

	"github.com/gopherfc/gopherfc/hardware/controller"
	"github.com/gopherfc/gopherfc/hardware/memory/addresses"
	"github.com/gopherfc/gopherfc/hardware/memory/bus"
	"github.com/gopherfc/gopherfc/hardware/memory/cartridge"
	"github.com/gopherfc/gopherfc/test"
)

type access struct {
	address uint16
	data    uint8
}

type mockRegisters struct {
	writes []access
	reads  []uint16
}

func (r *mockRegisters) ReadRegister(address uint16) uint8 {
	r.reads = append(r.reads, address)
	return 0x80
}

func (r *mockRegisters) WriteRegister(address uint16, data uint8) {
	r.writes = append(r.writes, access{address: address, data: data})
}

func newCart(prgBanks int, chrBanks int, mirroring cartridge.Mirroring) *cartridge.Cartridge {
	cart := &cartridge.Cartridge{
		PRG: make([]uint8, prgBanks*cartridge.PRGBankSize),
		CHR: make([]uint8, chrBanks*cartridge.CHRBankSize),
	}
	cart.Mirroring = mirroring
	for i := range cart.PRG {
		cart.PRG[i] = uint8(i >> 10)
	}
	return cart
}

func newBus(cart *cartridge.Cartridge) (*bus.Bus, *mockRegisters, [2]*controller.Controller) {
	pads := [2]*controller.Controller{controller.NewController(), controller.NewController()}
	mem := bus.NewBus(cart, pads)
	regs := &mockRegisters{}
	mem.Plumb(regs)
	return mem, regs, pads
}

func TestRAMMirrors(t *testing.T) {
	mem, _, _ := newBus(newCart(1, 1, cartridge.Vertical))

	mem.Write8(0x0012, 0x34)
	test.ExpectEquality(t, mem.Read8(0x0812), 0x34)
	test.ExpectEquality(t, mem.Read8(0x1012), 0x34)
	test.ExpectEquality(t, mem.Read8(0x1812), 0x34)

	ok := mem.CheckedWrite8(0x1fff, 0x56)
	test.ExpectSuccess(t, ok)
	v, ok := mem.CheckedRead8(0x07ff)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, 0x56)
}

func TestMMIO(t *testing.T) {
	mem, _, _ := newBus(newCart(1, 1, cartridge.Vertical))

	for _, a := range []uint16{0x2000, 0x2007, 0x3fff, 0x4000, 0x4016, 0x43ff} {
		_, ok := mem.CheckedRead8(a)
		test.ExpectFailure(t, ok, a)
		test.ExpectFailure(t, mem.CheckedWrite8(a, 0), a)
	}

	// unmapped region is not MMIO. it reads as zero and writes are dropped
	test.ExpectSuccess(t, mem.CheckedWrite8(0x4400, 0xff))
	v, ok := mem.CheckedRead8(0x4400)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, 0x00)
}

func TestPRG(t *testing.T) {
	// a single 16K bank is mirrored at $8000 and $c000
	mem, _, _ := newBus(newCart(1, 1, cartridge.Vertical))
	test.ExpectEquality(t, mem.Read8(0x8000), 0)
	test.ExpectEquality(t, mem.Read8(0xc000), 0)
	test.ExpectEquality(t, mem.Read8(0xfc00), 15)
	test.ExpectEquality(t, mem.Read8(0xbc00), 15)

	// ROM is not writable but the write is not an MMIO failure
	test.ExpectSuccess(t, mem.CheckedWrite8(0x8000, 0xff))
	test.ExpectEquality(t, mem.Read8(0x8000), 0)

	// 32K fills the space
	mem, _, _ = newBus(newCart(2, 1, cartridge.Vertical))
	test.ExpectEquality(t, mem.Read8(0x8000), 0)
	test.ExpectEquality(t, mem.Read8(0xc000), 16)
	test.ExpectEquality(t, mem.Read16(0xfffc), 0x1f1f)

	// PRG RAM
	test.ExpectSuccess(t, mem.CheckedWrite8(0x6000, 0x12))
	v, _ := mem.CheckedRead8(0x6000)
	test.ExpectEquality(t, v, 0x12)
}

func TestNametableMirroring(t *testing.T) {
	type pair struct {
		a, b uint16
	}
	cases := map[cartridge.Mirroring][]pair{
		cartridge.Horizontal: {{0x2000, 0x2400}, {0x2800, 0x2c00}},
		cartridge.Vertical:   {{0x2000, 0x2800}, {0x2400, 0x2c00}},
		cartridge.Single:     {{0x2000, 0x2c00}, {0x2400, 0x2800}},
	}

	for m, pairs := range cases {
		mem, _, _ := newBus(newCart(1, 1, m))
		for i, p := range pairs {
			mem.WriteVRAM8(p.a+0x10, uint8(i+1))
			test.ExpectEquality(t, mem.ReadVRAM8(p.b+0x10), uint8(i+1), m)

			// $3000 mirrors $2000
			test.ExpectEquality(t, mem.ReadVRAM8(p.a+0x1010), uint8(i+1), m)
		}
	}

	mem, _, _ := newBus(newCart(1, 1, cartridge.FourWay))
	for i, a := range []uint16{0x2000, 0x2400, 0x2800, 0x2c00} {
		mem.WriteVRAM8(a, uint8(i+1))
	}
	for i, a := range []uint16{0x2000, 0x2400, 0x2800, 0x2c00} {
		test.ExpectEquality(t, mem.ReadVRAM8(a), uint8(i+1))
	}
}

func TestPixelCache(t *testing.T) {
	cart := newCart(1, 1, cartridge.Vertical)

	// tile 1 in the second bank of CHR. row 2 has the low plane 0b10000001
	// and the high plane 0b10000010
	cart.CHR[0x0400+0x10+2] = 0x81
	cart.CHR[0x0400+0x10+2+8] = 0x82

	mem, _, _ := newBus(cart)
	row := mem.PixelRow(0x0410, 2)
	test.DemandEquality(t, len(row), 8)
	expected := []uint8{3, 0, 0, 0, 0, 0, 2, 1}
	for i := range expected {
		test.ExpectEquality(t, row[i], expected[i], i)
	}

	// CHR ROM cannot be written
	mem.WriteVRAM8(0x0412, 0x00)
	test.ExpectEquality(t, mem.PixelRow(0x0410, 2)[0], 3)
}

func TestCHRRAM(t *testing.T) {
	mem, _, _ := newBus(newCart(1, 0, cartridge.Vertical))
	test.ExpectEquality(t, mem.PixelRow(0x1ff0, 7)[0], 0)

	mem.WriteVRAM8(0x1ff7, 0x80)
	mem.WriteVRAM8(0x1fff, 0x80)
	test.ExpectEquality(t, mem.ReadVRAM8(0x1ff7), 0x80)
	test.ExpectEquality(t, mem.PixelRow(0x1ff0, 7)[0], 3)
	test.ExpectEquality(t, mem.PixelRow(0x1ff0, 7)[1], 0)
}

func TestRegisterCache(t *testing.T) {
	mem, regs, _ := newBus(newCart(1, 1, cartridge.Vertical))

	mem.WritePPURegister(0x2006, 0x21, true)
	mem.WritePPURegister(0x2006, 0x00, true)
	mem.WritePPURegister(0x2007, 0x55, true)
	test.ExpectEquality(t, mem.PendingRegisterWrites(), 3)
	test.ExpectEquality(t, len(regs.writes), 0)

	// an immediate write drains the queue first
	mem.WritePPURegister(0x2001, 0x1e, false)
	test.ExpectEquality(t, mem.PendingRegisterWrites(), 0)
	test.DemandEquality(t, len(regs.writes), 4)
	test.ExpectEquality(t, regs.writes[0], access{0x2006, 0x21})
	test.ExpectEquality(t, regs.writes[1], access{0x2006, 0x00})
	test.ExpectEquality(t, regs.writes[2], access{0x2007, 0x55})
	test.ExpectEquality(t, regs.writes[3], access{0x2001, 0x1e})

	// reads drain the queue too
	mem.WritePPURegister(0x2000, 0x80, true)
	test.ExpectEquality(t, mem.ReadPPURegister(0x2002), 0x80)
	test.ExpectEquality(t, len(regs.writes), 5)
	test.ExpectEquality(t, mem.PendingRegisterWrites(), 0)
}

func TestOAMDMA(t *testing.T) {
	mem, regs, _ := newBus(newCart(1, 1, cartridge.Vertical))
	for i := range uint16(256) {
		mem.Write8(0x0200+i, uint8(i))
	}

	mem.WritePPURegister(addresses.OAMDMA, 0x02, false)
	test.DemandEquality(t, len(regs.writes), 256)
	test.ExpectEquality(t, regs.writes[255], access{addresses.OAMDATA, 255})

	// a deferred DMA takes a copy of the page when it is queued
	regs.writes = regs.writes[:0]
	mem.WritePPURegister(addresses.OAMDMA, 0x02, true)
	mem.Write8(0x0200, 0xff)
	test.ExpectEquality(t, mem.PendingRegisterWrites(), 256)
	mem.DrainRegisterCache()
	test.DemandEquality(t, len(regs.writes), 256)
	test.ExpectEquality(t, regs.writes[0], access{addresses.OAMDATA, 0})
}

func TestControllers(t *testing.T) {
	mem, _, pads := newBus(newCart(1, 1, cartridge.Vertical))
	pads[0].Press(controller.A)
	pads[1].Press(controller.B)

	mem.WriteAPURegister(addresses.JOY1, 1, false)
	mem.WriteAPURegister(addresses.JOY1, 0, false)

	test.ExpectEquality(t, mem.ReadAPURegister(addresses.JOY1)&0x01, uint8(1))
	test.ExpectEquality(t, mem.ReadAPURegister(addresses.JOY2)&0x01, uint8(0))
	test.ExpectEquality(t, mem.ReadAPURegister(addresses.JOY2)&0x01, uint8(1))

	// unimplemented APU register
	test.ExpectEquality(t, mem.ReadAPURegister(0x4015), mem.OpenBus())
}

func TestRemap(t *testing.T) {
	mem, _, _ := newBus(newCart(2, 2, cartridge.Vertical))
	prg := mem.PRGBanks()
	test.DemandEquality(t, len(prg), 32)

	// put the last bank in the first window of PRG
	mem.RemapCPU(0x8000>>10, prg[31])
	test.ExpectEquality(t, mem.Read8(0x8000), 31)

	chr := mem.CHRBanks()
	test.DemandEquality(t, len(chr), 16)
	mem.RemapPPU(0, chr[8])
	test.ExpectEquality(t, len(mem.PixelRow(0x0000, 0)), 8)
}
