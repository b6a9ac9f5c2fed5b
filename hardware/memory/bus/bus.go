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

// Package bus implements the two address spaces of the console. The CPU sees
// a 64K space and the picture unit sees a 16K space. Both are built from
// banks in a single arena when the cartridge is inserted.
//
// CPU space:
//
//	$0000-$1fff  2K RAM, mirrored four times
//	$2000-$3fff  picture unit registers (MMIO)
//	$4000-$43ff  APU and IO registers (MMIO)
//	$4400-$5fff  unmapped
//	$6000-$7fff  8K PRG RAM
//	$8000-$ffff  PRG ROM, mapped from the top down and mirrored as required
//
// PPU space:
//
//	$0000-$1fff  CHR ROM, or CHR RAM if the cartridge has no CHR data
//	$2000-$2fff  four nametables, mirrored onto CIRAM by the cartridge
//	$3000-$3fff  mirror of $2000-$2fff
//
// Palette RAM at $3f00 is intercepted by the picture unit and is never seen
// by the bus.
//
// Accesses to MMIO banks made through the checked functions fail. The CPU
// uses this to decide whether an instruction can safely complete within the
// current burst of instructions.
package bus

import (
	"github.com/gopherfc/gopherfc/hardware/controller"
	"github.com/gopherfc/gopherfc/hardware/memory/addresses"
	"github.com/gopherfc/gopherfc/hardware/memory/bank"
	"github.com/gopherfc/gopherfc/hardware/memory/cartridge"
)

// size of each address space
const (
	cpuSpaceSize = 0x10000
	ppuSpaceSize = 0x4000
)

// size of internal memories
const (
	ramSize    = 0x0800
	prgRAMSize = 0x2000
	chrRAMSize = 0x2000
)

// window numbers of the regions in CPU space
const (
	cpuWindowPPU    = 0x2000 / bank.Size
	cpuWindowAPU    = 0x4000 / bank.Size
	cpuWindowSRAM   = 0x6000 / bank.Size
	cpuWindowPRG    = 0x8000 / bank.Size
	ppuWindowCHR    = 0x0000 / bank.Size
	ppuWindowNT     = 0x2000 / bank.Size
	ppuWindowMirror = 0x3000 / bank.Size
)

// Registers is the register surface of the picture unit.
type Registers interface {
	ReadRegister(address uint16) uint8
	WriteRegister(address uint16, data uint8)
}

// Bus is the memory of the console.
type Bus struct {
	arena bank.Arena
	cpu   *bank.Space
	ppu   *bank.Space

	// indexes of banks in the arena
	ram     []int
	prg     []int
	prgRAM  []int
	chr     []int
	ciram   []int
	openBus int

	chrRAM bool
	pixels PixelCache

	registers Registers
	cache     RegisterCache

	controllers [2]*controller.Controller
}

// NewBus creates the address spaces for the cartridge. The register surface
// of the picture unit must be plumbed in with Plumb() before use.
func NewBus(cart *cartridge.Cartridge, controllers [2]*controller.Controller) *Bus {
	mem := &Bus{
		controllers: controllers,
	}

	mem.openBus = mem.arena.Add(bank.Unmapped)

	mem.cpu = bank.NewSpace(&mem.arena, cpuSpaceSize, mem.openBus)
	mem.ppu = bank.NewSpace(&mem.arena, ppuSpaceSize, mem.openBus)

	// internal RAM is mirrored four times
	mem.ram = mem.arena.AddData(bank.Read|bank.Write, make([]uint8, ramSize))
	for w := range cpuWindowPPU {
		mem.cpu.Map(w, mem.ram[w%len(mem.ram)])
	}

	// one MMIO bank is enough for all eight kilobytes of mirrored picture
	// unit registers
	ppuRegs := mem.arena.Add(bank.MMIO)
	for w := cpuWindowPPU; w < cpuWindowAPU; w++ {
		mem.cpu.Map(w, ppuRegs)
	}
	mem.cpu.Map(cpuWindowAPU, mem.arena.Add(bank.MMIO))

	mem.prgRAM = mem.arena.AddData(bank.Read|bank.Write, make([]uint8, prgRAMSize))
	for i, b := range mem.prgRAM {
		mem.cpu.Map(cpuWindowSRAM+i, b)
	}

	// PRG is mapped from the top of the address space downwards. if there is
	// less PRG than space then the banks are repeated
	mem.prg = mem.arena.AddData(bank.Read, cart.PRG)
	if n := len(mem.prg); n > 0 {
		top := mem.cpu.Windows() - 1
		for w := top; w >= cpuWindowPRG; w-- {
			i := (n - 1 - (top - w)) % n
			if i < 0 {
				i += n
			}
			mem.cpu.Map(w, mem.prg[i])
		}
	}

	if cart.HasCHRRAM() {
		mem.chrRAM = true
		mem.chr = mem.arena.AddData(bank.Read|bank.Write, make([]uint8, chrRAMSize))
	} else {
		mem.chr = mem.arena.AddData(bank.Read, cart.CHR)
	}
	for w := ppuWindowCHR; w < ppuWindowNT; w++ {
		mem.ppu.Map(w, mem.chr[w%len(mem.chr)])
	}
	for _, b := range mem.chr {
		mem.pixels.Decode(&mem.arena, b)
	}

	mem.mapNametables(cart.Mirroring)

	return mem
}

// the arrangement of the four logical nametables onto CIRAM
var nametableLayout = map[cartridge.Mirroring][4]int{
	cartridge.Horizontal: {0, 0, 1, 1},
	cartridge.Vertical:   {0, 1, 0, 1},
	cartridge.Single:     {0, 0, 0, 0},
	cartridge.FourWay:    {0, 1, 2, 3},
}

func (mem *Bus) mapNametables(mirroring cartridge.Mirroring) {
	n := 2
	if mirroring == cartridge.FourWay {
		n = 4
	}
	mem.ciram = mem.arena.AddData(bank.Read|bank.Write, make([]uint8, n*bank.Size))

	layout := nametableLayout[mirroring]
	for i, c := range layout {
		mem.ppu.Map(ppuWindowNT+i, mem.ciram[c])
		mem.ppu.Map(ppuWindowMirror+i, mem.ciram[c])
	}
}

// Plumb the register surface of the picture unit into the bus.
func (mem *Bus) Plumb(registers Registers) {
	mem.registers = registers
}

// PRGBanks returns the arena indexes of the PRG ROM banks, in cartridge
// order. For use with RemapCPU().
func (mem *Bus) PRGBanks() []int {
	return mem.prg
}

// CHRBanks returns the arena indexes of the CHR banks, in cartridge order.
// For use with RemapPPU().
func (mem *Bus) CHRBanks() []int {
	return mem.chr
}

// RemapCPU changes the bank in a window of CPU space.
func (mem *Bus) RemapCPU(window int, idx int) {
	mem.cpu.Map(window, idx)
}

// RemapPPU changes the bank in a window of PPU space. If the bank has not
// been seen by the pixel cache then it is decoded.
func (mem *Bus) RemapPPU(window int, idx int) {
	mem.ppu.Map(window, idx)
	if window < ppuWindowNT {
		if idx >= len(mem.pixels.banks) || mem.pixels.banks[idx] == nil {
			mem.pixels.Decode(&mem.arena, idx)
		}
	}
}

// Read8 returns the value at the address in CPU space without checking the
// bank's tag.
func (mem *Bus) Read8(address uint16) uint8 {
	return mem.cpu.Read(address)
}

// Read16 returns the little-endian word at the address without checking the
// bank's tag.
func (mem *Bus) Read16(address uint16) uint16 {
	return uint16(mem.cpu.Read(address)) | uint16(mem.cpu.Read(address+1))<<8
}

// Write8 writes the value to the address in CPU space without checking the
// bank's tag.
func (mem *Bus) Write8(address uint16, data uint8) {
	mem.cpu.Write(address, data)
}

// CheckedRead8 returns the value at the address in CPU space. The second
// return value is false if the address is in an MMIO bank.
func (mem *Bus) CheckedRead8(address uint16) (uint8, bool) {
	b, o := mem.cpu.Resolve(address)
	if b.Tag&bank.MMIO == bank.MMIO {
		return 0, false
	}
	return b.Data[o], true
}

// CheckedWrite8 writes the value to the address in CPU space. Returns false if
// the address is in an MMIO bank. Writes to banks that are not writable are
// ignored but still return true.
func (mem *Bus) CheckedWrite8(address uint16, data uint8) bool {
	b, o := mem.cpu.Resolve(address)
	if b.Tag&bank.MMIO == bank.MMIO {
		return false
	}
	if b.Tag&bank.Write == bank.Write {
		b.Data[o] = data
	}
	return true
}

// ReadPPURegister reads the picture unit register. Any deferred writes are
// applied first.
func (mem *Bus) ReadPPURegister(address uint16) uint8 {
	mem.DrainRegisterCache()
	return mem.registers.ReadRegister(address)
}

// WritePPURegister writes to the picture unit register. If deferred is true
// the write is queued and will be applied by DrainRegisterCache().
//
// A write to OAMDMA copies the page of CPU memory to OAM. If the write is
// deferred then the page is copied into the queue immediately.
func (mem *Bus) WritePPURegister(address uint16, data uint8, deferred bool) {
	if address == addresses.OAMDMA {
		mem.oamDMA(data, deferred)
		return
	}

	if deferred {
		mem.cache.Push(RegisterCacheEntry{Address: address, Value: data, IsWrite: true})
		return
	}

	mem.DrainRegisterCache()
	mem.registers.WriteRegister(address, data)
}

func (mem *Bus) oamDMA(page uint8, deferred bool) {
	origin := uint16(page) << 8
	for i := range uint16(256) {
		v := mem.cpu.Read(origin | i)
		if deferred {
			mem.cache.Push(RegisterCacheEntry{Address: addresses.OAMDATA, Value: v, IsWrite: true})
		} else {
			mem.registers.WriteRegister(addresses.OAMDATA, v)
		}
	}
}

// DrainRegisterCache applies all deferred register accesses in the order they
// were made.
func (mem *Bus) DrainRegisterCache() {
	if mem.cache.Len() == 0 {
		return
	}
	mem.cache.Drain(func(e RegisterCacheEntry) {
		if e.IsWrite {
			mem.registers.WriteRegister(e.Address, e.Value)
		} else {
			mem.registers.ReadRegister(e.Address)
		}
	})
}

// PendingRegisterWrites returns the number of deferred register accesses.
func (mem *Bus) PendingRegisterWrites() int {
	return mem.cache.Len()
}

// ReadAPURegister reads from the APU and IO region. Only the controller
// registers are implemented.
func (mem *Bus) ReadAPURegister(address uint16) uint8 {
	switch address {
	case addresses.JOY1:
		return mem.controllers[0].Read()
	case addresses.JOY2:
		return mem.controllers[1].Read()
	}
	return mem.OpenBus()
}

// WriteAPURegister writes to the APU and IO region. Only the controller strobe
// is implemented and it is never deferred. A write to JOY2 is the APU frame
// counter and is ignored.
func (mem *Bus) WriteAPURegister(address uint16, data uint8, _ bool) {
	if address == addresses.JOY1 {
		mem.controllers[0].Write(data)
		mem.controllers[1].Write(data)
	}
}

// OpenBus is the value returned by unimplemented registers.
func (mem *Bus) OpenBus() uint8 {
	return 0
}

// ReadVRAM8 returns the value at the address in PPU space.
func (mem *Bus) ReadVRAM8(address uint16) uint8 {
	return mem.ppu.Read(address & 0x3fff)
}

// WriteVRAM8 writes the value to the address in PPU space. Writes to CHR RAM
// update the pixel cache.
func (mem *Bus) WriteVRAM8(address uint16, data uint8) {
	address &= 0x3fff
	b, o := mem.ppu.Resolve(address)
	if b.Tag&bank.Write != bank.Write {
		return
	}
	b.Data[o] = data
	if mem.chrRAM && int(address>>10) < ppuWindowNT {
		mem.pixels.Update(&mem.arena, mem.ppu.Window(address), o)
	}
}

// PixelRow returns the decoded row of the tile at the address in the pattern
// tables. The returned slice must not be modified.
func (mem *Bus) PixelRow(address uint16, fineY uint8) []uint8 {
	address &= 0x1fff
	return mem.pixels.Lookup(mem.ppu.Window(address), address, fineY)
}
