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

package cpu

import (
	"github.com/gopherfc/gopherfc/hardware/memory/addresses"
)

// Memory is the CPU's view of the memory bus.
//
// The checked functions fail if the address is in a memory mapped IO region.
// When that happens the CPU decides whether to resolve the access against the
// device immediately, with the register functions, or to abort the current
// block of instructions.
type Memory interface {
	Read8(address uint16) uint8
	Write8(address uint16, data uint8)
	CheckedRead8(address uint16) (uint8, bool)
	CheckedWrite8(address uint16, data uint8) bool

	ReadPPURegister(address uint16) uint8
	WritePPURegister(address uint16, data uint8, deferred bool)
	ReadAPURegister(address uint16) uint8
	WriteAPURegister(address uint16, data uint8, deferred bool)
	OpenBus() uint8
}

// number of cycles the CPU is halted for during OAM DMA
const oamDMACycles = 513

func isAPURegister(address uint16) bool {
	return address >= addresses.OriginAPU && address <= addresses.MemtopAPU
}

// read8 reads from an address that may be memory mapped IO. Operands and
// stack accesses do not use this function.
func (mc *CPU) read8(address uint16) uint8 {
	if mc.aborted {
		return 0
	}

	v, ok := mc.mem.CheckedRead8(address)
	if ok {
		return v
	}

	// accessing a register after other instructions in the block have been
	// executed would see the device in a stale state
	if mc.executed > 0 {
		mc.abort(address)
		return 0
	}

	return mc.readDevice(address)
}

func (mc *CPU) readDevice(address uint16) uint8 {
	switch {
	case address >= addresses.OriginPPU && address <= addresses.MemtopPPU:
		return mc.mem.ReadPPURegister(addresses.PPURegister(address))
	case isAPURegister(address) && address != addresses.OAMDMA:
		return mc.mem.ReadAPURegister(address)
	}
	return mc.mem.OpenBus()
}

// write8 writes to an address that may be memory mapped IO. Writes to
// registers can be deferred if the caller of RunFor() has allowed it.
func (mc *CPU) write8(address uint16, data uint8) {
	if mc.aborted {
		return
	}

	if mc.mem.CheckedWrite8(address, data) {
		return
	}

	switch {
	case addresses.IsPPURegister(address):
		if !mc.deferred && mc.executed > 0 {
			mc.abort(address)
			return
		}
		if address == addresses.OAMDMA {
			if mc.executed > 0 && mc.executed+mc.cost+mc.penalty+oamDMACycles > mc.limit {
				mc.abort(address)
				return
			}
			mc.penalty += oamDMACycles
		} else {
			address = addresses.PPURegister(address)
		}
		mc.mem.WritePPURegister(address, data, mc.deferred)

	case isAPURegister(address):
		if !mc.deferred && mc.executed > 0 {
			mc.abort(address)
			return
		}
		mc.mem.WriteAPURegister(address, data, mc.deferred)
	}

	// anything else in an MMIO region is open bus and the write is lost
}

// operand bytes are always in ROM or RAM and are never checked
func (mc *CPU) read16(address uint16) uint16 {
	return uint16(mc.mem.Read8(address)) | uint16(mc.mem.Read8(address+1))<<8
}

// read a pointer from zero page. the high byte wraps around to the start of
// zero page
func (mc *CPU) read16ZeroPage(address uint8) uint16 {
	return uint16(mc.mem.Read8(uint16(address))) | uint16(mc.mem.Read8(uint16(address+1)))<<8
}

const stackOrigin = 0x0100

func (mc *CPU) push(data uint8) {
	mc.mem.Write8(stackOrigin|uint16(mc.SP), data)
	mc.SP--
}

func (mc *CPU) pull() uint8 {
	mc.SP++
	return mc.mem.Read8(stackOrigin | uint16(mc.SP))
}

func (mc *CPU) push16(data uint16) {
	mc.push(uint8(data >> 8))
	mc.push(uint8(data))
}

func (mc *CPU) pull16() uint16 {
	lo := uint16(mc.pull())
	hi := uint16(mc.pull())
	return hi<<8 | lo
}
