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

package cpu_test

import (
	"testing"

	"github.com/gopherfc/gopherfc/hardware/cpu"
	"github.com/gopherfc/gopherfc/hardware/cpu/registers"
	"github.com/gopherfc/gopherfc/test"
)

type registerAccess struct {
	address  uint16
	data     uint8
	deferred bool
}

// mockMem is a flat 64K memory. The regions that are memory mapped in the
// console fail the checked access functions.
type mockMem struct {
	internal []uint8

	ppuReads  []uint16
	ppuWrites []registerAccess
	apuWrites []registerAccess
}

func newMockMem() *mockMem {
	return &mockMem{
		internal: make([]uint8, 0x10000),
	}
}

func isMMIO(address uint16) bool {
	return address >= 0x2000 && address < 0x4400
}

func (mem *mockMem) Read8(address uint16) uint8 {
	return mem.internal[address]
}

func (mem *mockMem) Write8(address uint16, data uint8) {
	mem.internal[address] = data
}

func (mem *mockMem) CheckedRead8(address uint16) (uint8, bool) {
	if isMMIO(address) {
		return 0, false
	}
	return mem.internal[address], true
}

func (mem *mockMem) CheckedWrite8(address uint16, data uint8) bool {
	if isMMIO(address) {
		return false
	}
	mem.internal[address] = data
	return true
}

// value returned by all picture unit registers
const ppuValue = 0x42

func (mem *mockMem) ReadPPURegister(address uint16) uint8 {
	mem.ppuReads = append(mem.ppuReads, address)
	return ppuValue
}

func (mem *mockMem) WritePPURegister(address uint16, data uint8, deferred bool) {
	mem.ppuWrites = append(mem.ppuWrites, registerAccess{address, data, deferred})
}

// value returned by all APU registers
const apuValue = 0x41

func (mem *mockMem) ReadAPURegister(address uint16) uint8 {
	return apuValue
}

func (mem *mockMem) WriteAPURegister(address uint16, data uint8, deferred bool) {
	mem.apuWrites = append(mem.apuWrites, registerAccess{address, data, deferred})
}

func (mem *mockMem) OpenBus() uint8 {
	return 0
}

func (mem *mockMem) putInstructions(origin uint16, bytes ...uint8) uint16 {
	for i, b := range bytes {
		mem.internal[origin+uint16(i)] = b
	}
	return origin + uint16(len(bytes))
}

func (mem *mockMem) assert(t *testing.T, address uint16, value uint8) {
	t.Helper()
	if mem.internal[address] != value {
		t.Errorf("memory assertion failed (%v  - wanted %v at address %04x", mem.internal[address], value, address)
	}
}

// create a CPU with the reset vector pointing to origin
func newCPU(origin uint16) (*cpu.CPU, *mockMem) {
	mem := newMockMem()
	mem.putInstructions(0xfffc, uint8(origin), uint8(origin>>8))
	mc := cpu.NewCPU(mem)
	mc.Reset()
	return mc, mem
}

// execute exactly one instruction and return the number of cycles it took
func step(t *testing.T, mc *cpu.CPU) int {
	t.Helper()
	return mc.RunFor(0, false)
}

func assertStatus(t *testing.T, mc *cpu.CPU, expected string) {
	t.Helper()
	test.ExpectEquality(t, mc.Status.String(), expected)
}

func assertFlag(t *testing.T, mc *cpu.CPU, flag registers.Status, set bool) {
	t.Helper()
	test.ExpectEquality(t, mc.Status.Is(flag), set, flag)
}
