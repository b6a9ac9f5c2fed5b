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

// Package cpu emulates the 2A03 CPU. Instructions are executed in blocks by
// RunFor() and the cost of each instruction is charged after it has executed.
// The rest of the console is brought up to date between blocks.
//
// Because other devices are not ticked during a block, the CPU must not see
// the state of a device that is behind the CPU. Any access to a memory mapped
// register after the first instruction of a block causes the block to end.
// The interrupted instruction is rewound and will be the first instruction of
// the next block, at which point the other devices will have caught up.
//
// During the vertical blank the caller can allow register writes to be
// deferred. Deferred writes are queued by the memory bus and are applied in
// order before the picture unit next runs.
package cpu

import (
	"fmt"
	"sync/atomic"

	"github.com/gopherfc/gopherfc/hardware/cpu/instructions"
	"github.com/gopherfc/gopherfc/hardware/cpu/registers"
	"github.com/gopherfc/gopherfc/hardware/memory/addresses"
	"github.com/gopherfc/gopherfc/logger"
)

// CPU implements the 6502 core of the 2A03. Decimal mode is not supported by
// the 2A03 and the decimal flag has no effect on arithmetic.
type CPU struct {
	PC     uint16
	SP     uint8
	A      uint8
	X      uint8
	Y      uint8
	Status registers.Status

	// interrupts raised by the scheduler. the console decides when to service
	// them
	NMIPending bool
	IRQPending bool

	mem   Memory
	defns *[256]instructions.Definition

	// polled before every instruction. can be nil
	stop *atomic.Bool

	// state of the current block
	executed int
	limit    int
	deferred bool
	aborted  bool
	penalty  int

	// base cost of the instruction being executed
	cost int

	// logging of aborted blocks is expensive and is normally off
	abortLogging logger.Permission

	// unimplemented opcodes are logged the first time they are executed
	unimplemented [256]bool
}

// NewCPU is the preferred method of initialisation for the CPU type.
func NewCPU(mem Memory) *CPU {
	return &CPU{
		mem:          mem,
		defns:        instructions.GetDefinitions(),
		abortLogging: logger.Deny,
		Status:       registers.PowerOn,
	}
}

// Plumb a new memory bus into the CPU.
func (mc *CPU) Plumb(mem Memory) {
	mc.mem = mem
}

// SetStopSignal sets the flag that is checked before every instruction. When
// the flag is set RunFor() returns at the next instruction boundary.
func (mc *CPU) SetStopSignal(stop *atomic.Bool) {
	mc.stop = stop
}

// SetAbortLogging sets the permission used when logging aborted blocks.
func (mc *CPU) SetAbortLogging(perm logger.Permission) {
	mc.abortLogging = perm
}

func (mc *CPU) String() string {
	return fmt.Sprintf("PC=%04x A=%02x X=%02x Y=%02x SP=%02x %s=%s",
		mc.PC, mc.A, mc.X, mc.Y, mc.SP, mc.Status.Label(), mc.Status)
}

// Reset loads the PC from the reset vector and initialises the other
// registers.
func (mc *CPU) Reset() {
	mc.PC = mc.read16(addresses.Reset)
	mc.SP = 0xfd
	mc.Status = registers.PowerOn
	mc.A = 0
	mc.X = 0
	mc.Y = 0
	mc.NMIPending = false
	mc.IRQPending = false
}

// RaiseNMI implements the scheduler.Sink interface.
func (mc *CPU) RaiseNMI() {
	mc.NMIPending = true
}

// RaiseIRQ implements the scheduler.Sink interface.
func (mc *CPU) RaiseIRQ() {
	mc.IRQPending = true
}

// Interrupt pushes the PC and status register to the stack and jumps to the
// address in the vector. Returns the number of cycles taken.
func (mc *CPU) Interrupt(vector uint16) int {
	mc.push16(mc.PC)
	mc.push(mc.Status.Push(false))
	mc.Status.Set(registers.InterruptDisable, true)
	mc.PC = mc.read16(vector)
	return 7
}

// the registers saved at the start of every instruction
type snapshot struct {
	pc     uint16
	sp     uint8
	a      uint8
	x      uint8
	y      uint8
	status registers.Status
}

func (mc *CPU) snapshot() snapshot {
	return snapshot{pc: mc.PC, sp: mc.SP, a: mc.A, x: mc.X, y: mc.Y, status: mc.Status}
}

func (mc *CPU) restore(s snapshot) {
	mc.PC = s.pc
	mc.SP = s.sp
	mc.A = s.a
	mc.X = s.x
	mc.Y = s.y
	mc.Status = s.status
}

func (mc *CPU) abort(address uint16) {
	mc.aborted = true
	logger.Logf(mc.abortLogging, "cpu", "block ended after %d cycles: %s (%04x)",
		mc.executed, addresses.Symbol(address), address)
}

// RunFor executes instructions until the number of cycles would exceed
// maxCycles. The first instruction is always executed, even if it takes more
// than maxCycles. Returns the number of cycles executed.
//
// Any other instruction whose dynamic penalty (branch taken, page crossed,
// OAM DMA) would take the block past maxCycles is rewound and left for the
// next block.
//
// The block ends early if an instruction accesses a memory mapped register
// after the first instruction. The instruction is rewound and the cycles
// returned do not include it.
//
// If deferredWrites is true then writes to registers are queued and do not
// end the block.
func (mc *CPU) RunFor(maxCycles int, deferredWrites bool) int {
	mc.executed = 0
	mc.limit = maxCycles
	mc.deferred = deferredWrites
	mc.aborted = false

	for {
		if mc.stop != nil && mc.stop.Load() {
			break
		}

		opcode, ok := mc.mem.CheckedRead8(mc.PC)
		if !ok {
			if mc.executed > 0 {
				break
			}
			opcode = mc.readDevice(mc.PC)
		}

		defn := &mc.defns[opcode]
		if mc.executed > 0 && mc.executed+defn.Cycles > maxCycles {
			break
		}

		s := mc.snapshot()
		mc.penalty = 0
		mc.cost = defn.Cycles
		mc.execute(defn)

		if mc.aborted {
			mc.restore(s)
			break
		}

		// penalties are only incurred by reads and branches, which have
		// changed nothing but the registers. the DMA penalty is checked
		// before the write is made
		if mc.executed > 0 && mc.executed+defn.Cycles+mc.penalty > maxCycles {
			mc.restore(s)
			break
		}

		mc.executed += defn.Cycles + mc.penalty
		if mc.executed >= maxCycles {
			break
		}
	}

	return mc.executed
}
