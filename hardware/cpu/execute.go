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
	"github.com/gopherfc/gopherfc/hardware/cpu/instructions"
	"github.com/gopherfc/gopherfc/hardware/cpu/registers"
	"github.com/gopherfc/gopherfc/hardware/memory/addresses"
	"github.com/gopherfc/gopherfc/logger"
)

// effective address of the instruction. for immediate and relative
// addressing this is the address of the operand
func (mc *CPU) address(defn *instructions.Definition, pc uint16) uint16 {
	switch defn.AddressingMode {
	case instructions.Immediate, instructions.Relative:
		return pc + 1

	case instructions.ZeroPage:
		return uint16(mc.mem.Read8(pc + 1))

	case instructions.ZeroPageX:
		return uint16(mc.mem.Read8(pc+1) + mc.X)

	case instructions.ZeroPageY:
		return uint16(mc.mem.Read8(pc+1) + mc.Y)

	case instructions.Absolute:
		return mc.read16(pc + 1)

	case instructions.AbsoluteX:
		return mc.indexed(defn, mc.read16(pc+1), mc.X)

	case instructions.AbsoluteY:
		return mc.indexed(defn, mc.read16(pc+1), mc.Y)

	case instructions.Indirect:
		// the high byte of the pointer is not incremented when the low byte
		// of the pointer is $ff
		ptr := mc.read16(pc + 1)
		lo := uint16(mc.mem.Read8(ptr))
		hi := uint16(mc.mem.Read8(ptr&0xff00 | (ptr+1)&0x00ff))
		return hi<<8 | lo

	case instructions.IndexedIndirect:
		return mc.read16ZeroPage(mc.mem.Read8(pc+1) + mc.X)

	case instructions.IndirectIndexed:
		return mc.indexed(defn, mc.read16ZeroPage(mc.mem.Read8(pc+1)), mc.Y)
	}

	return 0
}

func (mc *CPU) indexed(defn *instructions.Definition, base uint16, index uint8) uint16 {
	address := base + uint16(index)
	if defn.PageSensitive && address&0xff00 != base&0xff00 {
		mc.penalty++
	}
	return address
}

// the value used by the instruction
func (mc *CPU) load(defn *instructions.Definition, address uint16) uint8 {
	switch defn.AddressingMode {
	case instructions.Accumulator:
		return mc.A
	case instructions.Immediate:
		return mc.mem.Read8(address)
	}
	return mc.read8(address)
}

// store the result of a read-modify-write instruction
func (mc *CPU) store(defn *instructions.Definition, address uint16, data uint8) {
	if defn.AddressingMode == instructions.Accumulator {
		mc.A = data
		return
	}
	mc.write8(address, data)
}

func (mc *CPU) carry() uint8 {
	if mc.Status.Is(registers.Carry) {
		return 1
	}
	return 0
}

func (mc *CPU) adc(v uint8) {
	r := uint16(mc.A) + uint16(v) + uint16(mc.carry())
	result := uint8(r)
	mc.Status.Set(registers.Carry, r > 0xff)
	mc.Status.Set(registers.Overflow, ^(mc.A^v)&(mc.A^result)&0x80 != 0)
	mc.A = result
	mc.Status.SetNZ(result)
}

func (mc *CPU) sbc(v uint8) {
	mc.adc(^v)
}

func (mc *CPU) compare(r uint8, v uint8) {
	mc.Status.Set(registers.Carry, r >= v)
	mc.Status.SetNZ(r - v)
}

func (mc *CPU) asl(v uint8) uint8 {
	mc.Status.Set(registers.Carry, v&0x80 == 0x80)
	v <<= 1
	mc.Status.SetNZ(v)
	return v
}

func (mc *CPU) lsr(v uint8) uint8 {
	mc.Status.Set(registers.Carry, v&0x01 == 0x01)
	v >>= 1
	mc.Status.SetNZ(v)
	return v
}

func (mc *CPU) rol(v uint8) uint8 {
	c := mc.carry()
	mc.Status.Set(registers.Carry, v&0x80 == 0x80)
	v = v<<1 | c
	mc.Status.SetNZ(v)
	return v
}

func (mc *CPU) ror(v uint8) uint8 {
	c := mc.carry()
	mc.Status.Set(registers.Carry, v&0x01 == 0x01)
	v = v>>1 | c<<7
	mc.Status.SetNZ(v)
	return v
}

// the PC has already been advanced past the branch instruction
func (mc *CPU) branch(flag bool, address uint16) {
	if !flag {
		return
	}
	offset := int8(mc.mem.Read8(address))
	target := mc.PC + uint16(offset)
	mc.penalty++
	if target&0xff00 != mc.PC&0xff00 {
		mc.penalty++
	}
	mc.PC = target
}

func (mc *CPU) execute(defn *instructions.Definition) {
	pc := mc.PC
	address := mc.address(defn, pc)
	mc.PC = pc + uint16(defn.Bytes)

	if defn.Unimplemented {
		if !mc.unimplemented[defn.OpCode] {
			mc.unimplemented[defn.OpCode] = true
			logger.Logf(logger.Allow, "cpu", "unimplemented opcode %02x (%s) at %04x", defn.OpCode, defn.Operator, pc)
		}
		return
	}

	switch defn.Operator {
	case instructions.Nop:
		// unofficial NOPs read from the effective address but the value is
		// not used. the read is skipped so that it can never end the block

	case instructions.Clc:
		mc.Status.Set(registers.Carry, false)
	case instructions.Sec:
		mc.Status.Set(registers.Carry, true)
	case instructions.Cli:
		mc.Status.Set(registers.InterruptDisable, false)
	case instructions.Sei:
		mc.Status.Set(registers.InterruptDisable, true)
	case instructions.Cld:
		mc.Status.Set(registers.Decimal, false)
	case instructions.Sed:
		mc.Status.Set(registers.Decimal, true)
	case instructions.Clv:
		mc.Status.Set(registers.Overflow, false)

	case instructions.Pha:
		mc.push(mc.A)
	case instructions.Pla:
		mc.A = mc.pull()
		mc.Status.SetNZ(mc.A)
	case instructions.Php:
		mc.push(mc.Status.Push(true))
	case instructions.Plp:
		mc.Status.Pull(mc.pull())

	case instructions.Tax:
		mc.X = mc.A
		mc.Status.SetNZ(mc.X)
	case instructions.Tay:
		mc.Y = mc.A
		mc.Status.SetNZ(mc.Y)
	case instructions.Txa:
		mc.A = mc.X
		mc.Status.SetNZ(mc.A)
	case instructions.Tya:
		mc.A = mc.Y
		mc.Status.SetNZ(mc.A)
	case instructions.Tsx:
		mc.X = mc.SP
		mc.Status.SetNZ(mc.X)
	case instructions.Txs:
		mc.SP = mc.X

	case instructions.Ora:
		mc.A |= mc.load(defn, address)
		mc.Status.SetNZ(mc.A)
	case instructions.And:
		mc.A &= mc.load(defn, address)
		mc.Status.SetNZ(mc.A)
	case instructions.Eor:
		mc.A ^= mc.load(defn, address)
		mc.Status.SetNZ(mc.A)

	case instructions.Lda:
		mc.A = mc.load(defn, address)
		mc.Status.SetNZ(mc.A)
	case instructions.Ldx:
		mc.X = mc.load(defn, address)
		mc.Status.SetNZ(mc.X)
	case instructions.Ldy:
		mc.Y = mc.load(defn, address)
		mc.Status.SetNZ(mc.Y)

	case instructions.Sta:
		mc.write8(address, mc.A)
	case instructions.Stx:
		mc.write8(address, mc.X)
	case instructions.Sty:
		mc.write8(address, mc.Y)

	case instructions.Inx:
		mc.X++
		mc.Status.SetNZ(mc.X)
	case instructions.Iny:
		mc.Y++
		mc.Status.SetNZ(mc.Y)
	case instructions.Dex:
		mc.X--
		mc.Status.SetNZ(mc.X)
	case instructions.Dey:
		mc.Y--
		mc.Status.SetNZ(mc.Y)

	case instructions.Adc:
		mc.adc(mc.load(defn, address))
	case instructions.Sbc:
		mc.sbc(mc.load(defn, address))

	case instructions.Cmp:
		mc.compare(mc.A, mc.load(defn, address))
	case instructions.Cpx:
		mc.compare(mc.X, mc.load(defn, address))
	case instructions.Cpy:
		mc.compare(mc.Y, mc.load(defn, address))

	case instructions.Bit:
		v := mc.load(defn, address)
		mc.Status.Set(registers.Zero, mc.A&v == 0)
		mc.Status.Set(registers.Negative, v&0x80 == 0x80)
		mc.Status.Set(registers.Overflow, v&0x40 == 0x40)

	case instructions.Asl:
		mc.store(defn, address, mc.asl(mc.load(defn, address)))
	case instructions.Lsr:
		mc.store(defn, address, mc.lsr(mc.load(defn, address)))
	case instructions.Rol:
		mc.store(defn, address, mc.rol(mc.load(defn, address)))
	case instructions.Ror:
		mc.store(defn, address, mc.ror(mc.load(defn, address)))

	case instructions.Inc:
		v := mc.load(defn, address) + 1
		mc.store(defn, address, v)
		mc.Status.SetNZ(v)
	case instructions.Dec:
		v := mc.load(defn, address) - 1
		mc.store(defn, address, v)
		mc.Status.SetNZ(v)

	case instructions.Jmp:
		mc.PC = address

	case instructions.Bcc:
		mc.branch(!mc.Status.Is(registers.Carry), address)
	case instructions.Bcs:
		mc.branch(mc.Status.Is(registers.Carry), address)
	case instructions.Bne:
		mc.branch(!mc.Status.Is(registers.Zero), address)
	case instructions.Beq:
		mc.branch(mc.Status.Is(registers.Zero), address)
	case instructions.Bpl:
		mc.branch(!mc.Status.Is(registers.Negative), address)
	case instructions.Bmi:
		mc.branch(mc.Status.Is(registers.Negative), address)
	case instructions.Bvc:
		mc.branch(!mc.Status.Is(registers.Overflow), address)
	case instructions.Bvs:
		mc.branch(mc.Status.Is(registers.Overflow), address)

	case instructions.Jsr:
		// the address pushed is the last byte of the JSR instruction
		mc.push16(mc.PC - 1)
		mc.PC = address
	case instructions.Rts:
		mc.PC = mc.pull16() + 1

	case instructions.Brk:
		// BRK is two bytes long so the PC pushed skips the padding byte
		mc.push16(mc.PC)
		mc.push(mc.Status.Push(true))
		mc.Status.Set(registers.InterruptDisable, true)
		mc.PC = mc.read16(addresses.IRQ)
	case instructions.Rti:
		mc.Status.Pull(mc.pull())
		mc.PC = mc.pull16()

	case instructions.SLO:
		v := mc.asl(mc.load(defn, address))
		mc.store(defn, address, v)
		mc.A |= v
		mc.Status.SetNZ(mc.A)
	case instructions.RLA:
		v := mc.rol(mc.load(defn, address))
		mc.store(defn, address, v)
		mc.A &= v
		mc.Status.SetNZ(mc.A)
	case instructions.SRE:
		v := mc.lsr(mc.load(defn, address))
		mc.store(defn, address, v)
		mc.A ^= v
		mc.Status.SetNZ(mc.A)
	case instructions.RRA:
		v := mc.ror(mc.load(defn, address))
		mc.store(defn, address, v)
		mc.adc(v)

	case instructions.SAX:
		mc.write8(address, mc.A&mc.X)
	case instructions.LAX:
		mc.A = mc.load(defn, address)
		mc.X = mc.A
		mc.Status.SetNZ(mc.A)
	case instructions.DCP:
		v := mc.load(defn, address) - 1
		mc.store(defn, address, v)
		mc.compare(mc.A, v)
	case instructions.ISC:
		v := mc.load(defn, address) + 1
		mc.store(defn, address, v)
		mc.sbc(v)

	case instructions.ANC:
		mc.A &= mc.load(defn, address)
		mc.Status.SetNZ(mc.A)
		mc.Status.Set(registers.Carry, mc.A&0x80 == 0x80)
	case instructions.ALR:
		mc.A = mc.lsr(mc.A & mc.load(defn, address))
	case instructions.ARR:
		mc.A &= mc.load(defn, address)
		mc.A = mc.A>>1 | mc.carry()<<7
		mc.Status.SetNZ(mc.A)
		mc.Status.Set(registers.Carry, mc.A&0x40 == 0x40)
		mc.Status.Set(registers.Overflow, (mc.A>>6^mc.A>>5)&0x01 == 0x01)
	case instructions.AXS:
		t := mc.A & mc.X
		v := mc.load(defn, address)
		mc.X = t - v
		mc.Status.Set(registers.Carry, t >= v)
		mc.Status.SetNZ(mc.X)
	case instructions.LAS:
		v := mc.load(defn, address) & mc.SP
		mc.A = v
		mc.X = v
		mc.SP = v
		mc.Status.SetNZ(v)
	}
}
